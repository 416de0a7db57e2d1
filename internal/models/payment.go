package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCheck    PaymentMethod = "check"
	MethodTransfer PaymentMethod = "transfer"
	MethodCard     PaymentMethod = "card"
	MethodOther    PaymentMethod = "other"
)

// AutopayNote tags payments synthesized by the monthly recurrence sweep.
const AutopayNote = "autopay"

type Payment struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	TenantID    uuid.UUID       `json:"tenant_id" db:"tenant_id"`
	UnitID      uuid.UUID       `json:"unit_id" db:"unit_id"`
	PropertyID  uuid.UUID       `json:"property_id" db:"property_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Date        time.Time       `json:"date" db:"date"`
	PeriodStart time.Time       `json:"period_start" db:"period_start"`
	PeriodEnd   time.Time       `json:"period_end" db:"period_end"`
	Method      *PaymentMethod  `json:"method" db:"method"`
	Note        *string         `json:"note" db:"note"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

type PaymentPatch struct {
	Amount      *decimal.Decimal `json:"amount"`
	Date        *time.Time       `json:"date"`
	PeriodStart *time.Time       `json:"period_start"`
	PeriodEnd   *time.Time       `json:"period_end"`
	Method      *PaymentMethod   `json:"method"`
	Note        *string          `json:"note"`
}

func (p *Payment) Apply(patch PaymentPatch) {
	if patch.Amount != nil {
		p.Amount = *patch.Amount
	}
	if patch.Date != nil {
		p.Date = *patch.Date
	}
	if patch.PeriodStart != nil {
		p.PeriodStart = *patch.PeriodStart
	}
	if patch.PeriodEnd != nil {
		p.PeriodEnd = *patch.PeriodEnd
	}
	if patch.Method != nil {
		p.Method = patch.Method
	}
	if patch.Note != nil {
		p.Note = patch.Note
	}
}
