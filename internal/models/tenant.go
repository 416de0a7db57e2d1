package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentChange is one entry in a tenant's append-only rent history. The store
// records one on every monthly-rent update; rent never changes silently.
type RentChange struct {
	OldRent   decimal.Decimal `json:"old_rent"`
	NewRent   decimal.Decimal `json:"new_rent"`
	ChangedAt time.Time       `json:"changed_at"`
}

type Tenant struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UnitID      uuid.UUID       `json:"unit_id" db:"unit_id"`
	PropertyID  uuid.UUID       `json:"property_id" db:"property_id"`
	FirstName   string          `json:"first_name" db:"first_name"`
	LastName    string          `json:"last_name" db:"last_name"`
	Email       *string         `json:"email" db:"email"`
	Phone       *string         `json:"phone" db:"phone"`
	LeaseStart  time.Time       `json:"lease_start" db:"lease_start"`
	LeaseEnd    time.Time       `json:"lease_end" db:"lease_end"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" db:"monthly_rent"`
	Deposit     decimal.Decimal `json:"deposit" db:"deposit"`
	Autopay     bool            `json:"autopay" db:"autopay"`
	RentHistory []RentChange    `json:"rent_history" db:"rent_history"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

type TenantPatch struct {
	UnitID      *uuid.UUID       `json:"unit_id"`
	FirstName   *string          `json:"first_name"`
	LastName    *string          `json:"last_name"`
	Email       *string          `json:"email"`
	Phone       *string          `json:"phone"`
	LeaseStart  *time.Time       `json:"lease_start"`
	LeaseEnd    *time.Time       `json:"lease_end"`
	MonthlyRent *decimal.Decimal `json:"monthly_rent"`
	Deposit     *decimal.Decimal `json:"deposit"`
	Autopay     *bool            `json:"autopay"`
}

// Apply merges the patch. It does not touch RentHistory; the store appends
// the RentChange entry itself so the old amount is captured before the merge.
func (t *Tenant) Apply(patch TenantPatch) {
	if patch.UnitID != nil {
		t.UnitID = *patch.UnitID
	}
	if patch.FirstName != nil {
		t.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		t.LastName = *patch.LastName
	}
	if patch.Email != nil {
		t.Email = patch.Email
	}
	if patch.Phone != nil {
		t.Phone = patch.Phone
	}
	if patch.LeaseStart != nil {
		t.LeaseStart = *patch.LeaseStart
	}
	if patch.LeaseEnd != nil {
		t.LeaseEnd = *patch.LeaseEnd
	}
	if patch.MonthlyRent != nil {
		t.MonthlyRent = *patch.MonthlyRent
	}
	if patch.Deposit != nil {
		t.Deposit = *patch.Deposit
	}
	if patch.Autopay != nil {
		t.Autopay = *patch.Autopay
	}
}
