package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory is a closed enum; the UI only ever submits one of these.
type ExpenseCategory string

const (
	ExpenseMortgage    ExpenseCategory = "mortgage"
	ExpenseInsurance   ExpenseCategory = "insurance"
	ExpenseTaxes       ExpenseCategory = "taxes"
	ExpenseUtilities   ExpenseCategory = "utilities"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseManagement  ExpenseCategory = "management"
	ExpenseHOA         ExpenseCategory = "hoa"
	ExpenseOther       ExpenseCategory = "other"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseMortgage, ExpenseInsurance, ExpenseTaxes, ExpenseUtilities,
		ExpenseMaintenance, ExpenseManagement, ExpenseHOA, ExpenseOther:
		return true
	}
	return false
}

type Expense struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	PropertyID  uuid.UUID       `json:"property_id" db:"property_id"`
	UnitID      *uuid.UUID      `json:"unit_id" db:"unit_id"`
	VendorID    *uuid.UUID      `json:"vendor_id" db:"vendor_id"`
	Category    ExpenseCategory `json:"category" db:"category"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Date        time.Time       `json:"date" db:"date"`
	Description string          `json:"description" db:"description"`
	Recurring   bool            `json:"recurring" db:"recurring"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

type ExpensePatch struct {
	UnitID      *uuid.UUID       `json:"unit_id"`
	VendorID    *uuid.UUID       `json:"vendor_id"`
	Category    *ExpenseCategory `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *time.Time       `json:"date"`
	Description *string          `json:"description"`
	Recurring   *bool            `json:"recurring"`
}

func (e *Expense) Apply(patch ExpensePatch) {
	if patch.UnitID != nil {
		e.UnitID = patch.UnitID
	}
	if patch.VendorID != nil {
		e.VendorID = patch.VendorID
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	if patch.Amount != nil {
		e.Amount = *patch.Amount
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Recurring != nil {
		e.Recurring = *patch.Recurring
	}
}
