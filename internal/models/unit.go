package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Unit is a rentable space inside a property. Availability flips when a
// tenant moves in or out; the store keeps that in sync on tenant mutations.
type Unit struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	PropertyID  uuid.UUID       `json:"property_id" db:"property_id"`
	UnitNumber  string          `json:"unit_number" db:"unit_number"`
	Bedrooms    int             `json:"bedrooms" db:"bedrooms"`
	Bathrooms   float64         `json:"bathrooms" db:"bathrooms"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" db:"monthly_rent"`
	Available   bool            `json:"available" db:"available"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

type UnitPatch struct {
	UnitNumber  *string          `json:"unit_number"`
	Bedrooms    *int             `json:"bedrooms"`
	Bathrooms   *float64         `json:"bathrooms"`
	MonthlyRent *decimal.Decimal `json:"monthly_rent"`
	Available   *bool            `json:"available"`
}

func (u *Unit) Apply(patch UnitPatch) {
	if patch.UnitNumber != nil {
		u.UnitNumber = *patch.UnitNumber
	}
	if patch.Bedrooms != nil {
		u.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		u.Bathrooms = *patch.Bathrooms
	}
	if patch.MonthlyRent != nil {
		u.MonthlyRent = *patch.MonthlyRent
	}
	if patch.Available != nil {
		u.Available = *patch.Available
	}
}
