package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Property struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	AddressLine1    string           `json:"address_line1" db:"address_line1"`
	AddressLine2    *string          `json:"address_line2" db:"address_line2"`
	City            string           `json:"city" db:"city"`
	State           string           `json:"state" db:"state"`
	ZipCode         string           `json:"zip_code" db:"zip_code"`
	PropertyType    *string          `json:"property_type" db:"property_type"`
	PurchasePrice   *decimal.Decimal `json:"purchase_price" db:"purchase_price"`
	PurchaseDate    *time.Time       `json:"purchase_date" db:"purchase_date"`
	AnnualInsurance *decimal.Decimal `json:"annual_insurance" db:"annual_insurance"`
	Notes           *string          `json:"notes" db:"notes"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`
}

// PropertyPatch carries a partial update; nil fields are left untouched.
type PropertyPatch struct {
	Name            *string          `json:"name"`
	AddressLine1    *string          `json:"address_line1"`
	AddressLine2    *string          `json:"address_line2"`
	City            *string          `json:"city"`
	State           *string          `json:"state"`
	ZipCode         *string          `json:"zip_code"`
	PropertyType    *string          `json:"property_type"`
	PurchasePrice   *decimal.Decimal `json:"purchase_price"`
	PurchaseDate    *time.Time       `json:"purchase_date"`
	AnnualInsurance *decimal.Decimal `json:"annual_insurance"`
	Notes           *string          `json:"notes"`
}

func (p *Property) Apply(patch PropertyPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.AddressLine1 != nil {
		p.AddressLine1 = *patch.AddressLine1
	}
	if patch.AddressLine2 != nil {
		p.AddressLine2 = patch.AddressLine2
	}
	if patch.City != nil {
		p.City = *patch.City
	}
	if patch.State != nil {
		p.State = *patch.State
	}
	if patch.ZipCode != nil {
		p.ZipCode = *patch.ZipCode
	}
	if patch.PropertyType != nil {
		p.PropertyType = patch.PropertyType
	}
	if patch.PurchasePrice != nil {
		p.PurchasePrice = patch.PurchasePrice
	}
	if patch.PurchaseDate != nil {
		p.PurchaseDate = patch.PurchaseDate
	}
	if patch.AnnualInsurance != nil {
		p.AnnualInsurance = patch.AnnualInsurance
	}
	if patch.Notes != nil {
		p.Notes = patch.Notes
	}
}
