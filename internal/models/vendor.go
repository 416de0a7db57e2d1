package models

import (
	"time"

	"github.com/google/uuid"
)

type Vendor struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Specialty *string   `json:"specialty" db:"specialty"`
	Phone     *string   `json:"phone" db:"phone"`
	Email     *string   `json:"email" db:"email"`
	Notes     *string   `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type VendorPatch struct {
	Name      *string `json:"name"`
	Specialty *string `json:"specialty"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Notes     *string `json:"notes"`
}

func (v *Vendor) Apply(patch VendorPatch) {
	if patch.Name != nil {
		v.Name = *patch.Name
	}
	if patch.Specialty != nil {
		v.Specialty = patch.Specialty
	}
	if patch.Phone != nil {
		v.Phone = patch.Phone
	}
	if patch.Email != nil {
		v.Email = patch.Email
	}
	if patch.Notes != nil {
		v.Notes = patch.Notes
	}
}
