package models

import "github.com/google/uuid"

// EntityKind identifies which collection an EntityRef points into. It is a
// closed set so cascade cleanup can switch over it exhaustively.
type EntityKind string

const (
	KindProperty    EntityKind = "property"
	KindUnit        EntityKind = "unit"
	KindTenant      EntityKind = "tenant"
	KindExpense     EntityKind = "expense"
	KindPayment     EntityKind = "payment"
	KindMaintenance EntityKind = "maintenance_request"
	KindVendor      EntityKind = "vendor"
)

// ValidEntityKinds lists every kind an ActivityLog or Document may attach to.
var ValidEntityKinds = []EntityKind{
	KindProperty, KindUnit, KindTenant, KindExpense,
	KindPayment, KindMaintenance, KindVendor,
}

func (k EntityKind) Valid() bool {
	for _, v := range ValidEntityKinds {
		if k == v {
			return true
		}
	}
	return false
}

// EntityRef is a polymorphic reference to an owning record. Notes and
// documents attach through it rather than through a relational foreign key,
// so orphan pruning on delete is the store's job.
type EntityRef struct {
	Kind EntityKind `json:"kind" db:"entity_kind"`
	ID   uuid.UUID  `json:"id" db:"entity_id"`
}
