package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is an append-only note attached to a property, unit, or
// tenant. No UpdatedAt: entries are never edited, only pruned when their
// owner goes away.
type ActivityLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Ref       EntityRef `json:"ref" db:"ref"`
	Note      string    `json:"note" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CommunicationLog records contact with a specific tenant (call, email,
// text, in person). Append-only, same as ActivityLog.
type CommunicationLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Channel   string    `json:"channel" db:"channel"`
	Note      string    `json:"note" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
