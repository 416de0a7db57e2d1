package models

import (
	"time"

	"github.com/google/uuid"
)

type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
	PriorityUrgent MaintenancePriority = "urgent"
)

type MaintenanceStatus string

const (
	StatusOpen       MaintenanceStatus = "open"
	StatusInProgress MaintenanceStatus = "in_progress"
	StatusCompleted  MaintenanceStatus = "completed"
	StatusCancelled  MaintenanceStatus = "cancelled"
)

// ChecklistItem is one line of an inspection checklist, stored as serialized
// JSON alongside the request.
type ChecklistItem struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

type MaintenanceRequest struct {
	ID          uuid.UUID           `json:"id" db:"id"`
	PropertyID  uuid.UUID           `json:"property_id" db:"property_id"`
	UnitID      *uuid.UUID          `json:"unit_id" db:"unit_id"`
	TenantID    *uuid.UUID          `json:"tenant_id" db:"tenant_id"`
	VendorID    *uuid.UUID          `json:"vendor_id" db:"vendor_id"`
	Title       string              `json:"title" db:"title"`
	Description string              `json:"description" db:"description"`
	Priority    MaintenancePriority `json:"priority" db:"priority"`
	Status      MaintenanceStatus   `json:"status" db:"status"`
	Checklist   []ChecklistItem     `json:"checklist" db:"checklist"`
	ResolvedAt  *time.Time          `json:"resolved_at" db:"resolved_at"`
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" db:"updated_at"`
}

type MaintenancePatch struct {
	UnitID      *uuid.UUID           `json:"unit_id"`
	TenantID    *uuid.UUID           `json:"tenant_id"`
	VendorID    *uuid.UUID           `json:"vendor_id"`
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Priority    *MaintenancePriority `json:"priority"`
	Status      *MaintenanceStatus   `json:"status"`
	Checklist   []ChecklistItem      `json:"checklist"`
}

// Apply merges the patch. A transition into completed stamps ResolvedAt;
// leaving completed clears it again.
func (m *MaintenanceRequest) Apply(patch MaintenancePatch, now time.Time) {
	if patch.UnitID != nil {
		m.UnitID = patch.UnitID
	}
	if patch.TenantID != nil {
		m.TenantID = patch.TenantID
	}
	if patch.VendorID != nil {
		m.VendorID = patch.VendorID
	}
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.Priority != nil {
		m.Priority = *patch.Priority
	}
	if patch.Checklist != nil {
		m.Checklist = patch.Checklist
	}
	if patch.Status != nil && *patch.Status != m.Status {
		m.Status = *patch.Status
		if m.Status == StatusCompleted {
			resolved := now
			m.ResolvedAt = &resolved
		} else {
			m.ResolvedAt = nil
		}
	}
}
