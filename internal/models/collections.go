package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Collections is the full entity collection set: everything the application
// persists, held together so it can be snapshotted, restored, or replaced
// atomically.
type Collections struct {
	Properties        []Property           `json:"properties"`
	Units             []Unit               `json:"units"`
	Tenants           []Tenant             `json:"tenants"`
	Expenses          []Expense            `json:"expenses"`
	Payments          []Payment            `json:"payments"`
	Maintenance       []MaintenanceRequest `json:"maintenance_requests"`
	ActivityLogs      []ActivityLog        `json:"activity_logs"`
	CommunicationLogs []CommunicationLog   `json:"communication_logs"`
	Vendors           []Vendor             `json:"vendors"`
	Documents         []Document           `json:"documents"`
}

func NewCollections() *Collections {
	return &Collections{
		Properties:        []Property{},
		Units:             []Unit{},
		Tenants:           []Tenant{},
		Expenses:          []Expense{},
		Payments:          []Payment{},
		Maintenance:       []MaintenanceRequest{},
		ActivityLogs:      []ActivityLog{},
		CommunicationLogs: []CommunicationLog{},
		Vendors:           []Vendor{},
		Documents:         []Document{},
	}
}

// Clone returns a deep, independent copy of the whole collection set.
// Snapshots taken for undo must not alias the live state.
func (c *Collections) Clone() *Collections {
	out := &Collections{
		Properties:        make([]Property, len(c.Properties)),
		Units:             make([]Unit, len(c.Units)),
		Tenants:           make([]Tenant, len(c.Tenants)),
		Expenses:          make([]Expense, len(c.Expenses)),
		Payments:          make([]Payment, len(c.Payments)),
		Maintenance:       make([]MaintenanceRequest, len(c.Maintenance)),
		ActivityLogs:      make([]ActivityLog, len(c.ActivityLogs)),
		CommunicationLogs: make([]CommunicationLog, len(c.CommunicationLogs)),
		Vendors:           make([]Vendor, len(c.Vendors)),
		Documents:         make([]Document, len(c.Documents)),
	}
	for i, v := range c.Properties {
		out.Properties[i] = cloneProperty(v)
	}
	for i, v := range c.Units {
		out.Units[i] = v
	}
	for i, v := range c.Tenants {
		out.Tenants[i] = cloneTenant(v)
	}
	for i, v := range c.Expenses {
		out.Expenses[i] = cloneExpense(v)
	}
	for i, v := range c.Payments {
		out.Payments[i] = clonePayment(v)
	}
	for i, v := range c.Maintenance {
		out.Maintenance[i] = cloneMaintenance(v)
	}
	copy(out.ActivityLogs, c.ActivityLogs)
	copy(out.CommunicationLogs, c.CommunicationLogs)
	for i, v := range c.Vendors {
		out.Vendors[i] = cloneVendor(v)
	}
	for i, v := range c.Documents {
		out.Documents[i] = cloneDocument(v)
	}
	return out
}

// Sanitize drops records without a usable ID and returns how many were
// removed. Malformed rows fail individually; they never poison a whole load.
func (c *Collections) Sanitize() int {
	dropped := 0
	c.Properties, dropped = filterByID(c.Properties, func(v Property) uuid.UUID { return v.ID }, dropped)
	c.Units, dropped = filterByID(c.Units, func(v Unit) uuid.UUID { return v.ID }, dropped)
	c.Tenants, dropped = filterByID(c.Tenants, func(v Tenant) uuid.UUID { return v.ID }, dropped)
	c.Expenses, dropped = filterByID(c.Expenses, func(v Expense) uuid.UUID { return v.ID }, dropped)
	c.Payments, dropped = filterByID(c.Payments, func(v Payment) uuid.UUID { return v.ID }, dropped)
	c.Maintenance, dropped = filterByID(c.Maintenance, func(v MaintenanceRequest) uuid.UUID { return v.ID }, dropped)
	c.ActivityLogs, dropped = filterByID(c.ActivityLogs, func(v ActivityLog) uuid.UUID { return v.ID }, dropped)
	c.CommunicationLogs, dropped = filterByID(c.CommunicationLogs, func(v CommunicationLog) uuid.UUID { return v.ID }, dropped)
	c.Vendors, dropped = filterByID(c.Vendors, func(v Vendor) uuid.UUID { return v.ID }, dropped)
	c.Documents, dropped = filterByID(c.Documents, func(v Document) uuid.UUID { return v.ID }, dropped)
	return dropped
}

func filterByID[T any](in []T, id func(T) uuid.UUID, dropped int) ([]T, int) {
	out := in[:0]
	for _, v := range in {
		if id(v) == uuid.Nil {
			dropped++
			continue
		}
		out = append(out, v)
	}
	return out, dropped
}

func cloneProperty(p Property) Property {
	p.AddressLine2 = cloneStr(p.AddressLine2)
	p.PropertyType = cloneStr(p.PropertyType)
	p.PurchasePrice = cloneDec(p.PurchasePrice)
	p.PurchaseDate = cloneTime(p.PurchaseDate)
	p.AnnualInsurance = cloneDec(p.AnnualInsurance)
	p.Notes = cloneStr(p.Notes)
	return p
}

func cloneTenant(t Tenant) Tenant {
	t.Email = cloneStr(t.Email)
	t.Phone = cloneStr(t.Phone)
	if t.RentHistory != nil {
		history := make([]RentChange, len(t.RentHistory))
		copy(history, t.RentHistory)
		t.RentHistory = history
	}
	return t
}

func cloneExpense(e Expense) Expense {
	e.UnitID = cloneID(e.UnitID)
	e.VendorID = cloneID(e.VendorID)
	return e
}

func clonePayment(p Payment) Payment {
	if p.Method != nil {
		m := *p.Method
		p.Method = &m
	}
	p.Note = cloneStr(p.Note)
	return p
}

func cloneMaintenance(m MaintenanceRequest) MaintenanceRequest {
	m.UnitID = cloneID(m.UnitID)
	m.TenantID = cloneID(m.TenantID)
	m.VendorID = cloneID(m.VendorID)
	m.ResolvedAt = cloneTime(m.ResolvedAt)
	if m.Checklist != nil {
		items := make([]ChecklistItem, len(m.Checklist))
		copy(items, m.Checklist)
		m.Checklist = items
	}
	return m
}

func cloneVendor(v Vendor) Vendor {
	v.Specialty = cloneStr(v.Specialty)
	v.Phone = cloneStr(v.Phone)
	v.Email = cloneStr(v.Email)
	v.Notes = cloneStr(v.Notes)
	return v
}

func cloneDocument(d Document) Document {
	d.ContentType = cloneStr(d.ContentType)
	return d
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneDec(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
