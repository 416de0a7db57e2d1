package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentledger/internal/gateway"
	"rentledger/internal/models"
)

// idSet is a small helper for cascade bookkeeping.
type idSet map[uuid.UUID]struct{}

func (s idSet) add(id uuid.UUID)       { s[id] = struct{}{} }
func (s idSet) has(id uuid.UUID) bool  { _, ok := s[id]; return ok }
func (s idSet) ids() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

func (s *Store) persist(ctx context.Context, ops ...gateway.Operation) error {
	batch := ops[:0]
	for _, op := range ops {
		if op.Kind == gateway.OpDelete && len(op.IDs) == 0 {
			continue
		}
		batch = append(batch, op)
	}
	if err := s.gw.BatchApply(ctx, batch); err != nil {
		return fmt.Errorf("persist batch: %w", err)
	}
	return nil
}

// Properties

func (s *Store) AddProperty(ctx context.Context, p models.Property) (*models.Property, error) {
	err := s.withWrite(func() error {
		now := time.Now().UTC()
		p.ID = uuid.New()
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := s.persist(ctx, gateway.Upsert(gateway.TableProperties, &p)); err != nil {
			return err
		}
		s.data.Properties = append(s.data.Properties, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdateProperty(ctx context.Context, id uuid.UUID, patch models.PropertyPatch) (*models.Property, error) {
	var updated *models.Property
	err := s.withWrite(func() error {
		idx := indexOf(s.data.Properties, id, func(v models.Property) uuid.UUID { return v.ID })
		if idx < 0 {
			return errNoop
		}
		rec := s.data.Properties[idx]
		rec.Apply(patch)
		rec.UpdatedAt = time.Now().UTC()
		if err := s.persist(ctx, gateway.Upsert(gateway.TableProperties, &rec)); err != nil {
			return err
		}
		s.data.Properties[idx] = rec
		updated = &rec
		return nil
	})
	return updated, err
}

// DeleteProperty removes the property and everything that hangs off it:
// units, tenants, expenses, payments, maintenance requests, the tenants'
// communication logs, and every polymorphic note or document whose owner is
// among the deleted records.
func (s *Store) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	return s.withWrite(func() error {
		if indexOf(s.data.Properties, id, func(v models.Property) uuid.UUID { return v.ID }) < 0 {
			return errNoop
		}

		units := idSet{}
		for _, u := range s.data.Units {
			if u.PropertyID == id {
				units.add(u.ID)
			}
		}
		tenants := idSet{}
		for _, t := range s.data.Tenants {
			if t.PropertyID == id || units.has(t.UnitID) {
				tenants.add(t.ID)
			}
		}
		expenses := idSet{}
		for _, e := range s.data.Expenses {
			if e.PropertyID == id {
				expenses.add(e.ID)
			}
		}
		payments := idSet{}
		for _, p := range s.data.Payments {
			if p.PropertyID == id || tenants.has(p.TenantID) {
				payments.add(p.ID)
			}
		}
		maintenance := idSet{}
		for _, m := range s.data.Maintenance {
			if m.PropertyID == id {
				maintenance.add(m.ID)
			}
		}
		comms := idSet{}
		for _, c := range s.data.CommunicationLogs {
			if tenants.has(c.TenantID) {
				comms.add(c.ID)
			}
		}

		gone := func(ref models.EntityRef) bool {
			switch ref.Kind {
			case models.KindProperty:
				return ref.ID == id
			case models.KindUnit:
				return units.has(ref.ID)
			case models.KindTenant:
				return tenants.has(ref.ID)
			case models.KindExpense:
				return expenses.has(ref.ID)
			case models.KindPayment:
				return payments.has(ref.ID)
			case models.KindMaintenance:
				return maintenance.has(ref.ID)
			case models.KindVendor:
				return false
			}
			return false
		}

		activity := idSet{}
		for _, a := range s.data.ActivityLogs {
			if gone(a.Ref) {
				activity.add(a.ID)
			}
		}
		documents := idSet{}
		for _, d := range s.data.Documents {
			if gone(d.Ref) {
				documents.add(d.ID)
			}
		}

		ops := []gateway.Operation{
			gateway.Delete(gateway.TableDocuments, documents.ids()...),
			gateway.Delete(gateway.TableActivityLogs, activity.ids()...),
			gateway.Delete(gateway.TableCommunicationLogs, comms.ids()...),
			gateway.Delete(gateway.TableMaintenance, maintenance.ids()...),
			gateway.Delete(gateway.TablePayments, payments.ids()...),
			gateway.Delete(gateway.TableExpenses, expenses.ids()...),
			gateway.Delete(gateway.TableTenants, tenants.ids()...),
			gateway.Delete(gateway.TableUnits, units.ids()...),
			gateway.Delete(gateway.TableProperties, id),
		}
		if err := s.persist(ctx, ops...); err != nil {
			return err
		}

		s.data.Properties = dropByID(s.data.Properties, idSet{id: struct{}{}}, func(v models.Property) uuid.UUID { return v.ID })
		s.data.Units = dropByID(s.data.Units, units, func(v models.Unit) uuid.UUID { return v.ID })
		s.data.Tenants = dropByID(s.data.Tenants, tenants, func(v models.Tenant) uuid.UUID { return v.ID })
		s.data.Expenses = dropByID(s.data.Expenses, expenses, func(v models.Expense) uuid.UUID { return v.ID })
		s.data.Payments = dropByID(s.data.Payments, payments, func(v models.Payment) uuid.UUID { return v.ID })
		s.data.Maintenance = dropByID(s.data.Maintenance, maintenance, func(v models.MaintenanceRequest) uuid.UUID { return v.ID })
		s.data.CommunicationLogs = dropByID(s.data.CommunicationLogs, comms, func(v models.CommunicationLog) uuid.UUID { return v.ID })
		s.data.ActivityLogs = dropByID(s.data.ActivityLogs, activity, func(v models.ActivityLog) uuid.UUID { return v.ID })
		s.data.Documents = dropByID(s.data.Documents, documents, func(v models.Document) uuid.UUID { return v.ID })
		return nil
	})
}

// Units

func (s *Store) AddUnit(ctx context.Context, u models.Unit) (*models.Unit, error) {
	err := s.withWrite(func() error {
		now := time.Now().UTC()
		u.ID = uuid.New()
		u.CreatedAt = now
		u.UpdatedAt = now
		if err := s.persist(ctx, gateway.Upsert(gateway.TableUnits, &u)); err != nil {
			return err
		}
		s.data.Units = append(s.data.Units, u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) UpdateUnit(ctx context.Context, id uuid.UUID, patch models.UnitPatch) (*models.Unit, error) {
	var updated *models.Unit
	err := s.withWrite(func() error {
		idx := indexOf(s.data.Units, id, func(v models.Unit) uuid.UUID { return v.ID })
		if idx < 0 {
			return errNoop
		}
		rec := s.data.Units[idx]
		rec.Apply(patch)
		rec.UpdatedAt = time.Now().UTC()
		if err := s.persist(ctx, gateway.Upsert(gateway.TableUnits, &rec)); err != nil {
			return err
		}
		s.data.Units[idx] = rec
		updated = &rec
		return nil
	})
	return updated, err
}

// DeleteUnit cascades to the unit's tenants (and their payments, logs, and
// documents). Expenses and maintenance requests that pointed at the unit
// survive with the reference cleared.
func (s *Store) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	return s.withWrite(func() error {
		if indexOf(s.data.Units, id, func(v models.Unit) uuid.UUID { return v.ID }) < 0 {
			return errNoop
		}

		tenants := idSet{}
		for _, t := range s.data.Tenants {
			if t.UnitID == id {
				tenants.add(t.ID)
			}
		}
		payments := idSet{}
		for _, p := range s.data.Payments {
			if p.UnitID == id || tenants.has(p.TenantID) {
				payments.add(p.ID)
			}
		}
		comms := idSet{}
		for _, c := range s.data.CommunicationLogs {
			if tenants.has(c.TenantID) {
				comms.add(c.ID)
			}
		}
		gone := func(ref models.EntityRef) bool {
			switch ref.Kind {
			case models.KindUnit:
				return ref.ID == id
			case models.KindTenant:
				return tenants.has(ref.ID)
			case models.KindPayment:
				return payments.has(ref.ID)
			}
			return false
		}
		activity := idSet{}
		for _, a := range s.data.ActivityLogs {
			if gone(a.Ref) {
				activity.add(a.ID)
			}
		}
		documents := idSet{}
		for _, d := range s.data.Documents {
			if gone(d.Ref) {
				documents.add(d.ID)
			}
		}

		now := time.Now().UTC()
		ops := []gateway.Operation{
			gateway.Delete(gateway.TableDocuments, documents.ids()...),
			gateway.Delete(gateway.TableActivityLogs, activity.ids()...),
			gateway.Delete(gateway.TableCommunicationLogs, comms.ids()...),
			gateway.Delete(gateway.TablePayments, payments.ids()...),
			gateway.Delete(gateway.TableTenants, tenants.ids()...),
			gateway.Delete(gateway.TableUnits, id),
		}

		// Orphan clearing: records that reference the unit but are not owned
		// by it keep living with the reference gone.
		clearedExpenses := map[int]models.Expense{}
		for i, e := range s.data.Expenses {
			if e.UnitID != nil && *e.UnitID == id {
				e.UnitID = nil
				e.UpdatedAt = now
				clearedExpenses[i] = e
				ops = append(ops, gateway.Upsert(gateway.TableExpenses, &e))
			}
		}
		clearedMaintenance := map[int]models.MaintenanceRequest{}
		for i, m := range s.data.Maintenance {
			if m.UnitID != nil && *m.UnitID == id {
				m.UnitID = nil
				m.UpdatedAt = now
				clearedMaintenance[i] = m
				ops = append(ops, gateway.Upsert(gateway.TableMaintenance, &m))
			}
		}

		if err := s.persist(ctx, ops...); err != nil {
			return err
		}

		for i, e := range clearedExpenses {
			s.data.Expenses[i] = e
		}
		for i, m := range clearedMaintenance {
			s.data.Maintenance[i] = m
		}
		s.data.Units = dropByID(s.data.Units, idSet{id: struct{}{}}, func(v models.Unit) uuid.UUID { return v.ID })
		s.data.Tenants = dropByID(s.data.Tenants, tenants, func(v models.Tenant) uuid.UUID { return v.ID })
		s.data.Payments = dropByID(s.data.Payments, payments, func(v models.Payment) uuid.UUID { return v.ID })
		s.data.CommunicationLogs = dropByID(s.data.CommunicationLogs, comms, func(v models.CommunicationLog) uuid.UUID { return v.ID })
		s.data.ActivityLogs = dropByID(s.data.ActivityLogs, activity, func(v models.ActivityLog) uuid.UUID { return v.ID })
		s.data.Documents = dropByID(s.data.Documents, documents, func(v models.Document) uuid.UUID { return v.ID })
		return nil
	})
}

// Tenants

func (s *Store) AddTenant(ctx context.Context, t models.Tenant) (*models.Tenant, error) {
	err := s.withWrite(func() error {
		now := time.Now().UTC()
		t.ID = uuid.New()
		t.CreatedAt = now
		t.UpdatedAt = now
		if t.RentHistory == nil {
			t.RentHistory = []models.RentChange{}
		}
		// Denormalized property reference follows the unit.
		if idx := indexOf(s.data.Units, t.UnitID, func(v models.Unit) uuid.UUID { return v.ID }); idx >= 0 {
			t.PropertyID = s.data.Units[idx].PropertyID
		}
		if err := s.persist(ctx, gateway.Upsert(gateway.TableTenants, &t)); err != nil {
			return err
		}
		s.data.Tenants = append(s.data.Tenants, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) UpdateTenant(ctx context.Context, id uuid.UUID, patch models.TenantPatch) (*models.Tenant, error) {
	var updated *models.Tenant
	err := s.withWrite(func() error {
		idx := indexOf(s.data.Tenants, id, func(v models.Tenant) uuid.UUID { return v.ID })
		if idx < 0 {
			return errNoop
		}
		rec := s.data.Tenants[idx]
		rec.RentHistory = append([]models.RentChange(nil), rec.RentHistory...)
		now := time.Now().UTC()

		// Rent never changes silently.
		if patch.MonthlyRent != nil && !patch.MonthlyRent.Equal(rec.MonthlyRent) {
			rec.RentHistory = append(rec.RentHistory, models.RentChange{
				OldRent:   rec.MonthlyRent,
				NewRent:   *patch.MonthlyRent,
				ChangedAt: now,
			})
		}
		rec.Apply(patch)
		if patch.UnitID != nil {
			if uidx := indexOf(s.data.Units, rec.UnitID, func(v models.Unit) uuid.UUID { return v.ID }); uidx >= 0 {
				rec.PropertyID = s.data.Units[uidx].PropertyID
			}
		}
		rec.UpdatedAt = now
		if err := s.persist(ctx, gateway.Upsert(gateway.TableTenants, &rec)); err != nil {
			return err
		}
		s.data.Tenants[idx] = rec
		updated = &rec
		return nil
	})
	return updated, err
}

// DeleteTenant removes the tenant's payments, logs, and documents, and marks
// the vacated unit available again.
func (s *Store) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	return s.withWrite(func() error {
		idx := indexOf(s.data.Tenants, id, func(v models.Tenant) uuid.UUID { return v.ID })
		if idx < 0 {
			return errNoop
		}
		tenant := s.data.Tenants[idx]

		payments := idSet{}
		for _, p := range s.data.Payments {
			if p.TenantID == id {
				payments.add(p.ID)
			}
		}
		comms := idSet{}
		for _, c := range s.data.CommunicationLogs {
			if c.TenantID == id {
				comms.add(c.ID)
			}
		}
		gone := func(ref models.EntityRef) bool {
			switch ref.Kind {
			case models.KindTenant:
				return ref.ID == id
			case models.KindPayment:
				return payments.has(ref.ID)
			}
			return false
		}
		activity := idSet{}
		for _, a := range s.data.ActivityLogs {
			if gone(a.Ref) {
				activity.add(a.ID)
			}
		}
		documents := idSet{}
		for _, d := range s.data.Documents {
			if gone(d.Ref) {
				documents.add(d.ID)
			}
		}

		ops := []gateway.Operation{
			gateway.Delete(gateway.TableDocuments, documents.ids()...),
			gateway.Delete(gateway.TableActivityLogs, activity.ids()...),
			gateway.Delete(gateway.TableCommunicationLogs, comms.ids()...),
			gateway.Delete(gateway.TablePayments, payments.ids()...),
			gateway.Delete(gateway.TableTenants, id),
		}

		var vacated *models.Unit
		uidx := indexOf(s.data.Units, tenant.UnitID, func(v models.Unit) uuid.UUID { return v.ID })
		if uidx >= 0 && !s.data.Units[uidx].Available {
			u := s.data.Units[uidx]
			u.Available = true
			u.UpdatedAt = time.Now().UTC()
			vacated = &u
			ops = append(ops, gateway.Upsert(gateway.TableUnits, &u))
		}

		if err := s.persist(ctx, ops...); err != nil {
			return err
		}

		if vacated != nil {
			s.data.Units[uidx] = *vacated
		}
		s.data.Tenants = dropByID(s.data.Tenants, idSet{id: struct{}{}}, func(v models.Tenant) uuid.UUID { return v.ID })
		s.data.Payments = dropByID(s.data.Payments, payments, func(v models.Payment) uuid.UUID { return v.ID })
		s.data.CommunicationLogs = dropByID(s.data.CommunicationLogs, comms, func(v models.CommunicationLog) uuid.UUID { return v.ID })
		s.data.ActivityLogs = dropByID(s.data.ActivityLogs, activity, func(v models.ActivityLog) uuid.UUID { return v.ID })
		s.data.Documents = dropByID(s.data.Documents, documents, func(v models.Document) uuid.UUID { return v.ID })
		return nil
	})
}

// Expenses

func (s *Store) AddExpense(ctx context.Context, e models.Expense) (*models.Expense, error) {
	err := s.withWrite(func() error {
		now := time.Now().UTC()
		e.ID = uuid.New()
		e.CreatedAt = now
		e.UpdatedAt = now
		if err := s.persist(ctx, gateway.Upsert(gateway.TableExpenses, &e)); err != nil {
			return err
		}
		s.data.Expenses = append(s.data.Expenses, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) UpdateExpense(ctx context.Context, id uuid.UUID, patch models.ExpensePatch) (*models.Expense, error) {
	var updated *models.Expense
	err := s.withWrite(func() error {
		idx := indexOf(s.data.Expenses, id, func(v models.Expense) uuid.UUID { return v.ID })
		if idx < 0 {
			return errNoop
		}
		rec := s.data.Expenses[idx]
		rec.Apply(patch)
		rec.UpdatedAt = time.Now().UTC()
		if err := s.persist(ctx, gateway.Upsert(gateway.TableExpenses, &rec)); err != nil {
			return err
		}
		s.data.Expenses[idx] = rec
		updated = &rec
		return nil
	})
	return updated, err
}

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.deleteSimple(ctx, id, models.KindExpense, gateway.TableExpenses, func(set idSet) {
		s.data.Expenses = dropByID(s.data.Expenses, set, func(v models.Expense) uuid.UUID { return v.ID })
	}, func() bool {
		return indexOf(s.data.Expenses, id, func(v models.Expense) uuid.UUID { return v.ID }) >= 0
	})
}

// Payments

func (s *Store) AddPayment(ctx context.Context, p models.Payment) (*models.Payment, error) {
	err := s.withWrite(func() error {
		now := time.Now().UTC()
		p.ID = uuid.New()
		p.CreatedAt = now
		p.UpdatedAt = now
		// Denormalized references follow the tenant.
		if idx := indexOf(s.data.Tenants, p.TenantID, func(v models.Tenant) uuid.UUID { return v.ID }); idx >= 0 {
			p.UnitID = s.data.Tenants[idx].UnitID
			p.PropertyID = s.data.Tenants[idx].PropertyID
		}
		if err := s.persist(ctx, gateway.Upsert(gateway.TablePayments, &p)); err != nil {
			return err
		}
		s.data.Payments = append(s.data.Payments, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdatePayment(ctx context.Context, id uuid.UUID, patch models.PaymentPatch) (*models.Payment, error) {
	var updated *models.Payment
	err := s.withWrite(func() error {
		idx := indexOf(s.data.Payments, id, func(v models.Payment) uuid.UUID { return v.ID })
		if idx < 0 {
			return errNoop
		}
		rec := s.data.Payments[idx]
		rec.Apply(patch)
		rec.UpdatedAt = time.Now().UTC()
		if err := s.persist(ctx, gateway.Upsert(gateway.TablePayments, &rec)); err != nil {
			return err
		}
		s.data.Payments[idx] = rec
		updated = &rec
		return nil
	})
	return updated, err
}

func (s *Store) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return s.deleteSimple(ctx, id, models.KindPayment, gateway.TablePayments, func(set idSet) {
		s.data.Payments = dropByID(s.data.Payments, set, func(v models.Payment) uuid.UUID { return v.ID })
	}, func() bool {
		return indexOf(s.data.Payments, id, func(v models.Payment) uuid.UUID { return v.ID }) >= 0
	})
}

// Maintenance requests

func (s *Store) AddMaintenanceRequest(ctx context.Context, m models.MaintenanceRequest) (*models.MaintenanceRequest, error) {
	err := s.withWrite(func() error {
		now := time.Now().UTC()
		m.ID = uuid.New()
		m.CreatedAt = now
		m.UpdatedAt = now
		if m.Priority == "" {
			m.Priority = models.PriorityMedium
		}
		if m.Status == "" {
			m.Status = models.StatusOpen
		}
		if m.Status == models.StatusCompleted && m.ResolvedAt == nil {
			resolved := now
			m.ResolvedAt = &resolved
		}
		if err := s.persist(ctx, gateway.Upsert(gateway.TableMaintenance, &m)); err != nil {
			return err
		}
		s.data.Maintenance = append(s.data.Maintenance, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) UpdateMaintenanceRequest(ctx context.Context, id uuid.UUID, patch models.MaintenancePatch) (*models.MaintenanceRequest, error) {
	var updated *models.MaintenanceRequest
	err := s.withWrite(func() error {
		idx := indexOf(s.data.Maintenance, id, func(v models.MaintenanceRequest) uuid.UUID { return v.ID })
		if idx < 0 {
			return errNoop
		}
		rec := s.data.Maintenance[idx]
		now := time.Now().UTC()
		rec.Apply(patch, now)
		rec.UpdatedAt = now
		if err := s.persist(ctx, gateway.Upsert(gateway.TableMaintenance, &rec)); err != nil {
			return err
		}
		s.data.Maintenance[idx] = rec
		updated = &rec
		return nil
	})
	return updated, err
}

func (s *Store) DeleteMaintenanceRequest(ctx context.Context, id uuid.UUID) error {
	return s.deleteSimple(ctx, id, models.KindMaintenance, gateway.TableMaintenance, func(set idSet) {
		s.data.Maintenance = dropByID(s.data.Maintenance, set, func(v models.MaintenanceRequest) uuid.UUID { return v.ID })
	}, func() bool {
		return indexOf(s.data.Maintenance, id, func(v models.MaintenanceRequest) uuid.UUID { return v.ID }) >= 0
	})
}

// Vendors

func (s *Store) AddVendor(ctx context.Context, v models.Vendor) (*models.Vendor, error) {
	err := s.withWrite(func() error {
		now := time.Now().UTC()
		v.ID = uuid.New()
		v.CreatedAt = now
		v.UpdatedAt = now
		if err := s.persist(ctx, gateway.Upsert(gateway.TableVendors, &v)); err != nil {
			return err
		}
		s.data.Vendors = append(s.data.Vendors, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) UpdateVendor(ctx context.Context, id uuid.UUID, patch models.VendorPatch) (*models.Vendor, error) {
	var updated *models.Vendor
	err := s.withWrite(func() error {
		idx := indexOf(s.data.Vendors, id, func(v models.Vendor) uuid.UUID { return v.ID })
		if idx < 0 {
			return errNoop
		}
		rec := s.data.Vendors[idx]
		rec.Apply(patch)
		rec.UpdatedAt = time.Now().UTC()
		if err := s.persist(ctx, gateway.Upsert(gateway.TableVendors, &rec)); err != nil {
			return err
		}
		s.data.Vendors[idx] = rec
		updated = &rec
		return nil
	})
	return updated, err
}

// DeleteVendor clears (not deletes) vendor references on expenses and
// maintenance requests.
func (s *Store) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	return s.withWrite(func() error {
		if indexOf(s.data.Vendors, id, func(v models.Vendor) uuid.UUID { return v.ID }) < 0 {
			return errNoop
		}
		now := time.Now().UTC()
		activity := idSet{}
		for _, a := range s.data.ActivityLogs {
			if a.Ref.Kind == models.KindVendor && a.Ref.ID == id {
				activity.add(a.ID)
			}
		}
		documents := idSet{}
		for _, d := range s.data.Documents {
			if d.Ref.Kind == models.KindVendor && d.Ref.ID == id {
				documents.add(d.ID)
			}
		}

		ops := []gateway.Operation{
			gateway.Delete(gateway.TableDocuments, documents.ids()...),
			gateway.Delete(gateway.TableActivityLogs, activity.ids()...),
			gateway.Delete(gateway.TableVendors, id),
		}
		clearedExpenses := map[int]models.Expense{}
		for i, e := range s.data.Expenses {
			if e.VendorID != nil && *e.VendorID == id {
				e.VendorID = nil
				e.UpdatedAt = now
				clearedExpenses[i] = e
				ops = append(ops, gateway.Upsert(gateway.TableExpenses, &e))
			}
		}
		clearedMaintenance := map[int]models.MaintenanceRequest{}
		for i, m := range s.data.Maintenance {
			if m.VendorID != nil && *m.VendorID == id {
				m.VendorID = nil
				m.UpdatedAt = now
				clearedMaintenance[i] = m
				ops = append(ops, gateway.Upsert(gateway.TableMaintenance, &m))
			}
		}

		if err := s.persist(ctx, ops...); err != nil {
			return err
		}

		for i, e := range clearedExpenses {
			s.data.Expenses[i] = e
		}
		for i, m := range clearedMaintenance {
			s.data.Maintenance[i] = m
		}
		s.data.Vendors = dropByID(s.data.Vendors, idSet{id: struct{}{}}, func(v models.Vendor) uuid.UUID { return v.ID })
		s.data.ActivityLogs = dropByID(s.data.ActivityLogs, activity, func(v models.ActivityLog) uuid.UUID { return v.ID })
		s.data.Documents = dropByID(s.data.Documents, documents, func(v models.Document) uuid.UUID { return v.ID })
		return nil
	})
}

// Logs

func (s *Store) AddActivityLog(ctx context.Context, a models.ActivityLog) (*models.ActivityLog, error) {
	if !a.Ref.Kind.Valid() {
		return nil, fmt.Errorf("invalid entity kind %q", a.Ref.Kind)
	}
	err := s.withWrite(func() error {
		a.ID = uuid.New()
		a.CreatedAt = time.Now().UTC()
		if err := s.persist(ctx, gateway.Upsert(gateway.TableActivityLogs, &a)); err != nil {
			return err
		}
		s.data.ActivityLogs = append(s.data.ActivityLogs, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) DeleteActivityLog(ctx context.Context, id uuid.UUID) error {
	return s.withWrite(func() error {
		if indexOf(s.data.ActivityLogs, id, func(v models.ActivityLog) uuid.UUID { return v.ID }) < 0 {
			return errNoop
		}
		if err := s.persist(ctx, gateway.Delete(gateway.TableActivityLogs, id)); err != nil {
			return err
		}
		s.data.ActivityLogs = dropByID(s.data.ActivityLogs, idSet{id: struct{}{}}, func(v models.ActivityLog) uuid.UUID { return v.ID })
		return nil
	})
}

func (s *Store) AddCommunicationLog(ctx context.Context, c models.CommunicationLog) (*models.CommunicationLog, error) {
	err := s.withWrite(func() error {
		c.ID = uuid.New()
		c.CreatedAt = time.Now().UTC()
		if err := s.persist(ctx, gateway.Upsert(gateway.TableCommunicationLogs, &c)); err != nil {
			return err
		}
		s.data.CommunicationLogs = append(s.data.CommunicationLogs, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) DeleteCommunicationLog(ctx context.Context, id uuid.UUID) error {
	return s.withWrite(func() error {
		if indexOf(s.data.CommunicationLogs, id, func(v models.CommunicationLog) uuid.UUID { return v.ID }) < 0 {
			return errNoop
		}
		if err := s.persist(ctx, gateway.Delete(gateway.TableCommunicationLogs, id)); err != nil {
			return err
		}
		s.data.CommunicationLogs = dropByID(s.data.CommunicationLogs, idSet{id: struct{}{}}, func(v models.CommunicationLog) uuid.UUID { return v.ID })
		return nil
	})
}

// Documents

func (s *Store) AddDocument(ctx context.Context, d models.Document) (*models.Document, error) {
	if !d.Ref.Kind.Valid() {
		return nil, fmt.Errorf("invalid entity kind %q", d.Ref.Kind)
	}
	err := s.withWrite(func() error {
		d.ID = uuid.New()
		d.CreatedAt = time.Now().UTC()
		if err := s.persist(ctx, gateway.Upsert(gateway.TableDocuments, &d)); err != nil {
			return err
		}
		s.data.Documents = append(s.data.Documents, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDocument removes the metadata row. Blob cleanup is the caller's
// best-effort concern; it never rolls the record delete back.
func (s *Store) DeleteDocument(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	var deleted *models.Document
	err := s.withWrite(func() error {
		idx := indexOf(s.data.Documents, id, func(v models.Document) uuid.UUID { return v.ID })
		if idx < 0 {
			return errNoop
		}
		doc := s.data.Documents[idx]
		if err := s.persist(ctx, gateway.Delete(gateway.TableDocuments, id)); err != nil {
			return err
		}
		s.data.Documents = dropByID(s.data.Documents, idSet{id: struct{}{}}, func(v models.Document) uuid.UUID { return v.ID })
		deleted = &doc
		return nil
	})
	return deleted, err
}

// deleteSimple handles entities whose only cascade concern is pruning
// activity logs and documents that point at them.
func (s *Store) deleteSimple(ctx context.Context, id uuid.UUID, kind models.EntityKind, table gateway.Table, drop func(idSet), exists func() bool) error {
	return s.withWrite(func() error {
		if !exists() {
			return errNoop
		}
		activity := idSet{}
		for _, a := range s.data.ActivityLogs {
			if a.Ref.Kind == kind && a.Ref.ID == id {
				activity.add(a.ID)
			}
		}
		documents := idSet{}
		for _, d := range s.data.Documents {
			if d.Ref.Kind == kind && d.Ref.ID == id {
				documents.add(d.ID)
			}
		}
		ops := []gateway.Operation{
			gateway.Delete(gateway.TableDocuments, documents.ids()...),
			gateway.Delete(gateway.TableActivityLogs, activity.ids()...),
			gateway.Delete(table, id),
		}
		if err := s.persist(ctx, ops...); err != nil {
			return err
		}
		drop(idSet{id: struct{}{}})
		s.data.ActivityLogs = dropByID(s.data.ActivityLogs, activity, func(v models.ActivityLog) uuid.UUID { return v.ID })
		s.data.Documents = dropByID(s.data.Documents, documents, func(v models.Document) uuid.UUID { return v.ID })
		return nil
	})
}

func indexOf[T any](in []T, id uuid.UUID, key func(T) uuid.UUID) int {
	for i, v := range in {
		if key(v) == id {
			return i
		}
	}
	return -1
}

func dropByID[T any](in []T, remove idSet, key func(T) uuid.UUID) []T {
	if len(remove) == 0 {
		return in
	}
	out := in[:0]
	for _, v := range in {
		if remove.has(key(v)) {
			continue
		}
		out = append(out, v)
	}
	return out
}
