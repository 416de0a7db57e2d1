package postgresgw

import (
	"context"
	"encoding/json"

	"rentledger/internal/models"
)

func upsertProperty(ctx context.Context, tx executor, p *models.Property) error {
	query := `
		INSERT INTO properties (id, name, address_line1, address_line2, city, state, zip_code, property_type, purchase_price, purchase_date, annual_insurance, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, address_line1 = EXCLUDED.address_line1, address_line2 = EXCLUDED.address_line2,
			city = EXCLUDED.city, state = EXCLUDED.state, zip_code = EXCLUDED.zip_code,
			property_type = EXCLUDED.property_type, purchase_price = EXCLUDED.purchase_price,
			purchase_date = EXCLUDED.purchase_date, annual_insurance = EXCLUDED.annual_insurance,
			notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at
	`
	_, err := tx.Exec(ctx, query, p.ID, p.Name, p.AddressLine1, p.AddressLine2, p.City, p.State, p.ZipCode, p.PropertyType, p.PurchasePrice, p.PurchaseDate, p.AnnualInsurance, p.Notes, p.CreatedAt, p.UpdatedAt)
	return err
}

func upsertUnit(ctx context.Context, tx executor, u *models.Unit) error {
	query := `
		INSERT INTO units (id, property_id, unit_number, bedrooms, bathrooms, monthly_rent, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			property_id = EXCLUDED.property_id, unit_number = EXCLUDED.unit_number,
			bedrooms = EXCLUDED.bedrooms, bathrooms = EXCLUDED.bathrooms,
			monthly_rent = EXCLUDED.monthly_rent, available = EXCLUDED.available,
			updated_at = EXCLUDED.updated_at
	`
	_, err := tx.Exec(ctx, query, u.ID, u.PropertyID, u.UnitNumber, u.Bedrooms, u.Bathrooms, u.MonthlyRent, u.Available, u.CreatedAt, u.UpdatedAt)
	return err
}

func upsertTenant(ctx context.Context, tx executor, t *models.Tenant) error {
	history, err := json.Marshal(t.RentHistory)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO tenants (id, unit_id, property_id, first_name, last_name, email, phone, lease_start, lease_end, monthly_rent, deposit, autopay, rent_history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			unit_id = EXCLUDED.unit_id, property_id = EXCLUDED.property_id,
			first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
			email = EXCLUDED.email, phone = EXCLUDED.phone,
			lease_start = EXCLUDED.lease_start, lease_end = EXCLUDED.lease_end,
			monthly_rent = EXCLUDED.monthly_rent, deposit = EXCLUDED.deposit,
			autopay = EXCLUDED.autopay, rent_history = EXCLUDED.rent_history,
			updated_at = EXCLUDED.updated_at
	`
	_, err = tx.Exec(ctx, query, t.ID, t.UnitID, t.PropertyID, t.FirstName, t.LastName, t.Email, t.Phone, t.LeaseStart, t.LeaseEnd, t.MonthlyRent, t.Deposit, t.Autopay, string(history), t.CreatedAt, t.UpdatedAt)
	return err
}

func upsertExpense(ctx context.Context, tx executor, e *models.Expense) error {
	query := `
		INSERT INTO expenses (id, property_id, unit_id, vendor_id, category, amount, date, description, recurring, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			property_id = EXCLUDED.property_id, unit_id = EXCLUDED.unit_id,
			vendor_id = EXCLUDED.vendor_id, category = EXCLUDED.category,
			amount = EXCLUDED.amount, date = EXCLUDED.date,
			description = EXCLUDED.description, recurring = EXCLUDED.recurring,
			updated_at = EXCLUDED.updated_at
	`
	_, err := tx.Exec(ctx, query, e.ID, e.PropertyID, e.UnitID, e.VendorID, string(e.Category), e.Amount, e.Date, e.Description, e.Recurring, e.CreatedAt, e.UpdatedAt)
	return err
}

func upsertPayment(ctx context.Context, tx executor, p *models.Payment) error {
	var method *string
	if p.Method != nil {
		m := string(*p.Method)
		method = &m
	}
	query := `
		INSERT INTO payments (id, tenant_id, unit_id, property_id, amount, date, period_start, period_end, method, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			tenant_id = EXCLUDED.tenant_id, unit_id = EXCLUDED.unit_id,
			property_id = EXCLUDED.property_id, amount = EXCLUDED.amount,
			date = EXCLUDED.date, period_start = EXCLUDED.period_start,
			period_end = EXCLUDED.period_end, method = EXCLUDED.method,
			note = EXCLUDED.note, updated_at = EXCLUDED.updated_at
	`
	_, err := tx.Exec(ctx, query, p.ID, p.TenantID, p.UnitID, p.PropertyID, p.Amount, p.Date, p.PeriodStart, p.PeriodEnd, method, p.Note, p.CreatedAt, p.UpdatedAt)
	return err
}

func upsertMaintenance(ctx context.Context, tx executor, m *models.MaintenanceRequest) error {
	checklist, err := json.Marshal(m.Checklist)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO maintenance_requests (id, property_id, unit_id, tenant_id, vendor_id, title, description, priority, status, checklist, resolved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			property_id = EXCLUDED.property_id, unit_id = EXCLUDED.unit_id,
			tenant_id = EXCLUDED.tenant_id, vendor_id = EXCLUDED.vendor_id,
			title = EXCLUDED.title, description = EXCLUDED.description,
			priority = EXCLUDED.priority, status = EXCLUDED.status,
			checklist = EXCLUDED.checklist, resolved_at = EXCLUDED.resolved_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err = tx.Exec(ctx, query, m.ID, m.PropertyID, m.UnitID, m.TenantID, m.VendorID, m.Title, m.Description, string(m.Priority), string(m.Status), string(checklist), m.ResolvedAt, m.CreatedAt, m.UpdatedAt)
	return err
}

func upsertActivityLog(ctx context.Context, tx executor, a *models.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, entity_kind, entity_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := tx.Exec(ctx, query, a.ID, string(a.Ref.Kind), a.Ref.ID, a.Note, a.CreatedAt)
	return err
}

func upsertCommunicationLog(ctx context.Context, tx executor, c *models.CommunicationLog) error {
	query := `
		INSERT INTO communication_logs (id, tenant_id, channel, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := tx.Exec(ctx, query, c.ID, c.TenantID, c.Channel, c.Note, c.CreatedAt)
	return err
}

func upsertVendor(ctx context.Context, tx executor, v *models.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, specialty, phone, email, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, specialty = EXCLUDED.specialty,
			phone = EXCLUDED.phone, email = EXCLUDED.email,
			notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at
	`
	_, err := tx.Exec(ctx, query, v.ID, v.Name, v.Specialty, v.Phone, v.Email, v.Notes, v.CreatedAt, v.UpdatedAt)
	return err
}

func upsertDocument(ctx context.Context, tx executor, d *models.Document) error {
	query := `
		INSERT INTO documents (id, entity_kind, entity_id, file_name, stored_name, content_type, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := tx.Exec(ctx, query, d.ID, string(d.Ref.Kind), d.Ref.ID, d.FileName, d.StoredName, d.ContentType, d.Size, d.CreatedAt)
	return err
}

func loadProperties(ctx context.Context, db executor, out *models.Collections) error {
	query := `
		SELECT id, name, address_line1, address_line2, city, state, zip_code, property_type, purchase_price, purchase_date, annual_insurance, notes, created_at, updated_at
		FROM properties
	`
	rows, err := db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		p := models.Property{}
		if err := rows.Scan(&p.ID, &p.Name, &p.AddressLine1, &p.AddressLine2, &p.City, &p.State, &p.ZipCode, &p.PropertyType, &p.PurchasePrice, &p.PurchaseDate, &p.AnnualInsurance, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		out.Properties = append(out.Properties, p)
	}
	return rows.Err()
}

func loadUnits(ctx context.Context, db executor, out *models.Collections) error {
	query := `
		SELECT id, property_id, unit_number, bedrooms, bathrooms, monthly_rent, available, created_at, updated_at
		FROM units
	`
	rows, err := db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		u := models.Unit{}
		if err := rows.Scan(&u.ID, &u.PropertyID, &u.UnitNumber, &u.Bedrooms, &u.Bathrooms, &u.MonthlyRent, &u.Available, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		out.Units = append(out.Units, u)
	}
	return rows.Err()
}

func loadTenants(ctx context.Context, db executor, out *models.Collections) error {
	query := `
		SELECT id, unit_id, property_id, first_name, last_name, email, phone, lease_start, lease_end, monthly_rent, deposit, autopay, rent_history, created_at, updated_at
		FROM tenants
	`
	rows, err := db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		t := models.Tenant{}
		var history string
		if err := rows.Scan(&t.ID, &t.UnitID, &t.PropertyID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.LeaseStart, &t.LeaseEnd, &t.MonthlyRent, &t.Deposit, &t.Autopay, &history, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return err
		}
		if history != "" {
			_ = json.Unmarshal([]byte(history), &t.RentHistory)
		}
		out.Tenants = append(out.Tenants, t)
	}
	return rows.Err()
}

func loadExpenses(ctx context.Context, db executor, out *models.Collections) error {
	query := `
		SELECT id, property_id, unit_id, vendor_id, category, amount, date, description, recurring, created_at, updated_at
		FROM expenses
	`
	rows, err := db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		e := models.Expense{}
		var category string
		if err := rows.Scan(&e.ID, &e.PropertyID, &e.UnitID, &e.VendorID, &category, &e.Amount, &e.Date, &e.Description, &e.Recurring, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return err
		}
		e.Category = models.ExpenseCategory(category)
		out.Expenses = append(out.Expenses, e)
	}
	return rows.Err()
}

func loadPayments(ctx context.Context, db executor, out *models.Collections) error {
	query := `
		SELECT id, tenant_id, unit_id, property_id, amount, date, period_start, period_end, method, note, created_at, updated_at
		FROM payments
	`
	rows, err := db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		p := models.Payment{}
		var method *string
		if err := rows.Scan(&p.ID, &p.TenantID, &p.UnitID, &p.PropertyID, &p.Amount, &p.Date, &p.PeriodStart, &p.PeriodEnd, &method, &p.Note, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		if method != nil {
			m := models.PaymentMethod(*method)
			p.Method = &m
		}
		out.Payments = append(out.Payments, p)
	}
	return rows.Err()
}

func loadMaintenance(ctx context.Context, db executor, out *models.Collections) error {
	query := `
		SELECT id, property_id, unit_id, tenant_id, vendor_id, title, description, priority, status, checklist, resolved_at, created_at, updated_at
		FROM maintenance_requests
	`
	rows, err := db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		m := models.MaintenanceRequest{}
		var priority, status, checklist string
		if err := rows.Scan(&m.ID, &m.PropertyID, &m.UnitID, &m.TenantID, &m.VendorID, &m.Title, &m.Description, &priority, &status, &checklist, &m.ResolvedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return err
		}
		m.Priority = models.MaintenancePriority(priority)
		m.Status = models.MaintenanceStatus(status)
		if checklist != "" {
			_ = json.Unmarshal([]byte(checklist), &m.Checklist)
		}
		out.Maintenance = append(out.Maintenance, m)
	}
	return rows.Err()
}

func loadActivityLogs(ctx context.Context, db executor, out *models.Collections) error {
	query := `SELECT id, entity_kind, entity_id, note, created_at FROM activity_logs`
	rows, err := db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		a := models.ActivityLog{}
		var kind string
		if err := rows.Scan(&a.ID, &kind, &a.Ref.ID, &a.Note, &a.CreatedAt); err != nil {
			return err
		}
		a.Ref.Kind = models.EntityKind(kind)
		out.ActivityLogs = append(out.ActivityLogs, a)
	}
	return rows.Err()
}

func loadCommunicationLogs(ctx context.Context, db executor, out *models.Collections) error {
	query := `SELECT id, tenant_id, channel, note, created_at FROM communication_logs`
	rows, err := db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		c := models.CommunicationLog{}
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Channel, &c.Note, &c.CreatedAt); err != nil {
			return err
		}
		out.CommunicationLogs = append(out.CommunicationLogs, c)
	}
	return rows.Err()
}

func loadVendors(ctx context.Context, db executor, out *models.Collections) error {
	query := `SELECT id, name, specialty, phone, email, notes, created_at, updated_at FROM vendors`
	rows, err := db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		v := models.Vendor{}
		if err := rows.Scan(&v.ID, &v.Name, &v.Specialty, &v.Phone, &v.Email, &v.Notes, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return err
		}
		out.Vendors = append(out.Vendors, v)
	}
	return rows.Err()
}

func loadDocuments(ctx context.Context, db executor, out *models.Collections) error {
	query := `SELECT id, entity_kind, entity_id, file_name, stored_name, content_type, size, created_at FROM documents`
	rows, err := db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		d := models.Document{}
		var kind string
		if err := rows.Scan(&d.ID, &kind, &d.Ref.ID, &d.FileName, &d.StoredName, &d.ContentType, &d.Size, &d.CreatedAt); err != nil {
			return err
		}
		d.Ref.Kind = models.EntityKind(kind)
		out.Documents = append(out.Documents, d)
	}
	return rows.Err()
}
