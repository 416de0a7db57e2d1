package postgresgw

// Schema bootstrap. The host process owns the schema outright, so plain
// CREATE TABLE IF NOT EXISTS at open time stands in for a migration tool.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		address_line1 TEXT NOT NULL,
		address_line2 TEXT,
		city TEXT NOT NULL,
		state TEXT NOT NULL DEFAULT '',
		zip_code TEXT NOT NULL DEFAULT '',
		property_type TEXT,
		purchase_price NUMERIC,
		purchase_date TIMESTAMPTZ,
		annual_insurance NUMERIC,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS units (
		id UUID PRIMARY KEY,
		property_id UUID NOT NULL,
		unit_number TEXT NOT NULL,
		bedrooms INT NOT NULL DEFAULT 0,
		bathrooms DOUBLE PRECISION NOT NULL DEFAULT 0,
		monthly_rent NUMERIC NOT NULL,
		available BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tenants (
		id UUID PRIMARY KEY,
		unit_id UUID NOT NULL,
		property_id UUID NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		lease_start TIMESTAMPTZ NOT NULL,
		lease_end TIMESTAMPTZ NOT NULL,
		monthly_rent NUMERIC NOT NULL,
		deposit NUMERIC NOT NULL,
		autopay BOOLEAN NOT NULL DEFAULT FALSE,
		rent_history TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id UUID PRIMARY KEY,
		property_id UUID NOT NULL,
		unit_id UUID,
		vendor_id UUID,
		category TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		recurring BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL,
		unit_id UUID NOT NULL,
		property_id UUID NOT NULL,
		amount NUMERIC NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		period_start TIMESTAMPTZ NOT NULL,
		period_end TIMESTAMPTZ NOT NULL,
		method TEXT,
		note TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS maintenance_requests (
		id UUID PRIMARY KEY,
		property_id UUID NOT NULL,
		unit_id UUID,
		tenant_id UUID,
		vendor_id UUID,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'medium',
		status TEXT NOT NULL DEFAULT 'open',
		checklist TEXT NOT NULL DEFAULT '',
		resolved_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS activity_logs (
		id UUID PRIMARY KEY,
		entity_kind TEXT NOT NULL,
		entity_id UUID NOT NULL,
		note TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS communication_logs (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL,
		channel TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS vendors (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		specialty TEXT,
		phone TEXT,
		email TEXT,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY,
		entity_kind TEXT NOT NULL,
		entity_id UUID NOT NULL,
		file_name TEXT NOT NULL,
		stored_name TEXT NOT NULL,
		content_type TEXT,
		size BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_units_property ON units (property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tenants_unit ON tenants (unit_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_tenant ON payments (tenant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_ref ON activity_logs (entity_kind, entity_id)`,
	`CREATE INDEX IF NOT EXISTS idx_document_ref ON documents (entity_kind, entity_id)`,
}
