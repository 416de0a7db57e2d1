package sqlitegw

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentledger/internal/models"
)

// Row types mirror the entity structs with gorm tags. Nested structures
// (rent history, checklists) are stored as serialized JSON text and parsed
// back on load.

type propertyRow struct {
	ID              uuid.UUID `gorm:"primaryKey;type:text"`
	Name            string    `gorm:"not null"`
	AddressLine1    string    `gorm:"not null"`
	AddressLine2    *string
	City            string `gorm:"not null"`
	State           string
	ZipCode         string
	PropertyType    *string
	PurchasePrice   *decimal.Decimal `gorm:"type:text"`
	PurchaseDate    *time.Time
	AnnualInsurance *decimal.Decimal `gorm:"type:text"`
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (propertyRow) TableName() string { return "properties" }

type unitRow struct {
	ID          uuid.UUID `gorm:"primaryKey;type:text"`
	PropertyID  uuid.UUID `gorm:"not null;index"`
	UnitNumber  string    `gorm:"not null"`
	Bedrooms    int
	Bathrooms   float64
	MonthlyRent decimal.Decimal `gorm:"type:text;not null"`
	Available   bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (unitRow) TableName() string { return "units" }

type tenantRow struct {
	ID          uuid.UUID `gorm:"primaryKey;type:text"`
	UnitID      uuid.UUID `gorm:"not null;index"`
	PropertyID  uuid.UUID `gorm:"not null;index"`
	FirstName   string    `gorm:"not null"`
	LastName    string    `gorm:"not null"`
	Email       *string
	Phone       *string
	LeaseStart  time.Time
	LeaseEnd    time.Time
	MonthlyRent decimal.Decimal `gorm:"type:text;not null"`
	Deposit     decimal.Decimal `gorm:"type:text;not null"`
	Autopay     bool            `gorm:"not null;default:false"`
	RentHistory string          `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (tenantRow) TableName() string { return "tenants" }

type expenseRow struct {
	ID          uuid.UUID       `gorm:"primaryKey;type:text"`
	PropertyID  uuid.UUID       `gorm:"not null;index"`
	UnitID      *uuid.UUID      `gorm:"index"`
	VendorID    *uuid.UUID      `gorm:"index"`
	Category    string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:text;not null"`
	Date        time.Time
	Description string
	Recurring   bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (expenseRow) TableName() string { return "expenses" }

type paymentRow struct {
	ID          uuid.UUID       `gorm:"primaryKey;type:text"`
	TenantID    uuid.UUID       `gorm:"not null;index"`
	UnitID      uuid.UUID       `gorm:"not null;index"`
	PropertyID  uuid.UUID       `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:text;not null"`
	Date        time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
	Method      *string
	Note        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (paymentRow) TableName() string { return "payments" }

type maintenanceRow struct {
	ID          uuid.UUID  `gorm:"primaryKey;type:text"`
	PropertyID  uuid.UUID  `gorm:"not null;index"`
	UnitID      *uuid.UUID `gorm:"index"`
	TenantID    *uuid.UUID `gorm:"index"`
	VendorID    *uuid.UUID `gorm:"index"`
	Title       string     `gorm:"not null"`
	Description string
	Priority    string `gorm:"not null;default:'medium'"`
	Status      string `gorm:"not null;default:'open'"`
	Checklist   string `gorm:"type:text"`
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (maintenanceRow) TableName() string { return "maintenance_requests" }

type activityLogRow struct {
	ID         uuid.UUID `gorm:"primaryKey;type:text"`
	EntityKind string    `gorm:"not null;index:idx_activity_ref"`
	EntityID   uuid.UUID `gorm:"not null;index:idx_activity_ref"`
	Note       string    `gorm:"not null"`
	CreatedAt  time.Time
}

func (activityLogRow) TableName() string { return "activity_logs" }

type communicationLogRow struct {
	ID        uuid.UUID `gorm:"primaryKey;type:text"`
	TenantID  uuid.UUID `gorm:"not null;index"`
	Channel   string
	Note      string `gorm:"not null"`
	CreatedAt time.Time
}

func (communicationLogRow) TableName() string { return "communication_logs" }

type vendorRow struct {
	ID        uuid.UUID `gorm:"primaryKey;type:text"`
	Name      string    `gorm:"not null"`
	Specialty *string
	Phone     *string
	Email     *string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (vendorRow) TableName() string { return "vendors" }

type documentRow struct {
	ID          uuid.UUID `gorm:"primaryKey;type:text"`
	EntityKind  string    `gorm:"not null;index:idx_document_ref"`
	EntityID    uuid.UUID `gorm:"not null;index:idx_document_ref"`
	FileName    string    `gorm:"not null"`
	StoredName  string    `gorm:"not null"`
	ContentType *string
	Size        int64
	CreatedAt   time.Time
}

func (documentRow) TableName() string { return "documents" }

func allRowModels() []any {
	return []any{
		&propertyRow{}, &unitRow{}, &tenantRow{}, &expenseRow{}, &paymentRow{},
		&maintenanceRow{}, &activityLogRow{}, &communicationLogRow{},
		&vendorRow{}, &documentRow{},
	}
}

func toPropertyRow(p models.Property) propertyRow { return propertyRow(p) }

func fromPropertyRow(r propertyRow) models.Property { return models.Property(r) }

func toUnitRow(u models.Unit) unitRow { return unitRow(u) }

func fromUnitRow(r unitRow) models.Unit { return models.Unit(r) }

func toTenantRow(t models.Tenant) tenantRow {
	return tenantRow{
		ID:          t.ID,
		UnitID:      t.UnitID,
		PropertyID:  t.PropertyID,
		FirstName:   t.FirstName,
		LastName:    t.LastName,
		Email:       t.Email,
		Phone:       t.Phone,
		LeaseStart:  t.LeaseStart,
		LeaseEnd:    t.LeaseEnd,
		MonthlyRent: t.MonthlyRent,
		Deposit:     t.Deposit,
		Autopay:     t.Autopay,
		RentHistory: marshalJSON(t.RentHistory),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func fromTenantRow(r tenantRow) models.Tenant {
	t := models.Tenant{
		ID:          r.ID,
		UnitID:      r.UnitID,
		PropertyID:  r.PropertyID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		LeaseStart:  r.LeaseStart,
		LeaseEnd:    r.LeaseEnd,
		MonthlyRent: r.MonthlyRent,
		Deposit:     r.Deposit,
		Autopay:     r.Autopay,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	unmarshalJSON(r.RentHistory, &t.RentHistory)
	return t
}

func toExpenseRow(e models.Expense) expenseRow {
	return expenseRow{
		ID:          e.ID,
		PropertyID:  e.PropertyID,
		UnitID:      e.UnitID,
		VendorID:    e.VendorID,
		Category:    string(e.Category),
		Amount:      e.Amount,
		Date:        e.Date,
		Description: e.Description,
		Recurring:   e.Recurring,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func fromExpenseRow(r expenseRow) models.Expense {
	return models.Expense{
		ID:          r.ID,
		PropertyID:  r.PropertyID,
		UnitID:      r.UnitID,
		VendorID:    r.VendorID,
		Category:    models.ExpenseCategory(r.Category),
		Amount:      r.Amount,
		Date:        r.Date,
		Description: r.Description,
		Recurring:   r.Recurring,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toPaymentRow(p models.Payment) paymentRow {
	var method *string
	if p.Method != nil {
		m := string(*p.Method)
		method = &m
	}
	return paymentRow{
		ID:          p.ID,
		TenantID:    p.TenantID,
		UnitID:      p.UnitID,
		PropertyID:  p.PropertyID,
		Amount:      p.Amount,
		Date:        p.Date,
		PeriodStart: p.PeriodStart,
		PeriodEnd:   p.PeriodEnd,
		Method:      method,
		Note:        p.Note,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func fromPaymentRow(r paymentRow) models.Payment {
	var method *models.PaymentMethod
	if r.Method != nil {
		m := models.PaymentMethod(*r.Method)
		method = &m
	}
	return models.Payment{
		ID:          r.ID,
		TenantID:    r.TenantID,
		UnitID:      r.UnitID,
		PropertyID:  r.PropertyID,
		Amount:      r.Amount,
		Date:        r.Date,
		PeriodStart: r.PeriodStart,
		PeriodEnd:   r.PeriodEnd,
		Method:      method,
		Note:        r.Note,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toMaintenanceRow(m models.MaintenanceRequest) maintenanceRow {
	return maintenanceRow{
		ID:          m.ID,
		PropertyID:  m.PropertyID,
		UnitID:      m.UnitID,
		TenantID:    m.TenantID,
		VendorID:    m.VendorID,
		Title:       m.Title,
		Description: m.Description,
		Priority:    string(m.Priority),
		Status:      string(m.Status),
		Checklist:   marshalJSON(m.Checklist),
		ResolvedAt:  m.ResolvedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromMaintenanceRow(r maintenanceRow) models.MaintenanceRequest {
	m := models.MaintenanceRequest{
		ID:          r.ID,
		PropertyID:  r.PropertyID,
		UnitID:      r.UnitID,
		TenantID:    r.TenantID,
		VendorID:    r.VendorID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    models.MaintenancePriority(r.Priority),
		Status:      models.MaintenanceStatus(r.Status),
		ResolvedAt:  r.ResolvedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	unmarshalJSON(r.Checklist, &m.Checklist)
	return m
}

func toActivityLogRow(a models.ActivityLog) activityLogRow {
	return activityLogRow{
		ID:         a.ID,
		EntityKind: string(a.Ref.Kind),
		EntityID:   a.Ref.ID,
		Note:       a.Note,
		CreatedAt:  a.CreatedAt,
	}
}

func fromActivityLogRow(r activityLogRow) models.ActivityLog {
	return models.ActivityLog{
		ID:        r.ID,
		Ref:       models.EntityRef{Kind: models.EntityKind(r.EntityKind), ID: r.EntityID},
		Note:      r.Note,
		CreatedAt: r.CreatedAt,
	}
}

func toCommunicationLogRow(c models.CommunicationLog) communicationLogRow {
	return communicationLogRow(c)
}

func fromCommunicationLogRow(r communicationLogRow) models.CommunicationLog {
	return models.CommunicationLog(r)
}

func toVendorRow(v models.Vendor) vendorRow { return vendorRow(v) }

func fromVendorRow(r vendorRow) models.Vendor { return models.Vendor(r) }

func toDocumentRow(d models.Document) documentRow {
	return documentRow{
		ID:          d.ID,
		EntityKind:  string(d.Ref.Kind),
		EntityID:    d.Ref.ID,
		FileName:    d.FileName,
		StoredName:  d.StoredName,
		ContentType: d.ContentType,
		Size:        d.Size,
		CreatedAt:   d.CreatedAt,
	}
}

func fromDocumentRow(r documentRow) models.Document {
	return models.Document{
		ID:          r.ID,
		Ref:         models.EntityRef{Kind: models.EntityKind(r.EntityKind), ID: r.EntityID},
		FileName:    r.FileName,
		StoredName:  r.StoredName,
		ContentType: r.ContentType,
		Size:        r.Size,
		CreatedAt:   r.CreatedAt,
	}
}

func marshalJSON(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func unmarshalJSON(data string, v any) {
	if data == "" {
		return
	}
	// Rows with unreadable nested text keep going with the field empty.
	_ = json.Unmarshal([]byte(data), v)
}
