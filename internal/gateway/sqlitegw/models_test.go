package sqlitegw

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentledger/internal/models"
)

func TestTenantRowCarriesRentHistory(t *testing.T) {
	tenant := models.Tenant{
		ID:          uuid.New(),
		UnitID:      uuid.New(),
		PropertyID:  uuid.New(),
		FirstName:   "Ada",
		LastName:    "Lovelace",
		LeaseStart:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		LeaseEnd:    time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
		MonthlyRent: decimal.NewFromInt(1200),
		Deposit:     decimal.NewFromInt(1200),
		Autopay:     true,
		RentHistory: []models.RentChange{{
			OldRent:   decimal.NewFromInt(1100),
			NewRent:   decimal.NewFromInt(1200),
			ChangedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		}},
	}

	row := toTenantRow(tenant)
	assert.NotEmpty(t, row.RentHistory)

	back := fromTenantRow(row)
	assert.Equal(t, tenant.ID, back.ID)
	assert.True(t, back.MonthlyRent.Equal(tenant.MonthlyRent))
	require.Len(t, back.RentHistory, 1)
	assert.True(t, back.RentHistory[0].OldRent.Equal(decimal.NewFromInt(1100)))
}

func TestMaintenanceRowSplitsChecklist(t *testing.T) {
	unitID := uuid.New()
	req := models.MaintenanceRequest{
		ID:         uuid.New(),
		PropertyID: uuid.New(),
		UnitID:     &unitID,
		Title:      "leaky faucet",
		Priority:   models.PriorityHigh,
		Status:     models.StatusInProgress,
		Checklist: []models.ChecklistItem{
			{Label: "shut off water", Done: true},
			{Label: "replace washer"},
		},
	}

	back := fromMaintenanceRow(toMaintenanceRow(req))
	assert.Equal(t, req.ID, back.ID)
	require.NotNil(t, back.UnitID)
	assert.Equal(t, unitID, *back.UnitID)
	require.Len(t, back.Checklist, 2)
	assert.True(t, back.Checklist[0].Done)
	assert.Equal(t, "replace washer", back.Checklist[1].Label)
}

func TestDocumentRowSplitsEntityRef(t *testing.T) {
	doc := models.Document{
		ID:         uuid.New(),
		Ref:        models.EntityRef{Kind: models.KindTenant, ID: uuid.New()},
		FileName:   "lease.pdf",
		StoredName: "obj-1.pdf",
		Size:       2048,
	}

	row := toDocumentRow(doc)
	assert.Equal(t, string(models.KindTenant), row.EntityKind)
	assert.Equal(t, doc.Ref.ID, row.EntityID)

	back := fromDocumentRow(row)
	assert.Equal(t, doc.Ref, back.Ref)
	assert.Equal(t, doc.FileName, back.FileName)
}

func TestActivityLogRowRoundTrip(t *testing.T) {
	log := models.ActivityLog{
		ID:        uuid.New(),
		Ref:       models.EntityRef{Kind: models.KindProperty, ID: uuid.New()},
		Note:      "roof inspected",
		CreatedAt: time.Now().UTC(),
	}

	back := fromActivityLogRow(toActivityLogRow(log))
	assert.Equal(t, log, back)
}
