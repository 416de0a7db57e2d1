package metrics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"rentledger/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixtureCollections() (*models.Collections, uuid.UUID) {
	c := models.NewCollections()
	propertyID := uuid.New()
	unitA := uuid.New()
	unitB := uuid.New()
	tenantID := uuid.New()

	c.Properties = []models.Property{{ID: propertyID, Name: "12 Oak St"}}
	c.Units = []models.Unit{
		{ID: unitA, PropertyID: propertyID, UnitNumber: "A", MonthlyRent: decimal.NewFromInt(1000)},
		{ID: unitB, PropertyID: propertyID, UnitNumber: "B", MonthlyRent: decimal.NewFromInt(900), Available: true},
	}
	c.Tenants = []models.Tenant{{
		ID:          tenantID,
		UnitID:      unitA,
		PropertyID:  propertyID,
		FirstName:   "Ada",
		LeaseStart:  date(2024, 1, 15),
		LeaseEnd:    date(2024, 12, 31),
		MonthlyRent: decimal.NewFromInt(1000),
	}}
	c.Payments = []models.Payment{
		{ID: uuid.New(), TenantID: tenantID, UnitID: unitA, PropertyID: propertyID, Amount: decimal.NewFromInt(1000), Date: date(2024, 1, 20)},
		{ID: uuid.New(), TenantID: tenantID, UnitID: unitA, PropertyID: propertyID, Amount: decimal.NewFromInt(600), Date: date(2024, 2, 3)},
	}
	c.Expenses = []models.Expense{
		{ID: uuid.New(), PropertyID: propertyID, Category: models.ExpenseInsurance, Amount: decimal.NewFromInt(120), Date: date(2024, 1, 5), Description: "policy"},
		{ID: uuid.New(), PropertyID: propertyID, Category: models.ExpenseMaintenance, Amount: decimal.NewFromInt(80), Date: date(2024, 2, 9), Description: "filters"},
	}
	return c, tenantID
}

func TestComputeRentRoll(t *testing.T) {
	c, _ := fixtureCollections()

	roll := ComputeRentRoll(c, date(2024, 2, 1))
	assert.Equal(t, "2024-02", roll.Month)
	assert.Len(t, roll.Entries, 1)
	assert.True(t, roll.TotalExpected.Equal(decimal.NewFromInt(1000)))
	assert.True(t, roll.TotalCollected.Equal(decimal.NewFromInt(600)))
	assert.True(t, roll.Entries[0].Outstanding.Equal(decimal.NewFromInt(400)))
}

func TestComputeRentRollOutsideLease(t *testing.T) {
	c, _ := fixtureCollections()
	roll := ComputeRentRoll(c, date(2025, 6, 1))
	assert.True(t, roll.TotalExpected.IsZero())
}

func TestComputeProfitLoss(t *testing.T) {
	c, _ := fixtureCollections()

	pl := ComputeProfitLoss(c, date(2024, 1, 1), date(2024, 12, 31))
	assert.True(t, pl.TotalIncome.Equal(decimal.NewFromInt(1600)))
	assert.True(t, pl.TotalSpent.Equal(decimal.NewFromInt(200)))
	assert.True(t, pl.Net.Equal(decimal.NewFromInt(1400)))
	assert.Len(t, pl.Entries, 1)
	assert.Equal(t, "12 Oak St", pl.Entries[0].PropertyName)
}

func TestComputeProfitLossRangeFilter(t *testing.T) {
	c, _ := fixtureCollections()
	pl := ComputeProfitLoss(c, date(2024, 2, 1), date(2024, 2, 29))
	assert.True(t, pl.TotalIncome.Equal(decimal.NewFromInt(600)))
	assert.True(t, pl.TotalSpent.Equal(decimal.NewFromInt(80)))
}

func TestComputeOccupancy(t *testing.T) {
	c, _ := fixtureCollections()

	occ := ComputeOccupancy(c, date(2024, 3, 1))
	assert.Equal(t, 2, occ.TotalUnits)
	assert.Equal(t, 1, occ.OccupiedUnits)
	assert.InDelta(t, 0.5, occ.Rate, 0.001)

	// After the lease ends nothing is occupied.
	occ = ComputeOccupancy(c, date(2025, 3, 1))
	assert.Zero(t, occ.OccupiedUnits)
}

func TestComputeReliability(t *testing.T) {
	c, tenantID := fixtureCollections()

	// Lease months elapsed by March: Jan, Feb, Mar. Payments cover Jan, Feb.
	rel := ComputeReliability(c, tenantID, date(2024, 3, 15))
	assert.Equal(t, 3, rel.MonthsDue)
	assert.Equal(t, 2, rel.MonthsCovered)
	assert.InDelta(t, 2.0/3.0, rel.Score, 0.001)
}

func TestComputeReliabilityUnknownTenant(t *testing.T) {
	c, _ := fixtureCollections()
	rel := ComputeReliability(c, uuid.New(), date(2024, 3, 15))
	assert.Equal(t, 1.0, rel.Score)
	assert.Zero(t, rel.MonthsDue)
}
