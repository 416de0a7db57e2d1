package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"rentledger/internal/models"
)

type SweepTestSuite struct {
	suite.Suite
	gw    *fakeGateway
	store *Store
	ctx   context.Context
}

func (suite *SweepTestSuite) SetupTest() {
	suite.gw = newFakeGateway()
	suite.store = New(suite.gw, zerolog.Nop())
	suite.ctx = context.Background()
	suite.Require().NoError(suite.store.Init(suite.ctx))
}

func (suite *SweepTestSuite) seedAutopayTenant(leaseStart, leaseEnd time.Time) models.Tenant {
	prop, err := suite.store.AddProperty(suite.ctx, models.Property{Name: "1 Main"})
	suite.Require().NoError(err)
	unit, err := suite.store.AddUnit(suite.ctx, models.Unit{
		PropertyID:  prop.ID,
		UnitNumber:  "A",
		MonthlyRent: decimal.NewFromInt(1000),
		Available:   false,
	})
	suite.Require().NoError(err)
	tenant, err := suite.store.AddTenant(suite.ctx, models.Tenant{
		UnitID:      unit.ID,
		FirstName:   "Grace",
		LastName:    "Hopper",
		LeaseStart:  leaseStart,
		LeaseEnd:    leaseEnd,
		MonthlyRent: decimal.NewFromInt(1000),
		Autopay:     true,
	})
	suite.Require().NoError(err)
	return *tenant
}

// A lease starting mid-January swept in March gets February and March
// payments, one per missing month.
func (suite *SweepTestSuite) TestAutopayCatchesUpMissedMonths() {
	tenant := suite.seedAutopayTenant(
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
	)

	res, err := suite.store.RunMonthlySweep(suite.ctx, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Equal(2, res.PaymentsCreated)

	payments := suite.store.Payments()
	suite.Require().Len(payments, 2)
	months := map[string]bool{}
	for _, p := range payments {
		suite.Equal(tenant.ID, p.TenantID)
		suite.True(p.Amount.Equal(decimal.NewFromInt(1000)))
		suite.Require().NotNil(p.Note)
		suite.Equal(models.AutopayNote, *p.Note)
		suite.Equal(1, p.Date.Day())
		months[p.Date.Format("2006-01")] = true
	}
	suite.True(months["2024-02"])
	suite.True(months["2024-03"])
}

func (suite *SweepTestSuite) TestAutopaySkipsMonthsAlreadyPaid() {
	tenant := suite.seedAutopayTenant(
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
	)
	_, err := suite.store.AddPayment(suite.ctx, models.Payment{
		TenantID: tenant.ID,
		Amount:   decimal.NewFromInt(1000),
		Date:     time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)

	res, err := suite.store.RunMonthlySweep(suite.ctx, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Equal(1, res.PaymentsCreated)
	suite.Len(suite.store.Payments(), 2)
}

// An open-ended lease (zero LeaseEnd) keeps generating through the current
// month.
func (suite *SweepTestSuite) TestAutopayOpenEndedLease() {
	tenant := suite.seedAutopayTenant(
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Time{},
	)

	res, err := suite.store.RunMonthlySweep(suite.ctx, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Equal(2, res.PaymentsCreated)

	payments := suite.store.Payments()
	suite.Require().Len(payments, 2)
	for _, p := range payments {
		suite.Equal(tenant.ID, p.TenantID)
	}
}

func (suite *SweepTestSuite) TestAutopayStopsAtLeaseEnd() {
	suite.seedAutopayTenant(
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	)

	res, err := suite.store.RunMonthlySweep(suite.ctx, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	// February and March only; the lease ended before April.
	suite.Equal(2, res.PaymentsCreated)
}

func (suite *SweepTestSuite) TestSweepIdempotentPerMonth() {
	suite.seedAutopayTenant(
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
	)

	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	first, err := suite.store.RunMonthlySweep(suite.ctx, now)
	suite.Require().NoError(err)
	suite.Equal(2, first.PaymentsCreated)

	second, err := suite.store.RunMonthlySweep(suite.ctx, now.AddDate(0, 0, 5))
	suite.Require().NoError(err)
	suite.True(second.Skipped)
	suite.Zero(second.PaymentsCreated)
	suite.Len(suite.store.Payments(), 2)

	// A new month runs again.
	third, err := suite.store.RunMonthlySweep(suite.ctx, now.AddDate(0, 1, 0))
	suite.Require().NoError(err)
	suite.False(third.Skipped)
	suite.Equal(1, third.PaymentsCreated)
}

// A recurring expense dated January swept in April yields copies for
// February, March, and April.
func (suite *SweepTestSuite) TestRecurringExpenseBackfill() {
	prop, err := suite.store.AddProperty(suite.ctx, models.Property{Name: "1 Main"})
	suite.Require().NoError(err)
	_, err = suite.store.AddExpense(suite.ctx, models.Expense{
		PropertyID:  prop.ID,
		Category:    models.ExpenseInsurance,
		Amount:      decimal.NewFromInt(120),
		Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Description: "landlord policy",
		Recurring:   true,
	})
	suite.Require().NoError(err)

	res, err := suite.store.RunMonthlySweep(suite.ctx, time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Equal(3, res.ExpensesCreated)

	var copies int
	for _, e := range suite.store.Expenses() {
		if e.Recurring {
			continue
		}
		copies++
		suite.Equal(1, e.Date.Day())
		suite.Equal("landlord policy", e.Description)
		suite.True(e.Amount.Equal(decimal.NewFromInt(120)))
	}
	suite.Equal(3, copies)
}

func (suite *SweepTestSuite) TestRecurringExpenseDedupeByTuple() {
	prop, err := suite.store.AddProperty(suite.ctx, models.Property{Name: "1 Main"})
	suite.Require().NoError(err)
	_, err = suite.store.AddExpense(suite.ctx, models.Expense{
		PropertyID:  prop.ID,
		Category:    models.ExpenseInsurance,
		Amount:      decimal.NewFromInt(120),
		Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Description: "landlord policy",
		Recurring:   true,
	})
	suite.Require().NoError(err)
	// A manual entry already covers February.
	_, err = suite.store.AddExpense(suite.ctx, models.Expense{
		PropertyID:  prop.ID,
		Category:    models.ExpenseInsurance,
		Amount:      decimal.NewFromInt(120),
		Date:        time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC),
		Description: "landlord policy",
	})
	suite.Require().NoError(err)

	res, err := suite.store.RunMonthlySweep(suite.ctx, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Equal(1, res.ExpensesCreated)
}

func (suite *SweepTestSuite) TestSweepFailureKeepsMonthOpen() {
	suite.seedAutopayTenant(
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
	)

	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	suite.gw.failNext = errors.New("storage offline")
	_, err := suite.store.RunMonthlySweep(suite.ctx, now)
	suite.Error(err)
	suite.Empty(suite.store.Payments())
	suite.Empty(suite.store.LastSweepMonth())

	// Retry in the same month succeeds and generates the full set.
	res, err := suite.store.RunMonthlySweep(suite.ctx, now)
	suite.Require().NoError(err)
	suite.Equal(2, res.PaymentsCreated)
}

func (suite *SweepTestSuite) TestSweepWithNothingToDoMarksMonth() {
	res, err := suite.store.RunMonthlySweep(suite.ctx, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.True(res.Skipped)
	suite.Equal("2024-03", suite.store.LastSweepMonth())
}

func (suite *SweepTestSuite) TestSweepNotifiesSubscribersOnce() {
	suite.seedAutopayTenant(
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
	)
	var calls int
	suite.store.Subscribe(func() { calls++ })

	_, err := suite.store.RunMonthlySweep(suite.ctx, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Equal(1, calls)
}

func (suite *SweepTestSuite) TestGeneratedPaymentCarriesTenantRefs() {
	tenant := suite.seedAutopayTenant(
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
	)

	_, err := suite.store.RunMonthlySweep(suite.ctx, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	payments := suite.store.Payments()
	suite.Require().Len(payments, 1)
	suite.Equal(tenant.UnitID, payments[0].UnitID)
	suite.Equal(tenant.PropertyID, payments[0].PropertyID)
	suite.NotEqual(uuid.Nil, payments[0].ID)
}

func TestSweepTestSuite(t *testing.T) {
	suite.Run(t, new(SweepTestSuite))
}
