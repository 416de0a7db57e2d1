package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentledger/internal/gateway"
	"rentledger/internal/models"
)

// SweepResult reports what a monthly sweep generated.
type SweepResult struct {
	MonthKey        string `json:"month_key"`
	PaymentsCreated int    `json:"payments_created"`
	ExpensesCreated int    `json:"expenses_created"`
	Skipped         bool   `json:"skipped"`
}

// RunMonthlySweep generates autopay rent payments and recurring expense
// copies up to the month containing now. The sweep runs at most once per
// calendar month per process; a second call in the same month is a no-op.
// Generated records are persisted in a single batch, so a gateway failure
// leaves both the ledger and the month marker untouched.
func (s *Store) RunMonthlySweep(ctx context.Context, now time.Time) (SweepResult, error) {
	now = now.UTC()
	res := SweepResult{MonthKey: monthKey(now)}

	err := s.withWrite(func() error {
		if s.lastSweepMonth == res.MonthKey {
			res.Skipped = true
			return errNoop
		}

		payments := s.autopayPayments(now)
		expenses := s.recurringExpenseCopies(now)
		if len(payments) == 0 && len(expenses) == 0 {
			s.lastSweepMonth = res.MonthKey
			res.Skipped = true
			return errNoop
		}

		ops := make([]gateway.Operation, 0, len(payments)+len(expenses))
		for i := range payments {
			ops = append(ops, gateway.Upsert(gateway.TablePayments, &payments[i]))
		}
		for i := range expenses {
			ops = append(ops, gateway.Upsert(gateway.TableExpenses, &expenses[i]))
		}
		if err := s.persist(ctx, ops...); err != nil {
			return err
		}

		s.data.Payments = append(s.data.Payments, payments...)
		s.data.Expenses = append(s.data.Expenses, expenses...)
		s.lastSweepMonth = res.MonthKey
		res.PaymentsCreated = len(payments)
		res.ExpensesCreated = len(expenses)

		s.logger.Info().
			Str("month", res.MonthKey).
			Int("payments", res.PaymentsCreated).
			Int("expenses", res.ExpensesCreated).
			Msg("monthly sweep applied")
		return nil
	})
	return res, err
}

// LastSweepMonth returns the month key of the last applied sweep, empty if
// none ran yet this process.
func (s *Store) LastSweepMonth() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSweepMonth
}

// autopayPayments walks each autopay tenant's lease from the month after the
// lease start through the current month and fills every month that has no
// payment on record for that tenant. A zero lease end means the lease is
// open-ended and generation is capped at the current month only. Callers
// hold the write lock.
func (s *Store) autopayPayments(now time.Time) []models.Payment {
	current := monthStart(now)

	// Months a tenant already has a payment in, by tenant.
	covered := make(map[uuid.UUID]map[string]bool, len(s.data.Tenants))
	for _, p := range s.data.Payments {
		m := covered[p.TenantID]
		if m == nil {
			m = map[string]bool{}
			covered[p.TenantID] = m
		}
		m[monthKey(p.Date)] = true
	}

	var out []models.Payment
	for _, t := range s.data.Tenants {
		if !t.Autopay {
			continue
		}
		end := current
		if !t.LeaseEnd.IsZero() && monthStart(t.LeaseEnd).Before(end) {
			end = monthStart(t.LeaseEnd)
		}
		for m := nextMonth(monthStart(t.LeaseStart)); !m.After(end); m = nextMonth(m) {
			if covered[t.ID][monthKey(m)] {
				continue
			}
			ts := time.Now().UTC()
			method := models.MethodTransfer
			note := models.AutopayNote
			out = append(out, models.Payment{
				ID:          uuid.New(),
				TenantID:    t.ID,
				UnitID:      t.UnitID,
				PropertyID:  t.PropertyID,
				Amount:      t.MonthlyRent,
				Date:        m,
				PeriodStart: m,
				PeriodEnd:   monthEnd(m),
				Method:      &method,
				Note:        &note,
				CreatedAt:   ts,
				UpdatedAt:   ts,
			})
		}
	}
	return out
}

// recurringExpenseCopies backfills one-off copies of each recurring expense
// for every month after its original date, up to the current month. A copy is
// skipped when any expense already exists for the same property, category,
// description, and month. Callers hold the write lock.
func (s *Store) recurringExpenseCopies(now time.Time) []models.Expense {
	current := monthStart(now)

	type expenseKey struct {
		property    uuid.UUID
		category    models.ExpenseCategory
		description string
		month       string
	}
	seen := make(map[expenseKey]bool, len(s.data.Expenses))
	for _, e := range s.data.Expenses {
		seen[expenseKey{e.PropertyID, e.Category, e.Description, monthKey(e.Date)}] = true
	}

	var out []models.Expense
	for _, e := range s.data.Expenses {
		if !e.Recurring {
			continue
		}
		for m := nextMonth(monthStart(e.Date)); !m.After(current); m = nextMonth(m) {
			key := expenseKey{e.PropertyID, e.Category, e.Description, monthKey(m)}
			if seen[key] {
				continue
			}
			seen[key] = true
			ts := time.Now().UTC()
			out = append(out, models.Expense{
				ID:          uuid.New(),
				PropertyID:  e.PropertyID,
				UnitID:      copyIDPtr(e.UnitID),
				VendorID:    copyIDPtr(e.VendorID),
				Category:    e.Category,
				Amount:      e.Amount,
				Date:        m,
				Description: e.Description,
				Recurring:   false,
				CreatedAt:   ts,
				UpdatedAt:   ts,
			})
		}
	}
	return out
}

func copyIDPtr(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func nextMonth(t time.Time) time.Time {
	return t.AddDate(0, 1, 0)
}

func monthEnd(monthFirst time.Time) time.Time {
	return monthFirst.AddDate(0, 1, -1)
}
