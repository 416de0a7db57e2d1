// Package metrics computes derived figures over the ledger's collections.
// Every function here is pure: it reads a Collections value and returns a
// result, so callers decide when to recompute and what to cache.
package metrics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentledger/internal/models"
)

// RentRollEntry is one property's expected versus collected rent for a month.
type RentRollEntry struct {
	PropertyID   uuid.UUID       `json:"property_id"`
	PropertyName string          `json:"property_name"`
	Expected     decimal.Decimal `json:"expected"`
	Collected    decimal.Decimal `json:"collected"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// RentRoll summarizes a month across the portfolio.
type RentRoll struct {
	Month          string          `json:"month"`
	Entries        []RentRollEntry `json:"entries"`
	TotalExpected  decimal.Decimal `json:"total_expected"`
	TotalCollected decimal.Decimal `json:"total_collected"`
}

// ComputeRentRoll sums each active tenant's monthly rent as the expected
// amount and every payment dated inside the month as collected. A tenant is
// active for a month when the lease overlaps any day of it.
func ComputeRentRoll(c *models.Collections, month time.Time) RentRoll {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	byProperty := map[uuid.UUID]*RentRollEntry{}
	entry := func(propertyID uuid.UUID) *RentRollEntry {
		e, ok := byProperty[propertyID]
		if !ok {
			e = &RentRollEntry{
				PropertyID: propertyID,
				Expected:   decimal.Zero,
				Collected:  decimal.Zero,
			}
			for _, p := range c.Properties {
				if p.ID == propertyID {
					e.PropertyName = p.Name
					break
				}
			}
			byProperty[propertyID] = e
		}
		return e
	}

	for _, t := range c.Tenants {
		if t.LeaseStart.Before(next) && !t.LeaseEnd.Before(first) {
			e := entry(t.PropertyID)
			e.Expected = e.Expected.Add(t.MonthlyRent)
		}
	}
	for _, p := range c.Payments {
		if !p.Date.Before(first) && p.Date.Before(next) {
			e := entry(p.PropertyID)
			e.Collected = e.Collected.Add(p.Amount)
		}
	}

	roll := RentRoll{
		Month:          first.Format("2006-01"),
		TotalExpected:  decimal.Zero,
		TotalCollected: decimal.Zero,
	}
	for _, e := range byProperty {
		e.Outstanding = e.Expected.Sub(e.Collected)
		roll.TotalExpected = roll.TotalExpected.Add(e.Expected)
		roll.TotalCollected = roll.TotalCollected.Add(e.Collected)
		roll.Entries = append(roll.Entries, *e)
	}
	sort.Slice(roll.Entries, func(i, j int) bool {
		return roll.Entries[i].PropertyName < roll.Entries[j].PropertyName
	})
	return roll
}

// ProfitLossEntry is income minus expenses for one property over a range.
type ProfitLossEntry struct {
	PropertyID   uuid.UUID       `json:"property_id"`
	PropertyName string          `json:"property_name"`
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	Net          decimal.Decimal `json:"net"`
}

// ProfitLoss is the portfolio-wide statement for a date range.
type ProfitLoss struct {
	From        time.Time         `json:"from"`
	To          time.Time         `json:"to"`
	Entries     []ProfitLossEntry `json:"entries"`
	TotalIncome decimal.Decimal   `json:"total_income"`
	TotalSpent  decimal.Decimal   `json:"total_spent"`
	Net         decimal.Decimal   `json:"net"`
}

// ComputeProfitLoss counts payments dated in [from, to] as income and
// expenses dated in the same range as spend, grouped by property.
func ComputeProfitLoss(c *models.Collections, from, to time.Time) ProfitLoss {
	inRange := func(d time.Time) bool {
		return !d.Before(from) && !d.After(to)
	}

	byProperty := map[uuid.UUID]*ProfitLossEntry{}
	entry := func(propertyID uuid.UUID) *ProfitLossEntry {
		e, ok := byProperty[propertyID]
		if !ok {
			e = &ProfitLossEntry{
				PropertyID: propertyID,
				Income:     decimal.Zero,
				Expenses:   decimal.Zero,
			}
			for _, p := range c.Properties {
				if p.ID == propertyID {
					e.PropertyName = p.Name
					break
				}
			}
			byProperty[propertyID] = e
		}
		return e
	}

	for _, p := range c.Payments {
		if inRange(p.Date) {
			e := entry(p.PropertyID)
			e.Income = e.Income.Add(p.Amount)
		}
	}
	for _, x := range c.Expenses {
		if inRange(x.Date) {
			e := entry(x.PropertyID)
			e.Expenses = e.Expenses.Add(x.Amount)
		}
	}

	pl := ProfitLoss{
		From:        from,
		To:          to,
		TotalIncome: decimal.Zero,
		TotalSpent:  decimal.Zero,
	}
	for _, e := range byProperty {
		e.Net = e.Income.Sub(e.Expenses)
		pl.TotalIncome = pl.TotalIncome.Add(e.Income)
		pl.TotalSpent = pl.TotalSpent.Add(e.Expenses)
		pl.Entries = append(pl.Entries, *e)
	}
	pl.Net = pl.TotalIncome.Sub(pl.TotalSpent)
	sort.Slice(pl.Entries, func(i, j int) bool {
		return pl.Entries[i].PropertyName < pl.Entries[j].PropertyName
	})
	return pl
}

// Occupancy reports occupied versus total units, portfolio-wide.
type Occupancy struct {
	TotalUnits    int     `json:"total_units"`
	OccupiedUnits int     `json:"occupied_units"`
	Rate          float64 `json:"rate"`
}

// ComputeOccupancy treats a unit as occupied when any tenant's lease covers
// asOf. Units flagged unavailable but without an active lease do not count.
func ComputeOccupancy(c *models.Collections, asOf time.Time) Occupancy {
	occupied := map[uuid.UUID]bool{}
	for _, t := range c.Tenants {
		if !asOf.Before(t.LeaseStart) && !asOf.After(t.LeaseEnd) {
			occupied[t.UnitID] = true
		}
	}

	occ := Occupancy{TotalUnits: len(c.Units)}
	for _, u := range c.Units {
		if occupied[u.ID] {
			occ.OccupiedUnits++
		}
	}
	if occ.TotalUnits > 0 {
		occ.Rate = float64(occ.OccupiedUnits) / float64(occ.TotalUnits)
	}
	return occ
}

// Reliability scores how consistently a tenant has covered each month of the
// lease so far.
type Reliability struct {
	TenantID      uuid.UUID `json:"tenant_id"`
	MonthsDue     int       `json:"months_due"`
	MonthsCovered int       `json:"months_covered"`
	Score         float64   `json:"score"`
}

// ComputeReliability counts the lease months elapsed by asOf and the subset
// that have at least one payment on record. A tenant whose lease has not
// started yet scores 1.0.
func ComputeReliability(c *models.Collections, tenantID uuid.UUID, asOf time.Time) Reliability {
	r := Reliability{TenantID: tenantID, Score: 1.0}

	var tenant *models.Tenant
	for i := range c.Tenants {
		if c.Tenants[i].ID == tenantID {
			tenant = &c.Tenants[i]
			break
		}
	}
	if tenant == nil {
		return r
	}

	paid := map[string]bool{}
	for _, p := range c.Payments {
		if p.TenantID == tenantID {
			paid[p.Date.UTC().Format("2006-01")] = true
		}
	}

	start := time.Date(tenant.LeaseStart.Year(), tenant.LeaseStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	if leaseEnd := time.Date(tenant.LeaseEnd.Year(), tenant.LeaseEnd.Month(), 1, 0, 0, 0, 0, time.UTC); end.After(leaseEnd) {
		end = leaseEnd
	}
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		r.MonthsDue++
		if paid[m.Format("2006-01")] {
			r.MonthsCovered++
		}
	}
	if r.MonthsDue > 0 {
		r.Score = float64(r.MonthsCovered) / float64(r.MonthsDue)
	}
	return r
}
