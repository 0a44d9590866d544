package checker

import (
	"math"
	"time"

	"checker/pkg/domain"
)

// hoursPerDay and daysPerYear convert the account age; 365.25 keeps leap
// years out of the formula.
const (
	hoursPerDay = 24
	daysPerYear = 365.25
)

// Scoring holds the value-score weights. The formula is configuration, not a
// behavior contract; the defaults are documented in internal/config.
type Scoring struct {
	BalanceWeight   float64
	InventoryWeight float64
	AgeYearWeight   float64
	FriendWeight    float64
	FriendCap       float64
	PremiumBonus    float64
	Minimum         float64
}

// Score derives the account valuation from the aggregated fields. It is a
// pure function: identical inputs always produce the identical score. The
// result is floored at Minimum and rounded to two decimal places.
func (s Scoring) Score(balanceTotal int64, inventoryValue, ageYears float64, friends int, premium bool) float64 {
	score := float64(balanceTotal)*s.BalanceWeight +
		inventoryValue*s.InventoryWeight +
		ageYears*s.AgeYearWeight +
		math.Min(float64(friends)*s.FriendWeight, s.FriendCap)
	if premium {
		score += s.PremiumBonus
	}
	if score < s.Minimum {
		score = s.Minimum
	}

	return math.Round(score*100) / 100
}

// parseCreated parses the provider's ISO-8601 creation timestamp, with the Z
// suffix normalized to a zero offset. ok is false for missing or unparsable
// values; callers degrade to an unknown age instead of failing.
func parseCreated(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}

	return t.UTC(), true
}

// aggregate merges the identity and enrichment sections into the final
// account record. The record is assembled exactly once and never mutated
// afterwards.
func (c *checker) aggregate(identity domain.Identity, sections domain.Sections, now time.Time) *domain.AccountRecord {
	record := &domain.AccountRecord{
		Identity:       identity,
		CreatedDate:    domain.UnknownCreatedDate,
		Balance:        sections.Balance,
		Membership:     sections.Membership,
		Social:         sections.Social,
		Security:       sections.Security,
		InventoryValue: sections.InventoryValue,
		CheckedAt:      now,
	}

	if !identity.CreatedAt.IsZero() {
		created := identity.CreatedAt.UTC()
		record.CreatedDate = created.Format("2006-01-02")
		record.AgeDays = int(now.UTC().Sub(created).Hours() / hoursPerDay)
		record.AgeYears = float64(record.AgeDays) / daysPerYear
	}

	record.ValueScore = c.options.Scoring.Score(
		record.Balance.Total,
		record.InventoryValue,
		record.AgeYears,
		record.Social.Friends,
		record.Membership.Active,
	)

	return record
}
