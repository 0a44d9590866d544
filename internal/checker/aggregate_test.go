package checker

import (
	"testing"
	"time"

	"checker/pkg/domain"

	"github.com/stretchr/testify/require"
)

func testScoring() Scoring {
	return Scoring{
		BalanceWeight:   0.0035,
		InventoryWeight: 0.001,
		AgeYearWeight:   250,
		FriendWeight:    5,
		FriendCap:       1000,
		PremiumBonus:    500,
		Minimum:         10,
	}
}

func TestScore_DocumentedFormula(t *testing.T) {
	s := testScoring()

	// balance=500, premium, ageYears=2.0, friends=50:
	// 500*0.0035 + 0 + 2*250 + min(50*5,1000) + 500 = 1.75 + 500 + 250 + 500
	got := s.Score(500, 0, 2.0, 50, true)
	require.InDelta(t, 1251.75, got, 0.0001)
}

func TestScore_Deterministic(t *testing.T) {
	s := testScoring()
	first := s.Score(1234, 5678.9, 3.21, 77, false)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, s.Score(1234, 5678.9, 3.21, 77, false))
	}
}

func TestScore_FriendCap(t *testing.T) {
	s := testScoring()

	capped := s.Score(0, 0, 0, 100000, false)
	justCap := s.Score(0, 0, 0, 200, false) // 200*5 == cap exactly
	require.Equal(t, justCap, capped)
}

func TestScore_FlooredAtMinimum(t *testing.T) {
	s := testScoring()

	require.InDelta(t, 10.0, s.Score(0, 0, 0, 0, false), 0.0001)
	require.Greater(t, s.Score(0, 0, 0, 0, false), 0.0, "score is never zero or negative")
}

func TestScore_RoundedToTwoDecimals(t *testing.T) {
	s := testScoring()

	got := s.Score(1, 0, 0, 0, true) // 0.0035 + 500 = 500.0035 -> 500.0
	require.InDelta(t, 500.0, got, 0.0001)

	got = s.Score(3, 0, 0, 0, true) // 0.0105 + 500 -> 500.01
	require.InDelta(t, 500.01, got, 0.0001)
}

func TestParseCreated(t *testing.T) {
	got, ok := parseCreated("2021-06-01T10:00:00Z")
	require.True(t, ok)
	require.Equal(t, time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC), got)

	got, ok = parseCreated("2021-06-01T10:00:00.123Z")
	require.True(t, ok)
	require.Equal(t, 123000000, got.Nanosecond())

	// offset form normalizes to UTC
	got, ok = parseCreated("2021-06-01T12:00:00+02:00")
	require.True(t, ok)
	require.Equal(t, time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC), got)

	_, ok = parseCreated("")
	require.False(t, ok)

	_, ok = parseCreated("yesterday")
	require.False(t, ok)
}

func TestAggregate_AgeAndScore(t *testing.T) {
	c := &checker{options: Options{Scoring: testScoring()}}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	identity := domain.Identity{
		ID:          7,
		Name:        "builder",
		DisplayName: "Builder",
		CreatedAt:   now.AddDate(-2, 0, 0), // two years, 730 days
	}
	sections := domain.Sections{
		Balance:    domain.Balance{Total: 500, Pending: 0},
		Membership: domain.Membership{Active: true, Status: "Premium"},
		Social:     domain.Social{Friends: 50},
	}

	record := c.aggregate(identity, sections, now)

	require.Equal(t, "2022-01-01", record.CreatedDate)
	require.Equal(t, 730, record.AgeDays)
	require.InDelta(t, 730.0/365.25, record.AgeYears, 0.0001)
	require.Equal(t, now, record.CheckedAt)

	want := testScoring().Score(500, 0, record.AgeYears, 50, true)
	require.Equal(t, want, record.ValueScore)
}

func TestAggregate_UnknownCreationDate(t *testing.T) {
	c := &checker{options: Options{Scoring: testScoring()}}
	now := time.Now().UTC()

	record := c.aggregate(domain.Identity{ID: 7}, domain.Sections{}, now)

	require.Equal(t, domain.UnknownCreatedDate, record.CreatedDate)
	require.Zero(t, record.AgeDays)
	require.Zero(t, record.AgeYears)
	require.InDelta(t, 10.0, record.ValueScore, 0.0001, "floored, not zero")
}
