package domain

import "time"

// Identity is the base principal information returned by the provider's
// who-am-i endpoint. It is produced once during validation and immutable
// afterwards; CreatedAt may be the zero time when the details lookup failed.
type Identity struct {
	// ID is the provider's numeric principal identifier.
	ID int64 `json:"id"`
	// Name is the principal's login name.
	Name string `json:"name"`
	// DisplayName is the principal's public display name.
	DisplayName string `json:"displayName"`
	// CreatedAt is the account creation instant, UTC. Zero when unknown.
	CreatedAt time.Time `json:"-"`
}

// Balance is the currency enrichment section. Total includes pending units.
type Balance struct {
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
}

// Membership is the paid-tier enrichment section. Status is a label derived
// from Active.
type Membership struct {
	Active bool   `json:"active"`
	Status string `json:"status"`
}

// MembershipStatus returns the display label for a premium flag.
func MembershipStatus(active bool) string {
	if active {
		return "Premium"
	}

	return "Free"
}

// Social holds the social-graph counts. Each count is fetched independently
// and zero-defaulted on failure.
type Social struct {
	Friends   int `json:"friends"`
	Followers int `json:"followers"`
	Following int `json:"following"`
}

// Security holds best-effort security flags.
type Security struct {
	TwoFactorEnabled bool `json:"twoFactorEnabled"`
}

// Sections bundles the five enrichment sections produced by one fanout. A
// failed section carries its zero value; the bundle is always complete.
type Sections struct {
	Balance        Balance
	Membership     Membership
	Social         Social
	Security       Security
	InventoryValue float64
}

// UnknownCreatedDate is reported when the account creation time is missing or
// unparsable.
const UnknownCreatedDate = "Unknown"

// AccountRecord is the fully aggregated result for one valid credential.
// It is assembled once by the aggregator and never mutated afterwards.
type AccountRecord struct {
	Identity Identity `json:"identity"`

	// CreatedDate is the creation day formatted YYYY-MM-DD, or "Unknown".
	CreatedDate string `json:"createdDate"`
	// AgeDays is the account age in whole days, UTC. Zero when unknown.
	AgeDays int `json:"ageDays"`
	// AgeYears is AgeDays/365.25.
	AgeYears float64 `json:"ageYears"`

	Balance        Balance    `json:"balance"`
	Membership     Membership `json:"membership"`
	Social         Social     `json:"social"`
	Security       Security   `json:"security"`
	InventoryValue float64    `json:"inventoryValue"`

	// ValueScore is the derived account valuation, always at least the
	// configured floor and rounded to two decimals.
	ValueScore float64 `json:"valueScore"`

	CheckedAt time.Time `json:"checkedAt"`
}
