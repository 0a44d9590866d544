// Package provider defines the abstraction over the remote identity
// provider: credential validation, anti-forgery token acquisition and the
// per-section enrichment lookups. Implementations live in subpackages.
package provider

import (
	"context"
	"time"

	"checker/pkg/serrors"
)

// RequestAuth carries the per-call authentication material: the bearer
// credential plus an optional anti-forgery token. A fresh RequestAuth is
// passed explicitly on every call; there is no shared session state between
// calls or between concurrent workers.
type RequestAuth struct {
	// Credential is the normalized bearer credential.
	Credential string
	// Token is the anti-forgery token, empty when none was acquired. Some
	// endpoints work without it.
	Token string
}

// WithToken returns a copy of the auth material carrying the given token.
func (a RequestAuth) WithToken(token string) RequestAuth {
	a.Token = token

	return a
}

// Principal is the provider's answer to the who-am-i call.
type Principal struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// UserDetails is the public profile record for a principal. Created holds the
// provider's ISO-8601 creation timestamp verbatim; parsing is the consumer's
// concern so a malformed value can degrade instead of failing the call.
type UserDetails struct {
	ID      int64  `json:"id"`
	Created string `json:"created"`
}

// CurrencyBalance is the raw currency lookup result.
type CurrencyBalance struct {
	Primary int64 `json:"robux"`
	Pending int64 `json:"pendingRobux"`
}

// Collectible is one item from the principal's collectible inventory.
type Collectible struct {
	AssetID            int64   `json:"assetId"`
	Name               string  `json:"name"`
	RecentAveragePrice float64 `json:"recentAveragePrice"`
}

// RateLimitError reports provider-side throttling (HTTP 429). RetryAfter is
// the server-provided wait hint, zero when the header was absent. It matches
// serrors.ErrRateLimited through errors.Is.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return "rate limited, retry after " + e.RetryAfter.String()
	}

	return "rate limited"
}

// Is makes errors.Is(err, serrors.ErrRateLimited) succeed for this error.
func (e *RateLimitError) Is(target error) bool { return target == serrors.ErrRateLimited }

// Client is the abstraction over the identity provider's HTTP surface.
// Implementations must be safe for concurrent use and must not retry
// internally; retry and backoff are the caller's responsibility.
//
// Enrichment lookups return their zero value together with an error; callers
// decide whether a failure degrades or terminates.
type Client interface {
	// AcquireToken obtains an anti-forgery token bound to the credential by
	// probing an ordered list of token-challenge endpoints. It returns
	// ("", nil) when no endpoint yields a token: absence is not an error and
	// callers proceed untokened.
	AcquireToken(ctx context.Context, credential string) (string, error)

	// Authenticated performs the who-am-i call. 401, 403 and 429 map onto
	// the corresponding serrors kinds; a 2xx body without a principal id is
	// serrors.ErrMalformedResponse.
	Authenticated(ctx context.Context, auth RequestAuth) (*Principal, error)

	// UserDetails fetches the public profile for the given principal,
	// including the creation timestamp.
	UserDetails(ctx context.Context, auth RequestAuth, userID int64) (*UserDetails, error)

	// Currency fetches the primary and pending currency balances.
	Currency(ctx context.Context, auth RequestAuth) (CurrencyBalance, error)

	// PremiumStatus reports whether the principal is on the paid tier.
	PremiumStatus(ctx context.Context, auth RequestAuth, userID int64) (bool, error)

	// FriendsCount fetches the principal's friend count.
	FriendsCount(ctx context.Context, auth RequestAuth, userID int64) (int, error)

	// FollowersCount fetches the principal's follower count.
	FollowersCount(ctx context.Context, auth RequestAuth, userID int64) (int, error)

	// FollowingCount fetches how many accounts the principal follows.
	FollowingCount(ctx context.Context, auth RequestAuth, userID int64) (int, error)

	// TwoFactorEnabled reports whether any two-step verification method is
	// enabled for the principal.
	TwoFactorEnabled(ctx context.Context, auth RequestAuth, userID int64) (bool, error)

	// Collectibles fetches the first page of the principal's collectible
	// inventory, bounded by limit.
	Collectibles(ctx context.Context, auth RequestAuth, userID int64, limit int) ([]Collectible, error)
}
