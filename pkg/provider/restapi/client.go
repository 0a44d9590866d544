// Package restapi provides a provider.Client implementation backed by the
// identity provider's public REST API. Each account service lives on its own
// host, so every endpoint group has a configurable base URL; production uses
// the defaults, tests point everything at one test server.
package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"checker/pkg/provider"
	"checker/pkg/serrors"
)

// Default base URLs for the provider's account services.
const (
	DefaultUsersURL     = "https://users.roblox.com"
	DefaultAuthURL      = "https://auth.roblox.com"
	DefaultEconomyURL   = "https://economy.roblox.com"
	DefaultPremiumURL   = "https://premiumfeatures.roblox.com"
	DefaultFriendsURL   = "https://friends.roblox.com"
	DefaultTwoStepURL   = "https://twostepverification.roblox.com"
	DefaultInventoryURL = "https://inventory.roblox.com"
)

// credentialCookie is the cookie under which the provider expects the bearer
// credential.
const credentialCookie = ".ROBLOSECURITY"

// tokenHeader carries the anti-forgery token on requests and challenge
// responses.
const tokenHeader = "X-Csrf-Token" //nolint: gosec

// defaultUserAgent mirrors a desktop browser; the provider rejects requests
// with an empty agent.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Options configure the REST client. Zero-value URLs fall back to the
// provider defaults.
type Options struct {
	// UsersURL is the base URL of the users service (who-am-i, profiles).
	UsersURL string
	// AuthURL is the base URL of the auth service (token challenges).
	AuthURL string
	// EconomyURL is the base URL of the currency service.
	EconomyURL string
	// PremiumURL is the base URL of the paid-tier membership service.
	PremiumURL string
	// FriendsURL is the base URL of the social graph service.
	FriendsURL string
	// TwoStepURL is the base URL of the two-step verification service.
	TwoStepURL string
	// InventoryURL is the base URL of the collectible inventory service.
	InventoryURL string
	// UserAgent overrides the User-Agent header on every request.
	UserAgent string
}

func (o Options) withDefaults() Options {
	def := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	def(&o.UsersURL, DefaultUsersURL)
	def(&o.AuthURL, DefaultAuthURL)
	def(&o.EconomyURL, DefaultEconomyURL)
	def(&o.PremiumURL, DefaultPremiumURL)
	def(&o.FriendsURL, DefaultFriendsURL)
	def(&o.TwoStepURL, DefaultTwoStepURL)
	def(&o.InventoryURL, DefaultInventoryURL)
	def(&o.UserAgent, defaultUserAgent)

	return o
}

// Client talks to the provider's REST API and fulfills the provider.Client
// interface. It is safe for concurrent use: every request is built fresh from
// the per-call auth material, nothing is cached between calls.
type Client struct {
	httpClient *http.Client
	opts       Options
}

// Ensure Client conforms to the provider.Client interface at compile time.
var _ provider.Client = (*Client)(nil)

// New constructs a Client using the provided http.Client and options.
func New(httpClient *http.Client, opts Options) *Client {
	return &Client{
		httpClient: httpClient,
		opts:       opts.withDefaults(),
	}
}

// newRequest builds a request carrying the credential cookie, the
// anti-forgery token when present, and the configured user agent.
func (c *Client) newRequest(ctx context.Context,
	method, url string,
	auth provider.RequestAuth) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if auth.Credential != "" {
		req.AddCookie(&http.Cookie{Name: credentialCookie, Value: auth.Credential})
	}
	if auth.Token != "" {
		req.Header.Set(tokenHeader, auth.Token)
	}

	return req, nil
}

// parseRetryAfter reads the Retry-After header as a second count. Zero means
// absent or unparsable.
func parseRetryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}

	return time.Duration(secs) * time.Second
}

// statusError maps a non-2xx provider response onto the semantic error
// surface.
func statusError(resp *http.Response, body []byte) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return serrors.With(serrors.ErrUnauthorized, "credential rejected")
	case http.StatusForbidden:
		return serrors.With(serrors.ErrForbidden, "request refused: %s", strings.TrimSpace(string(body)))
	case http.StatusTooManyRequests:
		return &provider.RateLimitError{RetryAfter: parseRetryAfter(resp.Header)}
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

// getJSON performs a GET against url and decodes the 2xx body into out.
// Decode failures surface as serrors.ErrMalformedResponse.
func (c *Client) getJSON(ctx context.Context, auth provider.RequestAuth, url string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, url, auth)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return serrors.Wrap(serrors.ErrMalformedResponse, err, "could not decode response")
	}

	return nil
}

// Authenticated performs the who-am-i call and returns the base identity.
func (c *Client) Authenticated(ctx context.Context, auth provider.RequestAuth) (*provider.Principal, error) {
	var p provider.Principal
	if err := c.getJSON(ctx, auth, c.opts.UsersURL+"/v1/users/authenticated", &p); err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, serrors.With(serrors.ErrMalformedResponse, "response missing principal id")
	}

	return &p, nil
}

// UserDetails fetches the public profile, including the creation timestamp.
func (c *Client) UserDetails(ctx context.Context,
	auth provider.RequestAuth,
	userID int64) (*provider.UserDetails, error) {
	var d provider.UserDetails
	url := fmt.Sprintf("%s/v1/users/%d", c.opts.UsersURL, userID)
	if err := c.getJSON(ctx, auth, url, &d); err != nil {
		return nil, err
	}

	return &d, nil
}

// Currency fetches the primary and pending balances.
func (c *Client) Currency(ctx context.Context, auth provider.RequestAuth) (provider.CurrencyBalance, error) {
	var b provider.CurrencyBalance
	if err := c.getJSON(ctx, auth, c.opts.EconomyURL+"/v1/user/currency", &b); err != nil {
		return provider.CurrencyBalance{}, err
	}

	return b, nil
}

// PremiumStatus reports whether the principal is on the paid tier. The
// endpoint answers with a bare JSON boolean.
func (c *Client) PremiumStatus(ctx context.Context, auth provider.RequestAuth, userID int64) (bool, error) {
	var isPremium bool
	url := fmt.Sprintf("%s/v1/users/%d/validate-membership", c.opts.PremiumURL, userID)
	if err := c.getJSON(ctx, auth, url, &isPremium); err != nil {
		return false, err
	}

	return isPremium, nil
}

// countResponse is the shared shape of the social count endpoints.
type countResponse struct {
	Count int `json:"count"`
}

// FriendsCount fetches the principal's friend count.
func (c *Client) FriendsCount(ctx context.Context, auth provider.RequestAuth, userID int64) (int, error) {
	var r countResponse
	url := fmt.Sprintf("%s/v1/users/%d/friends/count", c.opts.FriendsURL, userID)
	if err := c.getJSON(ctx, auth, url, &r); err != nil {
		return 0, err
	}

	return r.Count, nil
}

// FollowersCount fetches the principal's follower count.
func (c *Client) FollowersCount(ctx context.Context, auth provider.RequestAuth, userID int64) (int, error) {
	var r countResponse
	url := fmt.Sprintf("%s/v1/users/%d/followers/count", c.opts.FriendsURL, userID)
	if err := c.getJSON(ctx, auth, url, &r); err != nil {
		return 0, err
	}

	return r.Count, nil
}

// FollowingCount fetches how many accounts the principal follows.
func (c *Client) FollowingCount(ctx context.Context, auth provider.RequestAuth, userID int64) (int, error) {
	var r countResponse
	url := fmt.Sprintf("%s/v1/users/%d/followings/count", c.opts.FriendsURL, userID)
	if err := c.getJSON(ctx, auth, url, &r); err != nil {
		return 0, err
	}

	return r.Count, nil
}

// TwoFactorEnabled reports whether any two-step verification method is
// enabled on the account.
func (c *Client) TwoFactorEnabled(ctx context.Context, auth provider.RequestAuth, userID int64) (bool, error) {
	var cfg struct {
		Methods []struct {
			MediaType string `json:"mediaType"`
			Enabled   bool   `json:"enabled"`
		} `json:"methods"`
	}
	url := fmt.Sprintf("%s/v1/users/%d/configuration", c.opts.TwoStepURL, userID)
	if err := c.getJSON(ctx, auth, url, &cfg); err != nil {
		return false, err
	}
	for _, m := range cfg.Methods {
		if m.Enabled {
			return true, nil
		}
	}

	return false, nil
}

// Collectibles fetches the first page of the principal's collectible
// inventory, bounded by limit.
func (c *Client) Collectibles(ctx context.Context,
	auth provider.RequestAuth,
	userID int64,
	limit int) ([]provider.Collectible, error) {
	var page struct {
		Data []provider.Collectible `json:"data"`
	}
	url := fmt.Sprintf("%s/v1/users/%d/assets/collectibles?sortOrder=Asc&limit=%d",
		c.opts.InventoryURL, userID, limit)
	if err := c.getJSON(ctx, auth, url, &page); err != nil {
		return nil, err
	}

	return page.Data, nil
}
