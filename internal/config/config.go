package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure. It contains
// settings for the environment, HTTP server, provider endpoints, the batch
// checker and the value-score formula.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response.
		// Batches run synchronously inside the request, so this must cover a full batch.
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"5m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"4m" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Provider contains the identity provider endpoint configuration.
	// Empty URLs fall back to the provider defaults.
	Provider struct {
		UsersURL     string `env:"PROVIDER_USERS_URL" env-default:"" yaml:"usersUrl"`
		AuthURL      string `env:"PROVIDER_AUTH_URL" env-default:"" yaml:"authUrl"`
		EconomyURL   string `env:"PROVIDER_ECONOMY_URL" env-default:"" yaml:"economyUrl"`
		PremiumURL   string `env:"PROVIDER_PREMIUM_URL" env-default:"" yaml:"premiumUrl"`
		FriendsURL   string `env:"PROVIDER_FRIENDS_URL" env-default:"" yaml:"friendsUrl"`
		TwoStepURL   string `env:"PROVIDER_TWO_STEP_URL" env-default:"" yaml:"twoStepUrl"`
		InventoryURL string `env:"PROVIDER_INVENTORY_URL" env-default:"" yaml:"inventoryUrl"`
		// RequestTimeout bounds every single provider call.
		RequestTimeout time.Duration `env:"PROVIDER_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
	} `yaml:"provider"`

	// Checker contains the batch scheduler and retry settings.
	Checker struct {
		// Concurrency caps the number of simultaneously in-flight workers.
		// Kept small to avoid provider-side throttling.
		Concurrency int `env:"CHECKER_CONCURRENCY" env-default:"3" yaml:"concurrency"`
		// PaceDelay is the fixed delay between dispatches from the same worker.
		PaceDelay time.Duration `env:"CHECKER_PACE_DELAY" env-default:"500ms" yaml:"paceDelay"`
		// MaxBatchSize caps how many credentials one batch may contain.
		MaxBatchSize int `env:"CHECKER_MAX_BATCH_SIZE" env-default:"50" yaml:"maxBatchSize"`
		// MaxAttempts bounds retries for transient failures (429, timeouts).
		MaxAttempts int `env:"CHECKER_MAX_ATTEMPTS" env-default:"3" yaml:"maxAttempts"`
		// RetryInitialInterval is the first backoff interval.
		RetryInitialInterval time.Duration `env:"CHECKER_RETRY_INITIAL_INTERVAL" env-default:"500ms" yaml:"retryInitialInterval"` //nolint: lll
		// RetryMaxInterval caps the backoff interval growth.
		RetryMaxInterval time.Duration `env:"CHECKER_RETRY_MAX_INTERVAL" env-default:"5s" yaml:"retryMaxInterval"`
		// CollectiblesPageSize bounds the inventory valuation to one page of this size.
		CollectiblesPageSize int `env:"CHECKER_COLLECTIBLES_PAGE_SIZE" env-default:"100" yaml:"collectiblesPageSize"`
	} `yaml:"checker"`

	// Scoring holds the value-score formula weights. The formula is
	// configuration, not law; these defaults are the documented set.
	Scoring struct {
		// BalanceWeight is applied per unit of total currency balance.
		BalanceWeight float64 `env:"SCORING_BALANCE_WEIGHT" env-default:"0.0035" yaml:"balanceWeight"`
		// InventoryWeight is applied per unit of inventory valuation.
		InventoryWeight float64 `env:"SCORING_INVENTORY_WEIGHT" env-default:"0.001" yaml:"inventoryWeight"`
		// AgeYearWeight is applied per year of account age.
		AgeYearWeight float64 `env:"SCORING_AGE_YEAR_WEIGHT" env-default:"250" yaml:"ageYearWeight"`
		// FriendWeight is applied per friend, capped at FriendCap points.
		FriendWeight float64 `env:"SCORING_FRIEND_WEIGHT" env-default:"5" yaml:"friendWeight"`
		// FriendCap bounds the total contribution of the friend count.
		FriendCap float64 `env:"SCORING_FRIEND_CAP" env-default:"1000" yaml:"friendCap"`
		// PremiumBonus is added once for paid-tier accounts.
		PremiumBonus float64 `env:"SCORING_PREMIUM_BONUS" env-default:"500" yaml:"premiumBonus"`
		// Minimum floors the score; it is never zero or negative.
		Minimum float64 `env:"SCORING_MINIMUM" env-default:"10" yaml:"minimum"`
	} `yaml:"scoring"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
