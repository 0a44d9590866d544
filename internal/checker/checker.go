// Package checker implements the credential batch pipeline: normalization,
// validation against the identity provider, concurrent enrichment and
// aggregation into immutable account records, all under a bounded worker
// pool with shared retry/backoff discipline.
package checker

import (
	"context"
	"errors"
	"time"

	"checker/internal/config"
	"checker/pkg/domain"
	"checker/pkg/logger"
	"checker/pkg/provider"
	"checker/pkg/serrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configure the batch scheduler and its retry policy. These settings
// are typically derived from application configuration.
type Options struct {
	// Concurrency is the hard cap on simultaneously in-flight workers.
	Concurrency int
	// PaceDelay is the fixed delay a worker waits after finishing one
	// credential before picking up the next, to reduce throttling risk.
	PaceDelay time.Duration
	// MaxBatchSize caps how many credentials one batch may contain.
	MaxBatchSize int
	// MaxAttempts bounds total tries for transient failures per call.
	MaxAttempts int
	// RetryInitialInterval is the first backoff interval.
	RetryInitialInterval time.Duration
	// RetryMaxInterval caps backoff interval growth.
	RetryMaxInterval time.Duration
	// CollectiblesPageSize bounds the inventory valuation page.
	CollectiblesPageSize int
	// Scoring holds the value-score weights.
	Scoring Scoring
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Concurrency:          cfg.Checker.Concurrency,
		PaceDelay:            cfg.Checker.PaceDelay,
		MaxBatchSize:         cfg.Checker.MaxBatchSize,
		MaxAttempts:          cfg.Checker.MaxAttempts,
		RetryInitialInterval: cfg.Checker.RetryInitialInterval,
		RetryMaxInterval:     cfg.Checker.RetryMaxInterval,
		CollectiblesPageSize: cfg.Checker.CollectiblesPageSize,
		Scoring: Scoring{
			BalanceWeight:   cfg.Scoring.BalanceWeight,
			InventoryWeight: cfg.Scoring.InventoryWeight,
			AgeYearWeight:   cfg.Scoring.AgeYearWeight,
			FriendWeight:    cfg.Scoring.FriendWeight,
			FriendCap:       cfg.Scoring.FriendCap,
			PremiumBonus:    cfg.Scoring.PremiumBonus,
			Minimum:         cfg.Scoring.Minimum,
		},
	}
}

// checker is the concrete Checker implementation. It owns no mutable state
// of its own; each Run builds everything it needs locally.
type checker struct {
	options Options
	client  provider.Client
	stats   Stats
	retry   retryPolicy
}

// New creates a Checker backed by the provider client, reporting to stats
// (NopStats when nil) and configured with the given options.
func New(client provider.Client, stats Stats, options Options) Checker {
	if stats == nil {
		stats = NopStats{}
	}

	return &checker{
		options: options,
		client:  client,
		stats:   stats,
		retry: retryPolicy{
			maxAttempts:     options.MaxAttempts,
			initialInterval: options.RetryInitialInterval,
			maxInterval:     options.RetryMaxInterval,
		},
	}
}

// entry is one normalized batch item awaiting dispatch.
type entry struct {
	raw        string
	normalized string
	err        error // non-nil for local format rejections
}

// Run checks the batch. Every non-blank input credential appears exactly
// once in the result, independent of concurrency; only empty or oversized
// batches are errors.
func (c *checker) Run(ctx context.Context, credentials []string) (*domain.BatchResult, error) {
	if len(credentials) == 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "empty batch")
	}
	if len(credentials) > c.options.MaxBatchSize {
		return nil, serrors.With(serrors.ErrBadRequest,
			"batch size %d exceeds limit %d", len(credentials), c.options.MaxBatchSize)
	}

	batchID := uuid.New()
	ctx = logger.WithFields(ctx, zap.String("batchID", batchID.String()))
	startedAt := time.Now().UTC()

	entries := c.normalizeBatch(credentials)
	result := &domain.BatchResult{
		ID:        batchID,
		StartedAt: startedAt,
	}

	if len(entries) == 0 {
		// nothing survived cleanup; report that instead of an empty list
		result.Results = []domain.Outcome{{
			Valid:     false,
			Error:     serrors.ErrNoValidCredentials.Error(),
			CheckedAt: time.Now().UTC(),
		}}
		result.CompletedAt = time.Now().UTC()
		c.observe(result, startedAt)

		return result, nil
	}

	logger.Info(ctx, "starting batch",
		zap.Int("credentials", len(entries)),
		zap.Int("concurrency", c.options.Concurrency))

	// pre-sized indexed writes: each worker owns exactly one slot, nothing
	// is shared while the batch runs
	outcomes := make([]domain.Outcome, len(entries))

	var g errgroup.Group
	g.SetLimit(c.options.Concurrency)
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			outcomes[i] = c.processOne(ctx, e)

			// inter-request pacing before this worker slot frees up
			select {
			case <-ctx.Done():
			case <-time.After(c.options.PaceDelay):
			}

			return nil
		})
	}
	_ = g.Wait()

	result.Results = outcomes
	result.CompletedAt = time.Now().UTC()
	c.observe(result, startedAt)

	logger.Info(ctx, "batch finished",
		zap.Int("total", result.Total()),
		zap.Int("valid", result.ValidCount()),
		zap.Int("invalid", result.InvalidCount()),
		zap.Duration("duration", result.CompletedAt.Sub(startedAt)))

	return result, nil
}

// normalizeBatch cleans and deduplicates the raw inputs. Blank inputs are
// dropped; format rejections are kept so they surface as local InvalidFormat
// outcomes. Duplicates (on the normalized value, or on the raw echo for
// rejected inputs) are reported once.
func (c *checker) normalizeBatch(credentials []string) []entry {
	seen := make(map[string]bool, len(credentials))
	entries := make([]entry, 0, len(credentials))

	for _, raw := range credentials {
		normalized, err := NormalizeCredential(raw)
		if errors.Is(err, errEmptyCredential) {
			continue
		}

		key := normalized
		if err != nil {
			key = raw
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		entries = append(entries, entry{raw: raw, normalized: normalized, err: err})
	}

	return entries
}

// processOne runs the three-phase pipeline for a single credential. The
// phases are strictly sequential; only the returned outcome leaves the
// worker.
func (c *checker) processOne(ctx context.Context, e entry) domain.Outcome {
	if e.err != nil {
		return domain.Outcome{
			Valid:      false,
			Credential: domain.MaskCredential(e.raw),
			Error:      serrors.Classification(e.err),
			CheckedAt:  time.Now().UTC(),
		}
	}

	masked := domain.MaskCredential(e.normalized)
	if ctx.Err() != nil {
		// batch cancelled before this credential was dispatched
		return domain.Outcome{
			Valid:      false,
			Credential: masked,
			Error:      serrors.ErrCancelled.Error(),
			CheckedAt:  time.Now().UTC(),
		}
	}

	cctx := logger.WithFields(ctx, zap.String("credential", masked))

	identity, auth, err := c.validate(cctx, e.normalized)
	if err != nil {
		logger.Info(cctx, "credential invalid", zap.String("classification", serrors.Classification(err)))

		return domain.Outcome{
			Valid:      false,
			Credential: masked,
			Error:      serrors.Classification(err),
			CheckedAt:  time.Now().UTC(),
		}
	}

	sections := c.enrich(cctx, auth, identity.ID)
	record := c.aggregate(identity, sections, time.Now().UTC())

	return domain.Outcome{
		Valid:      true,
		Credential: masked,
		Account:    record,
		CheckedAt:  record.CheckedAt,
	}
}

// observe reports the finished batch to the injected stats sink. Counts are
// read from the completed result, never tracked during the run.
func (c *checker) observe(result *domain.BatchResult, startedAt time.Time) {
	for i := range result.Results {
		outcome := OutcomeValid
		if !result.Results[i].Valid {
			outcome = result.Results[i].Error
		}
		c.stats.ObserveOutcome(outcome)
	}
	c.stats.ObserveBatch(result.Total(), time.Since(startedAt))
}
