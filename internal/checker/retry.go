package checker

import (
	"context"
	"errors"
	"time"

	"checker/pkg/provider"
	"checker/pkg/serrors"

	"github.com/cenkalti/backoff/v4"
)

// retryPolicy is the shared retry/backoff contract applied to provider
// calls. Transient failures (429, timeouts, connection errors) are retried
// with exponentially increasing delays up to maxAttempts total tries;
// terminal classifications are never retried.
type retryPolicy struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
}

// isTerminal reports whether err must not be retried: authorization
// rejections and malformed responses will not improve on a second attempt.
func isTerminal(err error) bool {
	return errors.Is(err, serrors.ErrUnauthorized) ||
		errors.Is(err, serrors.ErrForbidden) ||
		errors.Is(err, serrors.ErrMalformedResponse) ||
		errors.Is(err, serrors.ErrInvalidFormat)
}

// retryAfterBackOff layers server-provided Retry-After hints over an
// exponential schedule: when the provider names a wait longer than the
// computed interval, the hint wins. The hint applies to the next interval
// only.
type retryAfterBackOff struct {
	backoff.BackOff

	hint time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	d := b.BackOff.NextBackOff()
	if d == backoff.Stop {
		return d
	}
	if b.hint > d {
		d = b.hint
	}
	b.hint = 0

	return d
}

// do runs op under the policy. It returns nil on the first success, the
// original terminal error immediately, or the last transient error once the
// attempt budget is spent or ctx is cancelled.
func (p retryPolicy) do(ctx context.Context, op func() error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.initialInterval
	exp.MaxInterval = p.maxInterval

	hinted := &retryAfterBackOff{BackOff: exp}

	retries := uint64(0)
	if p.maxAttempts > 1 {
		retries = uint64(p.maxAttempts - 1)
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(hinted, retries), ctx)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if isTerminal(err) {
			return backoff.Permanent(err)
		}

		var rl *provider.RateLimitError
		if errors.As(err, &rl) {
			hinted.hint = rl.RetryAfter
		}

		return err
	}, bo)
}
