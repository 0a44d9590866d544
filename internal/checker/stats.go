package checker

import "time"

// OutcomeValid is the Stats label for credentials that produced a record.
// Invalid credentials report their error classification instead.
const OutcomeValid = "Valid"

// Stats receives scheduler observations. Implementations must be safe for
// concurrent use; the scheduler itself keeps no shared mutable counters and
// derives all aggregate numbers from the finished batch result.
type Stats interface {
	// ObserveOutcome counts one finished credential by classification.
	ObserveOutcome(outcome string)
	// ObserveBatch records the size and duration of one finished batch.
	ObserveBatch(size int, duration time.Duration)
}

// NopStats discards all observations.
type NopStats struct{}

func (NopStats) ObserveOutcome(string) {}

func (NopStats) ObserveBatch(int, time.Duration) {}
