package checker

import (
	"context"

	"checker/pkg/domain"
)

// Checker runs batches of raw credentials through validation, enrichment and
// aggregation. Implementations must be safe for concurrent use.
type Checker interface {
	// Run checks every credential in the batch and returns one outcome per
	// credential. It returns an error only for structurally invalid requests
	// (empty or oversized batch); partial failures live inside the result.
	Run(ctx context.Context, credentials []string) (*domain.BatchResult, error)
}
