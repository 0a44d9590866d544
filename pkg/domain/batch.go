package domain

import (
	"time"

	"github.com/google/uuid"
)

// BatchID uniquely identifies one batch run.
type BatchID = uuid.UUID

// Outcome is the per-credential entry in a batch result: either a complete
// AccountRecord or a terminal error classification. Credential always holds
// the masked echo, never the raw value.
type Outcome struct {
	Valid      bool           `json:"valid"`
	Credential string         `json:"credential"`
	Error      string         `json:"error,omitempty"`
	Account    *AccountRecord `json:"account,omitempty"`
	CheckedAt  time.Time      `json:"checkedAt"`
}

// BatchResult covers every submitted credential exactly once. Aggregate
// counts are derived from the finished outcome set, never accumulated in
// shared state while the batch runs.
type BatchResult struct {
	ID          BatchID   `json:"id"`
	Results     []Outcome `json:"results"`
	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt"`
}

// Total returns the number of outcomes in the batch.
func (b *BatchResult) Total() int { return len(b.Results) }

// ValidCount returns how many credentials produced an account record.
func (b *BatchResult) ValidCount() int {
	n := 0
	for i := range b.Results {
		if b.Results[i].Valid {
			n++
		}
	}

	return n
}

// InvalidCount returns how many credentials ended with an error classification.
func (b *BatchResult) InvalidCount() int { return len(b.Results) - b.ValidCount() }
