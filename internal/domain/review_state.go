package domain

import (
	"errors"
	"time"
)

// ErrMasteredWithReview is returned when a mastered review state still
// carries a scheduled next review. Mastery is terminal until un-set, so the
// two fields are mutually exclusive.
var ErrMasteredWithReview = errors.New("mastered item cannot have a next review scheduled")

// ReviewState tracks the per-variant spaced repetition state of a vocabulary
// item. It is mutated exclusively by applying the Review Scheduler's output
// through the store; the resolver and orchestrator never touch it.
type ReviewState struct {
	// NextReview is when the item is next due, or nil when no review is
	// scheduled (never reviewed, or mastered).
	NextReview *time.Time `json:"next_review"`

	// Mastered marks the item as learned for this variant. While true,
	// NextReview must be nil.
	Mastered bool `json:"mastered"`
}

// Validate checks the mastered/next-review invariant.
func (s ReviewState) Validate() error {
	if s.Mastered && s.NextReview != nil {
		return ErrMasteredWithReview
	}
	return nil
}
