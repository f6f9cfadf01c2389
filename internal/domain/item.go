package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Item-specific validation errors
var (
	// ErrItemIDEmpty is returned when a vocabulary item ID is empty or nil.
	ErrItemIDEmpty = errors.New("vocabulary item ID cannot be empty")

	// ErrItemWordEmpty is returned when a vocabulary item has no written form.
	ErrItemWordEmpty = errors.New("vocabulary item word cannot be empty")
)

// VocabularyItem represents a single vocabulary entry owned by the
// persistence layer. The core reads items but never creates or deletes them.
//
// Simplified holds the canonical written form; Mandarin and Cantonese hold
// the per-variant example usage text, which may be empty when no example has
// been recorded for that variant.
type VocabularyItem struct {
	ID         uuid.UUID `json:"id"`
	Simplified string    `json:"simplified"`
	Mandarin   string    `json:"mandarin"`
	Cantonese  string    `json:"cantonese"`

	MandarinReview  ReviewState `json:"mandarin_review"`
	CantoneseReview ReviewState `json:"cantonese_review"`
}

// Validate checks if the VocabularyItem has valid data.
func (i *VocabularyItem) Validate() error {
	if i.ID == uuid.Nil {
		return ErrItemIDEmpty
	}
	if i.Simplified == "" {
		return ErrItemWordEmpty
	}
	if err := i.MandarinReview.Validate(); err != nil {
		return err
	}
	return i.CantoneseReview.Validate()
}

// ExampleUsage returns the stored example usage text for the given variant.
// An empty string means no example is available.
func (i *VocabularyItem) ExampleUsage(v Variant) string {
	if v == VariantCantonese {
		return i.Cantonese
	}
	return i.Mandarin
}

// Review returns the review state for the given variant.
func (i *VocabularyItem) Review(v Variant) ReviewState {
	if v == VariantCantonese {
		return i.CantoneseReview
	}
	return i.MandarinReview
}
