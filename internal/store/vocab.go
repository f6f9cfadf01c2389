package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/WandLZhang/chinese-conversation/internal/domain"
)

// VocabStore defines the interface for vocabulary item persistence.
type VocabStore interface {
	// GetItem retrieves a vocabulary item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetItem(ctx context.Context, id uuid.UUID) (*domain.VocabularyItem, error)

	// UpdateNextReview sets the next review time for one language variant of
	// an item. A nil time clears the schedule. The write is unconditional;
	// the most recent caller wins.
	// Returns ErrItemNotFound if the item does not exist.
	UpdateNextReview(ctx context.Context, id uuid.UUID, variant domain.Variant, next *time.Time) error

	// SetMastered sets the mastered flag for one language variant of an
	// item. Marking a variant mastered also clears its next review time in
	// the same write, so no reader can observe a mastered item that still
	// has a pending review.
	// Returns ErrItemNotFound if the item does not exist.
	SetMastered(ctx context.Context, id uuid.UUID, variant domain.Variant, mastered bool) error
}

// DictionaryStore defines the interface for dictionary entry retrieval.
// Entries provide colloquial-usage context for question generation.
type DictionaryStore interface {
	// Lookup returns up to limit dictionary entries relevant to the word,
	// most relevant first. An empty result is not an error.
	Lookup(ctx context.Context, word string, limit int) ([]string, error)
}
