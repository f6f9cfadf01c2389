package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/WandLZhang/chinese-conversation/internal/domain"
	"github.com/WandLZhang/chinese-conversation/internal/platform/logger"
	"github.com/WandLZhang/chinese-conversation/internal/store"
)

// PostgresVocabStore implements the store.VocabStore interface
// using a PostgreSQL database as the storage backend.
type PostgresVocabStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVocabStore creates a new PostgreSQL implementation of the
// VocabStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresVocabStore(db store.DBTX, logger *slog.Logger) *PostgresVocabStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVocabStore{
		db:     db,
		logger: logger.With(slog.String("component", "vocab_store")),
	}
}

// Ensure PostgresVocabStore implements store.VocabStore interface
var _ store.VocabStore = (*PostgresVocabStore)(nil)

// reviewColumns returns the next-review and mastered column names for a
// variant. The variant must already be validated; the column names are fixed
// and never built from request input.
func reviewColumns(variant domain.Variant) (nextCol, masteredCol string) {
	if variant == domain.VariantMandarin {
		return "next_review_mandarin", "mastered_mandarin"
	}
	return "next_review_cantonese", "mastered_cantonese"
}

// GetItem implements store.VocabStore.GetItem
// It retrieves a vocabulary item by its unique ID.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *PostgresVocabStore) GetItem(ctx context.Context, id uuid.UUID) (*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, simplified, mandarin, cantonese,
		       next_review_mandarin, mastered_mandarin,
		       next_review_cantonese, mastered_cantonese
		FROM vocabulary
		WHERE id = $1
	`

	var item domain.VocabularyItem
	var nextMandarin, nextCantonese sql.NullTime
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Simplified,
		&item.Mandarin,
		&item.Cantonese,
		&nextMandarin,
		&item.MandarinReview.Mastered,
		&nextCantonese,
		&item.CantoneseReview.Mastered,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("vocabulary item not found", slog.String("item_id", id.String()))
			return nil, fmt.Errorf("%w: id %s", store.ErrItemNotFound, id)
		}
		log.Error("failed to get vocabulary item",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return nil, MapError(err)
	}

	if nextMandarin.Valid {
		t := nextMandarin.Time
		item.MandarinReview.NextReview = &t
	}
	if nextCantonese.Valid {
		t := nextCantonese.Time
		item.CantoneseReview.NextReview = &t
	}

	// A row that fails validation means the table constraints were bypassed;
	// surface it rather than handing out an inconsistent item.
	if err := item.Validate(); err != nil {
		log.Error("stored vocabulary item failed validation",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	return &item, nil
}

// UpdateNextReview implements store.VocabStore.UpdateNextReview
// It overwrites the next review time for one variant. The write is a single
// statement with no read-modify-write cycle, so concurrent callers resolve
// to whichever statement commits last.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *PostgresVocabStore) UpdateNextReview(ctx context.Context, id uuid.UUID, variant domain.Variant, next *time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !variant.IsValid() {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrInvalidVariant)
	}

	nextCol, _ := reviewColumns(variant)
	query := fmt.Sprintf(`UPDATE vocabulary SET %s = $1 WHERE id = $2`, nextCol)

	var value sql.NullTime
	if next != nil {
		value = sql.NullTime{Time: next.UTC(), Valid: true}
	}

	result, err := s.db.ExecContext(ctx, query, value, id)
	if err != nil {
		log.Error("failed to update next review",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()),
			slog.String("variant", string(variant)))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUpdateFailed, err)
	}
	if rows == 0 {
		log.Debug("vocabulary item not found during review update",
			slog.String("item_id", id.String()))
		return fmt.Errorf("%w: id %s", store.ErrItemNotFound, id)
	}

	log.Info("next review updated",
		slog.String("item_id", id.String()),
		slog.String("variant", string(variant)))
	return nil
}

// SetMastered implements store.VocabStore.SetMastered
// Marking a variant mastered clears its next review time in the same UPDATE
// statement, so the two fields can never disagree.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *PostgresVocabStore) SetMastered(ctx context.Context, id uuid.UUID, variant domain.Variant, mastered bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !variant.IsValid() {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrInvalidVariant)
	}

	nextCol, masteredCol := reviewColumns(variant)

	var query string
	if mastered {
		query = fmt.Sprintf(`UPDATE vocabulary SET %s = $1, %s = NULL WHERE id = $2`, masteredCol, nextCol)
	} else {
		query = fmt.Sprintf(`UPDATE vocabulary SET %s = $1 WHERE id = $2`, masteredCol)
	}

	result, err := s.db.ExecContext(ctx, query, mastered, id)
	if err != nil {
		log.Error("failed to set mastered flag",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()),
			slog.String("variant", string(variant)))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUpdateFailed, err)
	}
	if rows == 0 {
		log.Debug("vocabulary item not found during mastery update",
			slog.String("item_id", id.String()))
		return fmt.Errorf("%w: id %s", store.ErrItemNotFound, id)
	}

	log.Info("mastered flag updated",
		slog.String("item_id", id.String()),
		slog.String("variant", string(variant)),
		slog.Bool("mastered", mastered))
	return nil
}
