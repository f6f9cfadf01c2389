package postgres

import (
	"context"
	"log/slog"

	"github.com/WandLZhang/chinese-conversation/internal/platform/logger"
	"github.com/WandLZhang/chinese-conversation/internal/store"
)

// PostgresDictionaryStore implements the store.DictionaryStore interface.
// Entries are ranked with pg_trgm similarity so near matches surface when
// no entry contains the word verbatim.
type PostgresDictionaryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDictionaryStore creates a new PostgreSQL implementation of the
// DictionaryStore interface.
func NewPostgresDictionaryStore(db store.DBTX, logger *slog.Logger) *PostgresDictionaryStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDictionaryStore{
		db:     db,
		logger: logger.With(slog.String("component", "dictionary_store")),
	}
}

// Ensure PostgresDictionaryStore implements store.DictionaryStore interface
var _ store.DictionaryStore = (*PostgresDictionaryStore)(nil)

// Lookup implements store.DictionaryStore.Lookup
// It returns up to limit entries, exact containment first, then trigram
// similarity. An empty result set is returned as an empty slice, not an
// error.
func (s *PostgresDictionaryStore) Lookup(ctx context.Context, word string, limit int) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 3
	}

	query := `
		SELECT entry
		FROM dictionary_entries
		WHERE entry LIKE '%' || $1 || '%' OR similarity(entry, $1) > 0.3
		ORDER BY (entry LIKE '%' || $1 || '%') DESC, similarity(entry, $1) DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, word, limit)
	if err != nil {
		log.Error("dictionary lookup failed",
			slog.String("error", err.Error()),
			slog.String("word", word))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var entries []string
	for rows.Next() {
		var entry string
		if err := rows.Scan(&entry); err != nil {
			return nil, MapError(err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("dictionary lookup complete",
		slog.String("word", word),
		slog.Int("entries", len(entries)))
	return entries, nil
}
