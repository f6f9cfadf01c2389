package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WandLZhang/chinese-conversation/internal/domain"
	"github.com/WandLZhang/chinese-conversation/internal/store"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, nil }

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

// mockDBTX implements store.DBTX for testing. Exec calls are recorded so
// tests can assert on the statements and arguments issued.
type mockDBTX struct {
	execResult   sql.Result
	execErr      error
	execQueries  []string
	execArgs     [][]any
}

func (m *mockDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	m.execQueries = append(m.execQueries, query)
	m.execArgs = append(m.execArgs, args)
	return m.execResult, m.execErr
}

func (m *mockDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, nil
}

func (m *mockDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func TestNewPostgresVocabStore(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewPostgresVocabStore(nil, slog.Default()) })

	s := NewPostgresVocabStore(&mockDBTX{}, nil)
	assert.NotNil(t, s)
}

func TestReviewColumns(t *testing.T) {
	t.Parallel()

	next, mastered := reviewColumns(domain.VariantMandarin)
	assert.Equal(t, "next_review_mandarin", next)
	assert.Equal(t, "mastered_mandarin", mastered)

	next, mastered = reviewColumns(domain.VariantCantonese)
	assert.Equal(t, "next_review_cantonese", next)
	assert.Equal(t, "mastered_cantonese", mastered)
}

func TestUpdateNextReview(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	next := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("writes timestamp for variant column", func(t *testing.T) {
		t.Parallel()
		db := &mockDBTX{execResult: mockResult{rowsAffected: 1}}
		s := NewPostgresVocabStore(db, nil)

		err := s.UpdateNextReview(context.Background(), id, domain.VariantCantonese, &next)
		require.NoError(t, err)

		require.Len(t, db.execQueries, 1)
		assert.Contains(t, db.execQueries[0], "next_review_cantonese")
		require.Len(t, db.execArgs[0], 2)
		value, ok := db.execArgs[0][0].(sql.NullTime)
		require.True(t, ok)
		assert.True(t, value.Valid)
		assert.Equal(t, next, value.Time)
	})

	t.Run("nil time clears schedule", func(t *testing.T) {
		t.Parallel()
		db := &mockDBTX{execResult: mockResult{rowsAffected: 1}}
		s := NewPostgresVocabStore(db, nil)

		err := s.UpdateNextReview(context.Background(), id, domain.VariantMandarin, nil)
		require.NoError(t, err)

		value, ok := db.execArgs[0][0].(sql.NullTime)
		require.True(t, ok)
		assert.False(t, value.Valid)
	})

	t.Run("missing item maps to ErrItemNotFound", func(t *testing.T) {
		t.Parallel()
		db := &mockDBTX{execResult: mockResult{rowsAffected: 0}}
		s := NewPostgresVocabStore(db, nil)

		err := s.UpdateNextReview(context.Background(), id, domain.VariantCantonese, &next)
		assert.ErrorIs(t, err, store.ErrItemNotFound)
	})

	t.Run("invalid variant rejected before touching db", func(t *testing.T) {
		t.Parallel()
		db := &mockDBTX{}
		s := NewPostgresVocabStore(db, nil)

		err := s.UpdateNextReview(context.Background(), id, domain.Variant("latin"), &next)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.Empty(t, db.execQueries)
	})

	t.Run("exec error surfaced", func(t *testing.T) {
		t.Parallel()
		db := &mockDBTX{execErr: errors.New("connection reset")}
		s := NewPostgresVocabStore(db, nil)

		err := s.UpdateNextReview(context.Background(), id, domain.VariantCantonese, &next)
		assert.Error(t, err)
	})

	t.Run("rows affected failure maps to ErrUpdateFailed", func(t *testing.T) {
		t.Parallel()
		db := &mockDBTX{execResult: mockResult{err: errors.New("driver does not report rows")}}
		s := NewPostgresVocabStore(db, nil)

		err := s.UpdateNextReview(context.Background(), id, domain.VariantCantonese, &next)
		assert.ErrorIs(t, err, store.ErrUpdateFailed)
	})
}

func TestSetMastered(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	t.Run("mastering clears next review in same statement", func(t *testing.T) {
		t.Parallel()
		db := &mockDBTX{execResult: mockResult{rowsAffected: 1}}
		s := NewPostgresVocabStore(db, nil)

		err := s.SetMastered(context.Background(), id, domain.VariantCantonese, true)
		require.NoError(t, err)

		require.Len(t, db.execQueries, 1)
		assert.Contains(t, db.execQueries[0], "mastered_cantonese")
		assert.Contains(t, db.execQueries[0], "next_review_cantonese = NULL")
	})

	t.Run("unmastering leaves next review untouched", func(t *testing.T) {
		t.Parallel()
		db := &mockDBTX{execResult: mockResult{rowsAffected: 1}}
		s := NewPostgresVocabStore(db, nil)

		err := s.SetMastered(context.Background(), id, domain.VariantMandarin, false)
		require.NoError(t, err)

		require.Len(t, db.execQueries, 1)
		assert.Contains(t, db.execQueries[0], "mastered_mandarin")
		assert.NotContains(t, db.execQueries[0], "next_review")
	})

	t.Run("missing item maps to ErrItemNotFound", func(t *testing.T) {
		t.Parallel()
		db := &mockDBTX{execResult: mockResult{rowsAffected: 0}}
		s := NewPostgresVocabStore(db, nil)

		err := s.SetMastered(context.Background(), id, domain.VariantCantonese, true)
		assert.ErrorIs(t, err, store.ErrItemNotFound)
	})

	t.Run("rows affected failure maps to ErrUpdateFailed", func(t *testing.T) {
		t.Parallel()
		db := &mockDBTX{execResult: mockResult{err: errors.New("driver does not report rows")}}
		s := NewPostgresVocabStore(db, nil)

		err := s.SetMastered(context.Background(), id, domain.VariantCantonese, true)
		assert.ErrorIs(t, err, store.ErrUpdateFailed)
	})
}

// driver.Valuer sanity check for the cleared-schedule write.
var _ driver.Valuer = sql.NullTime{}
