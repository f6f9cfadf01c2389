package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WandLZhang/chinese-conversation/internal/domain"
)

func boolPtr(b bool) *bool { return &b }

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestOverrideReview(t *testing.T) {
	t.Parallel()

	item := testItem()
	vocab := newFakeVocabStore(item)
	h := NewReviewHandler(vocab, nil)

	next := time.Date(2026, 4, 1, 8, 30, 0, 0, time.UTC)
	rec := postJSON(t, h.OverrideReview, "/api/review-time", OverrideReviewRequest{
		ItemID:        item.ID.String(),
		Language:      "mandarin",
		NewReviewTime: next.Format(time.RFC3339),
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp OverrideReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.NextReview)
	assert.Equal(t, next.Unix(), resp.NextReview.Seconds)
	assert.Equal(t, 0, resp.NextReview.Nanos)

	// The supplied time is stored exactly, no scheduling applied.
	require.Len(t, vocab.reviewWrites, 1)
	assert.Equal(t, domain.VariantMandarin, vocab.reviewWrites[0].variant)
	require.NotNil(t, vocab.reviewWrites[0].next)
	assert.True(t, vocab.reviewWrites[0].next.Equal(next))
}

func TestOverrideReviewBareTimestamp(t *testing.T) {
	t.Parallel()

	item := testItem()
	vocab := newFakeVocabStore(item)
	h := NewReviewHandler(vocab, nil)

	// Timestamps without a zone are accepted and read as UTC.
	rec := postJSON(t, h.OverrideReview, "/api/review-time", OverrideReviewRequest{
		ItemID:        item.ID.String(),
		Language:      "cantonese",
		NewReviewTime: "2026-04-01T08:30:00",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, vocab.reviewWrites, 1)
}

func TestOverrideReviewInvalid(t *testing.T) {
	t.Parallel()

	item := testItem()
	h := NewReviewHandler(newFakeVocabStore(item), nil)

	tests := []struct {
		name   string
		req    OverrideReviewRequest
		status int
	}{
		{
			name: "unparsable time",
			req: OverrideReviewRequest{
				ItemID: item.ID.String(), Language: "cantonese", NewReviewTime: "next tuesday",
			},
			status: http.StatusBadRequest,
		},
		{
			name: "unknown language",
			req: OverrideReviewRequest{
				ItemID: item.ID.String(), Language: "wu", NewReviewTime: "2026-04-01T08:30:00Z",
			},
			status: http.StatusBadRequest,
		},
		{
			name: "missing item",
			req: OverrideReviewRequest{
				ItemID: uuid.NewString(), Language: "cantonese", NewReviewTime: "2026-04-01T08:30:00Z",
			},
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := postJSON(t, h.OverrideReview, "/api/review-time", tt.req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestSetMastered(t *testing.T) {
	t.Parallel()

	item := testItem()
	vocab := newFakeVocabStore(item)
	h := NewReviewHandler(vocab, nil)

	rec := postJSON(t, h.SetMastered, "/api/mastered", MasteredRequest{
		ItemID:   item.ID.String(),
		Language: "cantonese",
		Mastered: boolPtr(true),
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MasteredResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Word marked as mastered for cantonese", resp.Message)

	require.Len(t, vocab.masteredWrites, 1)
	assert.Equal(t, domain.VariantCantonese, vocab.masteredWrites[0].variant)
	assert.True(t, vocab.masteredWrites[0].mastered)
}

func TestSetMasteredDefaultsToTrue(t *testing.T) {
	t.Parallel()

	item := testItem()
	vocab := newFakeVocabStore(item)
	h := NewReviewHandler(vocab, nil)

	// Older clients never send the flag at all; the word is still marked.
	rec := postJSON(t, h.SetMastered, "/api/mastered", map[string]string{
		"itemId":   item.ID.String(),
		"language": "cantonese",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MasteredResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Word marked as mastered for cantonese", resp.Message)
	require.Len(t, vocab.masteredWrites, 1)
	assert.True(t, vocab.masteredWrites[0].mastered)
}

func TestSetMasteredUnmark(t *testing.T) {
	t.Parallel()

	item := testItem()
	vocab := newFakeVocabStore(item)
	h := NewReviewHandler(vocab, nil)

	rec := postJSON(t, h.SetMastered, "/api/mastered", MasteredRequest{
		ItemID:   item.ID.String(),
		Language: "mandarin",
		Mastered: boolPtr(false),
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MasteredResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Word unmarked as mastered for mandarin", resp.Message)
	require.Len(t, vocab.masteredWrites, 1)
	assert.False(t, vocab.masteredWrites[0].mastered)
}

func TestSetMasteredNotFound(t *testing.T) {
	t.Parallel()

	h := NewReviewHandler(newFakeVocabStore(), nil)

	rec := postJSON(t, h.SetMastered, "/api/mastered", MasteredRequest{
		ItemID:   uuid.NewString(),
		Language: "cantonese",
		Mastered: boolPtr(true),
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
