package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/WandLZhang/chinese-conversation/internal/api/shared"
	"github.com/WandLZhang/chinese-conversation/internal/domain"
	"github.com/WandLZhang/chinese-conversation/internal/domain/srs"
	"github.com/WandLZhang/chinese-conversation/internal/store"
)

// ReviewHandler handles manual review-schedule overrides and mastery
// updates.
type ReviewHandler struct {
	vocabStore store.VocabStore
	logger     *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler with the given dependencies.
func NewReviewHandler(vocabStore store.VocabStore, log *slog.Logger) *ReviewHandler {
	if vocabStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("vocabStore cannot be nil for ReviewHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ReviewHandler{
		vocabStore: vocabStore,
		logger:     log.With(slog.String("component", "review_handler")),
	}
}

// OverrideReview handles POST /api/review-time.
// The supplied time is written as-is with no scheduling logic applied, and
// the stored value is echoed back so the client can confirm what was saved.
func (h *ReviewHandler) OverrideReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OverrideReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request", err)
		return
	}

	variant, err := domain.ParseVariant(req.Language)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid item ID", err)
		return
	}

	next := srs.ParsePrior(req.NewReviewTime)
	if next == nil {
		err := fmt.Errorf("%w: next review time %q", domain.ErrInvalidFormat, req.NewReviewTime)
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid next review time", err)
		return
	}

	if err := h.vocabStore.UpdateNextReview(ctx, itemID, variant, next); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, OverrideReviewResponse{
		Success:    true,
		NextReview: NewTimestampResponse(next),
	})
}

// SetMastered handles POST /api/mastered.
// Marking a variant mastered also clears its pending review in the same
// store write.
func (h *ReviewHandler) SetMastered(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MasteredRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request", err)
		return
	}

	variant, err := domain.ParseVariant(req.Language)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid item ID", err)
		return
	}

	// Requests that omit the flag mark the word mastered, matching older
	// clients that never sent it.
	mastered := true
	if req.Mastered != nil {
		mastered = *req.Mastered
	}

	if err := h.vocabStore.SetMastered(ctx, itemID, variant, mastered); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	message := fmt.Sprintf("Word unmarked as mastered for %s", variant)
	if mastered {
		message = fmt.Sprintf("Word marked as mastered for %s", variant)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MasteredResponse{
		Success: true,
		Message: message,
	})
}
