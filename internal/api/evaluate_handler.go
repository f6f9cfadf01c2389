package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/WandLZhang/chinese-conversation/internal/api/shared"
	"github.com/WandLZhang/chinese-conversation/internal/domain"
	"github.com/WandLZhang/chinese-conversation/internal/domain/srs"
	"github.com/WandLZhang/chinese-conversation/internal/evaluation"
	"github.com/WandLZhang/chinese-conversation/internal/store"
)

// EvaluateHandler handles answer evaluation requests. A request runs the
// full pipeline: load the item, judge the answer, schedule the next review,
// and persist it.
type EvaluateHandler struct {
	vocabStore store.VocabStore
	evaluator  *evaluation.Evaluator
	logger     *slog.Logger

	// now is the clock used for scheduling. Overridable in tests.
	now func() time.Time
}

// NewEvaluateHandler creates a new EvaluateHandler with the given dependencies.
func NewEvaluateHandler(vocabStore store.VocabStore, evaluator *evaluation.Evaluator, log *slog.Logger) *EvaluateHandler {
	if vocabStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("vocabStore cannot be nil for EvaluateHandler")
	}
	if evaluator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("evaluator cannot be nil for EvaluateHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &EvaluateHandler{
		vocabStore: vocabStore,
		evaluator:  evaluator,
		logger:     log.With(slog.String("component", "evaluate_handler")),
		now:        time.Now,
	}
}

// Evaluate handles POST /api/evaluate.
// When the verdict is computed but persisting the schedule fails, the
// response is a 500 that still carries the verdict and the computed next
// review, so the learner's feedback is not lost to the storage fault.
func (h *EvaluateHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req EvaluateRequest
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

	item, err := h.vocabStore.GetItem(ctx, itemID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	verdict, _, err := h.evaluator.Evaluate(ctx, evaluation.Input{
		Answer:            req.Answer,
		Word:              item.Simplified,
		Variant:           variant,
		ExampleUsage:      item.ExampleUsage(variant),
		GeneratedQuestion: req.GeneratedQuestion,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	prior := item.Review(variant).NextReview
	next := srs.NextReview(h.now(), req.HadDifficulty, *verdict, prior)

	resp := EvaluateResponse{
		Success:    true,
		Evaluation: verdict,
		NextReview: NewTimestampResponse(&next),
		Intervals:  srs.Intervals(),
	}

	if err := h.vocabStore.UpdateNextReview(ctx, itemID, variant, &next); err != nil {
		resp.Success = false
		h.logger.Error("failed to persist next review after evaluation",
			slog.String("item_id", itemID.String()),
			slog.String("variant", string(variant)),
			slog.String("error", err.Error()))
		shared.RespondWithJSON(w, r, http.StatusInternalServerError, resp)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
