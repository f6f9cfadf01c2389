package api

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/WandLZhang/chinese-conversation/internal/api/shared"
	"github.com/WandLZhang/chinese-conversation/internal/domain"
	"github.com/WandLZhang/chinese-conversation/internal/question"
	"github.com/WandLZhang/chinese-conversation/internal/speech"
	"github.com/WandLZhang/chinese-conversation/internal/store"
)

// QuestionHandler handles practice question generation and standalone audio
// synthesis.
type QuestionHandler struct {
	vocabStore  store.VocabStore
	generator   *question.Generator
	synthesizer speech.Synthesizer
	logger      *slog.Logger
}

// NewQuestionHandler creates a new QuestionHandler. The synthesizer may be
// nil, in which case questions are returned without audio and the audio
// endpoint reports failure.
func NewQuestionHandler(vocabStore store.VocabStore, generator *question.Generator, synthesizer speech.Synthesizer, log *slog.Logger) *QuestionHandler {
	if vocabStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("vocabStore cannot be nil for QuestionHandler")
	}
	if generator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("generator cannot be nil for QuestionHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &QuestionHandler{
		vocabStore:  vocabStore,
		generator:   generator,
		synthesizer: synthesizer,
		logger:      log.With(slog.String("component", "question_handler")),
	}
}

// GenerateQuestion handles POST /api/questions.
// Audio synthesis failure degrades the response rather than failing it; the
// question is still usable without sound.
func (h *QuestionHandler) GenerateQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req QuestionRequest
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

	result, err := h.generator.Generate(ctx, item.Simplified, variant, item.ExampleUsage(variant))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to generate question", err)
		return
	}

	resp := QuestionResponse{
		Question:            result.Question,
		RequiresAlternative: result.RequiresAlternative,
		TargetWord:          result.TargetWord,
	}

	if h.synthesizer != nil {
		audio, err := h.synthesizer.Synthesize(ctx, result.Question, variant)
		if err != nil {
			h.logger.Warn("question audio synthesis failed",
				slog.String("item_id", itemID.String()),
				slog.String("error", err.Error()))
		} else {
			resp.Audio = base64.StdEncoding.EncodeToString(audio)
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GenerateAudio handles POST /api/audio.
func (h *QuestionHandler) GenerateAudio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AudioRequest
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

	if h.synthesizer == nil {
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Audio generation is not configured")
		return
	}

	audio, err := h.synthesizer.Synthesize(ctx, req.Text, variant)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AudioResponse{
		Audio: base64.StdEncoding.EncodeToString(audio),
	})
}
