package api

import (
	"errors"
	"net/http"

	"github.com/WandLZhang/chinese-conversation/internal/domain"
	"github.com/WandLZhang/chinese-conversation/internal/evaluation"
	"github.com/WandLZhang/chinese-conversation/internal/speech"
	"github.com/WandLZhang/chinese-conversation/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidVariant),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrItemWordEmpty),
		errors.Is(err, evaluation.ErrEmptyAnswer),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Upstream, parsing, and persistence failures are server-side faults
	case errors.Is(err, evaluation.ErrJudgeUnavailable),
		errors.Is(err, evaluation.ErrInvalidVerdict),
		errors.Is(err, speech.ErrSynthesisFailed),
		errors.Is(err, store.ErrUpdateFailed):
		return http.StatusInternalServerError

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrItemNotFound):
		return "Vocabulary item not found"

	case errors.Is(err, domain.ErrInvalidVariant):
		return "Language must be mandarin or cantonese"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid item ID"

	case errors.Is(err, evaluation.ErrEmptyAnswer):
		return "Answer is required"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request"

	case errors.Is(err, evaluation.ErrJudgeUnavailable):
		return "Evaluation service is unavailable"

	case errors.Is(err, evaluation.ErrInvalidVerdict):
		return "Evaluation service returned an unusable response"

	case errors.Is(err, speech.ErrSynthesisFailed):
		return "Audio generation failed"

	case errors.Is(err, store.ErrUpdateFailed):
		return "Failed to save the update"

	default:
		return "An unexpected error occurred"
	}
}
