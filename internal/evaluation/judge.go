package evaluation

import (
	"context"
	"errors"
)

// Common errors returned by the evaluation package
var (
	// ErrJudgeUnavailable is returned when the external evaluation call fails
	// outright (network, quota, safety block). The request is not retried.
	ErrJudgeUnavailable = errors.New("evaluation capability unavailable")

	// ErrInvalidVerdict is returned when the judge's response cannot be
	// parsed into a complete verdict. No partial verdict is ever returned.
	ErrInvalidVerdict = errors.New("invalid evaluation verdict")

	// ErrEmptyAnswer is returned when there is no answer to evaluate.
	ErrEmptyAnswer = errors.New("answer cannot be empty")

	// ErrInvalidConfig is returned when a judge implementation is
	// misconfigured.
	ErrInvalidConfig = errors.New("invalid judge configuration")
)

// Judge is the external natural-language evaluation capability. This
// interface is the boundary between the core decision logic and the LLM
// service; implementations live under internal/platform.
type Judge interface {
	// Complete sends a system instruction and a user prompt to the judge and
	// returns its raw text reply. One network call, no retries.
	Complete(ctx context.Context, system, prompt string) (string, error)
}
