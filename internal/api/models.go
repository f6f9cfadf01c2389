package api

import (
	"time"

	"github.com/WandLZhang/chinese-conversation/internal/domain"
	"github.com/WandLZhang/chinese-conversation/internal/domain/srs"
)

// EvaluateRequest contains the data for evaluating a learner's answer.
type EvaluateRequest struct {
	ItemID            string `json:"itemId" validate:"required,uuid"`
	Language          string `json:"language" validate:"required"`
	Answer            string `json:"answer" validate:"required"`
	HadDifficulty     bool   `json:"hadDifficulty"`
	GeneratedQuestion string `json:"generatedQuestion,omitempty"`
}

// EvaluateResponse carries the verdict and the review time scheduled from
// it. The same shape is returned with success=false when the verdict was
// computed but could not be persisted, so the client still sees the result.
type EvaluateResponse struct {
	Success    bool                      `json:"success"`
	Evaluation *domain.EvaluationVerdict `json:"evaluation"`
	NextReview *TimestampResponse        `json:"nextReview"`
	Intervals  srs.IntervalTable         `json:"intervals"`
}

// OverrideReviewRequest sets an item's next review time directly.
// NewReviewTime is an ISO-8601 timestamp stored verbatim.
type OverrideReviewRequest struct {
	ItemID        string `json:"itemId" validate:"required,uuid"`
	Language      string `json:"language" validate:"required"`
	NewReviewTime string `json:"newReviewTime" validate:"required"`
}

// OverrideReviewResponse echoes the stored review time.
type OverrideReviewResponse struct {
	Success    bool               `json:"success"`
	NextReview *TimestampResponse `json:"nextReview"`
}

// MasteredRequest toggles the mastered flag for one language variant.
// Mastered is a pointer so an omitted field can be told apart from an
// explicit false; omitted means mark as mastered.
type MasteredRequest struct {
	ItemID   string `json:"itemId" validate:"required,uuid"`
	Language string `json:"language" validate:"required"`
	Mastered *bool  `json:"mastered"`
}

// MasteredResponse reports the result of a mastery update.
type MasteredResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// QuestionRequest asks for a generated practice question for an item.
type QuestionRequest struct {
	ItemID   string `json:"itemId" validate:"required,uuid"`
	Language string `json:"language" validate:"required"`
}

// QuestionResponse carries the generated question, its audio, and the
// resolution the evaluation step will need.
type QuestionResponse struct {
	Question            string `json:"question"`
	Audio               string `json:"audio,omitempty"`
	RequiresAlternative bool   `json:"requires_alternative"`
	TargetWord          string `json:"target_word"`
}

// AudioRequest asks for speech audio of an arbitrary sentence.
type AudioRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language" validate:"required"`
}

// AudioResponse carries base64-encoded WAV audio.
type AudioResponse struct {
	Audio string `json:"audio"`
}

// TimestampResponse is the wire form of a point in time, split into Unix
// seconds and nanoseconds.
type TimestampResponse struct {
	Seconds int64 `json:"seconds"`
	Nanos   int   `json:"nanos"`
}

// NewTimestampResponse converts a time into its wire form. A nil time maps
// to a nil response so cleared schedules serialize as null.
func NewTimestampResponse(t *time.Time) *TimestampResponse {
	if t == nil {
		return nil
	}
	return &TimestampResponse{
		Seconds: t.Unix(),
		Nanos:   t.Nanosecond(),
	}
}
