package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/WandLZhang/chinese-conversation/internal/config"
	"github.com/WandLZhang/chinese-conversation/internal/evaluation"
	"github.com/WandLZhang/chinese-conversation/internal/platform/logger"
)

// requestTimeout bounds a single model call. There are no retries; a slow
// call fails the request rather than queueing behind it.
const requestTimeout = 60 * time.Second

// Judge implements the evaluation.Judge interface using Google's Gemini API.
type Judge struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// NewJudge creates a new Judge with the provided configuration.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key and model name
//
// Returns:
//   - A properly initialized Judge or an error if initialization fails
func NewJudge(ctx context.Context, log *slog.Logger, cfg config.LLMConfig) (*Judge, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", evaluation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", evaluation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			evaluation.ErrInvalidConfig, err)
	}

	return &Judge{
		logger: log.With(slog.String("component", "gemini_judge")),
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Ensure Judge implements evaluation.Judge interface
var _ evaluation.Judge = (*Judge)(nil)

// Complete implements evaluation.Judge.Complete
// It makes exactly one model call with the given system instruction and
// prompt and returns the raw text reply. Temperature is pinned to zero so
// repeated evaluations of the same answer agree.
func (j *Judge) Complete(ctx context.Context, system, prompt string) (string, error) {
	log := logger.FromContextOrDefault(ctx, j.logger)

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0),
		MaxOutputTokens: 1024,
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	start := time.Now()
	resp, err := j.client.Models.GenerateContent(ctx, j.model, genai.Text(prompt), cfg)
	if err != nil {
		log.Error("gemini call failed",
			slog.String("model", j.model),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	log.Debug("gemini call complete",
		slog.String("model", j.model),
		slog.Duration("duration", time.Since(start)),
		slog.Int("reply_length", len(text)))

	return text, nil
}
