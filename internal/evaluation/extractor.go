package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/WandLZhang/chinese-conversation/internal/platform/logger"
)

const extractorSystemPrompt = `You are a Cantonese language expert. Given a vocabulary word and a generated question, identify the Cantonese word or expression used in the question that corresponds to the meaning of the vocabulary word. Return ONLY the identified Cantonese characters, nothing else.`

// TargetExtractor identifies which expression in a freshly generated
// question stands in for a vocabulary word's meaning. It is only consulted
// when the usage resolver has signalled that an alternative is required.
type TargetExtractor struct {
	judge  Judge
	logger *slog.Logger
}

// NewTargetExtractor creates a TargetExtractor backed by the given judge.
func NewTargetExtractor(judge Judge, log *slog.Logger) *TargetExtractor {
	if judge == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("judge cannot be nil for TargetExtractor")
	}
	if log == nil {
		log = slog.Default()
	}
	return &TargetExtractor{
		judge:  judge,
		logger: log.With(slog.String("component", "target_extractor")),
	}
}

// ExtractTarget returns the expression in question that carries the meaning
// of word. Extraction is fail-open: a judge error or an empty reply falls
// back to the original word so the evaluation pipeline never aborts here.
// One external call, no retries.
func (e *TargetExtractor) ExtractTarget(ctx context.Context, question, word string) string {
	log := logger.FromContextOrDefault(ctx, e.logger)

	prompt := fmt.Sprintf(
		"Vocabulary word: %s\nGenerated question: %s\n\nWhat Cantonese word/expression in this question corresponds to the meaning of '%s'?\nReturn ONLY the Cantonese characters.",
		word, question, word,
	)

	reply, err := e.judge.Complete(ctx, extractorSystemPrompt, prompt)
	if err != nil {
		log.Warn("target word extraction failed, falling back to original word",
			slog.String("word", word),
			slog.String("error", err.Error()))
		return word
	}

	target := strings.TrimSpace(reply)
	if target == "" {
		log.Warn("target word extraction returned empty reply, falling back to original word",
			slog.String("word", word))
		return word
	}

	log.Debug("extracted target word",
		slog.String("word", word),
		slog.String("target_word", target))
	return target
}
