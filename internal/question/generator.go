package question

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/WandLZhang/chinese-conversation/internal/domain"
	"github.com/WandLZhang/chinese-conversation/internal/evaluation"
	"github.com/WandLZhang/chinese-conversation/internal/platform/logger"
	"github.com/WandLZhang/chinese-conversation/internal/usage"
)

// retrievalLimit caps how many dictionary candidates are fetched per lookup.
const retrievalLimit = 3

// Retriever looks up dictionary entries for a vocabulary word. A failed or
// empty lookup is not fatal to question generation.
type Retriever interface {
	Lookup(ctx context.Context, word string, limit int) ([]string, error)
}

// Result is a generated practice question together with the resolution that
// produced it.
type Result struct {
	// Question is the generated question text.
	Question string

	// RequiresAlternative reports whether the vocabulary word was judged
	// unusable verbatim in colloquial Cantonese, either by the usage
	// resolver or by a formal-register marker on its dictionary entry.
	RequiresAlternative bool

	// TargetWord is the expression the learner's answer is expected to use.
	// It equals the vocabulary word unless an alternative was required, in
	// which case it is the colloquial expression extracted from the question.
	TargetWord string
}

// Generator produces practice questions for vocabulary items.
type Generator struct {
	judge     evaluation.Judge
	extractor *evaluation.TargetExtractor
	retriever Retriever
	logger    *slog.Logger
}

// NewGenerator creates a Generator. The retriever may be nil, in which case
// questions are generated without dictionary context.
func NewGenerator(judge evaluation.Judge, extractor *evaluation.TargetExtractor, retriever Retriever, log *slog.Logger) *Generator {
	if judge == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("judge cannot be nil for Generator")
	}
	if extractor == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("extractor cannot be nil for Generator")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		judge:     judge,
		extractor: extractor,
		retriever: retriever,
		logger:    log.With(slog.String("component", "question_generator")),
	}
}

// Generate produces a practice question for the given word. For Cantonese,
// the usage resolver decides whether the question must use a colloquial
// alternative instead of the word itself; when it does, the target word is
// extracted from the generated question.
func (g *Generator) Generate(ctx context.Context, word string, variant domain.Variant, exampleUsage string) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if strings.TrimSpace(word) == "" {
		return nil, domain.ErrItemWordEmpty
	}
	if !variant.IsValid() {
		return nil, domain.ErrInvalidVariant
	}

	requiresAlternative := usage.RequiresAlternative(word, variant, exampleUsage)

	var questionText string
	var err error
	if variant == domain.VariantCantonese {
		questionText, requiresAlternative, err = g.generateCantonese(ctx, word, exampleUsage, requiresAlternative)
	} else {
		questionText, err = g.generateMandarin(ctx, word)
	}
	if err != nil {
		log.Error("question generation failed",
			slog.String("word", word),
			slog.String("variant", string(variant)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("generating question: %w", err)
	}
	if questionText == "" {
		return nil, fmt.Errorf("%w: empty question", evaluation.ErrJudgeUnavailable)
	}

	targetWord := word
	if requiresAlternative {
		targetWord = g.extractor.ExtractTarget(ctx, questionText, word)
	}

	log.Debug("generated question",
		slog.String("word", word),
		slog.String("variant", string(variant)),
		slog.Bool("requires_alternative", requiresAlternative),
		slog.String("target_word", targetWord))

	return &Result{
		Question:            questionText,
		RequiresAlternative: requiresAlternative,
		TargetWord:          targetWord,
	}, nil
}

// generateCantonese produces a Cantonese question. The returned flag reports
// whether the question avoids the vocabulary word: either the usage resolver
// already decided so, or the dictionary entry marks the word as formal or
// written register.
func (g *Generator) generateCantonese(ctx context.Context, word, exampleUsage string, requiresAlternative bool) (string, bool, error) {
	entry := g.lookupEntry(ctx, word)
	colloquial := requiresAlternative || entry.Formal

	var system string
	if colloquial {
		reference := exampleUsage
		if reference == "" {
			reference = "Not available"
		}
		system = fmt.Sprintf(`You are a natural Cantonese language generator specializing in authentic Hong Kong Cantonese usage.

CRITICAL INSTRUCTION: The vocabulary word "%s" is a FORMAL/WRITTEN word that Cantonese speakers do NOT use in daily conversation.

REFERENCE: Here is an example of how a native Cantonese speaker would express this concept:
%s

Your task:
1. Generate a natural conversational Cantonese question
2. DO NOT use the formal word "%s"
3. Instead use these colloquial alternatives: %s
4. Look at the reference example to understand what word/expression Cantonese speakers use instead
5. Make it sound like something a Hong Kong person would actually say

Entry Type: %s
Dictionary Entry (for additional context):
%s

IMPORTANT: Output ONLY the Cantonese question with NO additional text - no jyutping, no translation, no explanation.`,
			word, reference, word, alternativesClause(entry), entryTypeLabel(entry), entry.Text)
	} else {
		system = fmt.Sprintf(`You are a natural Cantonese language generator specializing in authentic Hong Kong Cantonese usage.

The vocabulary word "%s" IS commonly used in Cantonese conversation.

Your task:
1. Generate a natural conversational Cantonese question
2. USE the vocabulary word "%s" in your question
3. Make it sound like something a Hong Kong person would actually say
4. Focus on daily life situations where this word would naturally come up

Entry Type: %s
Dictionary Entry (for context):
%s

IMPORTANT: Output ONLY the Cantonese question with NO additional text - no jyutping, no translation, no explanation.`,
			word, word, entryTypeLabel(entry), entry.Text)
	}

	prompt := fmt.Sprintf("Input: %s\nGenerate ONLY a single natural Cantonese question.", word)

	reply, err := g.judge.Complete(ctx, system, prompt)
	if err != nil {
		return "", colloquial, err
	}
	return strings.TrimSpace(reply), colloquial, nil
}

// alternativesClause renders the entry's colloquial alternatives for the
// prompt, falling back to a generic instruction when the entry lists none.
func alternativesClause(entry Entry) string {
	if len(entry.Alternatives) == 0 {
		return "common spoken Cantonese expressions"
	}
	return strings.Join(entry.Alternatives, ", ")
}

func entryTypeLabel(entry Entry) string {
	if entry.ExactMatch {
		return "Exact match"
	}
	return "No exact match"
}

const mandarinSystemPrompt = `You are a Mandarin language tutor specializing in creating engaging, contextual questions. Your task is to generate questions that naturally incorporate vocabulary words while avoiding textbook-style or overly simplistic constructions.

Guidelines:
1. Create questions that demonstrate the word's usage in meaningful contexts
2. Focus on real-life situations where the word would naturally be used
3. Make the questions engaging and conversational
4. Ensure the vocabulary word is used naturally within the question
5. Avoid basic "what is X" style questions
6. Use the vocabulary word in a way that clearly shows its meaning

IMPORTANT: Output ONLY the Mandarin question with NO additional text or explanation.`

func (g *Generator) generateMandarin(ctx context.Context, word string) (string, error) {
	prompt := fmt.Sprintf("Input: %s\nGenerate ONLY a single natural Mandarin question.", word)

	reply, err := g.judge.Complete(ctx, mandarinSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// lookupEntry fetches dictionary context for the word. Retrieval problems
// only cost us context, never the question itself.
func (g *Generator) lookupEntry(ctx context.Context, word string) Entry {
	if g.retriever == nil {
		return Entry{}
	}

	candidates, err := g.retriever.Lookup(ctx, word, retrievalLimit)
	if err != nil {
		logger.FromContextOrDefault(ctx, g.logger).Warn("dictionary lookup failed",
			slog.String("word", word),
			slog.String("error", err.Error()))
		return Entry{}
	}
	return BestEntry(candidates, word)
}
