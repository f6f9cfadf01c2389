package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/WandLZhang/chinese-conversation/internal/domain"
	"github.com/WandLZhang/chinese-conversation/internal/platform/logger"
	"github.com/WandLZhang/chinese-conversation/internal/usage"
)

// Input carries everything the evaluator needs to judge a single answer.
type Input struct {
	// Answer is the learner's spoken or typed response.
	Answer string

	// Word is the vocabulary word being practised, in simplified script.
	Word string

	// Variant selects the language being practised.
	Variant domain.Variant

	// ExampleUsage is the stored example sentence for the variant. It is the
	// fallback question when no generated question accompanies the answer.
	ExampleUsage string

	// GeneratedQuestion is the question the learner actually answered, when
	// one was generated for this session. May be empty.
	GeneratedQuestion string
}

// Evaluator orchestrates a single answer evaluation: it resolves whether the
// vocabulary word is usable verbatim, picks the target word and the question
// to judge against, makes exactly one judge call, and parses the verdict.
type Evaluator struct {
	judge     Judge
	extractor *TargetExtractor
	logger    *slog.Logger
}

// NewEvaluator creates an Evaluator backed by the given judge.
func NewEvaluator(judge Judge, extractor *TargetExtractor, log *slog.Logger) *Evaluator {
	if judge == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("judge cannot be nil for Evaluator")
	}
	if extractor == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("extractor cannot be nil for Evaluator")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Evaluator{
		judge:     judge,
		extractor: extractor,
		logger:    log.With(slog.String("component", "evaluator")),
	}
}

// Evaluate judges the learner's answer and returns the verdict together with
// the resolution context that was used (whether an alternative expression was
// expected, and which target word the improved answer must contain).
//
// The judge is called exactly once. A transport failure surfaces as
// ErrJudgeUnavailable; a malformed reply surfaces as ErrInvalidVerdict. In
// both cases no partial verdict is returned.
func (e *Evaluator) Evaluate(ctx context.Context, in Input) (*domain.EvaluationVerdict, *domain.ResolutionContext, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	if strings.TrimSpace(in.Answer) == "" {
		return nil, nil, ErrEmptyAnswer
	}
	if !in.Variant.IsValid() {
		return nil, nil, domain.ErrInvalidVariant
	}

	requiresAlternative := usage.RequiresAlternative(in.Word, in.Variant, in.ExampleUsage)

	targetWord := in.Word
	if requiresAlternative && in.GeneratedQuestion != "" {
		targetWord = e.extractor.ExtractTarget(ctx, in.GeneratedQuestion, in.Word)
	}

	question := in.GeneratedQuestion
	if question == "" {
		question = in.ExampleUsage
	}

	resolution := &domain.ResolutionContext{
		RequiresAlternative: requiresAlternative,
		TargetWord:          targetWord,
	}

	log.Debug("evaluating answer",
		slog.String("word", in.Word),
		slog.String("variant", string(in.Variant)),
		slog.Bool("requires_alternative", requiresAlternative),
		slog.String("target_word", targetWord))

	system := buildEvaluationSystemPrompt(in, question, targetWord, requiresAlternative)
	prompt := buildEvaluationPrompt(in, question, requiresAlternative)

	reply, err := e.judge.Complete(ctx, system, prompt)
	if err != nil {
		log.Error("judge call failed",
			slog.String("word", in.Word),
			slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("%w: %v", ErrJudgeUnavailable, err)
	}

	verdict, err := ParseVerdict(reply)
	if err != nil {
		log.Error("judge reply could not be parsed",
			slog.String("word", in.Word),
			slog.String("error", err.Error()))
		return nil, nil, err
	}

	return verdict, resolution, nil
}

func buildEvaluationSystemPrompt(in Input, question, targetWord string, requiresAlternative bool) string {
	usageInstruction := fmt.Sprintf("Evaluate whether the vocabulary word '%s' is used properly and meaningfully in the answer.", in.Word)
	if requiresAlternative {
		usageInstruction = fmt.Sprintf("This is the Cantonese word used in the question that corresponds to the meaning of '%s'. Use it naturally and meaningfully.", in.Word)
	}

	alternativeNote := ""
	if requiresAlternative {
		alternativeNote = "Note: This is Cantonese mode and the vocabulary word is not commonly used in Cantonese, so evaluate based on natural expression of the meaning rather than exact word usage.\n"
	}

	feedbackPoint := "5. How well the vocabulary word is used"
	if requiresAlternative {
		feedbackPoint = "5. How well the meaning is expressed in natural Cantonese"
	}

	return fmt.Sprintf(`You are a language evaluation assistant specializing in %s.
Analyze the following answer using these criteria:

1. Question Response: Does the answer:
   - Actually answer the question being asked: "%s"
   - Show understanding of the question's intent
   - Provide relevant information
   - Not just repeat or rephrase the question

2. Fluency: Is the sentence natural and well-constructed? Consider:
   - Grammar and word order
   - Natural expression and colloquialisms
   - Appropriate particles and measure words

3. Vocabulary/Expression Usage:
   CRITICAL: Your improved answer MUST use the word '%s' - this is non-negotiable.
   %s
   Consider:
   - Context appropriateness
   - Natural expression
   - Complexity beyond basic usage

4. English/Romanization: Check for:
   - English word substitutions
   - Romanized filler words
   - Unnecessary mixed language usage

IMPORTANT: You must evaluate the answer in relation to the question "%s", not the original entry in the database.

Vocabulary word: %s
User's answer: %s
%s
Return your evaluation as a valid JSON object with exactly these fields:
{
  "fluent": boolean,           // true if sentence is natural, grammatical, and actually answers the question
  "meaningful_usage": boolean, // true if meaning is expressed well (for Cantonese alternatives) or word is used properly
  "has_fillers": boolean,      // true if English words or unnecessary romanization used
  "romanization": string,      // pinyin for Mandarin or jyutping for Cantonese, with tones
  "improved_answer": string,   // better version that MUST use the vocabulary word (or for Cantonese: the same word used in the question)
  "feedback": string           // detailed explanation of evaluation and suggestions IN ENGLISH
}

IMPORTANT: Ensure your response is ONLY the JSON object, with no additional text or explanation.
Use double quotes for strings and proper JSON syntax.
CRITICAL: The "feedback" field MUST be written in English, even when evaluating Cantonese or Mandarin answers.

The feedback should be constructive and specific, explaining:
1. How well the answer addresses the question
2. What was done well linguistically
3. What could be improved
4. Why any improvements are suggested
%s`,
		in.Variant, question, targetWord, usageInstruction, question, in.Word, in.Answer, alternativeNote, feedbackPoint)
}

func buildEvaluationPrompt(in Input, question string, requiresAlternative bool) string {
	mode := "exact_word"
	modeInstruction := "Evaluate the proper usage of the specific vocabulary word."
	if requiresAlternative {
		mode = "alternative_expression"
		modeInstruction = "Since this word is not commonly used in Cantonese, evaluate based on whether the answer expresses the same meaning naturally using appropriate Cantonese expressions. The meaningful_usage should be true if the meaning is expressed well, even without the exact vocabulary word."
	}

	return fmt.Sprintf(`Vocabulary word: %s
User's answer: %s
Question: %s

Evaluation Mode: %s
%s

Please evaluate this answer.`,
		in.Word, in.Answer, question, mode, modeInstruction)
}
