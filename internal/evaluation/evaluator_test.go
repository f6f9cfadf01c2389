package evaluation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WandLZhang/chinese-conversation/internal/domain"
)

// fakeJudge returns scripted replies in order and records each call.
type fakeJudge struct {
	replies []string
	errs    []error
	calls   []judgeCall
}

type judgeCall struct {
	system string
	prompt string
}

func (f *fakeJudge) Complete(_ context.Context, system, prompt string) (string, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, judgeCall{system: system, prompt: prompt})
	var err error
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	reply := ""
	if idx < len(f.replies) {
		reply = f.replies[idx]
	}
	return reply, err
}

func newTestEvaluator(judge Judge) *Evaluator {
	return NewEvaluator(judge, NewTargetExtractor(judge, nil), nil)
}

func TestEvaluateExactWordMode(t *testing.T) {
	t.Parallel()

	judge := &fakeJudge{replies: []string{completeVerdictJSON}}
	eval := newTestEvaluator(judge)

	verdict, resolution, err := eval.Evaluate(context.Background(), Input{
		Answer:       "我哋而家走啦",
		Word:         "走",
		Variant:      domain.VariantCantonese,
		ExampleUsage: "我哋走啦",
	})
	require.NoError(t, err)
	require.NotNil(t, verdict)
	require.NotNil(t, resolution)

	assert.False(t, resolution.RequiresAlternative)
	assert.Equal(t, "走", resolution.TargetWord)

	// Exactly one judge call, flagged as exact-word mode.
	require.Len(t, judge.calls, 1)
	assert.Contains(t, judge.calls[0].prompt, "Evaluation Mode: exact_word")
	assert.Contains(t, judge.calls[0].system, "CRITICAL: Your improved answer MUST use the word '走'")
}

func TestEvaluateAlternativeExpressionMode(t *testing.T) {
	t.Parallel()

	// First call extracts the target word, second call evaluates.
	judge := &fakeJudge{replies: []string{"靚", completeVerdictJSON}}
	eval := newTestEvaluator(judge)

	verdict, resolution, err := eval.Evaluate(context.Background(), Input{
		Answer:            "佢today好靚",
		Word:              "漂亮",
		Variant:           domain.VariantCantonese,
		ExampleUsage:      "佢好靚",
		GeneratedQuestion: "你覺得邊個明星最靚？",
	})
	require.NoError(t, err)
	require.NotNil(t, verdict)

	assert.True(t, resolution.RequiresAlternative)
	assert.Equal(t, "靚", resolution.TargetWord)

	require.Len(t, judge.calls, 2)
	assert.Contains(t, judge.calls[1].prompt, "Evaluation Mode: alternative_expression")
	assert.Contains(t, judge.calls[1].system, "CRITICAL: Your improved answer MUST use the word '靚'")
	// The generated question, not the stored example, is what gets judged.
	assert.Contains(t, judge.calls[1].system, "你覺得邊個明星最靚？")
}

func TestEvaluateNoExtractionWithoutGeneratedQuestion(t *testing.T) {
	t.Parallel()

	judge := &fakeJudge{replies: []string{completeVerdictJSON}}
	eval := newTestEvaluator(judge)

	_, resolution, err := eval.Evaluate(context.Background(), Input{
		Answer:       "佢好靚",
		Word:         "漂亮",
		Variant:      domain.VariantCantonese,
		ExampleUsage: "佢好靚",
	})
	require.NoError(t, err)

	// Alternative is required but there is no generated question, so the
	// target word stays the original and only the evaluation call is made.
	assert.True(t, resolution.RequiresAlternative)
	assert.Equal(t, "漂亮", resolution.TargetWord)
	assert.Len(t, judge.calls, 1)
	assert.Contains(t, judge.calls[0].system, "佢好靚")
}

func TestEvaluateMandarinNeverRequiresAlternative(t *testing.T) {
	t.Parallel()

	judge := &fakeJudge{replies: []string{completeVerdictJSON}}
	eval := newTestEvaluator(judge)

	_, resolution, err := eval.Evaluate(context.Background(), Input{
		Answer:       "他很漂亮",
		Word:         "漂亮",
		Variant:      domain.VariantMandarin,
		ExampleUsage: "她真漂亮",
	})
	require.NoError(t, err)
	assert.False(t, resolution.RequiresAlternative)
	assert.Equal(t, "漂亮", resolution.TargetWord)
	assert.Len(t, judge.calls, 1)
}

func TestEvaluateExtractionFailureFallsBack(t *testing.T) {
	t.Parallel()

	judge := &fakeJudge{
		replies: []string{"", completeVerdictJSON},
		errs:    []error{errors.New("model overloaded"), nil},
	}
	eval := newTestEvaluator(judge)

	_, resolution, err := eval.Evaluate(context.Background(), Input{
		Answer:            "佢好靚",
		Word:              "漂亮",
		Variant:           domain.VariantCantonese,
		ExampleUsage:      "佢好靚",
		GeneratedQuestion: "你覺得邊個明星最靚？",
	})
	require.NoError(t, err)
	assert.Equal(t, "漂亮", resolution.TargetWord)
}

func TestEvaluateJudgeFailure(t *testing.T) {
	t.Parallel()

	judge := &fakeJudge{errs: []error{errors.New("connection refused")}}
	eval := newTestEvaluator(judge)

	verdict, resolution, err := eval.Evaluate(context.Background(), Input{
		Answer:       "我很高兴",
		Word:         "高兴",
		Variant:      domain.VariantMandarin,
		ExampleUsage: "我很高兴",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrJudgeUnavailable)
	assert.Nil(t, verdict)
	assert.Nil(t, resolution)

	// One call, no retries.
	assert.Len(t, judge.calls, 1)
}

func TestEvaluateMalformedVerdict(t *testing.T) {
	t.Parallel()

	judge := &fakeJudge{replies: []string{"Sure! The answer looks great."}}
	eval := newTestEvaluator(judge)

	verdict, resolution, err := eval.Evaluate(context.Background(), Input{
		Answer:       "我很高兴",
		Word:         "高兴",
		Variant:      domain.VariantMandarin,
		ExampleUsage: "我很高兴",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidVerdict)
	assert.Nil(t, verdict)
	assert.Nil(t, resolution)
	assert.Len(t, judge.calls, 1)
}

func TestEvaluateEmptyAnswer(t *testing.T) {
	t.Parallel()

	judge := &fakeJudge{}
	eval := newTestEvaluator(judge)

	_, _, err := eval.Evaluate(context.Background(), Input{
		Answer:  "   ",
		Word:    "走",
		Variant: domain.VariantCantonese,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyAnswer)
	assert.Empty(t, judge.calls)
}

func TestEvaluateInvalidVariant(t *testing.T) {
	t.Parallel()

	judge := &fakeJudge{}
	eval := newTestEvaluator(judge)

	_, _, err := eval.Evaluate(context.Background(), Input{
		Answer:  "hello",
		Word:    "走",
		Variant: domain.Variant("klingon"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidVariant)
	assert.Empty(t, judge.calls)
}

func TestExtractTarget(t *testing.T) {
	t.Parallel()

	t.Run("trims whitespace", func(t *testing.T) {
		t.Parallel()
		judge := &fakeJudge{replies: []string{"  靚 \n"}}
		ext := NewTargetExtractor(judge, nil)
		got := ext.ExtractTarget(context.Background(), "你覺得邊個最靚？", "漂亮")
		assert.Equal(t, "靚", got)
		require.Len(t, judge.calls, 1)
		assert.True(t, strings.Contains(judge.calls[0].prompt, "漂亮"))
	})

	t.Run("empty reply falls back", func(t *testing.T) {
		t.Parallel()
		judge := &fakeJudge{replies: []string{"   "}}
		ext := NewTargetExtractor(judge, nil)
		got := ext.ExtractTarget(context.Background(), "你覺得邊個最靚？", "漂亮")
		assert.Equal(t, "漂亮", got)
	})

	t.Run("error falls back", func(t *testing.T) {
		t.Parallel()
		judge := &fakeJudge{errs: []error{errors.New("timeout")}}
		ext := NewTargetExtractor(judge, nil)
		got := ext.ExtractTarget(context.Background(), "你覺得邊個最靚？", "漂亮")
		assert.Equal(t, "漂亮", got)
	})
}

func TestNewEvaluatorPanicsOnNilDeps(t *testing.T) {
	t.Parallel()

	judge := &fakeJudge{}
	assert.Panics(t, func() { NewEvaluator(nil, NewTargetExtractor(judge, nil), nil) })
	assert.Panics(t, func() { NewEvaluator(judge, nil, nil) })
	assert.Panics(t, func() { NewTargetExtractor(nil, nil) })
}
