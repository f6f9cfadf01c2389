package evaluation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/WandLZhang/chinese-conversation/internal/domain"
)

// StripCodeFence removes markdown code-fence lines that text generators
// habitually wrap around JSON output. Lines beginning with ``` are dropped
// wherever they appear; everything else is preserved verbatim.
func StripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// rawVerdict mirrors EvaluationVerdict with pointer fields so that missing
// keys can be told apart from zero values during decoding.
type rawVerdict struct {
	Fluent          *bool   `json:"fluent"`
	MeaningfulUsage *bool   `json:"meaningful_usage"`
	HasFillers      *bool   `json:"has_fillers"`
	Romanization    *string `json:"romanization"`
	ImprovedAnswer  *string `json:"improved_answer"`
	Feedback        *string `json:"feedback"`
}

// ParseVerdict converts the judge's raw reply into an EvaluationVerdict.
// Code fences are stripped before decoding. All six fields must be present
// and correctly typed; anything less returns ErrInvalidVerdict and no
// partial verdict.
func ParseVerdict(reply string) (*domain.EvaluationVerdict, error) {
	text := StripCodeFence(reply)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidVerdict)
	}

	var raw rawVerdict
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidVerdict, err)
	}

	missing := ""
	switch {
	case raw.Fluent == nil:
		missing = "fluent"
	case raw.MeaningfulUsage == nil:
		missing = "meaningful_usage"
	case raw.HasFillers == nil:
		missing = "has_fillers"
	case raw.Romanization == nil:
		missing = "romanization"
	case raw.ImprovedAnswer == nil:
		missing = "improved_answer"
	case raw.Feedback == nil:
		missing = "feedback"
	}
	if missing != "" {
		return nil, fmt.Errorf("%w: missing field %q", ErrInvalidVerdict, missing)
	}

	return &domain.EvaluationVerdict{
		Fluent:          *raw.Fluent,
		MeaningfulUsage: *raw.MeaningfulUsage,
		HasFillers:      *raw.HasFillers,
		Romanization:    *raw.Romanization,
		ImprovedAnswer:  *raw.ImprovedAnswer,
		Feedback:        *raw.Feedback,
	}, nil
}
