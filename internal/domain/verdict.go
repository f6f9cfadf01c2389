package domain

// EvaluationVerdict is the structured judgment returned by the external
// evaluation capability for a single answer. It is produced once per
// evaluation request and never persisted directly; only its scheduling
// consequence is written back.
//
// Feedback is always written in English, regardless of the variant being
// evaluated.
type EvaluationVerdict struct {
	Fluent          bool   `json:"fluent"`
	MeaningfulUsage bool   `json:"meaningful_usage"`
	HasFillers      bool   `json:"has_fillers"`
	Romanization    string `json:"romanization"`
	ImprovedAnswer  string `json:"improved_answer"`
	Feedback        string `json:"feedback"`
}

// FullySuccessful reports whether the verdict carries none of the negative
// signals that reset the review cycle.
func (v EvaluationVerdict) FullySuccessful() bool {
	return v.Fluent && v.MeaningfulUsage && !v.HasFillers
}

// ResolutionContext records how the target word for a request was resolved.
// It is ephemeral: the same word may resolve differently against different
// example sentences, so it is computed fresh per request and never cached.
type ResolutionContext struct {
	// RequiresAlternative is true when the vocabulary word is not naturally
	// used in spoken form of the variant and a colloquial stand-in applies.
	RequiresAlternative bool `json:"requires_alternative"`

	// TargetWord is the expression the answer is actually judged against.
	// It equals the vocabulary word unless an alternative was resolved.
	TargetWord string `json:"target_word"`
}
