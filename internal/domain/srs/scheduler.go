package srs

import (
	"time"

	"github.com/WandLZhang/chinese-conversation/internal/domain"
)

// NextReview computes when the item should next be reviewed.
//
// It is a pure function: deterministic, no I/O, no clock access. The first
// matching rule wins, in this order:
//
//  1. Self-reported difficulty → now + 5 minutes, regardless of the verdict.
//  2. Not fluent or fillers used → now + 15 minutes.
//  3. Not meaningful usage → now + 30 minutes.
//  4. Fully successful → advance along the success ladder based on how long
//     the prior interval was; first success (prior == nil) uses the initial
//     3-day interval; the ladder saturates at its largest value.
//
// prior is the stored next-review time from the previous fully successful
// attempt, or nil when none exists.
func NextReview(
	now time.Time,
	hadDifficulty bool,
	verdict domain.EvaluationVerdict,
	prior *time.Time,
) time.Time {
	if hadDifficulty {
		return now.Add(ImmediateMinutes * time.Minute)
	}

	if !verdict.Fluent || verdict.HasFillers {
		return now.Add(ShortMinutes * time.Minute)
	}

	if !verdict.MeaningfulUsage {
		return now.Add(MediumMinutes * time.Minute)
	}

	// Fully successful attempt from here on.

	// Safety net: re-check the negative signals excluded above. The
	// short-circuit order makes this branch unreachable, but a regression in
	// the ordering must degrade to the initial interval, not a long one.
	if prior == nil || hadDifficulty || !verdict.FullySuccessful() {
		return now.Add(time.Duration(InitialSuccessMinutes) * time.Minute)
	}

	elapsed := now.Sub(*prior).Minutes()

	// Pick the smallest ladder interval strictly greater than the elapsed
	// minutes; saturate at the last value when none is greater.
	ladder := successLadder()
	next := ladder[len(ladder)-1]
	for _, interval := range ladder {
		if float64(interval) > elapsed {
			next = interval
			break
		}
	}

	return now.Add(time.Duration(next) * time.Minute)
}

// ParsePrior converts a stored prior next-review value into a timestamp for
// NextReview. The stored value may predate the current schema and be held as
// ISO-8601 text; anything unparsable is treated as absent, which makes the
// scheduler fall back to the initial success interval rather than failing
// the request.
func ParsePrior(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
