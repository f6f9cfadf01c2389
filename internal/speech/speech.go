// Package speech defines the text-to-speech capability used to voice
// generated questions, and the WAV framing applied to raw PCM audio.
package speech

import (
	"context"
	"errors"

	"github.com/WandLZhang/chinese-conversation/internal/domain"
)

// ErrSynthesisFailed is returned when the speech service produces no audio.
var ErrSynthesisFailed = errors.New("speech synthesis failed")

// Synthesizer converts a sentence into playable audio. Implementations live
// under internal/platform.
type Synthesizer interface {
	// Synthesize returns WAV audio for the sentence, spoken in the given
	// language variant.
	Synthesize(ctx context.Context, sentence string, variant domain.Variant) ([]byte, error)
}
