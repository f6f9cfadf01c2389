package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"google.golang.org/genai"

	"github.com/WandLZhang/chinese-conversation/internal/config"
	"github.com/WandLZhang/chinese-conversation/internal/domain"
	"github.com/WandLZhang/chinese-conversation/internal/evaluation"
	"github.com/WandLZhang/chinese-conversation/internal/platform/logger"
	"github.com/WandLZhang/chinese-conversation/internal/speech"
)

// voiceNames are the prebuilt voices rotated through for question audio so
// learners hear varied speakers.
var voiceNames = []string{
	"Puck", "Charon", "Kore", "Fenrir", "Aoede", "Leda", "Orus", "Zephyr",
}

// Synthesizer implements the speech.Synthesizer interface using Gemini's
// audio output modality. The model returns raw 24 kHz 16-bit mono PCM which
// is framed as WAV before being returned.
type Synthesizer struct {
	logger *slog.Logger
	client *genai.Client
	model  string

	// pickVoice selects a voice name per call. Overridable in tests.
	pickVoice func() string
}

// NewSynthesizer creates a new Synthesizer with the provided configuration.
func NewSynthesizer(ctx context.Context, log *slog.Logger, cfg config.LLMConfig) (*Synthesizer, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", evaluation.ErrInvalidConfig)
	}
	if cfg.AudioModelName == "" {
		return nil, fmt.Errorf("%w: audio model name cannot be empty", evaluation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			evaluation.ErrInvalidConfig, err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Synthesizer{
		logger:    log.With(slog.String("component", "gemini_synthesizer")),
		client:    client,
		model:     cfg.AudioModelName,
		pickVoice: func() string { return voiceNames[rng.Intn(len(voiceNames))] },
	}, nil
}

// Ensure Synthesizer implements speech.Synthesizer interface
var _ speech.Synthesizer = (*Synthesizer)(nil)

// Synthesize implements speech.Synthesizer.Synthesize
// The prompt tells the model which language to speak; Cantonese sentences
// are read in Hong Kong Cantonese rather than Mandarin-ized.
func (s *Synthesizer) Synthesize(ctx context.Context, sentence string, variant domain.Variant) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !variant.IsValid() {
		return nil, domain.ErrInvalidVariant
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	language := "Mandarin Chinese"
	if variant == domain.VariantCantonese {
		language = "Hong Kong Cantonese"
	}
	prompt := fmt.Sprintf("Say the following sentence naturally in %s: %s", language, sentence)

	voice := s.pickVoice()
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: voice,
				},
			},
		},
	}

	start := time.Now()
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), cfg)
	if err != nil {
		log.Error("speech synthesis call failed",
			slog.String("model", s.model),
			slog.String("voice", voice),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", speech.ErrSynthesisFailed, err)
	}

	var pcm []byte
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				pcm = append(pcm, part.InlineData.Data...)
			}
		}
	}
	if len(pcm) == 0 {
		log.Error("speech synthesis returned no audio",
			slog.String("model", s.model),
			slog.String("voice", voice))
		return nil, fmt.Errorf("%w: empty audio response", speech.ErrSynthesisFailed)
	}

	log.Debug("speech synthesis complete",
		slog.String("voice", voice),
		slog.Duration("duration", time.Since(start)),
		slog.Int("pcm_bytes", len(pcm)))

	return speech.EncodeWAV(pcm, speech.SampleRate, speech.Channels), nil
}
