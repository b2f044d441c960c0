package pipeline

import (
	"context"
	"fmt"
	"strings"

	"clementus360/meeting-agent/types"

	"github.com/sirupsen/logrus"
)

// MockTranscriber picks a sentence from a configured corpus instead of running
// speech recognition. It never inspects the audio beyond its presence.
type MockTranscriber struct {
	cfg    TranscriptionConfig
	logger logrus.FieldLogger
}

func NewMockTranscriber(cfg TranscriptionConfig, logger logrus.FieldLogger) *MockTranscriber {
	if logger == nil {
		logger = discardLogger()
	}
	return &MockTranscriber{cfg: cfg, logger: logger}
}

func (t *MockTranscriber) Transcribe(ctx context.Context, audio string, rng RandSource) (types.TranscriptionResult, error) {
	if strings.TrimSpace(audio) == "" {
		return types.TranscriptionResult{}, fmt.Errorf("%w: empty audio payload", ErrTranscriptionFailed)
	}
	if len(t.cfg.Corpus) == 0 {
		return types.TranscriptionResult{}, fmt.Errorf("%w: no transcription corpus configured", ErrTranscriptionFailed)
	}

	if err := simulateLatency(ctx, t.cfg.Delay); err != nil {
		return types.TranscriptionResult{}, err
	}

	idx := int(rng.Float64() * float64(len(t.cfg.Corpus)))
	if idx >= len(t.cfg.Corpus) {
		idx = len(t.cfg.Corpus) - 1
	}
	confidence := t.cfg.ConfidenceMin + rng.Float64()*(t.cfg.ConfidenceMax-t.cfg.ConfidenceMin)

	result := types.TranscriptionResult{
		Text:       t.cfg.Corpus[idx],
		Confidence: confidence,
	}

	t.logger.WithFields(logrus.Fields{
		"text":       result.Text,
		"confidence": fmt.Sprintf("%.1f%%", confidence*100),
	}).Debug("Transcribed audio")

	return result, nil
}
