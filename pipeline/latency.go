package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// simulateLatency stands in for the I/O wait of a real transcription or LLM
// service. It returns early with the context error when the run is cancelled.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
