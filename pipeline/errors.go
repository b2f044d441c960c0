package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"clementus360/meeting-agent/types"
)

var (
	ErrInvalidRequest      = errors.New("invalid meeting request")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrTimeout             = errors.New("pipeline run timed out")
)

// StageError reports which stage aborted a run. The whole run is discarded.
type StageError struct {
	Stage RunState
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ValidateRequest checks that every field of the request is present.
func ValidateRequest(req types.MeetingRequest) error {
	var missing []string
	if strings.TrimSpace(req.AudioData) == "" {
		missing = append(missing, "audioData")
	}
	if strings.TrimSpace(req.MeetingID) == "" {
		missing = append(missing, "meetingId")
	}
	if strings.TrimSpace(req.ParticipantID) == "" {
		missing = append(missing, "participantId")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidRequest, strings.Join(missing, ", "))
	}
	return nil
}
