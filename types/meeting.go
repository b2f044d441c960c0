package types

import "time"

// MeetingRequest is the input of a single pipeline run.
type MeetingRequest struct {
	AudioData     string `json:"audioData"` // base64 audio or a file reference
	MeetingID     string `json:"meetingId"`
	ParticipantID string `json:"participantId"`
}

type TranscriptionResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type ProcessingSummary struct {
	SpeechToTextConfidence float64 `json:"speechToTextConfidence"`
	TasksExtracted         int     `json:"tasksExtracted"`
	CharacterCreated       bool    `json:"characterCreated"`
	TasksUpdated           int     `json:"tasksUpdated"` // tasks passed through the updater
	TasksChanged           int     `json:"tasksChanged"` // tasks the updater actually modified
}

type MeetingResult struct {
	MeetingID         string            `json:"meetingId"`
	ParticipantID     string            `json:"participantId"`
	TranscribedText   string            `json:"transcribedText"`
	ExtractedTasks    []Task            `json:"extractedTasks"`
	Persona           Persona           `json:"aiCharacter"`
	UpdatedTasks      []Task            `json:"updatedTasks"`
	ProcessingSummary ProcessingSummary `json:"processingSummary"`
}

type ProcessMeetingResponse struct {
	Success     bool          `json:"success"`
	ExecutionID string        `json:"executionId"`
	Data        MeetingResult `json:"data"`
	Timestamp   string        `json:"timestamp"`
}

type StatusResponse struct {
	ExecutionID string `json:"executionId"`
	Status      string `json:"status"`
	Stage       string `json:"stage,omitempty"`
	Error       string `json:"error,omitempty"`
	Timestamp   string `json:"timestamp"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type ErrorResponse struct {
	Error              string   `json:"error"`
	Message            string   `json:"message,omitempty"`
	AvailableEndpoints []string `json:"availableEndpoints,omitempty"`
	Timestamp          string   `json:"timestamp,omitempty"`
}

// TimestampFormat matches JavaScript's Date.toISOString.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}
