package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clementus360/meeting-agent/config"
	"clementus360/meeting-agent/engine"
	"clementus360/meeting-agent/pipeline"
	"clementus360/meeting-agent/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.Logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

const instantPipeline = `
transcription: {delay: 0s}
extraction: {delay: 0s}
persona: {delay: 0s}
update: {delay: 0s}
`

func setupEnv(t *testing.T, apiKey string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(instantPipeline), 0o600))

	t.Setenv("MEETING_AGENT_API_KEY", apiKey)
	t.Setenv("APP_ENV", "development")
	t.Setenv("PIPELINE_CONFIG", path)
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("RUN_TIMEOUT", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("MAX_TRACKED_EXECUTIONS", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "Meeting Agent API 0.4.3\n", out)
}

func TestProcessCommandDefaults(t *testing.T) {
	setupEnv(t, "test-key")

	out, err := execute(t, "process")
	require.NoError(t, err)

	var result types.MeetingResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "meeting-123", result.MeetingID)
	assert.Equal(t, "participant-456", result.ParticipantID)
	assert.Contains(t, pipeline.DefaultConfig().Transcription.Corpus, result.TranscribedText)
	assert.True(t, result.ProcessingSummary.CharacterCreated)
	assert.Len(t, result.UpdatedTasks, len(result.ExtractedTasks))
}

func TestProcessCommandSeedIsReproducible(t *testing.T) {
	setupEnv(t, "test-key")

	run := func() types.MeetingResult {
		out, err := execute(t, "process", "--seed", "42", "--meeting-id", "standup")
		require.NoError(t, err)
		var result types.MeetingResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		return result
	}

	first, second := run(), run()
	assert.Equal(t, "standup", first.MeetingID)
	assert.Equal(t, first.TranscribedText, second.TranscribedText)
	assert.Equal(t, first.Persona.Mode, second.Persona.Mode)
	assert.Equal(t, first.ProcessingSummary, second.ProcessingSummary)
}

func TestProcessCommandRequiresAPIKey(t *testing.T) {
	setupEnv(t, "")

	_, err := execute(t, "process")
	require.ErrorIs(t, err, config.ErrConfigurationMissing)
}

func TestProcessCommandRejectsBlankAudio(t *testing.T) {
	setupEnv(t, "test-key")

	_, err := execute(t, "process", "--audio", "")
	require.ErrorIs(t, err, pipeline.ErrInvalidRequest)
}

func newTestHandler(t *testing.T, bodyLimit int64) http.Handler {
	t.Helper()
	p := pipeline.New(pipeline.DefaultConfig().WithoutLatency(), nil, nil)
	eng, err := engine.New(p, engine.Config{APIKey: "test-key"}, nil)
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	return newHandler(eng, bodyLimit)
}

func TestHandlerStack(t *testing.T) {
	h := newTestHandler(t, 1024)

	t.Run("health carries cors headers", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/process-meeting", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("process then status", func(t *testing.T) {
		body := `{"audioData":"a","meetingId":"m-1","participantId":"p-1"}`
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/process-meeting", strings.NewReader(body)))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp types.ProcessMeetingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status/"+resp.ExecutionID, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"completed"`)
	})

	t.Run("oversized body", func(t *testing.T) {
		body := `{"audioData":"` + strings.Repeat("A", 2048) + `","meetingId":"m","participantId":"p"}`
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/process-meeting", strings.NewReader(body)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}
