package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"clementus360/meeting-agent/pipeline"
	"clementus360/meeting-agent/types"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var request = types.MeetingRequest{
	AudioData:     "audio",
	MeetingID:     "meeting-123",
	ParticipantID: "participant-456",
}

type runnerFunc func(ctx context.Context, req types.MeetingRequest, rng pipeline.RandSource, observe pipeline.Observer) (types.MeetingResult, error)

func (f runnerFunc) Run(ctx context.Context, req types.MeetingRequest, rng pipeline.RandSource, observe pipeline.Observer) (types.MeetingResult, error) {
	return f(ctx, req, rng, observe)
}

func newTestEngine(t *testing.T, runner Runner, cfg Config, opts ...Option) *Engine {
	t.Helper()
	logger, _ := test.NewNullLogger()
	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	e, err := New(runner, cfg, logger, opts...)
	require.NoError(t, err)
	return e
}

func realPipeline(cfg pipeline.Config) *pipeline.Pipeline {
	logger, _ := test.NewNullLogger()
	return pipeline.New(cfg, nil, logger)
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(realPipeline(pipeline.DefaultConfig()), Config{}, nil)
	require.ErrorIs(t, err, ErrMissingKey)
}

func TestExecuteCompletes(t *testing.T) {
	e := newTestEngine(t, realPipeline(pipeline.DefaultConfig().WithoutLatency()), Config{})

	id, result, err := e.Execute(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, "meeting-123", result.MeetingID)

	exec, ok := e.Status(id)
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, exec.Status)
	assert.Equal(t, "done", exec.Stage)
	assert.Equal(t, "meeting-123", exec.MeetingID)
	assert.False(t, exec.FinishedAt.Before(exec.StartedAt))
}

func TestExecuteRecordsFailure(t *testing.T) {
	cause := errors.New("boom")
	e := newTestEngine(t, runnerFunc(func(_ context.Context, _ types.MeetingRequest, _ pipeline.RandSource, observe pipeline.Observer) (types.MeetingResult, error) {
		observe(pipeline.StateTranscribing)
		observe(pipeline.StateFailed)
		return types.MeetingResult{}, cause
	}), Config{})

	id, _, err := e.Execute(context.Background(), request)
	require.ErrorIs(t, err, cause)

	exec, ok := e.Status(id)
	require.True(t, ok)
	assert.Equal(t, StatusFailed, exec.Status)
	assert.Equal(t, "transcribing", exec.Stage)
	assert.Equal(t, "boom", exec.Error)
}

func TestExecuteReportsRunningStage(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	e := newTestEngine(t, runnerFunc(func(_ context.Context, _ types.MeetingRequest, _ pipeline.RandSource, observe pipeline.Observer) (types.MeetingResult, error) {
		observe(pipeline.StateExtracting)
		close(entered)
		<-release
		return types.MeetingResult{}, nil
	}), Config{})

	done := make(chan string)
	go func() {
		id, _, _ := e.Execute(context.Background(), request)
		done <- id
	}()

	<-entered
	e.mu.Lock()
	var running Execution
	for _, exec := range e.executions {
		running = *exec
	}
	e.mu.Unlock()
	assert.Equal(t, StatusRunning, running.Status)
	assert.Equal(t, "extracting", running.Stage)

	close(release)
	id := <-done
	exec, _ := e.Status(id)
	assert.Equal(t, StatusCompleted, exec.Status)
}

func TestExecuteEnforcesDeadline(t *testing.T) {
	cfg := pipeline.DefaultConfig().WithoutLatency()
	cfg.Update.Delay = time.Minute
	e := newTestEngine(t, realPipeline(cfg), Config{RunTimeout: 20 * time.Millisecond})

	id, _, err := e.Execute(context.Background(), request)
	require.ErrorIs(t, err, pipeline.ErrTimeout)

	exec, _ := e.Status(id)
	assert.Equal(t, StatusFailed, exec.Status)
	assert.Equal(t, "updating", exec.Stage)
}

func TestCloseCancelsInFlightRuns(t *testing.T) {
	started := make(chan struct{})
	e := newTestEngine(t, runnerFunc(func(ctx context.Context, _ types.MeetingRequest, _ pipeline.RandSource, _ pipeline.Observer) (types.MeetingResult, error) {
		close(started)
		<-ctx.Done()
		return types.MeetingResult{}, ctx.Err()
	}), Config{})

	errCh := make(chan error, 1)
	go func() {
		_, _, err := e.Execute(context.Background(), request)
		errCh <- err
	}()

	<-started
	e.Close()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("run was not cancelled")
	}

	_, _, err := e.Execute(context.Background(), request)
	require.ErrorIs(t, err, ErrEngineClosed)
}

func TestRegistryEvictsOldestFinished(t *testing.T) {
	e := newTestEngine(t, realPipeline(pipeline.DefaultConfig().WithoutLatency()), Config{MaxTracked: 2})

	var ids []string
	for i := 0; i < 3; i++ {
		id, _, err := e.Execute(context.Background(), request)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	_, ok := e.Status(ids[0])
	assert.False(t, ok)
	for _, id := range ids[1:] {
		_, ok := e.Status(id)
		assert.True(t, ok)
	}
}

func TestConcurrentExecutionsAreIndependent(t *testing.T) {
	e := newTestEngine(t, realPipeline(pipeline.DefaultConfig().WithoutLatency()), Config{})

	const runs = 20
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = map[string]bool{}
	)
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, result, err := e.Execute(context.Background(), request)
			assert.NoError(t, err)
			assert.Len(t, result.Persona.Memory, len(result.ExtractedTasks)+1)

			mu.Lock()
			ids[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, ids, runs)
}

func TestSeededRandFactoryMakesRunsReproducible(t *testing.T) {
	e := newTestEngine(t, realPipeline(pipeline.DefaultConfig().WithoutLatency()), Config{},
		WithRandFactory(func() pipeline.RandSource { return pipeline.NewSeededSource(7) }))

	_, first, err := e.Execute(context.Background(), request)
	require.NoError(t, err)
	_, second, err := e.Execute(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, first.TranscribedText, second.TranscribedText)
	assert.Equal(t, first.Persona.Mode, second.Persona.Mode)
	assert.Equal(t, first.ProcessingSummary, second.ProcessingSummary)
}
