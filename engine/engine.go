package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"clementus360/meeting-agent/pipeline"
	"clementus360/meeting-agent/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrEngineClosed = errors.New("execution engine is closed")
	ErrMissingKey   = errors.New("execution engine requires an api key")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Execution is the registry record of a single run.
type Execution struct {
	ID         string
	MeetingID  string
	Status     Status
	Stage      string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

func (e Execution) finished() bool {
	return e.Status == StatusCompleted || e.Status == StatusFailed
}

// Runner is the pipeline entry point the engine drives.
type Runner interface {
	Run(ctx context.Context, req types.MeetingRequest, rng pipeline.RandSource, observe pipeline.Observer) (types.MeetingResult, error)
}

type Config struct {
	APIKey     string
	RunTimeout time.Duration
	// MaxTracked bounds the registry; the oldest finished executions are evicted first.
	MaxTracked int
}

type Option func(*Engine)

// WithRandFactory replaces the per-run random source, e.g. with a seeded one.
func WithRandFactory(f func() pipeline.RandSource) Option {
	return func(e *Engine) { e.newRand = f }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine runs many pipelines concurrently and hands each result back exactly
// once, to the caller of Execute.
type Engine struct {
	runner  Runner
	cfg     Config
	logger  logrus.FieldLogger
	newRand func() pipeline.RandSource
	now     func() time.Time

	mu         sync.Mutex
	closed     bool
	executions map[string]*Execution
	order      []string
	cancels    map[string]context.CancelFunc
}

func New(runner Runner, cfg Config, logger logrus.FieldLogger, opts ...Option) (*Engine, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingKey
	}
	if cfg.MaxTracked <= 0 {
		cfg.MaxTracked = 1000
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	e := &Engine{
		runner:     runner,
		cfg:        cfg,
		logger:     logger,
		newRand:    pipeline.NewRandomSource,
		now:        time.Now,
		executions: map[string]*Execution{},
		cancels:    map[string]context.CancelFunc{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Execute runs one meeting through the pipeline under the configured deadline.
// The execution id is returned even when the run fails so callers can report it.
func (e *Engine) Execute(ctx context.Context, req types.MeetingRequest) (string, types.MeetingResult, error) {
	id := uuid.NewString()

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if e.cfg.RunTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, e.cfg.RunTimeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	if err := e.register(id, req.MeetingID, cancel); err != nil {
		return id, types.MeetingResult{}, err
	}

	log := e.logger.WithFields(logrus.Fields{
		"execution_id": id,
		"meeting_id":   req.MeetingID,
	})
	log.Debug("Execution started")

	result, err := e.runner.Run(runCtx, req, e.newRand(), func(s pipeline.RunState) {
		e.observe(id, s)
	})
	e.finish(id, err)

	if err != nil {
		log.WithError(err).Warn("Execution failed")
		return id, types.MeetingResult{}, err
	}
	log.Debug("Execution completed")
	return id, result, nil
}

// Status returns a copy of the registry record for id.
func (e *Engine) Status(id string) (Execution, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	exec, ok := e.executions[id]
	if !ok {
		return Execution{}, false
	}
	return *exec, true
}

// Close cancels every in-flight run and rejects new ones.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	for id, cancel := range e.cancels {
		cancel()
		delete(e.cancels, id)
	}
	e.logger.Info("Execution engine closed")
}

func (e *Engine) register(id, meetingID string, cancel context.CancelFunc) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}

	e.executions[id] = &Execution{
		ID:        id,
		MeetingID: meetingID,
		Status:    StatusPending,
		StartedAt: e.now(),
	}
	e.order = append(e.order, id)
	e.cancels[id] = cancel
	e.evictLocked()
	return nil
}

func (e *Engine) observe(id string, s pipeline.RunState) {
	e.mu.Lock()
	defer e.mu.Unlock()

	exec, ok := e.executions[id]
	if !ok || s.IsTerminal() {
		return
	}
	exec.Status = StatusRunning
	exec.Stage = s.String()
}

func (e *Engine) finish(id string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.cancels, id)
	exec, ok := e.executions[id]
	if !ok {
		return
	}
	exec.FinishedAt = e.now()
	if err != nil {
		exec.Status = StatusFailed
		exec.Error = err.Error()
		return
	}
	exec.Status = StatusCompleted
	exec.Stage = pipeline.StateDone.String()
}

// evictLocked drops the oldest finished executions while the registry is over
// capacity. Running executions are never evicted.
func (e *Engine) evictLocked() {
	for len(e.order) > e.cfg.MaxTracked {
		victim := -1
		for i, id := range e.order {
			if e.executions[id].finished() {
				victim = i
				break
			}
		}
		if victim < 0 {
			return
		}
		delete(e.executions, e.order[victim])
		e.order = append(e.order[:victim], e.order[victim+1:]...)
	}
}
