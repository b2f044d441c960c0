package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clementus360/meeting-agent/types"

	"github.com/sirupsen/logrus"
)

type Transcriber interface {
	Transcribe(ctx context.Context, audio string, rng RandSource) (types.TranscriptionResult, error)
}

type TaskExtractor interface {
	Extract(ctx context.Context, text string) ([]types.Task, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, tasks []types.Task, rng RandSource) (types.Persona, error)
}

type Updater interface {
	Update(ctx context.Context, tasks []types.Task, persona types.Persona, rng RandSource) ([]types.Task, error)
}

// Deps wires the stage implementations into a Pipeline.
type Deps struct {
	Transcriber Transcriber
	Extractor   TaskExtractor
	Synthesizer Synthesizer
	Updater     Updater
	Logger      logrus.FieldLogger
}

// Pipeline runs transcription, extraction, persona synthesis and task update
// for one meeting at a time. It holds no per-run state and is safe for
// concurrent use as long as every run brings its own RandSource.
type Pipeline struct {
	transcriber Transcriber
	extractor   TaskExtractor
	synthesizer Synthesizer
	updater     Updater
	logger      logrus.FieldLogger
}

func NewPipeline(deps Deps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = discardLogger()
	}
	return &Pipeline{
		transcriber: deps.Transcriber,
		extractor:   deps.Extractor,
		synthesizer: deps.Synthesizer,
		updater:     deps.Updater,
		logger:      logger,
	}
}

// New builds a Pipeline from the default stage implementations.
func New(cfg Config, now func() time.Time, logger logrus.FieldLogger) *Pipeline {
	if logger == nil {
		logger = discardLogger()
	}
	return NewPipeline(Deps{
		Transcriber: NewMockTranscriber(cfg.Transcription, logger.WithField("stage", StateTranscribing.String())),
		Extractor:   NewKeywordExtractor(cfg.Extraction, now, logger.WithField("stage", StateExtracting.String())),
		Synthesizer: NewPersonaSynthesizer(cfg.Persona, now, logger.WithField("stage", StateSynthesizing.String())),
		Updater:     NewTaskUpdater(cfg.Update, logger.WithField("stage", StateUpdating.String())),
		Logger:      logger,
	})
}

// Run executes every stage in order. Any stage error aborts the run and no
// partial result is returned. rng may be nil, observe may be nil.
func (p *Pipeline) Run(ctx context.Context, req types.MeetingRequest, rng RandSource, observe Observer) (types.MeetingResult, error) {
	if err := ValidateRequest(req); err != nil {
		return types.MeetingResult{}, err
	}
	if rng == nil {
		rng = NewRandomSource()
	}
	if observe == nil {
		observe = func(RunState) {}
	}

	log := p.logger.WithFields(logrus.Fields{
		"meeting_id":     req.MeetingID,
		"participant_id": req.ParticipantID,
	})
	fail := func(stage RunState, err error) (types.MeetingResult, error) {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
			err = fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		observe(StateFailed)
		log.WithError(err).WithField("stage", stage.String()).Warn("Pipeline run aborted")
		return types.MeetingResult{}, &StageError{Stage: stage, Err: err}
	}

	observe(StateTranscribing)
	log.Info("Step 1: converting speech to text")
	transcription, err := p.transcriber.Transcribe(ctx, req.AudioData, rng)
	if err != nil {
		return fail(StateTranscribing, err)
	}

	observe(StateExtracting)
	log.Info("Step 2: extracting tasks from text")
	extracted, err := p.extractor.Extract(ctx, transcription.Text)
	if err != nil {
		return fail(StateExtracting, err)
	}

	observe(StateSynthesizing)
	log.Info("Step 3: creating AI character")
	persona, err := p.synthesizer.Synthesize(ctx, extracted, rng)
	if err != nil {
		return fail(StateSynthesizing, err)
	}

	observe(StateUpdating)
	log.Info("Step 4: updating tasks")
	updated, err := p.updater.Update(ctx, extracted, persona, rng)
	if err != nil {
		return fail(StateUpdating, err)
	}
	if len(updated) != len(extracted) {
		return fail(StateUpdating, fmt.Errorf("updater returned %d tasks for %d extracted", len(updated), len(extracted)))
	}

	result := types.MeetingResult{
		MeetingID:       req.MeetingID,
		ParticipantID:   req.ParticipantID,
		TranscribedText: transcription.Text,
		ExtractedTasks:  extracted,
		Persona:         persona,
		UpdatedTasks:    updated,
		ProcessingSummary: types.ProcessingSummary{
			SpeechToTextConfidence: transcription.Confidence,
			TasksExtracted:         len(extracted),
			CharacterCreated:       true,
			TasksUpdated:           len(updated),
			TasksChanged:           countChanged(extracted, updated),
		},
	}

	observe(StateDone)
	log.WithFields(logrus.Fields{
		"tasks_extracted": result.ProcessingSummary.TasksExtracted,
		"tasks_changed":   result.ProcessingSummary.TasksChanged,
		"persona_mode":    persona.Mode,
	}).Info("Meeting processed")

	return result, nil
}

func countChanged(before, after []types.Task) int {
	changed := 0
	for i := range after {
		if after[i].Status != before[i].Status || after[i].Description != before[i].Description {
			changed++
		}
	}
	return changed
}
