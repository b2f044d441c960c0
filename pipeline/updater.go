package pipeline

import (
	"context"
	"fmt"

	"clementus360/meeting-agent/types"

	"github.com/sirupsen/logrus"
)

// TaskUpdater simulates the persona making progress on its tasks. Every task
// is an independent Bernoulli trial whose odds depend on the persona mode.
type TaskUpdater struct {
	cfg    UpdateConfig
	logger logrus.FieldLogger
}

func NewTaskUpdater(cfg UpdateConfig, logger logrus.FieldLogger) *TaskUpdater {
	if logger == nil {
		logger = discardLogger()
	}
	return &TaskUpdater{cfg: cfg, logger: logger}
}

// Update returns a new slice with the same length, order and ids as tasks.
// The input slice is left untouched.
func (u *TaskUpdater) Update(ctx context.Context, tasks []types.Task, persona types.Persona, rng RandSource) ([]types.Task, error) {
	if err := simulateLatency(ctx, u.cfg.Delay); err != nil {
		return nil, err
	}

	p, err := u.probability(persona.Mode)
	if err != nil {
		return nil, err
	}

	updated := make([]types.Task, len(tasks))
	for i, task := range tasks {
		updated[i] = task
		if rng.Float64() >= p {
			continue
		}

		status := types.StatusCompleted
		if rng.Float64() < u.cfg.InProgressProbability {
			status = types.StatusInProgress
		}
		updated[i].Status = status
		updated[i].Description = fmt.Sprintf("%s (Updated by %s)", task.Description, persona.Name)

		u.logger.WithField("status", status).Debugf("Updated: %s", task.Title)
	}

	return updated, nil
}

func (u *TaskUpdater) probability(mode types.PersonaMode) (float64, error) {
	switch mode {
	case types.ModeLLM:
		return u.cfg.LLMModeProbability, nil
	case types.ModeMemory:
		return u.cfg.MemoryModeProbability, nil
	default:
		return 0, fmt.Errorf("unknown persona mode %q", mode)
	}
}
