package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clementus360/meeting-agent/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PersonaSynthesizer builds the assistant persona that tracks a run's tasks.
type PersonaSynthesizer struct {
	cfg    PersonaConfig
	now    func() time.Time
	logger logrus.FieldLogger
}

func NewPersonaSynthesizer(cfg PersonaConfig, now func() time.Time, logger logrus.FieldLogger) *PersonaSynthesizer {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &PersonaSynthesizer{cfg: cfg, now: now, logger: logger}
}

// Synthesize seeds one task memory per task followed by a single conversation
// memory. The mode is a coin flip drawn from rng and ignores task content.
func (s *PersonaSynthesizer) Synthesize(ctx context.Context, tasks []types.Task, rng RandSource) (types.Persona, error) {
	if err := simulateLatency(ctx, s.cfg.Delay); err != nil {
		return types.Persona{}, err
	}

	id := uuid.NewString()
	now := s.now()

	kinds := make([]string, 0, len(tasks))
	memory := make([]types.Memory, 0, len(tasks)+1)
	for _, task := range tasks {
		kinds = append(kinds, firstWord(task.Description))
		memory = append(memory, types.Memory{
			ID:         uuid.NewString(),
			Type:       types.MemoryTask,
			Content:    fmt.Sprintf("Created task: %s - %s", task.Title, task.Description),
			Timestamp:  now,
			Importance: s.cfg.Importance.For(task.Priority),
		})
	}

	memory = append(memory, types.Memory{
		ID:         uuid.NewString(),
		Type:       types.MemoryConversation,
		Content:    fmt.Sprintf("Meeting processed with %d tasks identified", len(tasks)),
		Timestamp:  now,
		Importance: s.cfg.Importance.Summary,
	})

	mode := types.ModeMemory
	if rng.Float64() > 0.5 {
		mode = types.ModeLLM
	}

	persona := types.Persona{
		ID:          id,
		Name:        "Meeting Assistant " + id[:8],
		Description: fmt.Sprintf("AI assistant specialized in managing %s tasks from meeting discussions.", strings.Join(kinds, ", ")),
		Memory:      memory,
		Mode:        mode,
	}

	s.logger.WithFields(logrus.Fields{
		"mode":         persona.Mode,
		"memory_items": len(persona.Memory),
	}).Debugf("Created character: %s", persona.Name)

	return persona, nil
}

func firstWord(s string) string {
	word, _, _ := strings.Cut(s, " ")
	return word
}
