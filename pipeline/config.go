package pipeline

import (
	"errors"
	"fmt"
	"time"

	"clementus360/meeting-agent/types"
)

// Config tunes the four stages. Zero delays disable simulated latency.
type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	Extraction    ExtractionConfig    `yaml:"extraction"`
	Persona       PersonaConfig       `yaml:"persona"`
	Update        UpdateConfig        `yaml:"update"`
}

type TranscriptionConfig struct {
	Delay         time.Duration `yaml:"delay"`
	ConfidenceMin float64       `yaml:"confidence_min"`
	ConfidenceMax float64       `yaml:"confidence_max"`
	Corpus        []string      `yaml:"corpus"`
}

type ExtractionConfig struct {
	Delay             time.Duration `yaml:"delay"`
	TaskKeywords      []string      `yaml:"task_keywords"`
	HighPriorityWords []string      `yaml:"high_priority_words"`
	LowPriorityWords  []string      `yaml:"low_priority_words"`
	// Assignees are matched case-sensitively, in list order.
	Assignees []string `yaml:"assignees"`
}

type PersonaConfig struct {
	Delay      time.Duration   `yaml:"delay"`
	Importance ImportanceScale `yaml:"importance"`
}

// ImportanceScale maps task priority to memory importance (1-10).
type ImportanceScale struct {
	High    int `yaml:"high"`
	Medium  int `yaml:"medium"`
	Low     int `yaml:"low"`
	Summary int `yaml:"summary"`
}

func (s ImportanceScale) For(p types.Priority) int {
	switch p {
	case types.PriorityHigh:
		return s.High
	case types.PriorityMedium:
		return s.Medium
	default:
		return s.Low
	}
}

type UpdateConfig struct {
	Delay                 time.Duration `yaml:"delay"`
	LLMModeProbability    float64       `yaml:"llm_mode_probability"`
	MemoryModeProbability float64       `yaml:"memory_mode_probability"`
	// InProgressProbability is the share of touched tasks moved to in-progress;
	// the rest are completed.
	InProgressProbability float64 `yaml:"in_progress_probability"`
}

// DefaultConfig reproduces the behaviour of the mocked services.
func DefaultConfig() Config {
	return Config{
		Transcription: TranscriptionConfig{
			Delay:         time.Second,
			ConfidenceMin: 0.85,
			ConfidenceMax: 0.95,
			Corpus: []string{
				"We need to finish the quarterly report by Friday and schedule a follow-up meeting with the marketing team.",
				"John will handle the budget review, Sarah should contact the client about the project timeline, and I'll prepare the presentation slides.",
				"The main action items are: update the website content, review the new feature requirements, and coordinate with the design team.",
				"Let's assign the following tasks: Mike to research competitors, Lisa to draft the proposal, and Tom to set up the demo environment.",
				"The urgent items for this week are: complete the security audit, finalize the Q4 budget, and schedule the team retrospective.",
			},
		},
		Extraction: ExtractionConfig{
			Delay: 1500 * time.Millisecond,
			TaskKeywords: []string{
				"finish", "schedule", "handle", "contact", "prepare", "update", "review",
				"coordinate", "assign", "research", "draft", "set up", "complete", "finalize",
			},
			HighPriorityWords: []string{"urgent", "asap", "critical", "important", "deadline", "finish by"},
			LowPriorityWords:  []string{"when possible", "low priority", "not urgent", "sometime"},
			Assignees:         []string{"John", "Sarah", "Mike", "Lisa", "Tom", "Marketing team", "Design team"},
		},
		Persona: PersonaConfig{
			Delay:      2 * time.Second,
			Importance: ImportanceScale{High: 9, Medium: 6, Low: 3, Summary: 7},
		},
		Update: UpdateConfig{
			Delay:                 time.Second,
			LLMModeProbability:    0.3,
			MemoryModeProbability: 0.5,
			InProgressProbability: 0.4,
		},
	}
}

// WithoutLatency returns a copy of the config with every simulated delay removed.
func (c Config) WithoutLatency() Config {
	c.Transcription.Delay = 0
	c.Extraction.Delay = 0
	c.Persona.Delay = 0
	c.Update.Delay = 0
	return c
}

func (c Config) Validate() error {
	var errs []error

	t := c.Transcription
	if len(t.Corpus) == 0 {
		errs = append(errs, errors.New("transcription corpus is empty"))
	}
	if !isProbability(t.ConfidenceMin) || !isProbability(t.ConfidenceMax) || t.ConfidenceMin > t.ConfidenceMax {
		errs = append(errs, fmt.Errorf("confidence band [%v, %v] must lie within [0, 1] and be ordered", t.ConfidenceMin, t.ConfidenceMax))
	}

	if len(c.Extraction.TaskKeywords) == 0 {
		errs = append(errs, errors.New("task keyword list is empty"))
	}

	imp := c.Persona.Importance
	for name, v := range map[string]int{"high": imp.High, "medium": imp.Medium, "low": imp.Low, "summary": imp.Summary} {
		if v < 1 || v > 10 {
			errs = append(errs, fmt.Errorf("%s importance %d outside 1-10", name, v))
		}
	}

	u := c.Update
	for name, p := range map[string]float64{
		"llm_mode_probability":    u.LLMModeProbability,
		"memory_mode_probability": u.MemoryModeProbability,
		"in_progress_probability": u.InProgressProbability,
	} {
		if !isProbability(p) {
			errs = append(errs, fmt.Errorf("%s %v outside [0, 1]", name, p))
		}
	}

	for name, d := range map[string]time.Duration{
		"transcription": t.Delay,
		"extraction":    c.Extraction.Delay,
		"persona":       c.Persona.Delay,
		"update":        u.Delay,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s delay %s is negative", name, d))
		}
	}

	return errors.Join(errs...)
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
