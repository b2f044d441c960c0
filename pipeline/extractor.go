package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"clementus360/meeting-agent/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const unassigned = "Unassigned"

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// SplitSentences cuts text on runs of sentence-terminal punctuation and
// returns the trimmed, non-empty sentences in order.
func SplitSentences(text string) []string {
	var sentences []string
	for _, part := range sentenceBoundary.Split(text, -1) {
		if s := strings.TrimSpace(part); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// KeywordExtractor turns every sentence mentioning a task keyword into a Task.
// Apart from ids and the clock it is deterministic.
type KeywordExtractor struct {
	cfg          ExtractionConfig
	taskKeywords []string
	highWords    []string
	lowWords     []string
	now          func() time.Time
	logger       logrus.FieldLogger
}

func NewKeywordExtractor(cfg ExtractionConfig, now func() time.Time, logger logrus.FieldLogger) *KeywordExtractor {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &KeywordExtractor{
		cfg:          cfg,
		taskKeywords: lowerAll(cfg.TaskKeywords),
		highWords:    lowerAll(cfg.HighPriorityWords),
		lowWords:     lowerAll(cfg.LowPriorityWords),
		now:          now,
		logger:       logger,
	}
}

func (e *KeywordExtractor) Extract(ctx context.Context, text string) ([]types.Task, error) {
	if err := simulateLatency(ctx, e.cfg.Delay); err != nil {
		return nil, err
	}

	now := e.now()
	tasks := []types.Task{}

	for i, sentence := range SplitSentences(text) {
		if !containsAny(strings.ToLower(sentence), e.taskKeywords) {
			continue
		}

		task := types.Task{
			ID:          uuid.NewString(),
			Title:       fmt.Sprintf("Task %d", i+1),
			Description: sentence,
			Assignee:    e.assignee(sentence),
			Priority:    e.priority(sentence),
			Status:      types.StatusPending,
			CreatedAt:   now,
			DueDate:     dueDate(sentence, now),
		}
		tasks = append(tasks, task)

		e.logger.WithFields(logrus.Fields{
			"title":    task.Title,
			"assignee": task.Assignee,
			"priority": task.Priority,
		}).Debugf("Extracted: %s", task.Description)
	}

	return tasks, nil
}

// assignee returns the first configured name present in the sentence. Names
// are compared case-sensitively and list order breaks ties.
func (e *KeywordExtractor) assignee(sentence string) string {
	for _, name := range e.cfg.Assignees {
		if name != "" && strings.Contains(sentence, name) {
			return name
		}
	}
	return unassigned
}

// priority checks high-priority words before low-priority ones.
func (e *KeywordExtractor) priority(sentence string) types.Priority {
	lower := strings.ToLower(sentence)
	switch {
	case containsAny(lower, e.highWords):
		return types.PriorityHigh
	case containsAny(lower, e.lowWords):
		return types.PriorityLow
	default:
		return types.PriorityMedium
	}
}

// dueDate resolves "friday" to the coming Friday (today when today is Friday)
// and "this week" to the coming Sunday. Friday wins when both occur.
func dueDate(sentence string, now time.Time) *time.Time {
	lower := strings.ToLower(sentence)

	var days int
	switch {
	case strings.Contains(lower, "friday"):
		days = (int(time.Friday) - int(now.Weekday()) + 7) % 7
	case strings.Contains(lower, "this week"):
		days = 7 - int(now.Weekday())
	default:
		return nil
	}

	due := now.AddDate(0, 0, days)
	return &due
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
