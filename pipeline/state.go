package pipeline

// RunState is the position of a run in the stage sequence. Each transition
// happens once; there are no retries or branches.
type RunState int

const (
	StateTranscribing RunState = iota
	StateExtracting
	StateSynthesizing
	StateUpdating
	StateDone
	StateFailed
)

func (s RunState) String() string {
	switch s {
	case StateTranscribing:
		return "transcribing"
	case StateExtracting:
		return "extracting"
	case StateSynthesizing:
		return "synthesizing"
	case StateUpdating:
		return "updating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the run has finished.
func (s RunState) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// Observer is notified of every state the run enters.
type Observer func(RunState)
