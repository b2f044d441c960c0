package types

import "time"

// PersonaMode decides how eagerly the persona advances tasks.
type PersonaMode string

const (
	ModeLLM    PersonaMode = "llm"
	ModeMemory PersonaMode = "memory"
)

type MemoryType string

const (
	MemoryTask         MemoryType = "task"
	MemoryConversation MemoryType = "conversation"
	MemoryDecision     MemoryType = "decision"
)

type Memory struct {
	ID         string     `json:"id"`
	Type       MemoryType `json:"type"`
	Content    string     `json:"content"`
	Timestamp  time.Time  `json:"timestamp"`
	Importance int        `json:"importance"` // 1-10
}

type Persona struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Memory      []Memory    `json:"memory"`
	Mode        PersonaMode `json:"mode"`
}

type GetCharactersResponse struct {
	Characters []Persona `json:"characters"`
	Message    string    `json:"message"`
	Timestamp  string    `json:"timestamp"`
}
