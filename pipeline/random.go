package pipeline

import "math/rand/v2"

// RandSource yields uniform values in [0, 1). *rand.Rand satisfies it.
// A source is owned by a single run and is not shared across goroutines.
type RandSource interface {
	Float64() float64
}

// NewSeededSource returns a deterministic source for tests and replays.
func NewSeededSource(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource returns a source seeded from the runtime's entropy.
func NewRandomSource() RandSource {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
