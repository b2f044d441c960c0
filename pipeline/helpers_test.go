package pipeline

import "time"

// scriptedSource replays a fixed sequence of draws, wrapping around at the end.
type scriptedSource struct {
	values []float64
	next   int
}

func script(values ...float64) *scriptedSource {
	return &scriptedSource{values: values}
}

func (s *scriptedSource) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Wednesday.
var testNow = time.Date(2026, 10, 21, 9, 30, 0, 0, time.UTC)

func testConfig() Config {
	return DefaultConfig().WithoutLatency()
}
