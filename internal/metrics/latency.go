// Package metrics accumulates per-step latency statistics for the
// simulation loop.
package metrics

import "time"

// Snapshot is a copy of the accumulated latency statistics at one instant.
type Snapshot struct {
	Samples int64
	Last    time.Duration
	Average time.Duration
	Max     time.Duration
}

// StepsPerSecond derives the step rate equivalent of the average latency.
func (s Snapshot) StepsPerSecond() float64 {
	if s.Average <= 0 {
		return 0
	}
	return float64(time.Second) / float64(s.Average)
}

// Latency records step durations and maintains a true running mean: the sum
// of every sample ever recorded divided by the sample count, never windowed
// or decayed. The sum is a time.Duration (int64 nanoseconds), wide enough
// that it does not overflow within any realistic process lifetime.
//
// A Latency has exactly one owner and is not safe for concurrent use; the
// frame loop records and reads it from a single goroutine.
type Latency struct {
	last    time.Duration
	total   time.Duration
	max     time.Duration
	samples int64
}

// NewLatency returns an empty accumulator.
func NewLatency() *Latency {
	return &Latency{}
}

// Record adds one observed step duration.
func (l *Latency) Record(d time.Duration) {
	l.last = d
	l.total += d
	l.samples++
	if d > l.max {
		l.max = d
	}
}

// Instant returns the most recently recorded duration.
func (l *Latency) Instant() time.Duration { return l.last }

// Average returns the arithmetic mean of all recorded durations. The loop
// always records before displaying, so callers never read an empty
// accumulator; an empty one reports zero rather than dividing by zero.
func (l *Latency) Average() time.Duration {
	if l.samples == 0 {
		return 0
	}
	return l.total / time.Duration(l.samples)
}

// Max returns the worst duration seen so far.
func (l *Latency) Max() time.Duration { return l.max }

// Samples returns the number of recorded durations.
func (l *Latency) Samples() int64 { return l.samples }

// Snapshot copies the current statistics.
func (l *Latency) Snapshot() Snapshot {
	return Snapshot{
		Samples: l.samples,
		Last:    l.last,
		Average: l.Average(),
		Max:     l.max,
	}
}

// Reset clears the accumulator. The frame loop never resets; this exists
// for reuse across benchmark sweeps.
func (l *Latency) Reset() {
	*l = Latency{}
}
