// Package service contains the pure domain logic of the analytics engine:
// sub-score calculation, score combination and classification, and the
// recurrence calculator for report schedules.
package service

import "time"

// Clock supplies the current instant. It is injected into every computation
// that depends on time so tests can supply fixed instants deterministically;
// scoring and scheduling logic never reads the wall clock directly.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystemClock returns a Clock backed by the wall clock.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock is a Clock pinned to a single instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}
