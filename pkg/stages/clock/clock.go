// Package clock implements the playback clock: the current frame index and
// the time-gated rule that moves it forward.
package clock

import (
	"fmt"
	"time"

	"github.com/user/frameview/pkg/pipeline"
)

// AdvancePolicy selects how a tick consumes elapsed time.
type AdvancePolicy int

const (
	// AdvanceStep moves at most one frame per tick, whatever the elapsed time.
	AdvanceStep AdvancePolicy = iota
	// AdvanceCatchUp skips every frame whose duration has fully elapsed,
	// bounded by one loop, and keeps the authored schedule.
	AdvanceCatchUp
)

// String returns the string representation of the policy.
func (p AdvancePolicy) String() string {
	switch p {
	case AdvanceStep:
		return "step"
	case AdvanceCatchUp:
		return "catch-up"
	default:
		return "unknown"
	}
}

// Clock tracks which frame is on screen and when it was shown.
// It is not safe for concurrent use.
type Clock struct {
	durations   []time.Duration
	policy      AdvancePolicy
	index       int
	lastAdvance time.Time
	started     bool
}

// New creates a clock over the given per-frame durations. It panics if
// durations is empty.
func New(durations []time.Duration, policy AdvancePolicy) *Clock {
	if len(durations) == 0 {
		panic("clock: at least one frame duration required")
	}
	return &Clock{
		durations: append([]time.Duration(nil), durations...),
		policy:    policy,
	}
}

// Start sets the reference time for the first frame. Calling it again
// rewinds the schedule but keeps the current index.
func (c *Clock) Start(now time.Time) {
	c.lastAdvance = now
	c.started = true
}

// Started reports whether the clock has a reference time.
func (c *Clock) Started() bool {
	return c.started
}

// Tick advances the index if the current frame's duration has elapsed
// since the last advance, and reports whether it did. A tick on a clock
// that was never started starts it and does not advance.
func (c *Clock) Tick(now time.Time) bool {
	if !c.started {
		c.Start(now)
		return false
	}

	if now.Sub(c.lastAdvance) < c.durations[c.index] {
		return false
	}

	if c.policy == AdvanceCatchUp {
		c.catchUp(now)
		return true
	}

	c.lastAdvance = now
	c.index = (c.index + 1) % len(c.durations)
	return true
}

// catchUp walks the schedule forward while whole frame durations fit.
// The current frame's duration is known to have elapsed. Zero-duration
// frames after the first step end the walk so they still get one tick.
func (c *Clock) catchUp(now time.Time) {
	n := len(c.durations)
	for steps := 0; steps < n; steps++ {
		d := c.durations[c.index]
		if steps > 0 && (d == 0 || now.Sub(c.lastAdvance) < d) {
			return
		}
		c.lastAdvance = c.lastAdvance.Add(d)
		c.index = (c.index + 1) % n
	}
	// More than a full loop behind: resynchronize on now.
	if now.Sub(c.lastAdvance) >= c.durations[c.index] {
		c.lastAdvance = now
	}
}

// Index returns the current frame index, always in [0, Len()).
func (c *Clock) Index() int {
	return c.index
}

// Len returns the number of frames the clock cycles through.
func (c *Clock) Len() int {
	return len(c.durations)
}

// State returns a snapshot of the clock.
func (c *Clock) State() pipeline.PlaybackState {
	return pipeline.PlaybackState{Index: c.index, LastAdvance: c.lastAdvance}
}

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (AdvancePolicy, error) {
	switch s {
	case "", "step":
		return AdvanceStep, nil
	case "catch-up", "catchup":
		return AdvanceCatchUp, nil
	default:
		return AdvanceStep, fmt.Errorf("unknown advance policy: %q", s)
	}
}
