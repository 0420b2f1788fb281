package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/ports"
)

// Presenter is a mock implementation of ports.Presenter that keeps a copy
// of every presented plane.
type Presenter struct {
	mu sync.Mutex

	PresentFunc func(plane *pipeline.DestinationPlane) error

	Planes []pipeline.DestinationPlane
	Closed bool
}

func (m *Presenter) Present(plane *pipeline.DestinationPlane) error {
	m.mu.Lock()
	cp := *plane
	cp.Pix = append([]uint32(nil), plane.Pix...)
	m.Planes = append(m.Planes, cp)
	m.mu.Unlock()

	if m.PresentFunc != nil {
		return m.PresentFunc(plane)
	}
	return nil
}

func (m *Presenter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Count returns the number of presented planes.
func (m *Presenter) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Planes)
}

var _ ports.Presenter = (*Presenter)(nil)

// Clock is a manually advanced ports.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time

	// OnSleep runs after every Sleep with the advanced time.
	OnSleep func(now time.Time)
}

// NewClock creates a clock starting at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sleep advances the clock by d without blocking.
func (c *Clock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Advance(d)
	if c.OnSleep != nil {
		c.OnSleep(c.Now())
	}
	return nil
}

var _ ports.Clock = (*Clock)(nil)
