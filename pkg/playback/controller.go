// Package playback drives one loaded sequence through the resize cache,
// the compositor and the playback clock on every render request.
package playback

import (
	"errors"
	"fmt"
	"time"

	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/ports"
	"github.com/user/frameview/pkg/stages/clock"
	"github.com/user/frameview/pkg/stages/composite"
	"github.com/user/frameview/pkg/stages/resize"
)

// ErrSurfaceNotReady marks a render skipped because the presentation
// surface has no usable size or buffer. It is recorded, never returned.
var ErrSurfaceNotReady = errors.New("surface not ready")

// Options configures a Controller.
type Options struct {
	Scale  ports.ScaleOptions
	Policy clock.AdvancePolicy
}

// DefaultOptions returns nearest-neighbour stretch scaling and one-step
// advancing.
func DefaultOptions() Options {
	return Options{
		Scale:  ports.DefaultScaleOptions(),
		Policy: clock.AdvanceStep,
	}
}

// Stats summarizes controller activity.
type Stats struct {
	Renders  int // Renders that composited a frame
	Skipped  int // Renders skipped for an unusable surface
	Advances int // Frame index changes
	Resizes  int // Surface resize signals
	Cache    resize.Stats
}

// Controller owns the sequence, its resize cache and its clock. All
// methods must be called from the same goroutine.
type Controller struct {
	seq    pipeline.Sequence
	cache  *resize.Cache
	clock  *clock.Clock // nil for static sequences
	logger ports.Logger

	target   pipeline.Dimension
	lastSkip error
	closed   bool
	stats    Stats
}

// New creates a controller for seq. Static sequences get no clock.
func New(seq pipeline.Sequence, scaler ports.Scaler, opts Options, logger ports.Logger) *Controller {
	c := &Controller{
		seq:    seq,
		cache:  resize.New(seq, scaler, opts.Scale, logger),
		logger: logger.WithComponent("playback"),
	}
	if seq.IsAnimated() {
		c.clock = clock.New(seq.Durations(), opts.Policy)
	}
	return c
}

// Ready records the initial surface size and starts the clock at now.
func (c *Controller) Ready(target pipeline.Dimension, now time.Time) {
	c.target = target
	if c.clock != nil {
		c.clock.Start(now)
	}
	c.logger.Debug("Surface ready at %dx%d", target.Width, target.Height)
}

// Render composites the current frame, scaled to target, into dst and
// then gives the clock a chance to advance. It returns true when the
// host should schedule another render, which is always the case for
// animated sequences.
//
// A non-positive target or a nil dst skips the frame. A dst whose size
// differs from target violates the caller contract and panics.
func (c *Controller) Render(target pipeline.Dimension, now time.Time, dst *pipeline.DestinationPlane) bool {
	if c.closed {
		return false
	}
	if !target.Positive() || dst == nil {
		c.skip(target)
		return false
	}
	if dst.Size() != target {
		panic(fmt.Sprintf("playback: destination %v does not match target %v", dst.Size(), target))
	}

	c.target = target
	index := 0
	if c.clock != nil {
		index = c.clock.Index()
	}

	composite.Composite(c.cache.GetOrCreate(index, target), dst)
	c.stats.Renders++

	if c.clock == nil {
		return false
	}
	if c.clock.Tick(now) {
		c.stats.Advances++
		c.logger.Debug("Advanced to frame %d", c.clock.Index())
	}
	return true
}

func (c *Controller) skip(target pipeline.Dimension) {
	c.lastSkip = fmt.Errorf("%w: target %v", ErrSurfaceNotReady, target)
	c.stats.Skipped++
	c.logger.Debug("Skipping render: %s", c.lastSkip.Error())
}

// Resize drops every cached plane. The frame index and schedule are kept,
// so playback continues from the same frame at the new size.
func (c *Controller) Resize(target pipeline.Dimension) {
	if c.closed {
		return
	}
	c.target = target
	c.cache.Resize(target)
	c.stats.Resizes++
	c.logger.Debug("Surface resized to %dx%d", target.Width, target.Height)
}

// Close releases cached planes. Later renders do nothing.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.cache.Invalidate()
	c.logger.Debug("Controller closed")
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	return c.closed
}

// Sequence returns the sequence being played.
func (c *Controller) Sequence() pipeline.Sequence {
	return c.seq
}

// Target returns the last surface size seen.
func (c *Controller) Target() pipeline.Dimension {
	return c.target
}

// State returns the clock snapshot. Static sequences always report index 0.
func (c *Controller) State() pipeline.PlaybackState {
	if c.clock == nil {
		return pipeline.PlaybackState{}
	}
	return c.clock.State()
}

// LastSkip returns the reason for the most recent skipped render, or nil.
func (c *Controller) LastSkip() error {
	return c.lastSkip
}

// Stats returns activity counters including the cache's.
func (c *Controller) Stats() Stats {
	s := c.stats
	s.Cache = c.cache.Stats()
	return s
}
