// Package resize implements the resize cache: a lazily filled table of RGB
// planes, one per source frame, all scaled to the same target size.
package resize

import (
	"fmt"

	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/ports"
)

// Stats counts cache activity since creation.
type Stats struct {
	Hits          int // Lookups answered from the cache
	Misses        int // Lookups that resized a source frame
	Invalidations int // Whole-cache resets after the first sizing
}

// Cache memoizes resized planes for one target size. It is not safe for
// concurrent use; the playback controller is its only owner.
type Cache struct {
	seq     pipeline.Sequence
	scaler  ports.Scaler
	opts    ports.ScaleOptions
	logger  ports.Logger
	size    pipeline.Dimension
	entries []*pipeline.RGBPlane
	stats   Stats
}

// New creates an empty cache with one slot per plane of seq.
func New(seq pipeline.Sequence, scaler ports.Scaler, opts ports.ScaleOptions, logger ports.Logger) *Cache {
	return &Cache{
		seq:     seq,
		scaler:  scaler,
		opts:    opts,
		logger:  logger.WithComponent("resize"),
		entries: make([]*pipeline.RGBPlane, seq.Len()),
	}
}

// GetOrCreate returns the plane for index scaled to target, resizing the
// source frame only if this (index, size) pair has not been seen since the
// last invalidation. A target different from the recorded size discards
// every entry first.
func (c *Cache) GetOrCreate(index int, target pipeline.Dimension) *pipeline.RGBPlane {
	if index < 0 || index >= len(c.entries) {
		panic(fmt.Sprintf("resize: frame index %d out of range [0, %d)", index, len(c.entries)))
	}

	if target != c.size {
		c.reset(target)
	}

	if plane := c.entries[index]; plane != nil {
		c.stats.Hits++
		return plane
	}

	scaled := c.scaler.Scale(c.seq.Plane(index), target, c.opts)
	plane := pipeline.RGBPlaneFromRGBA(scaled)
	c.entries[index] = plane
	c.stats.Misses++
	c.logger.Debug("Resized frame %d to %dx%d", index, target.Width, target.Height)
	return plane
}

// Invalidate drops every entry while keeping the recorded size.
func (c *Cache) Invalidate() {
	c.reset(c.size)
}

// Resize drops every entry and records target as the new size.
func (c *Cache) Resize(target pipeline.Dimension) {
	c.reset(target)
}

// Size returns the target size the current entries were computed for.
func (c *Cache) Size() pipeline.Dimension {
	return c.size
}

// Len returns the number of slots, which always equals the sequence length.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Populated returns the number of filled slots.
func (c *Cache) Populated() int {
	n := 0
	for _, e := range c.entries {
		if e != nil {
			n++
		}
	}
	return n
}

// Stats returns the activity counters.
func (c *Cache) Stats() Stats {
	return c.stats
}

// reset swaps in a fresh slot table so planes of two sizes never coexist.
func (c *Cache) reset(size pipeline.Dimension) {
	if n := c.Populated(); n > 0 {
		c.logger.Debug("Target size changed to %dx%d, dropping %d entries", size.Width, size.Height, n)
	}
	if c.size.Positive() {
		c.stats.Invalidations++
	}
	c.entries = make([]*pipeline.RGBPlane, len(c.entries))
	c.size = size
}
