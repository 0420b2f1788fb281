// Package summarizer provides summary generation for playback sessions.
package summarizer

import (
	"time"

	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/viewer"
)

// Summary contains all data collected during a playback session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Loaded file
	Source SourceInfo

	// Session settings
	Settings Settings

	// Playback results
	Playback PlaybackInfo
}

// SourceInfo describes the loaded sequence.
type SourceInfo struct {
	Path         string
	Format       string
	Kind         string
	Width        int
	Height       int
	FrameCount   int
	LoopDuration time.Duration
	FileSize     int64
}

// Settings contains the session configuration.
type Settings struct {
	Width       int
	Height      int
	PixelFormat string
	Filter      string
	Fit         string
	Policy      string
	FPS         float64
}

// PlaybackInfo contains the host loop and controller counters.
type PlaybackInfo struct {
	StopReason    string
	WallTime      time.Duration
	Presented     int
	Skipped       int
	Advances      int
	Resizes       int
	Reloads       int
	CacheHits     int
	CacheMisses   int
	Invalidations int
	FinalWidth    int
	FinalHeight   int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSequence sets source information from a loaded sequence.
func (b *Builder) WithSequence(path string, fileSize int64, seq pipeline.Sequence) *Builder {
	b.summary.Source = SourceInfo{
		Path:         path,
		Format:       seq.Format,
		Kind:         seq.Kind.String(),
		Width:        seq.Size.Width,
		Height:       seq.Size.Height,
		FrameCount:   seq.Len(),
		LoopDuration: seq.TotalDuration(),
		FileSize:     fileSize,
	}
	return b
}

// WithSettings sets session settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithResult sets playback results from a finished host run.
func (b *Builder) WithResult(result viewer.Result) *Builder {
	b.summary.Playback = PlaybackInfo{
		StopReason:    string(result.Reason),
		WallTime:      result.Elapsed,
		Presented:     result.Presented,
		Skipped:       result.Stats.Skipped,
		Advances:      result.Stats.Advances,
		Resizes:       result.Stats.Resizes,
		Reloads:       result.Reloads,
		CacheHits:     result.Stats.Cache.Hits,
		CacheMisses:   result.Stats.Cache.Misses,
		Invalidations: result.Stats.Cache.Invalidations,
		FinalWidth:    result.FinalSize.Width,
		FinalHeight:   result.FinalSize.Height,
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

// HitRate returns the fraction of cache lookups answered without resizing.
func (p PlaybackInfo) HitRate() float64 {
	total := p.CacheHits + p.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(p.CacheHits) / float64(total)
}
