// Package nullsink provides no-op debug sink and presenter implementations.
package nullsink

import (
	"image"

	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveSequenceJSON does nothing.
func (s *Sink) SaveSequenceJSON(data []byte) error {
	return nil
}

// SaveSourceFrame does nothing.
func (s *Sink) SaveSourceFrame(index int, img image.Image) error {
	return nil
}

// SavePresentedFrame does nothing.
func (s *Sink) SavePresentedFrame(index int, img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)

// Presenter discards every plane. Used when playing without a display.
type Presenter struct {
	presented int
}

// NewPresenter creates a new discarding presenter.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Present counts the plane and drops it.
func (p *Presenter) Present(plane *pipeline.DestinationPlane) error {
	p.presented++
	return nil
}

// Presented returns the number of planes received.
func (p *Presenter) Presented() int {
	return p.presented
}

// Close does nothing.
func (p *Presenter) Close() error {
	return nil
}

// Ensure Presenter implements ports.Presenter
var _ ports.Presenter = (*Presenter)(nil)
