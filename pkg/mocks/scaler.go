package mocks

import (
	"image"
	"sync"

	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/ports"
)

// Scaler is a mock implementation of ports.Scaler that records every call.
type Scaler struct {
	mu sync.Mutex

	ScaleFunc func(img image.Image, target pipeline.Dimension, opts ports.ScaleOptions) *image.RGBA

	Calls []ScaleCall
}

// ScaleCall records a call to Scale.
type ScaleCall struct {
	Source image.Image
	Target pipeline.Dimension
}

func (m *Scaler) Scale(img image.Image, target pipeline.Dimension, opts ports.ScaleOptions) *image.RGBA {
	m.mu.Lock()
	m.Calls = append(m.Calls, ScaleCall{Source: img, Target: target})
	m.mu.Unlock()

	if m.ScaleFunc != nil {
		return m.ScaleFunc(img, target, opts)
	}
	return image.NewRGBA(image.Rect(0, 0, target.Width, target.Height))
}

// CallCount returns the number of Scale calls.
func (m *Scaler) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

var _ ports.Scaler = (*Scaler)(nil)
