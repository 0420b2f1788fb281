package mocks

import (
	"image"
	"sync"

	"github.com/user/frameview/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	SequenceJSON    []byte
	SourceFrames    map[int]image.Image
	PresentedFrames map[int]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:         enabled,
		SourceFrames:    make(map[int]image.Image),
		PresentedFrames: make(map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveSequenceJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SequenceJSON = data
	return nil
}

func (m *DebugSink) SaveSourceFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFrames[index] = img
	return nil
}

func (m *DebugSink) SavePresentedFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PresentedFrames[index] = img
	return nil
}

// PresentedCount returns the number of presented frames saved.
func (m *DebugSink) PresentedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.PresentedFrames)
}

var _ ports.DebugSink = (*DebugSink)(nil)
