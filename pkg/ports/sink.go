package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving the loaded sequence and presented planes for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSequenceJSON saves a description of the loaded sequence.
	SaveSequenceJSON(data []byte) error

	// SaveSourceFrame saves a decoded source frame.
	SaveSourceFrame(index int, img image.Image) error

	// SavePresentedFrame saves a composed destination plane.
	SavePresentedFrame(index int, img image.Image) error
}
