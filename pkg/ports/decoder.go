package ports

import (
	"image"
	"time"
)

// DecodedFrame is one fully composited frame of an animated container.
type DecodedFrame struct {
	Image *image.RGBA
	Delay time.Duration // Authored display duration
}

// SequenceDecoder abstracts container detection and pixel decoding.
type SequenceDecoder interface {
	// DetectFormat returns the container format name (gif, png, jpeg, webp, bmp, tiff).
	DetectFormat(data []byte) (string, error)

	// IsAnimatedFormat reports whether the container format carries timed frames.
	IsAnimatedFormat(format string) bool

	// DecodeAnimated decodes every frame of an animated container.
	DecodeAnimated(data []byte) ([]DecodedFrame, error)

	// DecodeStill decodes exactly one plane.
	DecodeStill(data []byte) (image.Image, error)
}
