package mocks

import (
	"errors"
	"image"

	"github.com/user/frameview/pkg/ports"
)

// SequenceDecoder is a mock implementation of ports.SequenceDecoder.
// By default it reports the format stored in Format and returns Frames or Still.
type SequenceDecoder struct {
	Format string
	Frames []ports.DecodedFrame
	Still  image.Image

	DetectFormatFunc   func(data []byte) (string, error)
	DecodeAnimatedFunc func(data []byte) ([]ports.DecodedFrame, error)
	DecodeStillFunc    func(data []byte) (image.Image, error)
}

func (m *SequenceDecoder) DetectFormat(data []byte) (string, error) {
	if m.DetectFormatFunc != nil {
		return m.DetectFormatFunc(data)
	}
	if m.Format == "" {
		return "", errors.New("mock: unknown format")
	}
	return m.Format, nil
}

func (m *SequenceDecoder) IsAnimatedFormat(format string) bool {
	return format == "gif"
}

func (m *SequenceDecoder) DecodeAnimated(data []byte) ([]ports.DecodedFrame, error) {
	if m.DecodeAnimatedFunc != nil {
		return m.DecodeAnimatedFunc(data)
	}
	return m.Frames, nil
}

func (m *SequenceDecoder) DecodeStill(data []byte) (image.Image, error) {
	if m.DecodeStillFunc != nil {
		return m.DecodeStillFunc(data)
	}
	if m.Still == nil {
		return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
	}
	return m.Still, nil
}

var _ ports.SequenceDecoder = (*SequenceDecoder)(nil)
