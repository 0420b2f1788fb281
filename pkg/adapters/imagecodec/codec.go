// Package imagecodec detects image container formats and decodes them into
// frames using the standard image decoders plus golang.org/x/image.
package imagecodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg" // register JPEG with image.Decode
	_ "image/png"  // register PNG with image.Decode
	"time"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP with image.Decode
	_ "golang.org/x/image/tiff" // register TIFF with image.Decode
	_ "golang.org/x/image/webp" // register WebP with image.Decode

	"github.com/user/frameview/pkg/ports"
)

// Format names returned by DetectFormat.
const (
	FormatGIF  = "gif"
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatWebP = "webp"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// gifDelayUnit is the GIF delay granularity (1/100 s).
const gifDelayUnit = 10 * time.Millisecond

var (
	// ErrUnknownFormat is returned when no registered decoder recognizes the data.
	ErrUnknownFormat = errors.New("imagecodec: unknown image format")
	// ErrNoFrames is returned for an animated container without frames.
	ErrNoFrames = errors.New("imagecodec: no frames")
	// ErrInvalidSize is returned when the logical screen has no area.
	ErrInvalidSize = errors.New("imagecodec: invalid image size")
)

// Codec implements ports.SequenceDecoder.
type Codec struct{}

// New creates a new Codec.
func New() *Codec {
	return &Codec{}
}

// DetectFormat returns the container format name from the header.
func (c *Codec) DetectFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return "", ErrUnknownFormat
		}
		return "", fmt.Errorf("decode config: %w", err)
	}
	return format, nil
}

// IsAnimatedFormat reports whether the container carries timed frames.
// Only GIF is treated as animated; classification is by container, so a
// single-frame GIF still plays as a one-frame animation.
func (c *Codec) IsAnimatedFormat(format string) bool {
	return format == FormatGIF
}

// DecodeStill decodes exactly one plane.
func (c *Codec) DecodeStill(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// DecodeAnimated decodes every GIF frame onto the full logical screen,
// honoring each frame's disposal method, so every returned frame is a
// complete picture.
func (c *Codec) DecodeAnimated(data []byte) ([]ports.DecodedFrame, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}

	width, height := g.Config.Width, g.Config.Height
	if width <= 0 || height <= 0 {
		b := g.Image[0].Bounds()
		width, height = b.Max.X, b.Max.Y
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	var prev *image.RGBA
	frames := make([]ports.DecodedFrame, 0, len(g.Image))

	for i, frame := range g.Image {
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			prev = cloneRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		frames = append(frames, ports.DecodedFrame{
			Image: cloneRGBA(canvas),
			Delay: frameDelay(g, i),
		})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			if prev != nil {
				canvas = prev
			}
		}
	}

	return frames, nil
}

func frameDelay(g *gif.GIF, i int) time.Duration {
	if i >= len(g.Delay) {
		return 0
	}
	return time.Duration(g.Delay[i]) * gifDelayUnit
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	cp := image.NewRGBA(img.Bounds())
	copy(cp.Pix, img.Pix)
	return cp
}

// Ensure Codec implements ports.SequenceDecoder
var _ ports.SequenceDecoder = (*Codec)(nil)
