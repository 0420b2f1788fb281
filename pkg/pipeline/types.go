package pipeline

import (
	"fmt"
	"image"
	"time"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height.
type Dimension struct {
	Width  int
	Height int
}

// Positive reports whether both dimensions are greater than zero.
func (d Dimension) Positive() bool {
	return d.Width > 0 && d.Height > 0
}

// String returns the dimension as "WxH".
func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// DimensionOf returns the size of an image's bounds.
func DimensionOf(img image.Image) Dimension {
	b := img.Bounds()
	return Dimension{Width: b.Dx(), Height: b.Dy()}
}

// =============================================================================
// Frame Store Types
// =============================================================================

// LoadInput contains parameters for loading a sequence from disk.
type LoadInput struct {
	Path string

	// MinFrameDelay raises shorter authored delays to this value (0 = keep).
	MinFrameDelay time.Duration

	// DefaultFrameDelay replaces zero authored delays (0 = keep zero).
	DefaultFrameDelay time.Duration
}

// SourceFrame is one decoded frame of an animated sequence.
type SourceFrame struct {
	Image    *image.RGBA
	Duration time.Duration
}

// SequenceKind tags the variant held by a Sequence.
type SequenceKind int

const (
	// KindStatic holds a single decoded plane with no timing.
	KindStatic SequenceKind = iota
	// KindAnimated holds an ordered list of timed frames.
	KindAnimated
)

// String returns the string representation of the kind.
func (k SequenceKind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindAnimated:
		return "animated"
	default:
		return "unknown"
	}
}

// Sequence is the decoded source data for one loaded file.
// It is immutable once returned by the frame store.
type Sequence struct {
	Kind   SequenceKind
	Format string    // Container format name (gif, png, jpeg, ...)
	Size   Dimension // Source resolution

	Still  image.Image   // Set when Kind == KindStatic
	Frames []SourceFrame // Set when Kind == KindAnimated, len >= 1
}

// NewStaticSequence wraps a single decoded plane.
func NewStaticSequence(format string, img image.Image) Sequence {
	return Sequence{
		Kind:   KindStatic,
		Format: format,
		Size:   DimensionOf(img),
		Still:  img,
	}
}

// NewAnimatedSequence wraps decoded frames. It panics if frames is empty.
func NewAnimatedSequence(format string, frames []SourceFrame) Sequence {
	if len(frames) == 0 {
		panic("pipeline: animated sequence needs at least one frame")
	}
	return Sequence{
		Kind:   KindAnimated,
		Format: format,
		Size:   DimensionOf(frames[0].Image),
		Frames: frames,
	}
}

// IsAnimated reports whether the sequence carries timed frames.
func (s Sequence) IsAnimated() bool {
	return s.Kind == KindAnimated
}

// Len returns the number of planes: the frame count, or 1 for a static image.
func (s Sequence) Len() int {
	if s.IsAnimated() {
		return len(s.Frames)
	}
	if s.Still == nil {
		return 0
	}
	return 1
}

// Plane returns the source plane at index i, wrapping modulo Len.
func (s Sequence) Plane(i int) image.Image {
	if !s.IsAnimated() {
		return s.Still
	}
	return s.Frames[wrap(i, len(s.Frames))].Image
}

// Duration returns the display duration of frame i, wrapping modulo Len.
// Static sequences have no duration.
func (s Sequence) Duration(i int) time.Duration {
	if !s.IsAnimated() {
		return 0
	}
	return s.Frames[wrap(i, len(s.Frames))].Duration
}

// Durations returns the display durations of every frame in order.
func (s Sequence) Durations() []time.Duration {
	if !s.IsAnimated() {
		return nil
	}
	out := make([]time.Duration, len(s.Frames))
	for i, f := range s.Frames {
		out[i] = f.Duration
	}
	return out
}

// TotalDuration returns the length of one loop of the animation.
func (s Sequence) TotalDuration() time.Duration {
	var total time.Duration
	for _, d := range s.Durations() {
		total += d
	}
	return total
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// =============================================================================
// Resize Cache Types
// =============================================================================

// RGBPlane is a packed 8-bit RGB image, 3 bytes per pixel, row-major.
type RGBPlane struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRGBPlane allocates a zeroed plane of the given size.
func NewRGBPlane(size Dimension) *RGBPlane {
	return &RGBPlane{
		Width:  size.Width,
		Height: size.Height,
		Pix:    make([]uint8, size.Width*size.Height*3),
	}
}

// Size returns the plane dimensions.
func (p *RGBPlane) Size() Dimension {
	return Dimension{Width: p.Width, Height: p.Height}
}

// Stride returns the number of bytes per row.
func (p *RGBPlane) Stride() int {
	return p.Width * 3
}

// RGBPlaneFromRGBA drops the alpha channel of img into a new RGB plane.
// Transparent pixels of a premultiplied image end up black.
func RGBPlaneFromRGBA(img *image.RGBA) *RGBPlane {
	b := img.Bounds()
	plane := NewRGBPlane(Dimension{Width: b.Dx(), Height: b.Dy()})
	for y := 0; y < plane.Height; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		src := img.Pix[off : off+plane.Width*4]
		dst := plane.Pix[y*plane.Stride() : (y+1)*plane.Stride()]
		for x, j := 0, 0; x < len(src); x, j = x+4, j+3 {
			dst[j] = src[x]
			dst[j+1] = src[x+1]
			dst[j+2] = src[x+2]
		}
	}
	return plane
}

// =============================================================================
// Compositor Types
// =============================================================================

// PixelFormat is the packing of one destination pixel in a uint32.
type PixelFormat int

const (
	// FormatXRGB8888 packs 0x00RRGGBB with an unused leading byte.
	FormatXRGB8888 PixelFormat = iota
	// FormatXBGR8888 packs 0x00BBGGRR.
	FormatXBGR8888
	// FormatRGB565 packs 5-6-5 bits in the low 16 bits.
	FormatRGB565
)

// String returns the string representation of the pixel format.
func (f PixelFormat) String() string {
	switch f {
	case FormatXRGB8888:
		return "xrgb8888"
	case FormatXBGR8888:
		return "xbgr8888"
	case FormatRGB565:
		return "rgb565"
	default:
		return "unknown"
	}
}

// ParsePixelFormat parses a pixel format name.
func ParsePixelFormat(s string) (PixelFormat, error) {
	switch s {
	case "", "xrgb8888":
		return FormatXRGB8888, nil
	case "xbgr8888":
		return FormatXBGR8888, nil
	case "rgb565":
		return FormatRGB565, nil
	default:
		return FormatXRGB8888, fmt.Errorf("unknown pixel format: %q", s)
	}
}

// DestinationPlane is a caller-owned buffer matching the presentation
// surface exactly, one packed pixel per element.
type DestinationPlane struct {
	Width  int
	Height int
	Format PixelFormat
	Pix    []uint32
}

// NewDestinationPlane allocates a destination plane for the given surface size.
func NewDestinationPlane(size Dimension, format PixelFormat) *DestinationPlane {
	return &DestinationPlane{
		Width:  size.Width,
		Height: size.Height,
		Format: format,
		Pix:    make([]uint32, size.Width*size.Height),
	}
}

// Size returns the plane dimensions.
func (p *DestinationPlane) Size() Dimension {
	return Dimension{Width: p.Width, Height: p.Height}
}

// Fill sets every pixel to v.
func (p *DestinationPlane) Fill(v uint32) {
	for i := range p.Pix {
		p.Pix[i] = v
	}
}

// RGBAt unpacks the pixel at (x, y) into 8-bit channels.
func (p *DestinationPlane) RGBAt(x, y int) (r, g, b uint8) {
	v := p.Pix[y*p.Width+x]
	switch p.Format {
	case FormatXBGR8888:
		return uint8(v), uint8(v >> 8), uint8(v >> 16)
	case FormatRGB565:
		r5 := uint8(v>>11) & 0x1f
		g6 := uint8(v>>5) & 0x3f
		b5 := uint8(v) & 0x1f
		return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
	default:
		return uint8(v >> 16), uint8(v >> 8), uint8(v)
	}
}

// ToImage converts the plane to an opaque RGBA image for presentation
// adapters that consume image.Image.
func (p *DestinationPlane) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	for y := 0; y < p.Height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < p.Width; x++ {
			r, g, b := p.RGBAt(x, y)
			row[x*4] = r
			row[x*4+1] = g
			row[x*4+2] = b
			row[x*4+3] = 0xff
		}
	}
	return img
}

// =============================================================================
// Playback Types
// =============================================================================

// PlaybackState is a snapshot of the playback clock.
type PlaybackState struct {
	Index       int
	LastAdvance time.Time
}
