package imagecodec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"
	"time"
)

var testPalette = color.Palette{
	color.RGBA{A: 0},
	color.RGBA{R: 255, A: 255},
	color.RGBA{B: 255, A: 255},
	color.RGBA{G: 255, A: 255},
}

func paletted(r image.Rectangle, index uint8) *image.Paletted {
	img := image.NewPaletted(r, testPalette)
	for i := range img.Pix {
		img.Pix[i] = index
	}
	return img
}

func encodeGIF(t *testing.T, g *gif.GIF) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	return buf.Bytes()
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestCodec_DetectFormat(t *testing.T) {
	c := New()

	gifData := encodeGIF(t, &gif.GIF{
		Image: []*image.Paletted{paletted(image.Rect(0, 0, 2, 2), 1)},
		Delay: []int{10},
	})
	pngData := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 2, 2)))

	tests := []struct {
		name     string
		data     []byte
		want     string
		animated bool
	}{
		{"gif", gifData, FormatGIF, true},
		{"png", pngData, FormatPNG, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.DetectFormat(tt.data)
			if err != nil {
				t.Fatalf("DetectFormat failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if c.IsAnimatedFormat(got) != tt.animated {
				t.Errorf("IsAnimatedFormat(%q) = %v, want %v", got, !tt.animated, tt.animated)
			}
		})
	}
}

func TestCodec_DetectFormatUnknown(t *testing.T) {
	c := New()

	_, err := c.DetectFormat([]byte("definitely not an image"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestCodec_DecodeStill(t *testing.T) {
	c := New()
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	img, err := c.DecodeStill(encodePNG(t, src))
	if err != nil {
		t.Fatalf("DecodeStill failed: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("expected 3x2, got %v", img.Bounds())
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("unexpected pixel %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestCodec_DecodeStillCorrupt(t *testing.T) {
	c := New()

	data := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 8, 8)))
	if _, err := c.DecodeStill(data[:len(data)/2]); err == nil {
		t.Error("expected error for truncated png")
	}
}

func TestCodec_DecodeAnimatedDelays(t *testing.T) {
	c := New()
	bounds := image.Rect(0, 0, 4, 4)
	data := encodeGIF(t, &gif.GIF{
		Image: []*image.Paletted{paletted(bounds, 1), paletted(bounds, 2), paletted(bounds, 3)},
		Delay: []int{10, 5, 20},
	})

	frames, err := c.DecodeAnimated(data)
	if err != nil {
		t.Fatalf("DecodeAnimated failed: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}

	want := []time.Duration{100 * time.Millisecond, 50 * time.Millisecond, 200 * time.Millisecond}
	for i, f := range frames {
		if f.Delay != want[i] {
			t.Errorf("frame %d: expected delay %v, got %v", i, want[i], f.Delay)
		}
		if f.Image.Bounds() != bounds {
			t.Errorf("frame %d: expected bounds %v, got %v", i, bounds, f.Image.Bounds())
		}
	}
}

func TestCodec_DecodeAnimatedDisposal(t *testing.T) {
	c := New()
	full := image.Rect(0, 0, 4, 4)
	corner := image.Rect(0, 0, 2, 2)
	data := encodeGIF(t, &gif.GIF{
		Image:    []*image.Paletted{paletted(full, 1), paletted(corner, 2), paletted(image.Rect(2, 2, 4, 4), 3)},
		Delay:    []int{1, 1, 1},
		Disposal: []byte{gif.DisposalNone, gif.DisposalBackground, gif.DisposalNone},
		Config:   image.Config{Width: 4, Height: 4, ColorModel: testPalette},
	})

	frames, err := c.DecodeAnimated(data)
	if err != nil {
		t.Fatalf("DecodeAnimated failed: %v", err)
	}

	// Frame 1 draws blue over the red background left by frame 0.
	if got := frames[1].Image.RGBAAt(0, 0); got.B != 255 {
		t.Errorf("frame 1 (0,0): expected blue, got %v", got)
	}
	if got := frames[1].Image.RGBAAt(3, 3); got.R != 255 {
		t.Errorf("frame 1 (3,3): expected red kept from frame 0, got %v", got)
	}

	// Frame 1 is disposed to background, so its corner is cleared for frame 2.
	if got := frames[2].Image.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("frame 2 (0,0): expected cleared pixel, got %v", got)
	}
	if got := frames[2].Image.RGBAAt(3, 3); got.G != 255 {
		t.Errorf("frame 2 (3,3): expected green, got %v", got)
	}

	// Frames are independent copies.
	if &frames[0].Image.Pix[0] == &frames[1].Image.Pix[0] {
		t.Error("expected frames to own separate pixel buffers")
	}
}

func TestCodec_DecodeAnimatedCorrupt(t *testing.T) {
	c := New()

	if _, err := c.DecodeAnimated([]byte("GIF89a broken")); err == nil {
		t.Error("expected error for corrupt gif")
	}
}
