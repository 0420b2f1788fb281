// Package xscaler provides a scaler implementation using golang.org/x/image/draw
// for resampling and the gg library for letterboxed canvases.
package xscaler

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/ports"
)

// Scaler implements ports.Scaler.
type Scaler struct{}

// New creates a new Scaler.
func New() *Scaler {
	return &Scaler{}
}

// Scale resamples img to exactly target. With FitContain the picture keeps
// its aspect ratio and is centered on a background-filled canvas.
func (s *Scaler) Scale(img image.Image, target pipeline.Dimension, opts ports.ScaleOptions) *image.RGBA {
	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}

	if opts.Fit == ports.FitContain {
		return s.contain(img, target, opts.Filter, bg)
	}

	dst := image.NewRGBA(image.Rect(0, 0, target.Width, target.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	kernel(opts.Filter).Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func (s *Scaler) contain(img image.Image, target pipeline.Dimension, filter ports.Filter, bg color.Color) *image.RGBA {
	fitted := ContainRect(pipeline.DimensionOf(img), target)

	scaled := image.NewRGBA(image.Rect(0, 0, fitted.Dx(), fitted.Dy()))
	kernel(filter).Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	dc := gg.NewContext(target.Width, target.Height)
	dc.SetColor(bg)
	dc.Clear()
	dc.DrawImage(scaled, fitted.Min.X, fitted.Min.Y)

	if rgba, ok := dc.Image().(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(image.Rect(0, 0, target.Width, target.Height))
	draw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return out
}

// ContainRect returns the largest rectangle with the aspect ratio of src
// that fits inside target, centered.
func ContainRect(src, target pipeline.Dimension) image.Rectangle {
	if !src.Positive() {
		return image.Rect(0, 0, target.Width, target.Height)
	}

	w, h := target.Width, src.Height*target.Width/src.Width
	if h > target.Height {
		w, h = src.Width*target.Height/src.Height, target.Height
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	x := (target.Width - w) / 2
	y := (target.Height - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

func kernel(f ports.Filter) draw.Scaler {
	switch f {
	case ports.FilterApproxBiLinear:
		return draw.ApproxBiLinear
	case ports.FilterCatmullRom:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// Ensure Scaler implements ports.Scaler
var _ ports.Scaler = (*Scaler)(nil)
