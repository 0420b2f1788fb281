package ports

import (
	"fmt"
	"image"
	"image/color"

	"github.com/user/frameview/pkg/pipeline"
)

// Scaler abstracts image resampling to a target surface size.
type Scaler interface {
	// Scale returns a new image of exactly target size.
	Scale(img image.Image, target pipeline.Dimension, opts ScaleOptions) *image.RGBA
}

// ScaleOptions configures resampling.
type ScaleOptions struct {
	Filter     Filter
	Fit        FitMode
	Background color.Color // Letterbox fill for FitContain
}

// DefaultScaleOptions returns nearest-neighbor stretch scaling on black.
func DefaultScaleOptions() ScaleOptions {
	return ScaleOptions{
		Filter:     FilterNearest,
		Fit:        FitStretch,
		Background: color.Black,
	}
}

// Filter selects the resampling kernel.
type Filter int

const (
	FilterNearest Filter = iota
	FilterApproxBiLinear
	FilterCatmullRom
)

// ParseFilter parses a filter name. The empty string selects nearest.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "", "nearest":
		return FilterNearest, nil
	case "approx-bilinear", "bilinear":
		return FilterApproxBiLinear, nil
	case "catmull-rom":
		return FilterCatmullRom, nil
	default:
		return FilterNearest, fmt.Errorf("unknown filter: %q", s)
	}
}

// String returns the string representation of the filter.
func (f Filter) String() string {
	switch f {
	case FilterApproxBiLinear:
		return "approx-bilinear"
	case FilterCatmullRom:
		return "catmull-rom"
	default:
		return "nearest"
	}
}

// FitMode controls how the source aspect ratio maps onto the target.
type FitMode int

const (
	// FitStretch fills the target exactly, ignoring aspect ratio.
	FitStretch FitMode = iota
	// FitContain preserves aspect ratio and letterboxes the remainder.
	FitContain
)

// ParseFitMode parses a fit mode name. The empty string selects stretch.
func ParseFitMode(s string) (FitMode, error) {
	switch s {
	case "", "stretch":
		return FitStretch, nil
	case "contain":
		return FitContain, nil
	default:
		return FitStretch, fmt.Errorf("unknown fit mode: %q", s)
	}
}

// String returns the string representation of the fit mode.
func (m FitMode) String() string {
	if m == FitContain {
		return "contain"
	}
	return "stretch"
}
