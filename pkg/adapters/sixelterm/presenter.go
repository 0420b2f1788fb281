// Package sixelterm presents destination planes on a sixel-capable terminal.
package sixelterm

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-sixel"

	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/ports"
)

// Terminal control sequences.
const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Options configures the sixel presenter.
type Options struct {
	Dither bool
}

// Presenter writes each plane as a sixel image at the top-left of the terminal.
type Presenter struct {
	w       io.Writer
	enc     *sixel.Encoder
	started bool
}

// New creates a presenter writing to w.
func New(w io.Writer, opts Options) *Presenter {
	enc := sixel.NewEncoder(w)
	enc.Dither = opts.Dither
	return &Presenter{w: w, enc: enc}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Present encodes the plane and redraws it in place.
func (p *Presenter) Present(plane *pipeline.DestinationPlane) error {
	if !p.started {
		if _, err := io.WriteString(p.w, clearScreen+hideCursor); err != nil {
			return fmt.Errorf("prepare terminal: %w", err)
		}
		p.started = true
	}
	if _, err := io.WriteString(p.w, cursorHome); err != nil {
		return fmt.Errorf("move cursor: %w", err)
	}
	if err := p.enc.Encode(plane.ToImage()); err != nil {
		return fmt.Errorf("encode sixel: %w", err)
	}
	return nil
}

// Close restores the cursor.
func (p *Presenter) Close() error {
	if !p.started {
		return nil
	}
	_, err := io.WriteString(p.w, showCursor+"\n")
	return err
}

// Ensure Presenter implements ports.Presenter
var _ ports.Presenter = (*Presenter)(nil)
