package sixelterm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/frameview/pkg/pipeline"
)

func TestPresenter_Present(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, Options{Dither: true})

	plane := pipeline.NewDestinationPlane(pipeline.Dimension{Width: 4, Height: 6}, pipeline.FormatXRGB8888)
	plane.Fill(0x00ff0000)

	if err := p.Present(plane); err != nil {
		t.Fatalf("Present failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, clearScreen+hideCursor+cursorHome) {
		t.Errorf("expected terminal preamble, got %q", out[:min(len(out), 16)])
	}
	// Sixel data starts with DCS and ends with ST.
	if !strings.Contains(out, "\x1bP") || !strings.HasSuffix(strings.TrimSpace(out), "\x1b\\") {
		t.Errorf("expected sixel sequence in output")
	}
}

func TestPresenter_SecondFrameOnlyHomesCursor(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, Options{})
	plane := pipeline.NewDestinationPlane(pipeline.Dimension{Width: 2, Height: 2}, pipeline.FormatXRGB8888)

	if err := p.Present(plane); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	buf.Reset()
	if err := p.Present(plane); err != nil {
		t.Fatalf("Present failed: %v", err)
	}

	if strings.Contains(buf.String(), clearScreen) {
		t.Error("expected screen to be cleared only once")
	}
	if !strings.HasPrefix(buf.String(), cursorHome) {
		t.Error("expected cursor home before each frame")
	}
}

func TestPresenter_CloseRestoresCursor(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, Options{})

	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Error("expected no output when nothing was presented")
	}

	plane := pipeline.NewDestinationPlane(pipeline.Dimension{Width: 1, Height: 1}, pipeline.FormatXRGB8888)
	_ = p.Present(plane)
	buf.Reset()

	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !strings.Contains(buf.String(), showCursor) {
		t.Error("expected cursor to be shown again")
	}
}
