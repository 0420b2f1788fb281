package playback

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/user/frameview/pkg/adapters/logger"
	"github.com/user/frameview/pkg/mocks"
	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/ports"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

// frameColor gives frame i a red channel of 10*(i+1).
func frameColor(i int) color.RGBA {
	return color.RGBA{R: uint8(10 * (i + 1)), A: 255}
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func sequence(delaysMs ...int) pipeline.Sequence {
	frames := make([]pipeline.SourceFrame, len(delaysMs))
	for i, d := range delaysMs {
		frames[i] = pipeline.SourceFrame{
			Image:    solid(8, 6, frameColor(i)),
			Duration: time.Duration(d) * time.Millisecond,
		}
	}
	return pipeline.NewAnimatedSequence("gif", frames)
}

// fillScaler scales any image to a solid plane of its top-left colour.
func fillScaler() *mocks.Scaler {
	return &mocks.Scaler{
		ScaleFunc: func(img image.Image, target pipeline.Dimension, _ ports.ScaleOptions) *image.RGBA {
			b := img.Bounds()
			return solid(target.Width, target.Height, img.At(b.Min.X, b.Min.Y))
		},
	}
}

func shownFrame(t *testing.T, dst *pipeline.DestinationPlane) int {
	t.Helper()
	r, _, _ := dst.RGBAt(0, 0)
	return int(r)/10 - 1
}

func TestController_ThreeFrameScenario(t *testing.T) {
	scaler := fillScaler()
	c := New(sequence(100, 50, 200), scaler, DefaultOptions(), logger.NewNoop())
	size := pipeline.Dimension{Width: 4, Height: 3}
	dst := pipeline.NewDestinationPlane(size, pipeline.FormatXRGB8888)

	c.Ready(size, at(0))

	steps := []struct {
		now       int
		wantShown int
		wantIndex int
	}{
		{now: 0, wantShown: 0, wantIndex: 0},
		{now: 60, wantShown: 0, wantIndex: 0},
		{now: 150, wantShown: 0, wantIndex: 1},
		{now: 210, wantShown: 1, wantIndex: 2},
		{now: 220, wantShown: 2, wantIndex: 2},
	}

	for _, s := range steps {
		if !c.Render(size, at(s.now), dst) {
			t.Errorf("t=%dms: expected redraw request for animated sequence", s.now)
		}
		if got := shownFrame(t, dst); got != s.wantShown {
			t.Errorf("t=%dms: expected frame %d composited, got %d", s.now, s.wantShown, got)
		}
		if got := c.State().Index; got != s.wantIndex {
			t.Errorf("t=%dms: expected index %d after render, got %d", s.now, s.wantIndex, got)
		}
	}

	st := c.Stats()
	if st.Renders != 5 || st.Advances != 2 {
		t.Errorf("expected 5 renders and 2 advances, got %+v", st)
	}
	if scaler.CallCount() != 3 {
		t.Errorf("expected each frame resized once, got %d resizes", scaler.CallCount())
	}
}

func TestController_StaticDegeneracy(t *testing.T) {
	scaler := fillScaler()
	seq := pipeline.NewStaticSequence("png", solid(10, 10, color.RGBA{G: 99, A: 255}))
	c := New(seq, scaler, DefaultOptions(), logger.NewNoop())
	size := pipeline.Dimension{Width: 5, Height: 5}
	dst := pipeline.NewDestinationPlane(size, pipeline.FormatXRGB8888)

	c.Ready(size, at(0))
	for i := 0; i < 4; i++ {
		if c.Render(size, at(i*1000), dst) {
			t.Errorf("render %d: expected no redraw request for a still image", i)
		}
	}

	if _, g, _ := dst.RGBAt(4, 4); g != 99 {
		t.Errorf("expected still image pixels, got green %d", g)
	}
	if c.State().Index != 0 {
		t.Errorf("expected index 0, got %d", c.State().Index)
	}
	if scaler.CallCount() != 1 {
		t.Errorf("expected one resize, got %d", scaler.CallCount())
	}
	if c.Stats().Advances != 0 {
		t.Errorf("expected no advances, got %d", c.Stats().Advances)
	}
}

func TestController_ResizePreservesIndex(t *testing.T) {
	scaler := fillScaler()
	c := New(sequence(10, 10, 1000, 10), scaler, DefaultOptions(), logger.NewNoop())
	big := pipeline.Dimension{Width: 800, Height: 600}
	small := pipeline.Dimension{Width: 400, Height: 300}
	bigDst := pipeline.NewDestinationPlane(big, pipeline.FormatXRGB8888)

	c.Ready(big, at(0))
	c.Render(big, at(10), bigDst)
	c.Render(big, at(20), bigDst)
	if c.State().Index != 2 {
		t.Fatalf("expected to reach index 2, got %d", c.State().Index)
	}

	c.Resize(small)
	smallDst := pipeline.NewDestinationPlane(small, pipeline.FormatXRGB8888)
	c.Render(small, at(30), smallDst)

	if c.State().Index != 2 {
		t.Errorf("expected index 2 after resize, got %d", c.State().Index)
	}
	if got := shownFrame(t, smallDst); got != 2 {
		t.Errorf("expected frame 2 at new size, got frame %d", got)
	}
	last := scaler.Calls[len(scaler.Calls)-1]
	if last.Target != small {
		t.Errorf("expected resize to %v, got %v", small, last.Target)
	}

	st := c.Stats()
	if st.Resizes != 1 || st.Cache.Invalidations != 1 {
		t.Errorf("expected one resize and one invalidation, got %+v", st)
	}
}

func TestController_RenderAtNewSizeWithoutResizeSignal(t *testing.T) {
	c := New(sequence(1000, 1000), fillScaler(), DefaultOptions(), logger.NewNoop())
	a := pipeline.Dimension{Width: 4, Height: 4}
	b := pipeline.Dimension{Width: 2, Height: 2}

	c.Ready(a, at(0))
	c.Render(a, at(1), pipeline.NewDestinationPlane(a, pipeline.FormatXRGB8888))
	dst := pipeline.NewDestinationPlane(b, pipeline.FormatXRGB8888)
	c.Render(b, at(2), dst)

	if shownFrame(t, dst) != 0 {
		t.Errorf("expected frame 0, got %d", shownFrame(t, dst))
	}
	if c.Target() != b {
		t.Errorf("expected target %v, got %v", b, c.Target())
	}
}

func TestController_SkipsUnusableSurface(t *testing.T) {
	scaler := fillScaler()
	c := New(sequence(100, 100), scaler, DefaultOptions(), logger.NewNoop())
	size := pipeline.Dimension{Width: 4, Height: 3}

	tests := []struct {
		name   string
		target pipeline.Dimension
		dst    *pipeline.DestinationPlane
	}{
		{"zero size", pipeline.Dimension{}, pipeline.NewDestinationPlane(pipeline.Dimension{}, pipeline.FormatXRGB8888)},
		{"zero height", pipeline.Dimension{Width: 4}, pipeline.NewDestinationPlane(pipeline.Dimension{Width: 4}, pipeline.FormatXRGB8888)},
		{"nil destination", size, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c.Render(tt.target, at(500), tt.dst) {
				t.Error("expected no redraw request")
			}
			if !errors.Is(c.LastSkip(), ErrSurfaceNotReady) {
				t.Errorf("expected ErrSurfaceNotReady, got %v", c.LastSkip())
			}
		})
	}

	if scaler.CallCount() != 0 {
		t.Errorf("expected no resizes while skipping, got %d", scaler.CallCount())
	}
	if c.State().Index != 0 {
		t.Errorf("expected clock untouched, got index %d", c.State().Index)
	}
	if c.Stats().Skipped != 3 {
		t.Errorf("expected 3 skips, got %d", c.Stats().Skipped)
	}
}

func TestController_DestinationMismatchPanics(t *testing.T) {
	c := New(sequence(100), fillScaler(), DefaultOptions(), logger.NewNoop())
	dst := pipeline.NewDestinationPlane(pipeline.Dimension{Width: 3, Height: 3}, pipeline.FormatXRGB8888)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on destination size mismatch")
		}
	}()
	c.Render(pipeline.Dimension{Width: 4, Height: 4}, at(0), dst)
}

func TestController_Close(t *testing.T) {
	scaler := fillScaler()
	c := New(sequence(100, 100), scaler, DefaultOptions(), logger.NewNoop())
	size := pipeline.Dimension{Width: 4, Height: 3}
	dst := pipeline.NewDestinationPlane(size, pipeline.FormatXRGB8888)

	c.Ready(size, at(0))
	c.Render(size, at(0), dst)
	c.Close()

	if !c.Closed() {
		t.Error("expected controller to report closed")
	}
	if c.Render(size, at(500), dst) {
		t.Error("expected no redraw request after close")
	}
	c.Resize(pipeline.Dimension{Width: 8, Height: 6})
	if scaler.CallCount() != 1 {
		t.Errorf("expected no work after close, got %d resizes", scaler.CallCount())
	}
	if c.Stats().Renders != 1 {
		t.Errorf("expected 1 render, got %d", c.Stats().Renders)
	}
}

func TestController_SingleFrameAnimationStaysOnFrame(t *testing.T) {
	c := New(sequence(20), fillScaler(), DefaultOptions(), logger.NewNoop())
	size := pipeline.Dimension{Width: 2, Height: 2}
	dst := pipeline.NewDestinationPlane(size, pipeline.FormatXRGB8888)

	c.Ready(size, at(0))
	for i := 1; i <= 5; i++ {
		if !c.Render(size, at(i*20), dst) {
			t.Fatal("expected redraw request for animated sequence")
		}
		if c.State().Index != 0 {
			t.Fatalf("expected index 0, got %d", c.State().Index)
		}
	}
}
