package load

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/user/frameview/pkg/adapters/imagecodec"
	"github.com/user/frameview/pkg/adapters/logger"
	"github.com/user/frameview/pkg/mocks"
	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/ports"
)

func gifBytes(t *testing.T, delays ...int) []byte {
	t.Helper()
	pal := color.Palette{color.Black, color.White}
	g := &gif.GIF{}
	for range delays {
		g.Image = append(g.Image, image.NewPaletted(image.Rect(0, 0, 6, 4), pal))
	}
	g.Delay = delays
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	return buf.Bytes()
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newStage(fs ports.FileSystem, sink ports.DebugSink) *Stage {
	return New(fs, imagecodec.New(), sink, logger.NewNoop())
}

func TestStage_Execute_Animated(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("anim.gif", gifBytes(t, 10, 5, 20))
	stage := newStage(fs, mocks.NewDebugSink(false))

	seq, err := stage.Execute(context.Background(), pipeline.LoadInput{Path: "anim.gif"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !seq.IsAnimated() {
		t.Fatal("expected animated sequence")
	}
	if seq.Len() != 3 {
		t.Fatalf("expected 3 frames, got %d", seq.Len())
	}
	if seq.Size != (pipeline.Dimension{Width: 6, Height: 4}) {
		t.Errorf("expected 6x4 source size, got %v", seq.Size)
	}

	want := []time.Duration{100 * time.Millisecond, 50 * time.Millisecond, 200 * time.Millisecond}
	for i, d := range seq.Durations() {
		if d != want[i] {
			t.Errorf("frame %d: expected %v, got %v", i, want[i], d)
		}
	}
}

func TestStage_Execute_SingleFrameGIFIsAnimated(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("one.gif", gifBytes(t, 0))
	stage := newStage(fs, mocks.NewDebugSink(false))

	seq, err := stage.Execute(context.Background(), pipeline.LoadInput{Path: "one.gif"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seq.IsAnimated() || seq.Len() != 1 {
		t.Errorf("expected 1-frame animated sequence, got %s with %d planes", seq.Kind, seq.Len())
	}
}

func TestStage_Execute_Static(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("still.png", pngBytes(t, 8, 3))
	stage := newStage(fs, mocks.NewDebugSink(false))

	seq, err := stage.Execute(context.Background(), pipeline.LoadInput{Path: "still.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if seq.IsAnimated() {
		t.Fatal("expected static sequence")
	}
	if seq.Format != "png" {
		t.Errorf("expected png format, got %q", seq.Format)
	}
	if seq.Len() != 1 || seq.Plane(0) == nil {
		t.Error("expected exactly one plane")
	}
	if seq.Size != (pipeline.Dimension{Width: 8, Height: 3}) {
		t.Errorf("expected 8x3, got %v", seq.Size)
	}
}

func TestStage_Execute_IOError(t *testing.T) {
	stage := newStage(mocks.NewFileSystem(), mocks.NewDebugSink(false))

	_, err := stage.Execute(context.Background(), pipeline.LoadInput{Path: "missing.gif"})

	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected underlying cause to be preserved, got %v", err)
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || loadErr.Path != "missing.gif" {
		t.Errorf("expected LoadError with path, got %#v", err)
	}
	if !strings.Contains(err.Error(), "missing.gif") {
		t.Errorf("expected path in message, got %q", err.Error())
	}
}

func TestStage_Execute_DecodeErrors(t *testing.T) {
	goodGIF := gifBytes(t, 10, 10)

	tests := []struct {
		name string
		data []byte
	}{
		{"unknown container", []byte("hello, world")},
		{"truncated gif", goodGIF[:len(goodGIF)-8]},
		{"truncated png", pngBytes(t, 16, 16)[:40]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewFileSystem()
			fs.AddFile("bad", tt.data)
			stage := newStage(fs, mocks.NewDebugSink(false))

			seq, err := stage.Execute(context.Background(), pipeline.LoadInput{Path: "bad"})
			if !errors.Is(err, ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
			if seq.Len() != 0 {
				t.Error("expected no partial sequence on failure")
			}
		})
	}
}

func TestStage_Execute_EmptyAnimation(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("empty.gif", []byte("x"))
	dec := &mocks.SequenceDecoder{Format: "gif"}
	stage := New(fs, dec, mocks.NewDebugSink(false), logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.LoadInput{Path: "empty.gif"})
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for zero frames, got %v", err)
	}
}

func TestStage_Execute_Cancelled(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("anim.gif", gifBytes(t, 10, 10))
	stage := newStage(fs, mocks.NewDebugSink(false))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stage.Execute(ctx, pipeline.LoadInput{Path: "anim.gif"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestStage_Execute_DelayPolicy(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("anim.gif", gifBytes(t, 0, 1, 10))
	stage := newStage(fs, mocks.NewDebugSink(false))

	seq, err := stage.Execute(context.Background(), pipeline.LoadInput{
		Path:              "anim.gif",
		MinFrameDelay:     20 * time.Millisecond,
		DefaultFrameDelay: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Duration{100 * time.Millisecond, 20 * time.Millisecond, 100 * time.Millisecond}
	for i, d := range seq.Durations() {
		if d != want[i] {
			t.Errorf("frame %d: expected %v, got %v", i, want[i], d)
		}
	}
}

func TestStage_Execute_DebugSink(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("anim.gif", gifBytes(t, 10, 5))
	sink := mocks.NewDebugSink(true)
	stage := newStage(fs, sink)

	if _, err := stage.Execute(context.Background(), pipeline.LoadInput{Path: "anim.gif"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(string(sink.SequenceJSON), `"durations_ms": [`) {
		t.Errorf("expected durations in sequence json, got %s", sink.SequenceJSON)
	}
	if len(sink.SourceFrames) != 2 {
		t.Errorf("expected 2 source frames saved, got %d", len(sink.SourceFrames))
	}
}

func TestClampDelay(t *testing.T) {
	ms := time.Millisecond
	tests := []struct {
		name                  string
		d, floor, fallback, w time.Duration
	}{
		{"untouched", 70 * ms, 0, 0, 70 * ms},
		{"zero kept without fallback", 0, 0, 0, 0},
		{"zero replaced", 0, 0, 100 * ms, 100 * ms},
		{"raised to floor", 10 * ms, 20 * ms, 0, 20 * ms},
		{"fallback then floor", 0, 50 * ms, 30 * ms, 50 * ms},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDelay(tt.d, tt.floor, tt.fallback); got != tt.w {
				t.Errorf("expected %v, got %v", tt.w, got)
			}
		})
	}
}
