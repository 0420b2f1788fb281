package viewer

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"testing"
	"time"

	"github.com/user/frameview/pkg/adapters/imagecodec"
	"github.com/user/frameview/pkg/adapters/logger"
	"github.com/user/frameview/pkg/adapters/xscaler"
	"github.com/user/frameview/pkg/mocks"
	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/playback"
	"github.com/user/frameview/pkg/stages/load"
)

func encodeRedBlueGIF(t *testing.T) []byte {
	t.Helper()

	pal := color.Palette{color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255}}
	anim := &gif.GIF{}
	for i := 0; i < 2; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, 4, 4), pal)
		for j := range frame.Pix {
			frame.Pix[j] = uint8(i)
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 10)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestIntegration_GIFPlaysAtAuthoredTiming(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("anim.gif", encodeRedBlueGIF(t))
	log := logger.NewNoop()
	sink := mocks.NewDebugSink(false)

	seq, err := load.New(fs, imagecodec.New(), sink, log).
		Execute(context.Background(), pipeline.LoadInput{Path: "anim.gif"})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !seq.IsAnimated() || seq.Len() != 2 {
		t.Fatalf("expected 2-frame animation, got %s with %d frames", seq.Kind, seq.Len())
	}

	ctrl := playback.New(seq, xscaler.New(), playback.DefaultOptions(), log)
	presenter := &mocks.Presenter{}
	opts := DefaultOptions()
	opts.Size = pipeline.Dimension{Width: 8, Height: 6}
	opts.FPS = 10
	opts.Duration = 400 * time.Millisecond

	result, err := New(ctrl, presenter, sink, mocks.NewClock(t0), opts, log).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	const red, blue = uint32(0x00ff0000), uint32(0x000000ff)
	want := []uint32{red, red, blue, red}
	if result.Presented != len(want) {
		t.Fatalf("expected %d presented planes, got %d", len(want), result.Presented)
	}
	for i, plane := range presenter.Planes {
		for _, px := range plane.Pix {
			if px != want[i] {
				t.Fatalf("plane %d: expected every pixel %#08x, found %#08x", i, want[i], px)
			}
		}
	}

	if result.Stats.Cache.Misses != 2 {
		t.Errorf("expected each frame resized once, got %d misses", result.Stats.Cache.Misses)
	}
}
