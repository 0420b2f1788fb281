// Package load implements the frame store: it reads a source file and
// decodes it into an immutable sequence.
package load

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/ports"
)

// Stage loads sequences from disk.
type Stage struct {
	fs      ports.FileSystem
	decoder ports.SequenceDecoder
	sink    ports.DebugSink
	logger  ports.Logger
}

// New creates a new load stage.
func New(fs ports.FileSystem, decoder ports.SequenceDecoder, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		fs:      fs,
		decoder: decoder,
		sink:    sink,
		logger:  logger.WithComponent("load"),
	}
}

// Execute reads input.Path and decodes it. Animated containers are decoded
// frame by frame up front; anything else yields a single still plane.
// Either the full sequence is returned or a *LoadError.
func (s *Stage) Execute(ctx context.Context, input pipeline.LoadInput) (pipeline.Sequence, error) {
	s.logger.Debug("Reading %s", input.Path)

	data, err := s.fs.ReadFile(input.Path)
	if err != nil {
		return pipeline.Sequence{}, ioError(input.Path, err)
	}

	format, err := s.decoder.DetectFormat(data)
	if err != nil {
		return pipeline.Sequence{}, decodeError(input.Path, err)
	}
	s.logger.Debug("Detected %s container", format)

	var seq pipeline.Sequence
	if s.decoder.IsAnimatedFormat(format) {
		seq, err = s.loadAnimated(ctx, input, format, data)
	} else {
		seq, err = s.loadStill(input, format, data)
	}
	if err != nil {
		return pipeline.Sequence{}, err
	}

	if s.sink.Enabled() {
		s.saveDebug(seq)
	}
	return seq, nil
}

func (s *Stage) loadAnimated(ctx context.Context, input pipeline.LoadInput, format string, data []byte) (pipeline.Sequence, error) {
	decoded, err := s.decoder.DecodeAnimated(data)
	if err != nil {
		return pipeline.Sequence{}, decodeError(input.Path, err)
	}
	if len(decoded) == 0 {
		return pipeline.Sequence{}, decodeError(input.Path, errors.New("no frames"))
	}

	frames := make([]pipeline.SourceFrame, len(decoded))
	for i, f := range decoded {
		if err := ctx.Err(); err != nil {
			return pipeline.Sequence{}, err
		}
		if f.Image == nil {
			return pipeline.Sequence{}, decodeError(input.Path, errors.New("frame without pixels"))
		}
		frames[i] = pipeline.SourceFrame{
			Image:    f.Image,
			Duration: ClampDelay(f.Delay, input.MinFrameDelay, input.DefaultFrameDelay),
		}
	}

	seq := pipeline.NewAnimatedSequence(format, frames)
	s.logger.Debug("Decoded %d frames, loop length %s", len(frames), seq.TotalDuration())
	return seq, nil
}

func (s *Stage) loadStill(input pipeline.LoadInput, format string, data []byte) (pipeline.Sequence, error) {
	img, err := s.decoder.DecodeStill(data)
	if err != nil {
		return pipeline.Sequence{}, decodeError(input.Path, err)
	}
	if !pipeline.DimensionOf(img).Positive() {
		return pipeline.Sequence{}, decodeError(input.Path, errors.New("empty image"))
	}

	seq := pipeline.NewStaticSequence(format, img)
	s.logger.Debug("Decoded still image %dx%d", seq.Size.Width, seq.Size.Height)
	return seq, nil
}

// ClampDelay applies the optional delay policy: a zero delay becomes
// fallback when fallback > 0, and anything shorter than floor is raised to it.
func ClampDelay(d, floor, fallback time.Duration) time.Duration {
	if d <= 0 && fallback > 0 {
		d = fallback
	}
	if d < floor {
		d = floor
	}
	if d < 0 {
		d = 0
	}
	return d
}

// sequenceInfo is the debug description of a loaded sequence.
type sequenceInfo struct {
	Kind        string  `json:"kind"`
	Format      string  `json:"format"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Frames      int     `json:"frames"`
	DurationsMs []int64 `json:"durations_ms,omitempty"`
}

func (s *Stage) saveDebug(seq pipeline.Sequence) {
	info := sequenceInfo{
		Kind:   seq.Kind.String(),
		Format: seq.Format,
		Width:  seq.Size.Width,
		Height: seq.Size.Height,
		Frames: seq.Len(),
	}
	for _, d := range seq.Durations() {
		info.DurationsMs = append(info.DurationsMs, d.Milliseconds())
	}
	if data, err := json.MarshalIndent(info, "", "  "); err == nil {
		if err := s.sink.SaveSequenceJSON(data); err != nil {
			s.logger.Warn("Failed to save debug frame: %s", err)
		}
	}

	for i := 0; i < seq.Len(); i++ {
		if err := s.sink.SaveSourceFrame(i, seq.Plane(i)); err != nil {
			s.logger.Warn("Failed to save debug frame: %s", err)
			return
		}
	}
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.LoadInput, pipeline.Sequence] = (*Stage)(nil)
