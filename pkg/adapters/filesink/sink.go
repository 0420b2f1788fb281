// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/user/frameview/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
	encoder png.Encoder
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
		encoder: png.Encoder{CompressionLevel: png.BestSpeed},
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveSequenceJSON saves a description of the loaded sequence.
func (s *Sink) SaveSequenceJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "sequence.json")
	return s.fs.WriteFile(path, data)
}

// SaveSourceFrame saves a decoded source frame.
func (s *Sink) SaveSourceFrame(index int, img image.Image) error {
	return s.savePNG(filepath.Join("frames", "source"), index, img)
}

// SavePresentedFrame saves a composed destination plane.
func (s *Sink) SavePresentedFrame(index int, img image.Image) error {
	return s.savePNG(filepath.Join("frames", "presented"), index, img)
}

func (s *Sink) savePNG(sub string, index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, sub)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.encoder.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode frame %d: %w", index, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.fs.WriteFile(path, buf.Bytes())
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
