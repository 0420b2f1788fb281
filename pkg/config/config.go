// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/user/frameview/pkg/adapters/mqttpub"
	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/playback"
	"github.com/user/frameview/pkg/ports"
	"github.com/user/frameview/pkg/stages/clock"
	"github.com/user/frameview/pkg/viewer"
)

// Config represents the full configuration for frameview.
type Config struct {
	Window   WindowConfig   `yaml:"window" toml:"window"`
	Scale    ScaleConfig    `yaml:"scale" toml:"scale"`
	Playback PlaybackConfig `yaml:"playback" toml:"playback"`
	Host     HostConfig     `yaml:"host" toml:"host"`
	MQTT     MQTTConfig     `yaml:"mqtt" toml:"mqtt"`
	Debug    DebugConfig    `yaml:"debug" toml:"debug"`
	LogLevel string         `yaml:"log_level" toml:"log_level"`
}

// WindowConfig describes the presentation surface.
type WindowConfig struct {
	Width       int    `yaml:"width" toml:"width"`
	Height      int    `yaml:"height" toml:"height"`
	PixelFormat string `yaml:"pixel_format" toml:"pixel_format"`
}

// ScaleConfig selects how frames are fitted to the surface.
type ScaleConfig struct {
	Filter     string `yaml:"filter" toml:"filter"`
	Fit        string `yaml:"fit" toml:"fit"`
	Background string `yaml:"background" toml:"background"`
}

// PlaybackConfig tunes frame timing.
type PlaybackConfig struct {
	CatchUp             bool `yaml:"catch_up" toml:"catch_up"`
	MinFrameDelayMs     int  `yaml:"min_frame_delay_ms" toml:"min_frame_delay_ms"`
	DefaultFrameDelayMs int  `yaml:"default_frame_delay_ms" toml:"default_frame_delay_ms"`
}

// HostConfig drives the headless render loop.
type HostConfig struct {
	FPS        float64      `yaml:"fps" toml:"fps"`
	DurationMs int          `yaml:"duration_ms" toml:"duration_ms"`
	Resize     []ResizeStep `yaml:"resize" toml:"resize"`
	Watch      bool         `yaml:"watch" toml:"watch"` // Reload the file when it changes
}

// ResizeStep changes the surface size after AfterMs of playback.
type ResizeStep struct {
	AfterMs int `yaml:"after_ms" toml:"after_ms"`
	Width   int `yaml:"width" toml:"width"`
	Height  int `yaml:"height" toml:"height"`
}

// MQTTConfig streams presented planes to a broker. Publishing is off
// while Broker is empty.
type MQTTConfig struct {
	Broker    string `yaml:"broker" toml:"broker"`
	Topic     string `yaml:"topic" toml:"topic"`
	ClientID  string `yaml:"client_id" toml:"client_id"`
	Username  string `yaml:"username" toml:"username"`
	Password  string `yaml:"password" toml:"password"`
	QoS       int    `yaml:"qos" toml:"qos"`
	TimeoutMs int    `yaml:"timeout_ms" toml:"timeout_ms"`
}

// DebugConfig enables intermediate output.
type DebugConfig struct {
	Enabled       bool   `yaml:"enabled" toml:"enabled"`
	Dir           string `yaml:"dir" toml:"dir"`
	SnapshotEvery int    `yaml:"snapshot_every" toml:"snapshot_every"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Window: WindowConfig{
			Width:       640,
			Height:      480,
			PixelFormat: "xrgb8888",
		},
		Scale: ScaleConfig{
			Filter:     "nearest",
			Fit:        "stretch",
			Background: "#000000",
		},
		Host: HostConfig{
			FPS: 30.0,
		},
		MQTT: MQTTConfig{
			Topic:     "frameview/frames",
			ClientID:  "frameview",
			TimeoutMs: 5000,
		},
		Debug: DebugConfig{
			Dir:           "./debug",
			SnapshotEvery: 30,
		},
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration on top of Defaults. Files ending in
// .toml are read as TOML, anything else as YAML.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	unmarshal := yaml.Unmarshal
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		unmarshal = toml.Unmarshal
	}
	if err := unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that every field can be converted.
func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if _, err := pipeline.ParsePixelFormat(c.Window.PixelFormat); err != nil {
		errs = append(errs, err)
	}
	if _, err := ports.ParseFilter(c.Scale.Filter); err != nil {
		errs = append(errs, err)
	}
	if _, err := ports.ParseFitMode(c.Scale.Fit); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseColor(c.Scale.Background); err != nil {
		errs = append(errs, err)
	}
	if c.Playback.MinFrameDelayMs < 0 || c.Playback.DefaultFrameDelayMs < 0 {
		errs = append(errs, errors.New("frame delays must not be negative"))
	}
	if c.Host.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %g", c.Host.FPS))
	}
	if c.Host.DurationMs < 0 {
		errs = append(errs, fmt.Errorf("duration must not be negative, got %dms", c.Host.DurationMs))
	}
	for i, step := range c.Host.Resize {
		if step.AfterMs < 0 || step.Width < 0 || step.Height < 0 {
			errs = append(errs, fmt.Errorf("resize step %d has negative values", i))
		}
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, fmt.Errorf("mqtt qos must be 0, 1 or 2, got %d", c.MQTT.QoS))
	}
	if c.MQTT.Broker != "" && c.MQTT.Topic == "" {
		errs = append(errs, errors.New("mqtt topic is required when a broker is set"))
	}
	if c.Debug.SnapshotEvery < 0 {
		errs = append(errs, fmt.Errorf("snapshot_every must not be negative, got %d", c.Debug.SnapshotEvery))
	}

	return errors.Join(errs...)
}

// ParseColor parses "#rrggbb" or "#rgb" into an opaque colour. The leading
// '#' is optional and an empty string means black.
func ParseColor(s string) (color.Color, error) {
	if s == "" {
		return color.Black, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if !validHex(s[1:]) {
		return color.Black, fmt.Errorf("invalid background color: %q", s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.Black, fmt.Errorf("invalid background color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func validHex(s string) bool {
	if len(s) != 3 && len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

// ToScaleOptions converts the scale section. Unknown names fall back to
// the defaults; call Validate first to reject them.
func (c Config) ToScaleOptions() ports.ScaleOptions {
	filter, _ := ports.ParseFilter(c.Scale.Filter)
	fit, _ := ports.ParseFitMode(c.Scale.Fit)
	bg, _ := ParseColor(c.Scale.Background)
	return ports.ScaleOptions{
		Filter:     filter,
		Fit:        fit,
		Background: bg,
	}
}

// ToPlaybackOptions converts Config to playback.Options.
func (c Config) ToPlaybackOptions() playback.Options {
	policy := clock.AdvanceStep
	if c.Playback.CatchUp {
		policy = clock.AdvanceCatchUp
	}
	return playback.Options{
		Scale:  c.ToScaleOptions(),
		Policy: policy,
	}
}

// ToLoadInput builds the frame store input for path.
func (c Config) ToLoadInput(path string) pipeline.LoadInput {
	return pipeline.LoadInput{
		Path:              path,
		MinFrameDelay:     time.Duration(c.Playback.MinFrameDelayMs) * time.Millisecond,
		DefaultFrameDelay: time.Duration(c.Playback.DefaultFrameDelayMs) * time.Millisecond,
	}
}

// ToViewerOptions converts the window, host and debug sections.
func (c Config) ToViewerOptions() viewer.Options {
	format, _ := pipeline.ParsePixelFormat(c.Window.PixelFormat)

	schedule := make([]viewer.ScheduledResize, len(c.Host.Resize))
	for i, step := range c.Host.Resize {
		schedule[i] = viewer.ScheduledResize{
			After: time.Duration(step.AfterMs) * time.Millisecond,
			Size:  pipeline.Dimension{Width: step.Width, Height: step.Height},
		}
	}

	snapshotEvery := 0
	if c.Debug.Enabled {
		snapshotEvery = c.Debug.SnapshotEvery
	}

	return viewer.Options{
		Size:          pipeline.Dimension{Width: c.Window.Width, Height: c.Window.Height},
		Format:        format,
		FPS:           c.Host.FPS,
		Duration:      time.Duration(c.Host.DurationMs) * time.Millisecond,
		Schedule:      schedule,
		SnapshotEvery: snapshotEvery,
	}
}

// ToMQTTOptions converts the mqtt section.
func (c Config) ToMQTTOptions() mqttpub.Options {
	return mqttpub.Options{
		Broker:   c.MQTT.Broker,
		Topic:    c.MQTT.Topic,
		ClientID: c.MQTT.ClientID,
		Username: c.MQTT.Username,
		Password: c.MQTT.Password,
		QoS:      byte(c.MQTT.QoS),
		Timeout:  time.Duration(c.MQTT.TimeoutMs) * time.Millisecond,
	}
}
