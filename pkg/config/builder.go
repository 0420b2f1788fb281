package config

// Builder provides a fluent interface for layering command-line
// overrides onto a Config.
type Builder struct {
	config Config
}

// NewBuilder creates a Builder starting from Defaults.
func NewBuilder() *Builder {
	return &Builder{config: Defaults()}
}

// NewBuilderFrom creates a Builder starting from cfg.
func NewBuilderFrom(cfg Config) *Builder {
	cfg.Host.Resize = append([]ResizeStep(nil), cfg.Host.Resize...)
	return &Builder{config: cfg}
}

// Build validates and returns the final Config.
func (b *Builder) Build() (Config, error) {
	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WithSize sets the initial surface size.
func (b *Builder) WithSize(width, height int) *Builder {
	b.config.Window.Width = width
	b.config.Window.Height = height
	return b
}

// WithPixelFormat sets the destination pixel packing.
func (b *Builder) WithPixelFormat(name string) *Builder {
	b.config.Window.PixelFormat = name
	return b
}

// WithFilter sets the resampling kernel name.
func (b *Builder) WithFilter(name string) *Builder {
	b.config.Scale.Filter = name
	return b
}

// WithFit sets the fit mode name.
func (b *Builder) WithFit(name string) *Builder {
	b.config.Scale.Fit = name
	return b
}

// WithBackground sets the letterbox colour as hex.
func (b *Builder) WithBackground(hex string) *Builder {
	b.config.Scale.Background = hex
	return b
}

// WithCatchUp enables skipping frames after a stall.
func (b *Builder) WithCatchUp(enabled bool) *Builder {
	b.config.Playback.CatchUp = enabled
	return b
}

// WithFPS sets the host render rate.
func (b *Builder) WithFPS(fps float64) *Builder {
	b.config.Host.FPS = fps
	return b
}

// WithDurationMs limits the session length. 0 plays until interrupted.
func (b *Builder) WithDurationMs(ms int) *Builder {
	b.config.Host.DurationMs = ms
	return b
}

// WithResize appends a scheduled resize.
func (b *Builder) WithResize(afterMs, width, height int) *Builder {
	b.config.Host.Resize = append(b.config.Host.Resize, ResizeStep{AfterMs: afterMs, Width: width, Height: height})
	return b
}

// WithWatch reloads the played file whenever it changes on disk.
func (b *Builder) WithWatch(enabled bool) *Builder {
	b.config.Host.Watch = enabled
	return b
}

// WithMQTT publishes presented planes to topic on broker. An empty topic
// keeps the configured one.
func (b *Builder) WithMQTT(broker, topic string) *Builder {
	b.config.MQTT.Broker = broker
	if topic != "" {
		b.config.MQTT.Topic = topic
	}
	return b
}

// WithDebug enables the debug sink writing into dir.
func (b *Builder) WithDebug(dir string) *Builder {
	b.config.Debug.Enabled = true
	if dir != "" {
		b.config.Debug.Dir = dir
	}
	return b
}

// WithLogLevel sets the log level name.
func (b *Builder) WithLogLevel(level string) *Builder {
	b.config.LogLevel = level
	return b
}
