// Package main provides the CLI entry point for frameview.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/frameview/pkg/adapters/filesink"
	"github.com/user/frameview/pkg/adapters/fswatch"
	"github.com/user/frameview/pkg/adapters/imagecodec"
	"github.com/user/frameview/pkg/adapters/logger"
	"github.com/user/frameview/pkg/adapters/mqttpub"
	"github.com/user/frameview/pkg/adapters/nullsink"
	"github.com/user/frameview/pkg/adapters/osfilesystem"
	"github.com/user/frameview/pkg/adapters/sixelterm"
	"github.com/user/frameview/pkg/adapters/xscaler"
	"github.com/user/frameview/pkg/config"
	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/playback"
	"github.com/user/frameview/pkg/ports"
	"github.com/user/frameview/pkg/stages/load"
	"github.com/user/frameview/pkg/summarizer"
	"github.com/user/frameview/pkg/viewer"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:        "frameview",
		Usage:       l10n.T("Play still images and animations at their authored timing"),
		Description: l10n.T("frameview decodes an image or animation and plays it on a resizable surface."),
		Version:     version,
		Commands: []*cli.Command{
			playCommand(),
			infoCommand(),
			versionCommand(),
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    l10n.T("Configuration file (YAML or TOML)"),
			Category: l10n.T("Configuration"),
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T("Logging"),
		},
	}
}

func playCommand() *cli.Command {
	flags := append(commonFlags(),
		&cli.IntFlag{
			Name:     "width",
			Aliases:  []string{"W"},
			Usage:    l10n.T("Surface width (default: 640)"),
			Category: l10n.T("Surface"),
		},
		&cli.IntFlag{
			Name:     "height",
			Aliases:  []string{"H"},
			Usage:    l10n.T("Surface height (default: 480)"),
			Category: l10n.T("Surface"),
		},
		&cli.StringFlag{
			Name:     "pixel-format",
			Usage:    l10n.T("Destination pixel format (xrgb8888, xbgr8888, rgb565)"),
			Category: l10n.T("Surface"),
		},
		&cli.StringSliceFlag{
			Name:     "resize",
			Usage:    l10n.T("Resize the surface during playback, as AFTER_MS:WIDTHxHEIGHT"),
			Category: l10n.T("Surface"),
		},
		&cli.StringFlag{
			Name:     "filter",
			Usage:    l10n.T("Resampling filter (nearest, approx-bilinear, catmull-rom)"),
			Category: l10n.T("Scaling"),
		},
		&cli.StringFlag{
			Name:     "fit",
			Usage:    l10n.T("Fit mode (stretch, contain)"),
			Category: l10n.T("Scaling"),
		},
		&cli.StringFlag{
			Name:     "background",
			Usage:    l10n.T("Letterbox color (hex, e.g., #000000)"),
			Category: l10n.T("Scaling"),
		},
		&cli.BoolFlag{
			Name:     "catch-up",
			Usage:    l10n.T("Skip frames whose time has passed after a stall"),
			Category: l10n.T("Playback"),
		},
		&cli.Float64Flag{
			Name:     "fps",
			Usage:    l10n.T("Render rate of the host loop"),
			Category: l10n.T("Playback"),
		},
		&cli.IntFlag{
			Name:     "duration",
			Usage:    l10n.T("Stop after this many milliseconds (0 = until interrupted)"),
			Category: l10n.T("Playback"),
		},
		&cli.BoolFlag{
			Name:     "watch",
			Usage:    l10n.T("Reload the file when it changes on disk"),
			Category: l10n.T("Playback"),
		},
		&cli.BoolFlag{
			Name:     "sixel",
			Usage:    l10n.T("Present frames on the terminal as sixel images"),
			Category: l10n.T("Output"),
		},
		&cli.BoolFlag{
			Name:     "dither",
			Usage:    l10n.T("Dither sixel output"),
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "summary",
			Aliases:  []string{"s"},
			Usage:    l10n.T("Output playback summary to file (Markdown format)"),
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "mqtt-broker",
			Usage:    l10n.T("Publish frames to this MQTT broker (e.g., tcp://localhost:1883)"),
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "mqtt-topic",
			Usage:    l10n.T("MQTT topic for published frames"),
			Category: l10n.T("Output"),
		},
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Enable debug output"),
			Category: l10n.T("Debug"),
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Directory for debug output"),
			Category: l10n.T("Debug"),
		},
	)

	return &cli.Command{
		Name:      "play",
		Usage:     l10n.T("Play an image or animation"),
		ArgsUsage: "<file>",
		Flags:     flags,
		Action:    runPlay,
	}
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     l10n.T("Show what a file decodes to"),
		ArgsUsage: "<file>",
		Flags:     commonFlags(),
		Action:    runInfo,
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("frameview version %s", version))
			return nil
		},
	}
}

// buildConfig layers command-line overrides onto the config file or the
// defaults.
func buildConfig(c *cli.Context) (config.Config, error) {
	base := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return base, fmt.Errorf("load config: %w", err)
		}
		base = loaded
	}

	b := config.NewBuilderFrom(base)

	if c.IsSet("width") || c.IsSet("height") {
		w, h := base.Window.Width, base.Window.Height
		if c.IsSet("width") {
			w = c.Int("width")
		}
		if c.IsSet("height") {
			h = c.Int("height")
		}
		b.WithSize(w, h)
	}
	if c.IsSet("pixel-format") {
		b.WithPixelFormat(c.String("pixel-format"))
	}
	if c.IsSet("filter") {
		b.WithFilter(c.String("filter"))
	}
	if c.IsSet("fit") {
		b.WithFit(c.String("fit"))
	}
	if c.IsSet("background") {
		b.WithBackground(c.String("background"))
	}
	if c.IsSet("catch-up") {
		b.WithCatchUp(c.Bool("catch-up"))
	}
	if c.IsSet("fps") {
		b.WithFPS(c.Float64("fps"))
	}
	if c.IsSet("duration") {
		b.WithDurationMs(c.Int("duration"))
	}
	if c.IsSet("watch") {
		b.WithWatch(c.Bool("watch"))
	}
	if c.IsSet("mqtt-broker") || c.IsSet("mqtt-topic") {
		broker := base.MQTT.Broker
		if c.IsSet("mqtt-broker") {
			broker = c.String("mqtt-broker")
		}
		b.WithMQTT(broker, c.String("mqtt-topic"))
	}
	for _, step := range c.StringSlice("resize") {
		after, w, h, err := parseResizeStep(step)
		if err != nil {
			return base, err
		}
		b.WithResize(after, w, h)
	}
	if c.Bool("debug") {
		b.WithDebug(c.String("debug-dir"))
	}
	if c.IsSet("log-level") {
		b.WithLogLevel(c.String("log-level"))
	}

	return b.Build()
}

// parseResizeStep parses "AFTER_MS:WIDTHxHEIGHT".
func parseResizeStep(s string) (afterMs, width, height int, err error) {
	after, size, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, 0, fmt.Errorf("invalid resize step %q: want AFTER_MS:WIDTHxHEIGHT", s)
	}
	if _, err := fmt.Sscanf(after, "%d", &afterMs); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid resize time %q: %w", after, err)
	}
	if _, err := fmt.Sscanf(size, "%dx%d", &width, &height); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid resize size %q: %w", size, err)
	}
	return afterMs, width, height, nil
}

func newLogger(c *cli.Context, cfg config.Config) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
}

// withInterrupt cancels the returned context on SIGINT or SIGTERM.
func withInterrupt(parent context.Context, log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

func newLoader(fs ports.FileSystem, sink ports.DebugSink, log ports.Logger) pipeline.Stage[pipeline.LoadInput, pipeline.Sequence] {
	return load.New(fs, imagecodec.New(), sink, log)
}

// loadFailed reports a load error on stderr whatever the log level, then
// exits with status 1.
func loadFailed(path string, err error) error {
	return cli.Exit(l10n.F("Failed to load %s: %s", path, err.Error()), 1)
}

func fileArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", errors.New(l10n.T("Exactly one file argument is required"))
	}
	return c.Args().First(), nil
}

func runPlay(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)

	ctx, cancel := withInterrupt(c.Context, log)
	defer cancel()

	fs := osfilesystem.New()

	var sink ports.DebugSink
	if cfg.Debug.Enabled {
		if err := fs.MkdirAll(cfg.Debug.Dir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.Debug.Dir, fs)
	} else {
		sink = nullsink.New()
	}

	log.Info("Loading %s", path)
	seq, err := newLoader(fs, sink, log).Execute(ctx, cfg.ToLoadInput(path))
	if err != nil {
		return loadFailed(path, err)
	}
	log.Info("Loaded %s sequence: %s, %dx%d, %d frames",
		seq.Kind.String(), seq.Format, seq.Size.Width, seq.Size.Height, seq.Len())

	presenter, err := newPresenter(c, cfg, log)
	if err != nil {
		return err
	}

	opts := cfg.ToPlaybackOptions()
	ctrl := playback.New(seq, xscaler.New(), opts, log)
	host := viewer.New(ctrl, presenter, sink, ports.SystemClock{}, cfg.ToViewerOptions(), log)

	if cfg.Host.Watch {
		if err := watchForReload(ctx, host, newLoader(fs, sink, log), cfg.ToLoadInput(path), opts, log); err != nil {
			log.Warn("Failed to watch %s: %s", path, err.Error())
		}
	}

	result, err := host.Run(ctx)
	if err != nil {
		return err
	}

	if out := c.String("summary"); out != "" {
		writeSummary(fs, log, out, path, result.Sequence, cfg, opts, result)
	}
	return nil
}

// newPresenter picks the surface: the terminal with --sixel, an MQTT topic
// when a broker is configured, otherwise nothing.
func newPresenter(c *cli.Context, cfg config.Config, log ports.Logger) (ports.Presenter, error) {
	switch {
	case c.Bool("sixel"):
		if !sixelterm.IsTerminal(os.Stdout) {
			log.Warn("Stdout is not a terminal, sixel output may be garbled")
		}
		return sixelterm.New(c.App.Writer, sixelterm.Options{Dither: c.Bool("dither")}), nil
	case cfg.MQTT.Broker != "":
		p, err := mqttpub.Connect(cfg.ToMQTTOptions(), log)
		if err != nil {
			return nil, fmt.Errorf("connect presenter: %w", err)
		}
		return p, nil
	default:
		return nullsink.NewPresenter(), nil
	}
}

// watchForReload loads the file again each time it changes and hands the
// host a controller for the new sequence. Failed loads keep the current
// sequence playing.
func watchForReload(
	ctx context.Context,
	host *viewer.Host,
	loader pipeline.Stage[pipeline.LoadInput, pipeline.Sequence],
	input pipeline.LoadInput,
	opts playback.Options,
	log ports.Logger,
) error {
	w, err := fswatch.New(input.Path, fswatch.DefaultDebounce, log)
	if err != nil {
		return err
	}
	log.Info("Watching %s for changes", w.Path())

	go w.Run(ctx, func() {
		seq, err := loader.Execute(ctx, input)
		if err != nil {
			log.Warn("Failed to reload %s: %s", input.Path, err.Error())
			return
		}
		host.Reload(playback.New(seq, xscaler.New(), opts, log))
	})
	return nil
}

func writeSummary(
	fs ports.FileSystem,
	log ports.Logger,
	out, path string,
	seq pipeline.Sequence,
	cfg config.Config,
	opts playback.Options,
	result viewer.Result,
) {
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	summary := summarizer.NewBuilder().
		WithSequence(path, size, seq).
		WithSettings(summarizer.Settings{
			Width:       cfg.Window.Width,
			Height:      cfg.Window.Height,
			PixelFormat: cfg.Window.PixelFormat,
			Filter:      opts.Scale.Filter.String(),
			Fit:         opts.Scale.Fit.String(),
			Policy:      opts.Policy.String(),
			FPS:         cfg.Host.FPS,
		}).
		WithResult(result).
		Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(func(s string) string { return l10n.T(s) }),
		summarizer.WithVersion(version),
	)
	if err := summarizer.NewWriter(formatter, fs).Write(out, summary); err != nil {
		log.Warn("Failed to write summary: %s", err.Error())
		return
	}
	log.Info("Summary saved to %s", out)
}

func runInfo(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)

	seq, err := newLoader(osfilesystem.New(), nullsink.New(), log).Execute(c.Context, cfg.ToLoadInput(path))
	if err != nil {
		return loadFailed(path, err)
	}

	printInfo(c.App.Writer, path, seq)
	return nil
}

func printInfo(w io.Writer, path string, seq pipeline.Sequence) {
	fmt.Fprintln(w, l10n.F("File: %s", path))
	fmt.Fprintln(w, l10n.F("Format: %s (%s)", seq.Format, seq.Kind.String()))
	fmt.Fprintln(w, l10n.F("Resolution: %dx%d", seq.Size.Width, seq.Size.Height))
	fmt.Fprintln(w, l10n.F("Frames: %d", seq.Len()))
	if !seq.IsAnimated() {
		return
	}

	fmt.Fprintln(w, l10n.F("Loop length: %dms", seq.TotalDuration().Milliseconds()))
	for i, d := range seq.Durations() {
		fmt.Fprintf(w, "  #%d  %s\n", i, d.Round(time.Millisecond))
	}
}
