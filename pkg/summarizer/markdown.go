package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator translates headings and labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a formatter with English labels.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder
	t := f.translate

	fmt.Fprintf(&b, "# %s\n\n", t("Playback Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	f.row(&b, "File", s.Source.Path)
	f.row(&b, "Format", fmt.Sprintf("%s (%s)", s.Source.Format, t(s.Source.Kind)))
	f.row(&b, "Resolution", fmt.Sprintf("%dx%d", s.Source.Width, s.Source.Height))
	f.row(&b, "Frames", fmt.Sprintf("%d", s.Source.FrameCount))
	if s.Source.LoopDuration > 0 {
		f.row(&b, "Loop Length", formatDuration(s.Source.LoopDuration))
	}
	if s.Source.FileSize > 0 {
		f.row(&b, "File Size", formatBytes(s.Source.FileSize))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	f.row(&b, "Surface", fmt.Sprintf("%dx%d %s", s.Settings.Width, s.Settings.Height, s.Settings.PixelFormat))
	f.row(&b, "Scaling", fmt.Sprintf("%s / %s", s.Settings.Filter, s.Settings.Fit))
	f.row(&b, "Advance Policy", s.Settings.Policy)
	f.row(&b, "Render Rate", fmt.Sprintf("%.1f fps", s.Settings.FPS))
	b.WriteString("\n")

	p := s.Playback
	fmt.Fprintf(&b, "## %s\n\n", t("Playback"))
	f.row(&b, "Stopped By", t(p.StopReason))
	f.row(&b, "Wall Time", formatDuration(p.WallTime))
	f.row(&b, "Frames Presented", fmt.Sprintf("%d", p.Presented))
	if p.Skipped > 0 {
		f.row(&b, "Skipped Renders", fmt.Sprintf("%d", p.Skipped))
	}
	f.row(&b, "Frame Advances", fmt.Sprintf("%d", p.Advances))
	f.row(&b, "Resizes", fmt.Sprintf("%d", p.Resizes))
	if p.Reloads > 0 {
		f.row(&b, "Reloads", fmt.Sprintf("%d", p.Reloads))
	}
	f.row(&b, "Final Surface", fmt.Sprintf("%dx%d", p.FinalWidth, p.FinalHeight))
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Resize Cache"))
	f.row(&b, "Hits", fmt.Sprintf("%d", p.CacheHits))
	f.row(&b, "Misses", fmt.Sprintf("%d", p.CacheMisses))
	f.row(&b, "Invalidations", fmt.Sprintf("%d", p.Invalidations))
	f.row(&b, "Hit Rate", fmt.Sprintf("%.1f%%", p.HitRate()*100))
	b.WriteString("\n")

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		footer += fmt.Sprintf(" (frameview %s)", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func (f *MarkdownFormatter) row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "- **%s**: %s\n", f.translate(label), value)
}

// formatBytes formats a byte count with binary units.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < 2; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMG"[exp])
}

// formatDuration prints milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2f s", d.Seconds())
}
