package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/frameview/pkg/ports"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewWriter(ports.LevelInfo, &out, &errOut)

	log.Debug("hidden %d", 1)
	log.Info("Loaded %s", "a.gif")
	log.Warn("careful")
	log.Error("broken")

	if strings.Contains(out.String(), "hidden") {
		t.Error("expected debug message to be filtered")
	}
	if !strings.Contains(out.String(), "Loaded a.gif") {
		t.Errorf("expected formatted info message, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "careful") || !strings.Contains(errOut.String(), "broken") {
		t.Errorf("expected warn and error on error stream, got %q", errOut.String())
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var out bytes.Buffer
	log := NewWriter(ports.LevelDebug, &out, &out).WithComponent("resize")

	log.Debug("Invalidated %d entries", 3)

	if got := out.String(); got != "[resize] Invalidated 3 entries\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestConsoleLogger_Quiet(t *testing.T) {
	var out bytes.Buffer
	log := NewWriter(ports.LevelQuiet, &out, &out)

	log.Error("nothing")

	if out.Len() != 0 {
		t.Errorf("expected no output at quiet level, got %q", out.String())
	}
}

func TestNoopLogger(t *testing.T) {
	log := NewNoop()
	log.Info("ignored")
	if log.WithComponent("x") != log {
		t.Error("expected WithComponent to return the same no-op logger")
	}
}
