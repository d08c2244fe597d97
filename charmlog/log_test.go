package charmlog

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Writer: &buf, Level: "WARN"})
	l.Info("hidden")
	l.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info logged at WARN level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Fatalf("warn not logged: %q", out)
	}
}

func TestNewLogger_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Writer: &buf, Level: "LOUD"})
	l.Debug("debug line")
	l.Info("info line")
	if strings.Contains(buf.String(), "debug line") || !strings.Contains(buf.String(), "info line") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestOpenFile_CreatesDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "daytrack.log")
	f, err := OpenFile(p)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close() //nolint:errcheck

	l := NewLogger(Options{Writer: f, Level: "DEBUG"})
	l.Debug("written")
}
