// Package charmlog provides an implementation of daytrack.Logger using charmbracelet/log
package charmlog

import (
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/benjamonnguyen/daytrack"
	"github.com/charmbracelet/log"
)

type Options struct {
	Writer io.Writer
	Level  string
	Prefix string
}

// NewLogger falls back to stdout and INFO when Writer or Level are unset or
// unparseable.
func NewLogger(opts Options) daytrack.Logger {
	var w io.Writer = os.Stdout
	if opts.Writer != nil {
		w = opts.Writer
	}

	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}

// OpenFile opens logPath for appending, creating its directory if needed.
// The caller closes the returned file.
func OpenFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(path.Dir(logPath), 0o744); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
