// Package logging builds the charmbracelet/log loggers shared by the CLI,
// the SSH server and the sync server.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options select where and how much to log.
type Options struct {
	Level  string // debug, info, warn, error
	File   string // log file path; empty means Fallback
	Prefix string
}

// New returns a logger writing to opts.File, or to fallback when no file is
// set. The returned closer releases the file and is never nil.
func New(opts Options, fallback io.Writer) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nopCloser{}, fmt.Errorf("logging: %w", err)
		}
		level = l
	}

	w := fallback
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, closer, fmt.Errorf("logging: cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closer, fmt.Errorf("logging: cannot open log file: %w", err)
		}
		w, closer = f, f
	}
	if w == nil {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// With returns a child logger with a different prefix.
func With(parent *log.Logger, prefix string) *log.Logger {
	if parent == nil {
		return log.New(io.Discard)
	}
	return parent.WithPrefix(prefix)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
