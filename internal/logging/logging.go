// Package logging builds the charmbracelet/log loggers used by the CLI and
// the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/loaishar/RealEstateManager/internal/config"
)

// New returns a logger writing to w at the named level. An empty level
// means info.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		var err error
		lvl, err = log.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "remanager",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}), nil
}

// ForCLI logs to stderr. Quiet mode only reports errors.
func ForCLI(cfg config.LogConfig, quiet bool) (*log.Logger, error) {
	level := cfg.Level
	if quiet {
		level = "error"
	}
	return New(os.Stderr, level)
}

// ForTUI logs to the configured file, or discards output when none is set,
// so the alternate screen stays clean. The returned closer releases the file.
func ForTUI(cfg config.LogConfig) (*log.Logger, io.Closer, error) {
	if cfg.File == "" {
		logger, err := New(io.Discard, cfg.Level)
		return logger, nopCloser{}, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600) //nolint:gosec // path from config
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger, err := New(f, cfg.Level)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	logger.SetFormatter(log.LogfmtFormatter)
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
