// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the structured logger shared by the CLI and the
// HTTP server. Logs go to stderr, or to a size-rotated file when log.file is
// configured.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pdiddy/content-engine/pkg/types"
)

// ParseLevel maps a log.level value (debug, info, warn, error) to a slog
// level. An empty value is info.
func ParseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level %q not supported: use debug, info, warn, or error", s)
	}
	return level, nil
}

// Output returns the log sink for cfg: a rotating file when cfg.File is set,
// otherwise fallback. The returned closer is a no-op for fallback.
func Output(cfg types.LogConfig, fallback io.Writer) (io.Writer, io.Closer, error) {
	if cfg.File == "" {
		return fallback, nopCloser{}, nil
	}

	logfile, err := filepath.Abs(cfg.File)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving log file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(logfile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   logfile,
		MaxSize:    cfg.MaxSizeMB, // megabytes
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays, // days
		LocalTime:  true,
	}
	return lj, lj, nil
}

// New builds a text logger writing to w at cfg.Level.
func New(cfg types.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// Setup builds the logger for cfg, installs it as the slog default, and
// points gin's writers at the same sink. Callers close the returned closer
// on exit.
func Setup(cfg types.LogConfig, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	out, closer, err := Output(cfg, fallback)
	if err != nil {
		return nil, nil, err
	}
	logger, err := New(cfg, out)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}

	slog.SetDefault(logger)
	gin.DefaultWriter = out
	gin.DefaultErrorWriter = out
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
