package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogWriter returns console, or console plus a rotating log file when dir is set.
// The returned closer must be closed on shutdown.
func SetupLogWriter(dir string, console io.Writer) (io.Writer, io.Closer, error) {
	if dir == "" {
		return console, nopCloser{}, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "server.log"),
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     14, // days
		Compress:   true,
	}

	return io.MultiWriter(console, logFile), logFile, nil
}

// NewLogger builds the JSON slog logger used across the service
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Environment == "dev" || cfg.Debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
