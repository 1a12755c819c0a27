// Package logging builds the process-wide slog logger, optionally teeing
// output into a size-rotated file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes the desired logging configuration.
type Config struct {
	Level          string `yaml:"level"`
	Format         string `yaml:"format"`
	FilePath       string `yaml:"file_path,omitempty"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb,omitempty"`
	FileMaxFiles   int    `yaml:"file_max_files,omitempty"`
	FileMaxAgeDays int    `yaml:"file_max_age_days,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:          "info",
		Format:         "text",
		FileMaxSizeMB:  100,
		FileMaxFiles:   3,
		FileMaxAgeDays: 30,
	}
}

// Manager owns the logger's file writer lifecycle.
type Manager struct {
	closer io.Closer // lumberjack writer, if any
}

// New creates a Manager and a ready-to-use logger.
func New(cfg Config) (*Manager, *slog.Logger) {
	writer, closer := buildWriter(cfg)

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	return &Manager{closer: closer}, slog.New(handler)
}

// Close releases the log file writer, if any.
func (m *Manager) Close() error {
	if m.closer != nil {
		err := m.closer.Close()
		m.closer = nil
		return err
	}
	return nil
}

// parseLevel converts a string to slog.Level, defaulting to Info.
func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel returns true if s is a recognized log level.
func ValidLevel(s string) bool {
	switch s {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// ValidFormat returns true if s is a recognized log format.
func ValidFormat(s string) bool {
	switch s {
	case "text", "json":
		return true
	}
	return false
}

// buildWriter creates the io.Writer for log output. With a file path
// configured it returns a MultiWriter (stderr + lumberjack) and the
// lumberjack logger as the closer.
func buildWriter(cfg Config) (io.Writer, io.Closer) {
	if cfg.FilePath == "" {
		return os.Stderr, nil
	}

	maxSize := cfg.FileMaxSizeMB
	if maxSize <= 0 {
		maxSize = 100
	}
	maxFiles := cfg.FileMaxFiles
	if maxFiles <= 0 {
		maxFiles = 3
	}
	maxAge := cfg.FileMaxAgeDays
	if maxAge <= 0 {
		maxAge = 30
	}

	lj := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    maxSize,
		MaxBackups: maxFiles,
		MaxAge:     maxAge,
		Compress:   false,
	}

	return io.MultiWriter(os.Stderr, lj), lj
}

// String returns a human-readable summary of the config.
func (c Config) String() string {
	s := fmt.Sprintf("level=%s format=%s", c.Level, c.Format)
	if c.FilePath != "" {
		s += fmt.Sprintf(" file=%s max_size=%dMB max_files=%d max_age=%dd",
			c.FilePath, c.FileMaxSizeMB, c.FileMaxFiles, c.FileMaxAgeDays)
	}
	return s
}
