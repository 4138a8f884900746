// Package config holds engine-wide settings normally supplied by the
// controller at bootstrap, parsed from persistent flags in the same style
// as the diagnostics CLI's root command.
package config

import (
	"log/slog"
	"os"

	"wiresplice/bootstrap"
	"wiresplice/logging"
)

// Settings is the resolved bootstrap configuration: log level/format, log
// file path, and the two bus endpoint names.
type Settings struct {
	LogLevel    slog.Level
	LogFormat   string
	LogFile     string
	Debug       bool
	CommandPipe string
	DataPipe    string
}

// DefaultSettings returns the engine's out-of-the-box configuration: info
// level, text format, stderr output, and the well-known pipe names a
// controller dials by convention.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:    slog.LevelInfo,
		LogFormat:   "text",
		CommandPipe: `\\.\pipe\wiresplice-cmd`,
		DataPipe:    `\\.\pipe\wiresplice-data`,
	}
}

// LoggingConfig builds a logging.Config from the settings, opening LogFile
// if set and falling back to stderr on failure.
func (s Settings) LoggingConfig() logging.Config {
	level := s.LogLevel
	if s.Debug {
		level = slog.LevelDebug
	}

	output := os.Stderr
	if s.LogFile != "" {
		if f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); err == nil {
			return logging.Config{Level: level, Format: s.LogFormat, Output: f}
		}
	}
	return logging.Config{Level: level, Format: s.LogFormat, Output: output}
}

// BootstrapConfig adapts Settings into a bootstrap.Config, the shape the
// worker's Run entry point expects.
func (s Settings) BootstrapConfig() bootstrap.Config {
	return bootstrap.Config{
		Logging:     s.LoggingConfig(),
		CommandPipe: s.CommandPipe,
		DataPipe:    s.DataPipe,
	}
}
