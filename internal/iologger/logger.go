// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/evefrontier/fixgen/pkg/config"
)

var logFile *os.File

// Init initializes the global slog logger with the given configuration.
// Creates a fresh log file in logDir if destination is "file".
func Init(logDir string, cfg config.LogConfig) error {
	var writer io.Writer

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	case "file":
		logPath := filepath.Join(logDir, config.AppName+".log")
		file, err := os.Create(logPath)
		if err != nil {
			return CreateLogFileError(logPath, err)
		}
		Close()
		logFile = file
		writer = file
	default:
		writer = os.Stderr
	}

	slog.SetDefault(slog.New(newHandler(writer, cfg)))
	return nil
}

// Close releases the log file opened by Init, if any.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	level := parseLevel(cfg.Level)
	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	switch cfg.Format {
	case "text":
		return slog.NewTextHandler(w, handlerOpts)
	case "tint":
		return log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			Level:           charmLevel(level),
		})
	default:
		return slog.NewJSONHandler(w, handlerOpts)
	}
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func charmLevel(level slog.Level) log.Level {
	switch level {
	case slog.LevelDebug:
		return log.DebugLevel
	case slog.LevelWarn:
		return log.WarnLevel
	case slog.LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
