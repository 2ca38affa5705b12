package cmd

import (
	"io"
	"log/slog"

	"github.com/xvierd/pomo/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerResult contains the results of setting up file logging.
type LoggerResult struct {
	Logger   *slog.Logger
	LogFile  io.WriteCloser
	FilePath string
}

// Close closes the log file if it was opened.
func (r *LoggerResult) Close() error {
	if r.LogFile != nil {
		return r.LogFile.Close()
	}
	return nil
}

// SetupLogger creates a logger that writes to a rotating file instead of
// stderr, so log output never corrupts the TUI. The caller must close it.
func SetupLogger(cfg config.LogConfig, level slog.Leveler) *LoggerResult {
	writer := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	return &LoggerResult{
		Logger:   SetupLoggerWithWriter(writer, level),
		LogFile:  writer,
		FilePath: cfg.File,
	}
}

// SetupLoggerWithWriter creates a logger that writes to the given writer.
func SetupLoggerWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
