// Package logger holds the process-wide structured logger shared by the
// command line tools and the terminal viewer.
package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger instance. It's initialized to discard all output by default.
// Call Init() to enable logging to a file.
var L *slog.Logger = slog.New(slog.DiscardHandler)

// logFile is the file behind L, closed when Init runs again.
var logFile *os.File

const (
	defaultPrefix = "hexkit-"
	logSuffix     = ".log"
	retentionDays = 30
)

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	LogDir  string     // Directory for log files. Default: ~/.hexkit/logs
	Level   slog.Level // Minimum log level. Default: LevelInfo when enabled
	Prefix  string     // File name prefix. Default: "hexkit-"
}

// Init configures logging. Call from main() before any log calls.
// If opts.Enabled is false, all log output is discarded.
func Init(opts Options) error {
	if !opts.Enabled {
		L = slog.New(slog.DiscardHandler)
		return closeLogFile()
	}

	logDir := opts.LogDir
	if logDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		logDir = filepath.Join(home, ".hexkit", "logs")
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}

	// Clean up old logs (best-effort, ignore errors)
	cleanOldLogs(logDir, prefix, time.Now())

	filename := filepath.Join(logDir, prefix+time.Now().Format("2006-01-02")+logSuffix)

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}

	prev := logFile
	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	logFile = f
	if prev != nil {
		return prev.Close()
	}
	return nil
}

func closeLogFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// cleanOldLogs removes log files older than retentionDays.
func cleanOldLogs(logDir, prefix string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}

		// Parse date from filename: hexkit-2024-01-05.log
		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, logSuffix), prefix)
		logDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		if logDate.Before(cutoff) {
			os.Remove(filepath.Join(logDir, name))
		}
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
