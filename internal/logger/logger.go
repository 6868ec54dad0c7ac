// Package logger writes diagnostics to a file so they never corrupt the
// alternate-screen TUI. Logging failures are swallowed.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
)

var (
	logFile *os.File
	mu      sync.Mutex
	enabled = true
)

const maxLogSize = 5 * 1024 * 1024

// Init opens the log file under the XDG state dir, rotating it once
// when it grows past maxLogSize.
func Init() error {
	logDir := filepath.Join(xdg.StateHome, "lstime")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	logPath := filepath.Join(logDir, "lstime.log")

	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		oldPath := logPath + ".old"
		os.Remove(oldPath)
		os.Rename(logPath, oldPath)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}

	mu.Lock()
	logFile = file
	mu.Unlock()
	return nil
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Disable turns logging off (used by tests).
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// Info logs an informational message.
func Info(format string, args ...any) {
	write("INFO", format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	write("WARN", format, args...)
}

// Error logs an error message.
func Error(format string, args ...any) {
	write("ERROR", format, args...)
}

func write(level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logFile == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(logFile, "[%s] %s: %s\n", timestamp, level, message)
}
