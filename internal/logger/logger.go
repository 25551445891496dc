package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

// maxLogSize 超过后轮转
const maxLogSize = 10 * 1024 * 1024

var (
	debugLog *os.File
	logPath  string
)

// DefaultDir returns ~/.dalmuti.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".dalmuti"), nil
}

// Init initializes the debug logger under dir, or ~/.dalmuti when dir is
// empty. The terminal UI owns stdout, so everything goes to the file.
func Init(dir string) error {
	logDir := dir
	if logDir == "" {
		var err error
		if logDir, err = DefaultDir(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// Create or append to debug.log
	path := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	// Rotate if file is too large
	if info, err := f.Stat(); err == nil && info.Size() > maxLogSize {
		_ = f.Close()
		backupPath := filepath.Join(logDir, fmt.Sprintf("debug.log.%d", time.Now().Unix()))
		_ = os.Rename(path, backupPath)
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create new log file: %w", err)
		}
	}

	Close()
	debugLog, logPath = f, path
	log.SetOutput(debugLog)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	LogInfo("Logger initialized, log file: %s", logPath)
	return nil
}

// InitWriter sends log output to w, e.g. stderr for batch tools.
func InitWriter(w io.Writer) {
	Close()
	logPath = ""
	log.SetOutput(w)
	log.SetFlags(log.Ltime | log.Lmicroseconds)
}

// Close closes the debug log file
func Close() {
	if debugLog != nil {
		_ = debugLog.Close()
		debugLog = nil
	}
}

// LogInfo logs an info message
func LogInfo(format string, args ...any) {
	log.Printf("[INFO] "+format, args...)
}

// LogError logs an error message
func LogError(format string, args ...any) {
	log.Printf("[ERROR] "+format, args...)
}

// LogPanic logs a panic with stack trace
func LogPanic(r any) {
	log.Printf("[PANIC] %v\n%s", r, debug.Stack())
}

// GetLogPath returns the current log file path, empty when logging to a writer.
func GetLogPath() string {
	return logPath
}
