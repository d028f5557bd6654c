package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/ethogram/internal/models"
)

// FileLogger writes run events to a timestamped run-*.log file and keeps a
// latest.log symlink pointing at the most recent run.
// It is thread-safe and supports log level filtering.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a new FileLogger that writes to logDir with level "info".
func NewFileLogger(logDir string) (*FileLogger, error) {
	return NewFileLoggerWithLevel(logDir, "info")
}

// NewFileLoggerWithLevel creates a FileLogger with a custom log level.
func NewFileLoggerWithLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Generate timestamped filename: run-YYYYMMDD-HHMMSS.log
	stamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", stamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.writeRunLog("=== Ethogram Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// RunFile returns the path of the current run log
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogFileStart records the start of a sheet integration at INFO level.
func (fl *FileLogger) LogFileStart(file models.SheetFile) {
	if !fl.shouldLog("info") {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] Integrating %s (treatment %s)\n", timestamp(), file.Path, file.Treatment))
}

// LogFileResult records an integrated sheet at INFO level, listing reused raw ids.
func (fl *FileLogger) LogFileResult(result models.FileResult, done, total int) {
	if !fl.shouldLog("info") {
		return
	}

	message := fmt.Sprintf("[%s] %s complete (%d/%d): %s, elapsed %s\n",
		timestamp(), result.File.Name(), done, total, formatFileSummary(result.Summary), formatDuration(result.Elapsed))
	if len(result.Summary.ReusedRawIDs) > 0 {
		message += fmt.Sprintf("[%s]   reused raw ids: %s\n", timestamp(), strings.Join(result.Summary.ReusedRawIDs, ", "))
	}
	fl.writeRunLog(message)
}

// LogRunSummary records the run summary with per-file statistics at INFO level.
func (fl *FileLogger) LogRunSummary(result models.RunResult) {
	if !fl.shouldLog("info") {
		return
	}

	ts := timestamp()
	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] === RUN SUMMARY ===\n", ts)
	fmt.Fprintf(&b, "[%s] Status:       %s\n", ts, result.Status)
	fmt.Fprintf(&b, "[%s] Files:        %d\n", ts, len(result.Files))
	fmt.Fprintf(&b, "[%s] Rows:         %d\n", ts, result.TotalRows())
	fmt.Fprintf(&b, "[%s] Observations: %d\n", ts, result.Observations)
	fmt.Fprintf(&b, "[%s] Categories:   %d\n", ts, result.Categories)
	fmt.Fprintf(&b, "[%s] Seconds:      %.1f\n", ts, result.TotalDuration())
	fmt.Fprintf(&b, "[%s] Total time:   %.1fs\n", ts, result.Duration.Seconds())
	for _, f := range result.Files {
		fmt.Fprintf(&b, "[%s]   - %s (treatment %s): %s\n", ts, f.File.Name(), f.File.Treatment, formatFileSummary(f.Summary))
	}
	if result.Error != nil {
		fmt.Fprintf(&b, "[%s] Error: %v\n", ts, result.Error)
	}
	fl.writeRunLog(b.String())
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}
	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
