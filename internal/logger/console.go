// Package logger provides logging implementations for ethogram runs.
//
// The logger package offers leveled logging plus structured records of sheet
// integration and run summaries. Implementations are thread-safe and support
// console and file destinations.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/ethogram/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		// fatih/color honours NO_COLOR and non-TTY output
		return !color.NoColor
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
// Format: "[HH:MM:SS] [INFO] <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}
	cl.writer.Write([]byte(formatted))
}

// colorLevel returns level wrapped in its ANSI color
func colorLevel(level string) string {
	switch strings.ToUpper(level) {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// LogFileStart logs the start of a sheet integration at INFO level.
// Format: "[HH:MM:SS] Integrating <name> as treatment <t>"
func (cl *ConsoleLogger) LogFileStart(file models.SheetFile) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	name := file.Name()
	if cl.colorOutput {
		name = color.New(color.Bold).Sprint(name)
	}
	fmt.Fprintf(cl.writer, "[%s] Integrating %s as treatment %s\n", timestamp(), name, file.Treatment)
}

// LogFileResult logs one integrated sheet with run progress at INFO level.
// Format: "[HH:MM:SS] <name>: rows: N, observations: N, new ids: N, seconds: X [===   ] 1/3 (33%)"
func (cl *ConsoleLogger) LogFileResult(result models.FileResult, done, total int) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	var details string
	if cl.colorOutput {
		details = formatColorizedFileSummary(result.Summary)
	} else {
		details = formatFileSummary(result.Summary)
	}

	bar := NewProgressBar(total, 10, cl.colorOutput)
	bar.Update(done)

	fmt.Fprintf(cl.writer, "[%s] %s: %s %s\n", timestamp(), result.File.Name(), details, bar.Render())
}

// LogRunSummary logs the run summary at INFO level.
func (cl *ConsoleLogger) LogRunSummary(result models.RunResult) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	header := "=== Run Summary ==="
	status := result.Status
	if cl.colorOutput {
		header = color.New(color.Bold).Sprint(header)
		if result.Succeeded() {
			status = color.New(color.FgGreen).Sprint(status)
		} else {
			status = color.New(color.FgRed).Sprint(status)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", ts, header)
	fmt.Fprintf(&b, "[%s] Status: %s\n", ts, status)
	fmt.Fprintf(&b, "[%s] Files: %d\n", ts, len(result.Files))
	fmt.Fprintf(&b, "[%s] Rows: %d\n", ts, result.TotalRows())
	fmt.Fprintf(&b, "[%s] Observations: %d\n", ts, result.Observations)
	fmt.Fprintf(&b, "[%s] Duration: %s\n", ts, formatDuration(result.Duration))
	if result.CumulativePath != "" {
		fmt.Fprintf(&b, "[%s] Cumulative table: %s\n", ts, result.CumulativePath)
	}
	if result.AveragePath != "" {
		fmt.Fprintf(&b, "[%s] Average table: %s\n", ts, result.AveragePath)
	}
	if result.RunID != "" {
		fmt.Fprintf(&b, "[%s] History run: %s\n", ts, result.RunID)
	}
	if result.Error != nil {
		fmt.Fprintf(&b, "[%s] Error: %v\n", ts, result.Error)
	}

	cl.writer.Write([]byte(b.String()))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration formats a duration in a human-readable way.
// Examples: "450ms", "2.3s", "1m30s", "1h5m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		minutes := (d % time.Hour) / time.Minute
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

// NoOpLogger discards everything
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(message string)                                 {}
func (n *NoOpLogger) LogDebug(message string)                                 {}
func (n *NoOpLogger) LogInfo(message string)                                  {}
func (n *NoOpLogger) LogWarn(message string)                                  {}
func (n *NoOpLogger) LogError(message string)                                 {}
func (n *NoOpLogger) LogFileStart(file models.SheetFile)                      {}
func (n *NoOpLogger) LogFileResult(result models.FileResult, done, total int) {}
func (n *NoOpLogger) LogRunSummary(result models.RunResult)                   {}
