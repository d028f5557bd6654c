package logger

import "github.com/harrison/ethogram/internal/models"

// RunLogger is implemented by every logger in this package
type RunLogger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogFileStart(file models.SheetFile)
	LogFileResult(result models.FileResult, done, total int)
	LogRunSummary(result models.RunResult)
}

// MultiLogger forwards every call to each of its loggers in order
type MultiLogger struct {
	loggers []RunLogger
}

// NewMultiLogger creates a MultiLogger, skipping nil entries
func NewMultiLogger(loggers ...RunLogger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) LogTrace(message string) {
	for _, l := range m.loggers {
		l.LogTrace(message)
	}
}

func (m *MultiLogger) LogDebug(message string) {
	for _, l := range m.loggers {
		l.LogDebug(message)
	}
}

func (m *MultiLogger) LogInfo(message string) {
	for _, l := range m.loggers {
		l.LogInfo(message)
	}
}

func (m *MultiLogger) LogWarn(message string) {
	for _, l := range m.loggers {
		l.LogWarn(message)
	}
}

func (m *MultiLogger) LogError(message string) {
	for _, l := range m.loggers {
		l.LogError(message)
	}
}

func (m *MultiLogger) LogFileStart(file models.SheetFile) {
	for _, l := range m.loggers {
		l.LogFileStart(file)
	}
}

func (m *MultiLogger) LogFileResult(result models.FileResult, done, total int) {
	for _, l := range m.loggers {
		l.LogFileResult(result, done, total)
	}
}

func (m *MultiLogger) LogRunSummary(result models.RunResult) {
	for _, l := range m.loggers {
		l.LogRunSummary(result)
	}
}
