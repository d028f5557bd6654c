package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/ethogram/internal/behavior"
)

// colorScheme defines consistent colors for summary metrics.
// Green: newly assigned ids
// Yellow: reused raw ids
// Cyan: labels
type colorScheme struct {
	success *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single metric with colorized label and value.
// Format: "label: value"
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), scheme.value.Sprintf("%v", value))
}

// formatFileSummary formats a file summary without colors.
// Format: "rows: N, observations: N, new ids: N, seconds: X.X"
func formatFileSummary(s behavior.FileSummary) string {
	parts := []string{
		fmt.Sprintf("rows: %d", s.Rows),
		fmt.Sprintf("observations: %d", s.Observations),
		fmt.Sprintf("new ids: %d", s.NewIDs),
		fmt.Sprintf("seconds: %.1f", s.TotalDuration),
	}
	if len(s.ReusedRawIDs) > 0 {
		parts = append(parts, fmt.Sprintf("reused ids: %d", len(s.ReusedRawIDs)))
	}
	return strings.Join(parts, ", ")
}

// formatColorizedFileSummary formats a file summary with color coding.
// Reused raw ids are yellow since they merge observations across files.
func formatColorizedFileSummary(s behavior.FileSummary) string {
	scheme := newColorScheme()
	parts := []string{
		formatColorizedMetric("rows", s.Rows, scheme),
		formatColorizedMetric("observations", s.Observations, scheme),
		fmt.Sprintf("%s: %s", scheme.success.Sprint("new ids"), scheme.value.Sprintf("%d", s.NewIDs)),
		formatColorizedMetric("seconds", fmt.Sprintf("%.1f", s.TotalDuration), scheme),
	}
	if len(s.ReusedRawIDs) > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.warn.Sprint("reused ids"), scheme.warn.Sprintf("%d", len(s.ReusedRawIDs))))
	}
	return strings.Join(parts, ", ")
}
