package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiGreen  = "\x1b[32m"
	ansiReset  = "\x1b[0m"
)

// ColorEnabled reports whether ANSI colors should be written to out.
// Only terminals get colors; files, pipes and buffers get plain text.
func ColorEnabled(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// colorize wraps s in code when out is a terminal
func colorize(out io.Writer, code, s string) string {
	if !ColorEnabled(out) {
		return s
	}
	return code + s + ansiReset
}

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files or ids (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning, in yellow on terminals
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion: ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	fmt.Fprint(out, colorize(out, ansiYellow, b.String()))
}

// WarnSkippedFiles reports input files ignored because of their type
func WarnSkippedFiles(files []string) Warning {
	title := fmt.Sprintf("%d file(s) in the input directory are not sheets and were skipped", len(files))
	if len(files) == 1 {
		title = "1 file in the input directory is not a sheet and was skipped"
	}
	return Warning{
		Title:      title,
		Files:      files,
		Suggestion: "Save observation exports as .xlsx or .csv",
	}
}

// WarnReusedIDs reports raw observation ids of file that were already
// assigned by an earlier file. Their rows share one canonical id.
func WarnReusedIDs(file string, ids []string) Warning {
	return Warning{
		Title:      fmt.Sprintf("%s reuses %d observation id(s) from earlier sheets", file, len(ids)),
		Message:    "Rows with these ids are merged with the earlier observations",
		Files:      ids,
		Suggestion: "Give every observation a unique id across all input sheets",
	}
}
