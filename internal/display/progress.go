package display

import (
	"fmt"
	"io"
	"path/filepath"
)

// ProgressIndicator shows "[N/Total] name" lines for a multi-file operation
type ProgressIndicator struct {
	writer     io.Writer
	totalFiles int
	current    int
	failed     int
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:     w,
		totalFiles: total,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Validating %d sheet(s):\n", p.totalFiles)
}

// Step displays the next file
func (p *ProgressIndicator) Step(filename string) {
	p.current++
	line := fmt.Sprintf("  [%d/%d] %s", p.current, p.totalFiles, filepath.Base(filename))
	fmt.Fprintln(p.writer, colorize(p.writer, ansiCyan, line))
}

// Fail reports the error of the current file
func (p *ProgressIndicator) Fail(err error) {
	p.failed++
	fmt.Fprintf(p.writer, "        %s\n", err)
}

// Failed returns the number of failed steps
func (p *ProgressIndicator) Failed() int {
	return p.failed
}

// Complete displays the closing line
func (p *ProgressIndicator) Complete() {
	if p.failed > 0 {
		fmt.Fprintf(p.writer, "%d of %d sheet(s) failed validation\n", p.failed, p.totalFiles)
		return
	}
	fmt.Fprintf(p.writer, "%s Validated %d sheet(s)\n", colorize(p.writer, ansiGreen, "✓"), p.totalFiles)
}
