package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWarningDisplay(t *testing.T) {
	var buf bytes.Buffer
	Warning{
		Title:      "Something odd",
		Message:    "details",
		Files:      []string{"a.txt", "b.txt"},
		Suggestion: "fix it",
	}.Display(&buf)

	got := buf.String()
	want := "Warning: Something odd\n    details\n      1. a.txt\n      2. b.txt\n    Suggestion: fix it\n"
	if got != want {
		t.Errorf("Display() =\n%q\nwant\n%q", got, want)
	}
	if strings.Contains(got, "\x1b[") {
		t.Error("buffers must not receive ANSI codes")
	}
}

func TestWarningDisplayTitleOnly(t *testing.T) {
	var buf bytes.Buffer
	Warning{Title: "Only title"}.Display(&buf)
	if buf.String() != "Warning: Only title\n" {
		t.Errorf("Display() = %q", buf.String())
	}
}

func TestWarnSkippedFiles(t *testing.T) {
	w := WarnSkippedFiles([]string{"notes.txt"})
	if !strings.Contains(w.Title, "1 file") {
		t.Errorf("Title = %q", w.Title)
	}
	if w.Suggestion == "" {
		t.Error("expected a suggestion")
	}

	w = WarnSkippedFiles([]string{"a.txt", "b.pdf"})
	if !strings.Contains(w.Title, "2 file(s)") || len(w.Files) != 2 {
		t.Errorf("Title = %q, Files = %v", w.Title, w.Files)
	}
}

func TestWarnReusedIDs(t *testing.T) {
	w := WarnReusedIDs("day2.xlsx", []string{"A1", "A2"})
	if !strings.Contains(w.Title, "day2.xlsx reuses 2 observation id(s)") {
		t.Errorf("Title = %q", w.Title)
	}
	if len(w.Files) != 2 || w.Files[0] != "A1" {
		t.Errorf("Files = %v", w.Files)
	}
}

func TestColorEnabledNonFile(t *testing.T) {
	if ColorEnabled(&bytes.Buffer{}) {
		t.Error("ColorEnabled() should be false for buffers")
	}
}

func TestProgressIndicator(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressIndicator(&buf, 2)
	p.Start()
	p.Step("/in/a.xlsx")
	p.Step("/in/b.csv")
	p.Fail(errors.New("row 3: bad"))
	p.Complete()

	out := buf.String()
	for _, want := range []string{"Validating 2 sheet(s):", "[1/2] a.xlsx", "[2/2] b.csv", "row 3: bad", "1 of 2 sheet(s) failed validation"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if p.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", p.Failed())
	}
}

func TestProgressIndicatorSuccess(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressIndicator(&buf, 1)
	p.Step("x.csv")
	p.Complete()
	if !strings.Contains(buf.String(), "✓ Validated 1 sheet(s)") {
		t.Errorf("output = %q", buf.String())
	}
}
