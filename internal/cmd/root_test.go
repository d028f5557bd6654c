package cmd

import (
	"bytes"
	"strings"
	"testing"
)

// executeCommand runs the root command with args and returns its output
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	output, err := executeCommand(t, "--help")
	if err != nil {
		t.Fatalf("--help returned error: %v", err)
	}
	if !strings.Contains(output, "ethogram") {
		t.Errorf("Help text should contain 'ethogram', got: %s", output)
	}
	if !strings.Contains(output, "Trophallaxis") {
		t.Errorf("Help text should describe attribution, got: %s", output)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	if cmd.Use != "ethogram" {
		t.Errorf("Expected Use to be 'ethogram', got '%s'", cmd.Use)
	}

	want := map[string]bool{"process": false, "validate": false, "history": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRootCommandVersion(t *testing.T) {
	output, err := executeCommand(t, "--version")
	if err != nil {
		t.Fatalf("--version returned error: %v", err)
	}
	if !strings.Contains(output, Version) {
		t.Errorf("version output = %q, want containing %q", output, Version)
	}
}
