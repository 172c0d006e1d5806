package cli

import (
	"bytes"
	"strings"
	"testing"
)

// TestRunWithoutArgsPrintsUsage exits with a usage code when no command
// is given.
func TestRunWithoutArgsPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(nil, &stdout, &stderr)
	if code != ExitUsage {
		t.Fatalf("expected usage exit code, got %d", code)
	}
	if !strings.Contains(stdout.String(), "Commands:") {
		t.Fatalf("expected command list, got %q", stdout.String())
	}
}

// TestRunHelpListsCommands prints usage and exits cleanly.
func TestRunHelpListsCommands(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"--help"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected ok exit code, got %d", code)
	}
	for _, name := range []string{"image", "tts", "dub", "transcribe", "video", "voices", "init", "validate"} {
		if !strings.Contains(stdout.String(), name) {
			t.Fatalf("expected usage to mention %s", name)
		}
	}
}

// TestRunUnknownCommand reports the bad name on stderr.
func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"bogus"}, &stdout, &stderr)
	if code != ExitUsage {
		t.Fatalf("expected usage exit code, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Unknown command: bogus") {
		t.Fatalf("expected unknown command message, got %q", stderr.String())
	}
}

// TestCommandHelpFlag prints per-command usage.
func TestCommandHelpFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"image", "--help"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected ok exit code, got %d", code)
	}
	if !strings.Contains(stdout.String(), "firefly image") {
		t.Fatalf("expected image usage, got %q", stdout.String())
	}
}
