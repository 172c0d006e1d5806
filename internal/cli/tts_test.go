package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestScriptTextFromFlag uses the inline text as-is.
func TestScriptTextFromFlag(t *testing.T) {
	script, err := scriptText("hello there", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if script != "hello there" {
		t.Fatalf("unexpected script %q", script)
	}
}

// TestScriptTextFromFileFlattensNewlines joins file lines into one
// spoken line.
func TestScriptTextFromFileFlattensNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.txt")
	if err := os.WriteFile(path, []byte("first line\nsecond line\n\nthird  line\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	script, err := scriptText("", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if script != "first line second line third line" {
		t.Fatalf("unexpected script %q", script)
	}
}

// TestScriptTextRejectsBothSources refuses text and file together.
func TestScriptTextRejectsBothSources(t *testing.T) {
	if _, err := scriptText("hi", "script.txt"); err == nil {
		t.Fatalf("expected error")
	}
}

// TestScriptTextRequiresSomeSource refuses an empty script.
func TestScriptTextRequiresSomeSource(t *testing.T) {
	if _, err := scriptText("", ""); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := scriptText("   ", ""); err == nil {
		t.Fatalf("expected error for blank text")
	}
}

// TestSpeechLabelTruncatesLongScripts caps progress labels.
func TestSpeechLabelTruncatesLongScripts(t *testing.T) {
	long := strings.Repeat("word ", 40)
	label := speechLabel(long)
	if len(label) != 60 || !strings.HasSuffix(label, "...") {
		t.Fatalf("unexpected label %q", label)
	}
}
