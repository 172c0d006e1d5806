package runner

import (
	"testing"
)

const timedTranscript = `[
	[0.0, 4.5, "Welcome to the show.", "Speaker 1"],
	[5.0, 65.2, "Thanks for having me.", "Speaker 2"]
]`

// TestParseTranscriptDecodesTimedSegments reads the four element array
// wire form.
func TestParseTranscriptDecodesTimedSegments(t *testing.T) {
	segments, err := ParseTranscript([]byte(timedTranscript))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	first := segments[0]
	if first.Start != 0.0 || first.End != 4.5 || first.Text != "Welcome to the show." || first.Speaker != "Speaker 1" {
		t.Fatalf("unexpected first segment %+v", first)
	}
}

// TestParseTranscriptRejectsShortSegments refuses entries missing
// fields.
func TestParseTranscriptRejectsShortSegments(t *testing.T) {
	if _, err := ParseTranscript([]byte(`[[0.0, 1.0, "hi"]]`)); err == nil {
		t.Fatalf("expected error for 3-field segment")
	}
}

// TestRenderTranscriptMarkdown groups segments under speaker headings
// with MM:SS time ranges.
func TestRenderTranscriptMarkdown(t *testing.T) {
	segments, err := ParseTranscript([]byte(timedTranscript))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := RenderTranscriptMarkdown(segments)
	want := "# Transcription\n\n" +
		"### Speaker 1\n\n*Time Range:* 00:00 - 00:04\n\nWelcome to the show.\n\n" +
		"### Speaker 2\n\n*Time Range:* 00:05 - 01:05\n\nThanks for having me.\n\n"
	if got != want {
		t.Fatalf("markdown mismatch:\ngot  %q\nwant %q", got, want)
	}
}
