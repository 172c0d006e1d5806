package runner

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TranscriptSegment is one timed entry of a transcription result. The
// wire form is a four element array: start seconds, end seconds, text,
// and speaker label.
type TranscriptSegment struct {
	Start   float64
	End     float64
	Text    string
	Speaker string
}

func (s *TranscriptSegment) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 4 {
		return fmt.Errorf("transcript segment has %d fields, want 4", len(raw))
	}
	if err := json.Unmarshal(raw[0], &s.Start); err != nil {
		return fmt.Errorf("transcript segment start: %w", err)
	}
	if err := json.Unmarshal(raw[1], &s.End); err != nil {
		return fmt.Errorf("transcript segment end: %w", err)
	}
	if err := json.Unmarshal(raw[2], &s.Text); err != nil {
		return fmt.Errorf("transcript segment text: %w", err)
	}
	if err := json.Unmarshal(raw[3], &s.Speaker); err != nil {
		return fmt.Errorf("transcript segment speaker: %w", err)
	}
	return nil
}

// ParseTranscript decodes a timed transcription document.
func ParseTranscript(data []byte) ([]TranscriptSegment, error) {
	var segments []TranscriptSegment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}
	return segments, nil
}

// RenderTranscriptMarkdown formats timed segments as a markdown document
// with one section per speaker turn.
func RenderTranscriptMarkdown(segments []TranscriptSegment) string {
	var b strings.Builder
	b.WriteString("# Transcription\n\n")
	for _, segment := range segments {
		fmt.Fprintf(&b, "### %s\n\n", segment.Speaker)
		fmt.Fprintf(&b, "*Time Range:* %s - %s\n\n", transcriptTimestamp(segment.Start), transcriptTimestamp(segment.End))
		b.WriteString(segment.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// transcriptTimestamp renders seconds as MM:SS.
func transcriptTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
