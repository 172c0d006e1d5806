package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"firefly/internal/runner"
	"firefly/internal/spec"
	"firefly/pkg/pipeline"
)

// TestIsRemoteURL distinguishes hosted media from local paths.
func TestIsRemoteURL(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{input: "https://example.com/talk.mp4", want: true},
		{input: "http://example.com/talk.wav", want: true},
		{input: "talk.mp4", want: false},
		{input: "/media/talk.mp4", want: false},
	}
	for _, tc := range cases {
		if got := isRemoteURL(tc.input); got != tc.want {
			t.Fatalf("isRemoteURL(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

// TestTranscribeStagesLocalFiles uploads non-URL inputs before
// submitting.
func TestTranscribeStagesLocalFiles(t *testing.T) {
	originalRun := runBatchFn
	originalStage := stageFile
	t.Cleanup(func() {
		runBatchFn = originalRun
		stageFile = originalStage
	})

	staged := ""
	stageFile = func(_ context.Context, _ spec.Config, path string) (string, error) {
		staged = path
		return "https://example.blob.core.windows.net/staging/talk.mp4?sig=x", nil
	}
	var gotUnits []pipeline.WorkUnit
	runBatchFn = func(_ context.Context, _ spec.Config, command string, units []pipeline.WorkUnit, _ bool, _, _ io.Writer) (runner.Results, error) {
		gotUnits = units
		report := pipeline.Report{Entries: make([]pipeline.Entry, len(units))}
		return runner.Results{RunID: "run-1", Command: command, Summary: report.Summarize()}, nil
	}

	var stdout, stderr bytes.Buffer
	code := Run([]string{"transcribe", "-i", "talk.mp4", "-o", "talk.json", "--ui", "plain", "--silent"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected ok exit, got %d (stderr %q)", code, stderr.String())
	}
	if staged != "talk.mp4" {
		t.Fatalf("expected local file staged, got %q", staged)
	}
	params := gotUnits[0].Params.(runner.TranscribeUnit)
	if params.Request.Source.URL != "https://example.blob.core.windows.net/staging/talk.mp4?sig=x" {
		t.Fatalf("expected staged URL in request, got %q", params.Request.Source.URL)
	}
	if params.Request.Source.MediaType != "video" {
		t.Fatalf("expected video media type, got %q", params.Request.Source.MediaType)
	}
}

// TestTranscribeOutputTypes maps the output type flag onto the request
// format and the markdown rendering switch.
func TestTranscribeOutputTypes(t *testing.T) {
	cases := []struct {
		name       string
		args       []string
		wantFormat string
		wantMD     bool
	}{
		{"default json", nil, "json", false},
		{"text", []string{"-ot", "text"}, "text", false},
		{"text-only shorthand", []string{"-text"}, "text", false},
		{"markdown", []string{"-ot", "markdown"}, "json", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			originalRun := runBatchFn
			t.Cleanup(func() { runBatchFn = originalRun })

			var gotUnits []pipeline.WorkUnit
			runBatchFn = func(_ context.Context, _ spec.Config, command string, units []pipeline.WorkUnit, _ bool, _, _ io.Writer) (runner.Results, error) {
				gotUnits = units
				report := pipeline.Report{Entries: make([]pipeline.Entry, len(units))}
				return runner.Results{RunID: "run-1", Command: command, Summary: report.Summarize()}, nil
			}

			args := append([]string{"transcribe", "-i", "https://media/talk.mp4", "-o", "talk.out", "--ui", "plain", "--silent"}, tc.args...)
			var stdout, stderr bytes.Buffer
			if code := Run(args, &stdout, &stderr); code != ExitOK {
				t.Fatalf("expected ok exit, got %d (stderr %q)", code, stderr.String())
			}
			params := gotUnits[0].Params.(runner.TranscribeUnit)
			if params.Request.Output.Format != tc.wantFormat {
				t.Fatalf("format = %q, want %q", params.Request.Output.Format, tc.wantFormat)
			}
			if params.RenderMarkdown != tc.wantMD {
				t.Fatalf("render markdown = %v, want %v", params.RenderMarkdown, tc.wantMD)
			}
		})
	}
}

// TestTranscribeRejectsUnknownOutputType fails fast on unsupported
// formats.
func TestTranscribeRejectsUnknownOutputType(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"transcribe", "-i", "https://media/talk.mp4", "-o", "talk.out", "-ot", "pdf"}, &stdout, &stderr)
	if code != ExitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
}
