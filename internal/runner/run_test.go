package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"firefly/internal/config"
	"firefly/internal/firefly"
	"firefly/internal/spec"
	"firefly/pkg/pipeline"
)

// runConfig returns a normalized config writing under dir.
func runConfig(dir string) spec.Config {
	cfg := spec.Config{Version: 1}
	config.Normalize(&cfg)
	cfg.Output.Dir = dir
	return cfg
}

// TestRunWritesResultsRecord runs a small batch end to end against a
// stub API and checks the persisted record.
func TestRunWritesResultsRecord(t *testing.T) {
	var server *httptest.Server
	client, server := newAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v3/images/generate-async":
			var req firefly.ImageRequest
			json.NewDecoder(r.Body).Decode(&req)
			if strings.Contains(req.Prompt, "reject") {
				http.Error(w, `{"message":"prompt rejected"}`, http.StatusBadRequest)
				return
			}
			// Terminal at submit so the test never sleeps through a poll.
			fmt.Fprintf(w, `{"jobId":"job-%s","statusUrl":"%s/status/%s","status":"succeeded"}`,
				req.Prompt, server.URL, req.Prompt)
		case strings.HasPrefix(r.URL.Path, "/status/"):
			name := strings.TrimPrefix(r.URL.Path, "/status/")
			fmt.Fprintf(w, `{"status":"succeeded","result":{"outputs":[{"image":{"url":"%s/files/%s.png"}}]}}`,
				server.URL, name)
		default:
			w.Write([]byte("image-bytes"))
		}
	})

	dir := t.TempDir()
	units := make([]pipeline.WorkUnit, 3)
	for i := range units {
		prompt := fmt.Sprintf("p%d", i)
		if i == 1 {
			prompt = "reject"
		}
		units[i] = pipeline.WorkUnit{
			Index:      i,
			Kind:       "image",
			Label:      prompt,
			OutputPath: filepath.Join(dir, prompt+".png"),
			Params:     ImageUnit{Request: firefly.ImageRequest{Prompt: prompt, NumVariations: 1, ModelVersion: "image4_standard"}},
		}
	}

	results, err := Run(context.Background(), Options{
		Config:  runConfig(dir),
		Client:  client,
		Command: "image",
		Units:   units,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if results.Summary.Succeeded != 2 || results.Summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", results.Summary)
	}
	if results.Entries[1].Outcome != pipeline.OutcomeFailed {
		t.Fatalf("expected entry 1 failed, got %+v", results.Entries[1])
	}
	if !strings.Contains(results.Entries[1].Error, "prompt rejected") {
		t.Fatalf("expected remote message, got %q", results.Entries[1].Error)
	}

	resultsPath := filepath.Join(dir, "runs", results.RunID, "results.json")
	data, err := os.ReadFile(resultsPath)
	if err != nil {
		t.Fatalf("read results record: %v", err)
	}
	var persisted Results
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("decode results record: %v", err)
	}
	if persisted.RunID != results.RunID || len(persisted.Entries) != 3 {
		t.Fatalf("unexpected persisted record %+v", persisted)
	}

	for _, i := range []int{0, 2} {
		if len(results.Entries[i].Outputs) != 1 {
			t.Fatalf("entry %d outputs: %v", i, results.Entries[i].Outputs)
		}
		if _, err := os.Stat(results.Entries[i].Outputs[0]); err != nil {
			t.Fatalf("entry %d output missing: %v", i, err)
		}
	}
}

// TestRunRequiresUnits rejects empty batches.
func TestRunRequiresUnits(t *testing.T) {
	client, _ := newAPIClient(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := Run(context.Background(), Options{Config: runConfig(t.TempDir()), Client: client})
	if err == nil {
		t.Fatalf("expected error for empty batch")
	}
}

// TestRenderReportTable shows outcomes, outputs, and the summary line.
func TestRenderReportTable(t *testing.T) {
	results := Results{
		Summary: pipeline.Summary{Total: 2, Succeeded: 1, Failed: 1},
		Entries: []pipeline.Entry{
			{Index: 0, Kind: "image", Label: "boat", Outcome: pipeline.OutcomeSucceeded, Outputs: []string{"out/boat.png"}},
			{Index: 1, Kind: "image", Label: "plane", Outcome: pipeline.OutcomeFailed, Error: "prompt rejected"},
		},
	}
	var buf strings.Builder
	if err := RenderReportTable(&buf, results); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"boat", "out/boat.png", "prompt rejected", "2 total, 1 succeeded, 1 failed, 0 canceled"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}

// TestNewRunIDFormat embeds the UTC timestamp prefix.
func TestNewRunIDFormat(t *testing.T) {
	id := NewRunID()
	if len(id) < len("20060102T150405Z-") {
		t.Fatalf("unexpected run id %q", id)
	}
	if id[8] != 'T' || id[15] != 'Z' || id[16] != '-' {
		t.Fatalf("unexpected run id shape %q", id)
	}
}
