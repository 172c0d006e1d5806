package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteRunOutputs writes the results record under the output directory
// and returns the results file path.
func WriteRunOutputs(results Results, outputDir string) (string, error) {
	if outputDir == "" {
		return "", fmt.Errorf("output directory is required")
	}
	runDir := filepath.Join(outputDir, "runs", results.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}
	resultsPath := filepath.Join(runDir, "results.json")
	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(resultsPath, payload, 0o644); err != nil {
		return "", fmt.Errorf("write results: %w", err)
	}
	return resultsPath, nil
}
