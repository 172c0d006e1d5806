// Package runner assembles and executes batch runs: a shared rate
// limiter, the submit/poll/save pipeline, and per-run result records on
// disk.
package runner

import (
	"context"
	"fmt"
	"time"

	"firefly/internal/config"
	"firefly/internal/firefly"
	"firefly/internal/spec"
	"firefly/pkg/pipeline"
	"firefly/pkg/ratelimit"
)

// Options configures one batch run.
type Options struct {
	Config   spec.Config
	Client   *firefly.Client
	Command  string
	Units    []pipeline.WorkUnit
	Observer pipeline.Observer

	// SkipResults suppresses the results.json record, used by probe
	// commands like voices.
	SkipResults bool
}

// Run executes all units and persists the results record. The returned
// results are complete even when the context is cancelled mid-run.
func Run(ctx context.Context, opts Options) (Results, error) {
	if opts.Client == nil {
		return Results{}, fmt.Errorf("client is required")
	}
	if len(opts.Units) == 0 {
		return Results{}, fmt.Errorf("no work units to run")
	}

	limiter, err := ratelimit.New(opts.Config.Throttle.Limit, config.ThrottleWindow(opts.Config))
	if err != nil {
		return Results{}, fmt.Errorf("rate limiter: %w", err)
	}
	adapter := newService(opts.Client)
	orchestrator := pipeline.NewOrchestrator(adapter, adapter, limiter, pipeline.Options{
		Retry:    config.RetryPolicy(opts.Config),
		Poll:     config.PollConfig(opts.Config),
		Observer: opts.Observer,
	})

	runID := NewRunID()
	started := time.Now()
	if hook, ok := opts.Observer.(RunObserver); ok {
		hook.OnRunStart(runID, opts.Command)
	}
	report := orchestrator.Run(ctx, opts.Units)
	results := NewResults(runID, opts.Command, started, time.Now(), report)
	if hook, ok := opts.Observer.(RunObserver); ok {
		hook.OnRunEnd(results)
	}

	if !opts.SkipResults {
		if _, err := WriteRunOutputs(results, opts.Config.Output.Dir); err != nil {
			return results, err
		}
	}
	return results, nil
}

// RunObserver extends pipeline.Observer with run lifecycle hooks. The
// live UI implements it; plain observers need not.
type RunObserver interface {
	OnRunStart(runID, command string)
	OnRunEnd(results Results)
}
