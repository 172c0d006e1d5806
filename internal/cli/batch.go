package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"firefly/internal/runner"
	"firefly/internal/spec"
	"firefly/internal/ui/live"
	"firefly/pkg/pipeline"
)

// batchOptions carries the shared per-command flags.
type batchOptions struct {
	configPath string
	uiMode     string
	debug      bool
	silent     bool
}

// register adds the flags shared by every batch command.
func (o *batchOptions) register(fs *flag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "Path to "+configFileHint+" (default: search upward)")
	fs.StringVar(&o.uiMode, "ui", "auto", "Progress display: auto, live or plain")
	fs.BoolVar(&o.debug, "debug", false, "Print request and response detail to stderr")
	fs.BoolVar(&o.debug, "d", false, "Print request and response detail to stderr")
	fs.BoolVar(&o.silent, "silent", false, "Minimize output messages")
}

// runBatchFn is swapped out in command tests.
var runBatchFn = runBatch

// executeBatch runs the planned units and reports the outcome. SIGINT
// cancels the run; already submitted units finish as canceled entries.
func executeBatch(cfg spec.Config, command string, units []pipeline.WorkUnit, opts batchOptions, stdout, stderr io.Writer) int {
	decision, err := resolveUIMode(opts.uiMode, opts.debug, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return ExitUsage
	}
	if decision.warning != "" && !opts.silent {
		fmt.Fprintln(stderr, decision.warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var debug io.Writer
	if opts.debug {
		debug = stderr
	}
	results, err := runBatchFn(ctx, cfg, command, units, decision.useLive, stdout, debug)
	if err != nil {
		fmt.Fprintf(stderr, "Run failed: %v\n", err)
		return ExitError
	}

	if !decision.useLive && !opts.silent {
		fmt.Fprintln(stdout)
		if err := runner.RenderReportTable(stdout, results); err != nil {
			fmt.Fprintf(stderr, "Failed to render report: %v\n", err)
		}
	}
	if !opts.silent {
		fmt.Fprintf(stdout, "Run %s finished\n", results.RunID)
	}

	if results.Summary.Failed > 0 || results.Summary.Canceled > 0 {
		return ExitError
	}
	return ExitOK
}

// runBatch wires the observer and executes the run. A non-nil debug
// writer receives API request and response traces.
func runBatch(ctx context.Context, cfg spec.Config, command string, units []pipeline.WorkUnit, useLive bool, stdout, debug io.Writer) (runner.Results, error) {
	client, err := newAPIClient(debug)
	if err != nil {
		return runner.Results{}, err
	}

	var observer pipeline.Observer
	var controller *live.Controller
	if useLive {
		controller = live.Start(stdout, live.Options{})
		observer = controller
	} else {
		observer = runner.NewPlainObserver(stdout)
	}

	results, err := runner.Run(ctx, runner.Options{
		Config:   cfg,
		Client:   client,
		Command:  command,
		Units:    units,
		Observer: observer,
	})
	if controller != nil {
		controller.Close()
		controller.Wait()
	}
	return results, err
}
