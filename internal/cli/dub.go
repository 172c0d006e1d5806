package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"firefly/internal/firefly"
	"firefly/internal/runner"
	"firefly/pkg/pipeline"
)

func runDub(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd.Name, stderr)
		var (
			input  string
			locale string
			format string
			output string
			batch  batchOptions
		)
		stringFlag(fs, &input, "i", "input", "", "URL of the source media file")
		stringFlag(fs, &locale, "l", "locale", "", "Target language locale code (e.g. fr-FR)")
		stringFlag(fs, &format, "f", "format", "mp4", "Output format: mp4 or mp3")
		stringFlag(fs, &output, "o", "output", "", "Output file path for the dubbed media")
		batch.register(fs)
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}

		if strings.TrimSpace(input) == "" || strings.TrimSpace(locale) == "" || strings.TrimSpace(output) == "" {
			fmt.Fprintln(stderr, "input URL, target locale and output path are required")
			return ExitUsage
		}
		switch format {
		case "mp4", "mp3":
		default:
			fmt.Fprintf(stderr, "invalid format %q (expected mp4|mp3)\n", format)
			return ExitUsage
		}

		cfg, err := loadConfig(batch.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		units := []pipeline.WorkUnit{{
			Index:      0,
			Kind:       "dub",
			Label:      fmt.Sprintf("%s -> %s", input, locale),
			OutputPath: output,
			Params: runner.DubUnit{
				Request: firefly.NewDubRequest(input, locale, format),
			},
		}}
		return executeBatch(cfg, "dub", units, batch, stdout, stderr)
	}
}
