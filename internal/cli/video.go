package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"firefly/internal/firefly"
	"firefly/internal/plan"
	"firefly/internal/runner"
	"firefly/pkg/pipeline"
)

func runVideo(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd.Name, stderr)
		var (
			prompt    string
			sizeName  string
			output    string
			overwrite bool
			batch     batchOptions
		)
		stringFlag(fs, &prompt, "p", "prompt", "", "Text prompt for video generation")
		stringFlag(fs, &sizeName, "s", "size", "", "Video size, named (1080p, sq720p, ...) or WxH")
		stringFlag(fs, &output, "o", "output", "", "Output file path; supports filename tokens")
		boolFlag(fs, &overwrite, "ow", "overwrite", false, "Overwrite existing output files")
		batch.register(fs)
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}

		if strings.TrimSpace(prompt) == "" || strings.TrimSpace(output) == "" {
			fmt.Fprintln(stderr, "a prompt and an output path are required")
			return ExitUsage
		}

		cfg, err := loadConfig(batch.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		if sizeName == "" {
			sizeName = cfg.Defaults.VideoSize
		}
		size, err := plan.ParseVideoSize(sizeName)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}

		output = plan.ResolveOutputTemplate(output, cfg.Defaults.FilenameTemplate, ".mp4")

		variants := plan.ExpandPrompt(prompt)
		units := make([]pipeline.WorkUnit, 0, len(variants))
		for i, variant := range variants {
			target := plan.RenderFilename(output, plan.Tokens{
				Prompt:     variant.Prompt,
				Size:       size,
				Iteration:  1,
				Variations: variant.Values,
			})
			if len(variant.Values) > 0 && !strings.Contains(output, "{var") {
				target = plan.VariationFilename(target, variant.Values)
			}
			units = append(units, pipeline.WorkUnit{
				Index:      i,
				Kind:       "video",
				Label:      plan.VariantLabel(variant),
				OutputPath: target,
				Params: runner.VideoUnit{
					Request: firefly.VideoRequest{
						Prompt: variant.Prompt,
						Sizes:  []plan.Size{size},
					},
					Overwrite: overwrite,
				},
			})
		}
		return executeBatch(cfg, "video", units, batch, stdout, stderr)
	}
}
