package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"firefly/internal/firefly"
	"firefly/internal/runner"
	"firefly/pkg/pipeline"
)

func runTranscribe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd.Name, stderr)
		var (
			input      string
			mediaType  string
			locale     string
			output     string
			outputType string
			textOnly   bool
			batch      batchOptions
		)
		stringFlag(fs, &input, "i", "input", "", "Media to transcribe: a URL or a local file to stage")
		stringFlag(fs, &mediaType, "t", "type", "", "Media type: audio or video (default: inferred)")
		stringFlag(fs, &locale, "l", "locale", "", "Target language locale code")
		stringFlag(fs, &output, "o", "output", "", "Output file path for the transcription")
		stringFlag(fs, &outputType, "ot", "output-type", "json", "Transcript format: json, text or markdown")
		boolFlag(fs, &textOnly, "text", "text-only", false, "Shorthand for --output-type text")
		batch.register(fs)
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}

		if strings.TrimSpace(input) == "" || strings.TrimSpace(output) == "" {
			fmt.Fprintln(stderr, "an input and an output path are required")
			return ExitUsage
		}
		switch mediaType {
		case "", "audio", "video":
		default:
			fmt.Fprintf(stderr, "invalid media type %q (expected audio|video)\n", mediaType)
			return ExitUsage
		}
		if textOnly {
			outputType = "text"
		}
		switch outputType {
		case "json", "text", "markdown":
		default:
			fmt.Fprintf(stderr, "invalid output type %q (expected json|text|markdown)\n", outputType)
			return ExitUsage
		}

		cfg, err := loadConfig(batch.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		if locale == "" {
			locale = cfg.Defaults.Locale
		}

		sourceURL := input
		if !isRemoteURL(input) {
			sourceURL, err = stageFile(context.Background(), cfg, input)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to stage media file: %v\n", err)
				return ExitError
			}
			if !batch.silent {
				fmt.Fprintf(stdout, "Media staged for transcription: %s\n", input)
			}
		}

		units := []pipeline.WorkUnit{{
			Index:      0,
			Kind:       "transcribe",
			Label:      input,
			OutputPath: output,
			Params: runner.TranscribeUnit{
				Request:        firefly.NewTranscribeRequest(sourceURL, locale, mediaType, outputType == "text"),
				RenderMarkdown: outputType == "markdown",
			},
		}}
		return executeBatch(cfg, "transcribe", units, batch, stdout, stderr)
	}
}

// isRemoteURL reports whether an input is already hosted.
func isRemoteURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}
