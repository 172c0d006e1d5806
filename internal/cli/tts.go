package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"firefly/internal/firefly"
	"firefly/internal/runner"
	"firefly/pkg/pipeline"
)

func runTTS(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd.Name, stderr)
		var (
			text     string
			textFile string
			voice    string
			locale   string
			output   string
			batch    batchOptions
		)
		stringFlag(fs, &text, "t", "text", "", "Text to convert to speech")
		stringFlag(fs, &textFile, "f", "file", "", "Path to a text file to convert")
		stringFlag(fs, &voice, "v", "voice", "", "Voice ID to use")
		stringFlag(fs, &locale, "l", "locale", "", "Locale code for the text")
		stringFlag(fs, &output, "o", "output", "", "Output file path (saved as WAV)")
		batch.register(fs)
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}

		cfg, err := loadConfig(batch.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		script, err := scriptText(text, textFile)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if voice == "" {
			voice = cfg.Defaults.VoiceID
		}
		if voice == "" {
			fmt.Fprintln(stderr, "a voice id is required (flag --voice or config defaults.voice_id)")
			return ExitUsage
		}
		if strings.TrimSpace(output) == "" {
			fmt.Fprintln(stderr, "an output path is required")
			return ExitUsage
		}
		if locale == "" {
			locale = cfg.Defaults.Locale
		}

		units := []pipeline.WorkUnit{{
			Index:      0,
			Kind:       "tts",
			Label:      speechLabel(script),
			OutputPath: output,
			Params: runner.SpeechUnit{
				Request: firefly.NewSpeechRequest(script, voice, locale),
			},
		}}
		return executeBatch(cfg, "tts", units, batch, stdout, stderr)
	}
}

// scriptText resolves the speech script from the text flag or a file.
// File content is flattened to a single line.
func scriptText(text, textFile string) (string, error) {
	if text != "" && textFile != "" {
		return "", fmt.Errorf("use either --text or --file, not both")
	}
	if textFile != "" {
		data, err := os.ReadFile(textFile)
		if err != nil {
			return "", fmt.Errorf("read script file: %w", err)
		}
		text = strings.Join(strings.Fields(string(data)), " ")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("a script is required (flag --text or --file)")
	}
	return text, nil
}

// speechLabel abbreviates a script for progress rows.
func speechLabel(script string) string {
	const max = 60
	if len(script) <= max {
		return script
	}
	return script[:max-3] + "..."
}
