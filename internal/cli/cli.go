// Package cli implements the firefly command line interface: one
// subcommand per generation service plus config scaffolding and
// validation.
package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  firefly <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-12s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"firefly <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold "+configFileHint, []string{
		"firefly init",
	}, runInit),
	command("validate", "Validate "+configFileHint, []string{
		"firefly validate [--config <path>]",
	}, runValidate),
	command("image", "Generate images from a text prompt", []string{
		"firefly image --prompt <text> --output <path> [options]",
	}, runImage),
	command("tts", "Generate speech from text", []string{
		"firefly tts --voice <id> --output <path> (--text <text> | --file <path>) [options]",
	}, runTTS),
	command("dub", "Dub hosted media into another language", []string{
		"firefly dub --input <url> --locale <code> --output <path> [options]",
	}, runDub),
	command("transcribe", "Transcribe audio or video content", []string{
		"firefly transcribe --input <path|url> --output <path> [options]",
	}, runTranscribe),
	command("video", "Generate a video from a text prompt", []string{
		"firefly video --prompt <text> --output <path> [options]",
	}, runVideo),
	command("voices", "List available speech voices", []string{
		"firefly voices",
	}, runVoices),
}
