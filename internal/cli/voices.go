package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"firefly/internal/firefly"
)

func runVoices(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd.Name, stderr)
		var debug bool
		boolFlag(fs, &debug, "d", "debug", false, "Print request and response detail to stderr")
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}

		var trace io.Writer
		if debug {
			trace = stderr
		}
		client, err := newAPIClient(trace)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		voices, err := client.ListVoices(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to list voices: %v\n", err)
			return ExitError
		}
		if err := renderVoices(stdout, voices); err != nil {
			fmt.Fprintf(stderr, "Failed to render voices: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// renderVoices prints the available voices grouped by status.
func renderVoices(w io.Writer, voices []firefly.Voice) error {
	sort.Slice(voices, func(i, j int) bool {
		if voices[i].Status != voices[j].Status {
			return voices[i].Status < voices[j].Status
		}
		return voices[i].DisplayName < voices[j].DisplayName
	})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VOICE ID\tNAME\tGENDER\tSTYLE\tTYPE\tSTATUS")
	for _, voice := range voices {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			voice.VoiceID, voice.DisplayName, voice.Gender, voice.Style, voice.VoiceType, voice.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d voices\n", len(voices))
	return err
}
