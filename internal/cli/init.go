package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"firefly/internal/config"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd.Name, stderr)
		dir := fs.String("dir", "", "Directory to scaffold in (default: working directory)")
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}

		root := *dir
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Failed to resolve working directory: %v\n", err)
				return ExitError
			}
			root = wd
		}

		configPath := config.ConfigPath(root)
		if err := config.Scaffold(configPath); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Created %s\n", configPath)
		fmt.Fprintf(stdout, "Set %s and %s before running commands.\n", config.EnvClientID, config.EnvClientSecret)
		return ExitOK
	}
}
