package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"firefly/internal/auth"
	"firefly/internal/config"
	"firefly/internal/firefly"
	"firefly/internal/spec"
)

const configFileHint = config.ConfigFileName

// newFlagSet builds a flag set that reports parse errors to stderr.
func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// loadConfig resolves and loads the config file. An empty path searches
// upward from the working directory; a missing file yields defaults so
// commands work without an init step.
func loadConfig(path string) (spec.Config, error) {
	if strings.TrimSpace(path) == "" {
		found, err := config.FindConfigPath("")
		if err != nil {
			cfg := spec.Config{Version: 1}
			config.Normalize(&cfg)
			return cfg, nil
		}
		path = found
	}
	return config.Load(path)
}

// newAPIClient builds the API client from environment credentials. A
// non-nil debug writer receives request and response traces.
var newAPIClient = func(debug io.Writer) (*firefly.Client, error) {
	creds, err := config.CredentialsFromEnv()
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewTokenSource(creds, "", nil)
	if err != nil {
		return nil, err
	}
	return firefly.NewClient(tokens, firefly.ClientOptions{Debug: debug}), nil
}

// parseSeeds parses a comma separated seed list.
func parseSeeds(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	seeds := make([]int, 0, len(parts))
	for _, part := range parts {
		seed, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q", strings.TrimSpace(part))
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

// stringFlag registers a flag under a short and a long name.
func stringFlag(fs *flag.FlagSet, target *string, short, long, value, usage string) {
	fs.StringVar(target, long, value, usage)
	if short != "" && short != long {
		fs.StringVar(target, short, value, usage)
	}
}

func boolFlag(fs *flag.FlagSet, target *bool, short, long string, value bool, usage string) {
	fs.BoolVar(target, long, value, usage)
	if short != "" && short != long {
		fs.BoolVar(target, short, value, usage)
	}
}

func intFlag(fs *flag.FlagSet, target *int, short, long string, value int, usage string) {
	fs.IntVar(target, long, value, usage)
	if short != "" && short != long {
		fs.IntVar(target, short, value, usage)
	}
}
