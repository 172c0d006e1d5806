package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"firefly/internal/config"
	"firefly/internal/firefly"
	"firefly/internal/plan"
	"firefly/internal/runner"
	"firefly/internal/spec"
	"firefly/internal/storage"
	"firefly/pkg/pipeline"
)

// imageOptions are the parsed image command flags.
type imageOptions struct {
	prompt          string
	output          string
	model           string
	contentClass    string
	negativePrompt  string
	locale          string
	size            string
	seeds           string
	numVariations   int
	visualIntensity int
	styleRef        string
	styleStrength   int
	overwrite       bool
}

func runImage(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd.Name, stderr)
		var opts imageOptions
		var batch batchOptions
		stringFlag(fs, &opts.prompt, "p", "prompt", "", "Text prompt. Use [a,b,...] blocks for variations")
		stringFlag(fs, &opts.output, "o", "output", "", "Output file path; supports filename tokens")
		stringFlag(fs, &opts.model, "m", "model", "", "Model version (image3, image4, image4_ultra, ...)")
		stringFlag(fs, &opts.contentClass, "c", "content-class", "photo", "Content class: photo or art")
		stringFlag(fs, &opts.negativePrompt, "np", "negative-prompt", "", "Text describing what to avoid")
		stringFlag(fs, &opts.locale, "l", "locale", "", "Locale code for prompt biasing")
		stringFlag(fs, &opts.size, "s", "size", "", "Output size, named or WxH")
		fs.StringVar(&opts.seeds, "seeds", "", "Comma separated seed values, one per variation")
		intFlag(fs, &opts.numVariations, "n", "num-variations", 1, "Number of images per prompt (1-4)")
		intFlag(fs, &opts.visualIntensity, "vi", "visual-intensity", 0, "Visual intensity (1-10)")
		stringFlag(fs, &opts.styleRef, "sref", "style-reference", "", "Path to a style reference image")
		intFlag(fs, &opts.styleStrength, "sref-strength", "style-reference-strength", 100, "Style reference strength (1-100)")
		boolFlag(fs, &opts.overwrite, "ow", "overwrite", false, "Overwrite existing output files")
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

		styleURL := ""
		if opts.styleRef != "" {
			styleURL, err = stageFile(context.Background(), cfg, opts.styleRef)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to upload style reference: %v\n", err)
				return ExitError
			}
			if !batch.silent {
				fmt.Fprintf(stdout, "Style reference uploaded: %s\n", opts.styleRef)
			}
		}

		units, err := planImageUnits(cfg, opts, styleURL)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		return executeBatch(cfg, "image", units, batch, stdout, stderr)
	}
}

// planImageUnits expands prompt variations into one work unit each and
// renders the output filename per variant.
func planImageUnits(cfg spec.Config, opts imageOptions, styleURL string) ([]pipeline.WorkUnit, error) {
	if strings.TrimSpace(opts.prompt) == "" {
		return nil, fmt.Errorf("a prompt is required")
	}
	if strings.TrimSpace(opts.output) == "" {
		return nil, fmt.Errorf("an output path is required")
	}
	if opts.numVariations < 1 || opts.numVariations > 4 {
		return nil, fmt.Errorf("number of variations must be between 1 and 4")
	}

	modelName := opts.model
	if modelName == "" {
		modelName = cfg.Defaults.ImageModel
	}
	model, err := plan.NormalizeImageModel(modelName)
	if err != nil {
		return nil, err
	}

	sizeName := opts.size
	if sizeName == "" {
		sizeName = cfg.Defaults.ImageSize
	}
	size, err := plan.ParseImageSize(model, sizeName)
	if err != nil {
		return nil, err
	}

	seeds, err := parseSeeds(opts.seeds)
	if err != nil {
		return nil, err
	}
	if len(seeds) > 0 && len(seeds) != opts.numVariations {
		return nil, fmt.Errorf("got %d seeds for %d variations; counts must match", len(seeds), opts.numVariations)
	}

	var intensity *float64
	if opts.visualIntensity != 0 {
		if opts.visualIntensity < 1 || opts.visualIntensity > 10 {
			return nil, fmt.Errorf("visual intensity must be between 1 and 10")
		}
		value := float64(opts.visualIntensity) / 10.0
		intensity = &value
	}

	var style *firefly.StyleInput
	if styleURL != "" {
		style = firefly.StyleReference(styleURL)
		if opts.styleStrength >= 1 && opts.styleStrength <= 100 {
			style.Strength = opts.styleStrength
		}
	}

	locale := opts.locale
	if locale == "" {
		locale = cfg.Defaults.Locale
	}

	output := plan.ResolveOutputTemplate(opts.output, cfg.Defaults.FilenameTemplate, ".jpg")

	variants := plan.ExpandPrompt(opts.prompt)
	units := make([]pipeline.WorkUnit, 0, len(variants))
	for i, variant := range variants {
		target := plan.RenderFilename(output, plan.Tokens{
			Prompt:     variant.Prompt,
			Model:      model,
			Size:       size,
			Seeds:      seeds,
			StyleRef:   opts.styleRef,
			Iteration:  1,
			Variations: variant.Values,
		})
		if len(variant.Values) > 0 && !strings.Contains(output, "{var") {
			target = plan.VariationFilename(target, variant.Values)
		}
		units = append(units, pipeline.WorkUnit{
			Index:      i,
			Kind:       "image",
			Label:      plan.VariantLabel(variant),
			OutputPath: target,
			Params: runner.ImageUnit{
				Request: firefly.ImageRequest{
					Prompt:              variant.Prompt,
					NumVariations:       opts.numVariations,
					ModelVersion:        model,
					ContentClass:        opts.contentClass,
					NegativePrompt:      opts.negativePrompt,
					PromptBiasingLocale: locale,
					Size:                &size,
					Seeds:               seeds,
					Intensity:           intensity,
					Style:               style,
				},
				Overwrite: opts.overwrite,
			},
		})
	}
	return units, nil
}

// blobUploader is the staging surface of storage.Uploader.
type blobUploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// newBlobUploader is swapped out in staging tests.
var newBlobUploader = func(cfg spec.Config) (blobUploader, error) {
	creds, err := config.StorageCredentialsFromEnv(cfg.Storage.Container)
	if err != nil {
		return nil, err
	}
	return storage.NewUploader(creds, config.SASExpiry(cfg))
}

// stageFile uploads a local file to blob storage and returns a signed
// read URL the API can fetch. Uploads follow the same retry policy as
// API calls, so a throttled or faulting service does not abort the run.
var stageFile = func(ctx context.Context, cfg spec.Config, path string) (string, error) {
	uploader, err := newBlobUploader(cfg)
	if err != nil {
		return "", err
	}
	return stageWithRetry(ctx, config.RetryPolicy(cfg), uploader, path)
}

func stageWithRetry(ctx context.Context, policy pipeline.Policy, uploader blobUploader, path string) (string, error) {
	var url string
	err := policy.Execute(ctx, func(ctx context.Context) error {
		var uploadErr error
		url, uploadErr = uploader.Upload(ctx, path)
		return uploadErr
	})
	if err != nil {
		return "", err
	}
	return url, nil
}
