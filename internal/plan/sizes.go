// Package plan expands generation requests into concrete work units:
// model alias resolution, size lookup, prompt variation expansion, and
// output filename templating.
package plan

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Size is a pixel dimension pair sent to the generation API.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// modelAliases maps user-facing model names to API model versions.
var modelAliases = map[string]string{
	"image3":         "image3",
	"image3_custom":  "image3_custom",
	"image4":         "image4_standard",
	"image4_standard": "image4_standard",
	"image4_ultra":   "image4_ultra",
	"ultra":          "image4_ultra",
}

var image3Sizes = map[string]Size{
	"square":     {2048, 2048},
	"square1024": {1024, 1024},
	"landscape":  {2304, 1792},
	"portrait":   {1792, 2304},
	"widescreen": {2688, 1536},
	"ultrawide":  {2688, 1536},
	"wide":       {2688, 1536},
	"7:4":        {1344, 768},
	"9:7":        {1152, 896},
	"7:9":        {896, 1152},
	"16:9":       {2688, 1536},
	"1:1":        {2048, 2048},
	"4:3":        {1792, 2304},
	"3:4":        {1792, 2304},
}

var image4Sizes = map[string]Size{
	"square":     {2048, 2048},
	"landscape":  {2304, 1792},
	"portrait":   {1792, 2304},
	"widescreen": {2688, 1536},
	"ultrawide":  {2688, 1536},
	"wide":       {2688, 1536},
	"9:16":       {1440, 2560},
	"1:1":        {2048, 2048},
	"4:3":        {2304, 1792},
	"3:4":        {1792, 2304},
	"16:9":       {2688, 1536},
}

var videoSizes = map[string]Size{
	"960x540":   {960, 540},
	"540x960":   {540, 960},
	"540x540":   {540, 540},
	"sq540p":    {540, 540},
	"1280x720":  {1280, 720},
	"720p":      {1280, 720},
	"720x1280":  {720, 1280},
	"v720p":     {720, 1280},
	"720x720":   {720, 720},
	"sq720p":    {720, 720},
	"1920x1080": {1920, 1080},
	"1080p":     {1920, 1080},
	"1080x1920": {1080, 1920},
	"v1080p":    {1080, 1920},
	"1080x1080": {1080, 1080},
	"sq1080p":   {1080, 1080},
}

// NormalizeImageModel resolves a model alias to its API model version.
func NormalizeImageModel(name string) (string, error) {
	model, ok := modelAliases[strings.TrimSpace(name)]
	if !ok {
		return "", fmt.Errorf("unknown model %q, expected one of %s", name, strings.Join(ImageModels(), ", "))
	}
	return model, nil
}

// KnownImageModel reports whether name is a recognized model alias.
func KnownImageModel(name string) bool {
	_, ok := modelAliases[strings.TrimSpace(name)]
	return ok
}

// ImageModels returns the sorted list of accepted model names.
func ImageModels() []string {
	names := make([]string, 0, len(modelAliases))
	for name := range modelAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// imageSizeMapping returns the named-size table for a normalized or
// aliased model name.
func imageSizeMapping(model string) map[string]Size {
	resolved, err := NormalizeImageModel(model)
	if err != nil {
		return nil
	}
	if resolved == "image3" || resolved == "image3_custom" {
		return image3Sizes
	}
	return image4Sizes
}

// ParseImageSize resolves a named size or WIDTHxHEIGHT string for the
// given model.
func ParseImageSize(model, size string) (Size, error) {
	size = strings.TrimSpace(size)
	mapping := imageSizeMapping(model)
	if resolved, ok := mapping[size]; ok {
		return resolved, nil
	}
	if parsed, ok := parseDimensions(size); ok {
		return parsed, nil
	}
	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)
	return Size{}, fmt.Errorf("invalid size %q, expected WIDTHxHEIGHT or one of %s", size, strings.Join(names, ", "))
}

// KnownImageSize reports whether size resolves for the given model.
func KnownImageSize(model, size string) bool {
	_, err := ParseImageSize(model, size)
	return err == nil
}

// ParseVideoSize resolves a named or explicit video size.
func ParseVideoSize(size string) (Size, error) {
	resolved, ok := videoSizes[strings.TrimSpace(size)]
	if !ok {
		names := make([]string, 0, len(videoSizes))
		for name := range videoSizes {
			names = append(names, name)
		}
		sort.Strings(names)
		return Size{}, fmt.Errorf("unsupported video size %q, expected one of %s", size, strings.Join(names, ", "))
	}
	return resolved, nil
}

// KnownVideoSize reports whether size is a supported video size.
func KnownVideoSize(size string) bool {
	_, ok := videoSizes[strings.TrimSpace(size)]
	return ok
}

// parseDimensions parses a WIDTHxHEIGHT string.
func parseDimensions(value string) (Size, bool) {
	parts := strings.Split(value, "x")
	if len(parts) != 2 {
		return Size{}, false
	}
	width, err := strconv.Atoi(parts[0])
	if err != nil || width <= 0 {
		return Size{}, false
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil || height <= 0 {
		return Size{}, false
	}
	return Size{Width: width, Height: height}, true
}
