package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Tokens carries the values substituted into a filename template.
type Tokens struct {
	Prompt     string
	Model      string
	Size       Size
	Seeds      []int
	StyleRef   string
	Iteration  int
	Variations []string

	// Now is the clock used for date tokens.
	Now func() time.Time
}

const maxPromptToken = 30

var knownTokenRe = regexp.MustCompile(`\{(prompt|model|width|height|dimensions|seed|sr|date|time|datetime|n|var\d+)\}`)
var anyTokenRe = regexp.MustCompile(`\{[^{}]*\}`)

// CheckFilenameTemplate rejects templates containing unrecognized tokens.
func CheckFilenameTemplate(template string) error {
	stripped := knownTokenRe.ReplaceAllString(template, "")
	if unknown := anyTokenRe.FindString(stripped); unknown != "" {
		return fmt.Errorf("unknown token %s", unknown)
	}
	return nil
}

// ResolveOutputTemplate expands a directory output target into a file
// path built from the configured filename template. A target counts as a
// directory when it ends with a path separator or names an existing
// directory; anything else is returned unchanged.
func ResolveOutputTemplate(output, template, ext string) string {
	if !directoryTarget(output) {
		return output
	}
	return filepath.Join(output, template+ext)
}

func directoryTarget(output string) bool {
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(os.PathSeparator)) {
		return true
	}
	info, err := os.Stat(output)
	return err == nil && info.IsDir()
}

// RenderFilename substitutes tokens into a filename template. Unused
// tokens render as empty strings.
func RenderFilename(template string, tokens Tokens) string {
	now := tokens.Now
	if now == nil {
		now = time.Now
	}
	stamp := now().UTC()

	replacements := map[string]string{
		"{prompt}":     promptToken(tokens.Prompt),
		"{model}":      tokens.Model,
		"{width}":      widthToken(tokens.Size),
		"{height}":     heightToken(tokens.Size),
		"{dimensions}": dimensionsToken(tokens.Size),
		"{seed}":       seedToken(tokens.Seeds),
		"{sr}":         styleRefToken(tokens.StyleRef),
		"{date}":       stamp.Format("20060102"),
		"{time}":       stamp.Format("150405"),
		"{datetime}":   stamp.Format("20060102_150405"),
		"{n}":          iterationToken(tokens.Iteration),
	}
	for i, value := range tokens.Variations {
		replacements[fmt.Sprintf("{var%d}", i+1)] = strings.ReplaceAll(value, " ", "_")
	}

	result := template
	for token, value := range replacements {
		result = strings.ReplaceAll(result, token, value)
	}
	return result
}

// VariationFilename appends the chosen variation values to a filename,
// before the extension.
func VariationFilename(base string, values []string) string {
	if len(values) == 0 {
		return base
	}
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	cleaned := make([]string, len(values))
	for i, value := range values {
		cleaned[i] = sanitize(value)
	}
	return name + "_" + strings.Join(cleaned, "_") + ext
}

// UniquePath creates parent directories and returns a path that does not
// collide with an existing file. With overwrite the path is returned
// unchanged.
func UniquePath(path string, overwrite bool) (string, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}
	if overwrite {
		return path, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}
	ext := filepath.Ext(path)
	name := strings.TrimSuffix(path, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", name, counter, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
}

func promptToken(prompt string) string {
	value := strings.ReplaceAll(prompt, " ", "_")
	if len(value) > maxPromptToken {
		value = value[:maxPromptToken]
	}
	return value
}

func widthToken(size Size) string {
	if size.Width == 0 {
		return ""
	}
	return strconv.Itoa(size.Width)
}

func heightToken(size Size) string {
	if size.Height == 0 {
		return ""
	}
	return strconv.Itoa(size.Height)
}

func dimensionsToken(size Size) string {
	if size.Width == 0 && size.Height == 0 {
		return ""
	}
	return size.String()
}

func seedToken(seeds []int) string {
	if len(seeds) == 0 {
		return ""
	}
	parts := make([]string, len(seeds))
	for i, seed := range seeds {
		parts[i] = strconv.Itoa(seed)
	}
	return strings.Join(parts, "_")
}

func styleRefToken(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func iterationToken(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// sanitize keeps alphanumerics and spaces, matching variation suffix
// rules.
func sanitize(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r == ' ' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
