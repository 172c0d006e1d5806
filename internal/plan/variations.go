package plan

import (
	"regexp"
	"strings"
)

var variationBlockRe = regexp.MustCompile(`\[(.*?)\]`)

// Variant is one expansion of a prompt containing variation blocks.
type Variant struct {
	Prompt string
	// Values holds the option chosen for each block, in block order.
	Values []string
}

// ExpandPrompt expands `[a,b]` variation blocks into the cartesian
// product of prompts. A prompt without blocks expands to itself.
func ExpandPrompt(prompt string) []Variant {
	blocks := variationBlockRe.FindAllStringSubmatch(prompt, -1)
	if len(blocks) == 0 {
		return []Variant{{Prompt: prompt}}
	}

	options := make([][]string, len(blocks))
	for i, block := range blocks {
		parts := strings.Split(block[1], ",")
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}
		options[i] = parts
	}

	var variants []Variant
	combo := make([]string, len(options))
	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(options) {
			expanded := substituteBlocks(prompt, combo)
			variants = append(variants, Variant{Prompt: expanded, Values: append([]string(nil), combo...)})
			return
		}
		for _, option := range options[depth] {
			combo[depth] = option
			walk(depth + 1)
		}
	}
	walk(0)
	return variants
}

// substituteBlocks replaces the i-th variation block with values[i].
func substituteBlocks(prompt string, values []string) string {
	i := 0
	return variationBlockRe.ReplaceAllStringFunc(prompt, func(string) string {
		if i >= len(values) {
			return ""
		}
		value := values[i]
		i++
		return value
	})
}

// VariantLabel joins the chosen variation values for display.
func VariantLabel(variant Variant) string {
	if len(variant.Values) == 0 {
		return variant.Prompt
	}
	return variant.Prompt + " (" + strings.Join(variant.Values, ", ") + ")"
}
