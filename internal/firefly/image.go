package firefly

import (
	"context"

	"firefly/internal/plan"
)

// ImageRequest is the payload for asynchronous image generation.
type ImageRequest struct {
	Prompt              string      `json:"prompt"`
	NumVariations       int         `json:"numVariations"`
	ModelVersion        string      `json:"modelVersion"`
	ContentClass        string      `json:"contentClass,omitempty"`
	NegativePrompt      string      `json:"negativePrompt,omitempty"`
	PromptBiasingLocale string      `json:"promptBiasingLocale,omitempty"`
	Size                *plan.Size  `json:"size,omitempty"`
	Seeds               []int       `json:"seeds,omitempty"`
	Intensity           *float64    `json:"intensity,omitempty"`
	Style               *StyleInput `json:"style,omitempty"`
}

// StyleInput references an uploaded style image.
type StyleInput struct {
	ImageReference ImageReference `json:"imageReference"`
	Strength       int            `json:"strength"`
}

type ImageReference struct {
	Source SourceURL `json:"source"`
}

type SourceURL struct {
	URL string `json:"url"`
}

// StyleReference builds a full-strength style input from an uploaded
// image URL.
func StyleReference(url string) *StyleInput {
	return &StyleInput{
		ImageReference: ImageReference{Source: SourceURL{URL: url}},
		Strength:       100,
	}
}

// GenerateImage submits an asynchronous image generation job.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (JobInfo, error) {
	var info JobInfo
	if err := c.postJSON(ctx, c.imageBaseURL+"/v3/images/generate-async", req, &info); err != nil {
		return JobInfo{}, err
	}
	return info, nil
}
