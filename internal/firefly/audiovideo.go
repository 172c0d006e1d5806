package firefly

import (
	"context"
	"path"
	"strings"

	"firefly/internal/plan"
)

// SpeechRequest is the payload for text-to-speech generation.
type SpeechRequest struct {
	Script  SpeechScript `json:"script"`
	VoiceID string       `json:"voiceId"`
	Output  MediaOutput  `json:"output"`
}

type SpeechScript struct {
	Text       string `json:"text"`
	MediaType  string `json:"mediaType"`
	LocaleCode string `json:"localeCode"`
}

type MediaOutput struct {
	MediaType string `json:"mediaType,omitempty"`
	Format    string `json:"format,omitempty"`
}

// NewSpeechRequest builds a WAV speech request for a plain-text script.
func NewSpeechRequest(text, voiceID, locale string) SpeechRequest {
	return SpeechRequest{
		Script: SpeechScript{
			Text:       text,
			MediaType:  "text/plain",
			LocaleCode: locale,
		},
		VoiceID: voiceID,
		Output:  MediaOutput{MediaType: "audio/wav"},
	}
}

// GenerateSpeech submits a text-to-speech job.
func (c *Client) GenerateSpeech(ctx context.Context, req SpeechRequest) (JobInfo, error) {
	var info JobInfo
	if err := c.postJSON(ctx, c.avBaseURL+"/v1/generate-speech", req, &info); err != nil {
		return JobInfo{}, err
	}
	return info, nil
}

// MediaSource references hosted media by URL with its media type.
type MediaSource struct {
	URL       string `json:"url"`
	MediaType string `json:"mediaType"`
}

// DubRequest is the payload for dubbing hosted media into a target
// locale.
type DubRequest struct {
	Source           MediaSource `json:"source"`
	TargetLocaleCode string      `json:"targetLocaleCode"`
	Output           MediaOutput `json:"output"`
}

// NewDubRequest builds a dub request, inferring the source media type
// from the URL extension.
func NewDubRequest(sourceURL, targetLocale, outputFormat string) DubRequest {
	if outputFormat == "" {
		outputFormat = "mp4"
	}
	return DubRequest{
		Source:           MediaSource{URL: sourceURL, MediaType: MediaTypeFromURL(sourceURL)},
		TargetLocaleCode: targetLocale,
		Output:           MediaOutput{Format: outputFormat},
	}
}

// Dub submits a dubbing job.
func (c *Client) Dub(ctx context.Context, req DubRequest) (JobInfo, error) {
	var info JobInfo
	if err := c.postJSON(ctx, c.avBaseURL+"/v1/dub", req, &info); err != nil {
		return JobInfo{}, err
	}
	return info, nil
}

// TranscribeRequest is the payload for transcription of hosted media.
type TranscribeRequest struct {
	Source           MediaSource `json:"source"`
	TargetLocaleCode string      `json:"targetLocaleCode"`
	Output           MediaOutput `json:"output"`
}

// NewTranscribeRequest builds a transcription request. With textOnly the
// job produces a plain transcript instead of the timed JSON document.
func NewTranscribeRequest(sourceURL, targetLocale, mediaType string, textOnly bool) TranscribeRequest {
	format := "json"
	if textOnly {
		format = "text"
	}
	if mediaType == "" {
		mediaType = MediaTypeFromURL(sourceURL)
	}
	return TranscribeRequest{
		Source:           MediaSource{URL: sourceURL, MediaType: mediaType},
		TargetLocaleCode: targetLocale,
		Output:           MediaOutput{Format: format},
	}
}

// Transcribe submits a transcription job.
func (c *Client) Transcribe(ctx context.Context, req TranscribeRequest) (JobInfo, error) {
	var info JobInfo
	if err := c.postJSON(ctx, c.avBaseURL+"/v1/transcribe", req, &info); err != nil {
		return JobInfo{}, err
	}
	return info, nil
}

// VideoRequest is the payload for video generation.
type VideoRequest struct {
	Prompt string      `json:"prompt"`
	Sizes  []plan.Size `json:"sizes"`
}

// GenerateVideo submits a video generation job.
func (c *Client) GenerateVideo(ctx context.Context, req VideoRequest) (JobInfo, error) {
	var info JobInfo
	if err := c.postJSON(ctx, c.videoBaseURL+"/v3/videos/generate", req, &info); err != nil {
		return JobInfo{}, err
	}
	return info, nil
}

// MediaTypeFromURL classifies a media URL as video or audio by its
// extension.
func MediaTypeFromURL(url string) string {
	ext := strings.ToLower(path.Ext(strings.SplitN(url, "?", 2)[0]))
	switch ext {
	case ".mp4", ".mov", ".avi":
		return "video"
	default:
		return "audio"
	}
}
