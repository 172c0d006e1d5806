package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"firefly/internal/firefly"
	"firefly/internal/plan"
	"firefly/pkg/pipeline"
)

// Per-unit parameters carried on pipeline work units. Each holds the
// prepared API request for its service.
type (
	ImageUnit struct {
		Request   firefly.ImageRequest
		Overwrite bool
	}
	SpeechUnit struct {
		Request   firefly.SpeechRequest
		Overwrite bool
	}
	DubUnit struct {
		Request   firefly.DubRequest
		Overwrite bool
	}
	TranscribeUnit struct {
		Request   firefly.TranscribeRequest
		Overwrite bool

		// RenderMarkdown converts the timed transcript into a markdown
		// document instead of saving the raw JSON.
		RenderMarkdown bool
	}
	VideoUnit struct {
		Request   firefly.VideoRequest
		Overwrite bool
	}
)

// service adapts the API client to the pipeline's Service and Saver.
type service struct {
	client *firefly.Client
}

func newService(client *firefly.Client) *service {
	return &service{client: client}
}

// CreateJob submits the unit's prepared request to its endpoint.
func (s *service) CreateJob(ctx context.Context, unit pipeline.WorkUnit) (pipeline.Handle, error) {
	var (
		info firefly.JobInfo
		err  error
	)
	switch params := unit.Params.(type) {
	case ImageUnit:
		info, err = s.client.GenerateImage(ctx, params.Request)
	case SpeechUnit:
		info, err = s.client.GenerateSpeech(ctx, params.Request)
	case DubUnit:
		info, err = s.client.Dub(ctx, params.Request)
	case TranscribeUnit:
		info, err = s.client.Transcribe(ctx, params.Request)
	case VideoUnit:
		info, err = s.client.GenerateVideo(ctx, params.Request)
	default:
		return pipeline.Handle{}, fmt.Errorf("unsupported unit params %T", unit.Params)
	}
	if err != nil {
		return pipeline.Handle{}, err
	}
	return pipeline.Handle{
		JobID:     info.JobID,
		StatusURL: info.StatusURL,
		Status:    mapStatus(info.Status),
	}, nil
}

// JobStatus queries the job's status URL and maps the wire status.
func (s *service) JobStatus(ctx context.Context, handle pipeline.Handle) (pipeline.Handle, error) {
	status, err := s.client.CheckJob(ctx, handle.StatusURL)
	if err != nil {
		return handle, err
	}
	handle.Status = mapStatus(status.Status)
	if handle.Status == pipeline.StatusFailed {
		message := status.Error
		if message == "" {
			message = "job failed"
		}
		handle.Err = errors.New(message)
	}
	return handle, nil
}

// Save downloads every output of a succeeded job. The first output takes
// the unit's path; later ones get a numeric suffix before the extension.
func (s *service) Save(ctx context.Context, handle pipeline.Handle, unit pipeline.WorkUnit) ([]string, error) {
	status, err := s.client.CheckJob(ctx, handle.StatusURL)
	if err != nil {
		return nil, err
	}
	urls := status.OutputURLs()
	if len(urls) == 0 {
		return nil, fmt.Errorf("job %s produced no outputs", handle.JobID)
	}

	if params, ok := unit.Params.(TranscribeUnit); ok && params.RenderMarkdown {
		return s.saveTranscriptMarkdown(ctx, urls[0], unit, params.Overwrite)
	}

	overwrite := unitOverwrite(unit)
	var saved []string
	for i, url := range urls {
		target := unit.OutputPath
		if i > 0 {
			ext := filepath.Ext(target)
			target = strings.TrimSuffix(target, ext) + fmt.Sprintf("_%d", i+1) + ext
		}
		target, err := plan.UniquePath(target, overwrite)
		if err != nil {
			return saved, err
		}
		if err := s.client.Download(ctx, url, target); err != nil {
			return saved, err
		}
		saved = append(saved, target)
	}
	return saved, nil
}

// saveTranscriptMarkdown fetches the timed transcript and writes it out
// as a markdown document.
func (s *service) saveTranscriptMarkdown(ctx context.Context, url string, unit pipeline.WorkUnit, overwrite bool) ([]string, error) {
	data, err := s.client.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	segments, err := ParseTranscript(data)
	if err != nil {
		return nil, err
	}
	target, err := plan.UniquePath(unit.OutputPath, overwrite)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(target, []byte(RenderTranscriptMarkdown(segments)), 0o644); err != nil {
		return nil, fmt.Errorf("write transcript: %w", err)
	}
	return []string{target}, nil
}

// mapStatus converts a wire status to the pipeline status set. Unknown
// in-flight statuses count as running.
func mapStatus(status string) pipeline.Status {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "succeeded":
		return pipeline.StatusSucceeded
	case "failed", "cancelled", "canceled":
		return pipeline.StatusFailed
	case "", "pending", "queued":
		return pipeline.StatusPending
	default:
		return pipeline.StatusRunning
	}
}

func unitOverwrite(unit pipeline.WorkUnit) bool {
	switch params := unit.Params.(type) {
	case ImageUnit:
		return params.Overwrite
	case SpeechUnit:
		return params.Overwrite
	case DubUnit:
		return params.Overwrite
	case TranscribeUnit:
		return params.Overwrite
	case VideoUnit:
		return params.Overwrite
	default:
		return false
	}
}
