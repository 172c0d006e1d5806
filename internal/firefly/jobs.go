package firefly

import (
	"context"
	"fmt"
)

// JobInfo is the creation response shared by the async endpoints.
type JobInfo struct {
	JobID     string `json:"jobId"`
	StatusURL string `json:"statusUrl"`
	Status    string `json:"status"`
}

type outputRef struct {
	URL string `json:"url"`
}

type jobOutput struct {
	Image       *outputRef `json:"image"`
	Video       *outputRef `json:"video"`
	Destination *outputRef `json:"destination"`
}

// JobStatus is a status poll response. The endpoints disagree on where
// outputs live, so every known location is mapped.
type JobStatus struct {
	Status string `json:"status"`
	Error  string `json:"error"`

	Output  *outputRef  `json:"output"`
	Outputs []jobOutput `json:"outputs"`
	Result  *struct {
		Output  *outputRef  `json:"output"`
		Outputs []jobOutput `json:"outputs"`
	} `json:"result"`
}

// OutputURLs collects every result URL from a terminal status response,
// regardless of which endpoint produced it.
func (s JobStatus) OutputURLs() []string {
	var urls []string
	appendRef := func(ref *outputRef) {
		if ref != nil && ref.URL != "" {
			urls = append(urls, ref.URL)
		}
	}
	appendOutputs := func(outputs []jobOutput) {
		for _, output := range outputs {
			appendRef(output.Image)
			appendRef(output.Video)
			appendRef(output.Destination)
		}
	}
	appendRef(s.Output)
	appendOutputs(s.Outputs)
	if s.Result != nil {
		appendRef(s.Result.Output)
		appendOutputs(s.Result.Outputs)
	}
	return urls
}

// CheckJob queries a job's status URL.
func (c *Client) CheckJob(ctx context.Context, statusURL string) (JobStatus, error) {
	if statusURL == "" {
		return JobStatus{}, fmt.Errorf("status url is required")
	}
	var status JobStatus
	if err := c.getJSON(ctx, statusURL, &status); err != nil {
		return JobStatus{}, err
	}
	return status, nil
}
