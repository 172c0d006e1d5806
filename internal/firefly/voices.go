package firefly

import "context"

// Voice describes one text-to-speech voice.
type Voice struct {
	VoiceID     string `json:"voiceId"`
	DisplayName string `json:"displayName"`
	Gender      string `json:"gender"`
	Style       string `json:"style"`
	VoiceType   string `json:"voiceType"`
	Status      string `json:"status"`
}

type voicesResponse struct {
	Voices []Voice `json:"voices"`
}

// ListVoices returns the available text-to-speech voices.
func (c *Client) ListVoices(ctx context.Context) ([]Voice, error) {
	var resp voicesResponse
	if err := c.getJSON(ctx, c.avBaseURL+"/v1/voices", &resp); err != nil {
		return nil, err
	}
	return resp.Voices, nil
}
