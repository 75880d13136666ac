package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/voxgate/voxgate/internal/audio"
)

const deepgramListenURL = "https://api.deepgram.com/v1/listen"

// Deepgram transcribes audio via the Deepgram listen API. The API key is
// provider-owned configuration, not part of the tool-layer credential chain.
type Deepgram struct {
	apiKey     string
	httpClient *http.Client
}

func NewDeepgram(apiKey string) *Deepgram {
	return &Deepgram{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 300 * time.Second,
		},
	}
}

func (d *Deepgram) ID() string { return "deepgram" }

func (d *Deepgram) Models() []audio.Model {
	return []audio.Model{
		{ID: "nova-2", Capabilities: []audio.Capability{audio.CapabilityTranscription}},
	}
}

func (d *Deepgram) Transcribe(ctx context.Context, params audio.TranscriptionParams, auth audio.AuthContext, model string) (*audio.TranscriptResult, error) {
	q := url.Values{}
	q.Set("model", model)
	q.Set("smart_format", "true")
	if params.Language != "" {
		q.Set("language", params.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, deepgramListenURL+"?"+q.Encode(), bytes.NewReader(params.Data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+d.apiKey)
	req.Header.Set("Content-Type", params.MIMEType)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deepgram request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deepgram failed (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Metadata struct {
			Duration float64 `json:"duration"`
		} `json:"metadata"`
		Results struct {
			Channels []struct {
				DetectedLanguage string `json:"detected_language"`
				Alternatives     []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode deepgram response: %w", err)
	}

	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		return nil, fmt.Errorf("deepgram returned no transcript")
	}

	ch := parsed.Results.Channels[0]
	language := ch.DetectedLanguage
	if language == "" {
		language = params.Language
	}

	return &audio.TranscriptResult{
		Text:     ch.Alternatives[0].Transcript,
		Language: language,
		Duration: parsed.Metadata.Duration,
	}, nil
}
