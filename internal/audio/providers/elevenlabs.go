package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/voxgate/voxgate/internal/audio"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io/v1"

// Rachel, the ElevenLabs default voice.
const elevenLabsDefaultVoice = "21m00Tcm4TlvDq8ikWAM"

// ElevenLabs synthesizes speech via the ElevenLabs HTTP API. Transcription is
// not offered, so the struct deliberately implements Synthesizer only.
type ElevenLabs struct {
	baseURL    string
	httpClient *http.Client
}

func NewElevenLabs() *ElevenLabs {
	return &ElevenLabs{
		baseURL: elevenLabsBaseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (e *ElevenLabs) ID() string { return "elevenlabs" }

func (e *ElevenLabs) Models() []audio.Model {
	return []audio.Model{
		{ID: "eleven_multilingual_v2", Capabilities: []audio.Capability{audio.CapabilityTextToSpeech}},
		{ID: "eleven_turbo_v2_5", Capabilities: []audio.Capability{audio.CapabilityTextToSpeech}},
	}
}

func (e *ElevenLabs) Synthesize(ctx context.Context, params audio.SynthesisParams, auth audio.AuthContext, model string) (*audio.SpeechResult, error) {
	voice := params.Voice
	if voice == "" {
		voice = elevenLabsDefaultVoice
	}

	body := map[string]any{
		"text":     params.Text,
		"model_id": model,
	}
	if params.Speed > 0 {
		body["voice_settings"] = map[string]any{"speed": params.Speed}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", e.baseURL, voice)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", auth.APIKey)

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("elevenlabs failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	return &audio.SpeechResult{
		Audio:    audioData,
		MIMEType: "audio/mpeg",
		Voice:    voice,
	}, nil
}
