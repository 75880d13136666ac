package providers

import (
	"bytes"
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voxgate/voxgate/internal/audio"
)

// OpenAI serves both capabilities through the OpenAI audio API.
//
// Synthesis authenticates with the credential resolved by the tool layer.
// Transcription owns its credential: the key handed to NewOpenAI wins, and an
// AuthContext key is only used when no key was configured.
type OpenAI struct {
	transcriptionKey string
}

func NewOpenAI(transcriptionKey string) *OpenAI {
	return &OpenAI{transcriptionKey: transcriptionKey}
}

func (o *OpenAI) ID() string { return "openai-audio" }

func (o *OpenAI) Models() []audio.Model {
	return []audio.Model{
		{ID: "gpt-4o-mini-tts", Capabilities: []audio.Capability{audio.CapabilityTextToSpeech}},
		{ID: "tts-1", Capabilities: []audio.Capability{audio.CapabilityTextToSpeech}},
		{ID: "tts-1-hd", Capabilities: []audio.Capability{audio.CapabilityTextToSpeech}},
		{ID: "whisper-1", Capabilities: []audio.Capability{audio.CapabilityTranscription}},
		{ID: "gpt-4o-transcribe", Capabilities: []audio.Capability{audio.CapabilityTranscription}},
	}
}

func (o *OpenAI) Synthesize(ctx context.Context, params audio.SynthesisParams, auth audio.AuthContext, model string) (*audio.SpeechResult, error) {
	voice := params.Voice
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}

	req := openai.CreateSpeechRequest{
		Model: openai.SpeechModel(model),
		Input: params.Text,
		Voice: openai.SpeechVoice(voice),
	}
	if params.Speed > 0 {
		req.Speed = params.Speed
	}
	if params.Format != "" {
		req.ResponseFormat = openai.SpeechResponseFormat(params.Format)
	}
	if params.Instructions != "" {
		req.Instructions = params.Instructions
	}

	client := openai.NewClient(auth.APIKey)
	resp, err := client.CreateSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	return &audio.SpeechResult{
		Audio:    data,
		MIMEType: speechMIME(params.Format),
		Voice:    voice,
	}, nil
}

func (o *OpenAI) Transcribe(ctx context.Context, params audio.TranscriptionParams, auth audio.AuthContext, model string) (*audio.TranscriptResult, error) {
	key := o.transcriptionKey
	if key == "" {
		key = auth.APIKey
	}

	client := openai.NewClient(key)
	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    model,
		Reader:   bytes.NewReader(params.Data),
		FilePath: params.Filename,
		Language: params.Language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("openai transcription: %w", err)
	}

	return &audio.TranscriptResult{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
	}, nil
}

// speechMIME maps the requested output format to the content type OpenAI
// returns. Default output is MP3.
func speechMIME(format string) string {
	switch format {
	case "opus":
		return "audio/opus"
	case "aac":
		return "audio/aac"
	case "flac":
		return "audio/flac"
	case "wav":
		return "audio/wav"
	case "pcm":
		return "audio/pcm"
	default:
		return "audio/mpeg"
	}
}
