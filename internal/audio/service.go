package audio

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTextLen caps the synthesis input length in characters.
const MaxTextLen = 4096

// Service exposes the two audio tool entry points. Expected failures are
// returned inside the response, never as a Go error, so callers can
// pattern-match on Success.
type Service struct {
	registry *Registry
	settings Settings
	fs       FileReader
}

func NewService(registry *Registry, settings Settings) *Service {
	return &Service{
		registry: registry,
		settings: settings,
		fs:       osFileReader{},
	}
}

// Synthesize converts text to speech with the resolved provider and model.
func (s *Service) Synthesize(ctx context.Context, in SynthesisInput) SynthesisResponse {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return SynthesisResponse{Error: "Text cannot be empty"}
	}
	if utf8.RuneCountInString(text) > MaxTextLen {
		return SynthesisResponse{Error: fmt.Sprintf("Text exceeds maximum length of %d characters", MaxTextLen)}
	}

	key, err := resolveSynthesisKey(s.settings)
	if err != nil {
		return SynthesisResponse{Error: err.Error()}
	}

	cfg := ResolvedConfig{
		Provider: resolveProvider(in.Provider, s.settings),
		APIKey:   key,
	}
	cfg.Model = resolveModel(in.Model, s.settings.TTSModelOverride, cfg.Provider, CapabilityTextToSpeech, s.registry, DefaultTTSModel)

	p, ok := s.registry.Get(cfg.Provider)
	if !ok {
		return SynthesisResponse{Error: unknownProviderError(cfg.Provider, s.registry)}
	}
	synth, ok := p.(Synthesizer)
	if !ok {
		return SynthesisResponse{Error: fmt.Sprintf("Provider '%s' does not support %s.", cfg.Provider, CapabilityTextToSpeech)}
	}

	params := SynthesisParams{
		Text:         text,
		Voice:        in.Voice,
		Speed:        clampSpeed(in.Speed),
		Format:       in.Format,
		Instructions: in.Instructions,
	}

	result, err := synth.Synthesize(ctx, params, AuthContext{APIKey: cfg.APIKey}, cfg.Model)
	if err != nil {
		return SynthesisResponse{Error: errorMessage(err)}
	}

	return SynthesisResponse{
		Success:  true,
		Audio:    result.Audio,
		MIMEType: result.MIMEType,
		Model:    cfg.Model,
		Voice:    result.Voice,
	}
}

// Transcribe converts audio to text with the resolved provider and model.
// Credential resolution for transcription is owned by the provider itself,
// so the AuthContext is passed through empty unless a caller supplies one
// upstream.
func (s *Service) Transcribe(ctx context.Context, in TranscriptionInput) TranscriptionResponse {
	if in.AudioPath == "" && in.AudioBase64 == "" {
		return TranscriptionResponse{Error: "Either audioPath or audioBase64 must be provided"}
	}
	if in.AudioPath != "" && in.AudioBase64 != "" {
		return TranscriptionResponse{Error: "Provide either audioPath or audioBase64, not both"}
	}
	if in.AudioPath != "" && !s.fs.Exists(in.AudioPath) {
		return TranscriptionResponse{Error: "File not found: " + in.AudioPath}
	}

	cfg := ResolvedConfig{
		Provider: resolveProvider(in.Provider, s.settings),
	}
	cfg.Model = resolveModel(in.Model, s.settings.STTModelOverride, cfg.Provider, CapabilityTranscription, s.registry, DefaultSTTModel)

	params, err := normalizePayload(in, s.fs)
	if err != nil {
		return TranscriptionResponse{Error: errorMessage(err)}
	}

	p, ok := s.registry.Get(cfg.Provider)
	if !ok {
		return TranscriptionResponse{Error: unknownProviderError(cfg.Provider, s.registry)}
	}
	tr, ok := p.(Transcriber)
	if !ok {
		return TranscriptionResponse{Error: fmt.Sprintf("Provider '%s' does not support %s.", cfg.Provider, CapabilityTranscription)}
	}

	result, err := tr.Transcribe(ctx, *params, AuthContext{}, cfg.Model)
	if err != nil {
		return TranscriptionResponse{Error: errorMessage(err)}
	}

	return TranscriptionResponse{
		Success:  true,
		Text:     result.Text,
		Language: result.Language,
		Duration: result.Duration,
	}
}

// ResolveProvider reports which provider a request with the given explicit
// value would dispatch to. Used by callers that need the id for telemetry.
func (s *Service) ResolveProvider(explicit string) string {
	return resolveProvider(explicit, s.settings)
}

func unknownProviderError(id string, reg *Registry) string {
	return fmt.Sprintf("Audio provider '%s' not found. Available: %s", id, strings.Join(reg.IDs(), ", "))
}

// clampSpeed keeps the playback rate inside the range providers accept.
// Zero means "not set" and is forwarded as-is.
func clampSpeed(speed float64) float64 {
	if speed == 0 {
		return 0
	}
	if speed < 0.25 {
		return 0.25
	}
	if speed > 4.0 {
		return 4.0
	}
	return speed
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "Unknown error occurred"
	}
	return err.Error()
}
