package audio

import (
	"errors"
	"testing"
)

func testRegistry() *Registry {
	return NewRegistry(
		&stubProvider{
			id: "openai-audio",
			models: []Model{
				{ID: "gpt-4o-mini-tts", Capabilities: []Capability{CapabilityTextToSpeech}},
				{ID: "whisper-1", Capabilities: []Capability{CapabilityTranscription}},
			},
		},
		&stubProvider{
			id: "deepgram",
			models: []Model{
				{ID: "nova-2", Capabilities: []Capability{CapabilityTranscription}},
			},
		},
	)
}

func TestResolveProviderPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		override string
		want     string
	}{
		{"explicit wins over override", "deepgram", "elevenlabs", "deepgram"},
		{"override wins when no explicit", "", "elevenlabs", "elevenlabs"},
		{"default when neither set", "", "", DefaultProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveProvider(tt.explicit, Settings{ProviderOverride: tt.override})
			if got != tt.want {
				t.Fatalf("resolveProvider() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveSynthesisKeyPrecedence(t *testing.T) {
	key, err := resolveSynthesisKey(Settings{TTSAPIKey: "scoped", OpenAIAPIKey: "fallback"})
	if err != nil || key != "scoped" {
		t.Fatalf("expected capability-scoped key, got %q (err %v)", key, err)
	}

	key, err = resolveSynthesisKey(Settings{OpenAIAPIKey: "fallback"})
	if err != nil || key != "fallback" {
		t.Fatalf("expected provider fallback key, got %q (err %v)", key, err)
	}

	_, err = resolveSynthesisKey(Settings{})
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestResolveModelPrecedence(t *testing.T) {
	reg := testRegistry()

	tests := []struct {
		name     string
		explicit string
		override string
		provider string
		cap      Capability
		want     string
	}{
		{"explicit wins", "tts-1-hd", "env-model", "openai-audio", CapabilityTextToSpeech, "tts-1-hd"},
		{"override wins when no explicit", "", "env-model", "openai-audio", CapabilityTextToSpeech, "env-model"},
		{"first capability-tagged model", "", "", "openai-audio", CapabilityTextToSpeech, "gpt-4o-mini-tts"},
		{"first transcription model", "", "", "openai-audio", CapabilityTranscription, "whisper-1"},
		{"unknown provider falls back to default", "", "", "nope", CapabilityTextToSpeech, DefaultTTSModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveModel(tt.explicit, tt.override, tt.provider, tt.cap, reg, DefaultTTSModel)
			if got != tt.want {
				t.Fatalf("resolveModel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("AUDIO_PROVIDER", "deepgram")
	t.Setenv("AUDIO_TTS_MODEL", "tts-1-hd")
	t.Setenv("AUDIO_STT_MODEL", "nova-2")
	t.Setenv("AUDIO_TTS_API_KEY", "scoped")
	t.Setenv("OPENAI_API_KEY", "fallback")

	st := SettingsFromEnv()
	if st.ProviderOverride != "deepgram" || st.TTSModelOverride != "tts-1-hd" || st.STTModelOverride != "nova-2" {
		t.Fatalf("unexpected settings: %+v", st)
	}
	if st.TTSAPIKey != "scoped" || st.OpenAIAPIKey != "fallback" {
		t.Fatalf("unexpected keys: %+v", st)
	}
}

func TestResolveModelFirstModelWhenCapabilityMissing(t *testing.T) {
	reg := NewRegistry(&stubProvider{
		id: "tts-only",
		models: []Model{
			{ID: "voice-a", Capabilities: []Capability{CapabilityTextToSpeech}},
		},
	})

	got := resolveModel("", "", "tts-only", CapabilityTranscription, reg, DefaultSTTModel)
	if got != "voice-a" {
		t.Fatalf("expected fallback to provider's first model, got %q", got)
	}
}
