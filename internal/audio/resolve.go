package audio

import (
	"errors"
	"os"
)

// Hardcoded defaults used when neither the request nor the environment
// supplies a value and the registry cannot help.
const (
	DefaultProvider = "openai-audio"
	DefaultTTSModel = "gpt-4o-mini-tts"
	DefaultSTTModel = "whisper-1"
)

// Settings is the process-wide configuration the resolver reads. It is an
// explicit value, captured from the environment only at the outermost
// boundary, so resolution stays a pure function of (request, settings).
type Settings struct {
	ProviderOverride string // AUDIO_PROVIDER
	TTSModelOverride string // AUDIO_TTS_MODEL
	STTModelOverride string // AUDIO_STT_MODEL
	TTSAPIKey        string // AUDIO_TTS_API_KEY
	OpenAIAPIKey     string // OPENAI_API_KEY
}

// SettingsFromEnv captures the override variables from the process
// environment.
func SettingsFromEnv() Settings {
	return Settings{
		ProviderOverride: os.Getenv("AUDIO_PROVIDER"),
		TTSModelOverride: os.Getenv("AUDIO_TTS_MODEL"),
		STTModelOverride: os.Getenv("AUDIO_STT_MODEL"),
		TTSAPIKey:        os.Getenv("AUDIO_TTS_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
	}
}

// ErrNoAPIKey is returned when the synthesis credential chain resolves empty.
var ErrNoAPIKey = errors.New("No API key configured. Set AUDIO_TTS_API_KEY or OPENAI_API_KEY.")

// resolveProvider picks the provider id: request, then env override, then the
// hardcoded default. First non-empty wins.
func resolveProvider(explicit string, st Settings) string {
	if explicit != "" {
		return explicit
	}
	if st.ProviderOverride != "" {
		return st.ProviderOverride
	}
	return DefaultProvider
}

// resolveSynthesisKey picks the synthesis credential: the capability-scoped
// variable, then the provider-specific fallback. An empty result is a
// configuration error and no provider call is attempted.
func resolveSynthesisKey(st Settings) (string, error) {
	if st.TTSAPIKey != "" {
		return st.TTSAPIKey, nil
	}
	if st.OpenAIAPIKey != "" {
		return st.OpenAIAPIKey, nil
	}
	return "", ErrNoAPIKey
}

// resolveModel picks the model id: request, then env override, then the
// resolved provider's first model tagged with the capability, then the
// provider's first model, then the hardcoded default when the provider is
// unknown to the registry.
func resolveModel(explicit, override, providerID string, capability Capability, reg *Registry, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if override != "" {
		return override
	}

	p, ok := reg.Get(providerID)
	if !ok {
		return fallback
	}

	models := p.Models()
	for _, m := range models {
		for _, c := range m.Capabilities {
			if c == capability {
				return m.ID
			}
		}
	}
	if len(models) > 0 {
		return models[0].ID
	}
	return fallback
}
