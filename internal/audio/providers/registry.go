package providers

import (
	"github.com/voxgate/voxgate/internal/audio"
	"github.com/voxgate/voxgate/internal/config"
)

// NewRegistry builds the default provider set. OpenAI and ElevenLabs are
// always registered because their synthesis credential arrives per call via
// the AuthContext; Deepgram holds its own key and is only registered when one
// is configured.
func NewRegistry(cfg config.AudioConfig) *audio.Registry {
	sttKey := cfg.STTAPIKey
	if sttKey == "" {
		sttKey = cfg.OpenAIKey
	}

	reg := audio.NewRegistry(
		NewOpenAI(sttKey),
		NewElevenLabs(),
	)
	if cfg.DeepgramKey != "" {
		reg.Register(NewDeepgram(cfg.DeepgramKey))
	}
	return reg
}
