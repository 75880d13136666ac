package audio

// Capability names a function a provider may support.
type Capability string

const (
	CapabilityTextToSpeech  Capability = "text-to-speech"
	CapabilityTranscription Capability = "transcription"
)

// SynthesisInput holds the parameters for a text-to-speech tool call.
type SynthesisInput struct {
	Text         string  `json:"text"`
	Provider     string  `json:"provider,omitempty"`
	Model        string  `json:"model,omitempty"`
	Voice        string  `json:"voice,omitempty"`
	Speed        float64 `json:"speed,omitempty"`
	Format       string  `json:"format,omitempty"`
	Instructions string  `json:"instructions,omitempty"`
}

// TranscriptionInput holds the parameters for a speech-to-text tool call.
// Exactly one of AudioPath or AudioBase64 must be set.
type TranscriptionInput struct {
	AudioPath   string `json:"audio_path,omitempty"`
	AudioBase64 string `json:"audio_base64,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Language    string `json:"language,omitempty"`
	Provider    string `json:"provider,omitempty"`
	Model       string `json:"model,omitempty"`
}

// SynthesisResponse is the uniform result of a synthesis call. Exactly one of
// the audio fields or Error is populated depending on Success.
type SynthesisResponse struct {
	Success   bool   `json:"success"`
	Audio     []byte `json:"audio,omitempty"`
	MIMEType  string `json:"mime_type,omitempty"`
	Model     string `json:"model,omitempty"`
	Voice     string `json:"voice,omitempty"`
	AudioPath string `json:"audio_path,omitempty"`
	Error     string `json:"error,omitempty"`
}

// TranscriptionResponse is the uniform result of a transcription call.
type TranscriptionResponse struct {
	Success  bool    `json:"success"`
	Text     string  `json:"text,omitempty"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// ResolvedConfig is the provider/model/credential triple computed for one
// call. It is built fresh per call and never cached.
type ResolvedConfig struct {
	Provider string
	Model    string
	APIKey   string
}

// AuthContext carries the resolved credential into a capability call.
type AuthContext struct {
	APIKey string
}

// SynthesisParams are the normalized fields handed to a Synthesizer.
type SynthesisParams struct {
	Text         string
	Voice        string
	Speed        float64
	Format       string
	Instructions string
}

// SpeechResult is the raw result of a Synthesizer call.
type SpeechResult struct {
	Audio    []byte
	MIMEType string
	Voice    string
}

// TranscriptionParams are the normalized fields handed to a Transcriber.
type TranscriptionParams struct {
	Data     []byte
	Filename string
	MIMEType string
	Language string
}

// TranscriptResult is the raw result of a Transcriber call.
type TranscriptResult struct {
	Text     string
	Language string
	Duration float64
}
