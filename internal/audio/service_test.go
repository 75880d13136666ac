package audio

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

type stubProvider struct {
	id     string
	models []Model
}

func (p *stubProvider) ID() string      { return p.id }
func (p *stubProvider) Models() []Model { return p.models }

type stubSynthesizer struct {
	stubProvider
	calls      int
	lastParams SynthesisParams
	lastAuth   AuthContext
	lastModel  string
	result     *SpeechResult
	err        error
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, params SynthesisParams, auth AuthContext, model string) (*SpeechResult, error) {
	s.calls++
	s.lastParams = params
	s.lastAuth = auth
	s.lastModel = model
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubTranscriber struct {
	stubProvider
	calls      int
	lastParams TranscriptionParams
	lastModel  string
	result     *TranscriptResult
	err        error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, params TranscriptionParams, auth AuthContext, model string) (*TranscriptResult, error) {
	s.calls++
	s.lastParams = params
	s.lastModel = model
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTTSStub() *stubSynthesizer {
	return &stubSynthesizer{
		stubProvider: stubProvider{
			id: "openai-audio",
			models: []Model{
				{ID: "gpt-4o-mini-tts", Capabilities: []Capability{CapabilityTextToSpeech}},
				{ID: "whisper-1", Capabilities: []Capability{CapabilityTranscription}},
			},
		},
		result: &SpeechResult{Audio: []byte("mp3data"), MIMEType: "audio/mpeg", Voice: "alloy"},
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	stub := newTTSStub()
	svc := NewService(NewRegistry(stub), Settings{TTSAPIKey: "key"})

	for _, text := range []string{"", "   ", "\n\t"} {
		resp := svc.Synthesize(context.Background(), SynthesisInput{Text: text})
		if resp.Success || resp.Error != "Text cannot be empty" {
			t.Fatalf("text %q: got %+v", text, resp)
		}
	}
	if stub.calls != 0 {
		t.Fatalf("provider should not be called, got %d calls", stub.calls)
	}
}

func TestSynthesizeTextTooLong(t *testing.T) {
	stub := newTTSStub()
	svc := NewService(NewRegistry(stub), Settings{TTSAPIKey: "key"})

	resp := svc.Synthesize(context.Background(), SynthesisInput{Text: strings.Repeat("a", MaxTextLen+1)})
	if resp.Success || !strings.Contains(resp.Error, "maximum length") {
		t.Fatalf("expected length error, got %+v", resp)
	}
	if stub.calls != 0 {
		t.Fatal("provider should not be called")
	}
}

func TestSynthesizeNoAPIKey(t *testing.T) {
	stub := newTTSStub()
	svc := NewService(NewRegistry(stub), Settings{})

	resp := svc.Synthesize(context.Background(), SynthesisInput{Text: "hello"})
	if resp.Success || !strings.HasPrefix(resp.Error, "No API key configured") {
		t.Fatalf("expected credential error, got %+v", resp)
	}
	if stub.calls != 0 {
		t.Fatal("no provider call may happen without a credential")
	}
}

func TestSynthesizeUnknownProviderListsAlternatives(t *testing.T) {
	stub := newTTSStub()
	reg := NewRegistry(stub, &stubProvider{id: "deepgram"})
	svc := NewService(reg, Settings{TTSAPIKey: "key"})

	resp := svc.Synthesize(context.Background(), SynthesisInput{Text: "hi", Provider: "acme"})
	want := "Audio provider 'acme' not found. Available: openai-audio, deepgram"
	if resp.Success || resp.Error != want {
		t.Fatalf("got %q, want %q", resp.Error, want)
	}
}

func TestSynthesizeUnsupportedCapability(t *testing.T) {
	// registered but implements no capability interfaces
	reg := NewRegistry(&stubProvider{id: "mute"})
	svc := NewService(reg, Settings{TTSAPIKey: "key"})

	resp := svc.Synthesize(context.Background(), SynthesisInput{Text: "hi", Provider: "mute"})
	if resp.Success || resp.Error != "Provider 'mute' does not support text-to-speech." {
		t.Fatalf("got %+v", resp)
	}
}

func TestSynthesizeEndToEnd(t *testing.T) {
	stub := newTTSStub()
	svc := NewService(NewRegistry(stub), Settings{OpenAIAPIKey: "env-key"})

	resp := svc.Synthesize(context.Background(), SynthesisInput{Text: "Hello, world!", Voice: "alloy"})
	if !resp.Success {
		t.Fatalf("unexpected failure: %s", resp.Error)
	}
	if stub.calls != 1 {
		t.Fatalf("expected one dispatch, got %d", stub.calls)
	}
	if stub.lastModel != "gpt-4o-mini-tts" {
		t.Fatalf("expected first tts-capable model, got %q", stub.lastModel)
	}
	if stub.lastAuth.APIKey != "env-key" {
		t.Fatalf("expected resolved credential, got %q", stub.lastAuth.APIKey)
	}
	if string(resp.Audio) != "mp3data" || resp.MIMEType != "audio/mpeg" || resp.Voice != "alloy" {
		t.Fatalf("result fields not passed through: %+v", resp)
	}
	if resp.Model != "gpt-4o-mini-tts" {
		t.Fatalf("expected resolved model in response, got %q", resp.Model)
	}
}

func TestSynthesizeSpeedClamped(t *testing.T) {
	stub := newTTSStub()
	svc := NewService(NewRegistry(stub), Settings{TTSAPIKey: "key"})

	svc.Synthesize(context.Background(), SynthesisInput{Text: "hi", Speed: 9.5})
	if stub.lastParams.Speed != 4.0 {
		t.Fatalf("expected speed clamped to 4.0, got %v", stub.lastParams.Speed)
	}

	svc.Synthesize(context.Background(), SynthesisInput{Text: "hi", Speed: 0.1})
	if stub.lastParams.Speed != 0.25 {
		t.Fatalf("expected speed clamped to 0.25, got %v", stub.lastParams.Speed)
	}
}

func TestSynthesizeProviderError(t *testing.T) {
	stub := newTTSStub()
	stub.err = errors.New("upstream exploded")
	svc := NewService(NewRegistry(stub), Settings{TTSAPIKey: "key"})

	resp := svc.Synthesize(context.Background(), SynthesisInput{Text: "hi"})
	if resp.Success || resp.Error != "upstream exploded" {
		t.Fatalf("got %+v", resp)
	}
}

func newSTTStub() *stubTranscriber {
	return &stubTranscriber{
		stubProvider: stubProvider{
			id: "openai-audio",
			models: []Model{
				{ID: "gpt-4o-mini-tts", Capabilities: []Capability{CapabilityTextToSpeech}},
				{ID: "whisper-1", Capabilities: []Capability{CapabilityTranscription}},
			},
		},
		result: &TranscriptResult{Text: "hello there", Language: "en", Duration: 2.4},
	}
}

func newSTTService(stub *stubTranscriber, files map[string][]byte) *Service {
	svc := NewService(NewRegistry(stub), Settings{})
	svc.fs = &fakeFS{files: files}
	return svc
}

func TestTranscribeMissingSource(t *testing.T) {
	stub := newSTTStub()
	svc := newSTTService(stub, nil)

	resp := svc.Transcribe(context.Background(), TranscriptionInput{})
	if resp.Success || resp.Error != "Either audioPath or audioBase64 must be provided" {
		t.Fatalf("got %+v", resp)
	}
	if stub.calls != 0 {
		t.Fatal("no dispatch may happen without a source")
	}
}

func TestTranscribeConflictingSources(t *testing.T) {
	svc := newSTTService(newSTTStub(), map[string][]byte{"/a.wav": []byte("x")})

	resp := svc.Transcribe(context.Background(), TranscriptionInput{AudioPath: "/a.wav", AudioBase64: "eA=="})
	if resp.Success || resp.Error != "Provide either audioPath or audioBase64, not both" {
		t.Fatalf("got %+v", resp)
	}
}

func TestTranscribeFileNotFound(t *testing.T) {
	svc := newSTTService(newSTTStub(), nil)

	resp := svc.Transcribe(context.Background(), TranscriptionInput{AudioPath: "/missing.wav"})
	if resp.Success || resp.Error != "File not found: /missing.wav" {
		t.Fatalf("got %+v", resp)
	}
}

func TestTranscribeEndToEnd(t *testing.T) {
	stub := newSTTStub()
	svc := newSTTService(stub, map[string][]byte{"/voice/memo.mp3": []byte("id3data")})

	resp := svc.Transcribe(context.Background(), TranscriptionInput{AudioPath: "/voice/memo.mp3", Language: "en"})
	if !resp.Success {
		t.Fatalf("unexpected failure: %s", resp.Error)
	}
	if stub.lastModel != "whisper-1" {
		t.Fatalf("expected first stt-capable model, got %q", stub.lastModel)
	}
	if stub.lastParams.Filename != "memo.mp3" || stub.lastParams.MIMEType != "audio/mpeg" {
		t.Fatalf("unexpected normalized params: %+v", stub.lastParams)
	}
	if stub.lastParams.Language != "en" {
		t.Fatalf("language hint not forwarded: %+v", stub.lastParams)
	}
	if resp.Text != "hello there" || resp.Language != "en" || resp.Duration != 2.4 {
		t.Fatalf("result fields not passed through: %+v", resp)
	}
}

func TestTranscribeBlobMode(t *testing.T) {
	stub := newSTTStub()
	svc := newSTTService(stub, nil)

	encoded := base64.StdEncoding.EncodeToString([]byte("opusdata"))
	resp := svc.Transcribe(context.Background(), TranscriptionInput{AudioBase64: encoded})
	if !resp.Success {
		t.Fatalf("unexpected failure: %s", resp.Error)
	}
	if stub.lastParams.Filename != "audio.webm" || stub.lastParams.MIMEType != "audio/webm" {
		t.Fatalf("unexpected normalized params: %+v", stub.lastParams)
	}
}

func TestTranscribeUnsupportedCapability(t *testing.T) {
	// text-to-speech only provider asked to transcribe
	stub := newTTSStub()
	svc := NewService(NewRegistry(stub), Settings{})
	svc.fs = &fakeFS{files: map[string][]byte{"/a.wav": []byte("x")}}

	resp := svc.Transcribe(context.Background(), TranscriptionInput{AudioPath: "/a.wav"})
	if resp.Success || resp.Error != "Provider 'openai-audio' does not support transcription." {
		t.Fatalf("got %+v", resp)
	}
}

func TestTranscribeEmptyErrorMessage(t *testing.T) {
	stub := newSTTStub()
	stub.err = errors.New("")
	svc := newSTTService(stub, map[string][]byte{"/a.wav": []byte("x")})

	resp := svc.Transcribe(context.Background(), TranscriptionInput{AudioPath: "/a.wav"})
	if resp.Success || resp.Error != "Unknown error occurred" {
		t.Fatalf("got %+v", resp)
	}
}
