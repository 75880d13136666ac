package audio

import (
	"encoding/base64"
	"errors"
	"testing"
)

type fakeFS struct {
	files map[string][]byte
}

func (f *fakeFS) Exists(path string) bool {
	_, ok := f.files[path]
	return ok
}

func (f *fakeFS) ReadFile(path string) ([]byte, error) {
	b, ok := f.files[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return b, nil
}

func TestMIMEFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"clip.mp3", "audio/mpeg"},
		{"clip.mpga", "audio/mpeg"},
		{"clip.mp4", "audio/mp4"},
		{"clip.m4a", "audio/m4a"},
		{"clip.wav", "audio/wav"},
		{"clip.webm", "audio/webm"},
		{"clip.ogg", "audio/ogg"},
		{"clip.FLAC", "audio/flac"},
		{"clip.xyz", "audio/webm"},
		{"noextension", "audio/webm"},
	}

	for _, tt := range tests {
		if got := mimeFromFilename(tt.filename); got != tt.want {
			t.Errorf("mimeFromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestNormalizePayloadPathMode(t *testing.T) {
	fs := &fakeFS{files: map[string][]byte{"/tmp/voice/clip.wav": []byte("RIFF")}}

	params, err := normalizePayload(TranscriptionInput{AudioPath: "/tmp/voice/clip.wav"}, fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Filename != "clip.wav" {
		t.Fatalf("expected base name, got %q", params.Filename)
	}
	if params.MIMEType != "audio/wav" {
		t.Fatalf("expected audio/wav, got %q", params.MIMEType)
	}
	if string(params.Data) != "RIFF" {
		t.Fatalf("unexpected data %q", params.Data)
	}
}

func TestNormalizePayloadBlobMode(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("oggdata"))

	params, err := normalizePayload(TranscriptionInput{AudioBase64: encoded}, &fakeFS{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Filename != "audio.webm" {
		t.Fatalf("expected default filename, got %q", params.Filename)
	}
	if params.MIMEType != "audio/webm" {
		t.Fatalf("expected audio/webm, got %q", params.MIMEType)
	}

	params, err = normalizePayload(TranscriptionInput{AudioBase64: encoded, Filename: "note.ogg"}, &fakeFS{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Filename != "note.ogg" || params.MIMEType != "audio/ogg" {
		t.Fatalf("expected caller filename to win, got %q (%s)", params.Filename, params.MIMEType)
	}
}

func TestNormalizePayloadInvalidBase64(t *testing.T) {
	_, err := normalizePayload(TranscriptionInput{AudioBase64: "!!not-base64!!"}, &fakeFS{})
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNormalizePayloadSizeBoundaries(t *testing.T) {
	atLimit := make([]byte, MaxAudioBytes)
	fs := &fakeFS{files: map[string][]byte{
		"/a/limit.mp3": atLimit,
		"/a/over.mp3":  make([]byte, MaxAudioBytes+1),
		"/a/empty.mp3": {},
	}}

	if _, err := normalizePayload(TranscriptionInput{AudioPath: "/a/limit.mp3"}, fs); err != nil {
		t.Fatalf("25 MiB payload should pass, got %v", err)
	}

	_, err := normalizePayload(TranscriptionInput{AudioPath: "/a/over.mp3"}, fs)
	if err == nil || err.Error() != "Audio file too large. Maximum size is 25MB." {
		t.Fatalf("expected too-large error, got %v", err)
	}

	_, err = normalizePayload(TranscriptionInput{AudioPath: "/a/empty.mp3"}, fs)
	if err == nil || err.Error() != "Audio file is empty." {
		t.Fatalf("expected empty error, got %v", err)
	}
}
