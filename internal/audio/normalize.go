package audio

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxAudioBytes is the upload ceiling enforced after the payload is
// materialized, before dispatch. 25 MiB, matching the common provider limit.
const MaxAudioBytes = 25 << 20

const defaultFilename = "audio.webm"

var (
	errAudioEmpty    = errors.New("Audio file is empty.")
	errAudioTooLarge = errors.New("Audio file too large. Maximum size is 25MB.")
)

var mimeByExt = map[string]string{
	"mp3":  "audio/mpeg",
	"mpeg": "audio/mpeg",
	"mpga": "audio/mpeg",
	"mp4":  "audio/mp4",
	"m4a":  "audio/m4a",
	"wav":  "audio/wav",
	"webm": "audio/webm",
	"ogg":  "audio/ogg",
	"flac": "audio/flac",
}

// mimeFromFilename maps a filename extension to the MIME type attached to the
// outbound multipart payload. Unrecognized extensions fall back to webm.
func mimeFromFilename(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if mime, ok := mimeByExt[ext]; ok {
		return mime
	}
	return "audio/webm"
}

// FileReader is the filesystem collaborator for path-mode input.
type FileReader interface {
	Exists(path string) bool
	ReadFile(path string) ([]byte, error)
}

type osFileReader struct{}

func (osFileReader) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// normalizePayload materializes the audio bytes from either input mode and
// derives the filename and MIME type. Size limits are checked here, after
// materialization and before any dispatch.
func normalizePayload(in TranscriptionInput, fs FileReader) (*TranscriptionParams, error) {
	var (
		data     []byte
		filename string
	)

	if in.AudioPath != "" {
		b, err := fs.ReadFile(in.AudioPath)
		if err != nil {
			return nil, fmt.Errorf("read audio file: %w", err)
		}
		data = b
		filename = filepath.Base(in.AudioPath)
	} else {
		b, err := base64.StdEncoding.DecodeString(in.AudioBase64)
		if err != nil {
			return nil, fmt.Errorf("decode audio data: %w", err)
		}
		data = b
		filename = in.Filename
		if filename == "" {
			filename = defaultFilename
		}
	}

	if len(data) == 0 {
		return nil, errAudioEmpty
	}
	if len(data) > MaxAudioBytes {
		return nil, errAudioTooLarge
	}

	return &TranscriptionParams{
		Data:     data,
		Filename: filename,
		MIMEType: mimeFromFilename(filename),
		Language: in.Language,
	}, nil
}
