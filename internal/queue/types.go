package queue

import "github.com/voxgate/voxgate/internal/audio"

const TypeAudioTranscribe = "audio:transcribe"

type AudioTranscribePayload struct {
	JobID string                   `json:"job_id"`
	Input audio.TranscriptionInput `json:"input"`
}
