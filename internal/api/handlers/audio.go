package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/voxgate/voxgate/internal/audio"
	"github.com/voxgate/voxgate/internal/audit"
	"github.com/voxgate/voxgate/internal/queue"
	"github.com/voxgate/voxgate/internal/storage"
)

// AudioHandler exposes the synthesis and transcription tools over HTTP. The
// tool result envelope is returned as-is: callers check the success flag, not
// the status code, for expected failures.
type AudioHandler struct {
	svc      *audio.Service
	registry *audio.Registry
	store    storage.BlobStore
	auditSvc *audit.Service
	queueCli *queue.Client
	jobs     *queue.JobStore
}

func NewAudioHandler(svc *audio.Service, registry *audio.Registry, store storage.BlobStore, auditSvc *audit.Service, queueCli *queue.Client, jobs *queue.JobStore) *AudioHandler {
	return &AudioHandler{
		svc:      svc,
		registry: registry,
		store:    store,
		auditSvc: auditSvc,
		queueCli: queueCli,
		jobs:     jobs,
	}
}

// Speak converts text to audio.
func (h *AudioHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var in audio.SynthesisInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	start := time.Now()
	resp := h.svc.Synthesize(r.Context(), in)

	if resp.Success && h.store != nil {
		name := uuid.NewString() + extForMIME(resp.MIMEType)
		path, err := h.store.Save(r.Context(), name, resp.Audio, resp.MIMEType)
		if err != nil {
			slog.Warn("failed to persist audio", "error", err)
		} else {
			resp.AudioPath = path
		}
	}

	h.logUsage(audit.UsageEntry{
		Tool:         "text_to_speech",
		Provider:     h.svc.ResolveProvider(in.Provider),
		Model:        resp.Model,
		Success:      resp.Success,
		Error:        resp.Error,
		PayloadBytes: len(resp.Audio),
		LatencyMs:    time.Since(start).Milliseconds(),
	})

	writeJSON(w, http.StatusOK, resp)
}

// Transcribe converts audio to text.
func (h *AudioHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	var in audio.TranscriptionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	start := time.Now()
	resp := h.svc.Transcribe(r.Context(), in)

	h.logUsage(audit.UsageEntry{
		Tool:         "transcribe_audio",
		Provider:     h.svc.ResolveProvider(in.Provider),
		Model:        in.Model,
		Success:      resp.Success,
		Error:        resp.Error,
		PayloadBytes: len(in.AudioBase64) / 4 * 3,
		LatencyMs:    time.Since(start).Milliseconds(),
	})

	writeJSON(w, http.StatusOK, resp)
}

// TranscribeAsync enqueues a transcription job and returns its id.
func (h *AudioHandler) TranscribeAsync(w http.ResponseWriter, r *http.Request) {
	if h.queueCli == nil || h.jobs == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "job queue unavailable"})
		return
	}

	var in audio.TranscriptionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	jobID := uuid.NewString()
	rec := queue.JobRecord{
		ID:          jobID,
		Status:      queue.JobQueued,
		SubmittedAt: time.Now(),
	}
	if err := h.jobs.Put(r.Context(), rec); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create job"})
		return
	}

	if err := h.queueCli.EnqueueAudioTranscribe(queue.AudioTranscribePayload{JobID: jobID, Input: in}); err != nil {
		slog.Error("failed to enqueue transcription", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to enqueue job"})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID, "status": string(queue.JobQueued)})
}

// JobStatus returns the state and, once finished, the result of an async job.
func (h *AudioHandler) JobStatus(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "job queue unavailable"})
		return
	}

	id := chi.URLParam(r, "id")
	rec, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

type providerInfo struct {
	ID     string        `json:"id"`
	Models []audio.Model `json:"models"`
}

// Providers lists the registered providers and their models.
func (h *AudioHandler) Providers(w http.ResponseWriter, r *http.Request) {
	list := h.registry.List()
	out := make([]providerInfo, 0, len(list))
	for _, p := range list {
		out = append(out, providerInfo{ID: p.ID(), Models: p.Models()})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"providers": out})
}

func (h *AudioHandler) logUsage(entry audit.UsageEntry) {
	if h.auditSvc == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.auditSvc.LogUsage(ctx, entry); err != nil {
			slog.Warn("failed to log usage", "error", err)
		}
	}()
}

func extForMIME(mime string) string {
	switch mime {
	case "audio/mpeg":
		return ".mp3"
	case "audio/wav":
		return ".wav"
	case "audio/opus":
		return ".opus"
	case "audio/aac":
		return ".aac"
	case "audio/flac":
		return ".flac"
	default:
		return ".bin"
	}
}
