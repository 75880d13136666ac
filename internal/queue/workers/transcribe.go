package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/voxgate/voxgate/internal/audio"
	"github.com/voxgate/voxgate/internal/queue"
)

type TranscribeWorker struct {
	svc  *audio.Service
	jobs *queue.JobStore
}

func NewTranscribeWorker(svc *audio.Service, jobs *queue.JobStore) *TranscribeWorker {
	return &TranscribeWorker{svc: svc, jobs: jobs}
}

func (w *TranscribeWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.AudioTranscribePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	slog.Info("transcribing audio job", "job_id", payload.JobID)

	rec := queue.JobRecord{
		ID:          payload.JobID,
		Status:      queue.JobRunning,
		SubmittedAt: time.Now(),
	}
	if prev, err := w.jobs.Get(ctx, payload.JobID); err == nil {
		rec.SubmittedAt = prev.SubmittedAt
	}
	if err := w.jobs.Put(ctx, rec); err != nil {
		slog.Warn("failed to mark job running", "job_id", payload.JobID, "error", err)
	}

	resp := w.svc.Transcribe(ctx, payload.Input)

	rec.Result = &resp
	if resp.Success {
		rec.Status = queue.JobCompleted
	} else {
		rec.Status = queue.JobFailed
	}

	if err := w.jobs.Put(ctx, rec); err != nil {
		return fmt.Errorf("store job result: %w", err)
	}

	slog.Info("audio job finished", "job_id", payload.JobID, "status", rec.Status)
	return nil
}
