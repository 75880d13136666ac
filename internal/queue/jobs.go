package queue

import (
	"context"
	"time"

	"github.com/voxgate/voxgate/internal/audio"
	"github.com/voxgate/voxgate/internal/cache"
)

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// JobRecord tracks one async transcription from enqueue to result.
type JobRecord struct {
	ID          string                       `json:"id"`
	Status      JobStatus                    `json:"status"`
	SubmittedAt time.Time                    `json:"submitted_at"`
	Result      *audio.TranscriptionResponse `json:"result,omitempty"`
}

const jobTTL = 24 * time.Hour

// JobStore keeps job records in redis so the API and the worker share them.
type JobStore struct {
	cache *cache.Cache
}

func NewJobStore(c *cache.Cache) *JobStore {
	return &JobStore{cache: c}
}

func (s *JobStore) Put(ctx context.Context, rec JobRecord) error {
	return s.cache.Set(ctx, jobKey(rec.ID), rec, jobTTL)
}

func (s *JobStore) Get(ctx context.Context, id string) (*JobRecord, error) {
	var rec JobRecord
	if err := s.cache.Get(ctx, jobKey(id), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func jobKey(id string) string { return "audio:job:" + id }
