package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Service records one row per tool invocation. Logging is best-effort: the
// callers fire it on a separate goroutine and never block a response on it.
type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// EnsureSchema creates the usage table. Called once at startup.
func (s *Service) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS audio_usage_logs (
			id UUID PRIMARY KEY,
			tool TEXT NOT NULL,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			success BOOLEAN NOT NULL,
			error TEXT,
			payload_bytes BIGINT NOT NULL DEFAULT 0,
			latency_ms BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("create audio_usage_logs: %w", err)
	}
	return nil
}

type UsageEntry struct {
	Tool         string
	Provider     string
	Model        string
	Success      bool
	Error        string
	PayloadBytes int
	LatencyMs    int64
}

func (s *Service) LogUsage(ctx context.Context, entry UsageEntry) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO audio_usage_logs (id, tool, provider, model, success, error, payload_bytes, latency_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New(), entry.Tool, entry.Provider, entry.Model, entry.Success, entry.Error, entry.PayloadBytes, entry.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("insert usage log: %w", err)
	}
	return nil
}

type UsageSummary struct {
	Tool       string `json:"tool"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	TotalCalls int    `json:"total_calls"`
	Failures   int    `json:"failures"`
}

func (s *Service) GetUsageSummary(ctx context.Context, startDate, endDate *time.Time) ([]UsageSummary, error) {
	query := `SELECT tool, provider, model, COUNT(*) as total_calls,
			         COUNT(*) FILTER (WHERE NOT success) as failures
			  FROM audio_usage_logs WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if startDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *startDate)
		argIdx++
	}
	if endDate != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *endDate)
		argIdx++
	}

	query += " GROUP BY tool, provider, model ORDER BY total_calls DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage summary: %w", err)
	}
	defer rows.Close()

	var summaries []UsageSummary
	for rows.Next() {
		var us UsageSummary
		if err := rows.Scan(&us.Tool, &us.Provider, &us.Model, &us.TotalCalls, &us.Failures); err != nil {
			return nil, fmt.Errorf("scan usage summary: %w", err)
		}
		summaries = append(summaries, us)
	}
	return summaries, nil
}
