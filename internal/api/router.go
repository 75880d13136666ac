package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/voxgate/voxgate/internal/api/handlers"
	"github.com/voxgate/voxgate/internal/api/middleware"
	"github.com/voxgate/voxgate/internal/audio"
	"github.com/voxgate/voxgate/internal/audio/providers"
	"github.com/voxgate/voxgate/internal/audit"
	"github.com/voxgate/voxgate/internal/auth"
	"github.com/voxgate/voxgate/internal/cache"
	"github.com/voxgate/voxgate/internal/config"
	"github.com/voxgate/voxgate/internal/queue"
	"github.com/voxgate/voxgate/internal/storage"
)

type Router struct {
	mux      *chi.Mux
	db       *pgxpool.Pool
	redis    *redis.Client
	cfg      *config.Config
	jwt      *auth.JWTMiddleware
	apikey   *auth.APIKeyMiddleware
	registry *audio.Registry
	svc      *audio.Service
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	registry := providers.NewRegistry(cfg.Audio)
	return &Router{
		mux:      chi.NewRouter(),
		db:       db,
		redis:    rdb,
		cfg:      cfg,
		jwt:      auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
		apikey:   auth.NewAPIKeyMiddleware(db, cfg.Auth.APIKeyHeader),
		registry: registry,
		svc:      audio.NewService(registry, audio.SettingsFromEnv()),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Collaborators for the audio handlers
	var store storage.BlobStore
	if s, err := storage.NewLocalStore(rt.cfg.Storage.Dir); err != nil {
		slog.Warn("audio storage unavailable", "error", err)
	} else {
		store = s
	}

	var auditSvc *audit.Service
	if rt.db != nil {
		auditSvc = audit.NewService(rt.db)
	}

	var (
		queueCli *queue.Client
		jobs     *queue.JobStore
	)
	if rt.redis != nil {
		queueCli = queue.NewClient(rt.cfg.Redis)
		jobs = queue.NewJobStore(cache.NewCache(rt.redis))
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Auth: try API key first, then JWT
		r.Use(rt.apikey.Authenticate)
		r.Use(rt.jwt.Authenticate)

		audioH := handlers.NewAudioHandler(rt.svc, rt.registry, store, auditSvc, queueCli, jobs)
		r.Route("/audio", func(r chi.Router) {
			r.Post("/speech", audioH.Speak)
			r.Post("/transcriptions", audioH.Transcribe)
			r.Post("/transcriptions/async", audioH.TranscribeAsync)
			r.Get("/jobs/{id}", audioH.JobStatus)
			r.Get("/providers", audioH.Providers)
		})

		adminH := handlers.NewAdminHandler(auditSvc)
		r.Route("/admin", func(r chi.Router) {
			r.Get("/usage", adminH.Usage)
		})
	})

	return r
}
