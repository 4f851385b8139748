package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lakeworks/ragline/internal/api"
	"github.com/lakeworks/ragline/internal/api/handlers"
	"github.com/lakeworks/ragline/internal/api/middleware"
)

type RouterConfig struct {
	IngestHandler *handlers.IngestHandler
	QueryHandler  *handlers.QueryHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/documents", cfg.IngestHandler.Ingest)
	r.Post("/chat", cfg.QueryHandler.Chat)

	return r
}
