package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baxromumarov/lead-sieve/internal/config"
	"github.com/baxromumarov/lead-sieve/internal/core"
	"github.com/baxromumarov/lead-sieve/internal/observability"
	"github.com/baxromumarov/lead-sieve/internal/store"
)

// Store is the persistence surface the API depends on; *store.Store
// satisfies it.
type Store interface {
	LoadKeywords(ctx context.Context, kind string) ([]string, error)
	AddKeywords(ctx context.Context, kind string, words []string) (int, error)
	SaveBatch(ctx context.Context, batch store.Batch, leads []store.Lead) error
	GetBatch(ctx context.Context, id string) (*store.Batch, error)
	ListBatches(ctx context.Context, limit, offset int) ([]store.Batch, int, error)
	GetLeads(ctx context.Context, batchID string, relevant *bool, limit, offset int) ([]store.Lead, int, error)
	GetBatchLeads(ctx context.Context, batchID string, relevant *bool) ([]store.Lead, error)
}

type Server struct {
	router *chi.Mux
	store  Store
	filter *core.FilterService
	cfg    *config.Config
}

func NewServer(store Store, filter *core.FilterService, cfg *config.Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		store:  store,
		filter: filter,
		cfg:    cfg,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/stats", s.handleStats)
	s.router.Handle("/metrics", promhttp.Handler())

	uploads := newRateLimiter(s.cfg.UploadsPerMinute)
	s.router.With(uploads.middleware).Post("/batches", s.handleCreateBatch)
	s.router.Get("/batches", s.handleListBatches)
	s.router.Get("/batches/{id}", s.handleGetBatch)
	s.router.Get("/batches/{id}/leads", s.handleListLeads)
	s.router.Get("/batches/{id}/download", s.handleDownloadBatch)

	s.router.Get("/keywords", s.handleListKeywords)
	s.router.Post("/keywords", s.handleAddKeywords)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
