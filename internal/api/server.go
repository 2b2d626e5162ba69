package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/studylink/cnxparse/internal/config"
	"github.com/studylink/cnxparse/internal/library"
	"github.com/studylink/cnxparse/internal/pipeline"
)

// Server is the HTTP API over a textbook library.
type Server struct {
	router chi.Router
	lib    *library.Library
	batch  *pipeline.Batch
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(lib *library.Library, batch *pipeline.Batch, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		lib:   lib,
		batch: batch,
		log:   log,
		cfg:   cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Get("/api/textbook/structure", s.handleStructure)
		r.Get("/api/textbook/module/{moduleID}", s.handleModule)
		r.Get("/api/textbook/module/{moduleID}/text", s.handleModuleText)
		r.Get("/api/textbook/search", s.handleSearch)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
