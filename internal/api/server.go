package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/moodline/internal/analysis"
	"github.com/MikeSquared-Agency/moodline/internal/youtube"
)

// Analyzer is the pipeline surface the HTTP API exposes.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*analysis.Result, error)
	Transcript(ctx context.Context, req analysis.Request) (*analysis.Transcript, error)
	VideoDetails(ctx context.Context, urlOrID string) (youtube.VideoDetails, error)
	Get(ctx context.Context, id uuid.UUID) (*analysis.Result, error)
	History(ctx context.Context, urlOrID string, limit int) ([]analysis.Summary, error)
}

type Server struct {
	router   *chi.Mux
	port     int
	analyzer Analyzer
	scorer   string
	http     *http.Server
}

func NewServer(port int, apiToken string, analyzer Analyzer, scorer string) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		port:     port,
		analyzer: analyzer,
		scorer:   scorer,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/moodline/status", s.status)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		r.Post("/analyze", s.analyze)
		r.Post("/transcript", s.transcript)
		r.Get("/videos/{videoID}", s.videoDetails)
		r.Get("/videos/{videoID}/analyses", s.videoAnalyses)
		r.Get("/analyses/{id}", s.getAnalysis)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("API server starting", "addr", addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"agent":  "moodline",
		"status": "ready",
		"scorer": s.scorer,
	})
}
