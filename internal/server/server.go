// Package server provides the HTTP REST API for roadmap generation and
// retrieval.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careerlockin/careerlockin/internal/db"
	"github.com/careerlockin/careerlockin/internal/pipeline"
)

// RoadmapGenerator runs the generation pipeline for one user.
type RoadmapGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (*pipeline.Result, error)
}

// RoadmapReader answers read queries against persisted roadmaps.
type RoadmapReader interface {
	GetRoadmap(ctx context.Context, roadmapID uuid.UUID) (*db.StoredRoadmap, error)
	ListRoadmaps(ctx context.Context, userID uuid.UUID) ([]db.RoadmapSummary, error)
}

// Server is the HTTP API. Generation requests block until the pipeline
// finishes; the write timeout must cover a full model call.
type Server struct {
	generator RoadmapGenerator
	roadmaps  RoadmapReader
	log       zerolog.Logger

	httpServer *http.Server
}

// New creates a server from its collaborators.
func New(generator RoadmapGenerator, roadmaps RoadmapReader, log zerolog.Logger) *Server {
	return &Server{
		generator: generator,
		roadmaps:  roadmaps,
		log:       log,
	}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Post("/api/roadmaps", s.createRoadmap)
	r.Get("/api/roadmaps", s.listRoadmaps)
	r.Get("/api/roadmaps/{id}", s.getRoadmap)
	r.Get("/health", s.handleHealth)

	return r
}

// Start listens on the given port and blocks until SIGINT or SIGTERM, then
// shuts down gracefully.
func (s *Server) Start(port int) error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // generation blocks on the model call
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info().Msg("server stopped")
	return nil
}

// requestLogger logs each request on completion with its status and timing.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
