package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/careerlockin/careerlockin/internal/db"
)

// createRoadmapRequest is the body for POST /api/roadmaps.
type createRoadmapRequest struct {
	UserID string `json:"user_id"`
}

// createRoadmap runs the full generation pipeline for a user and returns
// the persisted roadmap. The request blocks for the duration of the
// pipeline, including the model call.
func (s *Server) createRoadmap(w http.ResponseWriter, r *http.Request) {
	var req createRoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "user_id must be a valid UUID")
		return
	}

	result, err := s.generator.Generate(r.Context(), userID)
	if err != nil {
		s.writeGenerationError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":         result.RoadmapID,
		"model_name": result.ModelName,
		"roadmap":    result.Roadmap,
	})
}

// getRoadmap returns one persisted roadmap with its phases regrouped.
func (s *Server) getRoadmap(w http.ResponseWriter, r *http.Request) {
	roadmapID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "roadmap id must be a valid UUID")
		return
	}

	rm, err := s.roadmaps.GetRoadmap(r.Context(), roadmapID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "roadmap not found")
			return
		}
		s.log.Error().Err(err).Msg("get roadmap")
		s.errorResponse(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.jsonResponse(w, http.StatusOK, rm)
}

// listRoadmaps returns the roadmap summaries owned by a user.
func (s *Server) listRoadmaps(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "user_id query parameter must be a valid UUID")
		return
	}

	summaries, err := s.roadmaps.ListRoadmaps(r.Context(), userID)
	if err != nil {
		s.log.Error().Err(err).Msg("list roadmaps")
		s.errorResponse(w, http.StatusInternalServerError, "internal error")
		return
	}
	if summaries == nil {
		summaries = []db.RoadmapSummary{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"roadmaps": summaries})
}
