package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/moodline/internal/analysis"
	"github.com/MikeSquared-Agency/moodline/internal/sentiment"
	"github.com/MikeSquared-Agency/moodline/internal/transcript"
	"github.com/MikeSquared-Agency/moodline/internal/youtube"
)

const maxBodyBytes = 1 << 20

// analyze handles POST /api/v1/analyze
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	res, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// transcript handles POST /api/v1/transcript
func (s *Server) transcript(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	tr, err := s.analyzer.Transcript(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

func (s *Server) videoDetails(w http.ResponseWriter, r *http.Request) {
	d, err := s.analyzer.VideoDetails(r.Context(), chi.URLParam(r, "videoID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) videoAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, r, fmt.Errorf("%w: limit must be a positive integer", analysis.ErrInvalidRequest))
			return
		}
		limit = n
	}

	list, err := s.analyzer.History(r.Context(), chi.URLParam(r, "videoID"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"analyses": list,
		"count":    len(list),
	})
}

func (s *Server) getAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: malformed analysis id", analysis.ErrInvalidRequest))
		return
	}
	res, err := s.analyzer.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (analysis.Request, bool) {
	var req analysis.Request
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid JSON: %v", analysis.ErrInvalidRequest, err))
		return req, false
	}
	return req, true
}

// statusFor maps pipeline errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrInvalidRequest), errors.Is(err, transcript.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, analysis.ErrNotFound), errors.Is(err, youtube.ErrCaptionsUnavailable):
		return http.StatusNotFound
	case errors.Is(err, youtube.ErrLookup), errors.Is(err, sentiment.ErrScoring),
		errors.Is(err, transcript.ErrParse), errors.Is(err, transcript.ErrInvalidCue):
		return http.StatusBadGateway
	case errors.Is(err, analysis.ErrNoStore):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"status", status,
			"error", err,
		)
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  analysis.Code(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
