package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/humansearch/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", query.Query), zap.Int("limit", query.Limit))
	response, err := s.engine.Search(r.Context(), query)
	if err != nil {
		s.respondDomainError(w, "search failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	suggestions := s.engine.Suggest(r.URL.Query().Get("q"), limit)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("q")
	if text == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit, err := intParam(r, "limit", 10)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"candidates": s.engine.Candidates(text, limit)})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.engine.Stats())
}

func (s *Server) handleIndexDocument(w http.ResponseWriter, r *http.Request) {
	var input models.DocumentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.ID == "" {
		input.ID = uuid.NewString()
	}
	s.logger.Debug("index document request", zap.String("id", input.ID), zap.Int("fields", len(input.Fields)))
	if err := s.engine.Index(r.Context(), input.ID, input.Fields, input.Metadata); err != nil {
		s.respondDomainError(w, "indexing failed", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": input.ID, "status": "indexed"})
}

type batchRequest struct {
	Documents []models.DocumentInput `json:"documents"`
}

func (s *Server) handleIndexBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Documents) == 0 {
		s.respondError(w, http.StatusBadRequest, "documents are required")
		return
	}
	if len(req.Documents) > maxBatchSize {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("batch exceeds %d documents", maxBatchSize))
		return
	}
	ids := make([]string, len(req.Documents))
	for i := range req.Documents {
		if req.Documents[i].ID == "" {
			req.Documents[i].ID = uuid.NewString()
		}
		ids[i] = req.Documents[i].ID
	}

	indexed, err := s.engine.IndexBatch(r.Context(), req.Documents)
	resp := map[string]interface{}{"indexed": indexed, "ids": ids}
	status := http.StatusCreated
	if err != nil {
		s.logger.Warn("batch indexing incomplete", zap.Int("indexed", indexed), zap.Error(err))
		resp["error"] = err.Error()
		status = http.StatusMultiStatus
	}
	s.respondJSON(w, status, resp)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := intParam(r, "limit", 50)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents": s.engine.ListDocuments(offset, limit),
		"total":     s.engine.DocumentCount(),
	})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.engine.GetDocument(chi.URLParam(r, "id"))
	if err != nil {
		s.respondDomainError(w, "get document failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	profile.UserID = chi.URLParam(r, "id")
	if err := s.engine.SetUserProfile(&profile); err != nil {
		s.respondDomainError(w, "set profile failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.engine.UserProfile(chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, http.StatusNotFound, "profile not found")
		return
	}
	s.respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries := s.engine.History(chi.URLParam(r, "id"))
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"history": entries})
}

type clickRequest struct {
	Query      string `json:"query"`
	DocumentID string `json:"document_id"`
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DocumentID == "" {
		s.respondError(w, http.StatusBadRequest, "document_id is required")
		return
	}
	if err := s.engine.RecordClick(chi.URLParam(r, "id"), req.Query, req.DocumentID); err != nil {
		s.respondDomainError(w, "record click failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"documents": s.engine.DocumentCount(),
	})
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrEmptyDocumentID),
		errors.Is(err, models.ErrUnsupportedFieldValue),
		errors.Is(err, models.ErrInvalidQuery):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondDomainError(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(msg, zap.Error(err))
	} else {
		s.logger.Debug(msg, zap.Error(err))
	}
	s.respondError(w, status, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return n, nil
}
