package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/docsentry/docsentry/internal/common"
	"github.com/docsentry/docsentry/internal/model"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleValidate validates one already-extracted document.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var doc model.ExtractedDocument
	if !s.decodeBody(w, r, &doc) {
		return
	}
	s.writeJSON(w, http.StatusOK, s.validator.Validate(doc))
}

// handleScore scores one already-extracted document.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var doc model.ExtractedDocument
	if !s.decodeBody(w, r, &doc) {
		return
	}
	s.writeJSON(w, http.StatusOK, s.scorer.Decide(doc))
}

type crossRequest struct {
	Cheque  model.ExtractedDocument `json:"cheque"`
	Mandate model.ExtractedDocument `json:"mandate"`
}

// handleCross cross-checks a cheque/mandate pair.
func (s *Server) handleCross(w http.ResponseWriter, r *http.Request) {
	var req crossRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.writeJSON(w, http.StatusOK, s.validator.Compare(req.Cheque, req.Mandate))
}

func (s *Server) handleGetVerification(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	record, err := s.records.GetVerification(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "verification not found")
			return
		}
		s.logger.Error("failed to fetch verification", "id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer func() { _ = r.Body.Close() }()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
