package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Makepad-fr/checklist/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

type saveResponse struct {
	Success bool `json:"success"`
}

type healthResponse struct {
	OK bool `json:"ok"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// getTables returns the whole Collection; `[]` when nothing is stored.
func (s *Server) getTables(w http.ResponseWriter, r *http.Request) {
	tables, err := s.store.Load(r.Context())
	if err != nil {
		s.logger.Error("error reading tables", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to read tables"})
		return
	}
	writeJSON(w, http.StatusOK, tables.Normalize())
}

// postTables replaces the whole Collection with the request body.
func (s *Server) postTables(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	defer r.Body.Close()

	var tables model.Collection
	if err := json.NewDecoder(r.Body).Decode(&tables); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "Request body too large"})
			return
		}
		s.logger.Error("error saving tables", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to save tables"})
		return
	}

	if err := s.store.Save(r.Context(), tables); err != nil {
		s.logger.Error("error saving tables", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to save tables"})
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{Success: true})
}

// options answers CORS preflight; the headers come from the cors middleware.
func (s *Server) options(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{OK: true})
}
