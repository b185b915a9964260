package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/runoshun/kanban/internal/domain"
)

// maxBodySize caps tool call payloads.
const maxBodySize = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

type changeBody struct {
	Command   string `json:"command"`
	Persisted bool   `json:"persisted"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBoard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// handleContext returns every context block, or one with ?block=name.
func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("block")
	if name == "" {
		writeJSON(w, http.StatusOK, s.store.Context())
		return
	}
	block, ok := s.store.ContextBlock(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown context block: "+name)
		return
	}
	writeJSON(w, http.StatusOK, block)
}

func (s *Server) handleTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tools.Definitions())
}

// handleCall runs a tool. Only JSON bodies are accepted, so cross-origin
// browser calls always go through a CORS preflight.
func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	if !s.checkOrigin(r) {
		writeError(w, http.StatusForbidden, "origin not allowed")
		return
	}
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		writeError(w, http.StatusUnsupportedMediaType, "content type must be application/json")
		return
	}
	name := mux.Vars(r)["name"]
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}

	resp, err := s.tools.CallJSON(r.Context(), name, body)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownTool) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
