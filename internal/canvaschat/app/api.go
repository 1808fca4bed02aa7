package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/session"
)

const maxCommandBody = 64 << 10

// statusFor maps session errors to HTTP codes. Processed turns are always
// 200, whatever their outcome.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, session.ErrEmptyCommand):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req session.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCommandBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Scope == "" {
		req.Scope = session.ScopeMain
	}
	res, err := s.sessions.ProcessCommand(r.Context(), req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.Suggestions())
}

type workspaceResponse struct {
	Theme      document.Theme        `json:"theme"`
	Toolbar    map[string]any        `json:"toolbar"`
	Components []*document.Component `json:"components"`
}

func (s *Server) handleWorkspace(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, workspaceResponse{
		Theme:      s.workspace.Theme(),
		Toolbar:    s.workspace.Toolbar(),
		Components: s.workspace.Components(),
	})
}

func (s *Server) handleThread(w http.ResponseWriter, r *http.Request) {
	h := s.sessions.History(r.PathValue("key"))
	if h == nil {
		writeError(w, http.StatusNotFound, "unknown thread")
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeError(w, http.StatusNotFound, "audit log is disabled")
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	entries, err := s.audit.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
