// Package app serves the canvaschat HTTP API: health and status, one-shot
// command turns, suggestions, the workspace tree, the audit log and a
// websocket chat panel.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/bdobrica/canvaschat/common/version"
	"github.com/bdobrica/canvaschat/internal/canvaschat/audit"
	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/executor"
	"github.com/bdobrica/canvaschat/internal/canvaschat/session"
)

// Sessions is the session API the server drives.
type Sessions interface {
	ProcessCommand(ctx context.Context, req session.Request) (executor.Result, error)
	Suggestions() session.Suggestions
	History(key string) []session.Message
	ThreadKeys() []string
}

// WorkspaceView is the read side of the workspace.
type WorkspaceView interface {
	Components() []*document.Component
	Count() int
	Theme() document.Theme
	Toolbar() map[string]any
}

// AuditLog is the read side of the audit store.
type AuditLog interface {
	Recent(ctx context.Context, limit int) ([]audit.Entry, error)
}

// Server exposes the HTTP API. It is optional; the REPL and Matrix
// transports run without it.
type Server struct {
	addr      string
	sessions  Sessions
	workspace WorkspaceView
	audit     AuditLog
	startedAt time.Time
	origins   []string
	server    *http.Server
	mux       *http.ServeMux
}

// NewServer creates and configures the server (does not start it). auditLog
// may be nil.
func NewServer(addr string, sessions Sessions, workspace WorkspaceView, auditLog AuditLog) *Server {
	mux := http.NewServeMux()
	s := &Server{
		addr:      addr,
		sessions:  sessions,
		workspace: workspace,
		audit:     auditLog,
		startedAt: time.Now(),
		mux:       mux,
	}
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("POST /v1/commands", s.handleCommand)
	mux.HandleFunc("GET /v1/suggestions", s.handleSuggestions)
	mux.HandleFunc("GET /v1/workspace", s.handleWorkspace)
	mux.HandleFunc("GET /v1/threads/{key}", s.handleThread)
	mux.HandleFunc("GET /v1/audit", s.handleAudit)
	mux.HandleFunc("GET /v1/chat", s.handleChat)
	return s
}

// AllowOrigins adds browser origins, like "https://ui.example.com", accepted
// by the chat websocket.
func (s *Server) AllowOrigins(origins ...string) {
	s.origins = append(s.origins, origins...)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Start listens in the background and returns once the port is open. The
// server shuts down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("http server: listen %s: %w", s.addr, err)
	}
	s.server = &http.Server{
		Handler:     s,
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		slog.Info("http server listening", "addr", ln.Addr().String())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop shuts the server down.
func (s *Server) Stop() {
	if s.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Warn("http server shutdown error", "err", err)
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

type statusResponse struct {
	Status         string    `json:"status"`
	Version        string    `json:"version"`
	Commit         string    `json:"commit"`
	BuildTime      string    `json:"build_time"`
	StartedAt      time.Time `json:"started_at"`
	UptimeSecs     float64   `json:"uptime_seconds"`
	ComponentCount int       `json:"component_count"`
	ThreadCount    int       `json:"thread_count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: version.Version, Commit: version.GitCommit})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:         "ok",
		Version:        version.Version,
		Commit:         version.GitCommit,
		BuildTime:      version.BuildTime,
		StartedAt:      s.startedAt,
		UptimeSecs:     time.Since(s.startedAt).Seconds(),
		ComponentCount: s.workspace.Count(),
		ThreadCount:    len(s.sessions.ThreadKeys()),
	})
}

// writeJSON serialises v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("http: failed to encode JSON response", "err", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}
