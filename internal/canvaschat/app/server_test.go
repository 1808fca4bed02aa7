package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdobrica/canvaschat/internal/canvaschat/app"
	"github.com/bdobrica/canvaschat/internal/canvaschat/audit"
	"github.com/bdobrica/canvaschat/internal/canvaschat/executor"
	"github.com/bdobrica/canvaschat/internal/canvaschat/host"
	"github.com/bdobrica/canvaschat/internal/canvaschat/processor"
	"github.com/bdobrica/canvaschat/internal/canvaschat/session"
)

const seed = `
components:
  - id: card
    type: card
    children:
      - id: title
        type: heading
`

func newServer(t *testing.T) (*app.Server, *host.Workspace) {
	t.Helper()
	ws, err := host.LoadWorkspace([]byte(seed))
	require.NoError(t, err)
	store, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	exec, err := executor.New(executor.Config{Data: ws, Previewer: ws, Sink: ws, Settings: ws})
	require.NoError(t, err)
	sessions, err := session.New(session.Config{Executor: exec, Selector: ws, Recorder: store})
	require.NoError(t, err)
	return app.NewServer("127.0.0.1:0", sessions, ws, store), ws
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v))
}

func TestHealthAndStatus(t *testing.T) {
	s, _ := newServer(t)

	w := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	var health map[string]any
	decode(t, w, &health)
	assert.Equal(t, "ok", health["status"])

	w = do(t, s, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	var status map[string]any
	decode(t, w, &status)
	assert.EqualValues(t, 2, status["component_count"])
	assert.EqualValues(t, 1, status["thread_count"])
}

func TestCommandEndpoint(t *testing.T) {
	s, ws := newServer(t)

	w := do(t, s, http.MethodPost, "/v1/commands", `{"text":"make it bold","selection":["title"],"scope":"component"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res executor.Result
	decode(t, w, &res)
	assert.True(t, res.Success)
	assert.Equal(t, processor.KindStylePatch, res.Kind)
	assert.Equal(t, map[string]any{"fontWeight": "700"}, res.Update.Style)

	title, _ := ws.Component("title")
	assert.Equal(t, "700", title.Style["fontWeight"])

	w = do(t, s, http.MethodGet, "/v1/threads/title", "")
	require.Equal(t, http.StatusOK, w.Code)
	var history []session.Message
	decode(t, w, &history)
	assert.Len(t, history, 2)

	w = do(t, s, http.MethodGet, "/v1/audit?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	var entries []audit.Entry
	decode(t, w, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, res.CommandID, entries[0].CommandID)
}

func TestCommandEndpointErrors(t *testing.T) {
	s, _ := newServer(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed", `{"text":`, http.StatusBadRequest},
		{"unknown field", `{"txt":"hi"}`, http.StatusBadRequest},
		{"empty", `{"text":"  "}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/v1/commands", tt.body)
			assert.Equal(t, tt.code, w.Code)
		})
	}

	w := do(t, s, http.MethodPost, "/v1/commands", `{"text":"frobnicate the widget"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var res executor.Result
	decode(t, w, &res)
	assert.False(t, res.Success)
	assert.Equal(t, executor.ErrorRecognitionMiss, res.ErrorClass)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/v1/threads/nobody", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/v1/audit?limit=x", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, http.MethodGet, "/v1/commands", "").Code)
}

func TestSuggestionsAndWorkspace(t *testing.T) {
	s, _ := newServer(t)

	w := do(t, s, http.MethodGet, "/v1/suggestions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sugg session.Suggestions
	decode(t, w, &sugg)
	assert.NotEmpty(t, sugg.Groups)
	assert.Contains(t, sugg.Creatable, "button")

	w = do(t, s, http.MethodGet, "/v1/workspace", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Theme      map[string]any   `json:"theme"`
		Components []map[string]any `json:"components"`
	}
	decode(t, w, &body)
	require.Len(t, body.Components, 1)
	assert.Equal(t, "card", body.Components[0]["id"])
}

func TestChatWebsocket(t *testing.T) {
	s, ws := newServer(t)
	srv := httptest.NewServer(s)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/chat"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var frame struct {
		Type    string           `json:"type"`
		Result  *executor.Result `json:"result"`
		Code    string           `json:"code"`
		Message string           `json:"message"`
	}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "ready", frame.Type)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "command", "text": "add a button", "selection": []string{"card"}}))
	frame.Result = nil
	require.NoError(t, conn.ReadJSON(&frame))
	require.Equal(t, "result", frame.Type)
	require.NotNil(t, frame.Result)
	assert.True(t, frame.Result.Success, frame.Result.Message)

	card, _ := ws.Component("card")
	assert.Len(t, card.Children, 2)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "bogus"}))
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "error", frame.Type)
	assert.Equal(t, "invalid_argument", frame.Code)
}

func TestChatOrigins(t *testing.T) {
	s, _ := newServer(t)
	s.AllowOrigins("https://ui.example.com")
	srv := httptest.NewServer(s)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/chat"

	tests := []struct {
		origin string
		ok     bool
	}{
		{"https://ui.example.com", true},
		{srv.URL, true},
		{"https://evil.example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {tt.origin}})
			if !tt.ok {
				require.ErrorIs(t, err, websocket.ErrBadHandshake)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				return
			}
			require.NoError(t, err)
			conn.Close()
		})
	}
}

func TestStartAndStop(t *testing.T) {
	s, _ := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()
	s.Stop()
}
