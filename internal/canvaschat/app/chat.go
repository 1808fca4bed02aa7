package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bdobrica/canvaschat/internal/canvaschat/executor"
	"github.com/bdobrica/canvaschat/internal/canvaschat/session"
)

const (
	chatWriteWait = 10 * time.Second
	chatPongWait  = 60 * time.Second
	chatPingEvery = (chatPongWait * 9) / 10
)

// checkOrigin accepts clients that send no Origin header, pages served from
// the API's own host, and the configured chat origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	return slices.ContainsFunc(s.origins, func(o string) bool {
		return strings.EqualFold(strings.TrimSuffix(o, "/"), origin)
	})
}

// chatInbound is one frame from the chat panel.
type chatInbound struct {
	Type      string        `json:"type"`
	Text      string        `json:"text,omitempty"`
	Selection []string      `json:"selection,omitempty"`
	Scope     session.Scope `json:"scope,omitempty"`
	CommandID string        `json:"commandId,omitempty"`
}

type chatOutbound struct {
	Type    string           `json:"type"`
	Result  *executor.Result `json:"result,omitempty"`
	Code    string           `json:"code,omitempty"`
	Message string           `json:"message,omitempty"`
}

// handleChat upgrades to a websocket. Frames of type "command" are chat
// turns; each reply is a "result" or "error" frame. Turns on one connection
// are processed in order.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(chatPongWait)); err != nil {
		slog.Warn("chat ws: set read deadline failed", "err", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatPongWait))
	})

	writeCh := make(chan chatOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(chatPingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	push := func(out chatOutbound) {
		select {
		case writeCh <- out:
		case <-ctx.Done():
		}
	}

	push(chatOutbound{Type: "ready"})
	for {
		var in chatInbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("chat ws: read failed", "err", err)
			}
			break
		}
		if in.Type != "command" {
			push(chatOutbound{Type: "error", Code: "invalid_argument", Message: "unsupported frame type " + in.Type})
			continue
		}
		res, err := s.sessions.ProcessCommand(ctx, session.Request{
			Text: in.Text, Selection: in.Selection, Scope: in.Scope, CommandID: in.CommandID,
		})
		if err != nil {
			push(chatOutbound{Type: "error", Code: errorCode(err), Message: err.Error()})
			continue
		}
		push(chatOutbound{Type: "result", Result: &res})
	}
	cancel()
	<-writerDone
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, session.ErrBusy):
		return "busy"
	case errors.Is(err, session.ErrEmptyCommand):
		return "invalid_argument"
	default:
		return "internal"
	}
}
