package matrix

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bdobrica/canvaschat/internal/canvaschat/executor"
	"github.com/bdobrica/canvaschat/internal/canvaschat/session"
)

// Room commands. Any other message is a chat turn.
const (
	cmdSelect   = "!select"
	cmdDeselect = "!deselect"
	cmdHelp     = "!help"
)

// Processor is the session API a bridge drives.
type Processor interface {
	ProcessCommand(ctx context.Context, req session.Request) (executor.Result, error)
	Suggestions() session.Suggestions
}

// Notifier posts replies and the typing indicator.
type Notifier interface {
	SendNotice(ctx context.Context, roomID, message string) error
	SetTyping(ctx context.Context, roomID string, typing bool) error
}

// Bridge maps each room to a chat panel with its own selection.
type Bridge struct {
	sessions Processor
	notifier Notifier

	mu         sync.Mutex
	selections map[string][]string
}

// NewBridge creates a bridge.
func NewBridge(sessions Processor, notifier Notifier) *Bridge {
	return &Bridge{sessions: sessions, notifier: notifier, selections: make(map[string][]string)}
}

// Selection returns the component IDs selected in a room.
func (b *Bridge) Selection(roomID string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.selections[roomID]...)
}

// HandleMessage is a MessageHandler: it answers body in the room.
func (b *Bridge) HandleMessage(ctx context.Context, roomID, sender, body string) {
	if err := b.notifier.SetTyping(ctx, roomID, true); err != nil {
		slog.Debug("matrix: typing indicator failed", "room", roomID, "err", err)
	}
	reply := b.Reply(ctx, roomID, body)
	if err := b.notifier.SetTyping(ctx, roomID, false); err != nil {
		slog.Debug("matrix: typing indicator failed", "room", roomID, "err", err)
	}
	if reply == "" {
		return
	}
	if err := b.notifier.SendNotice(ctx, roomID, reply); err != nil {
		slog.Error("matrix: failed to reply", "room", roomID, "sender", sender, "err", err)
	}
}

// Reply computes the answer to one room message.
func (b *Bridge) Reply(ctx context.Context, roomID, body string) string {
	body = strings.TrimSpace(body)
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return ""
	}
	switch strings.ToLower(fields[0]) {
	case cmdSelect:
		if len(fields) == 1 {
			return "Usage: !select <component-id> [<component-id>...]"
		}
		b.setSelection(roomID, fields[1:])
		return "Selected " + strings.Join(fields[1:], ", ") + "."
	case cmdDeselect:
		b.setSelection(roomID, nil)
		return "Selection cleared."
	case cmdHelp:
		return b.help()
	}

	req := session.Request{Text: body, Selection: b.Selection(roomID), Scope: session.ScopeMain}
	if len(req.Selection) > 0 {
		req.Scope = session.ScopeComponent
	}
	res, err := b.sessions.ProcessCommand(ctx, req)
	switch {
	case errors.Is(err, session.ErrBusy):
		return "Still working on your previous command."
	case errors.Is(err, session.ErrEmptyCommand):
		return ""
	case err != nil:
		slog.Error("matrix: command failed", "room", roomID, "err", err)
		return "Something went wrong."
	}
	return FormatResult(res)
}

func (b *Bridge) setSelection(roomID string, ids []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(ids) == 0 {
		delete(b.selections, roomID)
		return
	}
	b.selections[roomID] = append([]string(nil), ids...)
}

func (b *Bridge) help() string {
	var sb strings.Builder
	sb.WriteString("Select a component with !select <id>, then tell me what to change.\n")
	for _, g := range b.sessions.Suggestions().Groups {
		if len(g.Examples) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", g.Category, g.Examples[0])
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatResult renders a result as room text, listing prompt options.
func FormatResult(res executor.Result) string {
	msg := res.Message
	if res.NeedsMoreInfo && len(res.Options) > 0 {
		msg += "\nOptions: " + strings.Join(res.Options, ", ")
	}
	return msg
}
