// Package matrix lets Matrix rooms act as canvaschat chat panels.
package matrix

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"maunium.net/go/mautrix"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"
)

// Config holds Matrix client configuration.
type Config struct {
	Homeserver  string
	UserID      string
	AccessToken string
	// Rooms are the room IDs where messages are treated as chat turns.
	Rooms []string
	// DB persists the sync position. When nil an in-memory store is used and
	// room history replays on restart.
	DB *sql.DB
}

// MessageHandler receives the plain-text body of a chat message.
type MessageHandler func(ctx context.Context, roomID, sender, body string)

// Client wraps the mautrix client.
type Client struct {
	client  *mautrix.Client
	config  Config
	stopCh  chan struct{}
	handler MessageHandler
}

// New creates a client; it does not connect.
func New(config Config) (*Client, error) {
	client, err := mautrix.NewClient(config.Homeserver, id.UserID(config.UserID), config.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Matrix client: %w", err)
	}
	if config.DB != nil {
		client.Store = newDBSyncStore(config.DB)
	} else {
		slog.Warn("Matrix sync store: no DB configured, history will replay on restart")
	}
	return &Client{client: client, config: config, stopCh: make(chan struct{})}, nil
}

// Start joins the configured rooms and syncs in the background until Stop.
func (c *Client) Start(ctx context.Context, handler MessageHandler) error {
	c.handler = handler

	syncer := c.client.Syncer.(*mautrix.DefaultSyncer)
	syncer.OnEventType(event.EventMessage, c.handleMessage)

	for _, roomID := range c.config.Rooms {
		if err := c.joinRoom(ctx, id.RoomID(roomID)); err != nil {
			return fmt.Errorf("failed to join room %s: %w", roomID, err)
		}
	}

	go c.syncLoop()
	return nil
}

// syncLoop restarts the sync after transient homeserver errors.
func (c *Client) syncLoop() {
	const (
		backoffMin = 2 * time.Second
		backoffMax = 5 * time.Minute
	)
	backoff := backoffMin
	for {
		err := c.client.Sync()
		if err == nil {
			return
		}
		select {
		case <-c.stopCh:
			return
		default:
		}
		slog.Error("Matrix sync stopped; reconnecting", "err", err, "backoff", backoff)
		select {
		case <-c.stopCh:
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffMax)
	}
}

// Stop stops syncing.
func (c *Client) Stop() {
	close(c.stopCh)
	c.client.StopSync()
}

// SendNotice posts a notice, the message type bots use for replies.
func (c *Client) SendNotice(ctx context.Context, roomID, message string) error {
	content := event.MessageEventContent{MsgType: event.MsgNotice, Body: message}
	if _, err := c.client.SendMessageEvent(ctx, id.RoomID(roomID), event.EventMessage, &content); err != nil {
		return fmt.Errorf("failed to send notice: %w", err)
	}
	return nil
}

// SetTyping shows the loading indicator in a room while a turn runs.
func (c *Client) SetTyping(ctx context.Context, roomID string, typing bool) error {
	if _, err := c.client.UserTyping(ctx, id.RoomID(roomID), typing, 30*time.Second); err != nil {
		return fmt.Errorf("failed to set typing: %w", err)
	}
	return nil
}

// IsChatRoom reports whether roomID is one of the configured rooms.
func (c *Client) IsChatRoom(roomID string) bool {
	return slices.Contains(c.config.Rooms, roomID)
}

func (c *Client) handleMessage(ctx context.Context, evt *event.Event) {
	if evt.Sender == id.UserID(c.config.UserID) {
		return
	}
	msg := evt.Content.AsMessage()
	if msg == nil || msg.MsgType != event.MsgText {
		return
	}
	if !c.IsChatRoom(evt.RoomID.String()) {
		return
	}
	if c.handler != nil {
		c.handler(ctx, evt.RoomID.String(), evt.Sender.String(), msg.Body)
	}
}

func (c *Client) joinRoom(ctx context.Context, roomID id.RoomID) error {
	if _, err := c.client.JoinRoomByID(ctx, roomID); err != nil {
		// Homeservers answer M_FORBIDDEN when the bot is already a member.
		if errors.Is(err, mautrix.MForbidden) {
			slog.Warn("joinRoom: already a member or access denied, continuing", "room", roomID)
			return nil
		}
		return err
	}
	return nil
}
