package session

import (
	"sync"
	"time"

	"github.com/bdobrica/canvaschat/internal/canvaschat/clarify"
	"github.com/bdobrica/canvaschat/internal/canvaschat/processor"
)

// maxHistory bounds the transcript kept per thread.
const maxHistory = 200

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript line of a thread.
type Message struct {
	Role          Role           `json:"role"`
	Text          string         `json:"text"`
	At            time.Time      `json:"at"`
	CommandID     string         `json:"commandId,omitempty"`
	Kind          processor.Kind `json:"kind,omitempty"`
	Success       bool           `json:"success,omitempty"`
	NeedsMoreInfo bool           `json:"needsMoreInfo,omitempty"`
}

// Thread is one chat conversation: its transcript, its clarification state
// and the in-flight flag that keeps turns on it sequential.
type Thread struct {
	key     string
	clarify clarify.Machine

	mu       sync.Mutex
	inFlight bool
	history  []Message
}

func newThread(key string) *Thread {
	return &Thread{key: key}
}

// Key returns "main" or the ID of the component the thread discusses.
func (t *Thread) Key() string {
	return t.key
}

// Clarification returns the thread's clarification state.
func (t *Thread) Clarification() clarify.State {
	return t.clarify.State()
}

// Busy reports whether a turn is being processed.
func (t *Thread) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight
}

// begin claims the thread for one turn. A second turn is rejected, not
// queued.
func (t *Thread) begin() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inFlight {
		return ErrBusy
	}
	t.inFlight = true
	return nil
}

func (t *Thread) end() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight = false
}

func (t *Thread) append(msgs ...Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = append(t.history, msgs...)
	if over := len(t.history) - maxHistory; over > 0 {
		t.history = append([]Message(nil), t.history[over:]...)
	}
}

// History returns a copy of the transcript, oldest first.
func (t *Thread) History() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.history))
	copy(out, t.history)
	return out
}
