package matrix

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdobrica/canvaschat/internal/canvaschat/executor"
	"github.com/bdobrica/canvaschat/internal/canvaschat/processor"
	"github.com/bdobrica/canvaschat/internal/canvaschat/session"
)

type fakeSessions struct {
	requests []session.Request
	result   executor.Result
	err      error
}

func (f *fakeSessions) ProcessCommand(_ context.Context, req session.Request) (executor.Result, error) {
	f.requests = append(f.requests, req)
	return f.result, f.err
}

func (f *fakeSessions) Suggestions() session.Suggestions {
	return session.Suggestions{Groups: []processor.SuggestionGroup{
		{Category: "Text", Examples: []string{"make it bold"}},
		{Category: "Empty"},
	}}
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []string
	typing  []bool
}

func (f *fakeNotifier) SendNotice(_ context.Context, _ string, msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, msg)
	return nil
}

func (f *fakeNotifier) SetTyping(_ context.Context, _ string, typing bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typing = append(f.typing, typing)
	return nil
}

func TestSelectionIsPerRoom(t *testing.T) {
	sessions := &fakeSessions{result: executor.Result{Success: true, Message: "Made it bold."}}
	b := NewBridge(sessions, &fakeNotifier{})
	ctx := context.Background()

	assert.Equal(t, "Selected card, title.", b.Reply(ctx, "!a", "!select card title"))
	assert.Equal(t, "Made it bold.", b.Reply(ctx, "!a", "make it bold"))
	b.Reply(ctx, "!b", "make it bold")

	require.Len(t, sessions.requests, 2)
	assert.Equal(t, []string{"card", "title"}, sessions.requests[0].Selection)
	assert.Equal(t, session.ScopeComponent, sessions.requests[0].Scope)
	assert.Empty(t, sessions.requests[1].Selection)
	assert.Equal(t, session.ScopeMain, sessions.requests[1].Scope)

	assert.Equal(t, "Selection cleared.", b.Reply(ctx, "!a", "!deselect"))
	assert.Empty(t, b.Selection("!a"))
}

func TestReplyEdgeCases(t *testing.T) {
	sessions := &fakeSessions{err: session.ErrBusy}
	b := NewBridge(sessions, &fakeNotifier{})
	ctx := context.Background()

	assert.Contains(t, b.Reply(ctx, "!a", "!select"), "Usage")
	assert.Equal(t, "", b.Reply(ctx, "!a", "   "))
	assert.Equal(t, "Still working on your previous command.", b.Reply(ctx, "!a", "make it bold"))
	assert.Equal(t, "Select a component with !select <id>, then tell me what to change.\nText: make it bold", b.Reply(ctx, "!a", "!help"))
}

func TestHandleMessageReplies(t *testing.T) {
	sessions := &fakeSessions{result: executor.Result{
		Success: true, NeedsMoreInfo: true, Message: "What color should the text be?", Options: []string{"red", "blue"},
	}}
	n := &fakeNotifier{}
	b := NewBridge(sessions, n)

	b.HandleMessage(context.Background(), "!a", "@alice:example.com", "change the text color")
	assert.Equal(t, []string{"What color should the text be?\nOptions: red, blue"}, n.notices)
	assert.Equal(t, []bool{true, false}, n.typing)
}
