package session_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdobrica/canvaschat/common/retry"
	"github.com/bdobrica/canvaschat/internal/canvaschat/audit"
	"github.com/bdobrica/canvaschat/internal/canvaschat/clarify"
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
      - id: body
        type: text
`

type options struct {
	data     host.DataProvider
	recorder session.Recorder
	max      int
}

func newController(t *testing.T, opts options) (*session.Controller, *host.Workspace) {
	t.Helper()
	ws, err := host.LoadWorkspace([]byte(seed))
	require.NoError(t, err)
	data := opts.data
	if data == nil {
		data = ws
	}
	exec, err := executor.New(executor.Config{
		Data:     data,
		Sink:     ws,
		Settings: ws,
		Retry:    retry.Config{MaxAttempts: 1, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond},
	})
	require.NoError(t, err)
	c, err := session.New(session.Config{
		Executor:            exec,
		Selector:            ws,
		Recorder:            opts.recorder,
		MaxComponentThreads: opts.max,
	})
	require.NoError(t, err)
	return c, ws
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := session.New(session.Config{})
	assert.Error(t, err)
}

func TestEmptyCommand(t *testing.T) {
	c, _ := newController(t, options{})
	_, err := c.ProcessCommand(context.Background(), session.Request{Text: "   "})
	assert.ErrorIs(t, err, session.ErrEmptyCommand)
}

func TestThreadsKeepSeparateClarifications(t *testing.T) {
	c, ws := newController(t, options{})
	ctx := context.Background()

	res, err := c.ProcessCommand(ctx, session.Request{Text: "change the text color", Selection: []string{"title"}, Scope: session.ScopeComponent})
	require.NoError(t, err)
	require.True(t, res.NeedsMoreInfo)

	title, ok := c.Thread("title")
	require.True(t, ok)
	assert.Equal(t, clarify.Awaiting, title.Clarification().Status)

	main, _ := c.Thread(session.MainThread)
	assert.Equal(t, clarify.Idle, main.Clarification().Status)

	// A turn on another thread leaves the pending question alone.
	res, err = c.ProcessCommand(ctx, session.Request{Text: "set theme to dark"})
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)
	assert.Equal(t, clarify.Awaiting, title.Clarification().Status)

	res, err = c.ProcessCommand(ctx, session.Request{Text: "blue", Selection: []string{"title"}, Scope: session.ScopeComponent})
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)
	assert.Equal(t, processor.KindStylePatch, res.Kind)
	assert.Equal(t, clarify.Idle, title.Clarification().Status)

	comp, _ := ws.Component("title")
	assert.NotEmpty(t, comp.Style["color"])

	assert.Equal(t, []string{session.MainThread, "title"}, c.ThreadKeys())
}

func TestHistory(t *testing.T) {
	c, _ := newController(t, options{})
	_, err := c.ProcessCommand(context.Background(), session.Request{Text: "make it bold", Selection: []string{"body"}, Scope: session.ScopeComponent})
	require.NoError(t, err)

	h := c.History("body")
	require.Len(t, h, 2)
	assert.Equal(t, session.RoleUser, h[0].Role)
	assert.Equal(t, "make it bold", h[0].Text)
	assert.Equal(t, session.RoleAssistant, h[1].Role)
	assert.Equal(t, h[0].CommandID, h[1].CommandID)
	assert.True(t, h[1].Success)

	assert.Nil(t, c.History("nobody"))
	assert.Empty(t, c.History(session.MainThread))
}

func TestComponentScopeWithoutSelectionUsesMain(t *testing.T) {
	c, _ := newController(t, options{})
	_, err := c.ProcessCommand(context.Background(), session.Request{Text: "set theme to ocean", Scope: session.ScopeComponent})
	require.NoError(t, err)
	assert.Len(t, c.History(session.MainThread), 2)
}

func TestComponentThreadsAreBounded(t *testing.T) {
	c, _ := newController(t, options{max: 1})
	ctx := context.Background()
	for _, id := range []string{"title", "body"} {
		_, err := c.ProcessCommand(ctx, session.Request{Text: "make it bold", Selection: []string{id}, Scope: session.ScopeComponent})
		require.NoError(t, err)
	}
	_, ok := c.Thread("title")
	assert.False(t, ok, "oldest component thread is evicted")
	_, ok = c.Thread("body")
	assert.True(t, ok)
}

// blockingData holds Queries until release is closed.
type blockingData struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingData) Queries(ctx context.Context) ([]host.RawQuery, error) {
	b.once.Do(func() { close(b.started) })
	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return nil, nil
}

func (b *blockingData) WebServices(context.Context) ([]host.RawWebService, error) {
	return nil, nil
}

func TestBusyThreadRejectsSecondTurn(t *testing.T) {
	data := &blockingData{started: make(chan struct{}), release: make(chan struct{})}
	c, _ := newController(t, options{data: data})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := c.ProcessCommand(ctx, session.Request{Text: "set theme to dark"})
		done <- err
	}()
	<-data.started

	main, _ := c.Thread(session.MainThread)
	assert.True(t, main.Busy())
	_, err := c.ProcessCommand(ctx, session.Request{Text: "set theme to ocean"})
	assert.ErrorIs(t, err, session.ErrBusy)

	close(data.release)
	require.NoError(t, <-done)
	assert.False(t, main.Busy())
	assert.Len(t, c.History(session.MainThread), 2, "rejected turn is not recorded")
}

func TestTurnsAreAudited(t *testing.T) {
	store, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	defer store.Close()

	c, _ := newController(t, options{recorder: store})
	ctx := context.Background()
	res, err := c.ProcessCommand(ctx, session.Request{Text: "make it bold", Selection: []string{"title"}, Scope: session.ScopeComponent, CommandID: "cmd-7"})
	require.NoError(t, err)
	assert.Equal(t, "cmd-7", res.CommandID)

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cmd-7", entries[0].CommandID)
	assert.Equal(t, "title", entries[0].Thread)
	assert.Equal(t, "title", entries[0].ComponentID)
	assert.Equal(t, "style_patch", entries[0].Kind)
	assert.True(t, entries[0].Success)
}

func TestSuggestions(t *testing.T) {
	c, _ := newController(t, options{})
	s := c.Suggestions()
	assert.NotEmpty(t, s.Groups)
	assert.Contains(t, s.Creatable, "kanban")
}
