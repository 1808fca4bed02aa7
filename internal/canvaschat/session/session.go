// Package session routes chat turns to the executor. It keeps one main thread
// and one thread per component under discussion; each thread owns its
// clarification state and processes at most one turn at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bdobrica/canvaschat/common/trace"
	"github.com/bdobrica/canvaschat/internal/canvaschat/audit"
	"github.com/bdobrica/canvaschat/internal/canvaschat/executor"
	"github.com/bdobrica/canvaschat/internal/canvaschat/host"
	"github.com/bdobrica/canvaschat/internal/canvaschat/processor"
)

// MainThread is the key of the workspace-wide thread.
const MainThread = "main"

// DefaultMaxComponentThreads bounds the component threads kept in memory.
const DefaultMaxComponentThreads = 64

var (
	// ErrBusy is returned when a turn arrives while the thread is still
	// processing the previous one.
	ErrBusy = errors.New("session: thread is busy")
	// ErrEmptyCommand is returned for blank input.
	ErrEmptyCommand = errors.New("session: empty command")
)

// Scope chooses the thread a turn belongs to.
type Scope string

const (
	// ScopeMain is the workspace-wide thread.
	ScopeMain Scope = "main"
	// ScopeComponent is the thread of the selected component. Without a
	// selection the turn goes to the main thread.
	ScopeComponent Scope = "component"
)

// Request is one chat turn.
type Request struct {
	Text      string   `json:"text"`
	Selection []string `json:"selection,omitempty"`
	Scope     Scope    `json:"scope,omitempty"`
	// CommandID is optional; one is generated when empty.
	CommandID string `json:"commandId,omitempty"`
}

// Recorder persists processed turns.
type Recorder interface {
	Record(ctx context.Context, e audit.Entry) error
}

// Config configures a Controller. Executor and Selector are required.
type Config struct {
	Executor            *executor.Executor
	Selector            host.Selector
	Recorder            Recorder
	MaxComponentThreads int
	Logger              *slog.Logger
	Now                 func() time.Time
}

// Controller is the per-turn entry point for every chat transport.
type Controller struct {
	exec     *executor.Executor
	selector host.Selector
	recorder Recorder
	log      *slog.Logger
	now      func() time.Time

	main       *Thread
	components *lru.Cache[string, *Thread]
}

// New creates a controller.
func New(cfg Config) (*Controller, error) {
	if cfg.Executor == nil {
		return nil, errors.New("session: executor is required")
	}
	if cfg.Selector == nil {
		return nil, errors.New("session: selector is required")
	}
	size := cfg.MaxComponentThreads
	if size <= 0 {
		size = DefaultMaxComponentThreads
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	components, err := lru.NewWithEvict(size, func(key string, _ *Thread) {
		log.Debug("component thread evicted", "thread", key)
	})
	if err != nil {
		return nil, fmt.Errorf("session: component thread cache: %w", err)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		exec:       cfg.Executor,
		selector:   cfg.Selector,
		recorder:   cfg.Recorder,
		log:        log,
		now:        now,
		main:       newThread(MainThread),
		components: components,
	}, nil
}

// ProcessCommand runs one turn. User-facing failures are reported in the
// Result; the error is reserved for turns that were not processed at all
// (ErrBusy, ErrEmptyCommand).
func (c *Controller) ProcessCommand(ctx context.Context, req Request) (executor.Result, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return executor.Result{}, ErrEmptyCommand
	}

	sel := c.selector.Selection(req.Selection)
	thread := c.thread(req.Scope, sel)
	if err := thread.begin(); err != nil {
		c.log.Warn("turn rejected", "thread", thread.Key(), "err", err)
		return executor.Result{}, err
	}
	defer thread.end()

	id := req.CommandID
	if id == "" {
		id = trace.GenerateID()
	}
	at := c.now()
	thread.append(Message{Role: RoleUser, Text: text, At: at, CommandID: id})

	res := c.exec.Execute(ctx, executor.Command{ID: id, Text: text, At: at}, &thread.clarify, sel)

	thread.append(Message{
		Role:          RoleAssistant,
		Text:          res.Message,
		At:            c.now(),
		CommandID:     id,
		Kind:          res.Kind,
		Success:       res.Success,
		NeedsMoreInfo: res.NeedsMoreInfo,
	})
	c.record(ctx, thread, text, sel, res, at)
	return res, nil
}

func (c *Controller) thread(scope Scope, sel *host.Selection) *Thread {
	if scope != ScopeComponent || sel == nil || sel.Component == nil {
		return c.main
	}
	key := sel.Component.ID
	if t, ok := c.components.Get(key); ok {
		return t
	}
	t := newThread(key)
	// A concurrent creator may have won; keep the stored thread.
	if prev, ok, _ := c.components.PeekOrAdd(key, t); ok {
		return prev
	}
	return t
}

func (c *Controller) record(ctx context.Context, thread *Thread, text string, sel *host.Selection, res executor.Result, at time.Time) {
	if c.recorder == nil {
		return
	}
	e := audit.Entry{
		CommandID:  res.CommandID,
		Thread:     thread.Key(),
		Text:       text,
		Kind:       string(res.Kind),
		Success:    res.Success,
		ErrorClass: string(res.ErrorClass),
		Message:    res.Message,
		Processor:  res.Processor,
		Pattern:    res.Pattern,
		CreatedAt:  at,
	}
	if sel != nil && sel.Component != nil {
		e.ComponentID = sel.Component.ID
	}
	if err := c.recorder.Record(ctx, e); err != nil {
		c.log.Warn("failed to record command", "command_id", res.CommandID, "err", err)
	}
}

// Thread returns the thread with the given key without creating it.
func (c *Controller) Thread(key string) (*Thread, bool) {
	if key == "" || key == MainThread {
		return c.main, true
	}
	return c.components.Peek(key)
}

// History returns the transcript of a thread, or nil when it does not exist.
func (c *Controller) History(key string) []Message {
	t, ok := c.Thread(key)
	if !ok {
		return nil
	}
	return t.History()
}

// ThreadKeys lists "main" followed by the live component threads, oldest
// first.
func (c *Controller) ThreadKeys() []string {
	return append([]string{MainThread}, c.components.Keys()...)
}

// Suggestions describes what the user can type: the processors' example
// groups and the creatable component names.
type Suggestions struct {
	Groups    []processor.SuggestionGroup `json:"groups" yaml:"groups"`
	Creatable []string                    `json:"creatable" yaml:"creatable"`
}

// Suggestions returns the static suggestion menu.
func (c *Controller) Suggestions() Suggestions {
	return Suggestions{
		Groups:    c.exec.Registry().Suggestions(),
		Creatable: slices.Clone(c.exec.Catalog().Creatable()),
	}
}
