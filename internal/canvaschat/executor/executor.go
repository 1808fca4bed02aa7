// Package executor applies the outcome of one chat command to the host: it
// merges a pending clarification, runs the processor registry, falls back to
// component creation, and turns every failure into a user-facing result.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/bdobrica/canvaschat/common/retry"
	"github.com/bdobrica/canvaschat/common/trace"
	"github.com/bdobrica/canvaschat/internal/canvaschat/catalog"
	"github.com/bdobrica/canvaschat/internal/canvaschat/clarify"
	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
	"github.com/bdobrica/canvaschat/internal/canvaschat/host"
	"github.com/bdobrica/canvaschat/internal/canvaschat/processor"
)

// MissMessage is the reply when neither a processor nor the creation
// fallback understood the command.
const MissMessage = "Sorry, I could not understand that command."

// DefaultPosition is where the creation fallback places new top-level
// components.
var DefaultPosition = document.Point{X: 40, Y: 40}

// ErrNoSink is returned by New when no mutation sink is configured.
var ErrNoSink = errors.New("executor: a host sink is required")

// ErrorClass classifies a failed command.
type ErrorClass string

const (
	ErrorValidation      ErrorClass = "validation"
	ErrorState           ErrorClass = "state"
	ErrorRecognitionMiss ErrorClass = "recognition_miss"
	ErrorExternal        ErrorClass = "external"
)

// Command is one user turn.
type Command struct {
	ID   string
	Text string
	At   time.Time
}

// Result is what the chat panel shows for a command.
type Result struct {
	Success       bool                  `json:"success"`
	Message       string                `json:"message"`
	Kind          processor.Kind        `json:"kind"`
	ErrorClass    ErrorClass            `json:"errorClass,omitempty"`
	ComponentID   string                `json:"componentId,omitempty"`
	Update        *host.Update          `json:"update,omitempty"`
	Created       *document.Component   `json:"created,omitempty"`
	Workspace     *host.WorkspaceUpdate `json:"workspace,omitempty"`
	Options       []string              `json:"options,omitempty"`
	NeedsMoreInfo bool                  `json:"needsMoreInfo,omitempty"`
	CommandID     string                `json:"commandId"`
	Processor     string                `json:"processor,omitempty"`
	Pattern       string                `json:"pattern,omitempty"`
}

// IDGenerator allocates IDs for new components.
type IDGenerator func(t document.Type) string

// UUIDGenerator returns "<type>-<uuid>".
func UUIDGenerator(t document.Type) string {
	return string(t) + "-" + uuid.NewString()
}

// Settings exposes the workspace-level state processors may read.
type Settings interface {
	Theme() document.Theme
	Toolbar() map[string]any
}

// Config holds the executor's collaborators. Only Sink is required.
type Config struct {
	Registry  *processor.Registry
	Catalog   *catalog.Catalog
	Data      host.DataProvider
	Previewer host.Previewer
	Sink      host.Sink
	Settings  Settings
	Retry     retry.Config
	NewID     IDGenerator
	Logger    *slog.Logger
}

// Executor runs commands. It keeps no per-thread state and is safe for
// concurrent use as long as its collaborators are.
type Executor struct {
	registry  *processor.Registry
	catalog   *catalog.Catalog
	data      host.DataProvider
	previewer host.Previewer
	sink      host.Sink
	settings  Settings
	retry     retry.Config
	newID     IDGenerator
	log       *slog.Logger
}

// New creates an executor, filling unset collaborators with defaults.
func New(cfg Config) (*Executor, error) {
	if cfg.Sink == nil {
		return nil, ErrNoSink
	}
	e := &Executor{
		registry:  cfg.Registry,
		catalog:   cfg.Catalog,
		data:      cfg.Data,
		previewer: cfg.Previewer,
		sink:      cfg.Sink,
		settings:  cfg.Settings,
		retry:     cfg.Retry,
		newID:     cfg.NewID,
		log:       cfg.Logger,
	}
	if e.catalog == nil {
		e.catalog = catalog.Default()
	}
	if e.registry == nil {
		e.registry = processor.DefaultRegistry(e.catalog)
	}
	if e.retry.MaxAttempts == 0 {
		e.retry = retry.DefaultConfig
	}
	if e.newID == nil {
		e.newID = UUIDGenerator
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	return e, nil
}

// Registry returns the processor registry the executor dispatches to.
func (e *Executor) Registry() *processor.Registry {
	return e.registry
}

// Catalog returns the component catalog used for creation.
func (e *Executor) Catalog() *catalog.Catalog {
	return e.catalog
}

// Execute processes one command for a thread. A pending clarification on the
// thread is merged into the text and cleared before dispatch, whatever the
// outcome. Execute never returns an error: every failure is a Result.
func (e *Executor) Execute(ctx context.Context, cmd Command, thread *clarify.Machine, sel *host.Selection) Result {
	if cmd.ID == "" {
		cmd.ID = trace.GenerateID()
	}
	ctx = trace.WithTraceID(ctx, cmd.ID)
	log := e.log.With("command_id", cmd.ID)

	// A follow-up question on a merged turn is asked about the command that
	// started the exchange, not the merged text.
	text, original := cmd.Text, cmd.Text
	if thread != nil {
		if st := thread.State(); st.Status == clarify.Awaiting {
			original = st.Original
		}
		var merged bool
		if text, merged = thread.Take(cmd.Text); merged {
			log.Debug("merged clarification answer", "text", text)
		}
	}

	res := e.execute(ctx, text, original, thread, sel)
	res.CommandID = cmd.ID
	if res.Success {
		log.Info("command executed", "kind", res.Kind, "processor", res.Processor, "pattern", res.Pattern)
	} else {
		log.Info("command failed", "kind", res.Kind, "class", res.ErrorClass, "message", res.Message)
	}
	return res
}

func (e *Executor) execute(ctx context.Context, text, original string, thread *clarify.Machine, sel *host.Selection) Result {
	data, err := host.BuildSnapshot(ctx, e.data, e.retry)
	if err != nil {
		return e.external(ctx, err)
	}

	theme := document.DefaultTheme()
	if e.settings != nil {
		theme = e.settings.Theme()
	}
	pc := processor.NewContext(sel, data, theme)
	if e.settings != nil {
		pc.Toolbar = e.settings.Toolbar()
	}
	pc.Previewer = e.previewer
	pc.Retry = e.retry

	res, err := e.registry.Process(ctx, text, pc)
	if err != nil {
		return e.external(ctx, err)
	}

	out := Result{Kind: res.Kind, Message: res.Message, Processor: res.Processor, Pattern: res.Pattern}
	switch res.Kind {
	case processor.KindStylePatch, processor.KindPropsPatch:
		return e.applyPatch(ctx, out, res, pc)
	case processor.KindNestedComponent:
		return e.nest(ctx, out, res, sel)
	case processor.KindThemeUpdate:
		return e.updateWorkspace(ctx, out, res)
	case processor.KindPrompt:
		if thread != nil {
			thread.Await(res.Prompt.Expected, original)
		}
		out.Success = true
		out.NeedsMoreInfo = true
		out.Options = res.Prompt.Options
		return out
	case processor.KindError:
		out.ErrorClass = classify(res.Err)
		return out
	default:
		return e.create(ctx, text)
	}
}

func (e *Executor) applyPatch(ctx context.Context, out Result, res *processor.Result, pc *processor.Context) Result {
	if pc.Component == nil {
		return failure(out, ErrorState, "Select a component first, then tell me what to change.")
	}
	u := host.Update{}
	if res.Kind == processor.KindStylePatch {
		u.Style = res.Patch
	} else {
		merged := document.CloneMap(pc.Component.Props)
		if merged == nil {
			merged = map[string]any{}
		}
		maps.Copy(merged, res.Patch)
		if err := e.catalog.ValidateProps(pc.Component.Type, merged); err != nil {
			e.log.Debug("props patch rejected by schema", "component", pc.Component.ID, "err", err)
			return failure(out, ErrorValidation, fmt.Sprintf("That change is not valid for a %s.", grammar.Label(string(pc.Component.Type))))
		}
		u.Props = res.Patch
	}
	if err := e.sink.UpdateComponent(ctx, pc.Component.ID, u); err != nil {
		return e.external(ctx, err)
	}
	out.Success = true
	out.ComponentID = pc.Component.ID
	out.Update = &u
	return out
}

func (e *Executor) nest(ctx context.Context, out Result, res *processor.Result, sel *host.Selection) Result {
	if sel == nil || sel.Component == nil || !sel.Component.Type.IsContainer() {
		return failure(out, ErrorState, "Select a container, card, form or section to add components to.")
	}
	child, err := e.catalog.Instantiate(res.Component.Type, e.newID(res.Component.Type))
	if err != nil {
		return failure(out, ErrorValidation, fmt.Sprintf("I can't add a %s here.", res.Component.Name))
	}
	if err := e.sink.AppendChild(ctx, sel.Component.ID, child.Clone()); err != nil {
		return e.external(ctx, err)
	}
	child.Depth = sel.Component.Depth + 1
	out.Success = true
	out.ComponentID = sel.Component.ID
	out.Created = child
	return out
}

func (e *Executor) updateWorkspace(ctx context.Context, out Result, res *processor.Result) Result {
	u := host.WorkspaceUpdate{Toolbar: res.Theme.Toolbar}
	if res.Theme.Name != "" || len(res.Theme.Palette) > 0 {
		u.Theme = &document.Theme{Name: res.Theme.Name, Palette: res.Theme.Palette}
	}
	if err := e.sink.UpdateWorkspace(ctx, u); err != nil {
		return e.external(ctx, err)
	}
	out.Success = true
	out.Workspace = &u
	return out
}

// create is the component-creation fallback for commands no processor
// handled. New components go to the canvas root.
func (e *Executor) create(ctx context.Context, text string) Result {
	m, ok := e.catalog.Match(grammar.Normalize(text))
	if !ok {
		return Result{Kind: processor.KindNone, ErrorClass: ErrorRecognitionMiss, Message: MissMessage}
	}
	c, err := e.catalog.Instantiate(m.Entry.Type, e.newID(m.Entry.Type))
	if err != nil {
		return failure(Result{Kind: processor.KindNone}, ErrorValidation, err.Error())
	}
	pos := DefaultPosition
	c.Position = &pos
	if err := e.sink.AppendChild(ctx, "", c.Clone()); err != nil {
		return e.external(ctx, err)
	}
	return Result{
		Success:   true,
		Kind:      processor.KindNestedComponent,
		Message:   fmt.Sprintf("Added a new %s to the canvas.", m.Entry.Name),
		Created:   c,
		Processor: "catalog",
		Pattern:   m.Verb + " " + m.Variant,
	}
}

// external converts a failed host or processor call into a state-shaped
// result.
func (e *Executor) external(ctx context.Context, err error) Result {
	e.log.Warn("external call failed", "command_id", trace.FromContext(ctx), "err", err)
	msg := "I couldn't reach the workspace data just now. Please try again."
	if errors.Is(err, document.ErrNotContainer) || errors.Is(err, document.ErrNotFound) || errors.Is(err, host.ErrNotFound) {
		msg = "The selected component is no longer available. Select it again and retry."
	}
	return Result{Kind: processor.KindError, ErrorClass: ErrorExternal, Message: msg}
}

func failure(out Result, class ErrorClass, msg string) Result {
	out.Success = false
	out.Kind = processor.KindError
	out.ErrorClass = class
	out.Message = msg
	return out
}

func classify(err error) ErrorClass {
	var se *processor.StateError
	if errors.As(err, &se) {
		return ErrorState
	}
	return ErrorValidation
}
