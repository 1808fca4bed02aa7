// Package processor turns one normalized chat command into at most one
// command result. Each domain processor owns an ordered list of regular
// expression patterns; the Registry tries processors in a fixed priority
// order and the first one that produces a result wins.
package processor

import (
	"context"
	"fmt"

	"github.com/bdobrica/canvaschat/common/retry"
	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/host"
)

// Kind tags a Result.
type Kind string

const (
	KindStylePatch      Kind = "style_patch"
	KindPropsPatch      Kind = "props_patch"
	KindNestedComponent Kind = "nested_component"
	KindThemeUpdate     Kind = "theme_update"
	KindPrompt          Kind = "prompt"
	KindError           Kind = "error"
	KindNone            Kind = "none"
)

// Prompt asks the user for the missing value of a recognized command.
type Prompt struct {
	Expected string   `json:"expected"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}

// Nested requests a new child of the selected container.
type Nested struct {
	Type document.Type `json:"type"`
	Name string        `json:"name"`
}

// ThemePatch is a workspace-level update: theme name and/or palette entries,
// and/or toolbar settings.
type ThemePatch struct {
	Name    string            `json:"name,omitempty"`
	Palette map[string]string `json:"palette,omitempty"`
	Toolbar map[string]any    `json:"toolbar,omitempty"`
}

// Result is the outcome of processing one command. Exactly one payload field
// matching Kind is set.
type Result struct {
	Kind      Kind           `json:"kind"`
	Message   string         `json:"message,omitempty"`
	Patch     map[string]any `json:"patch,omitempty"`
	Component *Nested        `json:"component,omitempty"`
	Theme     *ThemePatch    `json:"theme,omitempty"`
	Prompt    *Prompt        `json:"prompt,omitempty"`
	Err       error          `json:"-"`

	// Processor and Pattern name the rule that produced the result.
	Processor string `json:"processor,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

// StylePatch returns a style patch result.
func StylePatch(patch map[string]any, message string) *Result {
	return &Result{Kind: KindStylePatch, Patch: patch, Message: message}
}

// PropsPatch returns a props patch result.
func PropsPatch(patch map[string]any, message string) *Result {
	return &Result{Kind: KindPropsPatch, Patch: patch, Message: message}
}

// NestedComponent returns a result that adds a child of type t.
func NestedComponent(t document.Type, name, message string) *Result {
	return &Result{Kind: KindNestedComponent, Component: &Nested{Type: t, Name: name}, Message: message}
}

// ThemeUpdate returns a workspace-level update result.
func ThemeUpdate(p *ThemePatch, message string) *Result {
	return &Result{Kind: KindThemeUpdate, Theme: p, Message: message}
}

// Ask returns a prompt result waiting for a value of kind expected.
func Ask(expected, question string, options ...string) *Result {
	return &Result{
		Kind:    KindPrompt,
		Message: question,
		Prompt:  &Prompt{Expected: expected, Question: question, Options: options},
	}
}

// Invalid returns an error result carrying a ValidationError.
func Invalid(format string, args ...any) *Result {
	err := &ValidationError{Message: fmt.Sprintf(format, args...)}
	return &Result{Kind: KindError, Message: err.Message, Err: err}
}

// Unavailable returns an error result carrying a StateError.
func Unavailable(format string, args ...any) *Result {
	err := &StateError{Message: fmt.Sprintf(format, args...)}
	return &Result{Kind: KindError, Message: err.Message, Err: err}
}

// None is the result when no processor matched.
func None() *Result {
	return &Result{Kind: KindNone}
}

// ValidationError is a malformed or unknown value extracted from the command.
// Its message is shown to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StateError means the command needs state that does not exist yet, such as
// a bound query or any query at all.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

// Selected is a read-only copy of the selected component.
type Selected struct {
	ID    string
	Type  document.Type
	Style map[string]any
	Props map[string]any
}

// Context is everything a processor may consult while transforming a
// command. It is built once per command and never stored.
type Context struct {
	Component *Selected
	Data      host.Snapshot
	Theme     document.Theme
	Toolbar   map[string]any
	Previewer host.Previewer
	Retry     retry.Config
}

// NewContext builds a context from the host selection (nil for none).
func NewContext(sel *host.Selection, data host.Snapshot, theme document.Theme) *Context {
	pc := &Context{Data: data, Theme: theme, Toolbar: document.DefaultToolbar(), Retry: retry.DefaultConfig}
	if sel != nil && sel.Component != nil {
		pc.Component = &Selected{
			ID:    sel.Component.ID,
			Type:  sel.Component.Type,
			Style: sel.Component.StyleSnapshot(),
			Props: document.CloneMap(sel.Component.Props),
		}
	}
	return pc
}

// Type returns the selected component's type, or "" without a selection.
func (c *Context) Type() document.Type {
	if c == nil || c.Component == nil {
		return ""
	}
	return c.Component.Type
}

// Style returns a style value of the selected component.
func (c *Context) Style(key string) any {
	if c == nil || c.Component == nil {
		return nil
	}
	return c.Component.Style[key]
}

// Prop returns a prop value of the selected component.
func (c *Context) Prop(key string) any {
	if c == nil || c.Component == nil {
		return nil
	}
	return c.Component.Props[key]
}

// PropString returns a string prop, or "" when unset or not a string.
func (c *Context) PropString(key string) string {
	s, _ := c.Prop(key).(string)
	return s
}

// SuggestionGroup is a category of example commands shown to users.
type SuggestionGroup struct {
	Category string   `json:"category" yaml:"category"`
	Examples []string `json:"examples" yaml:"examples"`
}

// Processor recognizes and transforms the commands of one domain.
type Processor interface {
	// Name identifies the processor in logs and results.
	Name() string
	// Types lists the component types the processor applies to; nil means
	// it applies regardless of the selection.
	Types() []document.Type
	// Recognize is a cheap keyword test with no side effects.
	Recognize(text string) bool
	// Transform returns the result of the first matching pattern, nil when
	// no pattern matched, or an error when an external call failed.
	Transform(ctx context.Context, text string, pc *Context) (*Result, error)
	// Suggestions returns static example commands.
	Suggestions() []SuggestionGroup
}
