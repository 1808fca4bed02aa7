// Package host defines the narrow interfaces through which the command layer
// talks to the page builder: selection lookup, read-only data providers, and
// the mutation sink. Workspace is an in-memory implementation of all of them.
package host

import (
	"context"
	"errors"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
)

// ErrNotFound is returned when a referenced component or query is missing.
var ErrNotFound = errors.New("not found")

// Selection is the component a command applies to plus its immediate parent.
type Selection struct {
	Component *document.Component
	Parent    *document.Component
}

// Selector resolves the host's selected component IDs.
type Selector interface {
	// Selection returns the deepest component of a single ancestor chain, or
	// nil when ids is empty or names unrelated components.
	Selection(ids []string) *Selection
}

// RawQuery is a data query as the host stores it. Any field may be missing.
type RawQuery struct {
	ID     string         `json:"id" yaml:"id"`
	Name   string         `json:"name" yaml:"name"`
	Schema *RawSchema     `json:"schema,omitempty" yaml:"schema,omitempty"`
	Extra  map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// RawSchema describes the result columns of a query, when known.
type RawSchema struct {
	Columns []RawColumn `json:"columns" yaml:"columns"`
}

// RawColumn is one result column.
type RawColumn struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// RawWebService is a named web-service definition as the host stores it.
type RawWebService struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	URL    string `json:"url" yaml:"url"`
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
}

// DataProvider exposes read-only host data.
type DataProvider interface {
	Queries(ctx context.Context) ([]RawQuery, error)
	WebServices(ctx context.Context) ([]RawWebService, error)
}

// Previewer runs a query and returns its current scalar value.
type Previewer interface {
	PreviewQuery(ctx context.Context, queryID string) (any, error)
}

// Update is a shallow patch for a component's style and/or props.
type Update struct {
	Style map[string]any `json:"style,omitempty"`
	Props map[string]any `json:"props,omitempty"`
}

// WorkspaceUpdate is a patch for workspace-level state. Theme, when set,
// carries a name and/or palette entries to merge.
type WorkspaceUpdate struct {
	Theme   *document.Theme `json:"theme,omitempty"`
	Toolbar map[string]any  `json:"toolbar,omitempty"`
}

// Sink accepts mutations. The three methods mirror the three mutation shapes
// the builder understands.
type Sink interface {
	UpdateComponent(ctx context.Context, componentID string, u Update) error
	// AppendChild appends child under parentID; an empty parentID places the
	// component at the canvas root.
	AppendChild(ctx context.Context, parentID string, child *document.Component) error
	UpdateWorkspace(ctx context.Context, u WorkspaceUpdate) error
}
