package host

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
)

// Workspace is an in-memory host: component tree, theme, toolbar settings and
// data queries. It implements Selector, DataProvider, Previewer and Sink and
// is safe for concurrent use.
type Workspace struct {
	mu       sync.RWMutex
	tree     *document.Tree
	theme    document.Theme
	toolbar  map[string]any
	queries  []RawQuery
	services []RawWebService
	previews map[string]any
}

var (
	_ Selector     = (*Workspace)(nil)
	_ DataProvider = (*Workspace)(nil)
	_ Previewer    = (*Workspace)(nil)
	_ Sink         = (*Workspace)(nil)
)

// NewWorkspace returns an empty workspace with the default theme and toolbar.
func NewWorkspace() *Workspace {
	return &Workspace{
		tree:     document.NewTree(),
		theme:    document.DefaultTheme(),
		toolbar:  document.DefaultToolbar(),
		previews: map[string]any{},
	}
}

// seedFile is the YAML layout accepted by LoadWorkspace.
type seedFile struct {
	Theme       *document.Theme       `yaml:"theme"`
	Toolbar     map[string]any        `yaml:"toolbar"`
	Components  []*document.Component `yaml:"components"`
	Queries     []RawQuery            `yaml:"queries"`
	WebServices []RawWebService       `yaml:"webServices"`
	Previews    map[string]any        `yaml:"previews"`
}

// LoadWorkspace builds a workspace from a YAML seed document.
func LoadWorkspace(data []byte) (*Workspace, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing workspace seed: %w", err)
	}
	ws := NewWorkspace()
	if seed.Theme != nil {
		ws.theme = seed.Theme.Clone()
	}
	maps.Copy(ws.toolbar, seed.Toolbar)
	for _, c := range seed.Components {
		fillMaps(c)
		if err := ws.tree.Add(c); err != nil {
			return nil, fmt.Errorf("seeding component %q: %w", c.ID, err)
		}
	}
	ws.queries = seed.Queries
	ws.services = seed.WebServices
	maps.Copy(ws.previews, seed.Previews)
	return ws, nil
}

func fillMaps(c *document.Component) {
	if c.Style == nil {
		c.Style = map[string]any{}
	}
	if c.Props == nil {
		c.Props = map[string]any{}
	}
	for _, ch := range c.Children {
		fillMaps(ch)
	}
}

// AddComponent inserts a top-level component (used for seeding and tests).
func (w *Workspace) AddComponent(c *document.Component) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	fillMaps(c)
	return w.tree.Add(c)
}

// SetQueries replaces the host's query definitions.
func (w *Workspace) SetQueries(qs []RawQuery) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.queries = qs
}

// SetPreview sets the value PreviewQuery returns for queryID.
func (w *Workspace) SetPreview(queryID string, v any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.previews[queryID] = v
}

// Component returns a deep copy of the component with the given ID.
func (w *Workspace) Component(id string) (*document.Component, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.tree.Find(id)
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// Components returns a deep copy of the top-level components.
func (w *Workspace) Components() []*document.Component {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*document.Component, 0, len(w.tree.Roots()))
	for _, c := range w.tree.Roots() {
		out = append(out, c.Clone())
	}
	return out
}

// Count returns the number of components in the tree.
func (w *Workspace) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Len()
}

// Theme returns a copy of the current theme.
func (w *Workspace) Theme() document.Theme {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.theme.Clone()
}

// Toolbar returns a copy of the toolbar settings.
func (w *Workspace) Toolbar() map[string]any {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[string]any, len(w.toolbar))
	maps.Copy(out, w.toolbar)
	return out
}

// Selection implements Selector. The selected IDs must all lie on one
// ancestor chain; the deepest one is returned with its parent.
func (w *Workspace) Selection(ids []string) *Selection {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if len(ids) == 0 {
		return nil
	}
	var deepest *document.Component
	for _, id := range ids {
		c, ok := w.tree.Find(id)
		if !ok {
			return nil
		}
		switch {
		case deepest == nil, w.tree.IsAncestor(deepest.ID, c.ID):
			deepest = c
		case c.ID == deepest.ID, w.tree.IsAncestor(c.ID, deepest.ID):
		default:
			return nil
		}
	}
	sel := &Selection{Component: deepest.Clone()}
	if p := deepest.Parent(); p != nil {
		sel.Parent = p.Clone()
	}
	return sel
}

// Queries implements DataProvider.
func (w *Workspace) Queries(_ context.Context) ([]RawQuery, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]RawQuery(nil), w.queries...), nil
}

// WebServices implements DataProvider.
func (w *Workspace) WebServices(_ context.Context) ([]RawWebService, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]RawWebService(nil), w.services...), nil
}

// PreviewQuery implements Previewer using the seeded preview values.
func (w *Workspace) PreviewQuery(_ context.Context, queryID string) (any, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	v, ok := w.previews[queryID]
	if !ok {
		return nil, fmt.Errorf("preview for query %q: %w", queryID, ErrNotFound)
	}
	return v, nil
}

// UpdateComponent implements Sink.
func (w *Workspace) UpdateComponent(_ context.Context, componentID string, u Update) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.tree.Find(componentID); !ok {
		return fmt.Errorf("component %q: %w", componentID, ErrNotFound)
	}
	if len(u.Style) > 0 {
		if err := w.tree.MergeStyle(componentID, u.Style); err != nil {
			return err
		}
	}
	if len(u.Props) > 0 {
		if err := w.tree.MergeProps(componentID, u.Props); err != nil {
			return err
		}
	}
	return nil
}

// AppendChild implements Sink.
func (w *Workspace) AppendChild(_ context.Context, parentID string, child *document.Component) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	fillMaps(child)
	if parentID == "" {
		return w.tree.Add(child)
	}
	return w.tree.AppendChild(parentID, child)
}

// UpdateWorkspace implements Sink. Palette entries merge into the current
// theme; a non-empty theme name replaces the name.
func (w *Workspace) UpdateWorkspace(_ context.Context, u WorkspaceUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if u.Theme != nil {
		if u.Theme.Name != "" {
			w.theme.Name = u.Theme.Name
		}
		if w.theme.Palette == nil {
			w.theme.Palette = map[string]string{}
		}
		maps.Copy(w.theme.Palette, u.Theme.Palette)
	}
	maps.Copy(w.toolbar, u.Toolbar)
	return nil
}
