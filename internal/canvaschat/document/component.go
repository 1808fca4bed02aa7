// Package document models the page tree the builder edits: components with
// style and props maps, ordered children for container types, and the
// workspace-level theme and toolbar settings.
package document

import "maps"

// Type identifies the kind of a component. It never changes after creation.
type Type string

const (
	TypeContainer  Type = "container"
	TypeCard       Type = "card"
	TypeForm       Type = "form"
	TypeSection    Type = "section"
	TypeText       Type = "text"
	TypeHeading    Type = "heading"
	TypeButton     Type = "button"
	TypeInput      Type = "input"
	TypeTable      Type = "table"
	TypeChart      Type = "chart"
	TypeKanban     Type = "kanban"
	TypeTodo       Type = "todo"
	TypeSVG        Type = "svg"
	TypeImage      Type = "image"
	TypeVideo      Type = "video"
	TypeWhiteboard Type = "whiteboard"
	TypeQueryValue Type = "queryValue"
)

// containerTypes lists the types that may own children.
var containerTypes = map[Type]bool{
	TypeContainer: true,
	TypeCard:      true,
	TypeForm:      true,
	TypeSection:   true,
}

// IsContainer reports whether components of type t may hold children.
func (t Type) IsContainer() bool {
	return containerTypes[t]
}

// Point is a canvas coordinate for top-level components.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Component is one node of the document tree.
type Component struct {
	ID       string         `json:"id" yaml:"id"`
	Type     Type           `json:"type" yaml:"type"`
	Style    map[string]any `json:"style,omitempty" yaml:"style,omitempty"`
	Props    map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
	Children []*Component   `json:"children,omitempty" yaml:"children,omitempty"`
	Depth    int            `json:"depth" yaml:"depth"`
	Position *Point         `json:"position,omitempty" yaml:"position,omitempty"`

	// parent is a lookup-only back reference maintained by Tree.
	parent *Component
}

// New returns a component with empty, non-nil style and props maps.
func New(id string, t Type) *Component {
	return &Component{
		ID:    id,
		Type:  t,
		Style: map[string]any{},
		Props: map[string]any{},
	}
}

// Parent returns the owning component, or nil for top-level components.
func (c *Component) Parent() *Component {
	return c.parent
}

// StyleSnapshot returns a shallow copy of the style map.
func (c *Component) StyleSnapshot() map[string]any {
	if c == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(c.Style))
	maps.Copy(out, c.Style)
	return out
}

// PropsSnapshot returns a shallow copy of the props map.
func (c *Component) PropsSnapshot() map[string]any {
	if c == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(c.Props))
	maps.Copy(out, c.Props)
	return out
}

// Clone returns a deep copy of c and its subtree, detached from any parent.
func (c *Component) Clone() *Component {
	if c == nil {
		return nil
	}
	out := &Component{
		ID:    c.ID,
		Type:  c.Type,
		Style: CloneMap(c.Style),
		Props: CloneMap(c.Props),
		Depth: c.Depth,
	}
	if c.Position != nil {
		p := *c.Position
		out.Position = &p
	}
	for _, ch := range c.Children {
		cc := ch.Clone()
		cc.parent = out
		out.Children = append(out.Children, cc)
	}
	return out
}

// CloneMap deep-copies a JSON-like map (nested maps and slices are copied,
// scalars shared).
func CloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
