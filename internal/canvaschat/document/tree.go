package document

import (
	"errors"
	"fmt"
	"maps"
)

var (
	// ErrDuplicateID is returned when a component ID is already in the tree.
	ErrDuplicateID = errors.New("duplicate component id")
	// ErrNotFound is returned when a referenced component does not exist.
	ErrNotFound = errors.New("component not found")
	// ErrNotContainer is returned when appending to a type that cannot hold children.
	ErrNotContainer = errors.New("component cannot hold children")
)

// Tree is the document: ordered top-level components plus an ID index.
// Tree is not safe for concurrent use; callers serialize access.
type Tree struct {
	roots []*Component
	index map[string]*Component
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{index: make(map[string]*Component)}
}

// Roots returns the top-level components in canvas order.
func (t *Tree) Roots() []*Component {
	return t.roots
}

// Len returns the number of components in the tree.
func (t *Tree) Len() int {
	return len(t.index)
}

// Find returns the component with the given ID.
func (t *Tree) Find(id string) (*Component, bool) {
	c, ok := t.index[id]
	return c, ok
}

// Parent returns the parent of the component with the given ID (nil for
// top-level components).
func (t *Tree) Parent(id string) (*Component, error) {
	c, ok := t.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.parent, nil
}

// Add inserts c (and its subtree) as a new top-level component.
func (t *Tree) Add(c *Component) error {
	if err := t.checkIDs(c); err != nil {
		return err
	}
	c.parent = nil
	setDepth(c, 0)
	t.roots = append(t.roots, c)
	t.indexSubtree(c)
	return nil
}

// AppendChild appends child as the last child of the component parentID.
// Existing children keep their order; child depth becomes parent depth + 1.
func (t *Tree) AppendChild(parentID string, child *Component) error {
	parent, ok := t.index[parentID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, parentID)
	}
	if !parent.Type.IsContainer() {
		return fmt.Errorf("%w: %s is a %s", ErrNotContainer, parentID, parent.Type)
	}
	if err := t.checkIDs(child); err != nil {
		return err
	}
	child.parent = parent
	child.Position = nil
	setDepth(child, parent.Depth+1)
	parent.Children = append(parent.Children, child)
	t.indexSubtree(child)
	return nil
}

// MergeStyle shallow-merges patch into the style of component id.
func (t *Tree) MergeStyle(id string, patch map[string]any) error {
	c, ok := t.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if c.Style == nil {
		c.Style = map[string]any{}
	}
	maps.Copy(c.Style, patch)
	return nil
}

// MergeProps shallow-merges patch into the props of component id.
func (t *Tree) MergeProps(id string, patch map[string]any) error {
	c, ok := t.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if c.Props == nil {
		c.Props = map[string]any{}
	}
	maps.Copy(c.Props, patch)
	return nil
}

// Walk visits every component depth-first in document order. Returning false
// from fn stops the walk.
func (t *Tree) Walk(fn func(c *Component) bool) {
	var visit func(cs []*Component) bool
	visit = func(cs []*Component) bool {
		for _, c := range cs {
			if !fn(c) {
				return false
			}
			if !visit(c.Children) {
				return false
			}
		}
		return true
	}
	visit(t.roots)
}

// IsAncestor reports whether ancestorID is a strict ancestor of id.
func (t *Tree) IsAncestor(ancestorID, id string) bool {
	c, ok := t.index[id]
	if !ok {
		return false
	}
	for p := c.parent; p != nil; p = p.parent {
		if p.ID == ancestorID {
			return true
		}
	}
	return false
}

func (t *Tree) checkIDs(c *Component) error {
	seen := map[string]bool{}
	var check func(c *Component) error
	check = func(c *Component) error {
		if c.ID == "" {
			return fmt.Errorf("component of type %s has no id", c.Type)
		}
		if _, exists := t.index[c.ID]; exists || seen[c.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		if len(c.Children) > 0 && !c.Type.IsContainer() {
			return fmt.Errorf("%w: %s is a %s", ErrNotContainer, c.ID, c.Type)
		}
		seen[c.ID] = true
		for _, ch := range c.Children {
			if err := check(ch); err != nil {
				return err
			}
		}
		return nil
	}
	return check(c)
}

func (t *Tree) indexSubtree(c *Component) {
	t.index[c.ID] = c
	for _, ch := range c.Children {
		ch.parent = c
		t.indexSubtree(ch)
	}
}

func setDepth(c *Component, depth int) {
	c.Depth = depth
	for _, ch := range c.Children {
		setDepth(ch, depth+1)
	}
}
