package processor

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bdobrica/canvaschat/internal/canvaschat/catalog"
)

// Registry holds processors in priority order. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	processors []Processor
}

// NewRegistry creates a registry that tries the processors in the given order
func NewRegistry(ps ...Processor) *Registry {
	return &Registry{processors: slices.Clone(ps)}
}

// DefaultRegistry creates the standard registry: component-specific
// processors first, then workspace-level ones, then the generic style axes
func DefaultRegistry(cat *catalog.Catalog) *Registry {
	return NewRegistry(
		Container(cat),
		Kanban(),
		Todo(),
		Table(),
		Chart(),
		QueryValue(),
		SVG(),
		Whiteboard(),
		Image(),
		Video(),
		Heading(),
		Text(),
		Button(),
		Theme(),
		Toolbar(),
		Background(),
		Border(),
		Spacing(),
		Size(),
		Layout(),
	)
}

// Processors returns the processors in priority order
func (r *Registry) Processors() []Processor {
	return slices.Clone(r.processors)
}

// Process runs text through the processors in order. Processors whose types
// exclude the selected component are skipped. The first processor that
// recognizes the text and returns a result wins; a processor returning nil
// lets the next one try. Without a match the result is KindNone.
func (r *Registry) Process(ctx context.Context, text string, pc *Context) (*Result, error) {
	t := pc.Type()
	for _, p := range r.processors {
		if types := p.Types(); types != nil && !slices.Contains(types, t) {
			continue
		}
		if !p.Recognize(text) {
			continue
		}
		res, err := p.Transform(ctx, text, pc)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", p.Name(), err)
		}
		if res == nil {
			continue
		}
		res.Processor = p.Name()
		slog.Debug("command matched", "processor", p.Name(), "pattern", res.Pattern, "kind", res.Kind)
		return res, nil
	}
	return None(), nil
}

// Suggestions aggregates the example commands of every processor
func (r *Registry) Suggestions() []SuggestionGroup {
	var out []SuggestionGroup
	for _, p := range r.processors {
		out = append(out, p.Suggestions()...)
	}
	return out
}
