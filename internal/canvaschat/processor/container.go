package processor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/catalog"
	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

var (
	// "add a component called button" / "add something: a chart"
	addNamedRe = regexp.MustCompile(`(?i)\b(?:add|insert|nest|put|place|include|append)\s+(?:an?\s+)?(?:new\s+)?(?:component|element|item|child|widget|something)(?:\s+(?:called|named|of\s+type|like))?[\s:]+(?P<name>[a-z][a-z -]*)$`)
	// "add a component" with nothing after it
	addBareRe = regexp.MustCompile(`(?i)\b(?:add|insert|nest|put|place|include|append)\s+(?:an?\s+)?(?:new\s+)?(?:component|element|child|widget|something)(?:\s+(?:in|inside|into)\s+`+subjectRef+`)?$`)
)

// containerProcessor nests catalog components inside container-capable
// components.
type containerProcessor struct {
	cat *catalog.Catalog
}

// Container returns the processor for "add a button" style commands on
// containers, cards, forms and sections.
func Container(cat *catalog.Catalog) Processor {
	return &containerProcessor{cat: cat}
}

func (p *containerProcessor) Name() string { return "container" }

func (p *containerProcessor) Types() []document.Type {
	return []document.Type{document.TypeContainer, document.TypeCard, document.TypeForm, document.TypeSection}
}

func (p *containerProcessor) Recognize(text string) bool {
	return grammar.ContainsAny(grammar.Lower(text), catalog.Verbs...) ||
		grammar.ContainsAny(grammar.Lower(text), "nest")
}

func (p *containerProcessor) Transform(_ context.Context, text string, pc *Context) (*Result, error) {
	s := grammar.Normalize(text)

	if m, ok := p.cat.Match(s); ok {
		return p.nest(m.Entry, pc), nil
	}
	if sm := addNamedRe.FindStringSubmatch(s); sm != nil {
		name := sm[addNamedRe.SubexpIndex("name")]
		e, ok := p.cat.Resolve(name)
		if !ok || !e.IsCreatable() {
			return Invalid("I can't add a %q. Try one of: %s.", strings.TrimSpace(name), strings.Join(p.cat.Creatable(), ", ")), nil
		}
		return p.nest(e, pc), nil
	}
	if addBareRe.MatchString(s) {
		return Ask("component", "What would you like to add?", p.cat.Creatable()...), nil
	}
	return nil, nil
}

func (p *containerProcessor) nest(e *catalog.Entry, pc *Context) *Result {
	where := "the " + grammar.Label(string(pc.Type()))
	return NestedComponent(e.Type, e.Name, fmt.Sprintf("Added %s %s to %s.", article(e.Name), e.Name, where))
}

func (p *containerProcessor) Suggestions() []SuggestionGroup {
	return []SuggestionGroup{{
		Category: "Containers",
		Examples: []string{"add a button", "insert a heading", "add a chart inside it", "add a component"},
	}}
}

// article picks "a" or "an" for a noun phrase.
func article(noun string) string {
	if noun != "" && strings.ContainsRune("aeiouAEIOU", rune(noun[0])) {
		return "an"
	}
	return "a"
}
