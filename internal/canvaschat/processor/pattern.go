package processor

import (
	"context"
	"regexp"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

// Match is a successful pattern match over the normalized command.
type Match struct {
	Text   string
	groups map[string]string
}

// Get returns the trimmed value of a named group, or "".
func (m Match) Get(name string) string {
	return strings.TrimSpace(m.groups[name])
}

// First returns the first non-empty named group.
func (m Match) First(names ...string) string {
	for _, n := range names {
		if v := m.Get(n); v != "" {
			return v
		}
	}
	return ""
}

// BuildFunc turns a match into a result. Returning nil lets the next pattern
// (and then the next processor) try.
type BuildFunc func(m Match, pc *Context) *Result

// Pattern is one declarative matching rule.
type Pattern struct {
	Name  string
	Expr  *regexp.Regexp
	Build BuildFunc
}

// P compiles a case-insensitive pattern. It panics on a bad expression, so
// patterns are declared at package level or in constructors only.
func P(name, expr string, build BuildFunc) Pattern {
	return Pattern{Name: name, Expr: regexp.MustCompile(`(?i)` + expr), Build: build}
}

// Run normalizes text and tries the patterns in order. The first pattern that
// matches and whose builder returns a result wins.
func Run(patterns []Pattern, text string, pc *Context) *Result {
	s := grammar.Normalize(text)
	for _, p := range patterns {
		sm := p.Expr.FindStringSubmatch(s)
		if sm == nil {
			continue
		}
		m := Match{Text: s, groups: make(map[string]string)}
		for i, name := range p.Expr.SubexpNames() {
			if name != "" && sm[i] != "" {
				m.groups[name] = sm[i]
			}
		}
		if r := p.Build(m, pc); r != nil {
			if r.Pattern == "" {
				r.Pattern = p.Name
			}
			return r
		}
	}
	return nil
}

// patternProcessor is a Processor driven entirely by data: keywords for
// Recognize and an ordered pattern list for Transform.
type patternProcessor struct {
	name        string
	types       []document.Type
	keywords    []string
	patterns    []Pattern
	suggestions []SuggestionGroup
}

func (p *patternProcessor) Name() string                   { return p.name }
func (p *patternProcessor) Types() []document.Type         { return p.types }
func (p *patternProcessor) Suggestions() []SuggestionGroup { return p.suggestions }

func (p *patternProcessor) Recognize(text string) bool {
	return grammar.ContainsAny(grammar.Lower(text), p.keywords...)
}

func (p *patternProcessor) Transform(_ context.Context, text string, pc *Context) (*Result, error) {
	return Run(p.patterns, text, pc), nil
}
