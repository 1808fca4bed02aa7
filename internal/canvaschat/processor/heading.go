package processor

import (
	"fmt"
	"slices"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

const defaultHeadingSize = 32

// Heading returns the processor for headings. Level changes are tried before
// the displayed text so "make it an h2" never renames the heading.
func Heading() Processor {
	return &patternProcessor{
		name:  "heading",
		types: []document.Type{document.TypeHeading},
		keywords: append([]string{
			"h1", "h2", "h3", "h4", "h5", "h6", "level", "heading", "title", "subtitle", "subheading",
			"text", "content", "rename", "retitle", "say", "read", "wording",
		}, typographyKeywords...),
		patterns: slices.Concat(
			[]Pattern{
				P("level-prompt", `\b(?:heading\s+)?level`+tail, func(Match, *Context) *Result {
					return Ask("level", "Which heading level (1 to 6)?", "h1", "h2", "h3", "h4", "h5", "h6")
				}),
				P("level", `\b(?P<tag>h[1-6]|heading\s+(?:level\s+)?[1-6]|level\s+[1-6])\b`, setHeadingTag),
				P("level-keyword", `\b(?:make\s+(?:it|this)\s+(?:an?\s+)?|turn\s+(?:it\s+)?into\s+(?:an?\s+)?|as\s+(?:an?\s+)?)(?P<tag>subtitle|subheading|main\s+title|title)$`, setHeadingTag),
				P("level-invalid", `\b(?:heading\s+)?(?:level|tag)`+conn+`(?P<tag>\S+)$`, setHeadingTag),
			},
			contentPatterns("text", "heading"),
			typography(defaultHeadingSize, "heading"),
		),
		suggestions: []SuggestionGroup{{
			Category: "Heading",
			Examples: []string{
				"make it an h2",
				"change the title to Quarterly Results",
				"make the title bigger",
				"set font size to 40px",
				"change color to navy",
				"center it",
			},
		}},
	}
}

func setHeadingTag(m Match, _ *Context) *Result {
	raw := m.Get("tag")
	tag, ok := grammar.ResolveHeadingTag(raw)
	if !ok {
		return Invalid("%q is not a heading level. Use h1 through h6.", raw)
	}
	return PropsPatch(map[string]any{"tag": tag}, fmt.Sprintf("Changed the heading to %s.", tag))
}
