package processor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

const defaultTextSize = 16

// Text returns the processor for text blocks.
func Text() Processor {
	return &patternProcessor{
		name:  "text",
		types: []document.Type{document.TypeText},
		keywords: append([]string{
			"text", "content", "copy", "rename", "reword", "say", "read", "wording",
			"font", "typeface", "use", "paragraph", "span", "quote", "code", "caption", "label",
			"line height", "line-height", "line spacing", "letter", "tracking",
		}, typographyKeywords...),
		patterns: slices.Concat(
			contentPatterns("text", "text"),
			typography(defaultTextSize, "text"),
			[]Pattern{
				P("font-prompt", `\b(?:font(?:\s+family)?|typeface)`+tail, func(Match, *Context) *Result {
					return Ask("font", "Which font should the text use?", "sans-serif", "serif", "monospace", "inter", "georgia")
				}),
				P("font", `\b(?:font(?:\s+family)?|typeface)`+conn+`(?P<font>[a-z][a-z -]*?)(?:\s+font)?$`, setFont(true)),
				P("font-use", `\buse\s+(?:the\s+)?(?:an?\s+)?(?P<font>[a-z][a-z -]*?)(?:\s+(?:font|typeface))$`, setFont(true)),
				P("font-loose", `\b(?:use|make\s+it|in)\s+(?:an?\s+)?(?P<font>[a-z][a-z -]*?)$`, setFont(false)),
				P("tag", `\b(?:make\s+(?:it|this)\s+(?:an?\s+)?|turn\s+(?:it\s+|this\s+)?into\s+(?:an?\s+)?|as\s+(?:an?\s+)?|tag\s+(?:to\s+)?)(?P<tag>paragraph|span|inline|blockquote|quote|code\s+block|code|label|caption|small)\b`, func(m Match, _ *Context) *Result {
					tag, ok := grammar.ResolveTextTag(m.Get("tag"))
					if !ok {
						return nil
					}
					return PropsPatch(map[string]any{"tag": tag}, fmt.Sprintf("Changed the text element to %s.", tag))
				}),
				P("line-height-prompt", `\bline[-\s]?(?:height|spacing)`+tail, func(Match, *Context) *Result {
					return Ask("line height", "What line height should the text use?", "1.2", "1.5", "2")
				}),
				P("line-height", `\bline[-\s]?(?:height|spacing)`+conn+`(?P<lh>\d+(?:\.\d+)?)\s*(?P<unit>px|%|em|rem)?`, func(m Match, _ *Context) *Result {
					v := m.Get("lh") + strings.ToLower(m.Get("unit"))
					return StylePatch(map[string]any{"lineHeight": v}, "Updated line height.")
				}),
				P("line-height-invalid", `\bline[-\s]?(?:height|spacing)`+conn+`(?P<bad>\S+)$`, func(m Match, _ *Context) *Result {
					return Invalid("%q is not a valid line height. Try 1.5 or 24px.", m.Get("bad"))
				}),
			},
			lengthRule("letter-spacing", `letter[-\s]?spacing|tracking`, KindStylePatch, "letterSpacing", "letter spacing"),
		),
		suggestions: []SuggestionGroup{{
			Category: "Text",
			Examples: []string{
				"set text to Welcome aboard",
				"make the text bigger",
				"set font to georgia",
				"make it bold",
				"italicize it",
				"set line height to 1.5",
				"make it a quote",
			},
		}},
	}
}

// setFont resolves the "font" group. Loose phrasings give way to the next
// rule when the name is not a known font.
func setFont(strict bool) BuildFunc {
	return func(m Match, _ *Context) *Result {
		raw := m.Get("font")
		font, ok := grammar.ResolveFont(raw)
		if !ok {
			if !strict {
				return nil
			}
			return Invalid("I don't know the font %q.", raw)
		}
		return StylePatch(map[string]any{"fontFamily": font}, "Updated font family.")
	}
}
