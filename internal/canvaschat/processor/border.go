package processor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

const (
	defaultBorderWidth  = 1
	defaultBorderRadius = 4
	defaultBorderColor  = "#cbd5e1"
)

var borderStyles = []string{"solid", "dashed", "dotted", "double", "groove", "ridge", "inset", "outset"}

var shadows = map[string]string{
	"subtle": "0 1px 2px rgba(0, 0, 0, 0.06)",
	"soft":   "0 1px 3px rgba(0, 0, 0, 0.12)",
	"small":  "0 1px 3px rgba(0, 0, 0, 0.12)",
	"":       "0 4px 6px rgba(0, 0, 0, 0.1)",
	"medium": "0 4px 6px rgba(0, 0, 0, 0.1)",
	"large":  "0 10px 15px rgba(0, 0, 0, 0.15)",
	"big":    "0 10px 15px rgba(0, 0, 0, 0.15)",
	"strong": "0 20px 25px rgba(0, 0, 0, 0.25)",
	"heavy":  "0 20px 25px rgba(0, 0, 0, 0.25)",
}

// Border returns the generic processor for borders, corner radius and
// shadows.
func Border() Processor {
	return &patternProcessor{
		name: "border",
		keywords: []string{
			"border", "outline", "radius", "corner", "round", "sharp", "square", "shadow", "dashed", "dotted", "solid",
		},
		patterns: slices.Concat(
			[]Pattern{
				P("remove", `\b(?:remove|no|clear|delete|hide)\s+(?:the\s+)?(?:border|outline)s?\b|\bborderless|\bborder\s+(?:to\s+)?none$`,
					set(KindStylePatch, map[string]any{"border": "none"}, "Removed the border.")),
				P("shadow-remove", `\b(?:remove|no|clear|delete|hide)\s+(?:the\s+)?(?:drop\s+|box\s+)?shadows?`,
					set(KindStylePatch, map[string]any{"boxShadow": "none"}, "Removed the shadow.")),
				P("shadow", `\b(?:(?P<lvl>subtle|soft|small|medium|large|big|strong|heavy)\s+)?(?:drop\s+|box\s+)?shadow`, func(m Match, _ *Context) *Result {
					lvl := strings.ToLower(m.Get("lvl"))
					return StylePatch(map[string]any{"boxShadow": shadows[lvl]}, "Added a shadow.")
				}),
			},
			lengthRule("radius", `(?:border\s+|corner\s+)?radius`, KindStylePatch, "borderRadius", "corner radius"),
			[]Pattern{
				P("radius-sharp", `\b(?:sharp|square)\s+corners|\b(?:remove|no)\s+(?:the\s+)?(?:rounding|rounded\s+corners)|\bunround`,
					set(KindStylePatch, map[string]any{"borderRadius": "0px"}, "Made the corners square.")),
				P("radius-relative", `\b(?P<rel>more|less)\s+rounded|\bround(?:\s+(?:it|the\s+corners))?\s+(?P<rel2>more|less)`, func(m Match, pc *Context) *Result {
					factor := grammar.GrowFactor
					if strings.EqualFold(m.First("rel", "rel2"), "less") {
						factor = grammar.ShrinkFactor
					}
					return scaleStyle("borderRadius", defaultBorderRadius, factor)(m, pc)
				}),
				P("radius-round", `\bround(?:ed)?\s+(?:the\s+)?corners|\bmake\s+(?:it\s+|the\s+corners\s+)?rounded|\bround\s+(?:it|this)\b`,
					set(KindStylePatch, map[string]any{"borderRadius": "8px"}, "Rounded the corners.")),
			},
			lengthRule("border-width", `(?:border|outline)\s+(?:width|thickness|size)`, KindStylePatch, "borderWidth", "border width"),
			[]Pattern{
				P("border-relative", `\b(?P<rel>thicker|thinner)\s+(?:border|outline)|\b(?:border|outline)\s+(?P<rel2>thicker|thinner)`, func(m Match, pc *Context) *Result {
					factor := grammar.GrowFactor
					if strings.EqualFold(m.First("rel", "rel2"), "thinner") {
						factor = grammar.ShrinkFactor
					}
					return scaleStyle("borderWidth", defaultBorderWidth, factor)(m, pc)
				}),
				P("style-prompt", `\b(?:border|outline)\s+style`+tail, func(Match, *Context) *Result {
					return Ask("border style", "Which border style?", borderStyles...)
				}),
				P("style", `\b(?:border|outline)\s+style`+conn+`(?P<s>[a-z]+)|\b(?P<s2>solid|dashed|dotted|double|groove|ridge)\s+(?:border|outline)\b(?:\s+style)?$|\bmake\s+(?:the\s+)?(?:border|outline)\s+(?P<s3>[a-z]+)$`, setBorderStyle),
				P("add", `\b(?:add|give\s+(?:it|this)|put)\s+(?:an?\s+|the\s+)?(?P<words>[#a-z0-9 ]*?)\s*(?:border|outline)(?:\s+(?:around|to|on)\s+`+subjectRef+`)?$`, addBorder),
				P("shorthand", `\bborder`+conn+`(?P<words>\d+\s*px\s+[#a-z0-9 ]+)$`, addBorder),
			},
			colorRule("border-color", `border(?:\s+colou?r)?|outline(?:\s+colou?r)?`, KindStylePatch, "borderColor", "border"),
		),
		suggestions: []SuggestionGroup{{
			Category: "Border",
			Examples: []string{
				"add a border",
				"add a dashed red border",
				"set border color to #e2e8f0",
				"set border radius to 12px",
				"round the corners",
				"make the border thicker",
				"add a subtle shadow",
			},
		}},
	}
}

func setBorderStyle(m Match, _ *Context) *Result {
	raw := strings.ToLower(m.First("s", "s2", "s3"))
	if !slices.Contains(borderStyles, raw) {
		if m.Get("s3") != "" {
			return nil
		}
		return Invalid("Unknown border style %q. Try %s.", raw, strings.Join(borderStyles, ", "))
	}
	return StylePatch(map[string]any{"borderStyle": raw}, fmt.Sprintf("The border is now %s.", raw))
}

// addBorder builds a border shorthand out of loose words such as "thick
// dashed red" or "2px solid #333". Missing parts fall back to defaults.
func addBorder(m Match, _ *Context) *Result {
	width := fmt.Sprintf("%dpx", defaultBorderWidth)
	style := "solid"
	color := defaultBorderColor
	var rest []string
	for _, w := range strings.Fields(strings.ToLower(m.Get("words"))) {
		switch {
		case w == "thin":
			width = "1px"
		case w == "thick":
			width = "3px"
		case slices.Contains(borderStyles, w):
			style = w
		default:
			if l, ok := grammar.ParseLength(w); ok {
				width = l
				continue
			}
			rest = append(rest, w)
		}
	}
	if len(rest) > 0 {
		raw := strings.Join(rest, " ")
		c, ok := grammar.ResolveColor(raw)
		if !ok {
			return Invalid("I don't know the color %q.", raw)
		}
		color = c
	}
	return StylePatch(map[string]any{"border": fmt.Sprintf("%s %s %s", width, style, color)}, "Added a border.")
}
