package processor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

const (
	defaultWidth  = 320
	defaultHeight = 200
)

// Size returns the generic processor for component dimensions.
func Size() Processor {
	return &patternProcessor{
		name: "size",
		keywords: []string{
			"width", "height", "wide", "tall", "high", "full", "half", "stretch", "wider", "narrower",
			"taller", "shorter", "bigger", "larger", "smaller", "tinier", "size",
		},
		patterns: slices.Concat(
			lengthRule("max-width", `max(?:imum)?[-\s]?width`, KindStylePatch, "maxWidth", "maximum width"),
			lengthRule("min-width", `min(?:imum)?[-\s]?width`, KindStylePatch, "minWidth", "minimum width"),
			lengthRule("max-height", `max(?:imum)?[-\s]?height`, KindStylePatch, "maxHeight", "maximum height"),
			lengthRule("min-height", `min(?:imum)?[-\s]?height`, KindStylePatch, "minHeight", "minimum height"),
			[]Pattern{
				P("dimension", `\b`+grammar.LengthExpr+`\s+(?P<dim>wide|tall|high)\b`, func(m Match, _ *Context) *Result {
					v, ok := grammar.ParseLength(m.Get("len"))
					if !ok {
						return Invalid("%q is not a valid size.", m.Get("len"))
					}
					key := "height"
					if strings.EqualFold(m.Get("dim"), "wide") {
						key = "width"
					}
					return StylePatch(map[string]any{key: v}, updated(key))
				}),
				P("full-width", `\bfull[-\s]?width|\bfill\s+the\s+(?:width|row)|\bstretch\s+(?:it\s+)?(?:across|horizontally)`, set(KindStylePatch, map[string]any{"width": "100%"}, "The component now spans the full width.")),
				P("full-height", `\bfull[-\s]?height|\bfill\s+the\s+height|\bstretch\s+(?:it\s+)?vertically`, set(KindStylePatch, map[string]any{"height": "100%"}, "The component now spans the full height.")),
				P("half-width", `\bhalf[-\s]?width|\bhalf\s+as\s+wide`, set(KindStylePatch, map[string]any{"width": "50%"}, "The component now spans half the width.")),
				P("auto", `\b(?:auto|reset(?:\s+the)?)\s+(?P<dim>width|height|size)`, func(m Match, _ *Context) *Result {
					switch strings.ToLower(m.Get("dim")) {
					case "width":
						return StylePatch(map[string]any{"width": "auto"}, "Reset the width.")
					case "height":
						return StylePatch(map[string]any{"height": "auto"}, "Reset the height.")
					}
					return StylePatch(map[string]any{"width": "auto", "height": "auto"}, "Reset the size.")
				}),
			},
			lengthRule("width", `width`, KindStylePatch, "width", "width"),
			lengthRule("height", `height`, KindStylePatch, "height", "height"),
			[]Pattern{
				P("wider", `\b(?P<rel>wider|narrower|thinner)\b`, func(m Match, pc *Context) *Result {
					factor := grammar.GrowFactor
					if !strings.EqualFold(m.Get("rel"), "wider") {
						factor = grammar.ShrinkFactor
					}
					return scaleStyle("width", defaultWidth, factor)(m, pc)
				}),
				P("taller", `\b(?P<rel>taller|shorter)\b`, func(m Match, pc *Context) *Result {
					factor := grammar.GrowFactor
					if strings.EqualFold(m.Get("rel"), "shorter") {
						factor = grammar.ShrinkFactor
					}
					return scaleStyle("height", defaultHeight, factor)(m, pc)
				}),
				P("bigger", `\b(?P<rel>bigger|larger|smaller|tinier)\b|\b(?P<verb>enlarge|shrink|grow)\b`, scaleBoth),
			},
		),
		suggestions: []SuggestionGroup{{
			Category: "Size",
			Examples: []string{
				"set width to 480px",
				"make it 300px tall",
				"make it full width",
				"make it wider",
				"make it smaller",
				"set max width to 960px",
			},
		}},
	}
}

// scaleBoth applies the relative size law to the width and, when one is set,
// the height.
func scaleBoth(m Match, pc *Context) *Result {
	factor := grammar.GrowFactor
	switch strings.ToLower(m.First("rel", "verb")) {
	case "smaller", "tinier", "shrink":
		factor = grammar.ShrinkFactor
	}
	patch := map[string]any{"width": grammar.Scale(pc.Style("width"), defaultWidth, factor)}
	if h := pc.Style("height"); h != nil && grammar.Px(h, -1) >= 0 {
		patch["height"] = grammar.Scale(h, defaultHeight, factor)
	}
	return StylePatch(patch, fmt.Sprintf("Changed width to %s.", patch["width"]))
}
