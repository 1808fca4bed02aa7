package processor

import (
	"fmt"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

// spacingDefaults are the px values "add padding" applies and relative
// phrasings start from when nothing is set.
var spacingDefaults = map[string]int{
	"padding": 16,
	"margin":  16,
	"gap":     8,
}

var sideKeys = map[string][]string{
	"":           nil,
	"top":        {"Top"},
	"bottom":     {"Bottom"},
	"left":       {"Left"},
	"right":      {"Right"},
	"horizontal": {"Left", "Right"},
	"vertical":   {"Top", "Bottom"},
	"sides":      {"Left", "Right"},
}

const (
	sideExpr    = `(?:(?P<side>top|bottom|left|right|horizontal|vertical)\s+)?(?P<prop>padding|margin)(?:\s+(?:on\s+(?:the\s+)?)?(?P<side2>top|bottom|left|right|sides))?`
	spacingNoun = `(?P<prop>padding|margin|spacing|space|room|gap|gutter)`
)

// spacingProp maps loose nouns to a style property.
func spacingProp(noun string) string {
	switch strings.ToLower(noun) {
	case "margin":
		return "margin"
	case "gap", "gutter":
		return "gap"
	default:
		return "padding"
	}
}

// spacingPatch sets prop, or prop on each named side, to v.
func spacingPatch(prop, side, v string) map[string]any {
	sides := sideKeys[strings.ToLower(side)]
	if len(sides) == 0 {
		return map[string]any{prop: v}
	}
	patch := make(map[string]any, len(sides))
	for _, s := range sides {
		patch[prop+s] = v
	}
	return patch
}

// Spacing returns the generic processor for padding, margin and gap.
func Spacing() Processor {
	return &patternProcessor{
		name: "spacing",
		keywords: []string{
			"padding", "margin", "spacing", "space", "gap", "gutter", "room", "breathing",
		},
		patterns: []Pattern{
			P("relative", `\b(?P<rel>more|less|increase|decrease|reduce|tighten|loosen)\s+(?:the\s+)?`+spacingNoun+`(?P<rest>.*)$`, func(m Match, pc *Context) *Result {
				if strings.ContainsAny(m.Get("rest"), "0123456789") {
					return nil
				}
				factor := grammar.GrowFactor
				switch strings.ToLower(m.Get("rel")) {
				case "less", "decrease", "reduce", "tighten":
					factor = grammar.ShrinkFactor
				}
				prop := spacingProp(m.Get("prop"))
				return scaleStyle(prop, spacingDefaults[prop], factor)(m, pc)
			}),
			P("side-prompt", `\b`+sideExpr+tail, func(m Match, _ *Context) *Result {
				return Ask("size", fmt.Sprintf("How much %s?", strings.ToLower(m.Get("prop"))), sizeOptions...)
			}),
			P("side", `\b`+sideExpr+conn+grammar.LengthExpr+`(?:\s|$)`, func(m Match, _ *Context) *Result {
				v, ok := grammar.ParseLength(m.Get("len"))
				if !ok {
					return Invalid("%q is not a valid size.", m.Get("len"))
				}
				prop := strings.ToLower(m.Get("prop"))
				side := m.First("side", "side2")
				msg := "Updated " + prop + "."
				if side != "" {
					msg = fmt.Sprintf("Updated %s %s.", strings.ToLower(side), prop)
				}
				return StylePatch(spacingPatch(prop, side, v), msg)
			}),
			P("side-invalid", `\b`+sideExpr+conn+`(?P<bad>\S+)$`, func(m Match, _ *Context) *Result {
				return Invalid("%q is not a valid size. Try a value like 16px, 2rem or 50%%.", m.Get("bad"))
			}),
			P("gap-prompt", `\b(?:gap|gutter|space\s+between(?:\s+(?:items|children|elements))?)`+tail, askSize("gap")),
			P("gap", `\b(?:gap|gutter|space\s+between(?:\s+(?:items|children|elements))?)`+conn+grammar.LengthExpr+`(?:\s|$)`, setLength(KindStylePatch, "gap")),
			P("remove", `\b(?:remove|no|clear|zero)\s+(?:the\s+|all\s+)?`+spacingNoun, func(m Match, _ *Context) *Result {
				prop := spacingProp(m.Get("prop"))
				return StylePatch(map[string]any{prop: "0px"}, "Removed the "+prop+".")
			}),
			P("add", `\b(?:add|give\s+(?:it|this))\s+(?:some\s+|a\s+bit\s+of\s+)?`+spacingNoun, func(m Match, _ *Context) *Result {
				prop := spacingProp(m.Get("prop"))
				return StylePatch(map[string]any{prop: fmt.Sprintf("%dpx", spacingDefaults[prop])}, "Added "+prop+".")
			}),
		},
		suggestions: []SuggestionGroup{{
			Category: "Spacing",
			Examples: []string{
				"set padding to 24px",
				"set top margin to 8px",
				"add some padding",
				"more spacing",
				"set gap to 12px",
				"remove the margin",
			},
		}},
	}
}

