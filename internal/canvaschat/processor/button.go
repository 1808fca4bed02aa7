package processor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

var buttonVariants = map[string]string{
	"primary":     "primary",
	"main":        "primary",
	"secondary":   "secondary",
	"outline":     "outline",
	"outlined":    "outline",
	"ghost":       "ghost",
	"link":        "link",
	"danger":      "danger",
	"destructive": "danger",
	"warning":     "danger",
}

// Button returns the processor for buttons. Variants are tried before colors
// so "make it primary" picks the variant rather than a palette color.
func Button() Processor {
	return &patternProcessor{
		name:  "button",
		types: []document.Type{document.TypeButton},
		keywords: []string{
			"label", "text", "caption", "title", "rename", "say", "variant", "kind", "primary", "secondary",
			"outline", "ghost", "danger", "destructive", "link", "href", "url", "point", "disable", "enable",
			"clickable", "grey", "gray", "full", "width", "stretch", "fit", "hover", "color", "colour", "make", "paint",
		},
		patterns: slices.Concat(
			[]Pattern{
				P("variant-prompt", `\b(?:button\s+)?(?:variant|kind)`+tail+`|\bbutton\s+(?:style|type)`+tail, func(Match, *Context) *Result {
					return Ask("variant", "Which button variant?", "primary", "secondary", "outline", "ghost", "link", "danger")
				}),
				P("variant", `\b(?:button\s+)?(?:variant|kind)`+conn+`(?P<v>[a-z]+)|\bbutton\s+(?:style|type)`+conn+`(?P<v2>[a-z]+)`, setVariant(true)),
				P("variant-make", `\b(?:make\s+(?:it|this)\s+(?:an?\s+)?|turn\s+(?:it\s+)?into\s+an?\s+|as\s+an?\s+)(?P<v>[a-z]+)(?:\s+button)?$`, setVariant(false)),
			},
			contentPatterns("label", "button label"),
			[]Pattern{
				P("link-remove", `\b(?:remove|clear|delete)\s+(?:the\s+)?(?:link|href|url)`, set(KindPropsPatch, map[string]any{"href": ""}, "Removed the link.")),
				P("link-prompt", `\b(?:link|href|url|point)(?:\s+it)?`+tail, func(Match, *Context) *Result {
					return Ask("url", "Where should the button link to?")
				}),
				P("link", `\b(?:link|href|url|point|go)(?:\s+it)?`+conn+urlExpr, setURL(KindPropsPatch, "href", "the button link")),
				P("enable", `\benable(?:\s+(?:it|this|the\s+button))?$|\bmake\s+(?:it\s+)?(?:clickable|enabled|active)|\bun[-\s]?disable`, set(KindPropsPatch, map[string]any{"disabled": false}, "Enabled the button.")),
				P("disable", `\bdisable(?:\s+(?:it|this|the\s+button))?$|\bmake\s+(?:it\s+)?(?:disabled|inactive|unclickable)|\bgr[ae]y\s+(?:it\s+)?out`, set(KindPropsPatch, map[string]any{"disabled": true}, "Disabled the button.")),
				P("full-width", `\bfull[-\s]?width|\bstretch\s+(?:it|the\s+button)|\bfill\s+the\s+(?:width|row)`, set(KindStylePatch, map[string]any{"width": "100%"}, "The button now spans the full width.")),
				P("fit-width", `\b(?:auto|fit)\s+width|\bfit\s+(?:the\s+)?(?:content|text|label)`, set(KindStylePatch, map[string]any{"width": "auto"}, "The button now fits its label.")),
			},
			colorRule("hover-color", `hover(?:\s+(?:background\s+)?colou?r)?`, KindPropsPatch, "hoverColor", "hover"),
			colorRule("label-color", `(?:text|label|font)\s+colou?r`, KindStylePatch, "color", "label"),
			leaveWhen(borderRe, leavePalette(colorRule("button-color", `(?:button\s+)?colou?r`, KindStylePatch, "backgroundColor", "button"))),
			leaveWhen(borderRe, []Pattern{
				P("button-color-make", `\b(?:make|turn|paint|color|colour)\s+`+subjectRef+`\s+`+grammar.ColorExpr+`$`, colorIfKnown(KindStylePatch, "backgroundColor")),
			}),
		),
		suggestions: []SuggestionGroup{{
			Category: "Button",
			Examples: []string{
				"set label to Sign up",
				"make it a secondary button",
				"link to https://example.com/pricing",
				"disable it",
				"make it full width",
				"set hover color to #1d4ed8",
			},
		}},
	}
}

// setVariant resolves the "v" group. Loose phrasings give way to later rules
// when the word is not a variant.
func setVariant(strict bool) BuildFunc {
	return func(m Match, _ *Context) *Result {
		raw := strings.ToLower(m.First("v", "v2"))
		v, ok := buttonVariants[raw]
		if !ok {
			if !strict {
				return nil
			}
			return Invalid("Unknown button variant %q. Try primary, secondary, outline, ghost, link or danger.", raw)
		}
		return PropsPatch(map[string]any{"variant": v}, fmt.Sprintf("Changed the button to %s.", v))
	}
}
