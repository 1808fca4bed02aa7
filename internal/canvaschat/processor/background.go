package processor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

// Background returns the generic processor for component backgrounds.
// Removal, gradients and images are tried before plain colors.
func Background() Processor {
	return &patternProcessor{
		name: "background",
		keywords: []string{
			"background", "bg", "backdrop", "fill", "gradient", "transparent", "make", "paint", "turn", "color", "colour",
		},
		patterns: slices.Concat(
			[]Pattern{
				P("remove", `\b(?:remove|clear|delete|no)\s+(?:the\s+)?(?:background|bg)|\bbackground\s+(?:to\s+)?(?:none|transparent)$|\bmake\s+(?:it\s+|this\s+|the\s+background\s+)?transparent$`,
					set(KindStylePatch, map[string]any{"backgroundColor": "transparent", "backgroundImage": "none"}, "Removed the background.")),
				P("gradient-prompt", `\bgradient(?:\s+background)?$`, func(Match, *Context) *Result {
					return Ask("colors", "Which two colors should the gradient blend, like \"blue to purple\"?")
				}),
				P("gradient", `\b(?P<kind>radial\s+|vertical\s+|horizontal\s+|diagonal\s+)?gradient\b.*?\b(?:from\s+)?(?P<c1>#[0-9a-f]{3,8}|[a-z]+(?:\s[a-z]+)?)\s+(?:to|into|and)\s+(?P<c2>#[0-9a-f]{3,8}|[a-z]+(?:\s[a-z]+)?)(?:\s+(?P<dir>vertically|horizontally|diagonally))?$`, setGradient),
				P("image-prompt", `\bbackground\s+(?:image|picture|photo)`+tail, func(Match, *Context) *Result {
					return Ask("url", "What is the background image URL?")
				}),
				P("image", `\bbackground\s+(?:image|picture|photo)`+conn+urlExpr, setBackgroundImage),
				P("image-use", `\buse\s+`+urlExpr+`\s+as\s+(?:the\s+)?background`, setBackgroundImage),
			},
			colorRule("background", `background(?:\s+colou?r)?|bg(?:\s+colou?r)?|backdrop|fill(?:\s+colou?r)?`, KindStylePatch, "backgroundColor", "background"),
			[]Pattern{
				P("background-make", `\b(?:make|paint|turn|colou?r)\s+`+subjectRef+`\s+`+grammar.ColorExpr+`$`, colorIfKnown(KindStylePatch, "backgroundColor")),
				P("background-give", `\bgive\s+`+subjectRef+`\s+an?\s+`+grammar.ColorExpr+`\s+background$`, colorIfKnown(KindStylePatch, "backgroundColor")),
			},
		),
		suggestions: []SuggestionGroup{{
			Category: "Background",
			Examples: []string{
				"set background to #f1f5f9",
				"make it light blue",
				"add a gradient from blue to purple",
				"set background image to https://example.com/hero.jpg",
				"remove the background",
			},
		}},
	}
}

func setGradient(m Match, _ *Context) *Result {
	c1, ok1 := grammar.ResolveColor(m.Get("c1"))
	c2, ok2 := grammar.ResolveColor(m.Get("c2"))
	switch {
	case !ok1:
		return Invalid("I don't know the color %q.", m.Get("c1"))
	case !ok2:
		return Invalid("I don't know the color %q.", m.Get("c2"))
	}
	kind := strings.ToLower(m.Get("kind"))
	var g string
	switch {
	case kind == "radial":
		g = fmt.Sprintf("radial-gradient(circle, %s, %s)", c1, c2)
	case kind == "horizontal" || strings.EqualFold(m.Get("dir"), "horizontally"):
		g = fmt.Sprintf("linear-gradient(to right, %s, %s)", c1, c2)
	case kind == "diagonal" || strings.EqualFold(m.Get("dir"), "diagonally"):
		g = fmt.Sprintf("linear-gradient(135deg, %s, %s)", c1, c2)
	default:
		g = fmt.Sprintf("linear-gradient(to bottom, %s, %s)", c1, c2)
	}
	return StylePatch(map[string]any{"backgroundImage": g}, "Applied a gradient background.")
}

func setBackgroundImage(m Match, _ *Context) *Result {
	u := unquote(m.Get("url"))
	if !urlRe.MatchString(u) {
		return Invalid("%q doesn't look like a URL. Use an http(s) link, a path starting with / or a file name.", u)
	}
	return StylePatch(map[string]any{
		"backgroundImage":    fmt.Sprintf("url(%q)", u),
		"backgroundSize":     "cover",
		"backgroundPosition": "center",
	}, "Updated the background image.")
}
