package processor

import (
	"fmt"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

const (
	minIconSize     = 12
	maxIconSize     = 64
	defaultIconSize = 20
)

var toolbarPositions = map[string]string{
	"top":    "top",
	"up":     "top",
	"bottom": "bottom",
	"down":   "bottom",
	"left":   "left",
	"right":  "right",
}

func toolbarUpdate(settings map[string]any, message string) *Result {
	return ThemeUpdate(&ThemePatch{Toolbar: settings}, message)
}

func setToolbar(key string, v any, message string) BuildFunc {
	return func(Match, *Context) *Result {
		return toolbarUpdate(map[string]any{key: v}, message)
	}
}

// Toolbar returns the workspace-level processor for the editor toolbar.
func Toolbar() Processor {
	return &patternProcessor{
		name:     "toolbar",
		keywords: []string{"toolbar", "tool bar", "icon"},
		patterns: []Pattern{
			P("hide", `\b(?:hide|remove|close)\s+(?:the\s+)?tool\s?bar`, setToolbar("visible", false, "Hid the toolbar.")),
			P("show", `\b(?:show|display|open|bring\s+back)\s+(?:the\s+)?tool\s?bar`, setToolbar("visible", true, "Showing the toolbar.")),
			P("position-prompt", `\b(?:move|put|place|dock)\s+(?:the\s+)?tool\s?bar$|\btool\s?bar\s+position`+tail, func(Match, *Context) *Result {
				return Ask("position", "Where should the toolbar go?", "top", "bottom", "left", "right")
			}),
			P("position", `\b(?:move|put|place|dock)\s+(?:the\s+)?tool\s?bar\s+(?:to\s+|on\s+|at\s+)?(?:the\s+)?(?P<pos>[a-z]+)|\btool\s?bar\s+position`+conn+`(?:the\s+)?(?P<pos2>[a-z]+)`, func(m Match, _ *Context) *Result {
				raw := strings.ToLower(m.First("pos", "pos2"))
				pos, ok := toolbarPositions[raw]
				if !ok {
					return Invalid("The toolbar can go top, bottom, left or right, not %q.", raw)
				}
				return toolbarUpdate(map[string]any{"position": pos}, fmt.Sprintf("Moved the toolbar to the %s.", pos))
			}),
			P("icon-size-prompt", `\b(?:tool\s?bar\s+)?icon\s+size`+tail, func(Match, *Context) *Result {
				return Ask("size", "How big should the toolbar icons be (12 to 64)?", "16", "20", "24", "32")
			}),
			P("icon-size", `\b(?:tool\s?bar\s+)?icon\s+size`+conn+`(?P<n>\S+?)\s*(?:px)?$`, func(m Match, _ *Context) *Result {
				n, ok := grammar.ParseInt(m.Get("n"))
				if !ok || n < minIconSize || n > maxIconSize {
					return Invalid("Icon size must be between %d and %d.", minIconSize, maxIconSize)
				}
				return toolbarUpdate(map[string]any{"iconSize": n}, fmt.Sprintf("Toolbar icons are now %dpx.", n))
			}),
			P("icon-relative", `\b(?P<rel>bigger|larger|smaller)\s+(?:tool\s?bar\s+)?icons|\b(?:tool\s?bar\s+)?icons\s+(?P<rel2>bigger|larger|smaller)`, func(m Match, pc *Context) *Result {
				factor := grammar.GrowFactor
				if strings.EqualFold(m.First("rel", "rel2"), "smaller") {
					factor = grammar.ShrinkFactor
				}
				n := grammar.Px(grammar.Scale(pc.Toolbar["iconSize"], defaultIconSize, factor), defaultIconSize)
				n = min(max(n, minIconSize), maxIconSize)
				return toolbarUpdate(map[string]any{"iconSize": n}, fmt.Sprintf("Toolbar icons are now %dpx.", n))
			}),
			P("expand", `\b(?:expand|full[-\s]?size|normal|regular)\s+(?:the\s+)?tool\s?bar|\btool\s?bar\s+(?:not\s+compact|expanded)|\bmake\s+(?:the\s+)?tool\s?bar\s+(?:normal|bigger|full[-\s]?size)`, setToolbar("compact", false, "Expanded the toolbar.")),
			P("compact", `\bcompact\b`, setToolbar("compact", true, "Made the toolbar compact.")),
			P("color-prompt", `\btool\s?bar\s+(?:background(?:\s+colou?r)?|colou?r)`+tail, func(Match, *Context) *Result {
				return Ask("color", "What color should the toolbar be?", grammar.ColorNames()...)
			}),
			P("color", `\btool\s?bar\s+(?:background(?:\s+colou?r)?|colou?r)`+conn+grammar.ColorExpr, toolbarColor(true)),
			P("color-make", `\b(?:make|paint|turn|colou?r)\s+(?:the\s+)?tool\s?bar\s+`+grammar.ColorExpr+`$`, toolbarColor(false)),
		},
		suggestions: []SuggestionGroup{{
			Category: "Toolbar",
			Examples: []string{
				"hide the toolbar",
				"move the toolbar to the left",
				"set toolbar color to #111827",
				"set icon size to 24",
				"make the toolbar compact",
			},
		}},
	}
}

func toolbarColor(strict bool) BuildFunc {
	return func(m Match, _ *Context) *Result {
		raw := m.Get("color")
		v, ok := grammar.ResolveColor(raw)
		if !ok {
			if !strict {
				return nil
			}
			return Invalid("I don't know the color %q.", raw)
		}
		return toolbarUpdate(map[string]any{"backgroundColor": v}, "Updated toolbar background color.")
	}
}
