package processor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

const maxGridColumns = 12

var displays = map[string]string{
	"flex":         "flex",
	"flexbox":      "flex",
	"grid":         "grid",
	"block":        "block",
	"inline":       "inline",
	"inline block": "inline-block",
	"inline-block": "inline-block",
}

var justifications = map[string]string{
	"start":         "flex-start",
	"left":          "flex-start",
	"end":           "flex-end",
	"right":         "flex-end",
	"center":        "center",
	"centre":        "center",
	"between":       "space-between",
	"space between": "space-between",
	"out":           "space-between",
	"around":        "space-around",
	"space around":  "space-around",
	"evenly":        "space-evenly",
	"space evenly":  "space-evenly",
}

var alignItems = map[string]string{
	"start":    "flex-start",
	"top":      "flex-start",
	"end":      "flex-end",
	"bottom":   "flex-end",
	"center":   "center",
	"centre":   "center",
	"middle":   "center",
	"stretch":  "stretch",
	"baseline": "baseline",
}

// Layout returns the generic processor for display mode, flex direction,
// alignment, wrapping, grid columns, visibility and stacking order.
func Layout() Processor {
	return &patternProcessor{
		name: "layout",
		keywords: []string{
			"flex", "grid", "block", "inline", "layout", "stack", "arrange", "horizontal", "vertical",
			"row", "column", "side by side", "center", "centre", "justify", "align", "space", "wrap",
			"hide", "show", "visible", "invisible", "reveal", "conceal", "front", "back", "forward",
			"z-index", "z index", "zindex",
		},
		patterns: []Pattern{
			P("display-prompt", `\b(?:layout|display)`+tail, func(Match, *Context) *Result {
				return Ask("layout", "Which layout?", "flex", "grid", "block")
			}),
			P("display", `\b(?:layout|display)`+conn+`(?:as\s+)?(?:an?\s+)?(?P<d>inline[-\s]block|[a-z]+)`, setDisplay(true)),
			P("display-use", `\b(?:make\s+(?:it\s+)?(?:an?\s+)?|use\s+(?:an?\s+)?|switch\s+to\s+(?:an?\s+)?)(?P<d>flex(?:box)?|grid|block|inline[-\s]block|inline)(?:\s+layout)?$`, setDisplay(false)),
			P("direction", `\b(?:stack|arrange|lay\s*out|layout|place|put|align)\s+(?:the\s+)?(?:items\s+|children\s+|elements\s+|them\s+|it\s+|contents?\s+)?(?P<dir>horizontally|vertically|in\s+a\s+row|in\s+a\s+column|side\s+by\s+side|on\s+top\s+of\s+each\s+other)`, setDirection),
			P("direction-set", `\b(?:flex\s+)?direction`+conn+`(?P<dir>row|column|horizontal|vertical)`, setDirection),
			P("direction-layout", `\b(?P<dir>row|column|horizontal|vertical)\s+layout`, setDirection),
			P("center-axis", `\b(?:center|centre)\s+(?:it\s+|the\s+(?:items|children|content|contents)\s+)?(?P<axis>horizontally|vertically)`, func(m Match, _ *Context) *Result {
				if strings.EqualFold(m.Get("axis"), "horizontally") {
					return StylePatch(map[string]any{"justifyContent": "center"}, "Centered the content horizontally.")
				}
				return StylePatch(map[string]any{"alignItems": "center"}, "Centered the content vertically.")
			}),
			P("center", `\b(?:center|centre)\s+(?:it|this|everything|the\s+(?:items|children|content|contents))\b`,
				set(KindStylePatch, map[string]any{"justifyContent": "center", "alignItems": "center"}, "Centered the content.")),
			P("justify", `\bjustify(?:[-\s]content)?`+conn+`(?:the\s+)?(?P<j>space[-\s](?:between|around|evenly)|[a-z]+)`, setJustify(true)),
			P("space", `\bspace\s+(?:them\s+|the\s+items\s+|items\s+)?(?P<j>evenly|out|between|around)`, setJustify(false)),
			P("align-items", `\balign(?:[-\s]items)?`+conn+`(?:the\s+)?(?P<a>[a-z]+)`, func(m Match, _ *Context) *Result {
				raw := strings.ToLower(m.Get("a"))
				v, ok := alignItems[raw]
				if !ok {
					return Invalid("Unknown alignment %q. Try start, center, end or stretch.", raw)
				}
				return StylePatch(map[string]any{"alignItems": v}, "Updated align items.")
			}),
			P("nowrap", `\b(?:no|don'?t|do\s+not|stop)\s+wrap(?:ping)?|\bnowrap|\bsingle\s+line`, set(KindStylePatch, map[string]any{"flexWrap": "nowrap"}, "Items no longer wrap.")),
			P("wrap", `\bwrap\b`, set(KindStylePatch, map[string]any{"flexWrap": "wrap"}, "Items now wrap.")),
			P("columns", `\bcolumns`+conn+`(?P<n>\w+)|\bgrid\s+(?:with\s+|of\s+)?(?P<n2>\w+)\s+columns?|\b(?P<n3>\w+)[-\s]columns?(?:\s+(?:grid|layout))?$`, setColumns),
			P("hide", `\b(?:hide|conceal)\s+(?:it|this|the\s+\w+)$|\bmake\s+(?:it\s+|this\s+)?invisible`, set(KindStylePatch, map[string]any{"visibility": "hidden"}, "Hid the component.")),
			P("show", `\b(?:show|unhide|reveal)\s+(?:it|this|the\s+\w+)$|\bmake\s+(?:it\s+|this\s+)?visible`, set(KindStylePatch, map[string]any{"visibility": "visible"}, "The component is visible again.")),
			P("front", `\b(?:bring|move)\s+(?:it\s+|this\s+)?to\s+(?:the\s+)?front|\bbring\s+(?:it\s+)?forward`, set(KindStylePatch, map[string]any{"zIndex": 10}, "Brought it to the front.")),
			P("back", `\b(?:send|move)\s+(?:it\s+|this\s+)?to\s+(?:the\s+)?back|\bsend\s+(?:it\s+)?backward`, set(KindStylePatch, map[string]any{"zIndex": 0}, "Sent it to the back.")),
			P("z-index", `\bz[-\s]?index`+conn+`(?P<n>-?\d+)\b`, func(m Match, _ *Context) *Result {
				n, err := strconv.Atoi(m.Get("n"))
				if err != nil {
					return Invalid("%q is not a valid z-index.", m.Get("n"))
				}
				return StylePatch(map[string]any{"zIndex": n}, fmt.Sprintf("Set z-index to %d.", n))
			}),
			P("z-index-invalid", `\bz[-\s]?index`+conn+`(?P<bad>\S+)$`, func(m Match, _ *Context) *Result {
				return Invalid("%q is not a valid z-index. Use a whole number.", m.Get("bad"))
			}),
		},
		suggestions: []SuggestionGroup{{
			Category: "Layout",
			Examples: []string{
				"use a grid layout",
				"make it three columns",
				"stack the items horizontally",
				"center everything",
				"space them evenly",
				"bring it to the front",
			},
		}},
	}
}

func setDisplay(strict bool) BuildFunc {
	return func(m Match, _ *Context) *Result {
		raw := strings.ToLower(strings.Join(strings.Fields(m.Get("d")), " "))
		d, ok := displays[raw]
		if !ok {
			if !strict {
				return nil
			}
			return Invalid("Unknown layout %q. Try flex, grid or block.", raw)
		}
		return StylePatch(map[string]any{"display": d}, fmt.Sprintf("Switched to a %s layout.", d))
	}
}

func setDirection(m Match, _ *Context) *Result {
	dir := "column"
	switch strings.ToLower(strings.Join(strings.Fields(m.Get("dir")), " ")) {
	case "horizontally", "horizontal", "row", "in a row", "side by side":
		dir = "row"
	}
	return StylePatch(map[string]any{"display": "flex", "flexDirection": dir}, fmt.Sprintf("Arranged the items in a %s.", dir))
}

func setJustify(strict bool) BuildFunc {
	return func(m Match, _ *Context) *Result {
		raw := strings.ToLower(strings.ReplaceAll(m.Get("j"), "-", " "))
		v, ok := justifications[raw]
		if !ok {
			if !strict {
				return nil
			}
			return Invalid("Unknown justification %q. Try start, center, end, between, around or evenly.", raw)
		}
		return StylePatch(map[string]any{"justifyContent": v}, "Updated justify content.")
	}
}

func setColumns(m Match, _ *Context) *Result {
	raw := m.First("n", "n2", "n3")
	n, ok := grammar.ParseInt(raw)
	if !ok || n < 1 || n > maxGridColumns {
		if m.Get("n") == "" && !ok {
			return nil
		}
		return Invalid("A grid can have between 1 and %d columns.", maxGridColumns)
	}
	return StylePatch(map[string]any{
		"display":             "grid",
		"gridTemplateColumns": fmt.Sprintf("repeat(%d, 1fr)", n),
	}, fmt.Sprintf("Arranged the content in %d columns.", n))
}
