package processor

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

const (
	defaultPenWidth = 2
	maxPenWidth     = 50
)

// Whiteboard returns the processor for freehand drawing surfaces.
func Whiteboard() Processor {
	return &patternProcessor{
		name:  "whiteboard",
		types: []document.Type{document.TypeWhiteboard},
		keywords: []string{
			"pen", "brush", "ink", "marker", "drawing", "grid", "clear", "erase", "wipe",
			"reset", "read-only", "read only", "readonly", "lock", "editable", "thick", "thin",
		},
		patterns: slices.Concat(
			[]Pattern{
				P("pen-size-prompt", `\b(?:pen|brush|marker|line)\s+(?:size|width|thickness)`+tail, func(Match, *Context) *Result {
					return Ask("size", "How thick should the pen be?", "1", "2", "4", "8")
				}),
				P("pen-size", `\b(?:pen|brush|marker|line)\s+(?:size|width|thickness)`+conn+`(?P<n>\d+)\s*(?:px)?`, func(m Match, _ *Context) *Result {
					n, ok := grammar.ParseInt(m.Get("n"))
					if !ok || n < 1 || n > maxPenWidth {
						return Invalid("Pen size must be between 1 and %d.", maxPenWidth)
					}
					return PropsPatch(map[string]any{"penWidth": n}, fmt.Sprintf("Pen size set to %d.", n))
				}),
				P("pen-thicker", `\b(?P<rel>thicker|thinner|bigger|smaller)\s+(?:pen|brush|marker)|\b(?:pen|brush|marker)\s+(?P<rel2>thicker|thinner|bigger|smaller)`, scalePen),
			},
			colorRule("pen-color", `(?:pen|brush|ink|marker|drawing)(?:\s+colou?r)?`, KindPropsPatch, "penColor", "pen"),
			toggle("grid",
				`\b(?:hide|remove|turn\s+off|disable|no)\s+(?:the\s+)?grid`,
				`\b(?:show|add|turn\s+on|enable|display)\s+(?:the\s+|a\s+)?grid`,
				KindPropsPatch, "showGrid"),
			[]Pattern{
				P("clear", `\b(?:clear|erase|wipe|reset)\s+(?:the\s+|all\s+|everything\s+on\s+the\s+)?(?:whiteboard|board|canvas|drawing|drawings|everything|it|all)?$`, set(KindPropsPatch, map[string]any{"elements": []any{}}, "Cleared the whiteboard.")),
			},
			toggle("read-only",
				`\b(?:make\s+(?:it\s+)?editable|unlock(?:\s+(?:it|the\s+(?:whiteboard|board)))?|enable\s+(?:drawing|editing))`,
				`\b(?:make\s+(?:it\s+)?read[-\s]?only|lock(?:\s+(?:it|the\s+(?:whiteboard|board)))?$|disable\s+(?:drawing|editing))`,
				KindPropsPatch, "readOnly"),
		),
		suggestions: []SuggestionGroup{{
			Category: "Whiteboard",
			Examples: []string{
				"set pen color to red",
				"set pen size to 4",
				"make the pen thicker",
				"hide the grid",
				"clear the whiteboard",
				"make it read-only",
			},
		}},
	}
}

func scalePen(m Match, pc *Context) *Result {
	factor := grammar.GrowFactor
	switch strings.ToLower(m.First("rel", "rel2")) {
	case "thinner", "smaller":
		factor = grammar.ShrinkFactor
	}
	n := int(math.Round(float64(grammar.Px(pc.Prop("penWidth"), defaultPenWidth)) * factor))
	n = min(max(n, 1), maxPenWidth)
	return PropsPatch(map[string]any{"penWidth": n}, fmt.Sprintf("Pen size set to %d.", n))
}
