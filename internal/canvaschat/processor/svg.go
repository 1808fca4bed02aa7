package processor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

const defaultStrokeWidth = 2

// SVG returns the processor for vector graphics: stroke and fill colors,
// stroke width, opacity, rotation and flipping.
func SVG() Processor {
	return &patternProcessor{
		name:     "svg",
		types:    []document.Type{document.TypeSVG},
		keywords: []string{"stroke", "fill", "opacity", "transparen", "rotate", "flip", "outline", "line", "thick", "thin"},
		patterns: slices.Concat(
			lengthRule("stroke-width", `(?:stroke|outline|line)\s+(?:width|thickness|weight)`, KindStylePatch, "strokeWidth", "stroke width"),
			[]Pattern{
				P("stroke-thicker", `\b(?P<rel>thicker|thinner)(?:\s+(?:stroke|outline|lines?))?|\b(?:stroke|outline|lines?)\s+(?P<rel2>thicker|thinner)`, func(m Match, pc *Context) *Result {
					factor := grammar.GrowFactor
					if strings.EqualFold(m.First("rel", "rel2"), "thinner") {
						factor = grammar.ShrinkFactor
					}
					return scaleStyle("strokeWidth", defaultStrokeWidth, factor)(m, pc)
				}),
				P("fill-remove", `\b(?:remove|no|clear)\s+(?:the\s+)?fill|\bfill\s+(?:to\s+)?none$`, set(KindStylePatch, map[string]any{"fill": "none"}, "Removed the fill.")),
			},
			colorRule("stroke-color", `stroke(?:\s+colou?r)?|outline(?:\s+colou?r)?|line\s+colou?r`, KindStylePatch, "stroke", "stroke"),
			colorRule("fill-color", `fill(?:\s+colou?r)?`, KindStylePatch, "fill", "fill"),
			[]Pattern{
				P("opacity", `\b(?:opacity|transparency)`+conn+`(?P<n>\d+(?:\.\d+)?)\s*(?P<pct>%|percent)?`, setOpacity),
				P("opacity-prompt", `\b(?:opacity|transparency)`+tail, func(Match, *Context) *Result {
					return Ask("opacity", "How opaque should it be (0–100%)?", "25%", "50%", "75%", "100%")
				}),
				P("semi-transparent", `\b(?:semi|half)[-\s]?transparent`, set(KindStylePatch, map[string]any{"opacity": 0.5}, "Updated opacity.")),
				P("rotate", `\brotate\s+(?:it\s+|the\s+\w+\s+)?(?:by\s+)?(?P<deg>-?\d+)\s*(?:deg(?:rees)?|°)?`, func(m Match, _ *Context) *Result {
					deg, err := strconv.Atoi(m.Get("deg"))
					if err != nil {
						return Invalid("%q is not a valid angle.", m.Get("deg"))
					}
					deg %= 360
					return StylePatch(map[string]any{"transform": fmt.Sprintf("rotate(%ddeg)", deg)}, fmt.Sprintf("Rotated by %d degrees.", deg))
				}),
				P("rotate-prompt", `\brotate(?:\s+(?:it|this))?$`, func(Match, *Context) *Result {
					return Ask("angle", "By how many degrees?", "45", "90", "180", "270")
				}),
				P("flip", `\bflip\s+(?:it\s+)?(?P<axis>horizontally|vertically)`, func(m Match, _ *Context) *Result {
					axis := strings.ToLower(m.Get("axis"))
					t := "scaleX(-1)"
					if axis == "vertically" {
						t = "scaleY(-1)"
					}
					return StylePatch(map[string]any{"transform": t}, "Flipped "+axis+".")
				}),
			},
		),
		suggestions: []SuggestionGroup{{
			Category: "SVG",
			Examples: []string{
				"set stroke color to red",
				"change fill to #22c55e",
				"set stroke width to 3",
				"make the stroke thicker",
				"set opacity to 50%",
				"rotate by 90 degrees",
			},
		}},
	}
}

func setOpacity(m Match, _ *Context) *Result {
	v, err := strconv.ParseFloat(m.Get("n"), 64)
	if err != nil {
		return Invalid("%q is not a valid opacity.", m.Get("n"))
	}
	if m.Get("pct") != "" || v > 1 {
		v /= 100
	}
	if v < 0 || v > 1 {
		return Invalid("Opacity must be between 0 and 100%%.")
	}
	return StylePatch(map[string]any{"opacity": v}, "Updated opacity.")
}
