package processor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

var typographyKeywords = []string{
	"size", "big", "large", "small", "tiny", "increase", "decrease", "reduce", "shrink", "grow",
	"bold", "weight", "light", "thin", "color", "colour", "make", "turn", "paint",
	"align", "center", "centre", "left", "right", "justify",
	"italic", "slant", "underline", "strike", "cross", "upper", "lower", "caps", "capitali", "case",
}

var alignments = map[string]string{
	"left":    "left",
	"right":   "right",
	"center":  "center",
	"centre":  "center",
	"justify": "justify",
}

// typography returns the font patterns shared by headings and text. Explicit
// sizes come before relative phrasings; a size value that is not a length is
// rejected only after the relative phrasings had their chance.
func typography(defaultSize int, what string) []Pattern {
	size := lengthRule("font-size", `(?:font|text)\s+size|size`, KindStylePatch, "fontSize", what+" size")
	return slices.Concat(
		size[:2],
		[]Pattern{
			P("font-relative", `\b(?P<rel>bigger|larger|smaller|tinier)\b|\b(?P<verb>increase|decrease|reduce|shrink|grow)\s+(?:the\s+)?(?:font\s+|text\s+)?size`, func(m Match, pc *Context) *Result {
				factor := grammar.GrowFactor
				switch strings.ToLower(m.First("rel", "verb")) {
				case "smaller", "tinier", "decrease", "reduce", "shrink":
					factor = grammar.ShrinkFactor
				}
				return scaleStyle("fontSize", defaultSize, factor)(m, pc)
			}),
		},
		size[2:],
		[]Pattern{
			P("unbold", `\b(?:un[-\s]?bold|remove\s+(?:the\s+)?bold|not\s+bold)`, set(KindStylePatch, map[string]any{"fontWeight": "400"}, "Removed bold.")),
			P("weight", `\b(?:font\s+)?weight`+conn+`(?P<w>semi\s*bold|extra\s*bold|extra\s*light|[a-z]+|\d00)`, setWeight(true)),
			P("weight-make", `\b(?:make|set)\s+`+subjectRef+`\s+(?P<w>semi\s*bold|extra\s*bold|bold|light|thin|normal|regular|heavy)\b`, setWeight(false)),
			P("bold", `\bbold\b`, set(KindStylePatch, map[string]any{"fontWeight": "700"}, "Made it bold.")),
		},
		leaveOtherAxes(leavePalette(colorRule("text-color", `(?:text|font|title|heading|label)\s+colou?r|colou?r`, KindStylePatch, "color", what+" color"))),
		leaveOtherAxes([]Pattern{
			P("color-make", `\b(?:make|turn|paint|color|colour)\s+`+subjectRef+`\s+`+grammar.ColorExpr+`$`, colorIfKnown(KindStylePatch, "color")),
		}),
		[]Pattern{
			P("align", `\b(?:text[-\s]align(?:ment)?|align(?:ment)?)(?:\s+`+subjectRef+`)?`+conn+`(?:the\s+)?(?P<a1>[a-z]+)|\b(?P<a2>center|centre|justify)\s+`+subjectRef+`|\b(?P<a3>left|right|center|centre)[-\s]align(?:ed)?`, setAlign),
			P("italic-off", `\b(?:remove|no|not|un)[-\s]?(?:the\s+)?italics?`, set(KindStylePatch, map[string]any{"fontStyle": "normal"}, "Removed italics.")),
			P("italic", `\bitalics?\b|\bitalici[sz]e|\bslanted`, set(KindStylePatch, map[string]any{"fontStyle": "italic"}, "Made it italic.")),
			P("underline-off", `\b(?:remove|no|not)\s+(?:the\s+)?(?:underline|strike[-\s]?through)|\bun[-\s]?underline`, set(KindStylePatch, map[string]any{"textDecoration": "none"}, "Removed the text decoration.")),
			P("underline", `\bunderline`, set(KindStylePatch, map[string]any{"textDecoration": "underline"}, "Underlined it.")),
			P("strikethrough", `\bstrike[-\s]?(?:through|out)|\bcross(?:ed)?\s+(?:it\s+)?out`, set(KindStylePatch, map[string]any{"textDecoration": "line-through"}, "Struck it through.")),
			P("uppercase", `\b(?:all\s+)?(?:upper\s*case|all\s+caps|caps|capitali[sz]e(?:d)?)`, set(KindStylePatch, map[string]any{"textTransform": "uppercase"}, "Changed to upper case.")),
			P("lowercase", `\b(?:lower\s*case)`, set(KindStylePatch, map[string]any{"textTransform": "lowercase"}, "Changed to lower case.")),
			P("normal-case", `\b(?:normal|regular|original)\s+case`, set(KindStylePatch, map[string]any{"textTransform": "none"}, "Restored the original case.")),
		},
	)
}

// contentPatterns set the displayed text of headings and text blocks.
func contentPatterns(key, what string) []Pattern {
	build := func(m Match, _ *Context) *Result {
		text := unquote(m.Get("text"))
		if text == "" {
			return Ask("text", fmt.Sprintf("What should the %s say?", what))
		}
		return PropsPatch(map[string]any{key: text}, fmt.Sprintf("Changed the %s to %q.", what, text))
	}
	return []Pattern{
		P("content-prompt", `\b(?:change|set|update|edit)\s+(?:the\s+)?(?:text|content|copy|title|heading|wording)(?:\s+to)?$`, func(Match, *Context) *Result {
			return Ask("text", fmt.Sprintf("What should the %s say?", what))
		}),
		P("content", `\b(?:text|content|copy|title|heading|wording|label)\s+(?:to|as)\s+(?P<text>.+)$`, build),
		P("content-rename", `\b(?:rename|retitle|reword)\s+(?:it\s+|this\s+)?(?:to\s+)?(?P<text>.+)$`, build),
		P("content-say", `\b(?:make\s+it\s+|have\s+it\s+|let\s+it\s+)?(?:say|read)s?\s+(?P<text>.+)$`, build),
		P("content-replace", `\b(?:change|replace)\s+(?:the\s+)?(?:text|wording|content)\s+with\s+(?P<text>.+)$`, build),
	}
}

func setWeight(strict bool) BuildFunc {
	return func(m Match, _ *Context) *Result {
		raw := m.Get("w")
		w, ok := grammar.ResolveWeight(raw)
		if !ok {
			if !strict {
				return nil
			}
			return Invalid("Unknown font weight %q. Try light, normal, semibold, bold or a number like 600.", raw)
		}
		return StylePatch(map[string]any{"fontWeight": w}, "Updated font weight.")
	}
}

func setAlign(m Match, _ *Context) *Result {
	raw := strings.ToLower(m.First("a1", "a2", "a3"))
	a, ok := alignments[raw]
	if !ok {
		return Invalid("Unknown alignment %q. Try left, center, right or justify.", raw)
	}
	return StylePatch(map[string]any{"textAlign": a}, fmt.Sprintf("Aligned the text %s.", a))
}
