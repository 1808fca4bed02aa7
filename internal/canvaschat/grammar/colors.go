package grammar

import (
	"regexp"
	"strings"
)

// ColorExpr is a regexp fragment capturing one color token into the group
// "color": a hex literal, an rgb()/hsl() call, or an optionally modified name.
const ColorExpr = `(?P<color>#[0-9A-Fa-f]{3,8}\b|(?:rgba?|hsla?)\([^)]*\)|(?:(?:light|dark|pale|deep|hot|sky|navy|royal)\s?)?[A-Za-z]+)`

var (
	hexRe  = regexp.MustCompile(`^#(?:[0-9a-f]{3}|[0-9a-f]{4}|[0-9a-f]{6}|[0-9a-f]{8})$`)
	funcRe = regexp.MustCompile(`^(?:rgba?|hsla?)\(\s*[\d.%]+\s*,?\s*[\d.%]+\s*,?\s*[\d.%]+\s*(?:[,/]\s*[\d.%]+\s*)?\)$`)
)

// namedColors maps color keywords (spaces removed) to hex values.
var namedColors = map[string]string{
	"black":       "#000000",
	"white":       "#ffffff",
	"red":         "#ff0000",
	"darkred":     "#8b0000",
	"green":       "#008000",
	"lightgreen":  "#90ee90",
	"darkgreen":   "#006400",
	"lime":        "#00ff00",
	"blue":        "#0000ff",
	"lightblue":   "#add8e6",
	"darkblue":    "#00008b",
	"skyblue":     "#87ceeb",
	"navy":        "#000080",
	"navyblue":    "#000080",
	"royalblue":   "#4169e1",
	"teal":        "#008080",
	"cyan":        "#00ffff",
	"aqua":        "#00ffff",
	"turquoise":   "#40e0d0",
	"yellow":      "#ffff00",
	"lightyellow": "#ffffe0",
	"gold":        "#ffd700",
	"orange":      "#ffa500",
	"darkorange":  "#ff8c00",
	"coral":       "#ff7f50",
	"salmon":      "#fa8072",
	"pink":        "#ffc0cb",
	"hotpink":     "#ff69b4",
	"magenta":     "#ff00ff",
	"fuchsia":     "#ff00ff",
	"purple":      "#800080",
	"violet":      "#ee82ee",
	"lavender":    "#e6e6fa",
	"indigo":      "#4b0082",
	"brown":       "#a52a2a",
	"maroon":      "#800000",
	"olive":       "#808000",
	"beige":       "#f5f5dc",
	"tan":         "#d2b48c",
	"gray":        "#808080",
	"grey":        "#808080",
	"lightgray":   "#d3d3d3",
	"lightgrey":   "#d3d3d3",
	"darkgray":    "#a9a9a9",
	"darkgrey":    "#a9a9a9",
	"silver":      "#c0c0c0",
	"slate":       "#708090",
	"charcoal":    "#36454f",
	"ivory":       "#fffff0",
	"cream":       "#fffdd0",
	"mint":        "#98ff98",
}

// ResolveColor normalizes a color token to its canonical CSS value.
// Hex literals are lower-cased, rgb()/hsl() calls pass through, names map to
// hex. "transparent" and "none" resolve to "transparent".
func ResolveColor(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "the ")
	s = strings.TrimSuffix(s, " color")
	if s == "" {
		return "", false
	}
	switch {
	case strings.HasPrefix(s, "#"):
		if hexRe.MatchString(s) {
			return s, true
		}
		return "", false
	case funcRe.MatchString(s):
		return strings.ReplaceAll(s, " ", ""), true
	case s == "transparent" || s == "none":
		return "transparent", true
	}
	if hex, ok := namedColors[strings.ReplaceAll(s, " ", "")]; ok {
		return hex, true
	}
	return "", false
}

// ColorNames returns a short list of color keywords offered as clarification
// options.
func ColorNames() []string {
	return []string{"black", "white", "red", "green", "blue", "yellow", "orange", "purple", "gray"}
}
