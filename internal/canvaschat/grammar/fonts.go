package grammar

import "strings"

// fontFamilies maps font keywords to CSS font stacks.
var fontFamilies = map[string]string{
	"arial":           "Arial, sans-serif",
	"helvetica":       "Helvetica, Arial, sans-serif",
	"verdana":         "Verdana, sans-serif",
	"inter":           "Inter, sans-serif",
	"roboto":          "Roboto, sans-serif",
	"open sans":       "\"Open Sans\", sans-serif",
	"georgia":         "Georgia, serif",
	"times":           "\"Times New Roman\", serif",
	"times new roman": "\"Times New Roman\", serif",
	"garamond":        "Garamond, serif",
	"courier":         "\"Courier New\", monospace",
	"courier new":     "\"Courier New\", monospace",
	"serif":           "serif",
	"sans":            "sans-serif",
	"sans serif":      "sans-serif",
	"sans-serif":      "sans-serif",
	"mono":            "ui-monospace, monospace",
	"monospace":       "ui-monospace, monospace",
	"monospaced":      "ui-monospace, monospace",
	"code":            "ui-monospace, monospace",
	"cursive":         "cursive",
	"handwriting":     "cursive",
}

// fontWeights maps weight keywords to numeric CSS weights.
var fontWeights = map[string]string{
	"thin":       "100",
	"extralight": "200",
	"light":      "300",
	"normal":     "400",
	"regular":    "400",
	"medium":     "500",
	"semibold":   "600",
	"bold":       "700",
	"extrabold":  "800",
	"black":      "900",
	"heavy":      "900",
}

// ResolveFont maps a font keyword ("georgia", "Sans Serif") to a CSS stack.
func ResolveFont(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSuffix(s, " font")
	s = strings.Join(strings.Fields(s), " ")
	v, ok := fontFamilies[s]
	return v, ok
}

// ResolveWeight maps "semi bold", "bold", "600" to a numeric CSS weight.
func ResolveWeight(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "", "-", "").Replace(s)
	if v, ok := fontWeights[s]; ok {
		return v, true
	}
	if len(s) == 3 && s[1:] == "00" && s[0] >= '1' && s[0] <= '9' {
		return s, true
	}
	return "", false
}
