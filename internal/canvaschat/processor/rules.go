package processor

import (
	"fmt"
	"maps"
	"regexp"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

// Shared regexp fragments.
const (
	// conn joins a subject to its value: "color to red", "width: 3px",
	// "width of 300px", "color red".
	conn = `(?:\s*[:=]|\s+(?:to|as|into|of|at))?\s+`
	// tail ends a recognized phrase whose value is missing.
	tail = `(?:\s+(?:to|as|into|of|at))?$`
	// subjectRef is "it", "this" or "the <noun>".
	subjectRef = `(?:it|this|that|the\s+\w+)`
)

var sizeOptions = []string{"8px", "16px", "24px", "32px"}

func patchOf(kind Kind, patch map[string]any, message string) *Result {
	if kind == KindStylePatch {
		return StylePatch(patch, message)
	}
	return PropsPatch(patch, message)
}

// updated renders the confirmation for a single key: "Updated title color."
func updated(key string) string {
	return "Updated " + grammar.Label(key) + "."
}

// colorRule asks for a missing color or sets key to the resolved color.
func colorRule(name, subject string, kind Kind, key, what string) []Pattern {
	return []Pattern{
		P(name+"-prompt", `\b(?:`+subject+`)`+tail, askColor(what)),
		P(name, `\b(?:`+subject+`)`+conn+grammar.ColorExpr, setColor(kind, key)),
	}
}

func askColor(what string) BuildFunc {
	return func(Match, *Context) *Result {
		return Ask("color", fmt.Sprintf("What color should the %s be?", what), grammar.ColorNames()...)
	}
}

func setColor(kind Kind, key string) BuildFunc {
	return func(m Match, _ *Context) *Result {
		raw := m.Get("color")
		v, ok := grammar.ResolveColor(raw)
		if !ok {
			return Invalid("I don't know the color %q.", raw)
		}
		return patchOf(kind, map[string]any{key: v}, updated(key))
	}
}

// colorIfKnown sets key when the "color" group resolves and otherwise lets
// the next pattern try. Used for loose phrasings such as "make it red".
func colorIfKnown(kind Kind, key string) BuildFunc {
	return func(m Match, _ *Context) *Result {
		v, ok := grammar.ResolveColor(m.Get("color"))
		if !ok {
			return nil
		}
		return patchOf(kind, map[string]any{key: v}, updated(key))
	}
}

// lengthRule asks for a missing size, sets key to a parsed length, or rejects
// a value that is not a length.
func lengthRule(name, subject string, kind Kind, key, what string) []Pattern {
	return []Pattern{
		P(name+"-prompt", `\b(?:`+subject+`)`+tail, askSize(what)),
		P(name, `\b(?:`+subject+`)`+conn+grammar.LengthExpr+`(?:\s|$)`, setLength(kind, key)),
		P(name+"-invalid", `\b(?:`+subject+`)`+conn+`(?P<bad>\S+)$`, func(m Match, _ *Context) *Result {
			return Invalid("%q is not a valid size. Try a value like 16px, 2rem or 50%%.", m.Get("bad"))
		}),
	}
}

func askSize(what string) BuildFunc {
	return func(Match, *Context) *Result {
		return Ask("size", fmt.Sprintf("What size should the %s be?", what), sizeOptions...)
	}
}

func setLength(kind Kind, key string) BuildFunc {
	return func(m Match, _ *Context) *Result {
		v, ok := grammar.ParseLength(m.Get("len"))
		if !ok {
			return Invalid("%q is not a valid size.", m.Get("len"))
		}
		return patchOf(kind, map[string]any{key: v}, updated(key))
	}
}

// scaleStyle applies the relative size law to a px style value.
func scaleStyle(key string, fallback int, factor float64) BuildFunc {
	return func(_ Match, pc *Context) *Result {
		v := grammar.Scale(pc.Style(key), fallback, factor)
		return StylePatch(map[string]any{key: v}, fmt.Sprintf("Changed %s to %s.", grammar.Label(key), v))
	}
}

// set returns a constant patch.
func set(kind Kind, patch map[string]any, message string) BuildFunc {
	return func(Match, *Context) *Result {
		return patchOf(kind, maps.Clone(patch), message)
	}
}

// toggle builds the pair of on/off patterns for a boolean key. The "off"
// phrasing is tried first so "don't loop" never reads as "loop".
func toggle(name, off, on string, kind Kind, key string) []Pattern {
	label := grammar.Label(key)
	return []Pattern{
		P(name+"-off", off, set(kind, map[string]any{key: false}, "Turned off "+label+".")),
		P(name+"-on", on, set(kind, map[string]any{key: true}, "Turned on "+label+".")),
	}
}

var quoteTrim = `"'“”‘’`

// unquote strips surrounding quotes and whitespace.
func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), quoteTrim)
}

var urlRe = regexp.MustCompile(`(?i)^(?:https?://\S+|/\S*|data:\S+|mailto:\S+|[\w./-]+\.(?:png|jpe?g|gif|svg|webp|mp4|webm|mov))$`)

// setURL validates the "url" group and stores it under key.
func setURL(kind Kind, key, what string) BuildFunc {
	return func(m Match, _ *Context) *Result {
		u := unquote(m.Get("url"))
		if !urlRe.MatchString(u) {
			return Invalid("%q doesn't look like a URL. Use an http(s) link, a path starting with / or a file name.", u)
		}
		return patchOf(kind, map[string]any{key: u}, "Updated "+what+".")
	}
}

// words splits a list like "red, green and #00f" into items.
func words(list string) []string {
	list = strings.NewReplacer(" and ", ",", "&", ",", ";", ",").Replace(list)
	var out []string
	for _, w := range strings.Split(list, ",") {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// slug turns a title into an identifier: "In Review" → "in-review".
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// objects reads a prop holding a list of JSON-like objects.
func objects(v any) []map[string]any {
	var out []map[string]any
	switch t := v.(type) {
	case []any:
		for _, e := range t {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
	case []map[string]any:
		out = append(out, t...)
	}
	return out
}

// strs reads a prop holding a list of strings.
func strs(v any) []string {
	var out []string
	switch t := v.(type) {
	case []string:
		out = append(out, t...)
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func anyList[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

var (
	paletteRe   = regexp.MustCompile(`(?i)\b(?:theme|palette|brand|primary|secondary|accent)\b`)
	otherAxisRe = regexp.MustCompile(`(?i)\b(?:background|bg|backdrop|border|outline|fill|stroke)\b`)
	borderRe    = regexp.MustCompile(`(?i)\b(?:border|outline|stroke)\b`)
)

// leavePalette wraps patterns whose subject is a bare "color" so phrasings
// naming a workspace palette slot fall through to the theme processor.
func leavePalette(ps []Pattern) []Pattern {
	return leaveWhen(paletteRe, ps)
}

// leaveOtherAxes wraps foreground color patterns so "background color" or
// "border color" fall through to the background and border processors.
func leaveOtherAxes(ps []Pattern) []Pattern {
	return leaveWhen(otherAxisRe, ps)
}

func leaveWhen(re *regexp.Regexp, ps []Pattern) []Pattern {
	out := make([]Pattern, len(ps))
	for i, p := range ps {
		build := p.Build
		p.Build = func(m Match, pc *Context) *Result {
			if re.MatchString(m.Text) {
				return nil
			}
			return build(m, pc)
		}
		out[i] = p
	}
	return out
}
