package processor

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

// palettes are the named themes a workspace can switch to.
var palettes = map[string]map[string]string{
	"light": document.DefaultTheme().Palette,
	"dark": {
		"primary": "#3b82f6", "secondary": "#94a3b8", "accent": "#fbbf24",
		"background": "#0f172a", "surface": "#1e293b", "text": "#f8fafc",
	},
	"ocean": {
		"primary": "#0ea5e9", "secondary": "#0369a1", "accent": "#14b8a6",
		"background": "#f0f9ff", "surface": "#e0f2fe", "text": "#0c4a6e",
	},
	"forest": {
		"primary": "#16a34a", "secondary": "#4d7c0f", "accent": "#ca8a04",
		"background": "#f7fee7", "surface": "#ecfccb", "text": "#14532d",
	},
	"sunset": {
		"primary": "#f97316", "secondary": "#db2777", "accent": "#facc15",
		"background": "#fff7ed", "surface": "#ffedd5", "text": "#431407",
	},
	"corporate": {
		"primary": "#1e3a8a", "secondary": "#475569", "accent": "#0891b2",
		"background": "#ffffff", "surface": "#f1f5f9", "text": "#111827",
	},
	"pastel": {
		"primary": "#a78bfa", "secondary": "#f9a8d4", "accent": "#86efac",
		"background": "#fdf4ff", "surface": "#fae8ff", "text": "#4a044e",
	},
	"midnight": {
		"primary": "#6366f1", "secondary": "#a5b4fc", "accent": "#f472b6",
		"background": "#020617", "surface": "#111827", "text": "#e2e8f0",
	},
}

var themeAliases = map[string]string{
	"default":  "light",
	"day":      "light",
	"night":    "dark",
	"blue":     "ocean",
	"green":    "forest",
	"orange":   "sunset",
	"business": "corporate",
	"soft":     "pastel",
}

// ThemeNames lists the named themes in alphabetical order.
func ThemeNames() []string {
	return slices.Sorted(maps.Keys(palettes))
}

// resolveTheme maps a theme name or alias to a known theme.
func resolveTheme(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if a, ok := themeAliases[s]; ok {
		s = a
	}
	_, ok := palettes[s]
	return s, ok
}

func namedTheme(name string) *Result {
	p := &ThemePatch{Name: name, Palette: maps.Clone(palettes[name])}
	return ThemeUpdate(p, fmt.Sprintf("Switched to the %s theme.", name))
}

func setTheme(strict bool) BuildFunc {
	return func(m Match, _ *Context) *Result {
		raw := m.Get("name")
		name, ok := resolveTheme(raw)
		if !ok {
			if !strict {
				return nil
			}
			return Invalid("Unknown theme %q. Available themes: %s.", raw, strings.Join(ThemeNames(), ", "))
		}
		return namedTheme(name)
	}
}

// paletteSlot is "theme background", "brand text", "primary" and the like.
// Background, surface and text need a theme qualifier since on their own they
// name component styles.
const paletteSlot = `\b(?:(?:theme|palette|brand)\s+(?P<slot>primary|secondary|accent|background|surface|text)|(?P<slot2>primary|secondary|accent))(?:\s+colou?r)?`

// Theme returns the workspace-level processor for named themes and palette
// colors. It needs no selection.
func Theme() Processor {
	return &patternProcessor{
		name: "theme",
		keywords: append([]string{
			"theme", "palette", "scheme", "dark", "light", "night", "mode", "primary", "secondary", "accent", "brand",
		}, ThemeNames()...),
		patterns: []Pattern{
			P("mode-dark", `\b(?:dark|night)\s+mode|\bgo\s+dark\b`, func(Match, *Context) *Result { return namedTheme("dark") }),
			P("mode-light", `\b(?:light|day)\s+mode|\bgo\s+light\b`, func(Match, *Context) *Result { return namedTheme("light") }),
			P("reset", `\breset\s+(?:the\s+)?(?:theme|palette|colou?rs)`, func(Match, *Context) *Result { return namedTheme("light") }),
			P("slot-prompt", paletteSlot+tail, func(m Match, _ *Context) *Result {
				return Ask("color", fmt.Sprintf("What should the %s color be?", strings.ToLower(m.First("slot", "slot2"))), grammar.ColorNames()...)
			}),
			P("slot", paletteSlot+conn+grammar.ColorExpr, func(m Match, pc *Context) *Result {
				slot := strings.ToLower(m.First("slot", "slot2"))
				raw := m.Get("color")
				v, ok := grammar.ResolveColor(raw)
				if !ok {
					return Invalid("I don't know the color %q.", raw)
				}
				return ThemeUpdate(&ThemePatch{Palette: map[string]string{slot: v}}, fmt.Sprintf("Updated the %s color.", slot))
			}),
			P("theme-prompt", `\b(?:theme|colou?r\s+scheme|palette)`+tail+`|\b(?:change|switch|set)\s+(?:the\s+)?(?:theme|palette)$`, func(Match, *Context) *Result {
				return Ask("theme", "Which theme should the workspace use?", ThemeNames()...)
			}),
			P("theme", `\b(?:theme|colou?r\s+scheme|palette)`+conn+`(?:the\s+)?(?P<name>[a-z]+)`, setTheme(true)),
			P("theme-use", `\b(?:use|switch\s+to|apply|change\s+to|go\s+with)\s+(?:the\s+|an?\s+)?(?P<name>[a-z]+)\s+(?:theme|palette|colou?r\s+scheme|look)`, setTheme(true)),
			P("theme-loose", `\b(?:switch\s+to|use)\s+(?:the\s+)?(?P<name>[a-z]+)$`, setTheme(false)),
		},
		suggestions: []SuggestionGroup{{
			Category: "Theme",
			Examples: []string{
				"set theme to ocean",
				"switch to dark mode",
				"set primary color to #7c3aed",
				"change the theme background to #fafafa",
				"reset the theme",
			},
		}},
	}
}
