package document

import "maps"

// Theme is the workspace-level named palette shared by every component.
type Theme struct {
	Name    string            `json:"name" yaml:"name"`
	Palette map[string]string `json:"palette" yaml:"palette"`
}

// Clone returns a copy of the theme with its own palette map.
func (t Theme) Clone() Theme {
	out := Theme{Name: t.Name, Palette: make(map[string]string, len(t.Palette))}
	maps.Copy(out.Palette, t.Palette)
	return out
}

// DefaultTheme is the palette a fresh workspace starts with.
func DefaultTheme() Theme {
	return Theme{
		Name: "light",
		Palette: map[string]string{
			"primary":    "#2563eb",
			"secondary":  "#64748b",
			"accent":     "#f59e0b",
			"background": "#ffffff",
			"surface":    "#f8fafc",
			"text":       "#0f172a",
		},
	}
}

// DefaultToolbar is the toolbar configuration a fresh workspace starts with.
func DefaultToolbar() map[string]any {
	return map[string]any{
		"visible":         true,
		"position":        "top",
		"backgroundColor": "#ffffff",
		"iconSize":        20,
		"compact":         false,
	}
}
