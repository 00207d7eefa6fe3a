package html

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName names the built-in manifest.
const DefaultThemeName = "msgform"

// DefaultManifest returns the built-in theme: a light palette plus a "dark"
// variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"surface":     "#ffffff",
			"text":        "#1f2933",
			"accent":      "#2563eb",
			"error":       "#b91c1c",
			"muted":       "#6b7280",
			"radius":      "6px",
			"font-family": "system-ui, sans-serif",
			"font-mono":   "ui-monospace, monospace",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface": "#111827",
					"text":    "#f9fafb",
					"accent":  "#60a5fa",
					"error":   "#f87171",
					"muted":   "#9ca3af",
				},
			},
		},
	}
}

// resolveTheme builds the renderer config for selection. Unknown variants
// resolve to the base tokens.
func resolveTheme(selection *theme.Selection) (*theme.RendererConfig, error) {
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("html renderer: theme selection has no manifest")
	}
	sel := *selection
	if sel.Theme == "" {
		sel.Theme = sel.Manifest.Name
	}
	cfg := sel.RendererTheme(nil)
	return &cfg, nil
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}
