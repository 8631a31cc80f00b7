// Package render presents planning results: terminal table, ASCII map,
// plain-text export, and shapefile export. The clustering engine never
// formats anything itself; everything visual lives here.
package render

import "github.com/muesli/termenv"

// colorHex maps the engine's palette labels to terminal colors.
var colorHex = map[string]string{
	"red":     "#ef4444",
	"blue":    "#3b82f6",
	"green":   "#22c55e",
	"yellow":  "#eab308",
	"magenta": "#d946ef",
	"cyan":    "#06b6d4",
	"orange":  "#f97316",
	"purple":  "#8b5cf6",
	"teal":    "#14b8a6",
	"pink":    "#ec4899",
	"lime":    "#84cc16",
	"brown":   "#a16207",
}

// Styler paints strings with a team's palette color, degrading to plain
// text when the terminal has no color support.
type Styler struct {
	profile termenv.Profile
}

// NewStyler detects the terminal's color profile.
func NewStyler() *Styler {
	return &Styler{profile: termenv.ColorProfile()}
}

// NewPlainStyler never emits escape codes; used for file output and tests.
func NewPlainStyler() *Styler {
	return &Styler{profile: termenv.Ascii}
}

// Paint returns s in the color of the given palette label.
func (st *Styler) Paint(label, s string) string {
	hex, ok := colorHex[label]
	if !ok {
		return s
	}
	return termenv.String(s).Foreground(st.profile.Color(hex)).String()
}
