// Package theme maps document run styles onto terminal cell styles.
package theme

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/richdoc/internal/engine/document"
)

// Theme holds the resolved editor colors.
type Theme struct {
	foreground colorful.Color
	background colorful.Color
	selection  colorful.Color
}

// Default colors, a plain light-on-dark scheme.
const (
	DefaultForeground = "#d8dee9"
	DefaultBackground = "#1b1f26"
	DefaultSelection  = "#3a5070"
)

// New builds a theme from hex color strings; empty strings fall back to
// the defaults.
func New(foreground, background, selection string) (*Theme, error) {
	fg, err := parseColor(foreground, DefaultForeground)
	if err != nil {
		return nil, fmt.Errorf("theme foreground: %w", err)
	}
	bg, err := parseColor(background, DefaultBackground)
	if err != nil {
		return nil, fmt.Errorf("theme background: %w", err)
	}
	sel, err := parseColor(selection, DefaultSelection)
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}
	return &Theme{foreground: fg, background: bg, selection: sel}, nil
}

func parseColor(hex, fallback string) (colorful.Color, error) {
	if hex == "" {
		hex = fallback
	}
	return colorful.Hex(hex)
}

// Background returns the theme's background as a tcell color.
func (t *Theme) Background() tcell.Color {
	return toTcell(t.background)
}

// Cell resolves a run style into a tcell style. Selected cells get the
// selection color blended toward the background so selected styled text
// stays readable.
func (t *Theme) Cell(st document.Style, selected bool) tcell.Style {
	fg := t.foreground
	if st.Foreground != "" {
		if c, err := colorful.Hex(st.Foreground); err == nil {
			fg = c
		}
	}
	bg := t.background
	if st.Background != "" {
		if c, err := colorful.Hex(st.Background); err == nil {
			bg = c
		}
	}
	if selected {
		bg = bg.BlendLab(t.selection, 0.7).Clamped()
	}

	style := tcell.StyleDefault.
		Foreground(toTcell(fg)).
		Background(toTcell(bg)).
		Bold(st.Bold).
		Italic(st.Italic).
		Underline(st.Underline)
	return style
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
