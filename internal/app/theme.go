package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ScopeTheme darkens the UI around the photograph and uses phosphor green
// as the accent, matching the trace color of the indicator tubes.
type ScopeTheme struct{}

var _ fyne.Theme = (*ScopeTheme)(nil)

func (t *ScopeTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x3C, G: 0xC8, B: 0x78, A: 0xFF} // phosphor green
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0x3C, G: 0xC8, B: 0x78, A: 0x60}
	case theme.ColorNameScrollBar:
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	default:
		// Always the dark variant: a bright chrome next to a dark
		// photograph ruins the operator's eye adaptation.
		return theme.DefaultTheme().Color(name, theme.VariantDark)
	}
}

func (t *ScopeTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *ScopeTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *ScopeTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16
	case theme.SizeNameScrollBarSmall:
		return 12
	default:
		return theme.DefaultTheme().Size(name)
	}
}
