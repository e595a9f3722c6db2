// Package theme holds the dark and light palettes and the fyne theme built from them.
package theme

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"
)

// Palette is the set of named colours shared by every window.
type Palette struct {
	Background  color.NRGBA
	Foreground  color.NRGBA
	Subtle      color.NRGBA
	Card        color.NRGBA
	Accent      color.NRGBA
	Accent2     color.NRGBA
	Warn        color.NRGBA
	BreakAccent color.NRGBA
	RingBack    color.NRGBA
}

var (
	darkPalette = Palette{
		Background:  hex("#0d1117"),
		Foreground:  hex("#c9d1d9"),
		Subtle:      hex("#8b949e"),
		Card:        hex("#161b22"),
		Accent:      hex("#1f6feb"),
		Accent2:     hex("#2ea043"),
		Warn:        hex("#f0883e"),
		BreakAccent: hex("#a371f7"),
		RingBack:    hex("#30363d"),
	}
	lightPalette = Palette{
		Background:  hex("#f5f7fb"),
		Foreground:  hex("#061022"),
		Subtle:      hex("#5b6b7b"),
		Card:        hex("#ffffff"),
		Accent:      hex("#2563eb"),
		Accent2:     hex("#16a34a"),
		Warn:        hex("#ea580c"),
		BreakAccent: hex("#7c3aed"),
		RingBack:    hex("#e5e7eb"),
	}
)

// For returns the dark or light palette.
func For(dark bool) Palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

// PhaseAccent is the ring and time colour for a phase.
func (palette Palette) PhaseAccent(focus bool) color.NRGBA {
	if focus {
		return palette.Accent
	}
	return palette.BreakAccent
}

// Theme is a fyne theme with a fixed palette. Fonts, icons and sizes come from the default theme.
type Theme struct {
	dark    bool
	palette Palette
}

var _ fyne.Theme = (*Theme)(nil)

// New builds the theme for the given mode.
func New(dark bool) *Theme {
	return &Theme{dark: dark, palette: For(dark)}
}

// Dark reports the mode of the theme.
func (th *Theme) Dark() bool {
	return th.dark
}

// Palette returns the colours used by the theme.
func (th *Theme) Palette() Palette {
	return th.palette
}

// Color implements fyne.Theme. The variant argument is ignored since the mode is explicit.
func (th *Theme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	palette := th.palette
	switch name {
	case fynetheme.ColorNameBackground:
		return palette.Background
	case fynetheme.ColorNameForeground:
		return palette.Foreground
	case fynetheme.ColorNamePlaceHolder, fynetheme.ColorNameDisabled:
		return palette.Subtle
	case fynetheme.ColorNameInputBackground, fynetheme.ColorNameMenuBackground,
		fynetheme.ColorNameOverlayBackground, fynetheme.ColorNameHeaderBackground:
		return palette.Card
	case fynetheme.ColorNamePrimary, fynetheme.ColorNameFocus, fynetheme.ColorNameHyperlink:
		return palette.Accent
	case fynetheme.ColorNameSuccess:
		return palette.Accent2
	case fynetheme.ColorNameWarning:
		return palette.Warn
	case fynetheme.ColorNameSeparator, fynetheme.ColorNameInputBorder:
		return palette.RingBack
	case fynetheme.ColorNameForegroundOnPrimary:
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return fynetheme.DefaultTheme().Color(name, th.variant())
}

// Font implements fyne.Theme.
func (th *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return fynetheme.DefaultTheme().Font(style)
}

// Icon implements fyne.Theme.
func (th *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return fynetheme.DefaultTheme().Icon(name)
}

// Size implements fyne.Theme.
func (th *Theme) Size(name fyne.ThemeSizeName) float32 {
	return fynetheme.DefaultTheme().Size(name)
}

func (th *Theme) variant() fyne.ThemeVariant {
	if th.dark {
		return fynetheme.VariantDark
	}
	return fynetheme.VariantLight
}

func hex(value string) color.NRGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(value, "#%02x%02x%02x", &r, &g, &b); err != nil {
		panic(fmt.Sprintf("theme colour %q: %v", value, err))
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
