//go:build gui

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"promptline/config"
)

// darkTheme applies the configured font sizes on top of the default dark
// palette.
type darkTheme struct {
	window config.Window
}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.RGBA{18, 18, 18, 255}
	case theme.ColorNameForeground:
		return color.RGBA{200, 200, 200, 255}
	case theme.ColorNameError:
		return color.RGBA{255, 69, 58, 255}
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		if d.window.FontSize > 0 {
			return float32(d.window.FontSize)
		}
	case theme.SizeNameCaptionText:
		if d.window.HistoryFontSize > 0 {
			return float32(d.window.HistoryFontSize)
		}
	}
	return theme.DefaultTheme().Size(name)
}
