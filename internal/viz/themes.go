package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour scheme of the plot and the side panel.
type Theme struct {
	Name   string
	Curve  lipgloss.Color
	Circle lipgloss.Color
	Marker lipgloss.Color
	Center lipgloss.Color
	Axis   lipgloss.Color
	Grid   lipgloss.Color
	Title  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
}

var (
	// ThemeClassic follows the matplotlib look: blue curve, red circle and
	// traced point, green centre.
	ThemeClassic = Theme{
		Name:   "classic",
		Curve:  lipgloss.Color("#1f77b4"),
		Circle: lipgloss.Color("#ff0000"),
		Marker: lipgloss.Color("#ff3030"),
		Center: lipgloss.Color("#00c000"),
		Axis:   lipgloss.Color("#bbbbbb"),
		Grid:   lipgloss.Color("#555555"),
		Title:  lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#dddddd"),
		Muted:  lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Curve:  lipgloss.Color("#00a8cc"),
		Circle: lipgloss.Color("#ff6b6b"),
		Marker: lipgloss.Color("#ffd700"),
		Center: lipgloss.Color("#00ff88"),
		Axis:   lipgloss.Color("#4488aa"),
		Grid:   lipgloss.Color("#1d3b55"),
		Title:  lipgloss.Color("#e0f0ff"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Curve:  lipgloss.Color("#00ff00"),
		Circle: lipgloss.Color("#88ff88"),
		Marker: lipgloss.Color("#ffff00"),
		Center: lipgloss.Color("#00cc00"),
		Axis:   lipgloss.Color("#008800"),
		Grid:   lipgloss.Color("#004400"),
		Title:  lipgloss.Color("#00ff00"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Curve:  lipgloss.Color("#ffffff"),
		Circle: lipgloss.Color("#cccccc"),
		Marker: lipgloss.Color("#0088ff"),
		Center: lipgloss.Color("#888888"),
		Axis:   lipgloss.Color("#666666"),
		Grid:   lipgloss.Color("#333333"),
		Title:  lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeOcean,
		ThemeRetro,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeClassic, false
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// InkColor maps an ink to the theme colour.
func (t Theme) InkColor(ink Ink) lipgloss.Color {
	switch ink {
	case InkGrid:
		return t.Grid
	case InkAxis:
		return t.Axis
	case InkCurve:
		return t.Curve
	case InkCircle:
		return t.Circle
	case InkCenter:
		return t.Center
	case InkMarker:
		return t.Marker
	}
	return t.Text
}

// Palette is the GIF palette indexed by Ink; index 0 is the background.
func (t Theme) Palette() color.Palette {
	p := make(color.Palette, InkMarker+1)
	p[InkNone] = color.Black
	for ink := InkGrid; ink <= InkMarker; ink++ {
		r, g, b := parseHex(string(t.InkColor(ink)))
		p[ink] = color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
	}
	return p
}
