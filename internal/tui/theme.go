package tui

import (
	"github.com/akyairhashvil/mvno/internal/render"
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name       string
	Palette    string // render palette for the chart and header panes
	Border     lipgloss.Color
	Title      lipgloss.Style
	Group      lipgloss.Style
	Task       lipgloss.Style
	Complete   lipgloss.Style
	Cursor     lipgloss.Style
	Scrollbar  lipgloss.Style
	Input      lipgloss.Style
	Footer     lipgloss.Style
	Dim        lipgloss.Style
	Error      lipgloss.Style
	Status     lipgloss.Style
	Highlight  lipgloss.Style
	ModalTitle lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:       "Default",
		Palette:    "default",
		Border:     lipgloss.Color("63"),
		Title:      lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Group:      lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true),
		Task:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Complete:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Cursor:     lipgloss.NewStyle().Reverse(true),
		Scrollbar:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Input:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1),
		Footer:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Highlight:  lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		ModalTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).MarginBottom(1),
	},
	"dracula": {
		Name:       "Dracula",
		Palette:    "dracula",
		Border:     lipgloss.Color("62"),
		Title:      lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true),
		Group:      lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true),
		Task:       lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Complete:   lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Cursor:     lipgloss.NewStyle().Reverse(true),
		Scrollbar:  lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Input:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1),
		Footer:     lipgloss.NewStyle().Foreground(lipgloss.Color("253")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("210")).Bold(true),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		Highlight:  lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
		ModalTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).MarginBottom(1),
	},
}

// ThemeOrder is the cycle order of the theme key.
var ThemeOrder = []string{"default", "dracula"}

// ThemeFor returns the named theme, falling back to the default.
func ThemeFor(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes["default"]
}

// nextTheme is the theme after name in ThemeOrder.
func nextTheme(name string) string {
	for i, n := range ThemeOrder {
		if n == name {
			return ThemeOrder[(i+1)%len(ThemeOrder)]
		}
	}
	return ThemeOrder[0]
}

// ChartPalette maps the theme onto the renderer's colours.
func (t Theme) ChartPalette() render.Palette {
	return render.PaletteFor(t.Palette)
}
