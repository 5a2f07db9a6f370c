package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is one entry of the dashboard palette table
type Theme struct {
	Name    string
	Chart   lipgloss.Color
	Accent1 lipgloss.Color
	Accent2 lipgloss.Color
	Accent3 lipgloss.Color
	Banner1 lipgloss.Color
	Banner2 lipgloss.Color
	Bar     lipgloss.Color
	Dim     lipgloss.Color
	Error   lipgloss.Color
}

// Themes is cycled with the theme keys; order is significant
var Themes = []Theme{
	{
		Name:    "Synthwave",
		Chart:   "#00ffc8",
		Accent1: "#50fa7b",
		Accent2: "#00ffc8",
		Accent3: "#ff2e97",
		Banner1: "#00ffc8",
		Banner2: "#ff2e97",
		Bar:     "#8be9fd",
		Dim:     "#6272a4",
		Error:   "#ff5555",
	},
	{
		Name:    "Matrix",
		Chart:   "#00ff41",
		Accent1: "#00ff41",
		Accent2: "#39ff14",
		Accent3: "#00c828",
		Banner1: "#00ff41",
		Banner2: "#00a01e",
		Bar:     "#39ff14",
		Dim:     "#006419",
		Error:   "#ff3030",
	},
	{
		Name:    "C64",
		Chart:   "#acacff",
		Accent1: "#acacff",
		Accent2: "#ffffff",
		Accent3: "#ffff64",
		Banner1: "#acacff",
		Banner2: "#6464dc",
		Bar:     "#acacff",
		Dim:     "#5050a0",
		Error:   "#ff7070",
	},
	{
		Name:    "Amber",
		Chart:   "#ffaa00",
		Accent1: "#ffc832",
		Accent2: "#ff8c00",
		Accent3: "#ff6400",
		Banner1: "#ffa000",
		Banner2: "#c85000",
		Bar:     "#ffc832",
		Dim:     "#784600",
		Error:   "#ff4000",
	},
	{
		Name:    "Nord",
		Chart:   "#88c0d0",
		Accent1: "#a3be8c",
		Accent2: "#88c0d0",
		Accent3: "#b48ead",
		Banner1: "#88c0d0",
		Banner2: "#5e81ac",
		Bar:     "#81a1c1",
		Dim:     "#4c566a",
		Error:   "#bf616a",
	},
	{
		Name:    "Blood Moon",
		Chart:   "#ff3030",
		Accent1: "#ff5050",
		Accent2: "#ff8c00",
		Accent3: "#ffdc32",
		Banner1: "#ff3030",
		Banner2: "#b40000",
		Bar:     "#ff5050",
		Dim:     "#641e1e",
		Error:   "#ff3030",
	},
}

// ThemeIndex returns the index of the theme called name, case-insensitively,
// or false when there is none.
func ThemeIndex(name string) (int, bool) {
	for i, t := range Themes {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return i, true
		}
	}
	return 0, false
}

// ThemeNames lists the theme names in cycle order
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// styles are derived from the active theme on every render
type styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Panel    lipgloss.Style
	PanelTtl lipgloss.Style
	Chart    lipgloss.Style
	Bar      lipgloss.Style
	Dim      lipgloss.Style
	Peak     lipgloss.Style
	Avg      lipgloss.Style
	Current  lipgloss.Style
	Error    lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
	Status   lipgloss.Style
	Banner1  lipgloss.Style
	Banner2  lipgloss.Style
	Loading  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Accent3).
			Bold(true).
			Padding(0, 1),
		Subtitle: lipgloss.NewStyle().
			Foreground(t.Accent2).
			Italic(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Dim).
			Padding(0, 1),
		PanelTtl: lipgloss.NewStyle().
			Foreground(t.Accent2).
			Bold(true),
		Chart:   lipgloss.NewStyle().Foreground(t.Chart),
		Bar:     lipgloss.NewStyle().Foreground(t.Bar),
		Dim:     lipgloss.NewStyle().Foreground(t.Dim),
		Peak:    lipgloss.NewStyle().Foreground(t.Accent1).Bold(true),
		Avg:     lipgloss.NewStyle().Foreground(t.Accent2),
		Current: lipgloss.NewStyle().Foreground(t.Accent3),
		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Error).
			Padding(0, 1),
		HelpKey: lipgloss.NewStyle().
			Foreground(t.Accent3).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().Foreground(t.Dim),
		Status:   lipgloss.NewStyle().Foreground(t.Accent2),
		Banner1:  lipgloss.NewStyle().Foreground(t.Banner1).Bold(true),
		Banner2:  lipgloss.NewStyle().Foreground(t.Banner2).Bold(true),
		Loading:  lipgloss.NewStyle().Foreground(t.Accent1),
	}
}
