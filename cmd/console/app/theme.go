package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type themePalette struct {
	Name          string
	BorderColor   string
	AccentColor   string
	MutedColor    string
	TabActiveBG   string
	TabActiveFG   string
	TabInactiveFG string
	SuccessColor  string
	ErrorColor    string
	WarningColor  string
}

var palettes = []themePalette{
	{
		Name:          "Ocean",
		BorderColor:   "240",
		AccentColor:   "63",
		MutedColor:    "241",
		TabActiveBG:   "57",
		TabActiveFG:   "230",
		TabInactiveFG: "240",
		SuccessColor:  "42",
		ErrorColor:    "196",
		WarningColor:  "214",
	},
	{
		Name:          "Forest",
		BorderColor:   "65",
		AccentColor:   "41",
		MutedColor:    "72",
		TabActiveBG:   "34",
		TabActiveFG:   "230",
		TabInactiveFG: "108",
		SuccessColor:  "76",
		ErrorColor:    "160",
		WarningColor:  "178",
	},
	{
		Name:          "Amber",
		BorderColor:   "179",
		AccentColor:   "214",
		MutedColor:    "137",
		TabActiveBG:   "172",
		TabActiveFG:   "232",
		TabInactiveFG: "179",
		SuccessColor:  "114",
		ErrorColor:    "203",
		WarningColor:  "220",
	},
}

var (
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	activeBox   = boxStyle.BorderForeground(lipgloss.Color("63"))
	placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tabActive   = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("57")).Bold(true)
	tabInactive = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("240"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 2)
	filterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Padding(0, 2)
	modalStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(1, 2)
	modalTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	modalHint    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	logoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true).PaddingRight(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m *Model) setTheme(index int) {
	if len(palettes) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	m.themeIndex = index % len(palettes)
	applyPalette(palettes[m.themeIndex])
	m.themeName = palettes[m.themeIndex].Name
}

func (m *Model) cycleTheme() {
	m.setTheme(m.themeIndex + 1)
	m.setActionStatus(fmt.Sprintf("Theme switched to %s", m.themeName), nil)
}

func applyPalette(p themePalette) {
	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(p.BorderColor)).Padding(0, 1)
	boxStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(p.BorderColor)).Padding(0, 1)
	activeBox = boxStyle.BorderForeground(lipgloss.Color(p.AccentColor))
	placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color(p.BorderColor))
	tabActive = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color(p.TabActiveFG)).Background(lipgloss.Color(p.TabActiveBG)).Bold(true)
	tabInactive = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color(p.TabInactiveFG))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 2)
	filterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(p.WarningColor)).Padding(0, 2)
	modalStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(p.AccentColor)).Padding(1, 2)
	modalTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.AccentColor))
	modalHint = lipgloss.NewStyle().Foreground(lipgloss.Color(p.MutedColor))
	logoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(p.AccentColor)).Bold(true).PaddingRight(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(p.SuccessColor))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(p.ErrorColor))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(p.AccentColor)).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(p.MutedColor))
}
