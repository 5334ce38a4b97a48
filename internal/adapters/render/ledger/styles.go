package ledger

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	description lipgloss.Style
	slot        lipgloss.Style
	ownSlot     lipgloss.Style
	occupant    lipgloss.Style
	section     lipgloss.Style
	empty       lipgloss.Style
	barBracket  lipgloss.Style
	barFill     lipgloss.Style
	barEmpty    lipgloss.Style
	full        lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		description: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		slot:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		ownSlot:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		occupant:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:     lipgloss.NewStyle().MarginTop(1),
		empty:       lipgloss.NewStyle().Faint(true),
		barBracket:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:     lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		full:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
