package board

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	current    lipgloss.Style
	activity   lipgloss.Style
	detail     lipgloss.Style
	meta       lipgloss.Style
	late       lipgloss.Style
	early      lipgloss.Style
	ended      lipgloss.Style
	adjusted   lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	barText    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		current:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		activity:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		meta:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		late:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		early:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		ended:      lipgloss.NewStyle().Faint(true).Strikethrough(true),
		adjusted:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		barText:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}
