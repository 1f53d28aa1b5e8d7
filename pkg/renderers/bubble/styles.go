package bubble

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by View.
type Styles struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Required  lipgloss.Style
	Value     lipgloss.Style
	Empty     lipgloss.Style
	Invalid   lipgloss.Style
	Disabled  lipgloss.Style
	Candidate lipgloss.Style
	Highlight lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Label:     lipgloss.NewStyle().Bold(true).Width(24),
		Required:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Value:     lipgloss.NewStyle(),
		Empty:     lipgloss.NewStyle().Faint(true),
		Invalid:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Underline(true),
		Disabled:  lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Candidate: lipgloss.NewStyle().PaddingLeft(26),
		Highlight: lipgloss.NewStyle().PaddingLeft(26).Reverse(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).MarginTop(1),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).MarginTop(1),
	}
}
