// Package ui prints the chat session to a terminal.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	userColor      = lipgloss.Color("#5FAFFF")
	assistantColor = lipgloss.Color("#FFD75F")
	mutedColor     = lipgloss.Color("#8A8A8A")
	errorColor     = lipgloss.Color("#FF5F5F")
)

// Styles holds the label styles; Plain renders every label unstyled.
type Styles struct {
	User      lipgloss.Style
	Assistant lipgloss.Style
	Tool      lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		User:      lipgloss.NewStyle().Bold(true).Foreground(userColor),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(assistantColor),
		Tool:      lipgloss.NewStyle().Foreground(mutedColor),
		Muted:     lipgloss.NewStyle().Italic(true).Foreground(mutedColor),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(errorColor),
	}
}

func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{User: s, Assistant: s, Tool: s, Muted: s, Error: s}
}
