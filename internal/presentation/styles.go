package presentation

import "github.com/charmbracelet/lipgloss"

// Status colors shared by diff output and watch-mode run lines.
var (
	successColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	additionStyle = lipgloss.NewStyle().Foreground(successColor)
	deletionStyle = lipgloss.NewStyle().Foreground(errorColor)
	runOKStyle    = lipgloss.NewStyle().Foreground(successColor)
	runFailStyle  = lipgloss.NewStyle().Foreground(errorColor)
)
