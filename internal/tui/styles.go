package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/mxr/internal/workflow"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	markedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 2)
)

// phaseStyle colours the phase badge in the header.
func phaseStyle(phase string) lipgloss.Style {
	switch workflow.State(phase) {
	case workflow.StateLoaded:
		return successStyle
	case workflow.StateLoadingTodos:
		return pendingStyle
	case workflow.StateConfirmingDelete:
		return errorStyle
	}
	return mutedStyle
}
