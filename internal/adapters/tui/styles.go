package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.alchm.dev/scullery/internal/ui/style"
)

var (
	stepPendingStyle = lipgloss.NewStyle().
				Foreground(style.Slate)

	stepRunningStyle = lipgloss.NewStyle().
				Foreground(style.Iris).
				Bold(true)

	stepDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	stepErrorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(style.White)

	listStyle = lipgloss.NewStyle().
			Padding(0, 1)

	logStyle = lipgloss.NewStyle().
			Padding(0, 1)
)
