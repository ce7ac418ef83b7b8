package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.alchm.dev/scullery/internal/ui/style"
)

// View renders the split layout: step list on the left, logs on the right.
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.stepList(),
		m.logPane(),
	)
}

func (m *Model) stepList() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("STEPS") + "\n\n")

	start := m.ListOffset
	end := m.ListOffset + m.ListHeight
	if end > len(m.Steps) {
		end = len(m.Steps)
	}
	if start > end {
		start = end
	}

	for i := start; i < end; i++ {
		s.WriteString(m.renderStepRow(i, m.Steps[i]) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) renderStepRow(index int, step *StepNode) string {
	icon := stepIcon(step)
	rowStyle := stepStyle(step)

	cursor := "  "
	if index == m.SelectedIdx {
		cursor = selectedStyle.Render("> ")
		if step.Status != StatusDone && step.Status != StatusError {
			rowStyle = selectedStyle
		}
	}

	return cursor + rowStyle.Render(fmt.Sprintf("%s %s", icon, step.Name))
}

func stepIcon(step *StepNode) string {
	switch step.Status {
	case StatusRunning:
		return style.Dot
	case StatusDone:
		return style.Check
	case StatusError:
		return style.Cross
	default:
		return style.Circle
	}
}

func stepStyle(step *StepNode) lipgloss.Style {
	switch step.Status {
	case StatusRunning:
		return stepRunningStyle
	case StatusDone:
		return stepDoneStyle
	case StatusError:
		return stepErrorStyle
	default:
		return stepPendingStyle
	}
}

func (m *Model) logPane() string {
	var header, content string

	if node := m.selectedStep(); node != nil {
		mode := " (following)"
		if !m.FollowMode {
			mode = " (manual)"
		}
		header = titleStyle.Render("LOGS: " + node.Name + mode)
		content = node.Log.View()
	} else {
		header = titleStyle.Render("LOGS (waiting)")
	}

	return logStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, content))
}
