package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	stepListWidthRatio = 0.3
	logPaneBorderWidth = 4
)

// StepStatus is the lifecycle state of one campaign step.
type StepStatus string

const (
	// StatusPending means the step has not started yet.
	StatusPending StepStatus = "Pending"
	// StatusRunning means the step is executing.
	StatusRunning StepStatus = "Running"
	// StatusDone means the step completed successfully.
	StatusDone StepStatus = "Done"
	// StatusError means the step failed or was rolled back.
	StatusError StepStatus = "Error"
)

// StepNode is one row in the step list.
type StepNode struct {
	Name   string
	Status StepStatus
	Log    *LogView
}

// Model is the Bubble Tea model for campaign progress.
type Model struct {
	Steps      []*StepNode
	StepMap    map[string]*StepNode
	SpanMap    map[string]*StepNode
	Categories []string

	SelectedIdx int
	ListOffset  int
	ListHeight  int
	LogWidth    int
	LogHeight   int
	FollowMode  bool
}

// NewModel creates an empty model in follow mode.
func NewModel() *Model {
	return &Model{
		StepMap:    make(map[string]*StepNode),
		SpanMap:    make(map[string]*StepNode),
		FollowMode: true,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case planMsg:
		m.initSteps(msg.Steps, msg.Categories)

	case stepStartMsg:
		m.startStep(msg)

	case stepLogMsg:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			_, _ = node.Log.Write(msg.Data)
			if m.FollowMode {
				node.Log.ScrollToEnd()
			}
		}

	case stepCompleteMsg:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			if msg.Err != nil {
				node.Status = StatusError
			} else {
				node.Status = StatusDone
			}
		}
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "k", "up":
		if m.SelectedIdx > 0 {
			m.SelectedIdx--
			m.FollowMode = false
			m.ensureVisible()
		}
	case "j", "down":
		if m.SelectedIdx < len(m.Steps)-1 {
			m.SelectedIdx++
			m.FollowMode = false
			m.ensureVisible()
		}
	case "pgup":
		if node := m.selectedStep(); node != nil {
			m.FollowMode = false
			node.Log.ScrollUp(m.LogHeight)
		}
	case "pgdown":
		if node := m.selectedStep(); node != nil {
			node.Log.ScrollDown(m.LogHeight)
		}
	case "esc":
		m.FollowMode = true
		for i, s := range m.Steps {
			if s.Status == StatusRunning {
				m.SelectedIdx = i
				break
			}
		}
		m.ensureVisible()
		if node := m.selectedStep(); node != nil {
			node.Log.ScrollToEnd()
		}
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	listWidth := int(float64(width) * stepListWidthRatio)
	m.LogWidth = width - listWidth - logPaneBorderWidth
	m.LogHeight = height - lipgloss.Height(titleStyle.Render("X")) - 1

	header := titleStyle.Render("STEPS") + "\n\n"
	m.ListHeight = height - lipgloss.Height(header)
	m.ensureVisible()

	for _, node := range m.Steps {
		node.Log.Width = m.LogWidth
		node.Log.Height = m.LogHeight
	}
}

func (m *Model) initSteps(steps []string, categories []string) {
	m.Steps = make([]*StepNode, len(steps))
	m.StepMap = make(map[string]*StepNode, len(steps))
	m.SpanMap = make(map[string]*StepNode)
	m.Categories = categories

	for i, name := range steps {
		log := NewLogView()
		log.Width = m.LogWidth
		log.Height = m.LogHeight

		m.Steps[i] = &StepNode{Name: name, Status: StatusPending, Log: log}
		m.StepMap[name] = m.Steps[i]
	}
}

func (m *Model) startStep(msg stepStartMsg) {
	node, ok := m.StepMap[msg.Name]
	if !ok {
		// Steps outside the emitted plan (validation reruns) are appended.
		log := NewLogView()
		log.Width = m.LogWidth
		log.Height = m.LogHeight
		node = &StepNode{Name: msg.Name, Log: log}
		m.Steps = append(m.Steps, node)
		m.StepMap[msg.Name] = node
	}

	node.Status = StatusRunning
	m.SpanMap[msg.SpanID] = node

	if m.FollowMode {
		for i, s := range m.Steps {
			if s == node {
				m.SelectedIdx = i
				break
			}
		}
		m.ensureVisible()
	}
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

func (m *Model) selectedStep() *StepNode {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Steps) {
		return m.Steps[m.SelectedIdx]
	}
	return nil
}
