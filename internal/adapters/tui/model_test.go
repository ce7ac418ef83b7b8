package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizedModel() *Model {
	m := NewModel()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestModel_PlanInitializesSteps(t *testing.T) {
	m := sizedModel()

	m.Update(planMsg{
		Steps:      []string{"analysis", "batch 1", "validation"},
		Categories: []string{"type-safety"},
	})

	require.Len(t, m.Steps, 3)
	assert.Equal(t, StatusPending, m.Steps[0].Status)
	assert.Equal(t, []string{"type-safety"}, m.Categories)
}

func TestModel_StepLifecycle(t *testing.T) {
	m := sizedModel()
	m.Update(planMsg{Steps: []string{"analysis"}})

	m.Update(stepStartMsg{SpanID: "s1", Name: "analysis", StartTime: time.Now()})
	assert.Equal(t, StatusRunning, m.Steps[0].Status)

	m.Update(stepLogMsg{SpanID: "s1", Data: []byte("error TS2322\n")})
	assert.Equal(t, 1, m.Steps[0].Log.LineCount())

	m.Update(stepCompleteMsg{SpanID: "s1", EndTime: time.Now()})
	assert.Equal(t, StatusDone, m.Steps[0].Status)
}

func TestModel_FailedStepMarkedError(t *testing.T) {
	m := sizedModel()
	m.Update(planMsg{Steps: []string{"validation"}})

	m.Update(stepStartMsg{SpanID: "s1", Name: "validation", StartTime: time.Now()})
	m.Update(stepCompleteMsg{SpanID: "s1", EndTime: time.Now(), Err: assert.AnError})

	assert.Equal(t, StatusError, m.Steps[0].Status)
}

func TestModel_UnplannedStepAppended(t *testing.T) {
	m := sizedModel()
	m.Update(planMsg{Steps: []string{"analysis"}})

	m.Update(stepStartMsg{SpanID: "s9", Name: "revalidation", StartTime: time.Now()})

	require.Len(t, m.Steps, 2)
	assert.Equal(t, "revalidation", m.Steps[1].Name)
	assert.Equal(t, StatusRunning, m.Steps[1].Status)
}

func TestModel_NavigationLeavesFollowMode(t *testing.T) {
	m := sizedModel()
	m.Update(planMsg{Steps: []string{"a", "b", "c"}})
	require.True(t, m.FollowMode)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.False(t, m.FollowMode)
	assert.Equal(t, 1, m.SelectedIdx)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, m.SelectedIdx)
}

func TestModel_EscReturnsToRunningStep(t *testing.T) {
	m := sizedModel()
	m.Update(planMsg{Steps: []string{"a", "b"}})
	m.Update(stepStartMsg{SpanID: "s2", Name: "b", StartTime: time.Now()})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	require.False(t, m.FollowMode)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, m.FollowMode)
	assert.Equal(t, 1, m.SelectedIdx)
}

func TestModel_QuitKey(t *testing.T) {
	m := sizedModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ViewRendersSteps(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	m := sizedModel()
	m.Update(planMsg{Steps: []string{"analysis"}})
	m.Update(stepStartMsg{SpanID: "s1", Name: "analysis", StartTime: time.Now()})
	m.Update(stepLogMsg{SpanID: "s1", Data: []byte("src/app.ts(3,7): error TS2322\n")})

	view := m.View()

	assert.Contains(t, view, "analysis")
	assert.Contains(t, view, "error TS2322")
}
