// Package tui renders campaign progress as an interactive step list with a
// scrollable log pane.
package tui

import "time"

// planMsg initializes the step list before the campaign runs.
type planMsg struct {
	Steps      []string
	Categories []string
}

// stepStartMsg marks a step as running.
type stepStartMsg struct {
	SpanID    string
	Name      string
	StartTime time.Time
}

// stepLogMsg carries a chunk of step output.
type stepLogMsg struct {
	SpanID string
	Data   []byte
}

// stepCompleteMsg marks a step as finished.
type stepCompleteMsg struct {
	SpanID  string
	EndTime time.Time
	Err     error
}
