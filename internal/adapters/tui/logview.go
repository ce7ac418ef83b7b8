package tui

import (
	"strings"
	"sync"
)

// maxLogLines bounds per-step log retention. tsc on the full tree emits
// thousands of lines; anything beyond this window is only interesting in
// linear mode anyway.
const maxLogLines = 2000

// LogView is a bounded, scrollable view over a step's output lines.
type LogView struct {
	mu      sync.Mutex
	lines   []string
	partial string

	Width  int
	Height int
	Offset int
}

// NewLogView creates an empty log view.
func NewLogView() *LogView {
	return &LogView{}
}

// Write appends raw output, splitting it into lines. Partial lines are
// held back until their newline arrives.
func (v *LogView) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	text := v.partial + string(p)
	parts := strings.Split(text, "\n")
	v.partial = parts[len(parts)-1]

	for _, line := range parts[:len(parts)-1] {
		v.lines = append(v.lines, strings.TrimSuffix(line, "\r"))
	}
	if len(v.lines) > maxLogLines {
		v.lines = v.lines[len(v.lines)-maxLogLines:]
	}

	return len(p), nil
}

// LineCount reports the number of complete lines held.
func (v *LogView) LineCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.lines)
}

// ScrollUp moves the view up by n lines.
func (v *LogView) ScrollUp(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Offset -= n
	if v.Offset < 0 {
		v.Offset = 0
	}
}

// ScrollDown moves the view down by n lines, clamped to the end.
func (v *LogView) ScrollDown(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Offset += n
	v.clampLocked()
}

// ScrollToEnd jumps to the latest output.
func (v *LogView) ScrollToEnd() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Offset = v.maxOffsetLocked()
}

// View renders the visible window, trimming lines to the view width.
func (v *LogView) View() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.Height <= 0 {
		return ""
	}

	v.clampLocked()
	end := v.Offset + v.Height
	if end > len(v.lines) {
		end = len(v.lines)
	}

	var b strings.Builder
	for i := v.Offset; i < end; i++ {
		line := v.lines[i]
		if v.Width > 0 && len(line) > v.Width {
			line = line[:v.Width]
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (v *LogView) clampLocked() {
	if max := v.maxOffsetLocked(); v.Offset > max {
		v.Offset = max
	}
}

func (v *LogView) maxOffsetLocked() int {
	max := len(v.lines) - v.Height
	if max < 0 {
		return 0
	}
	return max
}
