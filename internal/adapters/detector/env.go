// Package detector picks the output mode from the execution environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how campaign progress is rendered.
type OutputMode int

const (
	// ModeAuto detects the appropriate mode from the environment.
	ModeAuto OutputMode = iota
	// ModeTUI renders an interactive step tree.
	ModeTUI
	// ModeLinear prints chronological prefixed log lines.
	ModeLinear
	// ModeJSON emits machine-readable results only, no progress rendering.
	ModeJSON
)

// DetectEnvironment recommends an output mode. Campaigns run both from
// developer terminals and from CI pipelines; anything that is not an
// interactive TTY gets linear output.
func DetectEnvironment() OutputMode {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeLinear
	}
	if isCI() {
		return ModeLinear
	}
	return ModeTUI
}

func isCI() bool {
	if v := os.Getenv("CI"); v == "true" || v == "1" {
		return true
	}
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// ResolveMode applies a user override to the detected mode. flag is one
// of "auto", "tui", "linear", "ci", "json", or empty. Unknown values keep
// the detected mode.
func ResolveMode(detected OutputMode, flag string) OutputMode {
	switch flag {
	case "tui":
		return ModeTUI
	case "linear", "ci":
		return ModeLinear
	case "json":
		return ModeJSON
	default:
		return detected
	}
}
