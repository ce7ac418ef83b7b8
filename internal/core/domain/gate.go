package domain

import "time"

// QualityGate is a boolean pass/fail check used to approve or block a
// deployment decision.
type QualityGate struct {
	Name    string
	Command []string

	// MaxErrors and MaxWarnings are the inclusive thresholds the parsed
	// output must stay within for the gate to pass.
	MaxErrors   int
	MaxWarnings int

	// Source selects the parser applied to the command output.
	// Empty means the gate passes on exit code alone.
	Source Source

	// Required gates block readiness when they fail; optional gates are
	// reported but do not affect the decision.
	Required bool
}

// GateResult is the outcome of evaluating one quality gate.
type GateResult struct {
	Gate     string        `json:"gate"`
	Passed   bool          `json:"passed"`
	Required bool          `json:"required"`
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
	Details  string        `json:"details,omitempty"`
	Duration time.Duration `json:"duration"`
}

// ReadinessReport aggregates gate results into a deployment decision.
type ReadinessReport struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Results     []GateResult `json:"results"`
	Ready       bool         `json:"ready"`
}

/// Decide computes the readiness decision from the individual results:
// ready iff every required gate passed.
func (r *ReadinessReport) Decide() {
	r.Ready = true
	for _, result := range r.Results {
		if result.Required && !result.Passed {
			r.Ready = false
			return
		}
	}
}
