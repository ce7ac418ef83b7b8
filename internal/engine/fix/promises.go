package fix

import (
	"regexp"
	"strings"

	"go.alchm.dev/scullery/internal/core/domain"
)

var (
	awaitKeyword = regexp.MustCompile(`\bawait\s+`)
	// A bare call statement: optional indentation, an expression ending in a
	// call, optionally followed by a semicolon. Assignments and returns are
	// excluded; their promise flows elsewhere.
	bareCall = regexp.MustCompile(`^(\s*)([\w$.]+(?:\([^;]*\))+;?)\s*$`)
	// A bare function reference handed to a timer. Inline arrows and
	// already-wrapped callbacks do not match, so the rewrite is idempotent.
	timerCallback = regexp.MustCompile(`\b(setInterval|setTimeout)\(\s*([\w$]+)\s*,`)
)

// PromiseFixer addresses the mechanical promise findings: a floating promise
// statement gets a `void` operator, an `await` applied to a non-thenable is
// removed, and an async function passed directly to setInterval/setTimeout
// is wrapped in a void arrow so the timer gets a void-returning callback.
type PromiseFixer struct{}

func (f *PromiseFixer) Category() domain.Category { return domain.CategoryPromiseHandling }
func (f *PromiseFixer) Name() string              { return "promise-handling" }

func (f *PromiseFixer) Apply(content string, issues []domain.Issue, _ *domain.Config) (string, int, error) {
	lines := splitLines(content)
	fixed := 0

	for lineNo, lineIssues := range issuesByLine(issues) {
		idx := lineNo - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		for _, issue := range lineIssues {
			var rewritten string
			switch issue.Code {
			case "@typescript-eslint/no-floating-promises":
				rewritten = voidStatement(lines[idx])
			case "@typescript-eslint/await-thenable":
				rewritten = awaitKeyword.ReplaceAllString(lines[idx], "")
			case "@typescript-eslint/no-misused-promises":
				rewritten = timerCallback.ReplaceAllString(lines[idx], "$1(() => void $2(),")
			default:
				continue
			}
			if rewritten != lines[idx] {
				lines[idx] = rewritten
				fixed++
			}
		}
	}

	return strings.Join(lines, "\n"), fixed, nil
}

// voidStatement prefixes a bare call statement with the void operator,
// marking the promise as intentionally unawaited.
func voidStatement(line string) string {
	m := bareCall.FindStringSubmatch(line)
	if m == nil || strings.HasPrefix(strings.TrimSpace(line), "void ") {
		return line
	}
	return m[1] + "void " + m[2]
}
