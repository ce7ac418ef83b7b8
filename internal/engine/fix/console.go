package fix

import (
	"regexp"
	"strings"

	"go.alchm.dev/scullery/internal/core/domain"
)

var consoleCall = regexp.MustCompile(`\bconsole\.(log|info|warn|error|debug)\(`)

// consoleToLogger maps console methods onto the structured logger's API.
// console.log carries no level, so it lands on info.
var consoleToLogger = map[string]string{
	"log":   "info",
	"info":  "info",
	"warn":  "warn",
	"error": "error",
	"debug": "debug",
}

// ConsoleFixer replaces console statements with structured logger calls and
// injects the logger import when the file does not have one yet.
type ConsoleFixer struct{}

func (f *ConsoleFixer) Category() domain.Category { return domain.CategoryConsoleUsage }
func (f *ConsoleFixer) Name() string              { return "console-to-logger" }

func (f *ConsoleFixer) Apply(content string, issues []domain.Issue, cfg *domain.Config) (string, int, error) {
	lines := splitLines(content)
	fixed := 0

	for lineNo := range issuesByLine(issues) {
		idx := lineNo - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		if isCommented(lines[idx]) {
			continue
		}
		rewritten := consoleCall.ReplaceAllStringFunc(lines[idx], func(m string) string {
			method := consoleCall.FindStringSubmatch(m)[1]
			return "logger." + consoleToLogger[method] + "("
		})
		if rewritten != lines[idx] {
			lines[idx] = rewritten
			fixed++
		}
	}

	if fixed > 0 && cfg.LoggerImport != "" {
		lines = ensureLoggerImport(lines, cfg.LoggerImport)
	}

	return strings.Join(lines, "\n"), fixed, nil
}

// MigrateConsoleStatements rewrites every uncommented console call in the
// file, regardless of reported issues. The standalone migration command
// walks files directly instead of driving off linter output.
func MigrateConsoleStatements(content string, cfg *domain.Config) (string, int) {
	lines := splitLines(content)
	replaced := 0

	for i, line := range lines {
		if isCommented(line) {
			continue
		}
		rewritten := consoleCall.ReplaceAllStringFunc(line, func(m string) string {
			method := consoleCall.FindStringSubmatch(m)[1]
			replaced++
			return "logger." + consoleToLogger[method] + "("
		})
		lines[i] = rewritten
	}

	if replaced > 0 && cfg.LoggerImport != "" {
		lines = ensureLoggerImport(lines, cfg.LoggerImport)
	}

	return strings.Join(lines, "\n"), replaced
}

func isCommented(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*")
}

// ensureLoggerImport inserts the logger import after the last existing
// import, or at the top of the file when there are none.
func ensureLoggerImport(lines []string, module string) []string {
	stmt := "import { logger } from '" + module + "';"

	lastImport := -1
	for i, line := range lines {
		if strings.Contains(line, "from '"+module+"'") ||
			strings.Contains(line, `from "`+module+`"`) {
			return lines
		}
		if strings.HasPrefix(strings.TrimSpace(line), "import ") {
			lastImport = i
		}
	}

	insertAt := lastImport + 1
	lines = append(lines, "")
	copy(lines[insertAt+1:], lines[insertAt:])
	lines[insertAt] = stmt
	return lines
}
