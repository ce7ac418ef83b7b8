package fix

import (
	"regexp"
	"strings"

	"go.alchm.dev/scullery/internal/core/domain"
)

// Replacements are anchored to the reported issue line so that occurrences
// of "any" elsewhere in the file are left alone.
var (
	annotationAny = regexp.MustCompile(`:\s*any\b`)
	assertionAny  = regexp.MustCompile(`\bas\s+any\b`)
	genericAny    = regexp.MustCompile(`<any>`)
	arrayAny      = regexp.MustCompile(`\bany\[\]`)
)

// AnyTypeFixer narrows explicit `any` usages to `unknown`. `unknown` is the
// type-safe counterpart: it satisfies the linter while forcing call sites to
// narrow before use, surfacing latent type errors instead of hiding them.
type AnyTypeFixer struct{}

func (f *AnyTypeFixer) Category() domain.Category { return domain.CategoryTypeSafety }
func (f *AnyTypeFixer) Name() string              { return "any-to-unknown" }

func (f *AnyTypeFixer) Apply(content string, issues []domain.Issue, _ *domain.Config) (string, int, error) {
	lines := splitLines(content)
	fixed := 0

	for lineNo := range issuesByLine(issues) {
		idx := lineNo - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		rewritten := rewriteAny(lines[idx])
		if rewritten != lines[idx] {
			lines[idx] = rewritten
			fixed++
		}
	}

	return strings.Join(lines, "\n"), fixed, nil
}

func rewriteAny(line string) string {
	line = annotationAny.ReplaceAllStringFunc(line, func(m string) string {
		return strings.Replace(m, "any", "unknown", 1)
	})
	line = assertionAny.ReplaceAllString(line, "as unknown")
	line = genericAny.ReplaceAllString(line, "<unknown>")
	line = arrayAny.ReplaceAllString(line, "unknown[]")
	return line
}
