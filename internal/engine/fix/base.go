package fix

import (
	"strings"

	"go.alchm.dev/scullery/internal/core/domain"
)

// Fixer rewrites a file's content to resolve issues of one category.
//
// Apply receives the issues reported for a single file, sorted or not, and
// returns the rewritten content together with the number of issues it
// believes it addressed. Fixers are pure text transforms; callers persist
// the result and verify it with CheckEdit before writing.
type Fixer interface {
	Category() domain.Category
	Name() string
	Apply(content string, issues []domain.Issue, cfg *domain.Config) (string, int, error)
}

var registry = map[domain.Category]Fixer{
	domain.CategoryTypeSafety:      &AnyTypeFixer{},
	domain.CategoryUnusedCode:      &UnusedFixer{},
	domain.CategoryPromiseHandling: &PromiseFixer{},
	domain.CategoryConsoleUsage:    &ConsoleFixer{},
	domain.CategoryImportHygiene:   &ImportFixer{},
}

// ForCategory returns the fixer handling a category, if one exists.
// Syntax errors have no fixer: they need human judgement.
func ForCategory(cat domain.Category) (Fixer, bool) {
	f, ok := registry[cat]
	return f, ok
}

// Fixable reports whether any fixer handles the category.
func Fixable(cat domain.Category) bool {
	_, ok := registry[cat]
	return ok
}

// issuesByLine indexes issues by their 1-based line number.
func issuesByLine(issues []domain.Issue) map[int][]domain.Issue {
	byLine := make(map[int][]domain.Issue, len(issues))
	for _, issue := range issues {
		byLine[issue.Line] = append(byLine[issue.Line], issue)
	}
	return byLine
}

// splitLines splits content for line-targeted edits. Join with "\n" to
// reassemble; the split/join round-trip is byte-exact.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}
