// Package domain contains the core domain types for scullery: lint issues,
// campaigns, progress checkpoints, nutrition profiles, and quality gates.
package domain

import (
	"slices"
	"strings"
)

// Severity is the severity of a reported issue.
type Severity string

const (
	// SeverityError indicates a compiler error or an ESLint severity-2 message.
	SeverityError Severity = "error"
	// SeverityWarning indicates a compiler warning or an ESLint severity-1 message.
	SeverityWarning Severity = "warning"
)

// Source identifies the tool that reported an issue.
type Source string

const (
	// SourceTypeScript marks issues parsed from tsc --noEmit output.
	SourceTypeScript Source = "typescript"
	// SourceESLint marks issues parsed from ESLint JSON output.
	SourceESLint Source = "eslint"
)

// Issue is a single structured record parsed from compiler or linter output.
// Issues are ephemeral: they are recomputed on every run and never persisted.
type Issue struct {
	File     InternedString
	Line     int
	Column   int
	Code     string // "TS2345" for tsc, rule ID like "no-console" for ESLint
	Message  string
	Severity Severity
	Source   Source
}

// Category is a remediation bucket for issues. Campaigns target categories.
type Category string

const (
	// CategoryTypeSafety covers explicit/implicit any and type mismatch errors.
	CategoryTypeSafety Category = "type-safety"
	// CategoryUnusedCode covers unused variables, imports, and declarations.
	CategoryUnusedCode Category = "unused-code"
	// CategoryPromiseHandling covers floating, misused, and over-awaited promises.
	CategoryPromiseHandling Category = "promise-handling"
	// CategoryConsoleUsage covers raw console statements slated for logger migration.
	CategoryConsoleUsage Category = "console-usage"
	// CategoryImportHygiene covers duplicate and disordered imports.
	CategoryImportHygiene Category = "import-hygiene"
	// CategorySyntax covers parse-level compiler errors.
	CategorySyntax Category = "syntax"
	// CategoryOther is the fallback bucket for unclassified codes.
	CategoryOther Category = "other"
)

// Categories lists all known categories in descending default priority order.
func Categories() []Category {
	return []Category{
		CategorySyntax,
		CategoryTypeSafety,
		CategoryPromiseHandling,
		CategoryUnusedCode,
		CategoryImportHygiene,
		CategoryConsoleUsage,
		CategoryOther,
	}
}

// categoryByCode is the static code -> category lookup table.
// tsc codes keep their "TS" prefix; ESLint entries use the rule ID.
var categoryByCode = map[string]Category{
	// Syntax-level compiler errors.
	"TS1005": CategorySyntax, // ';' expected
	"TS1109": CategorySyntax, // expression expected
	"TS1128": CategorySyntax, // declaration or statement expected
	"TS1434": CategorySyntax, // unexpected keyword or identifier

	// Type safety.
	"TS2304":  CategoryTypeSafety, // cannot find name
	"TS2322":  CategoryTypeSafety, // type not assignable
	"TS2339":  CategoryTypeSafety, // property does not exist
	"TS2345":  CategoryTypeSafety, // argument type mismatch
	"TS2352":  CategoryTypeSafety, // unsafe conversion
	"TS2571":  CategoryTypeSafety, // object is of type unknown
	"TS7006":  CategoryTypeSafety, // parameter implicitly any
	"TS18046": CategoryTypeSafety, // element is of type unknown
	"TS18048": CategoryTypeSafety, // value is possibly undefined

	"@typescript-eslint/no-explicit-any":      CategoryTypeSafety,
	"@typescript-eslint/no-unsafe-assignment": CategoryTypeSafety,
	"@typescript-eslint/no-unsafe-call":       CategoryTypeSafety,

	// Unused code.
	"TS6133": CategoryUnusedCode, // declared but never read
	"TS6196": CategoryUnusedCode, // declared but never used

	"no-unused-vars":                      CategoryUnusedCode,
	"@typescript-eslint/no-unused-vars":   CategoryUnusedCode,
	"unused-imports/no-unused-imports":    CategoryUnusedCode,

	// Promise handling.
	"@typescript-eslint/await-thenable":       CategoryPromiseHandling,
	"@typescript-eslint/no-floating-promises": CategoryPromiseHandling,
	"@typescript-eslint/no-misused-promises":  CategoryPromiseHandling,

	// Console usage.
	"no-console": CategoryConsoleUsage,

	// Import hygiene.
	"import/no-duplicates": CategoryImportHygiene,
	"import/order":         CategoryImportHygiene,
}

// categoryWeights are the static per-category priority weights.
// Syntax errors block everything else, so they carry the largest weight.
var categoryWeights = map[Category]int{
	CategorySyntax:          100,
	CategoryTypeSafety:      40,
	CategoryPromiseHandling: 25,
	CategoryUnusedCode:      15,
	CategoryImportHygiene:   10,
	CategoryConsoleUsage:    5,
	CategoryOther:           1,
}

// severityWeights are the static per-severity priority weights.
var severityWeights = map[Severity]int{
	SeverityError:   3,
	SeverityWarning: 1,
}

// Classify maps an issue code or rule ID to its category.
// Unknown codes fall back to CategoryOther.
func Classify(code string) Category {
	if cat, ok := categoryByCode[code]; ok {
		return cat
	}
	return CategoryOther
}

// Category returns the remediation bucket for the issue.
func (i Issue) Category() Category {
	return Classify(i.Code)
}

// Priority computes the issue's fix priority as categoryWeight * severityWeight.
// Higher values are fixed first.
func (i Issue) Priority() int {
	return categoryWeights[i.Category()] * severityWeights[i.Severity]
}

// GroupByFile buckets issues by their file path.
func GroupByFile(issues []Issue) map[InternedString][]Issue {
	grouped := make(map[InternedString][]Issue)
	for _, issue := range issues {
		grouped[issue.File] = append(grouped[issue.File], issue)
	}
	return grouped
}

// GroupByCategory buckets issues by category.
func GroupByCategory(issues []Issue) map[Category][]Issue {
	grouped := make(map[Category][]Issue)
	for _, issue := range issues {
		grouped[issue.Category()] = append(grouped[issue.Category()], issue)
	}
	return grouped
}

// FilterCategories returns the issues belonging to any of the given categories.
// An empty category list selects everything.
func FilterCategories(issues []Issue, categories []Category) []Issue {
	if len(categories) == 0 {
		return issues
	}
	filtered := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if slices.Contains(categories, issue.Category()) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// CountBySeverity returns the number of errors and warnings in issues.
func CountBySeverity(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

// ParseCategory parses a user-supplied category name.
// It accepts the canonical names case-insensitively.
func ParseCategory(s string) (Category, bool) {
	needle := Category(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Categories(), needle) {
		return needle, true
	}
	return "", false
}
