package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.alchm.dev/scullery/internal/core/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		code string
		want domain.Category
	}{
		{name: "tsc syntax error", code: "TS1005", want: domain.CategorySyntax},
		{name: "tsc type mismatch", code: "TS2345", want: domain.CategoryTypeSafety},
		{name: "tsc unused declaration", code: "TS6133", want: domain.CategoryUnusedCode},
		{name: "eslint explicit any", code: "@typescript-eslint/no-explicit-any", want: domain.CategoryTypeSafety},
		{name: "eslint floating promise", code: "@typescript-eslint/no-floating-promises", want: domain.CategoryPromiseHandling},
		{name: "eslint console", code: "no-console", want: domain.CategoryConsoleUsage},
		{name: "eslint duplicate import", code: "import/no-duplicates", want: domain.CategoryImportHygiene},
		{name: "unknown code", code: "TS9999", want: domain.CategoryOther},
		{name: "empty code", code: "", want: domain.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Classify(tt.code))
		})
	}
}

func TestIssue_Priority(t *testing.T) {
	syntaxErr := domain.Issue{Code: "TS1005", Severity: domain.SeverityError}
	consoleWarn := domain.Issue{Code: "no-console", Severity: domain.SeverityWarning}
	typeErr := domain.Issue{Code: "TS2322", Severity: domain.SeverityError}

	// Syntax errors outrank everything; warnings rank below errors of the
	// same category.
	assert.Greater(t, syntaxErr.Priority(), typeErr.Priority())
	assert.Greater(t, typeErr.Priority(), consoleWarn.Priority())

	typeWarn := domain.Issue{Code: "TS2322", Severity: domain.SeverityWarning}
	assert.Greater(t, typeErr.Priority(), typeWarn.Priority())
}

func TestGroupByFile(t *testing.T) {
	a := domain.NewInternedString("src/a.ts")
	b := domain.NewInternedString("src/b.ts")

	issues := []domain.Issue{
		{File: a, Code: "TS2322"},
		{File: b, Code: "TS6133"},
		{File: a, Code: "no-console"},
	}

	grouped := domain.GroupByFile(issues)
	require.Len(t, grouped, 2)
	assert.Len(t, grouped[a], 2)
	assert.Len(t, grouped[b], 1)
}

func TestFilterCategories(t *testing.T) {
	issues := []domain.Issue{
		{Code: "TS2322"},
		{Code: "no-console"},
		{Code: "TS6133"},
	}

	t.Run("empty filter selects everything", func(t *testing.T) {
		assert.Len(t, domain.FilterCategories(issues, nil), 3)
	})

	t.Run("single category", func(t *testing.T) {
		filtered := domain.FilterCategories(issues, []domain.Category{domain.CategoryConsoleUsage})
		require.Len(t, filtered, 1)
		assert.Equal(t, "no-console", filtered[0].Code)
	})

	t.Run("multiple categories", func(t *testing.T) {
		filtered := domain.FilterCategories(issues, []domain.Category{
			domain.CategoryTypeSafety,
			domain.CategoryUnusedCode,
		})
		assert.Len(t, filtered, 2)
	})
}

func TestCountBySeverity(t *testing.T) {
	issues := []domain.Issue{
		{Severity: domain.SeverityError},
		{Severity: domain.SeverityWarning},
		{Severity: domain.SeverityError},
	}

	errors, warnings := domain.CountBySeverity(issues)
	assert.Equal(t, 2, errors)
	assert.Equal(t, 1, warnings)
}

func TestParseCategory(t *testing.T) {
	cat, ok := domain.ParseCategory("Type-Safety")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryTypeSafety, cat)

	_, ok = domain.ParseCategory("astrology")
	assert.False(t, ok)
}

func TestProgress(t *testing.T) {
	p := domain.NewProgress("type-safety")

	assert.False(t, p.FileDone("src/a.ts"))
	p.MarkFile("src/a.ts")
	assert.True(t, p.FileDone("src/a.ts"))
	assert.False(t, p.LastUpdateTime.IsZero())

	assert.False(t, p.IngredientDone("spinach"))
	p.MarkIngredient("spinach", domain.NutritionProfile{Calories: 23})
	assert.True(t, p.IngredientDone("spinach"))
}

func TestReadinessReport_Decide(t *testing.T) {
	tests := []struct {
		name    string
		results []domain.GateResult
		want    bool
	}{
		{
			name: "all required gates pass",
			results: []domain.GateResult{
				{Gate: "typescript", Required: true, Passed: true},
				{Gate: "lint", Required: true, Passed: true},
			},
			want: true,
		},
		{
			name: "required gate fails",
			results: []domain.GateResult{
				{Gate: "typescript", Required: true, Passed: false},
			},
			want: false,
		},
		{
			name: "optional gate failure does not block",
			results: []domain.GateResult{
				{Gate: "typescript", Required: true, Passed: true},
				{Gate: "lint", Required: false, Passed: false},
			},
			want: true,
		},
		{
			name:    "no gates means ready",
			results: nil,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := domain.ReadinessReport{Results: tt.results}
			report.Decide()
			assert.Equal(t, tt.want, report.Ready)
		})
	}
}

func TestRunSummary_TotalFixed(t *testing.T) {
	summary := domain.RunSummary{
		Batches: []domain.BatchResult{
			{Status: domain.BatchCompleted, IssuesBefore: 10, IssuesAfter: 4},
			{Status: domain.BatchRolledBack, IssuesBefore: 5, IssuesAfter: 9},
			{Status: domain.BatchCompleted, IssuesBefore: 3, IssuesAfter: 3},
		},
	}

	assert.Equal(t, 6, summary.TotalFixed())
	assert.Equal(t, 1, summary.RolledBack())
}
