package fix

import (
	"regexp"
	"slices"
	"strings"

	"go.alchm.dev/scullery/internal/core/domain"
)

// importLine matches a single-line ES import declaration:
//
//	import defaultName, { a, b as c } from 'module';
//	import type { Props } from './types';
//	import * as path from 'path';
//
// Side-effect imports (import './styles.css') deliberately do not match:
// their order can be load-bearing and they are never merged.
var importLine = regexp.MustCompile(
	`^import\s+(type\s+)?(?:([\w$]+)\s*,\s*)?(?:\{([^}]*)\}|(\*\s+as\s+[\w$]+))?\s*from\s*['"]([^'"]+)['"];?\s*$`)

// ImportFixer merges duplicate import declarations. It is driven by
// import/no-duplicates findings but always processes the whole file: the
// merge is idempotent and cheaper than per-line bookkeeping.
type ImportFixer struct{}

func (f *ImportFixer) Category() domain.Category { return domain.CategoryImportHygiene }
func (f *ImportFixer) Name() string              { return "merge-imports" }

func (f *ImportFixer) Apply(content string, _ []domain.Issue, _ *domain.Config) (string, int, error) {
	merged, removed := MergeDuplicateImports(content)
	return merged, removed, nil
}

type importDecl struct {
	lineIdx   int
	typeOnly  bool
	defName   string
	named     []string
	namespace string
	module    string
	merged    bool
}

// MergeDuplicateImports collapses repeated imports of the same module into a
// single declaration whose named-import set is the union of the originals.
// The merged import keeps the position of the first occurrence. It returns
// the rewritten content and the number of import lines removed.
//
// Type-only imports are tracked separately from value imports and never
// merged across the type/value boundary. Namespace imports (* as x) are
// left untouched, as are declarations whose default bindings disagree.
func MergeDuplicateImports(content string) (string, int) {
	lines := strings.Split(content, "\n")

	type key struct {
		module   string
		typeOnly bool
	}

	first := make(map[key]*importDecl)
	var removed []int // line indexes to drop

	for i, line := range lines {
		m := importLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		decl := &importDecl{
			lineIdx:   i,
			typeOnly:  m[1] != "",
			defName:   m[2],
			named:     splitNamed(m[3]),
			namespace: m[4],
			module:    m[5],
		}

		if decl.namespace != "" {
			// Namespace imports cannot be merged with named sets.
			continue
		}

		k := key{module: decl.module, typeOnly: decl.typeOnly}
		prev, ok := first[k]
		if !ok {
			first[k] = decl
			continue
		}

		if prev.defName != "" && decl.defName != "" && prev.defName != decl.defName {
			// Two distinct default bindings cannot share a declaration;
			// merging would delete one of them.
			continue
		}

		// Merge this declaration into the first one.
		prev.named = unionNamed(prev.named, decl.named)
		if prev.defName == "" {
			prev.defName = decl.defName
		}
		prev.merged = true
		removed = append(removed, i)
	}

	if len(removed) == 0 {
		return content, 0
	}

	// Rewrite only the first-occurrence lines that absorbed a merge;
	// imports without duplicates keep their original formatting.
	for _, decl := range first {
		if decl.merged {
			lines[decl.lineIdx] = renderImport(decl)
		}
	}

	// Drop merged-away lines from the bottom up.
	slices.Sort(removed)
	for i := len(removed) - 1; i >= 0; i-- {
		lines = slices.Delete(lines, removed[i], removed[i]+1)
	}

	return strings.Join(lines, "\n"), len(removed)
}

// splitNamed splits the inside of an import brace list, preserving
// "orig as alias" clauses verbatim.
func splitNamed(clause string) []string {
	if strings.TrimSpace(clause) == "" {
		return nil
	}
	parts := strings.Split(clause, ",")
	named := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			named = append(named, trimmed)
		}
	}
	return named
}

// unionNamed merges two named-import lists, dropping duplicates while
// preserving first-seen order.
func unionNamed(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	union := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				union = append(union, name)
			}
		}
	}
	return union
}

// renderImport prints a normalized import declaration.
func renderImport(decl *importDecl) string {
	var sb strings.Builder
	sb.WriteString("import ")
	if decl.typeOnly {
		sb.WriteString("type ")
	}
	if decl.defName != "" {
		sb.WriteString(decl.defName)
		if len(decl.named) > 0 {
			sb.WriteString(", ")
		}
	}
	if len(decl.named) > 0 {
		sb.WriteString("{ ")
		sb.WriteString(strings.Join(decl.named, ", "))
		sb.WriteString(" }")
	}
	sb.WriteString(" from '")
	sb.WriteString(decl.module)
	sb.WriteString("';")
	return sb.String()
}
