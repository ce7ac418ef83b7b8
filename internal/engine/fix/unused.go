package fix

import (
	"regexp"
	"strings"

	"go.alchm.dev/scullery/internal/core/domain"
)

// quotedIdent extracts the identifier named in diagnostics like
// "'retrogradeState' is declared but its value is never read." (TS6133) and
// "'signs' is defined but never used." (no-unused-vars).
var quotedIdent = regexp.MustCompile(`'([\w$]+)'`)

// UnusedFixer handles unused declarations. Unused named imports are pruned
// from their import clause; everything else is renamed with an underscore
// prefix, which both compilers treat as intentionally unused. Identifiers
// matching a preservation pattern are skipped entirely.
type UnusedFixer struct{}

func (f *UnusedFixer) Category() domain.Category { return domain.CategoryUnusedCode }
func (f *UnusedFixer) Name() string              { return "unused-code" }

func (f *UnusedFixer) Apply(content string, issues []domain.Issue, cfg *domain.Config) (string, int, error) {
	lines := splitLines(content)
	fixed := 0
	var drop []int

	for lineNo, lineIssues := range issuesByLine(issues) {
		idx := lineNo - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		for _, issue := range lineIssues {
			ident := identifierFromMessage(issue.Message)
			if ident == "" || cfg.Preserved(ident) {
				continue
			}
			rewritten, empty := removeOrRename(lines[idx], ident)
			if empty {
				drop = append(drop, idx)
				fixed++
				break
			}
			if rewritten != lines[idx] {
				lines[idx] = rewritten
				fixed++
			}
		}
	}

	if len(drop) > 0 {
		lines = dropLines(lines, drop)
	}

	return strings.Join(lines, "\n"), fixed, nil
}

func identifierFromMessage(message string) string {
	m := quotedIdent.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	return m[1]
}

// removeOrRename rewrites one line for an unused identifier. The second
// return value reports that the whole line became redundant and should be
// dropped (an import whose last specifier was removed).
func removeOrRename(line, ident string) (string, bool) {
	if m := importLine.FindStringSubmatch(line); m != nil {
		return pruneImport(line, m, ident)
	}

	if strings.HasPrefix(ident, "_") {
		return line, false
	}
	// Rename only the declaration occurrence on this line, not later uses.
	declared := regexp.MustCompile(`\b` + regexp.QuoteMeta(ident) + `\b`)
	return declared.ReplaceAllStringFunc(line, func(s string) string {
		return "_" + s
	}), false
}

// pruneImport removes one specifier from an import declaration.
func pruneImport(line string, m []string, ident string) (string, bool) {
	decl := &importDecl{
		typeOnly:  m[1] != "",
		defName:   m[2],
		named:     splitNamed(m[3]),
		namespace: m[4],
		module:    m[5],
	}

	if decl.namespace != "" {
		// `* as ns` imports are all-or-nothing; removing the line is the
		// only prune, and that is handled below via the empty check.
		if strings.HasSuffix(decl.namespace, ident) {
			return "", true
		}
		return line, false
	}

	changed := false
	if decl.defName == ident {
		decl.defName = ""
		changed = true
	}
	kept := decl.named[:0]
	for _, name := range decl.named {
		// A specifier is either "name" or "orig as alias"; the local
		// binding is the last token.
		fields := strings.Fields(name)
		if fields[len(fields)-1] == ident {
			changed = true
			continue
		}
		kept = append(kept, name)
	}
	decl.named = kept

	if !changed {
		return line, false
	}
	if decl.defName == "" && len(decl.named) == 0 {
		return "", true
	}
	return renderImport(decl), false
}

func dropLines(lines []string, drop []int) []string {
	dropSet := make(map[int]bool, len(drop))
	for _, idx := range drop {
		dropSet[idx] = true
	}
	kept := lines[:0]
	for i, line := range lines {
		if !dropSet[i] {
			kept = append(kept, line)
		}
	}
	return kept
}
