// Package parse turns raw compiler and linter output into structured issues.
package parse

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"

	"go.alchm.dev/scullery/internal/core/domain"
)

// tscLine matches the fixed positional diagnostic format emitted by
// tsc --noEmit --pretty false:
//
//	path(line,col): error TS2322: Type 'string' is not assignable ...
var tscLine = regexp.MustCompile(`^(.+?)\((\d+),(\d+)\): (error|warning) (TS\d+): (.+)$`)

// TypeScript parses tsc output into issues.
//
// Lines that do not match the diagnostic format, including the multi-line
// elaboration tsc indents under a diagnostic, are skipped silently.
func TypeScript(output []byte) []domain.Issue {
	var issues []domain.Issue

	scanner := bufio.NewScanner(bytes.NewReader(output))
	// Compiler messages can be long; the default 64K token cap is enough,
	// but give the scanner room to start small.
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

	for scanner.Scan() {
		if issue, ok := typeScriptLine(scanner.Text()); ok {
			issues = append(issues, issue)
		}
	}

	return issues
}

// typeScriptLine parses a single diagnostic line.
func typeScriptLine(line string) (domain.Issue, bool) {
	m := tscLine.FindStringSubmatch(line)
	if m == nil {
		return domain.Issue{}, false
	}

	// The regex guarantees the numeric captures parse.
	lineNo, _ := strconv.Atoi(m[2])
	column, _ := strconv.Atoi(m[3])

	return domain.Issue{
		File:     domain.NewInternedString(m[1]),
		Line:     lineNo,
		Column:   column,
		Severity: domain.Severity(m[4]),
		Code:     m[5],
		Message:  m[6],
		Source:   domain.SourceTypeScript,
	}, true
}
