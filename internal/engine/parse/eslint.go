package parse

import (
	"bytes"
	"encoding/json"

	"go.alchm.dev/scullery/internal/core/domain"
)

// eslintFile mirrors one entry of `eslint --format json` output.
type eslintFile struct {
	FilePath string          `json:"filePath"`
	Messages []eslintMessage `json:"messages"`
}

type eslintMessage struct {
	RuleID   string `json:"ruleId"`
	Severity int    `json:"severity"` // 1 = warning, 2 = error
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// ESLint parses `eslint --format json` output into issues.
//
// ESLint occasionally prefixes the JSON with npm/yarn banner lines; parsing
// starts at the first '[' and unparsable output yields no issues rather
// than an error, consistent with the line parser's skip semantics.
func ESLint(output []byte) []domain.Issue {
	start := bytes.IndexByte(output, '[')
	if start < 0 {
		return nil
	}

	var files []eslintFile
	if err := json.Unmarshal(output[start:], &files); err != nil {
		return nil
	}

	var issues []domain.Issue
	for _, file := range files {
		path := domain.NewInternedString(file.FilePath)
		for _, msg := range file.Messages {
			if msg.RuleID == "" {
				// Fatal parse errors carry no rule; the compiler pass
				// reports those with more precision.
				continue
			}
			severity := domain.SeverityWarning
			if msg.Severity >= 2 {
				severity = domain.SeverityError
			}
			issues = append(issues, domain.Issue{
				File:     path,
				Line:     msg.Line,
				Column:   msg.Column,
				Code:     msg.RuleID,
				Message:  msg.Message,
				Severity: severity,
				Source:   domain.SourceESLint,
			})
		}
	}

	return issues
}
