// Package report renders campaign and migration outcomes as Markdown and
// JSON artifacts under the workspace report directory.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.alchm.dev/scullery/internal/core/domain"
	"go.trai.ch/zerr"
)

// ConsoleMigration records the replacements made in one file.
type ConsoleMigration struct {
	File         string `json:"file"`
	Replacements int    `json:"replacements"`
}

// CampaignMarkdown renders a campaign run summary.
func CampaignMarkdown(s *domain.RunSummary) []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Campaign Report: %s\n\n", s.Campaign)
	fmt.Fprintf(&sb, "- Run: %s\n", s.RunID)
	fmt.Fprintf(&sb, "- Status: %s\n", s.Status)
	fmt.Fprintf(&sb, "- Categories: %s\n", joinCategories(s.Categories))
	if s.DryRun {
		sb.WriteString("- Mode: dry run\n")
	}
	fmt.Fprintf(&sb, "- Started: %s\n", s.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "- Finished: %s\n", s.FinishedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "- Issues fixed: %d\n", s.TotalFixed())
	if n := s.RolledBack(); n > 0 {
		fmt.Fprintf(&sb, "- Batches rolled back: %d\n", n)
	}

	sb.WriteString("\n## Batches\n\n")
	sb.WriteString("| # | Status | Files | Before | After | Fixed |\n")
	sb.WriteString("|---|--------|-------|--------|-------|-------|\n")
	for _, b := range s.Batches {
		fmt.Fprintf(&sb, "| %d | %s | %d | %d | %d | %d |\n",
			b.Number, b.Status, len(b.Files), b.IssuesBefore, b.IssuesAfter, b.Fixed())
	}

	return []byte(sb.String())
}

// ConsoleMarkdown renders the console replacement report.
func ConsoleMarkdown(migrations []ConsoleMigration, generatedAt time.Time) []byte {
	var sb strings.Builder

	sb.WriteString("# Console Replacement Report\n\n")
	fmt.Fprintf(&sb, "Generated: %s\n\n", generatedAt.Format(time.RFC3339))

	total := 0
	touched := 0
	for _, m := range migrations {
		total += m.Replacements
		if m.Replacements > 0 {
			touched++
		}
	}
	fmt.Fprintf(&sb, "Replaced %d console statements across %d files.\n", total, touched)

	if touched > 0 {
		sb.WriteString("\n| File | Replacements |\n")
		sb.WriteString("|------|--------------|\n")
		for _, m := range migrations {
			if m.Replacements == 0 {
				continue
			}
			fmt.Fprintf(&sb, "| %s | %d |\n", m.File, m.Replacements)
		}
	}

	return []byte(sb.String())
}

// EnrichmentJSON renders any summary value as indented JSON for the report
// directory.
func EnrichmentJSON(v any) ([]byte, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode report")
	}
	return append(raw, '\n'), nil
}

// Write stores a report file under the workspace's report directory and
// returns its path.
func Write(cfg *domain.Config, name string, data []byte) (string, error) {
	dir := filepath.Join(cfg.Root, domain.DefaultReportPath())
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", zerr.Wrap(err, domain.ErrFileWriteFailed.Error())
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return "", zerr.Wrap(err, domain.ErrFileWriteFailed.Error())
	}
	return path, nil
}

func joinCategories(categories []domain.Category) string {
	if len(categories) == 0 {
		return "all"
	}
	parts := make([]string, len(categories))
	for i, c := range categories {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
