package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.alchm.dev/scullery/internal/adapters/watcher"
	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/engine/fix"
	"go.alchm.dev/scullery/internal/report"
	"go.trai.ch/zerr"
)

// MigrationSummary is the outcome of a whole-tree text migration.
type MigrationSummary struct {
	FilesScanned int
	FilesChanged int
	Replacements int
	DryRun       bool
	ReportPath   string
}

// MigrateConsole rewrites console.* calls to the structured logger,
// inserting the logger import where needed. Paths restrict the migration
// to the given files or directories; empty means the whole source tree.
func (a *App) MigrateConsole(_ context.Context, dryRun bool, paths []string) (*MigrationSummary, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	files, err := a.targetFiles(cfg, paths)
	if err != nil {
		return nil, err
	}

	summary := &MigrationSummary{FilesScanned: len(files), DryRun: dryRun}
	var migrations []report.ConsoleMigration

	for _, path := range files {
		raw, err := os.ReadFile(path) //nolint:gosec // Paths come from the workspace walk
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrFileReadFailed.Error())
		}

		migrated, replaced := fix.MigrateConsoleStatements(string(raw), cfg)
		if replaced == 0 {
			continue
		}

		summary.FilesChanged++
		summary.Replacements += replaced
		migrations = append(migrations, report.ConsoleMigration{
			File:         relPath(cfg.Root, path),
			Replacements: replaced,
		})

		if !dryRun {
			if err := os.WriteFile(path, []byte(migrated), domain.FilePerm); err != nil {
				return nil, zerr.Wrap(err, domain.ErrFileWriteFailed.Error())
			}
		}
	}

	if !dryRun && summary.Replacements > 0 {
		data := report.ConsoleMarkdown(migrations, time.Now().UTC())
		name := fmt.Sprintf("console-migration-%s.md", time.Now().UTC().Format("20060102T150405Z"))
		if path, err := report.Write(cfg, name, data); err != nil {
			a.logger.Warn("failed to write migration report: " + err.Error())
		} else {
			summary.ReportPath = path
		}
	}

	a.logger.Info(fmt.Sprintf("console migration: %d replacement(s) in %d of %d file(s)",
		summary.Replacements, summary.FilesChanged, summary.FilesScanned))

	return summary, nil
}

// MergeImports merges duplicate import declarations. Paths restrict the
// merge to the given files or directories; empty means the whole source
// tree.
func (a *App) MergeImports(_ context.Context, dryRun bool, paths []string) (*MigrationSummary, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	files, err := a.targetFiles(cfg, paths)
	if err != nil {
		return nil, err
	}

	summary := &MigrationSummary{FilesScanned: len(files), DryRun: dryRun}

	for _, path := range files {
		raw, err := os.ReadFile(path) //nolint:gosec // Paths come from the workspace walk
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrFileReadFailed.Error())
		}

		merged, count := fix.MergeDuplicateImports(string(raw))
		if count == 0 {
			continue
		}

		summary.FilesChanged++
		summary.Replacements += count

		if !dryRun {
			if err := os.WriteFile(path, []byte(merged), domain.FilePerm); err != nil {
				return nil, zerr.Wrap(err, domain.ErrFileWriteFailed.Error())
			}
		}
	}

	a.logger.Info(fmt.Sprintf("import merge: %d import(s) merged in %d of %d file(s)",
		summary.Replacements, summary.FilesChanged, summary.FilesScanned))

	return summary, nil
}

// Watch re-analyzes the workspace whenever TypeScript sources change,
// logging the issue count after each save burst. Categories narrow the
// reported issues.
func (a *App) Watch(ctx context.Context, categories []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if _, err := parseCategories(categories); err != nil {
		return err
	}

	if err := a.watcher.Start(ctx, cfg.Root); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}
	defer func() { _ = a.watcher.Stop() }()

	analyze := func(paths []string) {
		a.logger.Info(fmt.Sprintf("%d file(s) changed, re-analyzing", len(paths)))

		issues, err := a.Analyze(ctx, categories, "json")
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				a.logger.Error(err)
			}
			return
		}

		byCategory := domain.GroupByCategory(issues)
		var parts []string
		for _, cat := range domain.Categories() {
			if n := len(byCategory[cat]); n > 0 {
				parts = append(parts, fmt.Sprintf("%s: %d", cat, n))
			}
		}
		if len(parts) == 0 {
			a.logger.Info("workspace is clean")
			return
		}
		a.logger.Info(fmt.Sprintf("%d issue(s) (%s)", len(issues), strings.Join(parts, ", ")))
	}

	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, analyze)
	defer debouncer.Flush()

	a.logger.Info("watching " + cfg.Root)

	for event := range a.watcher.Events() {
		if isTypeScriptFile(event.Path) {
			debouncer.Add(event.Path)
		}
	}

	return ctx.Err()
}

func isTypeScriptFile(path string) bool {
	if strings.HasSuffix(path, ".d.ts") {
		return false
	}
	return strings.HasSuffix(path, ".ts") || strings.HasSuffix(path, ".tsx")
}

// CleanOptions selects which run metadata to remove.
type CleanOptions struct {
	Checkpoints bool
	Backups     bool
	Cache       bool
	Reports     bool
}

// Clean removes scullery's run metadata from the workspace.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	var errs error
	remove := func(rel, name string) {
		path := filepath.Join(cfg.Root, rel)
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if opts.Checkpoints {
		remove(domain.DefaultCheckpointPath(), "checkpoints")
	}
	if opts.Backups {
		remove(domain.DefaultBackupPath(), "backups")
	}
	if opts.Cache {
		remove(domain.DefaultNutritionCachePath(), "nutrition cache")
	}
	if opts.Reports {
		remove(domain.DefaultReportPath(), "reports")
	}

	return errs
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
