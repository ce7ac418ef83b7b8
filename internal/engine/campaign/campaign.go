// Package campaign orchestrates batched lint-fix runs: analyze, batch,
// fix, validate, and roll back on regression.
package campaign

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/core/ports"
	"go.alchm.dev/scullery/internal/engine/fix"
	"go.alchm.dev/scullery/internal/engine/parse"
	"go.trai.ch/zerr"
)

// Engine runs fix campaigns against a workspace.
type Engine struct {
	logger   ports.Logger
	executor ports.Executor
	progress ports.ProgressStore
	backups  ports.BackupStore
	tracer   ports.Tracer
}

// NewEngine creates a campaign engine with the given dependencies.
func NewEngine(
	logger ports.Logger,
	executor ports.Executor,
	progress ports.ProgressStore,
	backups ports.BackupStore,
	tracer ports.Tracer,
) *Engine {
	return &Engine{
		logger:   logger,
		executor: executor,
		progress: progress,
		backups:  backups,
		tracer:   tracer,
	}
}

// Analyze runs the compiler and linter and returns the combined issue list.
// Neither tool exiting non-zero is an error; that is how they report issues.
func (e *Engine) Analyze(ctx context.Context, cfg *domain.Config) ([]domain.Issue, error) {
	ctx, span := e.tracer.Start(ctx, "analyze")
	defer span.End()

	var issues []domain.Issue

	if len(cfg.TypeScriptCommand) > 0 {
		res, err := e.executor.Execute(ctx, cfg.TypeScriptCommand, ports.ExecOptions{
			WorkingDir: cfg.Root,
			Stdout:     span,
		})
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		issues = append(issues, parse.TypeScript(res.Stdout)...)
	}

	if len(cfg.LintCommand) > 0 {
		res, err := e.executor.Execute(ctx, cfg.LintCommand, ports.ExecOptions{
			WorkingDir: cfg.Root,
		})
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		issues = append(issues, parse.ESLint(res.Stdout)...)
	}

	span.SetAttribute("issues.total", len(issues))
	return issues, nil
}

// Status returns the persisted checkpoint for a campaign, or nil when the
// campaign has no recorded progress.
func (e *Engine) Status(cfg *domain.Config, name string) (*domain.Progress, error) {
	return e.progress.Load(cfg.Root, name)
}

// Reset discards a campaign's checkpoint so the next run starts fresh.
func (e *Engine) Reset(cfg *domain.Config, name string) error {
	return e.progress.Delete(cfg.Root, name)
}

// Run executes a campaign: analyze, plan batches, then fix-validate-commit
// each batch in sequence. Batches whose validation regresses are restored
// from backup and marked rolled back; the run continues with the next batch.
func (e *Engine) Run(ctx context.Context, cfg *domain.Config, spec domain.CampaignSpec) (*domain.RunSummary, error) {
	summary := &domain.RunSummary{
		RunID:      uuid.NewString(),
		Campaign:   spec.Name,
		Categories: spec.Categories,
		Status:     domain.CampaignRunning,
		DryRun:     spec.DryRun,
		StartedAt:  time.Now().UTC(),
	}

	issues, err := e.Analyze(ctx, cfg)
	if err != nil {
		summary.Status = domain.CampaignFailed
		summary.FinishedAt = time.Now().UTC()
		return summary, zerr.Wrap(err, domain.ErrCampaignFailed.Error())
	}

	targeted := domain.FilterCategories(issues, spec.Categories)
	checkpoint := e.loadCheckpoint(cfg, spec)

	batches := planBatches(targeted, spec, checkpoint)
	e.emitPlan(ctx, spec, batches)

	if len(batches) == 0 {
		e.logger.Info("nothing to fix")
		summary.Status = domain.CampaignCompleted
		summary.FinishedAt = time.Now().UTC()
		return summary, nil
	}

	for _, batch := range batches {
		res := e.processBatch(ctx, cfg, spec, checkpoint, summary.RunID, batch)
		summary.Batches = append(summary.Batches, res)

		if res.Status == domain.BatchFailed {
			summary.Status = domain.CampaignFailed
			summary.FinishedAt = time.Now().UTC()
			return summary, zerr.With(domain.ErrCampaignFailed, "batch", res.Number)
		}
	}

	summary.Status = domain.CampaignCompleted
	summary.FinishedAt = time.Now().UTC()
	return summary, nil
}

// loadCheckpoint returns the campaign's checkpoint, or a fresh one. Dry runs
// read the checkpoint for skip decisions but never write it back.
func (e *Engine) loadCheckpoint(cfg *domain.Config, spec domain.CampaignSpec) *domain.Progress {
	if spec.NoCheckpoint {
		return domain.NewProgress(spec.Name)
	}
	checkpoint, err := e.progress.Load(cfg.Root, spec.Name)
	if err != nil || checkpoint == nil {
		if err != nil {
			e.logger.Warn("checkpoint unreadable, starting fresh")
		}
		return domain.NewProgress(spec.Name)
	}
	return checkpoint
}

func (e *Engine) emitPlan(ctx context.Context, spec domain.CampaignSpec, batches []domain.Batch) {
	steps := make([]string, 0, len(batches)+1)
	steps = append(steps, "analyze")
	for _, b := range batches {
		steps = append(steps, batchStepName(b))
	}

	categories := make([]string, len(spec.Categories))
	for i, cat := range spec.Categories {
		categories[i] = string(cat)
	}

	e.tracer.EmitPlan(ctx, steps, categories)
}

func batchStepName(b domain.Batch) string {
	return fmt.Sprintf("batch %d (%d files)", b.Number, len(b.Files))
}

// planBatches groups targeted issues by file, orders files by descending
// priority, drops files already in the checkpoint, applies the MaxFiles cap,
// and slices the remainder into fixed-size batches.
func planBatches(issues []domain.Issue, spec domain.CampaignSpec, checkpoint *domain.Progress) []domain.Batch {
	byFile := domain.GroupByFile(issues)

	type fileWork struct {
		file     domain.InternedString
		issues   []domain.Issue
		priority int
	}

	work := make([]fileWork, 0, len(byFile))
	for file, fileIssues := range byFile {
		if checkpoint.FileDone(file.String()) {
			continue
		}
		priority := 0
		for _, issue := range fileIssues {
			priority += issue.Priority()
		}
		work = append(work, fileWork{file: file, issues: fileIssues, priority: priority})
	}

	// Highest-priority files first; ties resolved by path for stable plans.
	sort.Slice(work, func(i, j int) bool {
		if work[i].priority != work[j].priority {
			return work[i].priority > work[j].priority
		}
		return work[i].file.String() < work[j].file.String()
	})

	if spec.MaxFiles > 0 && len(work) > spec.MaxFiles {
		work = work[:spec.MaxFiles]
	}

	batchSize := spec.BatchSize
	if batchSize <= 0 {
		batchSize = domain.DefaultBatchSize
	}

	var batches []domain.Batch
	for start := 0; start < len(work); start += batchSize {
		end := min(start+batchSize, len(work))
		batch := domain.Batch{Number: len(batches) + 1}
		for _, w := range work[start:end] {
			batch.Files = append(batch.Files, w.file)
			batch.Issues = append(batch.Issues, w.issues...)
		}
		batches = append(batches, batch)
	}

	return batches
}

// processBatch applies fixes to one batch of files and validates the result.
// Failures inside a batch roll the batch back rather than failing the run;
// only I/O errors that leave the workspace in doubt escalate to BatchFailed.
func (e *Engine) processBatch(
	ctx context.Context,
	cfg *domain.Config,
	spec domain.CampaignSpec,
	checkpoint *domain.Progress,
	runID string,
	batch domain.Batch,
) domain.BatchResult {
	_, span := e.tracer.Start(ctx, batchStepName(batch))
	defer span.End()

	started := time.Now()
	res := domain.BatchResult{
		Number:       batch.Number,
		Status:       domain.BatchCompleted,
		Files:        filesAsStrings(batch.Files),
		IssuesBefore: len(batch.Issues),
	}

	if spec.DryRun {
		res.Status = domain.BatchSkipped
		res.IssuesAfter = res.IssuesBefore
		res.Duration = time.Since(started)
		e.logger.Info(fmt.Sprintf("batch %d: %d issues in %d files (dry run)",
			batch.Number, len(batch.Issues), len(batch.Files)))
		span.SetAttribute("dry_run", true)
		return res
	}

	if err := e.backups.Backup(cfg.Root, runID, res.Files); err != nil {
		span.RecordError(err)
		return failBatch(res, started, err)
	}

	changed, err := e.applyFixes(cfg, batch)
	if err != nil {
		span.RecordError(err)
		e.rollback(cfg, runID, res.Files)
		res.Status = domain.BatchRolledBack
		res.IssuesAfter = res.IssuesBefore
		res.Duration = time.Since(started)
		res.Error = err.Error()
		return res
	}
	res.FilesChanged = changed

	if changed == 0 {
		res.Status = domain.BatchSkipped
		res.IssuesAfter = res.IssuesBefore
		res.Duration = time.Since(started)
		e.removeBackup(cfg, runID)
		return res
	}

	after, err := e.validate(ctx, cfg, spec, span, batch)
	if err != nil {
		span.RecordError(err)
		return failBatch(res, started, err)
	}
	res.IssuesAfter = after

	if after > res.IssuesBefore {
		e.logger.Warn(fmt.Sprintf("batch %d regressed (%d -> %d issues), rolling back",
			batch.Number, res.IssuesBefore, after))
		e.rollback(cfg, runID, res.Files)
		res.Status = domain.BatchRolledBack
		res.IssuesAfter = res.IssuesBefore
		res.Duration = time.Since(started)
		return res
	}

	for _, file := range res.Files {
		checkpoint.MarkFile(file)
	}
	checkpoint.IssuesFixed += res.IssuesBefore - after
	if !spec.NoCheckpoint {
		if err := e.progress.Save(cfg.Root, checkpoint); err != nil {
			e.logger.Warn("checkpoint save failed, progress will be recomputed next run")
		}
	}

	e.removeBackup(cfg, runID)
	res.Duration = time.Since(started)
	e.logger.Info(fmt.Sprintf("batch %d: fixed %d of %d issues in %d files",
		batch.Number, res.IssuesBefore-after, res.IssuesBefore, len(batch.Files)))
	return res
}

// applyFixes rewrites each file in the batch through the category fixers,
// guarded by the delimiter-balance check. It returns the number of files
// whose content changed on disk.
func (e *Engine) applyFixes(cfg *domain.Config, batch domain.Batch) (int, error) {
	byFile := domain.GroupByFile(batch.Issues)
	changed := 0

	for file, fileIssues := range byFile {
		path := absPath(cfg.Root, file.String())
		raw, err := os.ReadFile(path)
		if err != nil {
			return changed, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "file", file.String())
		}

		content := string(raw)
		rewritten, err := applyFileFixes(content, fileIssues, cfg)
		if err != nil {
			return changed, zerr.With(err, "file", file.String())
		}

		if rewritten == content {
			continue
		}
		if err := os.WriteFile(path, []byte(rewritten), domain.FilePerm); err != nil {
			return changed, zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "file", file.String())
		}
		changed++
	}

	return changed, nil
}

// applyFileFixes runs every applicable fixer over one file's content.
// A fixer whose edit fails the balance guard is discarded; the guard error
// propagates so the batch rolls back instead of committing a suspect edit.
func applyFileFixes(content string, issues []domain.Issue, cfg *domain.Config) (string, error) {
	byCategory := domain.GroupByCategory(issues)

	for cat, catIssues := range byCategory {
		fixer, ok := fix.ForCategory(cat)
		if !ok {
			continue
		}
		rewritten, fixed, err := fixer.Apply(content, catIssues, cfg)
		if err != nil {
			return content, err
		}
		if fixed == 0 || rewritten == content {
			continue
		}
		if err := fix.CheckEdit(content, rewritten); err != nil {
			return content, err
		}
		content = rewritten
	}

	return content, nil
}

// validate re-runs the validation command and counts remaining targeted
// issues in the batch's files.
func (e *Engine) validate(
	ctx context.Context,
	cfg *domain.Config,
	spec domain.CampaignSpec,
	span ports.Span,
	batch domain.Batch,
) (int, error) {
	command := spec.Validate
	if len(command) == 0 {
		command = cfg.TypeScriptCommand
	}
	if len(command) == 0 {
		return 0, nil
	}

	res, err := e.executor.Execute(ctx, command, ports.ExecOptions{
		WorkingDir: cfg.Root,
		Stdout:     span,
	})
	if err != nil {
		return 0, err
	}

	inBatch := make(map[domain.InternedString]bool, len(batch.Files))
	for _, file := range batch.Files {
		inBatch[file] = true
	}

	count := 0
	for _, issue := range parse.TypeScript(res.Stdout) {
		if !inBatch[issue.File] {
			continue
		}
		// Any syntax error in a touched file counts as a regression even
		// when the targeted categories exclude syntax.
		if issue.Category() == domain.CategorySyntax {
			return len(batch.Issues) + 1, nil
		}
		count++
	}

	return count, nil
}

func (e *Engine) rollback(cfg *domain.Config, runID string, files []string) {
	if err := e.backups.Restore(cfg.Root, runID, files); err != nil {
		// A failed restore is the worst case; surface it loudly but keep
		// the backup set on disk for manual recovery.
		e.logger.Error(err)
		return
	}
	e.removeBackup(cfg, runID)
}

func (e *Engine) removeBackup(cfg *domain.Config, runID string) {
	if err := e.backups.Remove(cfg.Root, runID); err != nil {
		e.logger.Warn("backup cleanup failed")
	}
}

func failBatch(res domain.BatchResult, started time.Time, err error) domain.BatchResult {
	res.Status = domain.BatchFailed
	res.IssuesAfter = res.IssuesBefore
	res.Duration = time.Since(started)
	res.Error = err.Error()
	return res
}

func filesAsStrings(files []domain.InternedString) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.String()
	}
	return out
}

func absPath(root, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(root, file)
}
