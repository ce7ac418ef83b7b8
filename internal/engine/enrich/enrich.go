// Package enrich fills empty nutritionalProfile literals in ingredient data
// files from upstream nutrition databases.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/core/ports"
	"go.trai.ch/zerr"
)

// checkpointName is the job name under which enrichment progress persists.
const checkpointName = "enrich"

// Options tunes one enrichment run.
type Options struct {
	// DryRun reports what would be enriched without fetching or writing.
	DryRun bool
	// Limit caps the number of ingredients fetched this run; 0 means all.
	Limit int
	// Force re-fetches ingredients even when the checkpoint or the data
	// file says they are already enriched.
	Force bool
	// Names restricts the run to the given ingredients, matched
	// case-insensitively; empty means all discovered ingredients.
	Names []string
}

// ItemStatus classifies the outcome for one ingredient.
type ItemStatus string

const (
	// ItemEnriched indicates the profile was fetched and written.
	ItemEnriched ItemStatus = "enriched"
	// ItemSkipped indicates the ingredient was already enriched.
	ItemSkipped ItemStatus = "skipped"
	// ItemNotFound indicates no upstream source had a match.
	ItemNotFound ItemStatus = "not-found"
	// ItemFailed indicates lookup or file rewrite failed.
	ItemFailed ItemStatus = "failed"
)

// ItemResult records the outcome for one ingredient.
type ItemResult struct {
	Ingredient string     `json:"ingredient"`
	File       string     `json:"file"`
	Status     ItemStatus `json:"status"`
	Source     string     `json:"source,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Summary aggregates an enrichment run.
type Summary struct {
	Total      int          `json:"total"`
	Enriched   int          `json:"enriched"`
	Skipped    int          `json:"skipped"`
	NotFound   int          `json:"notFound"`
	Failed     int          `json:"failed"`
	DryRun     bool         `json:"dryRun"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Items      []ItemResult `json:"items"`
}

// Engine runs nutrition enrichment over the workspace's ingredient files.
type Engine struct {
	logger   ports.Logger
	sources  []ports.NutrientSource
	progress ports.ProgressStore
	tracer   ports.Tracer
}

// NewEngine creates an enrichment engine. Sources are consulted in order;
// the first hit wins.
func NewEngine(
	logger ports.Logger,
	sources []ports.NutrientSource,
	progress ports.ProgressStore,
	tracer ports.Tracer,
) *Engine {
	return &Engine{
		logger:   logger,
		sources:  sources,
		progress: progress,
		tracer:   tracer,
	}
}

// Discover walks the configured ingredient directories and returns every
// declared ingredient, sorted by file then name.
func (e *Engine) Discover(cfg *domain.Config) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient

	for _, dir := range cfg.Nutrition.IngredientDirs {
		root := filepath.Join(cfg.Root, dir)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".ts") {
				return nil
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "file", path)
			}
			rel, _ := filepath.Rel(cfg.Root, path)
			for _, name := range ScanIngredients(string(raw)) {
				ingredients = append(ingredients, domain.Ingredient{Name: name, File: rel})
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
	}

	sort.Slice(ingredients, func(i, j int) bool {
		if ingredients[i].File != ingredients[j].File {
			return ingredients[i].File < ingredients[j].File
		}
		return ingredients[i].Name < ingredients[j].Name
	})

	return ingredients, nil
}

// Run enriches every discovered ingredient sequentially, spacing upstream
// requests by the configured delay. Individual failures are recorded and
// skipped; the run only aborts on context cancellation.
func (e *Engine) Run(ctx context.Context, cfg *domain.Config, opts Options) (*Summary, error) {
	ctx, span := e.tracer.Start(ctx, "enrich")
	defer span.End()

	ingredients, err := e.Discover(cfg)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	ingredients = filterNames(ingredients, opts.Names)
	if len(ingredients) == 0 {
		return nil, domain.ErrNoIngredients
	}

	checkpoint := e.loadCheckpoint(cfg, opts)
	summary := &Summary{
		Total:     len(ingredients),
		DryRun:    opts.DryRun,
		StartedAt: time.Now().UTC(),
	}

	fetched := 0
	for _, ing := range ingredients {
		if err := ctx.Err(); err != nil {
			summary.FinishedAt = time.Now().UTC()
			return summary, err
		}
		if opts.Limit > 0 && fetched >= opts.Limit {
			break
		}

		res := e.processIngredient(ctx, cfg, opts, checkpoint, ing, &fetched)
		summary.Items = append(summary.Items, res)
		switch res.Status {
		case ItemEnriched:
			summary.Enriched++
		case ItemSkipped:
			summary.Skipped++
		case ItemNotFound:
			summary.NotFound++
		case ItemFailed:
			summary.Failed++
		}
	}

	if !opts.DryRun {
		if err := e.progress.Save(cfg.Root, checkpoint); err != nil {
			e.logger.Warn("enrichment checkpoint save failed")
		}
	}

	summary.FinishedAt = time.Now().UTC()
	span.SetAttribute("enriched", summary.Enriched)
	return summary, nil
}

func filterNames(ingredients []domain.Ingredient, names []string) []domain.Ingredient {
	if len(names) == 0 {
		return ingredients
	}
	want := make(map[string]bool, len(names))
	for _, name := range names {
		want[strings.ToLower(name)] = true
	}
	filtered := ingredients[:0]
	for _, ing := range ingredients {
		if want[strings.ToLower(ing.Name)] {
			filtered = append(filtered, ing)
		}
	}
	return filtered
}

func (e *Engine) loadCheckpoint(cfg *domain.Config, opts Options) *domain.Progress {
	if opts.Force {
		return domain.NewProgress(checkpointName)
	}
	checkpoint, err := e.progress.Load(cfg.Root, checkpointName)
	if err != nil || checkpoint == nil {
		if err != nil {
			e.logger.Warn("enrichment checkpoint unreadable, starting fresh")
		}
		return domain.NewProgress(checkpointName)
	}
	return checkpoint
}

func (e *Engine) processIngredient(
	ctx context.Context,
	cfg *domain.Config,
	opts Options,
	checkpoint *domain.Progress,
	ing domain.Ingredient,
	fetched *int,
) ItemResult {
	res := ItemResult{Ingredient: ing.Name, File: ing.File}

	if !opts.Force && checkpoint.IngredientDone(ing.Name) {
		res.Status = ItemSkipped
		return res
	}

	path := filepath.Join(cfg.Root, ing.File)
	raw, err := os.ReadFile(path)
	if err != nil {
		res.Status = ItemFailed
		res.Error = err.Error()
		return res
	}
	content := string(raw)

	if !opts.Force && HasProfileData(content, ing.Name) {
		checkpoint.MarkIngredient(ing.Name, domain.NutritionProfile{})
		res.Status = ItemSkipped
		return res
	}

	if opts.DryRun {
		res.Status = ItemEnriched
		e.logger.Info(fmt.Sprintf("would enrich %s (%s)", ing.Name, ing.File))
		return res
	}

	// Space upstream requests; the first request goes out immediately.
	if *fetched > 0 && cfg.Nutrition.RequestDelay > 0 {
		select {
		case <-time.After(cfg.Nutrition.RequestDelay):
		case <-ctx.Done():
			res.Status = ItemFailed
			res.Error = ctx.Err().Error()
			return res
		}
	}
	*fetched++

	profile, source, err := e.lookup(ctx, ing.Name)
	if err != nil {
		if errors.Is(err, domain.ErrIngredientNotFound) {
			res.Status = ItemNotFound
			e.logger.Warn(fmt.Sprintf("no nutrition data for %s", ing.Name))
		} else {
			res.Status = ItemFailed
			res.Error = err.Error()
			e.logger.Error(err)
		}
		return res
	}
	res.Source = source

	rewritten, err := RewriteProfile(content, ing.Name, *profile)
	if err != nil {
		res.Status = ItemFailed
		res.Error = err.Error()
		return res
	}
	if err := os.WriteFile(path, []byte(rewritten), domain.FilePerm); err != nil {
		res.Status = ItemFailed
		res.Error = err.Error()
		return res
	}

	checkpoint.MarkIngredient(ing.Name, *profile)
	res.Status = ItemEnriched
	e.logger.Info(fmt.Sprintf("enriched %s from %s", ing.Name, source))
	return res
}

// lookup tries each source in order, falling through on not-found.
func (e *Engine) lookup(ctx context.Context, ingredient string) (*domain.NutritionProfile, string, error) {
	var lastErr error
	for _, source := range e.sources {
		profile, err := source.Lookup(ctx, ingredient)
		if err == nil {
			profile.Source = source.Name()
			return profile, source.Name(), nil
		}
		if errors.Is(err, domain.ErrIngredientNotFound) {
			lastErr = err
			continue
		}
		return nil, "", err
	}
	if lastErr == nil {
		lastErr = domain.ErrIngredientNotFound
	}
	return nil, "", lastErr
}
