package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.alchm.dev/scullery/internal/adapters/nutrition"
	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/core/ports"
	"go.alchm.dev/scullery/internal/engine/enrich"
	"go.alchm.dev/scullery/internal/report"
)

// EnrichOptions configures a nutrition enrichment run.
type EnrichOptions struct {
	DryRun bool
	Limit  int
	Force  bool
	// Ingredients restricts the run to the named ingredients; empty means
	// every un-enriched ingredient.
	Ingredients []string
	// Delay overrides the configured spacing between upstream requests.
	Delay      time.Duration
	OutputMode string
	// Report writes the run summary as JSON under .scullery/reports.
	Report bool
}

// Enrich fetches nutrition profiles for un-enriched ingredients and writes
// them into the TypeScript data files.
func (a *App) Enrich(ctx context.Context, opts EnrichOptions) (*enrich.Summary, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if opts.Delay > 0 {
		cfg.Nutrition.RequestDelay = opts.Delay
	}

	sources := a.nutrientSources(cfg)
	if len(sources) == 0 {
		return nil, domain.ErrMissingAPIKey
	}

	renderer, tracer, cleanup := a.rendering(ctx, opts.OutputMode)
	defer cleanup()

	engine := enrich.NewEngine(a.logger, sources, a.progress, tracer)

	var summary *enrich.Summary
	runErr := a.withRenderer(ctx, renderer, func(ctx context.Context) error {
		var err error
		summary, err = engine.Run(ctx, cfg, enrich.Options{
			DryRun: opts.DryRun,
			Limit:  opts.Limit,
			Force:  opts.Force,
			Names:  opts.Ingredients,
		})
		return err
	})

	if summary != nil && opts.Report {
		a.writeEnrichmentReport(cfg, summary)
	}

	return summary, runErr
}

func (a *App) writeEnrichmentReport(cfg *domain.Config, summary *enrich.Summary) {
	data, err := report.EnrichmentJSON(summary)
	if err != nil {
		a.logger.Warn("failed to encode enrichment report: " + err.Error())
		return
	}

	name := fmt.Sprintf("enrichment-%s.json", summary.StartedAt.UTC().Format("20060102T150405Z"))
	path, err := report.Write(cfg, name, data)
	if err != nil {
		a.logger.Warn("failed to write enrichment report: " + err.Error())
		return
	}
	a.logger.Info("enrichment report written to " + path)
}

// nutrientSources builds the configured upstream sources, each wrapped in
// the on-disk cache. FDC is authoritative; Spoonacular fills its gaps.
func (a *App) nutrientSources(cfg *domain.Config) []ports.NutrientSource {
	cacheDir := filepath.Join(cfg.Root, domain.DefaultNutritionCachePath())

	var sources []ports.NutrientSource
	if cfg.Nutrition.FDCAPIKey != "" {
		fdc := nutrition.NewFDCSource(cfg.Nutrition, a.logger)
		sources = append(sources, nutrition.NewCachedSource(fdc, cacheDir, cfg.Nutrition.CacheTTL))
	}
	if cfg.Nutrition.SpoonacularAPIKey != "" {
		spoon := nutrition.NewSpoonacularSource(cfg.Nutrition, a.logger)
		sources = append(sources, nutrition.NewCachedSource(spoon, cacheDir, cfg.Nutrition.CacheTTL))
	}
	return sources
}
