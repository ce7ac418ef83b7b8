// Package app implements the application layer for scullery.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.alchm.dev/scullery/internal/adapters/detector"
	"go.alchm.dev/scullery/internal/adapters/linear"
	"go.alchm.dev/scullery/internal/adapters/telemetry"
	"go.alchm.dev/scullery/internal/adapters/tui"
	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/core/ports"
	"go.alchm.dev/scullery/internal/engine/campaign"
	"go.alchm.dev/scullery/internal/report"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App wires the engines to the CLI commands.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger
	progress     ports.ProgressStore
	backups      ports.BackupStore
	watcher      ports.Watcher
	teaOptions   []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	log ports.Logger,
	progress ports.ProgressStore,
	backups ports.BackupStore,
	fileWatcher ports.Watcher,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		logger:       log,
		progress:     progress,
		backups:      backups,
		watcher:      fileWatcher,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// loadConfig resolves and loads the workspace configuration from the
// current directory.
func (a *App) loadConfig() (*domain.Config, error) {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// rendering builds the renderer and tracer for the resolved output mode.
// JSON mode gets a no-op tracer so progress never pollutes stdout.
func (a *App) rendering(ctx context.Context, outputMode string) (ports.Renderer, ports.Tracer, func()) {
	mode := detector.ResolveMode(detector.DetectEnvironment(), outputMode)

	if mode == detector.ModeJSON {
		return nil, telemetry.NewNoOpTracer(), func() {}
	}

	var renderer ports.Renderer
	if mode == detector.ModeTUI {
		model := tui.NewModel()
		opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		renderer = tui.NewRenderer(model, opts...)
	} else {
		renderer = linear.NewRenderer(os.Stdout, os.Stderr)
	}

	// All spans started via otel.Tracer flow through the bridge to the
	// renderer; span writes stream through the tracer's batcher.
	bridge := telemetry.NewBridge(renderer)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	otel.SetTracerProvider(tp)

	tracer := telemetry.NewOTelTracer("scullery").WithRenderer(renderer)
	cleanup := func() {
		_ = tracer.Shutdown(ctx)
		_ = tp.Shutdown(ctx)
	}
	return renderer, tracer, cleanup
}

// CampaignOptions configures a fix campaign run.
type CampaignOptions struct {
	// Campaign names a campaign from scullery.yaml; empty means ad hoc.
	Campaign string
	// Categories target specific issue categories.
	Categories []string
	BatchSize  int
	MaxFiles   int
	DryRun     bool
	// NoCheckpoint processes every targeted file regardless of earlier runs.
	NoCheckpoint bool
	OutputMode   string
	// Report writes a markdown run report under .scullery/reports.
	Report bool
}

// RunCampaign executes a batched fix campaign.
func (a *App) RunCampaign(ctx context.Context, opts CampaignOptions) (*domain.RunSummary, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	spec, err := buildSpec(cfg, opts)
	if err != nil {
		return nil, err
	}

	renderer, tracer, cleanup := a.rendering(ctx, opts.OutputMode)
	defer cleanup()

	engine := campaign.NewEngine(a.logger, a.executor, a.progress, a.backups, tracer)

	var summary *domain.RunSummary
	runErr := a.withRenderer(ctx, renderer, func(ctx context.Context) error {
		var err error
		summary, err = engine.Run(ctx, cfg, spec)
		return err
	})

	if summary != nil && opts.Report {
		name := fmt.Sprintf("campaign-%s.md", summary.RunID)
		if path, err := report.Write(cfg, name, report.CampaignMarkdown(summary)); err != nil {
			a.logger.Warn("failed to write campaign report: " + err.Error())
		} else {
			a.logger.Info("campaign report written to " + path)
		}
	}

	return summary, runErr
}

// Analyze runs the compiler and linter and returns the combined issues,
// optionally filtered to the given categories.
func (a *App) Analyze(ctx context.Context, categories []string, outputMode string) ([]domain.Issue, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	parsed, err := parseCategories(categories)
	if err != nil {
		return nil, err
	}

	renderer, tracer, cleanup := a.rendering(ctx, outputMode)
	defer cleanup()

	engine := campaign.NewEngine(a.logger, a.executor, a.progress, a.backups, tracer)

	var issues []domain.Issue
	runErr := a.withRenderer(ctx, renderer, func(ctx context.Context) error {
		var err error
		issues, err = engine.Analyze(ctx, cfg)
		return err
	})
	if runErr != nil {
		return nil, runErr
	}

	return domain.FilterCategories(issues, parsed), nil
}

// CampaignStatus returns the saved checkpoint for a campaign, or nil when
// none exists.
func (a *App) CampaignStatus(name string) (*domain.Progress, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	engine := campaign.NewEngine(a.logger, a.executor, a.progress, a.backups, telemetry.NewNoOpTracer())
	return engine.Status(cfg, name)
}

// CampaignReset discards the saved checkpoint for a campaign.
func (a *App) CampaignReset(name string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	engine := campaign.NewEngine(a.logger, a.executor, a.progress, a.backups, telemetry.NewNoOpTracer())
	if err := engine.Reset(cfg, name); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("checkpoint for %q cleared", name))
	return nil
}

// withRenderer runs work under the renderer's lifecycle, stopping the
// renderer when the work finishes.
func (a *App) withRenderer(ctx context.Context, renderer ports.Renderer, work func(context.Context) error) error {
	if renderer == nil {
		return work(ctx)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "engine panic: %v\n", r)
			}
			_ = renderer.Stop()
		}()
		return work(ctx)
	})

	return g.Wait()
}

// buildSpec merges CLI options with the configured campaign settings.
func buildSpec(cfg *domain.Config, opts CampaignOptions) (domain.CampaignSpec, error) {
	categories, err := parseCategories(opts.Categories)
	if err != nil {
		return domain.CampaignSpec{}, err
	}

	name := opts.Campaign
	if name == "" {
		if len(categories) > 0 {
			name = string(categories[0])
		} else {
			name = "all"
		}
	}

	spec := domain.CampaignSpec{
		Name:         name,
		Categories:   categories,
		BatchSize:    opts.BatchSize,
		MaxFiles:     opts.MaxFiles,
		DryRun:       opts.DryRun,
		NoCheckpoint: opts.NoCheckpoint,
		Validate:     cfg.TypeScriptCommand,
	}

	// A named campaign without explicit categories targets its own
	// category with its configured batch settings.
	if cat, ok := domain.ParseCategory(opts.Campaign); ok {
		if len(spec.Categories) == 0 {
			spec.Categories = []domain.Category{cat}
		}
		if settings, ok := cfg.Campaigns[cat]; ok {
			if spec.BatchSize == 0 {
				spec.BatchSize = settings.BatchSize
			}
			if spec.MaxFiles == 0 {
				spec.MaxFiles = settings.MaxFiles
			}
		}
	} else if opts.Campaign != "" {
		return domain.CampaignSpec{}, zerr.With(domain.ErrInvalidCategory, "campaign", opts.Campaign)
	}

	if spec.BatchSize == 0 {
		spec.BatchSize = domain.DefaultBatchSize
	}

	return spec, nil
}

func parseCategories(names []string) ([]domain.Category, error) {
	categories := make([]domain.Category, 0, len(names))
	for _, name := range names {
		cat, ok := domain.ParseCategory(strings.TrimSpace(name))
		if !ok {
			return nil, zerr.With(domain.ErrInvalidCategory, "category", name)
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

// targetFiles resolves explicit path arguments into TypeScript files,
// falling back to the whole source tree when none are given. Relative
// paths are resolved against the workspace root.
func (a *App) targetFiles(cfg *domain.Config, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return a.sourceFiles(cfg)
	}

	var files []string
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(cfg.Root, p)
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", p)
		}
		if !info.IsDir() {
			if strings.HasSuffix(p, ".ts") || strings.HasSuffix(p, ".tsx") {
				files = append(files, p)
			}
			continue
		}
		if err := walkTypeScript(p, &files); err != nil {
			return nil, err
		}
	}
	return files, nil
}

// sourceFiles walks the configured source directories and returns every
// TypeScript file, excluding declaration files.
func (a *App) sourceFiles(cfg *domain.Config) ([]string, error) {
	var files []string
	for _, dir := range cfg.SourceDirs {
		if err := walkTypeScript(filepath.Join(cfg.Root, dir), &files); err != nil {
			return nil, err
		}
	}
	return files, nil
}

func walkTypeScript(root string, files *[]string) error {
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr
		}
		if d.IsDir() {
			if d.Name() == "node_modules" || d.Name() == domain.SculleryDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".d.ts") {
			return nil
		}
		if strings.HasSuffix(path, ".ts") || strings.HasSuffix(path, ".tsx") {
			*files = append(*files, path)
		}
		return nil
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrFileReadFailed.Error())
	}
	return nil
}
