package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.alchm.dev/scullery/cmd/scullery/commands"
	"go.alchm.dev/scullery/internal/app"
	"go.alchm.dev/scullery/internal/build"
	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/engine/enrich"
)

type mockApp struct {
	analyzeFunc        func(ctx context.Context, categories []string, outputMode string) ([]domain.Issue, error)
	runCampaignFunc    func(ctx context.Context, opts app.CampaignOptions) (*domain.RunSummary, error)
	campaignStatusFunc func(name string) (*domain.Progress, error)
	campaignResetFunc  func(name string) error
	enrichFunc         func(ctx context.Context, opts app.EnrichOptions) (*enrich.Summary, error)
	migrateConsoleFunc func(ctx context.Context, dryRun bool, paths []string) (*app.MigrationSummary, error)
	mergeImportsFunc   func(ctx context.Context, dryRun bool, paths []string) (*app.MigrationSummary, error)
	readinessFunc      func(ctx context.Context, outputMode string) (*app.ReadinessResult, error)
	watchFunc          func(ctx context.Context, categories []string) error
	cleanFunc          func(ctx context.Context, opts app.CleanOptions) error
}

func (m *mockApp) Analyze(ctx context.Context, categories []string, outputMode string) ([]domain.Issue, error) {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, categories, outputMode)
	}
	return nil, nil
}

func (m *mockApp) RunCampaign(ctx context.Context, opts app.CampaignOptions) (*domain.RunSummary, error) {
	if m.runCampaignFunc != nil {
		return m.runCampaignFunc(ctx, opts)
	}
	return &domain.RunSummary{}, nil
}

func (m *mockApp) CampaignStatus(name string) (*domain.Progress, error) {
	if m.campaignStatusFunc != nil {
		return m.campaignStatusFunc(name)
	}
	return nil, nil
}

func (m *mockApp) CampaignReset(name string) error {
	if m.campaignResetFunc != nil {
		return m.campaignResetFunc(name)
	}
	return nil
}

func (m *mockApp) Enrich(ctx context.Context, opts app.EnrichOptions) (*enrich.Summary, error) {
	if m.enrichFunc != nil {
		return m.enrichFunc(ctx, opts)
	}
	return &enrich.Summary{}, nil
}

func (m *mockApp) MigrateConsole(ctx context.Context, dryRun bool, paths []string) (*app.MigrationSummary, error) {
	if m.migrateConsoleFunc != nil {
		return m.migrateConsoleFunc(ctx, dryRun, paths)
	}
	return &app.MigrationSummary{}, nil
}

func (m *mockApp) MergeImports(ctx context.Context, dryRun bool, paths []string) (*app.MigrationSummary, error) {
	if m.mergeImportsFunc != nil {
		return m.mergeImportsFunc(ctx, dryRun, paths)
	}
	return &app.MigrationSummary{}, nil
}

func (m *mockApp) Readiness(ctx context.Context, outputMode string) (*app.ReadinessResult, error) {
	if m.readinessFunc != nil {
		return m.readinessFunc(ctx, outputMode)
	}
	return &app.ReadinessResult{Report: &domain.ReadinessReport{Ready: true}}, nil
}

func (m *mockApp) Watch(ctx context.Context, categories []string) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, categories)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

func execute(t *testing.T, mock *mockApp, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	return buf, cli.Execute(context.Background())
}

func TestCommands_Analyze(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedCategories []string
		var capturedMode string

		mock := &mockApp{
			analyzeFunc: func(_ context.Context, categories []string, outputMode string) ([]domain.Issue, error) {
				capturedCategories = categories
				capturedMode = outputMode
				return nil, nil
			},
		}

		buf, err := execute(t, mock, "analyze", "lint-error", "-c", "type-error", "-o", "linear")
		require.NoError(t, err)
		assert.Equal(t, []string{"type-error", "lint-error"}, capturedCategories)
		assert.Equal(t, "linear", capturedMode)
		assert.Contains(t, buf.String(), "No issues found")
	})

	t.Run("json flag forces json output mode", func(t *testing.T) {
		var capturedMode string

		mock := &mockApp{
			analyzeFunc: func(_ context.Context, _ []string, outputMode string) ([]domain.Issue, error) {
				capturedMode = outputMode
				return []domain.Issue{
					{File: domain.NewInternedString("src/a.ts"), Line: 3, Code: "TS2322", Severity: domain.SeverityError, Source: domain.SourceTypeScript},
				}, nil
			},
		}

		buf, err := execute(t, mock, "analyze", "--json")
		require.NoError(t, err)
		assert.Equal(t, "json", capturedMode)
		assert.Contains(t, buf.String(), `"code": "TS2322"`)
		assert.Contains(t, buf.String(), `"category": "type-error"`)
	})

	t.Run("prints per-category summary", func(t *testing.T) {
		mock := &mockApp{
			analyzeFunc: func(_ context.Context, _ []string, _ string) ([]domain.Issue, error) {
				return []domain.Issue{
					{File: domain.NewInternedString("src/a.ts"), Code: "TS2322", Severity: domain.SeverityError, Source: domain.SourceTypeScript},
					{File: domain.NewInternedString("src/b.ts"), Code: "no-unused-vars", Severity: domain.SeverityWarning, Source: domain.SourceESLint},
				}, nil
			},
		}

		buf, err := execute(t, mock, "analyze")
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "type-error")
		assert.Contains(t, buf.String(), "total")
	})

	t.Run("exit-code returns error when issues remain", func(t *testing.T) {
		mock := &mockApp{
			analyzeFunc: func(_ context.Context, _ []string, _ string) ([]domain.Issue, error) {
				return []domain.Issue{{File: domain.NewInternedString("src/a.ts"), Code: "TS2322", Source: domain.SourceTypeScript}}, nil
			},
		}

		_, err := execute(t, mock, "analyze", "--exit-code")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrIssuesFound)
	})
}

func TestCommands_CampaignRun(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.CampaignOptions

		mock := &mockApp{
			runCampaignFunc: func(_ context.Context, opts app.CampaignOptions) (*domain.RunSummary, error) {
				captured = opts
				return &domain.RunSummary{Campaign: "unused-vars", Status: domain.CampaignCompleted}, nil
			},
		}

		buf, err := execute(t, mock, "campaign", "run", "unused-vars",
			"--batch-size", "5", "--max-files", "20", "--dry-run", "--no-checkpoint", "--report")
		require.NoError(t, err)
		assert.Equal(t, []string{"unused-vars"}, captured.Categories)
		assert.Equal(t, 5, captured.BatchSize)
		assert.Equal(t, 20, captured.MaxFiles)
		assert.True(t, captured.DryRun)
		assert.True(t, captured.NoCheckpoint)
		assert.True(t, captured.Report)
		assert.Contains(t, buf.String(), "unused-vars")
	})

	t.Run("defaults to preview without confirm", func(t *testing.T) {
		var captured app.CampaignOptions
		mock := &mockApp{
			runCampaignFunc: func(_ context.Context, opts app.CampaignOptions) (*domain.RunSummary, error) {
				captured = opts
				return &domain.RunSummary{Status: domain.CampaignCompleted}, nil
			},
		}

		buf, err := execute(t, mock, "campaign", "run", "type-error")
		require.NoError(t, err)
		assert.True(t, captured.DryRun)
		assert.Contains(t, buf.String(), "preview only")
	})

	t.Run("confirm applies fixes", func(t *testing.T) {
		var captured app.CampaignOptions
		mock := &mockApp{
			runCampaignFunc: func(_ context.Context, opts app.CampaignOptions) (*domain.RunSummary, error) {
				captured = opts
				return &domain.RunSummary{Status: domain.CampaignCompleted}, nil
			},
		}

		_, err := execute(t, mock, "campaign", "run", "type-error", "--confirm")
		require.NoError(t, err)
		assert.False(t, captured.DryRun)
	})

	t.Run("ci flag forces linear output", func(t *testing.T) {
		var captured app.CampaignOptions
		mock := &mockApp{
			runCampaignFunc: func(_ context.Context, opts app.CampaignOptions) (*domain.RunSummary, error) {
				captured = opts
				return &domain.RunSummary{Status: domain.CampaignCompleted}, nil
			},
		}

		_, err := execute(t, mock, "campaign", "run", "--ci")
		require.NoError(t, err)
		assert.Equal(t, "linear", captured.OutputMode)
	})

	t.Run("propagates campaign failure", func(t *testing.T) {
		mock := &mockApp{
			runCampaignFunc: func(_ context.Context, _ app.CampaignOptions) (*domain.RunSummary, error) {
				return &domain.RunSummary{Status: domain.CampaignFailed}, domain.ErrCampaignFailed
			},
		}

		_, err := execute(t, mock, "campaign", "run", "type-error")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCampaignFailed)
	})
}

func TestCommands_CampaignStatus(t *testing.T) {
	t.Run("prints checkpoint details", func(t *testing.T) {
		mock := &mockApp{
			campaignStatusFunc: func(name string) (*domain.Progress, error) {
				assert.Equal(t, "unused-vars", name)
				return &domain.Progress{
					Name:           "unused-vars",
					ProcessedFiles: map[string]bool{"src/a.ts": true, "src/b.ts": true},
					IssuesFixed:    7,
					LastUpdateTime: time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC),
				}, nil
			},
		}

		buf, err := execute(t, mock, "campaign", "status", "unused-vars")
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "2 file(s) processed")
		assert.Contains(t, buf.String(), "7 issue(s) fixed")
	})

	t.Run("reports missing checkpoint", func(t *testing.T) {
		mock := &mockApp{}

		buf, err := execute(t, mock, "campaign", "status", "imports")
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `no checkpoint for "imports"`)
	})
}

func TestCommands_CampaignReset(t *testing.T) {
	var resetName string
	mock := &mockApp{
		campaignResetFunc: func(name string) error {
			resetName = name
			return nil
		},
	}

	_, err := execute(t, mock, "campaign", "reset", "type-error")
	require.NoError(t, err)
	assert.Equal(t, "type-error", resetName)
}

func TestCommands_Enrich(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.EnrichOptions
		mock := &mockApp{
			enrichFunc: func(_ context.Context, opts app.EnrichOptions) (*enrich.Summary, error) {
				captured = opts
				return &enrich.Summary{Total: 3, Enriched: 2, Skipped: 1}, nil
			},
		}

		buf, err := execute(t, mock, "enrich", "--limit", "10", "--force", "--dry-run")
		require.NoError(t, err)
		assert.Equal(t, 10, captured.Limit)
		assert.True(t, captured.Force)
		assert.True(t, captured.DryRun)
		assert.Contains(t, buf.String(), "2 enriched")
	})

	t.Run("all overrides named ingredients", func(t *testing.T) {
		var captured app.EnrichOptions
		mock := &mockApp{
			enrichFunc: func(_ context.Context, opts app.EnrichOptions) (*enrich.Summary, error) {
				captured = opts
				return &enrich.Summary{}, nil
			},
		}

		_, err := execute(t, mock, "enrich", "spinach", "kale", "--all")
		require.NoError(t, err)
		assert.Empty(t, captured.Ingredients)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mock := &mockApp{
			enrichFunc: func(_ context.Context, _ app.EnrichOptions) (*enrich.Summary, error) {
				return nil, errors.New("no nutrition sources configured")
			},
		}

		_, err := execute(t, mock, "enrich")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no nutrition sources")
	})
}

func TestCommands_ConsoleMigrate(t *testing.T) {
	var capturedDryRun bool
	var capturedPaths []string
	mock := &mockApp{
		migrateConsoleFunc: func(_ context.Context, dryRun bool, paths []string) (*app.MigrationSummary, error) {
			capturedDryRun = dryRun
			capturedPaths = paths
			return &app.MigrationSummary{FilesScanned: 12, FilesChanged: 3, Replacements: 9, DryRun: dryRun}, nil
		},
	}

	buf, err := execute(t, mock, "console", "migrate", "src/utils", "--dry-run")
	require.NoError(t, err)
	assert.True(t, capturedDryRun)
	assert.Equal(t, []string{"src/utils"}, capturedPaths)
	assert.Contains(t, buf.String(), "9 replacement(s)")
	assert.Contains(t, buf.String(), "would change 3 of 12")
}

func TestCommands_ImportsMerge(t *testing.T) {
	mock := &mockApp{
		mergeImportsFunc: func(_ context.Context, dryRun bool, _ []string) (*app.MigrationSummary, error) {
			assert.False(t, dryRun)
			return &app.MigrationSummary{FilesScanned: 8, FilesChanged: 2, Replacements: 4}, nil
		},
	}

	buf, err := execute(t, mock, "imports", "merge")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "changed 2 of 8")
}

func TestCommands_Watch(t *testing.T) {
	var capturedCategories []string
	mock := &mockApp{
		watchFunc: func(_ context.Context, categories []string) error {
			capturedCategories = categories
			return nil
		},
	}

	_, err := execute(t, mock, "watch", "type-error")
	require.NoError(t, err)
	assert.Equal(t, []string{"type-error"}, capturedCategories)
}

func TestCommands_Readiness(t *testing.T) {
	t.Run("prints gate results", func(t *testing.T) {
		mock := &mockApp{
			readinessFunc: func(_ context.Context, _ string) (*app.ReadinessResult, error) {
				report := &domain.ReadinessReport{
					Results: []domain.GateResult{
						{Gate: "typescript", Passed: true, Required: true},
						{Gate: "lint", Passed: false, Required: false, Warnings: 3},
					},
				}
				report.Decide()
				return &app.ReadinessResult{Report: report, ReportPath: ".scullery/reports/cicd-report.json"}, nil
			},
		}

		buf, err := execute(t, mock, "readiness")
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "PASS")
		assert.Contains(t, buf.String(), "WARN")
		assert.Contains(t, buf.String(), "ready to deploy")
	})

	t.Run("exit-code fails when not ready", func(t *testing.T) {
		mock := &mockApp{
			readinessFunc: func(_ context.Context, _ string) (*app.ReadinessResult, error) {
				report := &domain.ReadinessReport{
					Results: []domain.GateResult{{Gate: "typescript", Passed: false, Required: true, Errors: 5}},
				}
				report.Decide()
				return &app.ReadinessResult{Report: report}, nil
			},
		}

		buf, err := execute(t, mock, "readiness", "--exit-code")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotReady)
		assert.Contains(t, buf.String(), "not ready to deploy")
	})

	t.Run("json emits the report", func(t *testing.T) {
		var capturedMode string
		mock := &mockApp{
			readinessFunc: func(_ context.Context, outputMode string) (*app.ReadinessResult, error) {
				capturedMode = outputMode
				report := &domain.ReadinessReport{Ready: true}
				return &app.ReadinessResult{Report: report}, nil
			},
		}

		buf, err := execute(t, mock, "readiness", "--json")
		require.NoError(t, err)
		assert.Equal(t, "json", capturedMode)
		assert.Contains(t, buf.String(), `"ready": true`)
	})
}

func TestCommands_Clean(t *testing.T) {
	t.Run("defaults to checkpoints and backups", func(t *testing.T) {
		var captured app.CleanOptions
		mock := &mockApp{
			cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
				captured = opts
				return nil
			},
		}

		_, err := execute(t, mock, "clean")
		require.NoError(t, err)
		assert.True(t, captured.Checkpoints)
		assert.True(t, captured.Backups)
		assert.False(t, captured.Cache)
		assert.False(t, captured.Reports)
	})

	t.Run("all selects everything", func(t *testing.T) {
		var captured app.CleanOptions
		mock := &mockApp{
			cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
				captured = opts
				return nil
			},
		}

		_, err := execute(t, mock, "clean", "--all")
		require.NoError(t, err)
		assert.True(t, captured.Cache)
		assert.True(t, captured.Reports)
	})
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}

	buf, err := execute(t, mock, "version")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), build.Version)
}
