package app

import (
	"context"

	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/engine/readiness"
)

// ReadinessResult pairs the gate report with the path it was written to.
type ReadinessResult struct {
	Report     *domain.ReadinessReport
	ReportPath string
}

// Readiness evaluates the deployment quality gates and writes the CI
// report. The caller decides what a failed decision means for the exit
// code.
func (a *App) Readiness(ctx context.Context, outputMode string) (*ReadinessResult, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	renderer, tracer, cleanup := a.rendering(ctx, outputMode)
	defer cleanup()

	engine := readiness.NewEngine(a.logger, a.executor, tracer)

	var rep *domain.ReadinessReport
	runErr := a.withRenderer(ctx, renderer, func(ctx context.Context) error {
		var err error
		rep, err = engine.Evaluate(ctx, cfg)
		return err
	})
	if runErr != nil {
		return nil, runErr
	}

	path, err := engine.WriteReport(cfg, rep)
	if err != nil {
		a.logger.Warn("failed to write readiness report: " + err.Error())
	}

	return &ReadinessResult{Report: rep, ReportPath: path}, nil
}
