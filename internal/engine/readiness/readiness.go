// Package readiness evaluates deployment quality gates and produces the
// CI readiness report.
package readiness

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/core/ports"
	"go.alchm.dev/scullery/internal/engine/parse"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Engine evaluates the configured quality gates.
type Engine struct {
	logger   ports.Logger
	executor ports.Executor
	tracer   ports.Tracer
}

// NewEngine creates a readiness engine.
func NewEngine(logger ports.Logger, executor ports.Executor, tracer ports.Tracer) *Engine {
	return &Engine{logger: logger, executor: executor, tracer: tracer}
}

// Evaluate runs every configured gate concurrently and aggregates the
// results into a readiness decision. Gate commands are independent by
// contract, so parallel evaluation is safe and bounds the wall-clock cost
// to the slowest gate.
func (e *Engine) Evaluate(ctx context.Context, cfg *domain.Config) (*domain.ReadinessReport, error) {
	ctx, span := e.tracer.Start(ctx, "readiness")
	defer span.End()

	report := &domain.ReadinessReport{
		GeneratedAt: time.Now().UTC(),
		Results:     make([]domain.GateResult, len(cfg.Gates)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, gate := range cfg.Gates {
		g.Go(func() error {
			res, err := e.evaluateGate(gctx, cfg, gate)
			if err != nil {
				return err
			}
			report.Results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	report.Decide()
	span.SetAttribute("ready", report.Ready)

	for _, res := range report.Results {
		if res.Passed {
			e.logger.Info(fmt.Sprintf("gate %s passed (%d errors, %d warnings)",
				res.Gate, res.Errors, res.Warnings))
		} else {
			e.logger.Warn(fmt.Sprintf("gate %s failed (%d errors, %d warnings)",
				res.Gate, res.Errors, res.Warnings))
		}
	}

	return report, nil
}

// evaluateGate runs one gate's command and applies its thresholds.
func (e *Engine) evaluateGate(ctx context.Context, cfg *domain.Config, gate domain.QualityGate) (domain.GateResult, error) {
	started := time.Now()
	res := domain.GateResult{Gate: gate.Name, Required: gate.Required}

	exec, err := e.executor.Execute(ctx, gate.Command, ports.ExecOptions{WorkingDir: cfg.Root})
	if err != nil {
		return res, zerr.With(err, "gate", gate.Name)
	}
	res.Duration = time.Since(started)

	switch gate.Source {
	case domain.SourceTypeScript:
		res.Errors, res.Warnings = domain.CountBySeverity(parse.TypeScript(exec.Stdout))
	case domain.SourceESLint:
		res.Errors, res.Warnings = domain.CountBySeverity(parse.ESLint(exec.Stdout))
	default:
		// No parser configured: the exit code is the whole verdict.
		if exec.ExitCode != 0 {
			res.Errors = 1
		}
	}

	res.Passed = res.Errors <= gate.MaxErrors && res.Warnings <= gate.MaxWarnings
	if !res.Passed {
		res.Details = fmt.Sprintf("thresholds: errors <= %d, warnings <= %d",
			gate.MaxErrors, gate.MaxWarnings)
	}

	return res, nil
}

// WriteReport persists the report under the workspace's report directory
// and returns the file path.
func (e *Engine) WriteReport(cfg *domain.Config, report *domain.ReadinessReport) (string, error) {
	dir := filepath.Join(cfg.Root, domain.DefaultReportPath())
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", zerr.Wrap(err, domain.ErrFileWriteFailed.Error())
	}

	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrFileWriteFailed.Error())
	}

	path := filepath.Join(dir, domain.ReadinessReportName(report.GeneratedAt))
	if err := os.WriteFile(path, raw, domain.FilePerm); err != nil {
		return "", zerr.Wrap(err, domain.ErrFileWriteFailed.Error())
	}

	return path, nil
}
