// Package app implements the application layer for tsbuild.
package app

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"go.trai.ch/tsbuild/internal/adapters/linear"
	"go.trai.ch/tsbuild/internal/adapters/telemetry"
	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/tsbuild/internal/engine/planner"
	"go.trai.ch/tsbuild/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	planner      *planner.Planner
	scheduler    *scheduler.Scheduler
	stager       ports.Stager
	reports      ports.ReportStore
	logger       ports.Logger

	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	plan *planner.Planner,
	sched *scheduler.Scheduler,
	stager ports.Stager,
	reports ports.ReportStore,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		planner:      plan,
		scheduler:    sched,
		stager:       stager,
		reports:      reports,
		logger:       log,
		now:          time.Now,
	}
}

// WithOutput sets the streams the progress renderer writes to.
// Nil writers mean the process streams.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Dir is where the configuration lookup starts. Empty means the working directory.
	Dir string
	// Filter is a case-sensitive substring that target names must contain.
	Filter string
	// Jobs overrides the configured concurrency when positive.
	Jobs int
}

// Run builds the selected targets and publishes their artifacts.
// It returns domain.ErrBuildFailed when any task failed.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	// 1. Load the configuration
	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Jobs < 0 {
		return zerr.With(domain.ErrInvalidConcurrency, "jobs", opts.Jobs)
	}
	if opts.Jobs > 0 {
		cfg.Concurrency = opts.Jobs
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.NumCPU()
	}

	// 2. Select targets and reset the output directory
	targets := domain.SelectTargets(cfg, opts.Filter)
	state := domain.NewRunState(targets, cfg.OutPath())
	startedAt := a.now()

	if err := a.stager.Reset(state.OutDir); err != nil {
		return err
	}
	stale, err := a.stager.Sweep(cfg.Root, cfg.ArtifactExt, cfg.Prebuilt)
	for _, name := range stale {
		a.logger.Warn(fmt.Sprintf("removed stale artifact %s", name))
	}
	if err != nil {
		return err
	}

	// 3. Initialize renderer and telemetry
	renderer := linear.NewRenderer(a.stdout, a.stderr)
	provider := telemetry.NewProvider(renderer)
	defer func() {
		_ = provider.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracer(provider, "tsbuild").WithRenderer(renderer)

	// 4. Run renderer and pipeline concurrently
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()

		artifacts, err := a.build(gctx, cfg, tracer, state)
		report := domain.NewRunReport(state, opts.Filter, cfg.Concurrency, startedAt)
		report.Artifacts = artifacts
		// A report that cannot be written does not change the build outcome.
		if putErr := a.reports.Put(cfg.Root, report); putErr != nil {
			a.logger.Error(putErr)
		}
		return err
	})

	return g.Wait()
}

// build runs the main pool, the vendored targets and the staging post-phase.
func (a *App) build(
	ctx context.Context,
	cfg *domain.Config,
	tracer ports.Tracer,
	state *domain.RunState,
) ([]domain.Artifact, error) {
	req := scheduler.Request{
		Tasks:       a.planner.Tasks(cfg, state.Targets),
		Parallelism: cfg.Concurrency,
		Root:        cfg.Root,
		Toolchain:   cfg.Toolchain,
		Tracer:      tracer,
	}
	a.scheduler.Run(ctx, req, state)

	if vendored := a.stager.Present(cfg.Root, cfg.Vendored); len(vendored) > 0 {
		req.Tasks = a.planner.LocalTasks(cfg, vendored)
		a.scheduler.Run(ctx, req, state)
	}

	copied, err := a.stager.CopyPrebuilt(ctx, cfg.Root, state.OutDir, cfg.Prebuilt)
	if err != nil {
		return nil, err
	}
	for _, artifact := range copied {
		a.logger.Info(fmt.Sprintf("copied prebuilt %s", artifact.Name))
	}

	total := len(state.Outcomes())
	if state.Failed() {
		failed := state.FailedCount()
		a.logger.Error(zerr.With(zerr.With(domain.ErrBuildFailed, "failed", failed), "total", total))
		return copied, domain.ErrBuildFailed
	}

	moved, err := a.stager.Relocate(cfg.Root, state.OutDir, cfg.ArtifactExt, cfg.Prebuilt)
	if err != nil {
		return copied, err
	}
	a.logger.Info(fmt.Sprintf("moved %d artifact(s) into %s", len(moved), cfg.OutDir))
	a.logger.Info(fmt.Sprintf("built %d task(s)", total))

	return append(copied, moved...), nil
}
