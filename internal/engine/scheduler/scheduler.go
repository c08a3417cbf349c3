// Package scheduler runs build tasks on a bounded, fail-open worker pool.
package scheduler

import (
	"context"
	"runtime"
	"time"

	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scheduler executes build tasks with bounded parallelism.
// A failing task never cancels its siblings.
type Scheduler struct {
	executor ports.Executor
	logger   ports.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(executor ports.Executor, logger ports.Logger) *Scheduler {
	return &Scheduler{
		executor: executor,
		logger:   logger,
	}
}

// Request describes one scheduling round.
type Request struct {
	Tasks []domain.BuildTask
	// Parallelism bounds in-flight tasks. Zero or less means one per logical CPU.
	Parallelism int
	// Root is the directory build commands run in.
	Root      string
	Toolchain domain.Toolchain
	Tracer    ports.Tracer
}

// Run executes every task of req and records exactly one outcome per task
// into state. It returns once the pool has drained.
//
// When ctx is canceled no further tasks start, and every task that never
// started is recorded as canceled.
func (s *Scheduler) Run(ctx context.Context, req Request, state *domain.RunState) {
	if len(req.Tasks) == 0 {
		return
	}

	parallelism := req.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	labels := make([]string, len(req.Tasks))
	for i, task := range req.Tasks {
		labels[i] = task.Label()
	}
	req.Tracer.EmitPlan(ctx, labels)

	rs := &runState{
		s:           s,
		ctx:         ctx,
		req:         req,
		ready:       req.Tasks,
		resultsCh:   make(chan domain.TaskOutcome, parallelism),
		parallelism: parallelism,
		state:       state,
	}
	rs.runExecutionLoop()

	for _, task := range rs.ready {
		state.Record(domain.TaskOutcome{
			Task: task,
			Err:  zerr.With(domain.ErrTaskCanceled, "task", task.Label()),
		})
	}
}

type runState struct {
	s           *Scheduler
	ctx         context.Context
	req         Request
	ready       []domain.BuildTask
	active      int
	resultsCh   chan domain.TaskOutcome
	parallelism int
	state       *domain.RunState
}

func (rs *runState) isDone() bool {
	return rs.active == 0 && len(rs.ready) == 0
}

func (rs *runState) runExecutionLoop() {
	done := rs.ctx.Done()
	for !rs.isDone() {
		rs.schedule()

		if rs.isDone() {
			break
		}

		if rs.ctx.Err() != nil && rs.active == 0 {
			return
		}

		select {
		case res := <-rs.resultsCh:
			rs.active--
			rs.state.Record(res)
		case <-done:
			done = nil
		}
	}
}

func (rs *runState) schedule() {
	for len(rs.ready) > 0 && rs.active < rs.parallelism && rs.ctx.Err() == nil {
		task := rs.ready[0]
		rs.ready = rs.ready[1:]

		rs.active++
		go rs.executeTask(task)
	}
}

func (rs *runState) executeTask(task domain.BuildTask) {
	// The span ends before the outcome is sent.
	res := func() domain.TaskOutcome {
		label := task.Label()
		ctx, span := rs.req.Tracer.Start(rs.ctx, label)
		defer span.End()

		span.SetAttribute("tsbuild.target", task.Target)
		span.SetAttribute("tsbuild.dir", task.Dir)
		span.SetAttribute("tsbuild.generate", task.Generate)
		span.SetAttribute("tsbuild.local", task.Local)

		start := time.Now()
		err := rs.s.buildTask(ctx, rs.req, task, span)
		outcome := domain.TaskOutcome{
			Task:     task,
			Err:      err,
			Duration: time.Since(start),
		}

		if err != nil {
			span.RecordError(err)
			rs.s.logger.Error(zerr.With(err, "task", label))
		}
		return outcome
	}()

	rs.resultsCh <- res
}

// buildTask runs the optional generation step then the build step.
func (s *Scheduler) buildTask(ctx context.Context, req Request, task domain.BuildTask, span ports.Span) error {
	if task.Generate {
		cmd := req.Toolchain.GenerateCommand(task)
		if err := s.executor.Execute(ctx, cmd, span, span); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrGenerateFailed.Error()), "dir", task.Dir)
		}
	}

	cmd := req.Toolchain.BuildCommand(req.Root, task)
	if err := s.executor.Execute(ctx, cmd, span, span); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "dir", task.Dir)
	}
	return nil
}
