package scheduler_test

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/tsbuild/internal/core/ports/mocks"
	"go.trai.ch/tsbuild/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type schedulerTestMocks struct {
	executor *mocks.MockExecutor
	logger   *mocks.MockLogger
	tracer   *mocks.MockTracer
}

// setupSchedulerTest creates a scheduler and common mocks.
func setupSchedulerTest(t *testing.T) (*scheduler.Scheduler, schedulerTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := schedulerTestMocks{
		executor: mocks.NewMockExecutor(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		tracer:   mocks.NewMockTracer(ctrl),
	}

	mockSpan := mocks.NewMockSpan(ctrl)
	mockSpan.EXPECT().End().AnyTimes()
	mockSpan.EXPECT().RecordError(gomock.Any()).AnyTimes()
	mockSpan.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	mockSpan.EXPECT().Write(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
		return len(p), nil
	}).AnyTimes()

	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, mockSpan
		},
	).AnyTimes()

	return scheduler.NewScheduler(m.executor, m.logger), m
}

func tasksNamed(names ...string) []domain.BuildTask {
	tasks := make([]domain.BuildTask, len(names))
	for i, name := range names {
		tasks[i] = domain.BuildTask{Target: name, Dir: "/repo/node_modules/" + name}
	}
	return tasks
}

func newRequest(m schedulerTestMocks, parallelism int, tasks []domain.BuildTask) scheduler.Request {
	return scheduler.Request{
		Tasks:       tasks,
		Parallelism: parallelism,
		Root:        "/repo",
		Toolchain: domain.Toolchain{
			Generate: []string{"tree-sitter", "generate"},
			Build:    []string{"tree-sitter", "build-wasm", domain.DirPlaceholder},
		},
		Tracer: m.tracer,
	}
}

func TestScheduler_Run_BoundsParallelism(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)
		tasks := tasksNamed("a", "b", "c", "d", "e", "f", "g")
		m.tracer.EXPECT().EmitPlan(gomock.Any(), []string{"a", "b", "c", "d", "e", "f", "g"})

		var inFlight, peak atomic.Int32
		m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Command, _, _ io.Writer) error {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(time.Second)
				inFlight.Add(-1)
				return nil
			}).Times(len(tasks))

		state := domain.NewRunState(nil, "/repo/out")
		s.Run(t.Context(), newRequest(m, 3, tasks), state)

		assert.Equal(t, int32(3), peak.Load())
		assert.Len(t, state.Outcomes(), len(tasks))
		assert.False(t, state.Failed())
		assert.Equal(t, 0, state.ExitCode())
	})
}

func TestScheduler_Run_FailOpen(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)
		tasks := tasksNamed("a", "b", "c", "d")
		m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any())

		m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd domain.Command, _, _ io.Writer) error {
				if cmd.Args[2] == "/repo/node_modules/b" {
					return errors.New("exit status 1")
				}
				time.Sleep(time.Second)
				return nil
			}).Times(4)

		var logged error
		m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) { logged = err }).Times(1)

		state := domain.NewRunState(nil, "/repo/out")
		s.Run(t.Context(), newRequest(m, 2, tasks), state)

		outcomes := state.Outcomes()
		require.Len(t, outcomes, 4)
		assert.True(t, state.Failed())
		assert.Equal(t, 1, state.ExitCode())
		assert.Equal(t, 1, state.FailedCount())

		// b fails first and is recorded before the slower siblings.
		assert.Equal(t, "b", outcomes[0].Task.Label())
		require.Error(t, outcomes[0].Err)
		assert.Contains(t, outcomes[0].Err.Error(), domain.ErrCompileFailed.Error())

		require.Error(t, logged)
		assert.Contains(t, logged.Error(), "exit status 1")
	})
}

func TestScheduler_Run_GenerateBeforeBuild(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)
		task := domain.BuildTask{Target: "tree-sitter-rescript", Dir: "/repo/node_modules/tree-sitter-rescript", Generate: true}
		m.tracer.EXPECT().EmitPlan(gomock.Any(), []string{"tree-sitter-rescript"})

		gomock.InOrder(
			m.executor.EXPECT().Execute(gomock.Any(), domain.Command{
				Args: []string{"tree-sitter", "generate"},
				Dir:  task.Dir,
			}, gomock.Any(), gomock.Any()).Return(nil),
			m.executor.EXPECT().Execute(gomock.Any(), domain.Command{
				Args: []string{"tree-sitter", "build-wasm", task.Dir},
				Dir:  "/repo",
			}, gomock.Any(), gomock.Any()).Return(nil),
		)

		state := domain.NewRunState(nil, "/repo/out")
		s.Run(t.Context(), newRequest(m, 1, []domain.BuildTask{task}), state)

		require.Len(t, state.Outcomes(), 1)
		assert.True(t, state.Outcomes()[0].Success())
	})
}

func TestScheduler_Run_GenerateFailureSkipsBuild(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)
		task := domain.BuildTask{Target: "tree-sitter-rescript", Dir: "/repo/node_modules/tree-sitter-rescript", Generate: true}
		m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any())

		m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("grammar.js not found")).Times(1)
		m.logger.EXPECT().Error(gomock.Any()).Times(1)

		state := domain.NewRunState(nil, "/repo/out")
		s.Run(t.Context(), newRequest(m, 1, []domain.BuildTask{task}), state)

		outcomes := state.Outcomes()
		require.Len(t, outcomes, 1)
		require.Error(t, outcomes[0].Err)
		assert.Contains(t, outcomes[0].Err.Error(), domain.ErrGenerateFailed.Error())
		assert.True(t, state.Failed())
	})
}

func TestScheduler_Run_RecordsDuration(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)
		m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any())
		m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Command, _, _ io.Writer) error {
				time.Sleep(1500 * time.Millisecond)
				return nil
			})

		state := domain.NewRunState(nil, "/repo/out")
		s.Run(t.Context(), newRequest(m, 1, tasksNamed("a")), state)

		require.Len(t, state.Outcomes(), 1)
		assert.Equal(t, 1500*time.Millisecond, state.Outcomes()[0].Duration)
	})
}

func TestScheduler_Run_Canceled(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)
		m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any())

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ domain.Command, _, _ io.Writer) error {
				cancel()
				return ctx.Err()
			}).Times(1)
		m.logger.EXPECT().Error(gomock.Any()).Times(1)

		state := domain.NewRunState(nil, "/repo/out")
		s.Run(ctx, newRequest(m, 1, tasksNamed("a", "b", "c")), state)

		outcomes := state.Outcomes()
		require.Len(t, outcomes, 3)
		assert.Equal(t, 3, state.FailedCount())
		assert.Equal(t, "a", outcomes[0].Task.Label())
		assert.Contains(t, outcomes[1].Err.Error(), domain.ErrTaskCanceled.Error())
		assert.Contains(t, outcomes[2].Err.Error(), domain.ErrTaskCanceled.Error())
	})
}

func TestScheduler_Run_NoTasks(t *testing.T) {
	s, m := setupSchedulerTest(t)

	state := domain.NewRunState(nil, "/repo/out")
	s.Run(t.Context(), newRequest(m, 0, nil), state)

	assert.Empty(t, state.Outcomes())
	assert.Equal(t, 0, state.ExitCode())
}

func TestScheduler_Run_DefaultParallelism(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)
		m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any())
		m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).Times(2)

		state := domain.NewRunState(nil, "/repo/out")
		s.Run(t.Context(), newRequest(m, 0, tasksNamed("a", "b")), state)

		assert.Len(t, state.Outcomes(), 2)
	})
}
