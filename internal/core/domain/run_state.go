package domain

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// TaskOutcome is the result of exactly one build task.
type TaskOutcome struct {
	Task     BuildTask
	Err      error
	Duration time.Duration
}

// Success reports whether the task succeeded.
func (o TaskOutcome) Success() bool {
	return o.Err == nil
}

// RunState holds the process-wide state of one invocation.
// The failure flag only ever goes from false to true and the outcome log is append-only.
type RunState struct {
	Targets []Target
	OutDir  string

	failed   atomic.Bool
	mu       sync.Mutex
	outcomes []TaskOutcome
}

// NewRunState creates the state for a run over targets publishing into outDir.
func NewRunState(targets []Target, outDir string) *RunState {
	return &RunState{
		Targets: targets,
		OutDir:  outDir,
	}
}

// Record appends an outcome and raises the failure flag when it failed.
func (s *RunState) Record(o TaskOutcome) {
	s.mu.Lock()
	s.outcomes = append(s.outcomes, o)
	s.mu.Unlock()

	if !o.Success() {
		s.failed.Store(true)
	}
}

// Failed reports whether any recorded outcome failed.
func (s *RunState) Failed() bool {
	return s.failed.Load()
}

// Outcomes returns a copy of the outcome log in completion order.
func (s *RunState) Outcomes() []TaskOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.outcomes)
}

// FailedCount returns the number of failed outcomes.
func (s *RunState) FailedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, o := range s.outcomes {
		if !o.Success() {
			n++
		}
	}
	return n
}

// ExitCode maps the failure flag to the process exit status.
func (s *RunState) ExitCode() int {
	if s.Failed() {
		return 1
	}
	return 0
}
