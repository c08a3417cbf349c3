// Package linear provides a line-buffered progress renderer.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/tsbuild/internal/ui/output"
	"go.trai.ch/tsbuild/internal/ui/style"
	"go.trai.ch/zerr"
)

// Renderer implements ports.Renderer as chronological, label-prefixed lines.
// Task output goes to stdout; lifecycle lines go to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu    sync.Mutex
	tasks map[string]*taskState
}

var _ ports.Renderer = (*Renderer)(nil)

type taskState struct {
	name      string
	startTime time.Time
	buf       bytes.Buffer
}

// NewRenderer creates a Renderer. Nil writers mean the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: output.New(stderr),
		tasks:  make(map[string]*taskState),
	}
}

// Start is a no-op.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes the partial lines of tasks that never completed.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.tasks {
		r.flushLocked(task)
	}
	return nil
}

// Wait is a no-op.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the planned tasks.
func (r *Renderer) OnPlanEmit(tasks []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Planning to build %d task(s): %s\n", len(tasks), strings.Join(tasks, ", "))
}

// OnTaskStart prints a start line.
func (r *Renderer) OnTaskStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[spanID] = &taskState{name: name, startTime: startTime}
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", r.prefix(name))
}

// OnTaskLog prints every complete line of data. Partial lines wait for the
// rest of the line or for completion.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}

	task.buf.Write(data)
	for {
		i := bytes.IndexByte(task.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		r.printLineLocked(task.name, task.buf.Next(i+1))
	}
}

// OnTaskComplete flushes pending output and prints the result line.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	r.flushLocked(task)
	delete(r.tasks, spanID)

	duration := endTime.Sub(task.startTime).Round(time.Millisecond)
	if err != nil {
		mark := r.output.String(style.Cross).Foreground(r.output.Color(style.Hex(style.Red))).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %s\n", r.prefix(task.name), mark, duration, summary(err))
		return
	}

	mark := r.output.String(style.Check).Foreground(r.output.Color(style.Hex(style.Green))).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", r.prefix(task.name), mark, duration)
}

func (r *Renderer) prefix(name string) string {
	return r.output.String("[" + name + "]").Faint().String()
}

func (r *Renderer) flushLocked(task *taskState) {
	if task.buf.Len() > 0 {
		r.printLineLocked(task.name, task.buf.Bytes())
		task.buf.Reset()
	}
}

func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", name, line)
}

// summary keeps the failure line to the outermost message; the logger prints
// the full chain.
func summary(err error) string {
	msg := err.Error()
	if z, ok := err.(*zerr.Error); ok && z.Message() != "" {
		msg = z.Message()
	}
	first, _, _ := strings.Cut(msg, "\n")
	return first
}
