// Package shell runs toolchain commands as subprocesses.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// outputTailSize is how much combined output a failed command keeps for its error.
const outputTailSize = 4 << 10

// Executor implements ports.Executor using os/exec, or a pseudo-terminal
// when the command asks for one.
type Executor struct {
	logger ports.Logger
}

var _ ports.Executor = (*Executor)(nil)

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs cmd to completion, streaming its output to stdout and stderr.
// An empty command is a no-op.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error {
	if len(cmd.Args) == 0 {
		return nil
	}

	tail := newTailBuffer(outputTailSize)
	c := buildCmd(ctx, cmd)

	var err error
	if cmd.TTY {
		err = e.runPTY(c, io.MultiWriter(tail, stdout))
	} else {
		err = runPipes(c, io.MultiWriter(tail, stdout), io.MultiWriter(tail, stderr))
	}
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	wrapped := zerr.Wrap(err, "command failed")
	wrapped = zerr.With(wrapped, "command", strings.Join(cmd.Args, " "))
	wrapped = zerr.With(wrapped, "exit_code", exitCode)
	if out := tail.String(); out != "" {
		wrapped = zerr.With(wrapped, "output", out)
	}
	return wrapped
}

func buildCmd(ctx context.Context, cmd domain.Command) *exec.Cmd {
	name, args := cmd.Args[0], cmd.Args[1:]
	env := resolveEnvironment(os.Environ(), cmd.Env)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, args...) //nolint:gosec // toolchain commands come from configuration
	c.Args[0] = name
	c.Dir = cmd.Dir
	c.Env = env
	return c
}

func runPipes(c *exec.Cmd, stdout, stderr io.Writer) error {
	c.Stdout = stdout
	c.Stderr = stderr
	return c.Run()
}

// runPTY merges stdout and stderr through a pseudo-terminal. Platforms
// without pty support fall back to pipes.
func (e *Executor) runPTY(c *exec.Cmd, out io.Writer) error {
	ptmx, err := pty.Start(c)
	if errors.Is(err, pty.ErrUnsupported) {
		e.logger.Warn("pseudo-terminal unsupported on this platform, using pipes")
		return runPipes(c, out, out)
	}
	if err != nil {
		return zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// Reading a pty whose child exited ends in EIO.
		_, _ = io.Copy(out, ptmx)
	}()

	waitErr := c.Wait()
	<-ioDone
	_ = ptmx.Close()
	return waitErr
}

// resolveEnvironment returns sysEnv with overrides applied.
// Later duplicates in sysEnv win, matching exec's own handling.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	order := make([]string, 0, len(sysEnv)+len(overrides))

	set := func(k, v string) {
		if _, ok := envMap[k]; !ok {
			order = append(order, k)
		}
		envMap[k] = v
	}

	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			set(k, v)
		}
	}
	for k, v := range overrides {
		set(k, v)
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches PATH from env rather than from the current process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
