package domain

import (
	"slices"
	"strings"
)

// Command is one external process invocation.
type Command struct {
	// Args holds the program name followed by its arguments.
	Args []string
	// Dir is the process working directory. Empty means the current directory.
	Dir string
	// Env overrides entries of the inherited environment.
	Env map[string]string
	// TTY runs the process under a pseudo-terminal.
	TTY bool
}

// GenerateCommand returns the generation command for task, run inside the task directory.
func (tc Toolchain) GenerateCommand(task BuildTask) Command {
	return Command{
		Args: slices.Clone(tc.Generate),
		Dir:  task.Dir,
		Env:  tc.Env,
		TTY:  tc.TTY,
	}
}

// BuildCommand returns the build command for task. It runs in root, where
// the toolchain drops its artifact, with DirPlaceholder replaced by the
// task directory.
func (tc Toolchain) BuildCommand(root string, task BuildTask) Command {
	args := make([]string, len(tc.Build))
	for i, arg := range tc.Build {
		args[i] = strings.ReplaceAll(arg, DirPlaceholder, task.Dir)
	}
	return Command{
		Args: args,
		Dir:  root,
		Env:  tc.Env,
		TTY:  tc.TTY,
	}
}
