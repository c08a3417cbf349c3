package domain

import "path/filepath"

// Target is one named grammar to compile.
// Targets are read-only once resolved.
type Target struct {
	Name   string
	Recipe Recipe
}

// BuildTask is one compiler invocation derived from a target.
type BuildTask struct {
	// Target is the name of the owning target.
	Target string
	// SubPath is the recipe sub-path, empty for the package root.
	SubPath string
	// Dir is the absolute directory the grammar is built from.
	Dir string
	// Generate runs the generation command before the build command.
	Generate bool
	// Local marks a task built from a vendored copy under the run root.
	Local bool
}

// Label identifies the task in logs and reports.
func (t BuildTask) Label() string {
	label := t.Target
	if t.SubPath != "" {
		label = filepath.ToSlash(filepath.Join(t.Target, t.SubPath))
	}
	if t.Local {
		label += " (local)"
	}
	return label
}

// Tasks derives the build tasks of a target whose package root is dir.
// A target with N sub-paths yields N tasks, any other target exactly one.
func (t Target) Tasks(dir string) []BuildTask {
	steps := t.Recipe.Steps()
	tasks := make([]BuildTask, 0, len(steps))
	for _, step := range steps {
		taskDir := dir
		if step.SubPath != "" {
			taskDir = filepath.Join(dir, step.SubPath)
		}
		tasks = append(tasks, BuildTask{
			Target:   t.Name,
			SubPath:  step.SubPath,
			Dir:      taskDir,
			Generate: step.Generate,
		})
	}
	return tasks
}
