// Package planner turns the selected targets into build tasks.
package planner

import (
	"path/filepath"

	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
)

// Planner resolves target directories and expands recipes.
type Planner struct {
	locator ports.PackageLocator
}

// New creates a Planner using locator for package roots.
func New(locator ports.PackageLocator) *Planner {
	return &Planner{locator: locator}
}

// Tasks expands targets into build tasks in target order. Each target is
// located once, then split by its recipe.
func (p *Planner) Tasks(cfg *domain.Config, targets []domain.Target) []domain.BuildTask {
	var tasks []domain.BuildTask
	for _, target := range targets {
		dir := p.locator.Locate(cfg.Root, cfg.PackagesDir, target.Name)
		tasks = append(tasks, target.Tasks(dir)...)
	}
	return tasks
}

// LocalTasks expands vendored targets that live at <root>/<name>.
// They are not located through the package directory.
func (p *Planner) LocalTasks(cfg *domain.Config, names []string) []domain.BuildTask {
	var tasks []domain.BuildTask
	for _, name := range names {
		target := domain.Target{Name: name, Recipe: cfg.RecipeFor(name)}
		for _, task := range target.Tasks(filepath.Join(cfg.Root, name)) {
			task.Local = true
			tasks = append(tasks, task)
		}
	}
	return tasks
}
