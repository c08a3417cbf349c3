package domain

import "strings"

// SelectTargets computes the target set of a run.
// Declared names come first, then the always-appended names, and the
// case-sensitive substring filter applies to both. Duplicates keep their
// first position. An empty filter selects every name.
func SelectTargets(cfg *Config, filter string) []Target {
	seen := make(map[string]struct{}, len(cfg.Grammars)+len(cfg.Always))
	var targets []Target

	add := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		if filter != "" && !strings.Contains(name, filter) {
			return
		}
		targets = append(targets, Target{Name: name, Recipe: cfg.RecipeFor(name)})
	}

	for _, name := range cfg.Grammars {
		add(name)
	}
	for _, name := range cfg.Always {
		add(name)
	}
	return targets
}
