package domain

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// RecipeKind tags the variant of a build recipe.
type RecipeKind int

const (
	// RecipeDefault builds once at the package root.
	RecipeDefault RecipeKind = iota
	// RecipeWithGeneration runs the generation command before building at the package root.
	RecipeWithGeneration
	// RecipeSubPath builds once inside a single named sub-directory.
	RecipeSubPath
	// RecipeMultiSubPath builds once per named sub-directory, in declared order.
	RecipeMultiSubPath
)

// String returns the variant name.
func (k RecipeKind) String() string {
	switch k {
	case RecipeDefault:
		return "default"
	case RecipeWithGeneration:
		return "generate"
	case RecipeSubPath:
		return "sub-path"
	case RecipeMultiSubPath:
		return "multi-sub-path"
	default:
		return "unknown"
	}
}

// Recipe describes how a target is built.
// The zero value is the default recipe.
type Recipe struct {
	Kind     RecipeKind
	SubPaths []string
}

// Step is one build invocation of a recipe.
type Step struct {
	// SubPath is relative to the package root. Empty means the root itself.
	SubPath  string
	Generate bool
}

// NewRecipe builds a tagged recipe from its declarative form.
// Generation and sub-paths cannot be combined.
func NewRecipe(generate bool, subPaths []string) (Recipe, error) {
	for _, p := range subPaths {
		if err := validateSubPath(p); err != nil {
			return Recipe{}, err
		}
	}

	switch {
	case generate && len(subPaths) > 0:
		return Recipe{}, ErrInvalidRecipe
	case generate:
		return Recipe{Kind: RecipeWithGeneration}, nil
	case len(subPaths) == 1:
		return Recipe{Kind: RecipeSubPath, SubPaths: slices.Clone(subPaths)}, nil
	case len(subPaths) > 1:
		return Recipe{Kind: RecipeMultiSubPath, SubPaths: slices.Clone(subPaths)}, nil
	default:
		return Recipe{Kind: RecipeDefault}, nil
	}
}

func validateSubPath(p string) error {
	if strings.TrimSpace(p) == "" || filepath.IsAbs(p) {
		return zerr.With(ErrInvalidSubPath, "sub_path", p)
	}
	for _, part := range strings.Split(filepath.ToSlash(p), "/") {
		if part == ".." {
			return zerr.With(ErrInvalidSubPath, "sub_path", p)
		}
	}
	return nil
}

// NeedsGeneration reports whether the recipe runs the generation command.
func (r Recipe) NeedsGeneration() bool {
	return r.Kind == RecipeWithGeneration
}

// Steps expands the recipe into its ordered build steps.
func (r Recipe) Steps() []Step {
	switch r.Kind {
	case RecipeWithGeneration:
		return []Step{{Generate: true}}
	case RecipeSubPath, RecipeMultiSubPath:
		steps := make([]Step, 0, len(r.SubPaths))
		for _, p := range r.SubPaths {
			steps = append(steps, Step{SubPath: p})
		}
		return steps
	default:
		return []Step{{}}
	}
}
