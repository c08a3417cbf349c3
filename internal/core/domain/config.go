package domain

import (
	"maps"
	"path/filepath"
	"slices"
)

// Toolchain holds the external commands that compile a grammar.
type Toolchain struct {
	// Generate runs in the task directory before Build when the recipe asks for it.
	Generate []string
	// Build runs in the run root. DirPlaceholder is replaced with the task directory.
	Build []string
	// Env is merged over the process environment for every command.
	Env map[string]string
	// TTY runs commands under a pseudo-terminal.
	TTY bool
}

// Config is the resolved build configuration for one run.
type Config struct {
	// Root is the absolute run root. Relative paths below are joined to it.
	Root string
	// Manifest is the package manifest whose devDependencies are scanned. Empty disables scanning.
	Manifest string
	// Prefix restricts manifest names to those starting with it.
	Prefix string
	// Exclude lists manifest names that are never targets.
	Exclude []string
	// Grammars lists declared target names, in declaration order.
	Grammars []string
	// Always lists target names appended regardless of the declared list.
	Always []string
	// Recipes maps target names to their recipe. Missing names use the default recipe.
	Recipes map[string]Recipe
	// Vendored lists targets built from <root>/<name> after the pool drains, when present.
	Vendored []string
	// Prebuilt lists artifact files copied from the root into the output directory, when present.
	Prebuilt []string
	// OutDir is the output directory relative to Root.
	OutDir string
	// PackagesDir is the installed packages directory relative to Root.
	PackagesDir string
	// ArtifactExt is the extension of produced artifacts.
	ArtifactExt string
	// Concurrency bounds in-flight tasks. Zero means one per logical CPU.
	Concurrency int
	Toolchain   Toolchain
}

// DefaultConfig returns the built-in configuration rooted at root.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:     root,
		Manifest: DefaultManifestName,
		Prefix:   "tree-sitter-",
		Exclude:  []string{"tree-sitter-cli"},
		Always: []string{
			"@tree-sitter-grammars/tree-sitter-zig",
			"@tlaplus/tree-sitter-tlaplus",
		},
		Recipes: map[string]Recipe{
			"tree-sitter-rescript":   {Kind: RecipeWithGeneration},
			"tree-sitter-ocaml":      {Kind: RecipeSubPath, SubPaths: []string{"ocaml"}},
			"tree-sitter-php":        {Kind: RecipeSubPath, SubPaths: []string{"php"}},
			"tree-sitter-typescript": {Kind: RecipeMultiSubPath, SubPaths: []string{"typescript", "tsx"}},
		},
		Vendored:    []string{"tree-sitter-haskell"},
		Prebuilt:    []string{"tree-sitter-purescript.wasm"},
		OutDir:      DefaultOutDirName,
		PackagesDir: DefaultPackagesDirName,
		ArtifactExt: DefaultArtifactExt,
		Toolchain: Toolchain{
			Generate: []string{"pnpm", "tree-sitter", "generate"},
			Build:    []string{"pnpm", "tree-sitter", "build-wasm", DirPlaceholder},
		},
	}
}

// OutPath returns the absolute output directory.
func (c *Config) OutPath() string {
	return filepath.Join(c.Root, c.OutDir)
}

// RecipeFor returns the recipe declared for name, or the default recipe.
func (c *Config) RecipeFor(name string) Recipe {
	if r, ok := c.Recipes[name]; ok {
		return r
	}
	return Recipe{}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Exclude = slices.Clone(c.Exclude)
	out.Grammars = slices.Clone(c.Grammars)
	out.Always = slices.Clone(c.Always)
	out.Recipes = maps.Clone(c.Recipes)
	out.Vendored = slices.Clone(c.Vendored)
	out.Prebuilt = slices.Clone(c.Prebuilt)
	out.Toolchain.Generate = slices.Clone(c.Toolchain.Generate)
	out.Toolchain.Build = slices.Clone(c.Toolchain.Build)
	out.Toolchain.Env = maps.Clone(c.Toolchain.Env)
	return &out
}
