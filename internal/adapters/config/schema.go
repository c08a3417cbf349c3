package config

// File is the structure of tsbuild.yaml. It is decoded over the defaults, so
// absent keys keep their default value and recipe entries add to the
// default recipe set.
type File struct {
	Version     string                `yaml:"version"`
	Manifest    string                `yaml:"manifest"`
	Prefix      string                `yaml:"prefix"`
	Exclude     []string              `yaml:"exclude"`
	Grammars    []string              `yaml:"grammars"`
	Always      []string              `yaml:"always"`
	Recipes     map[string]*RecipeDTO `yaml:"recipes"`
	Vendored    []string              `yaml:"vendored"`
	Prebuilt    []string              `yaml:"prebuilt"`
	OutDir      string                `yaml:"outDir"`
	PackagesDir string                `yaml:"packagesDir"`
	ArtifactExt string                `yaml:"artifactExt"`
	Concurrency int                   `yaml:"concurrency"`
	Toolchain   ToolchainDTO          `yaml:"toolchain"`
}

// RecipeDTO is the declarative form of a build recipe.
type RecipeDTO struct {
	Generate bool     `yaml:"generate"`
	SubPaths []string `yaml:"subPaths"`
}

// ToolchainDTO holds the commands that compile a grammar.
type ToolchainDTO struct {
	Generate []string          `yaml:"generate"`
	Build    []string          `yaml:"build"`
	Env      map[string]string `yaml:"env"`
	TTY      bool              `yaml:"tty"`
}
