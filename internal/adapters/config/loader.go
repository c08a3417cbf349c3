// Package config provides the configuration loader for tsbuild.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const supportedVersion = "1"

// Loader implements ports.ConfigLoader using tsbuild.yaml and the package manifest.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration for a run started in cwd.
// The nearest tsbuild.yaml at or above cwd sets the run root. Without one,
// cwd is the root and the built-in defaults apply.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	file := defaultFile()
	root := abs

	if configPath, ok := findConfiguration(abs); ok {
		if err := readAndUnmarshalYAML(configPath, &file); err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
		root = filepath.Dir(configPath)
	}

	cfg, err := toDomain(root, &file)
	if err != nil {
		return nil, err
	}

	if err := l.discoverGrammars(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) discoverGrammars(cfg *domain.Config) error {
	if cfg.Manifest == "" {
		return nil
	}

	path := cfg.Manifest
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Root, path)
	}

	names, found, err := scanManifest(path, cfg.Prefix, cfg.Exclude)
	if err != nil {
		return err
	}
	if !found {
		l.Logger.Warn(fmt.Sprintf("no %s in %s, only declared grammars are built", cfg.Manifest, cfg.Root))
		return nil
	}

	cfg.Grammars = append(names, cfg.Grammars...)
	return nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

// defaultFile renders the built-in configuration in file form.
func defaultFile() File {
	def := domain.DefaultConfig("")

	recipes := make(map[string]*RecipeDTO, len(def.Recipes))
	for name, r := range def.Recipes {
		recipes[name] = &RecipeDTO{Generate: r.NeedsGeneration(), SubPaths: slices.Clone(r.SubPaths)}
	}

	return File{
		Version:     supportedVersion,
		Manifest:    def.Manifest,
		Prefix:      def.Prefix,
		Exclude:     def.Exclude,
		Always:      def.Always,
		Recipes:     recipes,
		Vendored:    def.Vendored,
		Prebuilt:    def.Prebuilt,
		OutDir:      def.OutDir,
		PackagesDir: def.PackagesDir,
		ArtifactExt: def.ArtifactExt,
		Toolchain: ToolchainDTO{
			Generate: def.Toolchain.Generate,
			Build:    def.Toolchain.Build,
		},
	}
}

func toDomain(root string, f *File) (*domain.Config, error) {
	if f.Version != supportedVersion {
		return nil, zerr.With(domain.ErrConfigParseFailed, "version", f.Version)
	}
	if f.Concurrency < 0 {
		return nil, zerr.With(domain.ErrInvalidConcurrency, "concurrency", f.Concurrency)
	}
	if len(f.Toolchain.Build) == 0 {
		return nil, domain.ErrMissingBuildCommand
	}
	if err := validateOutDir(root, f.OutDir); err != nil {
		return nil, err
	}
	if err := validateArtifactExt(f.ArtifactExt); err != nil {
		return nil, err
	}
	for _, list := range [][]string{f.Grammars, f.Always, f.Vendored, f.Prebuilt} {
		if slices.Contains(list, "") {
			return nil, domain.ErrEmptyTargetName
		}
	}

	recipes := make(map[string]domain.Recipe, len(f.Recipes))
	for name, dto := range f.Recipes {
		if dto == nil {
			recipes[name] = domain.Recipe{}
			continue
		}
		r, err := domain.NewRecipe(dto.Generate, dto.SubPaths)
		if err != nil {
			return nil, zerr.With(err, "target", name)
		}
		recipes[name] = r
	}

	return &domain.Config{
		Root:        root,
		Manifest:    f.Manifest,
		Prefix:      f.Prefix,
		Exclude:     f.Exclude,
		Grammars:    f.Grammars,
		Always:      f.Always,
		Recipes:     recipes,
		Vendored:    f.Vendored,
		Prebuilt:    f.Prebuilt,
		OutDir:      filepath.Clean(f.OutDir),
		PackagesDir: f.PackagesDir,
		ArtifactExt: f.ArtifactExt,
		Concurrency: f.Concurrency,
		Toolchain: domain.Toolchain{
			Generate: f.Toolchain.Generate,
			Build:    f.Toolchain.Build,
			Env:      f.Toolchain.Env,
			TTY:      f.Toolchain.TTY,
		},
	}, nil
}

// validateOutDir rejects output directories that are the root itself or
// resolve outside of it, since the output directory is removed on every run.
func validateOutDir(root, outDir string) error {
	if outDir == "" || filepath.IsAbs(outDir) {
		return zerr.With(domain.ErrOutputPathOutsideRoot, "out_dir", outDir)
	}
	rel, err := filepath.Rel(root, filepath.Join(root, outDir))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return zerr.With(domain.ErrOutputPathOutsideRoot, "out_dir", outDir)
	}
	return nil
}

// validateArtifactExt requires a dot-prefixed extension without separators.
// Relocation and the stale sweep match root files by this suffix.
func validateArtifactExt(ext string) error {
	if len(ext) < 2 || ext[0] != '.' || strings.ContainsAny(ext, `/\`) {
		return zerr.With(domain.ErrInvalidArtifactExt, "artifact_ext", ext)
	}
	return nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from cwd
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
