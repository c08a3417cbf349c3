// Package locator resolves grammar package roots the way Node resolves modules.
package locator

import (
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"go.trai.ch/tsbuild/internal/core/ports"
)

const (
	manifestName = "package.json"
	defaultMain  = "index.js"
)

// Locator implements ports.PackageLocator.
type Locator struct{}

var _ ports.PackageLocator = (*Locator)(nil)

// New creates a new Locator.
func New() *Locator {
	return &Locator{}
}

// Locate resolves the entry point of name from packagesDir directories at or
// above root, then returns the nearest ancestor of that entry holding a
// package.json. Unresolvable names map to <root>/<packagesDir>/<name>.
func (l *Locator) Locate(root, packagesDir, name string) string {
	if dir, ok := resolve(root, packagesDir, name); ok {
		return dir
	}
	return filepath.Join(root, packagesDir, name)
}

func resolve(root, packagesDir, name string) (string, bool) {
	for dir := root; ; {
		pkgDir := filepath.Join(dir, packagesDir, filepath.FromSlash(name))
		if entry, ok := entryPoint(pkgDir); ok {
			return packageRoot(entry)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// entryPoint returns the file a require of pkgDir would load.
func entryPoint(pkgDir string) (string, bool) {
	// #nosec G304 -- pkgDir is built from configured names under the run root
	data, err := os.ReadFile(filepath.Join(pkgDir, manifestName))
	if err != nil {
		return "", false
	}

	main := gjson.GetBytes(data, "main").String()
	if main == "" {
		main = defaultMain
	}
	base := filepath.Join(pkgDir, filepath.FromSlash(main))

	for _, candidate := range []string{
		base,
		base + ".js",
		base + ".json",
		base + ".node",
		filepath.Join(base, defaultMain),
		filepath.Join(pkgDir, defaultMain),
	} {
		if isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func packageRoot(entry string) (string, bool) {
	for dir := filepath.Dir(entry); ; {
		if isFile(filepath.Join(dir, manifestName)) {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
