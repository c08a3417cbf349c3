package locator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsbuild/internal/adapters/locator"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLocator_Locate(t *testing.T) {
	t.Run("main pointing at a directory with index.js", func(t *testing.T) {
		root := t.TempDir()
		pkg := filepath.Join(root, "node_modules", "tree-sitter-go")
		writeFile(t, filepath.Join(pkg, "package.json"), `{"name":"tree-sitter-go","main":"bindings/node"}`)
		writeFile(t, filepath.Join(pkg, "bindings", "node", "index.js"), "")

		assert.Equal(t, pkg, locator.New().Locate(root, "node_modules", "tree-sitter-go"))
	})

	t.Run("scoped package resolved from an ancestor", func(t *testing.T) {
		workspace := t.TempDir()
		root := filepath.Join(workspace, "packages", "grammars")
		require.NoError(t, os.MkdirAll(root, 0o750))

		pkg := filepath.Join(workspace, "node_modules", "@tlaplus", "tree-sitter-tlaplus")
		writeFile(t, filepath.Join(pkg, "package.json"), `{"main":"index.js"}`)
		writeFile(t, filepath.Join(pkg, "index.js"), "")

		assert.Equal(t, pkg, locator.New().Locate(root, "node_modules", "@tlaplus/tree-sitter-tlaplus"))
	})

	t.Run("nested manifest below the entry is the package root", func(t *testing.T) {
		root := t.TempDir()
		pkg := filepath.Join(root, "node_modules", "tree-sitter-x")
		writeFile(t, filepath.Join(pkg, "package.json"), `{"main":"lib/main"}`)
		writeFile(t, filepath.Join(pkg, "lib", "package.json"), `{}`)
		writeFile(t, filepath.Join(pkg, "lib", "main.js"), "")

		assert.Equal(t, filepath.Join(pkg, "lib"), locator.New().Locate(root, "node_modules", "tree-sitter-x"))
	})

	t.Run("missing entry falls back to convention", func(t *testing.T) {
		root := t.TempDir()
		pkg := filepath.Join(root, "node_modules", "tree-sitter-ocaml")
		writeFile(t, filepath.Join(pkg, "package.json"), `{"main":"bindings/node"}`)

		assert.Equal(t, pkg, locator.New().Locate(root, "node_modules", "tree-sitter-ocaml"))
	})

	t.Run("unknown package falls back to convention", func(t *testing.T) {
		root := t.TempDir()

		assert.Equal(t,
			filepath.Join(root, "vendor", "tree-sitter-none"),
			locator.New().Locate(root, "vendor", "tree-sitter-none"),
		)
	})
}
