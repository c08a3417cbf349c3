package stager_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsbuild/internal/adapters/stager"
	"go.trai.ch/tsbuild/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func digest(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestStager_Reset(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	writeFile(t, filepath.Join(out, "stale.wasm"), "old")
	writeFile(t, filepath.Join(out, "nested", "deep.wasm"), "old")

	s := stager.New()
	require.NoError(t, s.Reset(out))
	assert.DirExists(t, out)
	assert.Empty(t, listDir(t, out))

	require.NoError(t, os.RemoveAll(out))
	require.NoError(t, s.Reset(out), "missing directory is created")
	assert.DirExists(t, out)
}

func TestStager_Present(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "tree-sitter-haskell"), domain.DirPerm))
	writeFile(t, filepath.Join(root, "tree-sitter-file"), "not a dir")

	got := stager.New().Present(root, []string{"tree-sitter-file", "tree-sitter-haskell", "tree-sitter-missing"})
	assert.Equal(t, []string{"tree-sitter-haskell"}, got)
}

func TestStager_CopyPrebuilt(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	require.NoError(t, os.Mkdir(out, domain.DirPerm))
	writeFile(t, filepath.Join(root, "tree-sitter-purescript.wasm"), "purescript")
	writeFile(t, filepath.Join(root, "prebuilt", "tree-sitter-elm.wasm"), "elm")

	artifacts, err := stager.New().CopyPrebuilt(context.Background(), root, out,
		[]string{"tree-sitter-purescript.wasm", "missing.wasm", "prebuilt/tree-sitter-elm.wasm"})
	require.NoError(t, err)

	assert.Equal(t, []domain.Artifact{
		{Name: "tree-sitter-purescript.wasm", Digest: digest("purescript")},
		{Name: "tree-sitter-elm.wasm", Digest: digest("elm")},
	}, artifacts)
	assert.FileExists(t, filepath.Join(root, "tree-sitter-purescript.wasm"), "source is kept")

	data, err := os.ReadFile(filepath.Join(out, "tree-sitter-elm.wasm"))
	require.NoError(t, err)
	assert.Equal(t, "elm", string(data))
}

func TestStager_CopyPrebuilt_MissingOutDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.wasm"), "a")

	_, err := stager.New().CopyPrebuilt(context.Background(), root, filepath.Join(root, "nope"), []string{"a.wasm"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrArtifactCopyFailed.Error())
}

func TestStager_Relocate(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	require.NoError(t, os.Mkdir(out, domain.DirPerm))
	writeFile(t, filepath.Join(root, "tree-sitter-go.wasm"), "go")
	writeFile(t, filepath.Join(root, "tree-sitter-tsx.wasm"), "tsx")
	writeFile(t, filepath.Join(root, "tree-sitter-purescript.wasm"), "purescript")
	writeFile(t, filepath.Join(root, "package.json"), "{}")
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir.wasm"), domain.DirPerm))

	artifacts, err := stager.New().Relocate(root, out, ".wasm", []string{"tree-sitter-purescript.wasm"})
	require.NoError(t, err)

	assert.Equal(t, []domain.Artifact{
		{Name: "tree-sitter-go.wasm", Digest: digest("go")},
		{Name: "tree-sitter-tsx.wasm", Digest: digest("tsx")},
	}, artifacts)
	assert.ElementsMatch(t, []string{"tree-sitter-go.wasm", "tree-sitter-tsx.wasm"}, listDir(t, out))
	assert.NoFileExists(t, filepath.Join(root, "tree-sitter-go.wasm"))
	assert.FileExists(t, filepath.Join(root, "tree-sitter-purescript.wasm"))
	assert.DirExists(t, filepath.Join(root, "dir.wasm"))
}

func TestStager_Relocate_MissingRoot(t *testing.T) {
	_, err := stager.New().Relocate(filepath.Join(t.TempDir(), "gone"), t.TempDir(), ".wasm", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrRelocationFailed.Error())
}

func TestStager_Sweep(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tree-sitter-go.wasm"), "left over")
	writeFile(t, filepath.Join(root, "tree-sitter-purescript.wasm"), "purescript")
	writeFile(t, filepath.Join(root, "package.json"), "{}")
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir.wasm"), domain.DirPerm))

	removed, err := stager.New().Sweep(root, ".wasm", []string{"tree-sitter-purescript.wasm"})
	require.NoError(t, err)

	assert.Equal(t, []string{"tree-sitter-go.wasm"}, removed)
	assert.NoFileExists(t, filepath.Join(root, "tree-sitter-go.wasm"))
	assert.FileExists(t, filepath.Join(root, "tree-sitter-purescript.wasm"))
	assert.FileExists(t, filepath.Join(root, "package.json"))
	assert.DirExists(t, filepath.Join(root, "dir.wasm"))
}

func TestStager_Sweep_Clean(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "grammar.js"), "module.exports = {}")

	removed, err := stager.New().Sweep(root, ".wasm", nil)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestStager_Sweep_MissingRoot(t *testing.T) {
	_, err := stager.New().Sweep(filepath.Join(t.TempDir(), "gone"), ".wasm", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrStaleArtifactRemoveFailed.Error())
}
