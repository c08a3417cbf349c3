// Package stager owns the output directory: it resets it before a run and
// publishes artifacts into it afterwards.
package stager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Stager implements ports.Stager on the local filesystem.
type Stager struct{}

var _ ports.Stager = (*Stager)(nil)

// New creates a new Stager.
func New() *Stager {
	return &Stager{}
}

// Reset removes outDir recursively and recreates it empty.
func (s *Stager) Reset(outDir string) error {
	if err := os.RemoveAll(outDir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputResetFailed.Error()), "path", outDir)
	}
	if err := os.MkdirAll(outDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputResetFailed.Error()), "path", outDir)
	}
	return nil
}

// Sweep removes the regular files directly under root whose name ends in
// ext, except those listed in keep. It returns the removed names.
func (s *Stager) Sweep(root, ext string, keep []string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStaleArtifactRemoveFailed.Error()), "root", root)
	}

	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if !isArtifact(entry, ext) || slices.Contains(keep, name) {
			continue
		}
		if err := os.Remove(filepath.Join(root, name)); err != nil {
			return removed, zerr.With(zerr.Wrap(err, domain.ErrStaleArtifactRemoveFailed.Error()), "file", name)
		}
		removed = append(removed, name)
	}
	return removed, nil
}

// Present returns the names for which <root>/<name> is a directory.
func (s *Stager) Present(root string, names []string) []string {
	var present []string
	for _, name := range names {
		if info, err := os.Stat(filepath.Join(root, name)); err == nil && info.IsDir() {
			present = append(present, name)
		}
	}
	return present
}

// CopyPrebuilt copies each file found under root into outDir, concurrently.
// Missing files are skipped. Artifacts are returned in the order of files.
func (s *Stager) CopyPrebuilt(ctx context.Context, root, outDir string, files []string) ([]domain.Artifact, error) {
	results := make([]*domain.Artifact, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		src := filepath.Join(root, file)
		if info, err := os.Stat(src); err != nil || !info.Mode().IsRegular() {
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name := filepath.Base(file)
			digest, err := copyFile(src, filepath.Join(outDir, name))
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error()), "file", file)
			}
			results[i] = &domain.Artifact{Name: name, Digest: digest}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var artifacts []domain.Artifact
	for _, a := range results {
		if a != nil {
			artifacts = append(artifacts, *a)
		}
	}
	return artifacts, nil
}

// Relocate moves every regular file directly under root whose name ends in
// ext into outDir. Names in exclude stay in place.
func (s *Stager) Relocate(root, outDir, ext string, exclude []string) ([]domain.Artifact, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRelocationFailed.Error()), "root", root)
	}

	var artifacts []domain.Artifact
	for _, entry := range entries {
		name := entry.Name()
		if !isArtifact(entry, ext) || slices.Contains(exclude, name) {
			continue
		}

		src := filepath.Join(root, name)
		digest, err := hashFile(src)
		if err != nil {
			return artifacts, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "file", name)
		}
		if err := move(src, filepath.Join(outDir, name)); err != nil {
			return artifacts, zerr.With(zerr.Wrap(err, domain.ErrRelocationFailed.Error()), "file", name)
		}
		artifacts = append(artifacts, domain.Artifact{Name: name, Digest: digest})
	}
	return artifacts, nil
}

func isArtifact(entry os.DirEntry, ext string) bool {
	return ext != "" && entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), ext)
}

// move renames src to dst, copying across filesystems when rename cannot.
func move(src, dst string) error {
	err := os.Rename(src, dst)
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if _, err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFile copies src to dst and returns the xxhash digest of the content.
func copyFile(src, dst string) (string, error) {
	// #nosec G304 -- src is a configured artifact under the run root
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer func() { _ = in.Close() }()

	// #nosec G304 -- dst is inside the output directory
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return "", err
	}

	h := xxhash.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		_ = out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return formatDigest(h.Sum64()), nil
}

func hashFile(path string) (string, error) {
	// #nosec G304 -- path is an artifact under the run root
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return formatDigest(h.Sum64()), nil
}

func formatDigest(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
