package ports

import (
	"context"

	"go.trai.ch/tsbuild/internal/core/domain"
)

// Stager prepares the output directory and publishes artifacts into it.
//
//go:generate mockgen -source=stager.go -destination=mocks/mock_stager.go -package=mocks
type Stager interface {
	// Reset removes outDir if it exists and creates it empty.
	Reset(outDir string) error

	// Sweep removes files in root with extension ext left by earlier runs,
	// keeping names listed in keep. It returns the removed names.
	Sweep(root, ext string, keep []string) ([]string, error)

	// Present returns, in order, the names for which <root>/<name> is a directory.
	Present(root string, names []string) []string

	// CopyPrebuilt copies the files that exist under root verbatim into outDir.
	CopyPrebuilt(ctx context.Context, root, outDir string, files []string) ([]domain.Artifact, error)

	// Relocate moves every file in root with extension ext into outDir,
	// skipping names listed in exclude.
	Relocate(root, outDir, ext string, exclude []string) ([]domain.Artifact, error)
}
