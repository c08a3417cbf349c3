package ports

import "go.trai.ch/tsbuild/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration starting at cwd and returns it resolved against its root.
	// Declared grammar names include those discovered in the package manifest.
	Load(cwd string) (*domain.Config, error)
}
