package ports

import "go.alchm.dev/scullery/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration starting from the given working
	// directory and returns the validated config.
	Load(cwd string) (*domain.Config, error)

	// DiscoverRoot walks up from cwd to find the workspace root: the
	// directory containing scullery.yaml.
	DiscoverRoot(cwd string) (string, error)
}
