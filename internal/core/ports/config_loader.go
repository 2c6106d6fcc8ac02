package ports

import "go.trai.ch/plotpy/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path. A missing file yields the defaults.
	// Environment overrides are applied on top of the file.
	Load(path string) (domain.Config, error)
}
