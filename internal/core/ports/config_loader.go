package ports

import "go.trai.ch/donk/internal/core/domain"

// ConfigLoader defines the interface for loading the command configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Discover returns the absolute path of the config file. explicit, when
	// not empty, is used as is; otherwise the default names are tried in cwd.
	Discover(cwd, explicit string) (string, error)

	// Load reads the config file at path and builds the command model.
	Load(path string) (*domain.Commands, error)
}
