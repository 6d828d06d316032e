// Package api provides factory implementations for dependency injection
package api

import (
	"context"
	"log/slog"

	"github.com/ssargent/vsvdb/pkg/library"
)

// DefaultLibraryFactory opens pebble-backed libraries
type DefaultLibraryFactory struct{}

// NewLibraryFactory creates a new library factory
func NewLibraryFactory() LibraryFactory {
	return &DefaultLibraryFactory{}
}

// OpenLibrary opens the library stored in dir
func (f *DefaultLibraryFactory) OpenLibrary(dir string, logger *slog.Logger) (PayloadLibrary, error) {
	lib, err := library.Open(dir, logger)
	if err != nil {
		return nil, err
	}
	return lib, nil
}

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer starts the API server with the given configuration
func (s *DefaultServerStarter) StartServer(
	ctx context.Context,
	lib PayloadLibrary,
	config ServerConfig,
	logger *slog.Logger,
) error {
	return StartServer(ctx, lib, config, logger)
}
