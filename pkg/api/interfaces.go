// Package api provides interfaces for dependency injection
package api

import (
	"context"
	"log/slog"

	"github.com/ssargent/vsvdb/pkg/codec"
	"github.com/ssargent/vsvdb/pkg/library"
)

// PayloadLibrary is the named payload history the server reads and writes
type PayloadLibrary interface {
	Save(name string, rec codec.Record) (*library.Revision, error)
	Latest(name string) (*library.Revision, error)
	History(name string) ([]*library.Revision, error)
	List() ([]string, error)
	Delete(name string) error
	Close() error
}

// LibraryFactory opens payload libraries
type LibraryFactory interface {
	// OpenLibrary opens or creates the library stored in dir
	OpenLibrary(dir string, logger *slog.Logger) (PayloadLibrary, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves the API until ctx is cancelled
	StartServer(ctx context.Context, lib PayloadLibrary, config ServerConfig, logger *slog.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
