// Package di provides dependency injection container
package di

import (
	"github.com/ssargent/vsvdb/pkg/api" //nolint:depguard
)

// Container holds all the dependencies for the application
type Container struct {
	libraryFactory api.LibraryFactory
	serverFactory  api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		libraryFactory: api.NewLibraryFactory(),
		serverFactory:  api.NewServerFactory(),
	}
}

// GetLibraryFactory returns the payload library factory
func (c *Container) GetLibraryFactory() api.LibraryFactory {
	return c.libraryFactory
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetLibraryFactory allows overriding the library factory (for testing)
func (c *Container) SetLibraryFactory(factory api.LibraryFactory) {
	c.libraryFactory = factory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}
