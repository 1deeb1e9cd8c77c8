package services

import "fmt"

// ProviderFactory turns a service Collection into a Provider by way of an
// intermediate, factory-specific container builder.
//
// The builder value is opaque at this level: a custom factory may return any
// container-specific type from CreateBuilder, so long as CreateProvider
// accepts the same value back. The default factory uses the Collection
// itself as the builder.
type ProviderFactory interface {
	// CreateBuilder produces the factory's container builder from the
	// accumulated registrations.
	CreateBuilder(c *Collection) (any, error)

	// CreateProvider turns a builder previously produced by CreateBuilder
	// into the final Provider.
	CreateProvider(builder any) (Provider, error)
}

// DefaultFactory is the built-in ProviderFactory: the Collection doubles as
// the container builder and the provider is a keyed registry over it.
type DefaultFactory struct{}

func (DefaultFactory) CreateBuilder(c *Collection) (any, error) {
	return c, nil
}

func (DefaultFactory) CreateProvider(builder any) (Provider, error) {
	c, ok := builder.(*Collection)
	if !ok {
		return nil, fmt.Errorf("services: %w: got %T", ErrNotCollection, builder)
	}
	return newRegistry(c), nil
}
