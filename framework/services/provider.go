package services

import (
	"fmt"
	"sync"
)

// ── Provider ──────────────────────────────────────────────────────────────────

// Provider resolves services that were registered in a Collection.
type Provider interface {
	// Get resolves the service registered under key. Singleton services are
	// cached after the first call; transient services are rebuilt each time.
	Get(key string) (any, error)

	// Has reports whether key can be resolved.
	Has(key string) bool
}

// GetAs resolves a service and type-asserts the result.
//
//	cache, err := services.GetAs[*redis.Client](provider, "cache")
func GetAs[T any](p Provider, key string) (T, error) {
	var zero T
	instance, err := p.Get(key)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("services: %q resolved to %T, want %T", key, instance, zero)
	}
	return typed, nil
}

// ── registry provider ─────────────────────────────────────────────────────────

// registry is the provider the default factory produces. It resolves by key
// against the collection's descriptors, honoring last-registration-wins and
// caching singletons.
type registry struct {
	mu         sync.Mutex
	byKey      map[string]Descriptor
	singletons map[string]any
}

func newRegistry(c *Collection) *registry {
	byKey := make(map[string]Descriptor, c.Len())
	for _, d := range c.Descriptors() {
		byKey[d.Key] = d // later registrations overwrite earlier ones
	}
	return &registry{
		byKey:      byKey,
		singletons: make(map[string]any),
	}
}

func (r *registry) Get(key string) (any, error) {
	r.mu.Lock()
	d, ok := r.byKey[key]
	if !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("services: %w: %q", ErrServiceNotFound, key)
	}
	if instance, cached := r.singletons[key]; cached {
		r.mu.Unlock()
		return instance, nil
	}
	r.mu.Unlock()

	if d.Instance != nil {
		r.mu.Lock()
		r.singletons[key] = d.Instance
		r.mu.Unlock()
		return d.Instance, nil
	}

	// Factory runs outside the lock so it can resolve its own dependencies.
	instance, err := d.Factory(r)
	if err != nil {
		return nil, fmt.Errorf("services: building %q: %w", key, err)
	}
	if d.Lifetime == Singleton {
		r.mu.Lock()
		r.singletons[key] = instance
		r.mu.Unlock()
	}
	return instance, nil
}

func (r *registry) Has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byKey[key]
	return ok
}
