package services

import "fmt"

// ── Descriptor ────────────────────────────────────────────────────────────────

// Factory builds a service value, resolving dependencies from the provider.
type Factory func(p Provider) (any, error)

// Descriptor is one service registration: a key, a lifetime, and either a
// factory or a pre-built instance.
type Descriptor struct {
	Key      string
	Lifetime Lifetime
	Factory  Factory
	Instance any
}

// ── Collection ────────────────────────────────────────────────────────────────

// Collection is an ordered list of service registrations. It captures intent
// only — nothing is constructed until a provider is created from it.
//
// Registration order is preserved; when the same key is registered more than
// once the later registration wins at resolution time, so Replace is an
// optimization, not a requirement.
//
//	sc := services.NewCollection()
//	sc.AddSingleton("clock", func(p services.Provider) (any, error) {
//	    return clock.New(), nil
//	})
//	sc.AddInstance("config", cfg)
type Collection struct {
	descriptors []Descriptor
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add appends a descriptor.
func (c *Collection) Add(d Descriptor) error {
	if d.Key == "" {
		return fmt.Errorf("services: %w: empty key", ErrNilService)
	}
	if d.Factory == nil && d.Instance == nil {
		return fmt.Errorf("services: %w: %q has neither factory nor instance", ErrNilService, d.Key)
	}
	c.descriptors = append(c.descriptors, d)
	return nil
}

// AddSingleton registers a factory whose result is cached after first
// resolution.
func (c *Collection) AddSingleton(key string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("services: %w: %q", ErrNilService, key)
	}
	return c.Add(Descriptor{Key: key, Lifetime: Singleton, Factory: factory})
}

// AddTransient registers a factory that runs on every resolution.
func (c *Collection) AddTransient(key string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("services: %w: %q", ErrNilService, key)
	}
	return c.Add(Descriptor{Key: key, Lifetime: Transient, Factory: factory})
}

// AddInstance registers a pre-built value as a singleton.
func (c *Collection) AddInstance(key string, instance any) error {
	if instance == nil {
		return fmt.Errorf("services: %w: %q", ErrNilService, key)
	}
	return c.Add(Descriptor{Key: key, Lifetime: Singleton, Instance: instance})
}

// Replace swaps the first descriptor registered for key in place, preserving
// its position. If the key is absent the descriptor is appended.
func (c *Collection) Replace(d Descriptor) error {
	if d.Key == "" {
		return fmt.Errorf("services: %w: empty key", ErrNilService)
	}
	for i := range c.descriptors {
		if c.descriptors[i].Key == d.Key {
			c.descriptors[i] = d
			return nil
		}
	}
	return c.Add(d)
}

// Remove deletes every descriptor registered for key. It reports whether
// anything was removed.
func (c *Collection) Remove(key string) bool {
	kept := c.descriptors[:0]
	removed := false
	for _, d := range c.descriptors {
		if d.Key == key {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	c.descriptors = kept
	return removed
}

// Has reports whether any descriptor is registered for key.
func (c *Collection) Has(key string) bool {
	for _, d := range c.descriptors {
		if d.Key == key {
			return true
		}
	}
	return false
}

// Len returns the number of registrations.
func (c *Collection) Len() int { return len(c.descriptors) }

// Descriptors returns a copy of the registrations in order.
func (c *Collection) Descriptors() []Descriptor {
	out := make([]Descriptor, len(c.descriptors))
	copy(out, c.descriptors)
	return out
}
