package config

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

// ── Source ────────────────────────────────────────────────────────────────────

// Source is a named origin of configuration key/value pairs.
//
// Sources are applied to a Snapshot in the order they are added; a source
// added later overrides earlier sources for any key both define.
//
//	snap := config.New()
//	snap.AddSource(config.YAMLSource("config.yaml"))  // base values
//	snap.AddSource(config.DotEnvSource(".env"))       // local overrides
//	snap.AddSource(config.EnvSource(""))              // process env wins
type Source interface {
	// Name identifies the source in errors and logs.
	Name() string

	// Load produces the source's current key/value pairs. It is called once
	// when the source is added and again on every Snapshot.Reload.
	Load() (map[string]string, error)
}

// ── Snapshot ──────────────────────────────────────────────────────────────────

// layer is one applied source's values.
type layer struct {
	source Source
	values map[string]string
}

// Snapshot is an ordered, layered key/value configuration store.
//
// Keys use upper-snake env style ("APP_NAME"). Lookup walks layers from the
// most recently added back to the first, so later sources override earlier
// ones. Values written with Set live in a dedicated override layer that wins
// over every source and survives Reload.
//
// A Snapshot may be shared with a Watcher goroutine, so access goes through
// an internal RWMutex. Within the bootstrap phase itself all calls are
// sequential.
type Snapshot struct {
	mu        sync.RWMutex
	layers    []layer
	overrides map[string]string
}

// New creates an empty Snapshot.
func New() *Snapshot {
	return &Snapshot{overrides: make(map[string]string)}
}

// AddSource loads src immediately and appends its values as the topmost
// source layer. The source is remembered so Reload can re-run it.
func (s *Snapshot) AddSource(src Source) error {
	values, err := src.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layers = append(s.layers, layer{source: src, values: values})
	return nil
}

// Reload re-runs every remembered source in its original order, replacing
// each layer's values. Overrides written with Set are preserved.
func (s *Snapshot) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.layers {
		values, err := s.layers[i].source.Load()
		if err != nil {
			return err
		}
		s.layers[i].values = values
	}
	return nil
}

// Set writes a key into the override layer, which takes precedence over
// every source.
func (s *Snapshot) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[key] = value
}

// Lookup returns the effective value for key and whether any layer defines it.
func (s *Snapshot) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.overrides[key]; ok {
		return v, true
	}
	for i := len(s.layers) - 1; i >= 0; i-- {
		if v, ok := s.layers[i].values[key]; ok {
			return v, true
		}
	}
	return "", false
}

// Get returns the effective value for key, or "" if unset.
func (s *Snapshot) Get(key string) string {
	v, _ := s.Lookup(key)
	return v
}

// GetDefault returns the effective value for key, falling back to def.
func (s *Snapshot) GetDefault(key, def string) string {
	if v, ok := s.Lookup(key); ok {
		return v
	}
	return def
}

// GetInt returns the value for key parsed as an int, or def if unset or
// unparsable.
func (s *Snapshot) GetInt(key string, def int) int {
	v, ok := s.Lookup(key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// GetBool returns the value for key parsed as a bool, or def if unset or
// unparsable.
func (s *Snapshot) GetBool(key string, def bool) bool {
	v, ok := s.Lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// GetDuration returns the value for key parsed as a time.Duration, or def.
func (s *Snapshot) GetDuration(key string, def time.Duration) time.Duration {
	v, ok := s.Lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// Has reports whether any layer defines key.
func (s *Snapshot) Has(key string) bool {
	_, ok := s.Lookup(key)
	return ok
}

// Keys returns every defined key, sorted.
func (s *Snapshot) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, l := range s.layers {
		for k := range l.values {
			seen[k] = struct{}{}
		}
	}
	for k := range s.overrides {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy with the same layers and overrides.
// The copy shares Source instances but not mutable state.
func (s *Snapshot) Clone() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &Snapshot{overrides: make(map[string]string, len(s.overrides))}
	for _, l := range s.layers {
		values := make(map[string]string, len(l.values))
		for k, v := range l.values {
			values[k] = v
		}
		clone.layers = append(clone.layers, layer{source: l.source, values: values})
	}
	for k, v := range s.overrides {
		clone.overrides[k] = v
	}
	return clone
}
