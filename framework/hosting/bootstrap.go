package hosting

import (
	"fmt"

	"github.com/km-arc/go-hosting/framework/config"
	"github.com/km-arc/go-hosting/framework/services"
)

// ── Callback types ────────────────────────────────────────────────────────────

// HostConfigFunc mutates the configuration that host-defining settings are
// read from.
type HostConfigFunc func(*config.Snapshot) error

// AppConfigFunc mutates application configuration with the resolved
// environment in hand.
type AppConfigFunc func(*Context, *config.Snapshot) error

// ServicesFunc registers services.
type ServicesFunc func(*Context, *services.Collection) error

// Configurator is the host configuration surface shared by both build
// phases. During bootstrap it is backed by a BootstrapBuilder that only
// records callbacks; once the environment is resolved the same call sites
// are served by a HostBuilder that executes them immediately.
type Configurator interface {
	ConfigureHostConfiguration(HostConfigFunc) error
	ConfigureAppConfiguration(AppConfigFunc) error
	ConfigureServices(ServicesFunc) error
}

// ── BootstrapBuilder ──────────────────────────────────────────────────────────

// BootstrapBuilder collects configuration and service-registration callbacks
// without executing them. It exists to capture intent before the environment,
// content root, and application name are fixed; Apply replays everything once
// they can be resolved.
type BootstrapBuilder struct {
	hostConfig []HostConfigFunc
	appConfig  []AppConfigFunc
	services   []ServicesFunc
}

// NewBootstrapBuilder creates an empty collector.
func NewBootstrapBuilder() *BootstrapBuilder {
	return &BootstrapBuilder{}
}

// ConfigureHostConfiguration records fn for the host-configuration pass.
func (b *BootstrapBuilder) ConfigureHostConfiguration(fn HostConfigFunc) error {
	if fn == nil {
		return fmt.Errorf("hosting: ConfigureHostConfiguration: %w", ErrNilCallback)
	}
	b.hostConfig = append(b.hostConfig, fn)
	return nil
}

// ConfigureAppConfiguration records fn for the app-configuration pass.
func (b *BootstrapBuilder) ConfigureAppConfiguration(fn AppConfigFunc) error {
	if fn == nil {
		return fmt.Errorf("hosting: ConfigureAppConfiguration: %w", ErrNilCallback)
	}
	b.appConfig = append(b.appConfig, fn)
	return nil
}

// ConfigureServices records fn for the service-registration pass.
func (b *BootstrapBuilder) ConfigureServices(fn ServicesFunc) error {
	if fn == nil {
		return fmt.Errorf("hosting: ConfigureServices: %w", ErrNilCallback)
	}
	b.services = append(b.services, fn)
	return nil
}

// Apply replays every recorded callback in insertion order: first the
// host-configuration callbacks against cfg, then — after resolving the
// environment and creating the shared Context — the app-configuration
// callbacks against (ctx, cfg), then the services callbacks against
// (ctx, sc). The created Context is returned.
//
// App-configuration callbacks run after the environment is resolved, so
// nothing they write to cfg can influence the host-defining settings the
// Context was built from; that ordering is the collector's only guard.
//
// Apply is meant to run once. Running it again replays every callback, which
// is only harmless if each callback is itself idempotent.
func (b *BootstrapBuilder) Apply(props map[string]any, cfg *config.Snapshot, sc *services.Collection) (*Context, error) {
	for _, fn := range b.hostConfig {
		if err := fn(cfg); err != nil {
			return nil, err
		}
	}

	ctx := NewContext(props, ResolveEnvironment(cfg), cfg)

	for _, fn := range b.appConfig {
		if err := fn(ctx, cfg); err != nil {
			return nil, err
		}
	}
	for _, fn := range b.services {
		if err := fn(ctx, sc); err != nil {
			return nil, err
		}
	}
	return ctx, nil
}

// Build always fails: the collector captures intent and cannot produce a
// running application. Build through the Builder instead.
func (b *BootstrapBuilder) Build() (*Application, error) {
	return nil, fmt.Errorf("hosting: %w: the bootstrap collector cannot build an application; use Builder.Build", ErrUnsupported)
}

// UseProviderFactory always fails: container-factory selection happens only
// after the environment is resolved, through the HostBuilder.
func (b *BootstrapBuilder) UseProviderFactory(factory any) error {
	return fmt.Errorf("hosting: %w: a provider factory cannot be registered during bootstrap; use the host builder", ErrUnsupported)
}
