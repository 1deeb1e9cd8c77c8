package hosting

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/km-arc/go-hosting/framework/config"
	"github.com/km-arc/go-hosting/framework/services"
)

// Well-known service keys registered by Builder.Build.
const (
	ConfigService      = "config"
	EnvironmentService = "environment"
	LoggerService      = "logger"
)

// ── Options ───────────────────────────────────────────────────────────────────

// Option customizes a Builder at construction time.
type Option func(*Builder)

// WithLogger sets the structured logger used for build diagnostics.
// The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithProperty seeds the shared properties bag.
func WithProperty(key string, value any) Option {
	return func(b *Builder) { b.props[key] = value }
}

// WithSources adds base configuration sources, applied before any collected
// host-configuration callback runs. Source errors surface from Start.
func WithSources(srcs ...config.Source) Option {
	return func(b *Builder) { b.sources = append(b.sources, srcs...) }
}

// WithApplicationName fixes the application name. Host-defining settings
// belong here, at construction time — they cannot be changed once the
// environment is resolved.
func WithApplicationName(name string) Option {
	return func(b *Builder) { b.cfg.Set(ApplicationKey, name) }
}

// WithEnvironmentName fixes the environment name.
func WithEnvironmentName(name string) Option {
	return func(b *Builder) { b.cfg.Set(EnvironmentKey, name) }
}

// WithContentRoot fixes the content-root path.
func WithContentRoot(path string) Option {
	return func(b *Builder) { b.cfg.Set(ContentRootKey, path) }
}

// ── Builder ───────────────────────────────────────────────────────────────────

// Builder drives the two build phases.
//
// Phase one: every Configure* call is collected, unexecuted, by a
// BootstrapBuilder. Start then applies the base sources and the collected
// callbacks, resolves the environment, and creates the shared Context.
//
// Phase two: the same Configure* methods now reach the guarded HostBuilder
// and execute immediately. Start returns that HostBuilder so callers can
// also register a container factory or container actions on it. Build
// finalizes the factory and produces the Application.
//
//	builder := hosting.NewBuilder(
//	    hosting.WithEnvironmentName(hosting.Development),
//	    hosting.WithSources(config.DotEnvSource(".env")),
//	)
//	builder.ConfigureServices(registerCoreServices) // deferred
//
//	host, err := builder.Start()
//	if err != nil { ... }
//	host.ConfigureServices(registerExtras)          // immediate
//
//	app, err := builder.Build()
type Builder struct {
	logger  *zap.Logger
	props   map[string]any
	sources []config.Source

	cfg       *config.Snapshot
	sc        *services.Collection
	bootstrap *BootstrapBuilder

	// surface is the active configuration strategy: the collector before
	// Start, the guarded host builder after.
	surface Configurator
	host    *HostBuilder
	ctx     *Context
}

// NewBuilder creates a Builder in the bootstrap (deferred) phase.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger:    zap.NewNop(),
		props:     make(map[string]any),
		cfg:       config.New(),
		sc:        services.NewCollection(),
		bootstrap: NewBootstrapBuilder(),
	}
	b.surface = b.bootstrap
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ConfigureHostConfiguration routes to the active phase: collected during
// bootstrap, executed immediately (and guarded) afterwards.
func (b *Builder) ConfigureHostConfiguration(fn HostConfigFunc) error {
	return b.surface.ConfigureHostConfiguration(fn)
}

// ConfigureAppConfiguration routes to the active phase.
func (b *Builder) ConfigureAppConfiguration(fn AppConfigFunc) error {
	return b.surface.ConfigureAppConfiguration(fn)
}

// ConfigureServices routes to the active phase.
func (b *Builder) ConfigureServices(fn ServicesFunc) error {
	return b.surface.ConfigureServices(fn)
}

// Started reports whether the bootstrap phase has completed.
func (b *Builder) Started() bool { return b.host != nil }

// Start ends the bootstrap phase: base sources are applied, collected
// callbacks replayed, the environment resolved, and the guarded HostBuilder
// created and returned. Calling Start twice returns the same HostBuilder.
func (b *Builder) Start() (*HostBuilder, error) {
	if b.host != nil {
		return b.host, nil
	}
	for _, src := range b.sources {
		if err := b.cfg.AddSource(src); err != nil {
			return nil, fmt.Errorf("hosting: applying configuration source %s: %w", src.Name(), err)
		}
	}
	ctx, err := b.bootstrap.Apply(b.props, b.cfg, b.sc)
	if err != nil {
		return nil, err
	}
	b.ctx = ctx
	b.host = NewHostBuilder(ctx, b.sc, b.logger)
	b.surface = b.host
	b.logger.Debug("bootstrap complete",
		zap.String("application", ctx.Env.ApplicationName),
		zap.String("environment", ctx.Env.Name),
		zap.String("content_root", ctx.Env.ContentRoot),
	)
	return b.host, nil
}

// Build finalizes the container factory and produces the Application. If
// Start has not run yet it runs first. The configuration snapshot, resolved
// environment, and logger are registered as services under the well-known
// keys unless the caller registered those keys already.
func (b *Builder) Build() (*Application, error) {
	host, err := b.Start()
	if err != nil {
		return nil, err
	}

	if !b.sc.Has(ConfigService) {
		_ = b.sc.AddInstance(ConfigService, b.cfg)
	}
	if !b.sc.Has(EnvironmentService) {
		_ = b.sc.AddInstance(EnvironmentService, b.ctx.Env)
	}
	if !b.sc.Has(LoggerService) {
		_ = b.sc.AddInstance(LoggerService, b.logger)
	}

	binding, err := host.FinalizeFactory()
	if err != nil {
		return nil, err
	}

	var provider services.Provider
	if binding != nil {
		builder, err := binding.CreateBuilder(b.sc)
		if err != nil {
			return nil, err
		}
		provider, err = binding.CreateProvider(builder)
		if err != nil {
			return nil, err
		}
	} else {
		factory := services.DefaultFactory{}
		builder, err := factory.CreateBuilder(b.sc)
		if err != nil {
			return nil, err
		}
		provider, err = factory.CreateProvider(builder)
		if err != nil {
			return nil, err
		}
	}

	b.logger.Info("application built",
		zap.String("application", b.ctx.Env.ApplicationName),
		zap.String("environment", b.ctx.Env.Name),
		zap.Int("services", b.sc.Len()),
		zap.Bool("custom_factory", binding != nil),
	)
	return &Application{
		Env:        b.ctx.Env,
		Config:     b.cfg,
		Properties: b.ctx.Properties,
		Services:   provider,
		Logger:     b.logger,
	}, nil
}

// ── Application ───────────────────────────────────────────────────────────────

// Application is the assembled result of both build phases: the resolved
// environment, the final configuration, the shared properties bag, and the
// service provider.
type Application struct {
	Env        Environment
	Config     *config.Snapshot
	Properties map[string]any
	Services   services.Provider
	Logger     *zap.Logger
}
