package hosting

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/km-arc/go-hosting/framework/config"
	"github.com/km-arc/go-hosting/framework/services"
)

// HostBuilder is the post-bootstrap configuration surface. Unlike the
// BootstrapBuilder it executes callbacks immediately, so imperative caller
// code observes their effects right away — and it guards the host-defining
// settings, which were already consumed to resolve the environment and can
// no longer change.
//
// It also carries the container-factory binding: UseFactory,
// UseFactoryResolver, and ConfigureContainer operate on a HostBuilder.
type HostBuilder struct {
	ctx    *Context
	cfg    *config.Snapshot
	sc     *services.Collection
	logger *zap.Logger

	binding *FactoryBinding
	actions []containerAction
}

// NewHostBuilder creates the guarded surface over an already-resolved
// context. The configuration snapshot is taken from ctx.
func NewHostBuilder(ctx *Context, sc *services.Collection, logger *zap.Logger) *HostBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HostBuilder{ctx: ctx, cfg: ctx.Config, sc: sc, logger: logger}
}

// ── Configuration surface ─────────────────────────────────────────────────────

// ConfigureAppConfiguration runs fn immediately against the shared context
// and live configuration. App configuration may add or change any key,
// including the host-defining ones — app config layers on top of the host's
// identity, it does not redefine it, so no guard applies here.
func (b *HostBuilder) ConfigureAppConfiguration(fn AppConfigFunc) error {
	if fn == nil {
		return fmt.Errorf("hosting: ConfigureAppConfiguration: %w", ErrNilCallback)
	}
	return fn(b.ctx, b.cfg)
}

// ConfigureHostConfiguration runs fn immediately against the live
// configuration, then verifies that none of the host-defining settings
// changed. The application and environment names are compared
// case-insensitively; the content root by resolved path, so re-spelling the
// same directory ("/app/" vs "/app") is fine. Any real change fails with a
// *SettingChangedError: the environment was resolved from the old values and
// cannot be recomputed.
func (b *HostBuilder) ConfigureHostConfiguration(fn HostConfigFunc) error {
	if fn == nil {
		return fmt.Errorf("hosting: ConfigureHostConfiguration: %w", ErrNilCallback)
	}

	prevApp := b.cfg.Get(ApplicationKey)
	prevEnv := b.cfg.Get(EnvironmentKey)
	prevRoot := b.cfg.Get(ContentRootKey)

	if err := fn(b.cfg); err != nil {
		return err
	}

	if got := b.cfg.Get(ApplicationKey); !strings.EqualFold(prevApp, got) {
		return &SettingChangedError{Setting: "application name", Key: ApplicationKey, Old: prevApp, New: got}
	}
	if got := b.cfg.Get(EnvironmentKey); !strings.EqualFold(prevEnv, got) {
		return &SettingChangedError{Setting: "environment name", Key: EnvironmentKey, Old: prevEnv, New: got}
	}
	if got := b.cfg.Get(ContentRootKey); !samePath(prevRoot, got) {
		return &SettingChangedError{Setting: "content root", Key: ContentRootKey, Old: prevRoot, New: got}
	}
	return nil
}

// ConfigureServices runs fn immediately against the shared context and
// service collection.
func (b *HostBuilder) ConfigureServices(fn ServicesFunc) error {
	if fn == nil {
		return fmt.Errorf("hosting: ConfigureServices: %w", ErrNilCallback)
	}
	return fn(b.ctx, b.sc)
}

// ConfigureServer always fails: the host builder assembles configuration and
// services only. Configure the server on the built Application.
func (b *HostBuilder) ConfigureServer(fn any) error {
	return fmt.Errorf("hosting: %w: the host builder does not configure a server; configure it on the built application", ErrUnsupported)
}

// Context returns the shared bootstrap context.
func (b *HostBuilder) Context() *Context { return b.ctx }

// ── Factory binding ───────────────────────────────────────────────────────────

// setBinding installs a new factory binding, discarding any earlier one
// together with its resolution state. Only one binding is ever active.
func (b *HostBuilder) setBinding(resolve func(*Context) (services.ProviderFactory, error)) {
	b.binding = &FactoryBinding{ctx: b.ctx, host: b, resolve: resolve}
}

// queueAction appends a type-erased container action. Actions run, in
// registration order, against whatever builder the eventual factory
// produces.
func (b *HostBuilder) queueAction(a containerAction) {
	b.actions = append(b.actions, a)
}

// FinalizeFactory completes factory selection. With a registered binding it
// simply returns it. With no binding but queued container actions, the
// actions run right here against the service collection — the default
// factory treats the collection as its container builder, so this is the
// same effect the actions would have had — and nil is returned, meaning the
// default factory applies.
func (b *HostBuilder) FinalizeFactory() (*FactoryBinding, error) {
	if b.binding != nil {
		return b.binding, nil
	}
	if len(b.actions) > 0 {
		b.logger.Debug("no provider factory registered; applying container actions to the service collection",
			zap.Int("actions", len(b.actions)))
		for _, a := range b.actions {
			if err := a.invoke(b.ctx, b.sc); err != nil {
				return nil, err
			}
		}
		b.actions = nil
	}
	return nil, nil
}
