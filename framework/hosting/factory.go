package hosting

import (
	"fmt"
	"reflect"

	"github.com/km-arc/go-hosting/framework/services"
)

// ── Typed factory surface ─────────────────────────────────────────────────────

// Factory is a container factory typed by its builder. B is whatever
// intermediate value the underlying container library accumulates
// registrations in before producing a Provider.
//
//	type graphFactory struct{}
//
//	func (graphFactory) CreateBuilder(sc *services.Collection) (*graph.Builder, error) { ... }
//	func (graphFactory) CreateProvider(gb *graph.Builder) (services.Provider, error)  { ... }
//
//	hosting.UseFactory[*graph.Builder](host, graphFactory{})
type Factory[B any] interface {
	CreateBuilder(sc *services.Collection) (B, error)
	CreateProvider(builder B) (services.Provider, error)
}

// UseFactory installs f as the container factory. A later call — to either
// UseFactory or UseFactoryResolver — replaces the binding entirely.
func UseFactory[B any](b *HostBuilder, f Factory[B]) error {
	if f == nil {
		return fmt.Errorf("hosting: UseFactory: %w", ErrNilFactory)
	}
	b.setBinding(func(*Context) (services.ProviderFactory, error) {
		return erasedFactory[B]{f}, nil
	})
	return nil
}

// UseFactoryResolver installs a lazily-resolved container factory: resolve
// runs once, on the binding's first CreateBuilder call, with the shared
// context. A resolver that returns nil fails that call with
// ErrFactoryUnavailable.
func UseFactoryResolver[B any](b *HostBuilder, resolve func(*Context) Factory[B]) error {
	if resolve == nil {
		return fmt.Errorf("hosting: UseFactoryResolver: %w", ErrNilFactory)
	}
	b.setBinding(func(ctx *Context) (services.ProviderFactory, error) {
		f := resolve(ctx)
		if f == nil {
			return nil, fmt.Errorf("hosting: %w", ErrFactoryUnavailable)
		}
		return erasedFactory[B]{f}, nil
	})
	return nil
}

// ConfigureContainer queues fn to run against the container builder the
// eventual factory produces. The builder type is erased here and re-checked
// when the action finally runs; a mismatch fails with *BuilderCastError.
//
// If no factory is ever registered, queued actions run against the service
// collection itself (see HostBuilder.FinalizeFactory), so actions typed
// ConfigureContainer[*services.Collection] work with the default factory.
func ConfigureContainer[B any](b *HostBuilder, fn func(*Context, B) error) error {
	if fn == nil {
		return fmt.Errorf("hosting: ConfigureContainer: %w", ErrNilCallback)
	}
	expected := typeName[B]()
	b.queueAction(containerAction{
		expected: expected,
		invoke: func(ctx *Context, builder any) error {
			typed, ok := builder.(B)
			if !ok {
				return &BuilderCastError{Expected: expected, Actual: fmt.Sprintf("%T", builder)}
			}
			return fn(ctx, typed)
		},
	})
	return nil
}

// containerAction is one queued, type-erased container configuration step.
type containerAction struct {
	expected string
	invoke   func(*Context, any) error
}

// erasedFactory adapts a typed Factory[B] to the non-generic
// services.ProviderFactory shape, deferring the builder downcast to
// CreateProvider.
type erasedFactory[B any] struct {
	f Factory[B]
}

func (e erasedFactory[B]) CreateBuilder(sc *services.Collection) (any, error) {
	builder, err := e.f.CreateBuilder(sc)
	if err != nil {
		return nil, err
	}
	return builder, nil
}

func (e erasedFactory[B]) CreateProvider(builder any) (services.Provider, error) {
	typed, ok := builder.(B)
	if !ok {
		return nil, &BuilderCastError{Expected: typeName[B](), Actual: fmt.Sprintf("%T", builder)}
	}
	return e.f.CreateProvider(typed)
}

func typeName[B any]() string {
	return reflect.TypeOf((*B)(nil)).Elem().String()
}

// ── FactoryBinding ────────────────────────────────────────────────────────────

// FactoryBinding adapts a late-bound container factory. It has two states:
// unbound, holding only the resolver, and resolved, after the first
// CreateBuilder call has run the resolver exactly once. Once resolved, every
// further call runs against the same concrete factory.
type FactoryBinding struct {
	ctx  *Context
	host *HostBuilder

	resolve  func(*Context) (services.ProviderFactory, error)
	resolved services.ProviderFactory
}

// Resolved reports whether the concrete factory has been resolved.
func (fb *FactoryBinding) Resolved() bool { return fb.resolved != nil }

// CreateBuilder resolves the concrete factory on first call, delegates
// builder creation to it, then runs every queued container action against
// the produced builder in registration order.
func (fb *FactoryBinding) CreateBuilder(sc *services.Collection) (any, error) {
	if fb.resolved == nil {
		f, err := fb.resolve(fb.ctx)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, fmt.Errorf("hosting: %w", ErrFactoryUnavailable)
		}
		fb.resolved = f
	}
	builder, err := fb.resolved.CreateBuilder(sc)
	if err != nil {
		return nil, err
	}
	for _, a := range fb.host.actions {
		if err := a.invoke(fb.ctx, builder); err != nil {
			return nil, err
		}
	}
	return builder, nil
}

// CreateProvider delegates to the resolved factory. Calling it before
// CreateBuilder has resolved the factory fails with ErrFactoryNotResolved.
func (fb *FactoryBinding) CreateProvider(builder any) (services.Provider, error) {
	if fb.resolved == nil {
		return nil, fmt.Errorf("hosting: %w: CreateBuilder must run first", ErrFactoryNotResolved)
	}
	return fb.resolved.CreateProvider(builder)
}
