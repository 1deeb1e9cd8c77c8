// Package hosting implements the bootstrap phase of a dependency-injection
// application host: deferred configuration collection, guarded eager
// configuration, and late binding of a container factory.
//
// # Two phases
//
// An application is assembled in two passes over the same configuration
// surface. During bootstrap, Configure* calls on the Builder are collected
// by a BootstrapBuilder without running, because the environment, content
// root, and application name are not yet fixed. Start replays them in
// order, resolves the Environment, and creates the shared Context.
//
// After Start, the same Configure* calls reach a HostBuilder and run
// immediately. The HostBuilder guards the three host-defining settings —
// APP_NAME, APP_ENV, APP_ROOT — because they were already consumed: a
// host-configuration callback that changes one fails with
// *SettingChangedError. App-configuration callbacks are deliberately not
// guarded; app config layers on top of the host's identity.
//
// # Container factories
//
// The final container type is not known until the application is assembled,
// so factories are registered through a typed surface and adapted to an
// erased one:
//
//	hosting.UseFactory[*mylib.Builder](host, myFactory)
//	hosting.ConfigureContainer(host, func(ctx *hosting.Context, b *mylib.Builder) error {
//	    b.Decorate(...)
//	    return nil
//	})
//
// The binding resolves its concrete factory exactly once, on the first
// CreateBuilder call; queued container actions then run, in registration
// order, against the builder it produces, with the type re-checked at
// invocation. Without a registered factory the built-in registry provider is
// used and container actions run against the service collection itself.
package hosting
