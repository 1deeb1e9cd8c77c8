package hosting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-hosting/framework/config"
	"github.com/km-arc/go-hosting/framework/hosting"
	"github.com/km-arc/go-hosting/framework/services"
)

// newHost builds a HostBuilder over a resolved context seeded with the given
// host-defining settings.
func newHost(t *testing.T, settings map[string]string) *hosting.HostBuilder {
	t.Helper()
	cfg := config.New()
	for k, v := range settings {
		cfg.Set(k, v)
	}
	ctx := hosting.NewContext(nil, hosting.ResolveEnvironment(cfg), cfg)
	return hosting.NewHostBuilder(ctx, services.NewCollection(), nil)
}

// ── eager execution ──────────────────────────────────────────────────────────

func TestHostBuilder_RunsCallbacksImmediately(t *testing.T) {
	h := newHost(t, nil)
	var order []string

	require.NoError(t, h.ConfigureAppConfiguration(func(_ *hosting.Context, cfg *config.Snapshot) error {
		order = append(order, "app")
		cfg.Set("EAGER", "yes")
		return nil
	}))
	require.NoError(t, h.ConfigureServices(func(_ *hosting.Context, sc *services.Collection) error {
		order = append(order, "services")
		return sc.AddInstance("svc", 1)
	}))

	assert.Equal(t, []string{"app", "services"}, order)
	assert.Equal(t, "yes", h.Context().Config.Get("EAGER"))
}

func TestHostBuilder_RejectsNilCallbacks(t *testing.T) {
	h := newHost(t, nil)

	assert.ErrorIs(t, h.ConfigureHostConfiguration(nil), hosting.ErrNilCallback)
	assert.ErrorIs(t, h.ConfigureAppConfiguration(nil), hosting.ErrNilCallback)
	assert.ErrorIs(t, h.ConfigureServices(nil), hosting.ErrNilCallback)
}

func TestHostBuilder_ConfigureServerUnsupported(t *testing.T) {
	h := newHost(t, nil)
	assert.ErrorIs(t, h.ConfigureServer(struct{}{}), hosting.ErrUnsupported)
}

// ── host-setting guard ───────────────────────────────────────────────────────

func TestHostBuilder_EnvironmentChangeViolatesGuard(t *testing.T) {
	h := newHost(t, map[string]string{hosting.EnvironmentKey: "Development"})

	err := h.ConfigureHostConfiguration(func(cfg *config.Snapshot) error {
		cfg.Set(hosting.EnvironmentKey, "Production")
		return nil
	})

	var sce *hosting.SettingChangedError
	require.ErrorAs(t, err, &sce)
	assert.Equal(t, hosting.EnvironmentKey, sce.Key)
	assert.Contains(t, err.Error(), "Development")
	assert.Contains(t, err.Error(), "Production")
}

func TestHostBuilder_ApplicationNameChangeViolatesGuard(t *testing.T) {
	h := newHost(t, map[string]string{hosting.ApplicationKey: "orders"})

	err := h.ConfigureHostConfiguration(func(cfg *config.Snapshot) error {
		cfg.Set(hosting.ApplicationKey, "billing")
		return nil
	})

	var sce *hosting.SettingChangedError
	require.ErrorAs(t, err, &sce)
	assert.Equal(t, "orders", sce.Old)
	assert.Equal(t, "billing", sce.New)
}

func TestHostBuilder_ContentRootChangeViolatesGuard(t *testing.T) {
	h := newHost(t, map[string]string{hosting.ContentRootKey: "/srv/app"})

	err := h.ConfigureHostConfiguration(func(cfg *config.Snapshot) error {
		cfg.Set(hosting.ContentRootKey, "/srv/other")
		return nil
	})

	var sce *hosting.SettingChangedError
	require.ErrorAs(t, err, &sce)
	assert.Equal(t, hosting.ContentRootKey, sce.Key)
}

func TestHostBuilder_CaseOnlyNameChangeAllowed(t *testing.T) {
	h := newHost(t, map[string]string{
		hosting.EnvironmentKey: "Development",
		hosting.ApplicationKey: "Orders",
	})

	err := h.ConfigureHostConfiguration(func(cfg *config.Snapshot) error {
		cfg.Set(hosting.EnvironmentKey, "DEVELOPMENT")
		cfg.Set(hosting.ApplicationKey, "orders")
		return nil
	})
	assert.NoError(t, err)
}

func TestHostBuilder_EquivalentContentRootSpellingAllowed(t *testing.T) {
	h := newHost(t, map[string]string{hosting.ContentRootKey: "/app/"})

	err := h.ConfigureHostConfiguration(func(cfg *config.Snapshot) error {
		cfg.Set(hosting.ContentRootKey, "/app")
		return nil
	})
	assert.NoError(t, err, "re-spelling the same path must not trip the guard")

	err = h.ConfigureHostConfiguration(func(cfg *config.Snapshot) error {
		cfg.Set(hosting.ContentRootKey, "/app/./subdir/..")
		return nil
	})
	assert.NoError(t, err)
}

func TestHostBuilder_UnprivilegedKeysNeverViolateGuard(t *testing.T) {
	h := newHost(t, map[string]string{hosting.EnvironmentKey: "Development"})

	err := h.ConfigureHostConfiguration(func(cfg *config.Snapshot) error {
		cfg.Set("CACHE_TTL", "60s")
		cfg.Set("FEATURE_X", "on")
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "60s", h.Context().Config.Get("CACHE_TTL"))
}

func TestHostBuilder_CallbackErrorReturnedBeforeGuard(t *testing.T) {
	h := newHost(t, map[string]string{hosting.EnvironmentKey: "Development"})

	boom := assert.AnError
	err := h.ConfigureHostConfiguration(func(cfg *config.Snapshot) error {
		cfg.Set(hosting.EnvironmentKey, "Production")
		return boom
	})
	assert.ErrorIs(t, err, boom, "the callback's own error wins over the guard")
}

// App configuration is allowed to touch host-defining keys; only
// host-configuration callbacks are guarded.
func TestHostBuilder_AppConfigurationIsNotGuarded(t *testing.T) {
	h := newHost(t, map[string]string{hosting.EnvironmentKey: "Development"})

	err := h.ConfigureAppConfiguration(func(_ *hosting.Context, cfg *config.Snapshot) error {
		cfg.Set(hosting.EnvironmentKey, "Production")
		return nil
	})
	assert.NoError(t, err)
}
