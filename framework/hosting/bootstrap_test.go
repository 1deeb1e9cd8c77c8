package hosting_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-hosting/framework/config"
	"github.com/km-arc/go-hosting/framework/hosting"
	"github.com/km-arc/go-hosting/framework/services"
)

func TestBootstrapBuilder_CollectsWithoutExecuting(t *testing.T) {
	b := hosting.NewBootstrapBuilder()
	executed := false

	require.NoError(t, b.ConfigureHostConfiguration(func(*config.Snapshot) error {
		executed = true
		return nil
	}))
	require.NoError(t, b.ConfigureAppConfiguration(func(*hosting.Context, *config.Snapshot) error {
		executed = true
		return nil
	}))
	require.NoError(t, b.ConfigureServices(func(*hosting.Context, *services.Collection) error {
		executed = true
		return nil
	}))

	assert.False(t, executed, "collection must not run callbacks")
}

func TestBootstrapBuilder_RejectsNilCallbacks(t *testing.T) {
	b := hosting.NewBootstrapBuilder()

	assert.ErrorIs(t, b.ConfigureHostConfiguration(nil), hosting.ErrNilCallback)
	assert.ErrorIs(t, b.ConfigureAppConfiguration(nil), hosting.ErrNilCallback)
	assert.ErrorIs(t, b.ConfigureServices(nil), hosting.ErrNilCallback)
}

func TestBootstrapBuilder_AppliesInInsertionOrderHostThenAppThenServices(t *testing.T) {
	b := hosting.NewBootstrapBuilder()
	var order []string

	// Interleave registration across the three groups; replay must still be
	// host callbacks first, then app, then services, each in insertion order.
	b.ConfigureServices(func(*hosting.Context, *services.Collection) error {
		order = append(order, "services-1")
		return nil
	})
	b.ConfigureHostConfiguration(func(*config.Snapshot) error {
		order = append(order, "host-1")
		return nil
	})
	b.ConfigureAppConfiguration(func(*hosting.Context, *config.Snapshot) error {
		order = append(order, "app-1")
		return nil
	})
	b.ConfigureHostConfiguration(func(*config.Snapshot) error {
		order = append(order, "host-2")
		return nil
	})
	b.ConfigureServices(func(*hosting.Context, *services.Collection) error {
		order = append(order, "services-2")
		return nil
	})
	b.ConfigureAppConfiguration(func(*hosting.Context, *config.Snapshot) error {
		order = append(order, "app-2")
		return nil
	})

	_, err := b.Apply(nil, config.New(), services.NewCollection())
	require.NoError(t, err)

	assert.Equal(t, []string{"host-1", "host-2", "app-1", "app-2", "services-1", "services-2"}, order)
}

func TestBootstrapBuilder_AppCallbackObservesHostConfigValues(t *testing.T) {
	b := hosting.NewBootstrapBuilder()
	var observed string

	b.ConfigureHostConfiguration(func(cfg *config.Snapshot) error {
		cfg.Set("A", "1")
		return nil
	})
	b.ConfigureAppConfiguration(func(_ *hosting.Context, cfg *config.Snapshot) error {
		observed = cfg.Get("A")
		return nil
	})

	_, err := b.Apply(nil, config.New(), services.NewCollection())
	require.NoError(t, err)
	assert.Equal(t, "1", observed)
}

func TestBootstrapBuilder_EnvironmentResolvedFromHostConfig(t *testing.T) {
	b := hosting.NewBootstrapBuilder()
	b.ConfigureHostConfiguration(func(cfg *config.Snapshot) error {
		cfg.Set(hosting.EnvironmentKey, "staging")
		cfg.Set(hosting.ApplicationKey, "unit-test")
		return nil
	})

	ctx, err := b.Apply(nil, config.New(), services.NewCollection())
	require.NoError(t, err)

	assert.Equal(t, "staging", ctx.Env.Name)
	assert.True(t, ctx.Env.IsStaging())
	assert.Equal(t, "unit-test", ctx.Env.ApplicationName)
	assert.NotNil(t, ctx.Properties, "nil properties map must be replaced")
}

func TestBootstrapBuilder_CallbackErrorStopsReplay(t *testing.T) {
	b := hosting.NewBootstrapBuilder()
	boom := errors.New("boom")
	ran := false

	b.ConfigureHostConfiguration(func(*config.Snapshot) error { return boom })
	b.ConfigureServices(func(*hosting.Context, *services.Collection) error {
		ran = true
		return nil
	})

	_, err := b.Apply(nil, config.New(), services.NewCollection())
	assert.ErrorIs(t, err, boom)
	assert.False(t, ran, "callbacks after a failure must not run")
}

func TestBootstrapBuilder_BuildUnsupported(t *testing.T) {
	_, err := hosting.NewBootstrapBuilder().Build()
	assert.ErrorIs(t, err, hosting.ErrUnsupported)
}

func TestBootstrapBuilder_UseProviderFactoryUnsupported(t *testing.T) {
	err := hosting.NewBootstrapBuilder().UseProviderFactory(services.DefaultFactory{})
	assert.ErrorIs(t, err, hosting.ErrUnsupported)
}
