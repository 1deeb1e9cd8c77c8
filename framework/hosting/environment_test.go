package hosting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-hosting/framework/config"
	"github.com/km-arc/go-hosting/framework/hosting"
)

func TestResolveEnvironment_Defaults(t *testing.T) {
	env := hosting.ResolveEnvironment(config.New())

	assert.Equal(t, hosting.Production, env.Name)
	assert.Equal(t, filepath.Base(os.Args[0]), env.ApplicationName)

	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.Equal(t, filepath.Clean(wd), env.ContentRoot)
}

func TestResolveEnvironment_FromConfiguration(t *testing.T) {
	cfg := config.New()
	cfg.Set(hosting.EnvironmentKey, "Development")
	cfg.Set(hosting.ApplicationKey, "orders")
	cfg.Set(hosting.ContentRootKey, "/srv/orders/")

	env := hosting.ResolveEnvironment(cfg)

	assert.Equal(t, "Development", env.Name)
	assert.Equal(t, "orders", env.ApplicationName)
	assert.Equal(t, "/srv/orders", env.ContentRoot, "content root must be normalized")
}

func TestEnvironment_NameChecksAreCaseInsensitive(t *testing.T) {
	tests := []struct {
		name   string
		checks func(t *testing.T, env hosting.Environment)
	}{
		{"Development", func(t *testing.T, env hosting.Environment) {
			assert.True(t, env.IsDevelopment())
			assert.False(t, env.IsProduction())
		}},
		{"STAGING", func(t *testing.T, env hosting.Environment) {
			assert.True(t, env.IsStaging())
		}},
		{"production", func(t *testing.T, env hosting.Environment) {
			assert.True(t, env.IsProduction())
			assert.True(t, env.Is("PRODUCTION"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.checks(t, hosting.Environment{Name: tt.name})
		})
	}
}
