package hosting

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/km-arc/go-hosting/framework/config"
)

// ── Host-defining configuration keys ──────────────────────────────────────────

// The three privileged keys. They are consumed once, when the environment is
// resolved during bootstrap; changing them afterwards is an error (see
// HostBuilder.ConfigureHostConfiguration).
const (
	// ApplicationKey holds the application name.
	ApplicationKey = "APP_NAME"

	// EnvironmentKey holds the environment name.
	EnvironmentKey = "APP_ENV"

	// ContentRootKey holds the content-root path.
	ContentRootKey = "APP_ROOT"
)

// Well-known environment names.
const (
	Development = "development"
	Staging     = "staging"
	Production  = "production"
)

// ── Environment ───────────────────────────────────────────────────────────────

// Environment is the resolved runtime environment: which deployment
// environment the application runs in, what it is called, and where its
// content lives. It is fixed at bootstrap and never changes afterwards.
type Environment struct {
	Name            string
	ApplicationName string
	ContentRoot     string
}

// Is compares the environment name case-insensitively.
func (e Environment) Is(name string) bool { return strings.EqualFold(e.Name, name) }

func (e Environment) IsDevelopment() bool { return e.Is(Development) }
func (e Environment) IsStaging() bool     { return e.Is(Staging) }
func (e Environment) IsProduction() bool  { return e.Is(Production) }

// ResolveEnvironment reads the three host-defining keys from cfg and fills
// in defaults: production environment, the executable name, and the working
// directory as content root.
func ResolveEnvironment(cfg *config.Snapshot) Environment {
	app := cfg.Get(ApplicationKey)
	if app == "" {
		app = filepath.Base(os.Args[0])
	}
	root := cfg.Get(ContentRootKey)
	if root == "" {
		root, _ = os.Getwd()
	}
	return Environment{
		Name:            cfg.GetDefault(EnvironmentKey, Production),
		ApplicationName: app,
		ContentRoot:     normalizePath(root),
	}
}

// normalizePath resolves a path to its cleaned absolute form so that
// differently-spelled equivalents ("/app/", "/app", "/app/./") compare equal.
func normalizePath(p string) string {
	if p == "" {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return filepath.Clean(abs)
}

// samePath reports whether two path spellings name the same location.
func samePath(a, b string) bool {
	if a == b {
		return true
	}
	return normalizePath(a) == normalizePath(b)
}
