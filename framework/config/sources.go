package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ── MapSource ─────────────────────────────────────────────────────────────────

// MapSource is an in-memory source, mainly useful for defaults and tests.
//
//	snap.AddSource(config.MapSource{"APP_ENV": "development"})
type MapSource map[string]string

func (m MapSource) Name() string { return "map" }

func (m MapSource) Load() (map[string]string, error) {
	values := make(map[string]string, len(m))
	for k, v := range m {
		values[k] = v
	}
	return values, nil
}

// ── EnvSource ─────────────────────────────────────────────────────────────────

// envSource reads the process environment.
type envSource struct {
	prefix string
}

// EnvSource returns a source over the process environment. If prefix is
// non-empty, only variables starting with it are loaded and the prefix is
// stripped from the key:
//
//	// MYAPP_APP_ENV=staging  →  APP_ENV=staging
//	snap.AddSource(config.EnvSource("MYAPP_"))
func EnvSource(prefix string) Source {
	return &envSource{prefix: prefix}
}

func (e *envSource) Name() string {
	if e.prefix == "" {
		return "env"
	}
	return "env:" + e.prefix
}

func (e *envSource) Load() (map[string]string, error) {
	values := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if e.prefix != "" {
			if !strings.HasPrefix(k, e.prefix) {
				continue
			}
			k = strings.TrimPrefix(k, e.prefix)
		}
		values[k] = v
	}
	return values, nil
}

// ── DotEnvSource ──────────────────────────────────────────────────────────────

// dotEnvSource reads a .env file without touching the process environment.
type dotEnvSource struct {
	path     string
	optional bool
}

// DotEnvSource returns a source over a .env file. A missing file is not an
// error — .env files typically exist only in development.
//
//	snap.AddSource(config.DotEnvSource(".env"))
func DotEnvSource(path string) Source {
	return &dotEnvSource{path: path, optional: true}
}

// RequiredDotEnvSource is like DotEnvSource but fails when the file is absent.
func RequiredDotEnvSource(path string) Source {
	return &dotEnvSource{path: path}
}

func (d *dotEnvSource) Name() string { return "dotenv:" + d.path }

func (d *dotEnvSource) Load() (map[string]string, error) {
	values, err := godotenv.Read(d.path)
	if err != nil {
		if d.optional && os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", d.path, err)
	}
	return values, nil
}

// ── YAMLSource ────────────────────────────────────────────────────────────────

// yamlSource reads a YAML file and flattens it into env-style keys.
type yamlSource struct {
	path     string
	optional bool
}

// YAMLSource returns a source over a YAML file. Nested mappings are flattened
// into upper-snake keys so YAML and env sources share one namespace:
//
//	// app:
//	//   name: billing
//	//   debug: true
//	// →  APP_NAME=billing  APP_DEBUG=true
//	snap.AddSource(config.YAMLSource("config.yaml"))
func YAMLSource(path string) Source {
	return &yamlSource{path: path}
}

// OptionalYAMLSource is like YAMLSource but treats a missing file as empty.
func OptionalYAMLSource(path string) Source {
	return &yamlSource{path: path, optional: true}
}

func (y *yamlSource) Name() string { return "yaml:" + y.path }

func (y *yamlSource) Load() (map[string]string, error) {
	data, err := os.ReadFile(y.path)
	if err != nil {
		if y.optional && os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", y.path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", y.path, err)
	}
	values := make(map[string]string)
	flatten("", doc, values)
	return values, nil
}

// flatten converts nested YAML mappings into upper-snake keys. Scalars are
// rendered with fmt so numbers and bools keep their YAML spelling.
func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := strings.ToUpper(k)
		if prefix != "" {
			key = prefix + "_" + key
		}
		switch typed := v.(type) {
		case map[string]any:
			flatten(key, typed, out)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprintf("%v", typed)
		}
	}
}
