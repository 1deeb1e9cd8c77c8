// Package config provides a layered key/value configuration store built from
// ordered sources.
//
// # Snapshot
//
// A Snapshot is assembled by adding sources; later sources override earlier
// ones, and values written with Set override everything:
//
//	snap := config.New()
//	snap.AddSource(config.YAMLSource("config.yaml"))
//	snap.AddSource(config.DotEnvSource(".env"))
//	snap.AddSource(config.EnvSource(""))
//
//	name := snap.GetDefault("APP_NAME", "myapp")
//	debug := snap.GetBool("APP_DEBUG", false)
//
// Keys use upper-snake env style throughout. The YAML source flattens nested
// mappings into the same style, so every source shares one namespace.
//
// # Typed binding
//
// Bind populates a struct from the snapshot via `cfg` tags and validates it
// with go-playground/validator `validate` tags.
//
// # Hot reload
//
// A Watcher reloads the snapshot when a file source changes on disk, keeping
// Set overrides intact.
package config
