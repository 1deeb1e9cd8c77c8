package hosting

import "github.com/km-arc/go-hosting/framework/config"

// Context is the handle shared by reference across the bootstrap components:
// process-wide properties, the resolved environment, and the live
// configuration snapshot.
//
// It is created exactly once, by the Builder after the deferred host
// configuration has run, and outlives both build phases. Env never changes
// after creation. Properties is a plain map mutated by caller-supplied
// callbacks; callers must not write it from more than one goroutine at a
// time.
type Context struct {
	Properties map[string]any
	Env        Environment
	Config     *config.Snapshot
}

// NewContext creates the shared bootstrap context. A nil properties map is
// replaced with an empty one so callbacks can always write to it.
func NewContext(props map[string]any, env Environment, cfg *config.Snapshot) *Context {
	if props == nil {
		props = make(map[string]any)
	}
	return &Context{Properties: props, Env: env, Config: cfg}
}
