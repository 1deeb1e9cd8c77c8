package hosting

import (
	"errors"
	"fmt"
)

var (
	// ErrNilCallback is returned when a configuration callback is absent.
	ErrNilCallback = errors.New("nil callback")

	// ErrNilFactory is returned when a provider factory or factory resolver
	// is absent.
	ErrNilFactory = errors.New("nil provider factory")

	// ErrUnsupported is returned when an operation is invoked at a build
	// stage where it has no meaning. The wrapped message names the stage and
	// what to do instead.
	ErrUnsupported = errors.New("operation not supported at this stage")

	// ErrFactoryUnavailable is returned when a factory resolver runs but
	// yields no factory.
	ErrFactoryUnavailable = errors.New("factory resolver produced no factory")

	// ErrFactoryNotResolved is returned when a service provider is requested
	// before the factory binding has resolved its concrete factory.
	ErrFactoryNotResolved = errors.New("provider factory not resolved")
)

// SettingChangedError reports that a host-defining setting — application
// name, environment name, or content root — was mutated by a configuration
// callback after the environment had already been resolved from the old
// value. The environment and file roots were computed from the previous
// value, so a silent change would leave them stale.
type SettingChangedError struct {
	Setting string // human-readable setting name
	Key     string // configuration key
	Old     string
	New     string
}

func (e *SettingChangedError) Error() string {
	return fmt.Sprintf(
		"hosting: %s changed from %q to %q after the environment was resolved; "+
			"host settings must be supplied when the builder is created, not from a configuration callback",
		e.Setting, e.Old, e.New)
}

// BuilderCastError reports that a queued container action, or a typed
// factory, expected a different container-builder type than the factory
// actually produced.
type BuilderCastError struct {
	Expected string
	Actual   string
}

func (e *BuilderCastError) Error() string {
	return fmt.Sprintf("hosting: container builder is %s, expected %s", e.Actual, e.Expected)
}
