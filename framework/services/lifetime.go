package services

// Lifetime controls how many times a registration's factory runs.
type Lifetime int

const (
	// Singleton caches the first resolved instance for the provider's life.
	Singleton Lifetime = iota

	// Transient runs the factory on every resolution.
	Transient
)

func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}
