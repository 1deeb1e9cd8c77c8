package services

import "errors"

var (
	// ErrServiceNotFound is returned when no registration exists for the
	// requested key.
	ErrServiceNotFound = errors.New("service not found")

	// ErrNilService is returned when a registration is attempted with a nil
	// factory or instance.
	ErrNilService = errors.New("nil service registration")

	// ErrNotCollection is returned by the default factory when the opaque
	// container builder it is handed is not a *Collection.
	ErrNotCollection = errors.New("container builder is not a service collection")
)
