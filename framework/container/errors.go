package container

import "errors"

var (
	// ErrNotBound is returned when no binding is registered for the requested
	// type and the type cannot be default-constructed either.
	ErrNotBound = errors.New("container: no binding registered")

	// ErrNoInstance is returned when a binding exists but produced nothing
	// usable: a nil object, a factory returning nil, or a value that is not
	// assignable to the requested type.
	ErrNoInstance = errors.New("container: binding produced no instance")

	// ErrConstructionFailed wraps the error returned by [Injectable.InitWith].
	ErrConstructionFailed = errors.New("container: construction failed")

	// ErrUnsupportedCapability is returned when a type has to be constructed
	// but implements neither [DefaultConstructible] nor [Injectable].
	ErrUnsupportedCapability = errors.New("container: type cannot be constructed")

	// ErrAlreadyBound is the panic value raised when a type is re-bound under
	// [RebindStrict].
	ErrAlreadyBound = errors.New("container: type already bound")
)
