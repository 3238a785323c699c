package dynamo

import "errors"

// Initialization errors. The animation itself has no failure modes; these
// surface only while wiring a backend together and are fatal to the caller.
var (
	// ErrNoSurface indicates the host could not provide a drawing surface.
	ErrNoSurface = errors.New("dynamo: drawing surface unavailable")

	// ErrMissingElement indicates an expected UI element was absent at startup.
	ErrMissingElement = errors.New("dynamo: required ui element missing")

	// ErrUnknownBackend indicates a backend name that no renderer answers to.
	ErrUnknownBackend = errors.New("dynamo: unknown backend")

	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")
)

// InitError wraps an initialization failure with the component that raised it.
type InitError struct {
	Component string
	Wrapped   error
}

func (e *InitError) Error() string {
	return e.Component + ": " + e.Wrapped.Error()
}

func (e *InitError) Unwrap() error {
	return e.Wrapped
}
