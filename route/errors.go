package route

import (
	"errors"
	"fmt"
)

// ErrMissingBody is reported for responses that set neither rawBody nor file.
var ErrMissingBody = errors.New("response has neither rawBody nor file, route not registered")

type (
	// HeaderEncodingError is reported for a header that cannot be sent on the wire.
	HeaderEncodingError struct {
		Name  string
		Value string
	}

	// InvalidStatusError is reported when a configured status code is not a known HTTP status.
	InvalidStatusError struct {
		Code int
	}

	// AmbiguousBodyError is reported when both rawBody and file are set.
	AmbiguousBodyError struct {
		File string
	}

	// CollisionError is reported when an entry replaces one registered earlier for the same key.
	CollisionError struct {
		Method   string
		Path     string
		Previous string
	}

	// DynamicPathError notes that a path contains placeholder segments served literally.
	DynamicPathError struct {
		Segments []string
	}
)

// Error implements the error interface
func (e *HeaderEncodingError) Error() string {
	return fmt.Sprintf("header %q: %q is not a valid header field, dropped", e.Name, e.Value)
}

// Error implements the error interface
func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("status code %d is not a known HTTP status, using %d", e.Code, DefaultStatus)
}

// Error implements the error interface
func (e *AmbiguousBodyError) Error() string {
	return fmt.Sprintf("both rawBody and file (%s) are set, serving rawBody", e.File)
}

// Error implements the error interface
func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s %s overrides the route declared in %s", e.Method, e.Path, e.Previous)
}

// Error implements the error interface
func (e *DynamicPathError) Error() string {
	return fmt.Sprintf("dynamic segments %v are matched literally", e.Segments)
}
