package registry

import "errors"

var (
	// ErrUnknownRoot indicates a key path that does not begin with a
	// recognized root class name.
	ErrUnknownRoot = errors.New("registry: unknown root class")

	// ErrKeyNotFound indicates the requested key does not exist.
	ErrKeyNotFound = errors.New("registry: key not found")

	// ErrValueNotFound indicates the requested value does not exist.
	ErrValueNotFound = errors.New("registry: value not found")

	// ErrIsRoot indicates an attempt to delete a root class key.
	ErrIsRoot = errors.New("registry: cannot delete a root class")
)
