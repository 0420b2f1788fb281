package load

import (
	"errors"
	"fmt"
)

var (
	// ErrIO marks a source that could not be read.
	ErrIO = errors.New("cannot read")
	// ErrDecode marks a container or frame that could not be parsed.
	ErrDecode = errors.New("cannot decode")
)

// LoadError describes a failed load. It matches ErrIO or ErrDecode with
// errors.Is and also unwraps to the underlying cause.
type LoadError struct {
	Kind error // ErrIO or ErrDecode
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns the kind sentinel and the cause.
func (e *LoadError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func ioError(path string, err error) error {
	return &LoadError{Kind: ErrIO, Path: path, Err: err}
}

func decodeError(path string, err error) error {
	return &LoadError{Kind: ErrDecode, Path: path, Err: err}
}
