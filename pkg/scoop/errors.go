package scoop

import (
	"errors"
	"fmt"
)

var (
	// ErrAppNotFound is returned when a named app has no resolvable
	// descriptor under the install root.
	ErrAppNotFound = errors.New("app not found")

	// ErrInvalidRoot is returned when the configured install root does not
	// exist or has no apps subdirectory.
	ErrInvalidRoot = errors.New("scoop root not found; is scoop installed?")
)

// OpError is the typed failure for a delegated scoop lifecycle command.
type OpError struct {
	Op  string // "install", "update", "uninstall", "reset", "open"
	App string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("scoop %s %s: %v", e.Op, e.App, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
