package cli

import "errors"

var (
	// ErrNoApps is returned when no app names are specified.
	ErrNoApps = errors.New("no apps specified")

	// ErrAborted is returned when the user aborts an operation.
	ErrAborted = errors.New("operation aborted by user")
)
