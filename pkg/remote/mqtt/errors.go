package mqtt

import "errors"

var (
	// ErrTimeout indicates the broker didn't acknowledge in time.
	ErrTimeout = errors.New("mqtt timeout")
	// ErrNoController indicates no bridge ID is configured.
	ErrNoController = errors.New("controller id must be specified")
)
