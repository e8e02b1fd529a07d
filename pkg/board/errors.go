package board

import (
	"errors"
	"fmt"
)

var (
	// ErrTransportClosed indicates the transport reached end of stream.
	ErrTransportClosed = errors.New("transport closed")
	// ErrKeyEventsDropped indicates key reports were discarded because nobody consumed them.
	ErrKeyEventsDropped = errors.New("key events dropped")
)

// TransportError wraps a failure of the underlying transport.
type TransportError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}
