// Package keys reads the push buttons wired to the host GPIO.
package keys

import "errors"

// Default GPIO lines of the two buttons on the expansion board.
const (
	DefaultChip     = "/dev/gpiochip4"
	DefaultKey1Line = 13
	DefaultKey2Line = 23
)

// ErrUnsupported indicates GPIO is not available on the platform.
var ErrUnsupported = errors.New("gpio keys unsupported on this platform")

// Reader reads the state of a single key.
type Reader interface {
	Pressed() (bool, error)
}

// ReaderFunc is func form of Reader.
type ReaderFunc func() (bool, error)

// Pressed implements Reader.
func (f ReaderFunc) Pressed() (bool, error) {
	return f()
}
