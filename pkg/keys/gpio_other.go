//go:build !linux
// +build !linux

package keys

// GPIO holds the opened key lines.
type GPIO struct{}

// OpenGPIO is not supported on this platform.
func OpenGPIO(chip string, offsets ...uint32) (*GPIO, error) {
	return nil, ErrUnsupported
}

// Keys returns nothing.
func (g *GPIO) Keys() []Reader {
	return nil
}

// Close does nothing.
func (g *GPIO) Close() error {
	return nil
}
