package proto

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates a command can't be encoded,
	// e.g. the payload exceeds MaxPayloadSize.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrChecksumMismatch indicates a received frame failed CRC8 verification.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrInvalidLength indicates a received length byte exceeds MaxPayloadSize.
	ErrInvalidLength = errors.New("invalid payload length")
	// ErrMalformedPayload indicates a payload doesn't match the layout of its function.
	ErrMalformedPayload = errors.New("malformed payload")
)

// ChecksumError reports a dropped frame.
type ChecksumError struct {
	Function Function
	Expected byte
	Received byte
}

// Error implements error.
func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s frame: checksum mismatch: expect %02x, got %02x",
		e.Function, e.Expected, e.Received)
}

// Unwrap allows errors.Is(err, ErrChecksumMismatch).
func (e *ChecksumError) Unwrap() error {
	return ErrChecksumMismatch
}

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidArgument}, args...)...)
}

func malformedPayload(fn Function, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: "+format, append([]interface{}{ErrMalformedPayload, fn}, args...)...)
}
