package proto

import "io"

// Framing constants.
const (
	StartByte1 byte = 0xAA
	StartByte2 byte = 0x55

	// MaxPayloadSize keeps a whole frame within 256 bytes.
	MaxPayloadSize = 251
	// FrameOverhead is the number of bytes around the payload.
	FrameOverhead = 5
	// MaxFrameSize is the size of a frame carrying MaxPayloadSize bytes.
	MaxFrameSize = MaxPayloadSize + FrameOverhead
)

// Frame is a decoded frame, or a frame to be encoded.
type Frame struct {
	Function Function
	Payload  []byte
}

// Encode encodes a frame into a newly allocated buffer.
func Encode(fn Function, payload []byte) ([]byte, error) {
	f := Frame{Function: fn, Payload: payload}
	return f.AppendTo(make([]byte, 0, len(payload)+FrameOverhead))
}

// Len returns the encoded size of the frame.
func (f *Frame) Len() int {
	return len(f.Payload) + FrameOverhead
}

// AppendTo appends the encoded frame to dst.
func (f *Frame) AppendTo(dst []byte) ([]byte, error) {
	l := len(f.Payload)
	if l > MaxPayloadSize {
		return dst, invalidArgument("payload of %d bytes exceeds %d", l, MaxPayloadSize)
	}
	dst = append(dst, StartByte1, StartByte2, byte(f.Function), byte(l))
	start := len(dst) - 2
	dst = append(dst, f.Payload...)
	return append(dst, Checksum(dst[start:])), nil
}

// Bytes returns encoded bytes for sending.
func (f *Frame) Bytes() ([]byte, error) {
	return f.AppendTo(make([]byte, 0, f.Len()))
}

// WriteTo writes the encoded frame with a single Write.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	var buf [MaxFrameSize]byte
	b, err := f.AppendTo(buf[:0])
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}
