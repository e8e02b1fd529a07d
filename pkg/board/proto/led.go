package proto

import (
	"encoding/binary"
	"time"
)

// LEDBlink makes an on-board LED blink.
// Repeat 0 keeps blinking until the next command.
type LEDBlink struct {
	ID     uint8
	On     time.Duration
	Off    time.Duration
	Repeat uint16
}

// Frame encodes the command.
func (c LEDBlink) Frame() (*Frame, error) {
	on, err := millis16(c.On)
	if err != nil {
		return nil, err
	}
	off, err := millis16(c.Off)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, 7)
	payload[0] = c.ID
	binary.LittleEndian.PutUint16(payload[1:], on)
	binary.LittleEndian.PutUint16(payload[3:], off)
	binary.LittleEndian.PutUint16(payload[5:], c.Repeat)
	return &Frame{Function: FuncLED, Payload: payload}, nil
}

func millis16(d time.Duration) (uint16, error) {
	ms := d / time.Millisecond
	if ms < 0 || ms > 0xffff {
		return 0, invalidArgument("duration %v out of range", d)
	}
	return uint16(ms), nil
}
