package proto

import (
	"encoding/binary"
	"time"
)

// Buzzer beeps at Freq Hz for On, then stays silent for Off.
// Repeat 0 repeats forever. Zero Freq or On silences the buzzer.
type Buzzer struct {
	Freq   uint16
	On     time.Duration
	Off    time.Duration
	Repeat uint16
}

// Frame encodes the command.
func (c Buzzer) Frame() (*Frame, error) {
	on, err := millis16(c.On)
	if err != nil {
		return nil, err
	}
	off, err := millis16(c.Off)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, 8)
	binary.LittleEndian.PutUint16(payload[0:], c.Freq)
	binary.LittleEndian.PutUint16(payload[2:], on)
	binary.LittleEndian.PutUint16(payload[4:], off)
	binary.LittleEndian.PutUint16(payload[6:], c.Repeat)
	return &Frame{Function: FuncBuzzer, Payload: payload}, nil
}

// BuzzerOff silences the buzzer.
var BuzzerOff = Buzzer{Repeat: 1}
