// Package serial opens the serial port connected to the board.
package serial

import (
	"errors"
	"io"
	"time"

	ser "go.bug.st/serial"
)

// Parity describes a serial port parity setting.
type Parity int

// Parity settings.
const (
	NoParity Parity = iota
	OddParity
	EvenParity
	MarkParity
	SpaceParity
)

// StopBits describes a serial port stop bits setting.
type StopBits int

// Stop bits settings.
const (
	OneStopBit StopBits = iota
	OnePointFiveStopBits
	TwoStopBits
)

// Options configures the port. Zero values fall back to 8N1.
type Options struct {
	BaudRate    int
	DataBits    int
	Parity      Parity
	StopBits    StopBits
	ReadTimeout time.Duration
}

// ErrNotPort indicates the ReadWriteCloser is not a serial port.
var ErrNotPort = errors.New("not a serial port")

func (o Options) mode() *ser.Mode {
	dataBits := o.DataBits
	if dataBits == 0 {
		dataBits = 8
	}
	return &ser.Mode{
		BaudRate: o.BaudRate,
		DataBits: dataBits,
		Parity:   ser.Parity(o.Parity),
		StopBits: ser.StopBits(o.StopBits),
	}
}

// Open opens the serial device at path. It's a variable so tests can replace it.
var Open = func(path string, options Options) (io.ReadWriteCloser, error) {
	port, err := ser.Open(path, options.mode())
	if err != nil {
		return nil, err
	}
	if options.ReadTimeout > 0 {
		if err = port.SetReadTimeout(options.ReadTimeout); err != nil {
			port.Close()
			return nil, err
		}
	}
	return port, nil
}

// SetOptions changes the configuration of an opened port.
func SetOptions(rwc io.ReadWriteCloser, options Options) error {
	port, ok := rwc.(ser.Port)
	if !ok {
		return ErrNotPort
	}
	if err := port.SetMode(options.mode()); err != nil {
		return err
	}
	timeout := options.ReadTimeout
	if timeout <= 0 {
		// zero would make reads non-blocking.
		timeout = ser.NoTimeout
	}
	return port.SetReadTimeout(timeout)
}
