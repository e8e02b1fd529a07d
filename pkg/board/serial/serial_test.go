package serial

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	ser "go.bug.st/serial"
)

type fakePort struct {
	ser.Port
	mode    *ser.Mode
	timeout time.Duration
}

func (p *fakePort) SetMode(mode *ser.Mode) error {
	p.mode = mode
	return nil
}

func (p *fakePort) SetReadTimeout(timeout time.Duration) error {
	p.timeout = timeout
	return nil
}

type nopCloser struct {
	bytes.Buffer
}

func (c *nopCloser) Close() error { return nil }

func TestSetOptions(t *testing.T) {
	port := &fakePort{}
	require.NoError(t, SetOptions(port, Options{
		BaudRate:    115200,
		Parity:      EvenParity,
		StopBits:    TwoStopBits,
		ReadTimeout: 10 * time.Millisecond,
	}))
	require.Equal(t, &ser.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   ser.EvenParity,
		StopBits: ser.TwoStopBits,
	}, port.mode)
	require.Equal(t, 10*time.Millisecond, port.timeout)

	require.NoError(t, SetOptions(port, Options{BaudRate: 9600, DataBits: 7}))
	require.Equal(t, 7, port.mode.DataBits)
	require.Equal(t, ser.NoParity, port.mode.Parity)
	require.Equal(t, ser.OneStopBit, port.mode.StopBits)
	require.Equal(t, ser.NoTimeout, port.timeout)
}

func TestSetOptionsNotPort(t *testing.T) {
	require.Equal(t, ErrNotPort, SetOptions(&nopCloser{}, Options{BaudRate: 115200}))
}
