package board

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/rrc.go/pkg/board/serial"
)

type nopCloser struct {
	bytes.Buffer
}

func (c *nopCloser) Close() error { return nil }

func TestConfigOpen(t *testing.T) {
	open := serial.Open
	defer func() { serial.Open = open }()

	var gotPath string
	var gotOptions serial.Options
	serial.Open = func(path string, options serial.Options) (io.ReadWriteCloser, error) {
		gotPath, gotOptions = path, options
		return &nopCloser{}, nil
	}

	conf := NewConfig()
	conf.Device = "/dev/ttyUSB0"
	conf.BaudRate = 115200
	conf.ReadTimeout = 50 * time.Millisecond
	port, err := conf.Open()
	require.NoError(t, err)
	require.NotNil(t, port)
	require.Equal(t, "/dev/ttyUSB0", gotPath)
	require.Equal(t, serial.Options{BaudRate: 115200, ReadTimeout: 50 * time.Millisecond}, gotOptions)
	require.True(t, conf.NewBoard(port).Link().ReadTimeout)

	conf.ReadTimeout = 0
	require.False(t, conf.NewBoard(port).Link().ReadTimeout)

	failure := errors.New("no such device")
	serial.Open = func(string, serial.Options) (io.ReadWriteCloser, error) {
		return nil, failure
	}
	_, err = conf.Open()
	require.True(t, errors.Is(err, failure))

	conf.Device = ""
	_, err = conf.Open()
	require.Error(t, err)
}

func TestConfigReconfigure(t *testing.T) {
	conf := NewConfig()
	require.Equal(t, serial.ErrNotPort, conf.Reconfigure(&nopCloser{}))
	conf.BaudRate = 0
	require.Error(t, conf.Reconfigure(&nopCloser{}))
}

func TestDefaultConfig(t *testing.T) {
	conf := NewConfig()
	require.False(t, Default() == conf)
	require.Equal(t, *Default(), *conf)
}
