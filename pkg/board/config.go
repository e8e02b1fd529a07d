package board

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/robotalks/rrc.go/pkg/board/serial"
)

// Config provides options to open the board.
type Config struct {
	// Device is the path of the serial device.
	Device string
	// BaudRate of the serial line.
	BaudRate int
	// ReadTimeout makes the serial read return periodically so
	// cancellation is observed without closing the port.
	// Zero disables the timeout.
	ReadTimeout time.Duration
}

var defaultConfig = Config{
	Device:      "/dev/ttyAMA0",
	BaudRate:    1000000,
	ReadTimeout: 100 * time.Millisecond,
}

func init() {
	if val := os.Getenv("RRC_DEVICE"); val != "" {
		defaultConfig.Device = val
	}
	if val := os.Getenv("RRC_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil && baud > 0 {
			defaultConfig.BaudRate = baud
		}
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "device", defaultConfig.Device, "Serial device connected to the board.")
	flag.IntVar(&defaultConfig.BaudRate, "baud", defaultConfig.BaudRate, "Serial baud rate.")
	flag.DurationVar(&defaultConfig.ReadTimeout, "read-timeout", defaultConfig.ReadTimeout, "Serial read timeout, 0 to block.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Options converts the config into serial options.
func (c *Config) Options() serial.Options {
	return serial.Options{BaudRate: c.BaudRate, ReadTimeout: c.ReadTimeout}
}

// Open opens the serial device.
func (c *Config) Open() (io.ReadWriteCloser, error) {
	if c.Device == "" {
		return nil, fmt.Errorf("serial device must be specified")
	}
	if c.BaudRate <= 0 {
		return nil, fmt.Errorf("invalid baud rate: %d", c.BaudRate)
	}
	port, err := serial.Open(c.Device, c.Options())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.Device, err)
	}
	return port, nil
}

// MustOpen opens the serial device and fails on error.
func (c *Config) MustOpen() io.ReadWriteCloser {
	port, err := c.Open()
	if err != nil {
		log.Fatalln(err)
	}
	return port
}

// Reconfigure applies the baud rate and read timeout to an opened port.
func (c *Config) Reconfigure(port io.ReadWriteCloser) error {
	if c.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate: %d", c.BaudRate)
	}
	return serial.SetOptions(port, c.Options())
}

// NewBoard creates a Board over an opened port.
func (c *Config) NewBoard(port io.ReadWriter) *Board {
	b := New(port)
	b.Link().ReadTimeout = c.ReadTimeout > 0
	return b
}
