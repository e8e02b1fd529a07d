//go:build linux
// +build linux

package keys

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/mkch/gpio"
)

const consumer = "rrc-keys"

// line is an input line with pull-up, pressed when low.
type line struct {
	offset uint32
	line   *gpio.Line
}

func (l *line) Pressed() (bool, error) {
	value, err := l.line.Value()
	if err != nil {
		return false, fmt.Errorf("read gpio line %d: %w", l.offset, err)
	}
	return value == 0, nil
}

// GPIO holds the opened key lines.
type GPIO struct {
	lines []*line
}

// OpenGPIO opens the lines at offsets on chip as keys.
func OpenGPIO(chip string, offsets ...uint32) (*GPIO, error) {
	c, err := gpio.OpenChip(chip)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", chip, err)
	}
	defer c.Close()

	g := &GPIO{}
	for _, offset := range offsets {
		l, err := c.OpenLine(offset, 0, gpio.Input, consumer)
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("open gpio line %d: %w", offset, err)
		}
		g.lines = append(g.lines, &line{offset: offset, line: l})
	}
	return g, nil
}

// Keys returns readers in the order of offsets.
func (g *GPIO) Keys() []Reader {
	readers := make([]Reader, len(g.lines))
	for n, l := range g.lines {
		readers[n] = l
	}
	return readers
}

// Close releases all lines.
func (g *GPIO) Close() error {
	var firstErr error
	for _, l := range g.lines {
		if err := l.line.Close(); err != nil {
			glog.Warningf("close gpio line %d: %v", l.offset, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	g.lines = nil
	return firstErr
}
