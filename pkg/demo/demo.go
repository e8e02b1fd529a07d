// Package demo contains RGB and buzzer demos running on the framework Loop.
package demo

import (
	"context"

	"github.com/golang/glog"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/robotalks/rrc.go/pkg/board"
	"github.com/robotalks/rrc.go/pkg/board/proto"
)

// DefaultIDs are the RGB LEDs on the expansion board.
var DefaultIDs = []uint8{1, 2}

// Basic colors.
var (
	Red    = colorful.Color{R: 1}
	Green  = colorful.Color{G: 1}
	Blue   = colorful.Color{B: 1}
	Yellow = colorful.Color{R: 1, G: 1}
	Black  = colorful.Color{}
)

// Fill returns pixels of ids all set to color.
func Fill(color colorful.Color, ids ...uint8) []proto.Pixel {
	r, g, b := color.Clamped().RGB255()
	pixels := make([]proto.Pixel, len(ids))
	for n, id := range ids {
		pixels[n] = proto.Pixel{ID: id, R: r, G: g, B: b}
	}
	return pixels
}

// SwitchOff turns RGB LEDs off when the context is done.
type SwitchOff struct {
	Board board.Commander
	IDs   []uint8
}

// Off turns the LEDs off now.
func (s *SwitchOff) Off() error {
	if err := board.AllOff(s.Board, s.IDs...); err != nil {
		glog.Errorf("switch off: %v", err)
		return err
	}
	glog.Info("RGB switched off")
	return nil
}

// Run implements framework.Runnable.
func (s *SwitchOff) Run(ctx context.Context) error {
	<-ctx.Done()
	if err := s.Off(); err != nil {
		return err
	}
	return ctx.Err()
}
