package demo

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/robotalks/rrc.go/pkg/board"
	"github.com/robotalks/rrc.go/pkg/framework"
)

// DefaultHueStep is the hue increment in degrees per iteration.
const DefaultHueStep = 5.0

// ColorCycle sweeps the hue of RGB LEDs on every iteration.
type ColorCycle struct {
	Board board.Commander
	IDs   []uint8
	// Step in degrees.
	Step float64

	hue float64
}

// NewColorCycle creates a ColorCycle over the default LEDs.
func NewColorCycle(b board.Commander) *ColorCycle {
	return &ColorCycle{Board: b, IDs: DefaultIDs, Step: DefaultHueStep}
}

// Hue returns the hue to be shown next.
func (c *ColorCycle) Hue() float64 {
	return c.hue
}

// Control implements framework.Controller.
func (c *ColorCycle) Control(ctx framework.ControlContext) error {
	color := colorful.Hsv(c.hue, 1, 1)
	c.hue = math.Mod(c.hue+c.Step, 360)
	if c.hue < 0 {
		c.hue += 360
	}
	return c.Board.SetRGB(Fill(color, c.IDs...)...)
}
