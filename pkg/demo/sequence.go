package demo

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/robotalks/rrc.go/pkg/board"
	"github.com/robotalks/rrc.go/pkg/board/proto"
	"github.com/robotalks/rrc.go/pkg/framework"
)

// Sequence shows a fixed list of color steps, each for Hold.
type Sequence struct {
	Board board.Commander
	Steps [][]proto.Pixel
	Hold  time.Duration

	next    int
	shownAt time.Time
}

// NewColorSequence creates a Sequence stepping through colors on ids.
func NewColorSequence(b board.Commander, hold time.Duration, ids []uint8, colors ...colorful.Color) *Sequence {
	s := &Sequence{Board: b, Hold: hold}
	for _, c := range colors {
		s.Steps = append(s.Steps, Fill(c, ids...))
	}
	return s
}

// NewRGBDemo creates the sequence of red, green, blue and yellow.
func NewRGBDemo(b board.Commander) *Sequence {
	return NewColorSequence(b, time.Second, DefaultIDs, Red, Green, Blue, Yellow)
}

// Control implements framework.Controller.
func (s *Sequence) Control(ctx framework.ControlContext) error {
	if len(s.Steps) == 0 {
		return nil
	}
	now := ctx.Time()
	if !s.shownAt.IsZero() && now.Sub(s.shownAt) < s.Hold {
		return nil
	}
	step := s.Steps[s.next]
	s.next = (s.next + 1) % len(s.Steps)
	s.shownAt = now
	return s.Board.SetRGB(step...)
}
