package demo

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/rrc.go/pkg/board"
	fx "github.com/robotalks/rrc.go/pkg/framework"
)

// SetupFunc adds controllers and runnables driving b to the loop.
type SetupFunc func(b *board.Board, loop *fx.Loop) error

// Run opens the board, runs the loop until interrupted and
// switches the LEDs off before closing the port.
func Run(conf *board.Config, interval time.Duration, setup SetupFunc) error {
	port, err := conf.Open()
	if err != nil {
		return err
	}
	defer port.Close()

	b := conf.NewBoard(port)
	loop := fx.NewLoop()
	loop.Interval = interval
	if err = setup(b, loop); err != nil {
		return err
	}
	off := &SwitchOff{Board: b, IDs: DefaultIDs}
	if err = off.Off(); err != nil {
		return err
	}

	glog.Infof("running on %s, press Ctrl-C to stop", conf.Device)
	err = fx.NewRunner().HandleSignals().Run(
		fx.NamedRun("board", b),
		fx.NamedRun("loop", loop),
	)
	if offErr := off.Off(); offErr != nil && err == nil {
		err = offErr
	}
	return err
}
