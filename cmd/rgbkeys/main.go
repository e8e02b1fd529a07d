package main

import (
	"flag"
	"log"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/rrc.go/pkg/board"
	"github.com/robotalks/rrc.go/pkg/demo"
	fx "github.com/robotalks/rrc.go/pkg/framework"
	"github.com/robotalks/rrc.go/pkg/keys"
)

var (
	gpioKeys   = true
	boardKeys  = true
	pollPeriod = 10 * time.Millisecond
)

func init() {
	board.SetupFlags()
	keys.SetupFlags()
	flag.BoolVar(&gpioKeys, "gpio-keys", gpioKeys, "Read keys from host GPIO.")
	flag.BoolVar(&boardKeys, "board-keys", boardKeys, "Use key reports from the board.")
	flag.DurationVar(&pollPeriod, "poll", pollPeriod, "Key polling period.")
}

func main() {
	flag.Parse()

	var lines *keys.GPIO
	if gpioKeys {
		lines = keys.NewConfig().MustOpen()
		defer lines.Close()
	}

	err := demo.Run(board.NewConfig(), pollPeriod, func(b *board.Board, loop *fx.Loop) error {
		colors := demo.NewKeyColors(b)
		if boardKeys {
			colors.Reports = b.KeyEvents()
		}
		if lines != nil {
			poller := keys.NewPoller(func(cc fx.ControlContext, index int, pressed bool) {
				glog.Infof("key%d pressed=%v", index+1, pressed)
				colors.KeyChanged(cc, index, pressed)
			}, lines.Keys()...)
			loop.AddController(fx.PrLvSense, poller)
		}
		loop.AddController(fx.PrLvControl, colors)
		return nil
	})
	if err != nil {
		log.Fatalln(err)
	}
}
