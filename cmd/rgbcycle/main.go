package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"
	"time"

	"github.com/robotalks/rrc.go/pkg/board"
	"github.com/robotalks/rrc.go/pkg/demo"
	fx "github.com/robotalks/rrc.go/pkg/framework"
)

var (
	interval = 50 * time.Millisecond
	step     = demo.DefaultHueStep
)

func init() {
	board.SetupFlags()
	flag.DurationVar(&interval, "interval", interval, "Interval between color changes.")
	flag.Float64Var(&step, "step", step, "Hue step in degrees.")
}

func main() {
	flag.Parse()

	err := demo.Run(board.NewConfig(), interval, func(b *board.Board, loop *fx.Loop) error {
		cycle := demo.NewColorCycle(b)
		cycle.Step = step
		loop.AddController(fx.PrLvActuate, cycle)
		return nil
	})
	if err != nil {
		log.Fatalln(err)
	}
}
