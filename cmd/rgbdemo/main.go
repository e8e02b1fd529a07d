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

var hold = time.Second

func init() {
	board.SetupFlags()
	flag.DurationVar(&hold, "hold", hold, "Duration each color is shown.")
}

func main() {
	flag.Parse()

	err := demo.Run(board.NewConfig(), 100*time.Millisecond, func(b *board.Board, loop *fx.Loop) error {
		seq := demo.NewRGBDemo(b)
		seq.Hold = hold
		loop.AddController(fx.PrLvActuate, seq)
		return nil
	})
	if err != nil {
		log.Fatalln(err)
	}
}
