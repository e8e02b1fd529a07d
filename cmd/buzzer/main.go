package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"log"

	"github.com/robotalks/rrc.go/pkg/board"
	"github.com/robotalks/rrc.go/pkg/demo"
	fx "github.com/robotalks/rrc.go/pkg/framework"
)

func init() {
	board.SetupFlags()
}

func main() {
	flag.Parse()

	conf := board.NewConfig()
	port := conf.MustOpen()
	defer port.Close()
	b := conf.NewBoard(port)

	err := fx.NewRunner().HandleSignals().Run(
		fx.NamedRun("board", b),
		fx.NamedRun("buzzer", fx.RunFunc(func(ctx context.Context) error {
			if err := demo.PlayBuzzer(ctx, b, demo.BuzzerDemo...); err != nil {
				return err
			}
			// the demo is done, stop the board link.
			return context.Canceled
		})),
	)
	if err != nil {
		log.Fatalln(err)
	}
}
