package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/robotalks/rrc.go/pkg/board"
	fx "github.com/robotalks/rrc.go/pkg/framework"
	"github.com/robotalks/rrc.go/pkg/remote/mqtt"
)

var version = "dev"

func init() {
	board.SetupFlags()
	mqtt.SetupFlags()
}

func main() {
	flag.Parse()

	boardConf := board.NewConfig()
	port := boardConf.MustOpen()
	defer port.Close()
	b := boardConf.NewBoard(port)

	bridge, q, err := mqtt.NewConfig().NewBridge(b, mqtt.Meta{
		Device:  boardConf.Device,
		Baud:    boardConf.BaudRate,
		Version: version,
	})
	if err != nil {
		log.Fatalln(err)
	}
	defer q.Close()

	err = fx.NewRunner().HandleSignals().Run(
		fx.NamedRun("board", b),
		fx.NamedRun("bridge", bridge),
	)
	if err != nil {
		log.Fatalln(err)
	}
}
