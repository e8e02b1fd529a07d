package board

import (
	"context"
	"fmt"
	"time"

	"github.com/abiosoft/ishell"

	rrc "github.com/robotalks/rrc.go/pkg/board"
	bp "github.com/robotalks/rrc.go/pkg/board/proto"
	"github.com/robotalks/rrc.go/pkg/cli/sh"
	"github.com/robotalks/rrc.go/pkg/demo"
)

// DefaultKeysDuration is how long keys prints events without argument.
const DefaultKeysDuration = 10 * time.Second

var (
	// RGBCmd sets RGB LED colors.
	RGBCmd = ishell.Cmd{
		Name: "rgb",
		Help: "ID R G B [ID R G B ...] | ID #rrggbb ...",
		Func: sh.MustBeConnected(func(c *ishell.Context, t *sh.Target) {
			pixels, err := ParsePixels(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			sh.PrintResult(c, nil, t.Board.SetRGB(pixels...))
		}),
	}

	// LEDCmd blinks an LED.
	LEDCmd = ishell.Cmd{
		Name: "led",
		Help: "ID ON_MS OFF_MS REPEAT",
		Func: sh.MustBeConnected(func(c *ishell.Context, t *sh.Target) {
			blink, err := ParseLED(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			sh.PrintResult(c, nil, t.Board.SetLED(blink))
		}),
	}

	// BuzzerCmd drives the buzzer.
	BuzzerCmd = ishell.Cmd{
		Name: "buzzer",
		Help: "FREQ ON_MS OFF_MS REPEAT",
		Func: sh.MustBeConnected(func(c *ishell.Context, t *sh.Target) {
			buzzer, err := ParseBuzzer(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			sh.PrintResult(c, nil, t.Board.SetBuzzer(buzzer))
		}),
	}

	// OffCmd switches off RGB LEDs and the buzzer.
	OffCmd = ishell.Cmd{
		Name: "off",
		Help: "",
		Func: sh.MustBeConnected(func(c *ishell.Context, t *sh.Target) {
			err := rrc.AllOff(t.Board, demo.DefaultIDs...)
			if err == nil {
				err = t.Board.SetBuzzer(bp.BuzzerOff)
			}
			sh.PrintResult(c, nil, err)
		}),
	}

	// KeysCmd prints key events.
	KeysCmd = ishell.Cmd{
		Name: "keys",
		Help: "[SECONDS]",
		Func: sh.MustBeConnected(func(c *ishell.Context, t *sh.Target) {
			dur := DefaultKeysDuration
			if len(c.Args) > 0 {
				secs, err := time.ParseDuration(c.Args[0] + "s")
				if err != nil {
					c.Err(fmt.Errorf("invalid SECONDS: %v", err))
					return
				}
				dur = secs
			}
			timeout := time.After(dur)
			for {
				select {
				case report := <-t.Keys:
					c.Printf("key %d: %s\n", report.ID, report.Event)
				case <-timeout:
					return
				}
			}
		}),
	}

	// BaudCmd changes the baud rate of the serial port.
	BaudCmd = ishell.Cmd{
		Name: "baud",
		Help: "RATE",
		Func: sh.MustBeConnected(func(c *ishell.Context, t *sh.Target) {
			if t.SetBaud == nil {
				c.Err(fmt.Errorf("baud rate can only be changed on a serial target"))
				return
			}
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("expect RATE"))
				return
			}
			baud, err := ParseBaud(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			sh.PrintResult(c, nil, t.SetBaud(baud))
		}),
	}

	// StatsCmd prints link counters.
	StatsCmd = ishell.Cmd{
		Name: "stats",
		Help: "",
		Func: sh.MustBeConnected(func(c *ishell.Context, t *sh.Target) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			stats, err := t.Stats(ctx)
			sh.PrintResult(c, stats, err)
		}),
	}
)

func init() {
	sh.AddCmds(
		&RGBCmd,
		&LEDCmd,
		&BuzzerCmd,
		&OffCmd,
		&KeysCmd,
		&StatsCmd,
		&BaudCmd,
	)
}
