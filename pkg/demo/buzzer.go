package demo

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/rrc.go/pkg/board"
	"github.com/robotalks/rrc.go/pkg/board/proto"
)

// BuzzerStep is a buzzer command followed by a pause.
type BuzzerStep struct {
	Buzzer proto.Buzzer
	Pause  time.Duration
}

// BuzzerDemo beeps once, then beeps continuously and switches off.
var BuzzerDemo = []BuzzerStep{
	{Buzzer: proto.Buzzer{Freq: 1900, On: 100 * time.Millisecond, Off: 900 * time.Millisecond, Repeat: 1}, Pause: 2 * time.Second},
	{Buzzer: proto.Buzzer{Freq: 1000, On: 500 * time.Millisecond, Off: 500 * time.Millisecond}, Pause: 3 * time.Second},
}

// PlayBuzzer runs steps in order and always switches the buzzer off.
func PlayBuzzer(ctx context.Context, b board.Commander, steps ...BuzzerStep) (err error) {
	defer func() {
		if offErr := b.SetBuzzer(proto.BuzzerOff); offErr != nil && err == nil {
			err = offErr
		}
	}()
	for _, step := range steps {
		if err = b.SetBuzzer(step.Buzzer); err != nil {
			return err
		}
		glog.V(1).Infof("buzzer %dHz on=%v off=%v repeat=%d", step.Buzzer.Freq, step.Buzzer.On, step.Buzzer.Off, step.Buzzer.Repeat)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(step.Pause):
		}
	}
	return nil
}
