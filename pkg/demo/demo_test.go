package demo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/rrc.go/pkg/board/proto"
	"github.com/robotalks/rrc.go/pkg/framework"
)

type fakeBoard struct {
	lock    sync.Mutex
	rgb     [][]proto.Pixel
	buzzers []proto.Buzzer
	leds    []proto.LEDBlink
	failure error
}

func (b *fakeBoard) SetRGB(pixels ...proto.Pixel) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.failure != nil {
		return b.failure
	}
	b.rgb = append(b.rgb, pixels)
	return nil
}

func (b *fakeBoard) SetLED(blink proto.LEDBlink) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.leds = append(b.leds, blink)
	return nil
}

func (b *fakeBoard) SetBuzzer(buzzer proto.Buzzer) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.failure != nil {
		return b.failure
	}
	b.buzzers = append(b.buzzers, buzzer)
	return nil
}

func (b *fakeBoard) commands() [][]proto.Pixel {
	b.lock.Lock()
	defer b.lock.Unlock()
	return append([][]proto.Pixel(nil), b.rgb...)
}

type testControlContext struct {
	now time.Time
}

func (c *testControlContext) Context() context.Context { return context.Background() }
func (c *testControlContext) Time() time.Time          { return c.now }
func (c *testControlContext) Iteration() uint64        { return 1 }
func (c *testControlContext) PriorityLevel() int       { return framework.PrLvControl }
func (c *testControlContext) TriggerNext()             {}

func pixels(r, g, b uint8) []proto.Pixel {
	return []proto.Pixel{{ID: 1, R: r, G: g, B: b}, {ID: 2, R: r, G: g, B: b}}
}

func TestFill(t *testing.T) {
	require.Equal(t, pixels(0xff, 0xff, 0), Fill(Yellow, 1, 2))
	require.Equal(t, pixels(0, 0, 0), Fill(Black, 1, 2))
	require.Empty(t, Fill(Red))
}

func TestRGBDemo(t *testing.T) {
	b := &fakeBoard{}
	s := NewRGBDemo(b)
	cc := &testControlContext{now: time.Unix(100, 0)}
	for n := 0; n < 5; n++ {
		require.NoError(t, s.Control(cc))
		cc.now = cc.now.Add(500 * time.Millisecond)
		require.NoError(t, s.Control(cc))
		cc.now = cc.now.Add(500 * time.Millisecond)
	}
	require.Equal(t, [][]proto.Pixel{
		pixels(0xff, 0, 0),
		pixels(0, 0xff, 0),
		pixels(0, 0, 0xff),
		pixels(0xff, 0xff, 0),
		pixels(0xff, 0, 0),
	}, b.commands())

	require.NoError(t, (&Sequence{Board: b}).Control(cc))
}

func TestColorCycle(t *testing.T) {
	b := &fakeBoard{}
	c := NewColorCycle(b)
	c.Step = 120
	cc := &testControlContext{}
	for n := 0; n < 4; n++ {
		require.NoError(t, c.Control(cc))
	}
	require.Equal(t, [][]proto.Pixel{
		pixels(0xff, 0, 0),
		pixels(0, 0xff, 0),
		pixels(0, 0, 0xff),
		pixels(0xff, 0, 0),
	}, b.commands())
	require.Equal(t, 120.0, c.Hue())

	c.Step = -240
	require.NoError(t, c.Control(cc))
	require.Equal(t, 240.0, c.Hue())
}

func TestKeyColors(t *testing.T) {
	b := &fakeBoard{}
	k := NewKeyColors(b)
	cc := &testControlContext{}
	k.KeyChanged(cc, 0, true)
	k.KeyChanged(cc, 0, false)
	k.KeyChanged(cc, 1, true)
	k.KeyChanged(cc, 2, true)
	require.NoError(t, k.Control(cc))
	require.Equal(t, [][]proto.Pixel{pixels(0xff, 0, 0), pixels(0, 0, 0xff)}, b.commands())
}

func TestKeyColorsReports(t *testing.T) {
	b := &fakeBoard{}
	k := NewKeyColors(b)
	reports := make(chan proto.KeyReport, 3)
	k.Reports = reports
	reports <- proto.KeyReport{ID: 2, Event: proto.KeyPressed}
	reports <- proto.KeyReport{ID: 1, Event: proto.KeyReleaseFromShortPress}
	reports <- proto.KeyReport{ID: 1, Event: proto.KeyClick}
	ctx, cancel := context.WithCancel(context.Background())
	doneCh := make(chan error, 1)
	go func() {
		doneCh <- k.Run(ctx)
	}()
	deadline := time.Now().Add(time.Second)
	for len(b.commands()) < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	require.Equal(t, context.Canceled, <-doneCh)
	require.Equal(t, [][]proto.Pixel{pixels(0, 0, 0xff), pixels(0xff, 0, 0)}, b.commands())
}

func TestSwitchOff(t *testing.T) {
	b := &fakeBoard{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Equal(t, context.Canceled, (&SwitchOff{Board: b, IDs: DefaultIDs}).Run(ctx))
	require.Equal(t, [][]proto.Pixel{pixels(0, 0, 0)}, b.commands())

	b.failure = errors.New("port closed")
	require.Equal(t, b.failure, (&SwitchOff{Board: b, IDs: DefaultIDs}).Run(ctx))
}

func TestPlayBuzzer(t *testing.T) {
	b := &fakeBoard{}
	steps := []BuzzerStep{
		{Buzzer: proto.Buzzer{Freq: 1900, On: 100 * time.Millisecond, Repeat: 1}, Pause: time.Millisecond},
		{Buzzer: proto.Buzzer{Freq: 1000, On: 500 * time.Millisecond}, Pause: time.Millisecond},
	}
	require.NoError(t, PlayBuzzer(context.Background(), b, steps...))
	require.Equal(t, []proto.Buzzer{steps[0].Buzzer, steps[1].Buzzer, proto.BuzzerOff}, b.buzzers)

	b = &fakeBoard{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Equal(t, context.Canceled, PlayBuzzer(ctx, b, BuzzerDemo...))
	require.Equal(t, []proto.Buzzer{BuzzerDemo[0].Buzzer, proto.BuzzerOff}, b.buzzers)
}

func TestDemoOnLoop(t *testing.T) {
	b := &fakeBoard{}
	l := framework.NewLoop()
	l.Interval = time.Millisecond
	cycle := NewColorCycle(b)
	l.AddController(framework.PrLvActuate, cycle)
	l.AddRunnable(&SwitchOff{Board: b, IDs: DefaultIDs})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.Equal(t, context.DeadlineExceeded, l.Run(ctx))
	cmds := b.commands()
	require.True(t, len(cmds) > 1)
	require.Contains(t, cmds, pixels(0, 0, 0))
}
