package board

import (
	"context"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/rrc.go/pkg/board/proto"
)

// KeyEventsBuffer is the capacity of the key events chan.
const KeyEventsBuffer = 16

// Commander sends commands to a board, local or remote.
type Commander interface {
	SetRGB(pixels ...proto.Pixel) error
	SetLED(blink proto.LEDBlink) error
	SetBuzzer(buzzer proto.Buzzer) error
}

// Board provides application operations over a Link.
type Board struct {
	// Handler receives frames other than key reports.
	Handler FrameHandler

	link  *Link
	keyCh chan proto.KeyReport
}

// New creates a Board over rw.
func New(rw io.ReadWriter) *Board {
	return NewWithLink(NewLink(rw))
}

// NewWithLink wraps an existing Link.
func NewWithLink(link *Link) *Board {
	b := &Board{
		link:  link,
		keyCh: make(chan proto.KeyReport, KeyEventsBuffer),
	}
	b.link.Handler = b
	return b
}

// Link gets the wrapped Link.
func (b *Board) Link() *Link {
	return b.link
}

// KeyEvents retrieves the key report chan.
func (b *Board) KeyEvents() <-chan proto.KeyReport {
	return b.keyCh
}

// Send sends a raw frame.
func (b *Board) Send(frame *proto.Frame) error {
	return b.link.Send(frame)
}

// SetRGB sets colors of RGB LEDs.
func (b *Board) SetRGB(pixels ...proto.Pixel) error {
	frame, err := proto.NewRGBFrame(pixels...)
	if err != nil {
		return err
	}
	return b.link.Send(frame)
}

// SetLED makes an LED blink.
func (b *Board) SetLED(blink proto.LEDBlink) error {
	frame, err := blink.Frame()
	if err != nil {
		return err
	}
	return b.link.Send(frame)
}

// SetBuzzer drives the buzzer.
func (b *Board) SetBuzzer(buzzer proto.Buzzer) error {
	frame, err := buzzer.Frame()
	if err != nil {
		return err
	}
	return b.link.Send(frame)
}

// HandleFrame implements FrameHandler.
func (b *Board) HandleFrame(ctx context.Context, frame *proto.Frame) {
	if frame.Function != proto.FuncKey {
		if h := b.Handler; h != nil {
			h.HandleFrame(ctx, frame)
		}
		return
	}
	report, err := proto.DecodeKeyReport(frame.Payload)
	if err != nil {
		glog.Warningf("key report: %v", err)
		return
	}
	for {
		select {
		case b.keyCh <- report:
			return
		default:
		}
		select {
		case dropped := <-b.keyCh:
			glog.V(2).Infof("%v: %d %s", ErrKeyEventsDropped, dropped.ID, dropped.Event)
		default:
		}
	}
}

// Run wraps Link.Run to implement Runnable.
func (b *Board) Run(ctx context.Context) error {
	return b.link.Run(ctx)
}

// AllOff switches off the given RGB LEDs.
func AllOff(c Commander, ids ...uint8) error {
	pixels := make([]proto.Pixel, len(ids))
	for n, id := range ids {
		pixels[n] = proto.Pixel{ID: id}
	}
	return c.SetRGB(pixels...)
}
