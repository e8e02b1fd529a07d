package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/rrc.go/pkg/board"
	bp "github.com/robotalks/rrc.go/pkg/board/proto"
	"github.com/robotalks/rrc.go/pkg/remote/msgs"
)

// Meta is published retained on the meta topic while the bridge runs.
type Meta struct {
	ID      string `json:"id"`
	Device  string `json:"device,omitempty"`
	Baud    int    `json:"baud,omitempty"`
	Version string `json:"version,omitempty"`
}

// StatsSource provides link counters.
type StatsSource interface {
	Stats() board.Stats
}

// CommandQueueSize is the number of pending commands a Bridge buffers.
const CommandQueueSize = 16

// Bridge executes remote commands on a board and publishes key events.
type Bridge struct {
	Transport Transport
	Board     board.Commander
	KeyEvents <-chan bp.KeyReport
	Stats     StatsSource
	Meta      Meta

	topics Topics
}

// NewBridge creates a Bridge.
func NewBridge(t Transport, b board.Commander, meta Meta) *Bridge {
	return &Bridge{Transport: t, Board: b, Meta: meta, topics: TopicsFor(meta.ID)}
}

// NewBoardBridge creates a Bridge exposing all features of b.
func NewBoardBridge(t Transport, b *board.Board, meta Meta) *Bridge {
	br := NewBridge(t, b, meta)
	br.KeyEvents = b.KeyEvents()
	br.Stats = b.Link()
	return br
}

// Topics returns the topics the bridge uses.
func (b *Bridge) Topics() Topics {
	return b.topics
}

// PublishMeta publishes the retained meta.
func (b *Bridge) PublishMeta() error {
	data, err := json.Marshal(&b.Meta)
	if err != nil {
		return err
	}
	return b.Transport.Publish(b.topics.Meta, data, true)
}

// Run implements Runnable.
func (b *Bridge) Run(ctx context.Context) error {
	cmdCh := make(chan []byte, CommandQueueSize)
	sub, err := b.Transport.Subscribe(b.topics.Cmd, func(_ string, payload []byte) {
		select {
		case cmdCh <- payload:
		default:
			glog.Warningf("command queue full, dropped %d bytes", len(payload))
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", b.topics.Cmd, err)
	}
	defer sub.Close()
	if err = b.PublishMeta(); err != nil {
		return fmt.Errorf("publish meta: %w", err)
	}
	defer func() {
		if err := b.Transport.Publish(b.topics.Meta, nil, true); err != nil {
			glog.Warningf("clear meta: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload := <-cmdCh:
			if err := b.handleCommand(payload); err != nil {
				glog.Errorf("reply: %v", err)
			}
		case report := <-b.KeyEvents:
			if err := b.publish(msgs.NewKeyEvent(report), 0); err != nil {
				glog.Errorf("key event: %v", err)
			}
		}
	}
}

func (b *Bridge) handleCommand(payload []byte) error {
	typed, err := msgs.DecodeTyped(payload)
	if err != nil {
		glog.Warningf("invalid command: %v", err)
		return nil
	}
	if !typed.IsCommand() {
		glog.V(2).Infof("ignore non-command %x", typed.TypeId)
		return nil
	}
	reply := b.Execute(typed)
	return b.publish(reply, typed.Sequence)
}

// Execute runs a command and returns the reply.
func (b *Bridge) Execute(typed *msgs.Typed) msgs.Message {
	msg, err := typed.Decode()
	if err != nil {
		return msgs.NewCommandErr(err)
	}
	glog.V(1).Infof("CMD[%d] %T %v", typed.Sequence, msg, msg)
	switch m := msg.(type) {
	case *msgs.RGBSet:
		err = b.Board.SetRGB(m.BoardPixels()...)
	case *msgs.LEDSet:
		err = b.Board.SetLED(m.Blink())
	case *msgs.BuzzerSet:
		err = b.Board.SetBuzzer(m.Buzzer())
	case *msgs.StatsQuery:
		if b.Stats == nil {
			return msgs.NewCommandErr(msgs.ErrUnsupportedCommand)
		}
		s := b.Stats.Stats()
		return &msgs.Stats{
			FramesSent:     s.FramesSent,
			FramesReceived: s.FramesReceived,
			ChecksumErrors: s.ChecksumErrors,
			LengthErrors:   s.LengthErrors,
			BytesDropped:   s.BytesDropped,
		}
	default:
		err = msgs.ErrUnsupportedCommand
	}
	if err != nil {
		return msgs.NewCommandErr(err)
	}
	return &msgs.CommandOK{}
}

func (b *Bridge) publish(msg msgs.Message, seq uint32) error {
	data, err := msgs.Encode(msg, seq)
	if err != nil {
		return err
	}
	return b.Transport.Publish(b.topics.Msg, data, false)
}
