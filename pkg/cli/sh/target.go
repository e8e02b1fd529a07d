package sh

import (
	"context"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/rrc.go/pkg/board"
	bp "github.com/robotalks/rrc.go/pkg/board/proto"
	fx "github.com/robotalks/rrc.go/pkg/framework"
	"github.com/robotalks/rrc.go/pkg/remote/msgs"
	"github.com/robotalks/rrc.go/pkg/remote/mqtt"
)

// Target is the board the shell talks to, either over serial or MQTT.
type Target struct {
	Name  string
	Board board.Commander
	Keys  <-chan bp.KeyReport
	Stats func(context.Context) (board.Stats, error)

	// SetBaud changes the baud rate, only for serial targets.
	SetBaud func(baud int) error

	cancel func()
	doneCh chan error
	closer io.Closer
}

// OpenSerial opens the board on the serial device and runs its link.
func OpenSerial(conf *board.Config) (*Target, error) {
	port, err := conf.Open()
	if err != nil {
		return nil, err
	}
	b := conf.NewBoard(port)
	portConf := *conf
	t := &Target{
		Name:  conf.Device,
		Board: b,
		Keys:  b.KeyEvents(),
		Stats: func(context.Context) (board.Stats, error) {
			return b.Link().Stats(), nil
		},
		SetBaud: func(baud int) error {
			next := portConf
			next.BaudRate = baud
			if err := next.Reconfigure(port); err != nil {
				return err
			}
			portConf = next
			return nil
		},
		doneCh: make(chan error, 1),
	}
	var ctx context.Context
	ctx, t.cancel = context.WithCancel(context.Background())
	go func() {
		t.doneCh <- fx.RunWithContextCloser(ctx, port, func() error {
			return b.Run(ctx)
		})
	}()
	return t, nil
}

// ConnectRemote connects to the bridge identified by conf.ID.
func ConnectRemote(conf *mqtt.Config) (*Target, error) {
	client, q, err := conf.Connect()
	if err != nil {
		return nil, err
	}
	keyCh := make(chan bp.KeyReport, board.KeyEventsBuffer)
	t := &Target{
		Name:  conf.ID,
		Board: client,
		Keys:  keyCh,
		Stats: func(ctx context.Context) (board.Stats, error) {
			s, err := client.Stats(ctx)
			if err != nil {
				return board.Stats{}, err
			}
			return board.Stats{
				FramesSent:     s.FramesSent,
				FramesReceived: s.FramesReceived,
				ChecksumErrors: s.ChecksumErrors,
				LengthErrors:   s.LengthErrors,
				BytesDropped:   s.BytesDropped,
			}, nil
		},
		doneCh: make(chan error, 1),
		closer: q,
	}
	var ctx context.Context
	ctx, t.cancel = context.WithCancel(context.Background())
	go func() {
		defer client.Close()
		for {
			select {
			case <-ctx.Done():
				t.doneCh <- ctx.Err()
				return
			case msg := <-client.Events():
				if ev, ok := msg.(*msgs.KeyEvent); ok {
					select {
					case keyCh <- ev.Report():
					default:
					}
				}
			}
		}
	}()
	return t, nil
}

// Close stops the target.
func (t *Target) Close() error {
	t.cancel()
	err := <-t.doneCh
	if t.closer != nil {
		t.closer.Close()
	}
	if err != nil && err != context.Canceled {
		glog.Warningf("%s stopped: %v", t.Name, err)
	}
	return nil
}
