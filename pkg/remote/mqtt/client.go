package mqtt

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"

	bp "github.com/robotalks/rrc.go/pkg/board/proto"
	"github.com/robotalks/rrc.go/pkg/remote/msgs"
)

// DefaultCommandExpiration is the default expiration expecting a result.
const DefaultCommandExpiration = time.Second

// EventsBuffer is the capacity of the events chan.
const EventsBuffer = 16

// Client sends commands to a remote Bridge and receives its events.
type Client struct {
	Transport  Transport
	Expiration time.Duration

	topics  Topics
	sub     io.Closer
	seq     uint32
	pending map[uint32]chan msgs.Message
	lock    sync.Mutex
	eventCh chan msgs.Message
}

// NewClient creates a Client talking to controller id.
func NewClient(t Transport, id string) *Client {
	return &Client{
		Transport:  t,
		Expiration: DefaultCommandExpiration,
		topics:     TopicsFor(id),
		pending:    make(map[uint32]chan msgs.Message),
		eventCh:    make(chan msgs.Message, EventsBuffer),
	}
}

// Start subscribes replies and events.
func (c *Client) Start() error {
	sub, err := c.Transport.Subscribe(c.topics.Msg, c.handleMsg)
	if err != nil {
		return err
	}
	c.sub = sub
	return nil
}

// Close unsubscribes.
func (c *Client) Close() error {
	if c.sub == nil {
		return nil
	}
	err := c.sub.Close()
	c.sub = nil
	return err
}

// Events retrieves events published by the bridge.
func (c *Client) Events() <-chan msgs.Message {
	return c.eventCh
}

// Do sends a command and waits for the reply. A CommandErr reply is
// returned as the error.
func (c *Client) Do(ctx context.Context, cmd msgs.Message) (msgs.Message, error) {
	replyCh := make(chan msgs.Message, 1)
	c.lock.Lock()
	c.seq++
	if c.seq == 0 {
		c.seq++
	}
	seq := c.seq
	c.pending[seq] = replyCh
	c.lock.Unlock()
	defer func() {
		c.lock.Lock()
		delete(c.pending, seq)
		c.lock.Unlock()
	}()

	data, err := msgs.Encode(cmd, seq)
	if err != nil {
		return nil, err
	}
	if err = c.Transport.Publish(c.topics.Cmd, data, false); err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case reply := <-replyCh:
		if cmdErr, ok := reply.(*msgs.CommandErr); ok {
			return nil, cmdErr
		}
		return reply, nil
	}
}

func (c *Client) doWithExpiration(cmd msgs.Message) error {
	expiration := c.Expiration
	if expiration <= 0 {
		expiration = DefaultCommandExpiration
	}
	ctx, cancel := context.WithTimeout(context.Background(), expiration)
	defer cancel()
	_, err := c.Do(ctx, cmd)
	return err
}

// SetRGB implements board.Commander.
func (c *Client) SetRGB(pixels ...bp.Pixel) error {
	return c.doWithExpiration(msgs.NewRGBSet(pixels...))
}

// SetLED implements board.Commander.
func (c *Client) SetLED(blink bp.LEDBlink) error {
	return c.doWithExpiration(msgs.NewLEDSet(blink))
}

// SetBuzzer implements board.Commander.
func (c *Client) SetBuzzer(buzzer bp.Buzzer) error {
	return c.doWithExpiration(msgs.NewBuzzerSet(buzzer))
}

// Stats queries link counters of the remote board.
func (c *Client) Stats(ctx context.Context) (*msgs.Stats, error) {
	reply, err := c.Do(ctx, &msgs.StatsQuery{})
	if err != nil {
		return nil, err
	}
	stats, ok := reply.(*msgs.Stats)
	if !ok {
		return nil, &msgs.ErrUnknownType{TypeID: reply.TypeID()}
	}
	return stats, nil
}

func (c *Client) handleMsg(_ string, payload []byte) {
	typed, err := msgs.DecodeTyped(payload)
	if err != nil {
		glog.Warningf("invalid message: %v", err)
		return
	}
	msg, err := typed.Decode()
	if err != nil {
		glog.Warningf("decode message: %v", err)
		return
	}
	if typed.IsEvent() {
		select {
		case c.eventCh <- msg:
		default:
			glog.V(2).Infof("event dropped: %v", msg)
		}
		return
	}
	if !typed.IsReply() {
		return
	}
	c.lock.Lock()
	replyCh := c.pending[typed.Sequence]
	delete(c.pending, typed.Sequence)
	c.lock.Unlock()
	if replyCh != nil {
		replyCh <- msg
	}
}
