package mqtt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/rrc.go/pkg/board"
	bp "github.com/robotalks/rrc.go/pkg/board/proto"
	"github.com/robotalks/rrc.go/pkg/remote/msgs"
)

type serialBuffer struct {
	lock sync.Mutex
	buf  bytes.Buffer
}

func (s *serialBuffer) Read(p []byte) (int, error) {
	return 0, io.EOF
}

func (s *serialBuffer) Write(p []byte) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.buf.Write(p)
}

func (s *serialBuffer) frames(t *testing.T) []*bp.Frame {
	s.lock.Lock()
	defer s.lock.Unlock()
	var parser bp.Parser
	var frames []*bp.Frame
	for _, pr := range parser.ParseBytes(s.buf.Bytes()) {
		require.NoError(t, pr.Err)
		frames = append(frames, pr.Frame)
	}
	return frames
}

type bridgeTestCtx struct {
	t      *testing.T
	mem    *memTransport
	serial *serialBuffer
	board  *board.Board
	bridge *Bridge
	client *Client
	cancel func()
	doneCh chan error
}

func startBridge(t *testing.T) *bridgeTestCtx {
	c := &bridgeTestCtx{
		t:      t,
		mem:    newMemTransport(),
		serial: &serialBuffer{},
		doneCh: make(chan error, 1),
	}
	c.board = board.New(c.serial)
	c.bridge = NewBoardBridge(c.mem, c.board, Meta{ID: "rrc1", Device: "/dev/ttyAMA0", Baud: 1000000})
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go func() {
		c.doneCh <- c.bridge.Run(ctx)
	}()
	deadline := time.Now().Add(time.Second)
	for {
		if _, ok := c.mem.retainedPayload("rrc1/meta"); ok {
			break
		}
		require.True(t, time.Now().Before(deadline), "bridge not started")
		time.Sleep(time.Millisecond)
	}
	require.True(t, c.mem.subscribed("rrc1/cmd"))
	c.client = NewClient(c.mem, "rrc1")
	require.NoError(t, c.client.Start())
	return c
}

func (c *bridgeTestCtx) stop() {
	c.cancel()
	require.Equal(c.t, context.Canceled, <-c.doneCh)
	_, ok := c.mem.retainedPayload("rrc1/meta")
	require.False(c.t, ok)
	require.False(c.t, c.mem.subscribed("rrc1/cmd"))
	require.NoError(c.t, c.client.Close())
}

func TestBridgeCommands(t *testing.T) {
	c := startBridge(t)
	defer c.stop()

	require.NoError(t, c.client.SetRGB(bp.Pixel{ID: 1, R: 0xff}, bp.Pixel{ID: 2, B: 0xff}))
	require.NoError(t, c.client.SetLED(bp.LEDBlink{ID: 1, On: 100 * time.Millisecond, Off: 900 * time.Millisecond, Repeat: 3}))
	require.NoError(t, c.client.SetBuzzer(bp.BuzzerOff))

	frames := c.serial.frames(t)
	require.Len(t, frames, 3)
	require.Equal(t, []byte{0x01, 0x02, 0x00, 0xff, 0x00, 0x00, 0x01, 0x00, 0x00, 0xff}, frames[0].Payload)
	require.Equal(t, bp.FuncLED, frames[1].Function)
	require.Equal(t, []byte{0x01, 0x64, 0x00, 0x84, 0x03, 0x03, 0x00}, frames[1].Payload)
	require.Equal(t, bp.FuncBuzzer, frames[2].Function)

	stats, err := c.client.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(3), stats.FramesSent)
}

func TestBridgeCommandError(t *testing.T) {
	c := startBridge(t)
	defer c.stop()

	err := c.client.SetRGB(bp.Pixel{ID: 0})
	var cmdErr *msgs.CommandErr
	require.True(t, errors.As(err, &cmdErr))
	require.True(t, strings.Contains(err.Error(), "invalid argument"), err.Error())

	err = c.client.SetLED(bp.LEDBlink{ID: 1, On: 2 * time.Minute})
	require.True(t, errors.As(err, &cmdErr))
	require.Empty(t, c.serial.frames(t))
}

func TestBridgeKeyEvents(t *testing.T) {
	c := startBridge(t)
	defer c.stop()

	c.board.HandleFrame(context.Background(), &bp.Frame{Function: bp.FuncKey, Payload: []byte{2, byte(bp.KeyClick)}})
	select {
	case msg := <-c.client.Events():
		require.Equal(t, bp.KeyReport{ID: 2, Event: bp.KeyClick}, msg.(*msgs.KeyEvent).Report())
	case <-time.After(time.Second):
		t.Fatal("expect key event timeout")
	}
}

func TestBridgeMeta(t *testing.T) {
	c := startBridge(t)
	defer c.stop()

	payload, ok := c.mem.retainedPayload("rrc1/meta")
	require.True(t, ok)
	var meta Meta
	require.NoError(t, json.Unmarshal(payload, &meta))
	require.Equal(t, Meta{ID: "rrc1", Device: "/dev/ttyAMA0", Baud: 1000000}, meta)

	found, err := Discover(context.Background(), c.mem, 10*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, []Meta{meta}, found)
}

func TestBridgeExecuteWithoutStats(t *testing.T) {
	b := NewBridge(newMemTransport(), board.New(&serialBuffer{}), Meta{ID: "x"})
	reply := b.Execute(&msgs.Typed{TypeId: msgs.StatsQueryTypeID})
	require.Equal(t, msgs.NewCommandErr(msgs.ErrUnsupportedCommand), reply)

	reply = b.Execute(&msgs.Typed{TypeId: msgs.GroupBoard | 0x0fff})
	_, ok := reply.(*msgs.CommandErr)
	require.True(t, ok)
}

func TestClientExpiration(t *testing.T) {
	client := NewClient(newMemTransport(), "nobody")
	client.Expiration = 10 * time.Millisecond
	require.NoError(t, client.Start())
	require.Equal(t, context.DeadlineExceeded, client.SetRGB(bp.Pixel{ID: 1}))
	require.NoError(t, client.Close())
}

func TestBridgeIgnoresNonCommands(t *testing.T) {
	c := startBridge(t)
	defer c.stop()

	data, err := msgs.Encode(&msgs.CommandOK{}, 9)
	require.NoError(t, err)
	require.NoError(t, c.mem.Publish("rrc1/cmd", data, false))
	require.NoError(t, c.mem.Publish("rrc1/cmd", []byte{0xff}, false))
	require.NoError(t, c.client.SetBuzzer(bp.BuzzerOff))
	require.Len(t, c.serial.frames(t), 1)
}
