package board

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/robotalks/rrc.go/pkg/board/proto"
)

// FrameHandler is called when a frame is received.
type FrameHandler interface {
	HandleFrame(context.Context, *proto.Frame)
}

// HandleFrameFunc is func type of FrameHandler.
type HandleFrameFunc func(context.Context, *proto.Frame)

// HandleFrame implements FrameHandler.
func (f HandleFrameFunc) HandleFrame(ctx context.Context, frame *proto.Frame) {
	f(ctx, frame)
}

// ErrorHandler is called when the receiver detects a corrupted frame.
type ErrorHandler interface {
	HandleError(context.Context, error)
}

// HandleErrorFunc is func type of ErrorHandler.
type HandleErrorFunc func(context.Context, error)

// HandleError implements ErrorHandler.
func (f HandleErrorFunc) HandleError(ctx context.Context, err error) {
	f(ctx, err)
}

// Stats are counters collected by a Link.
type Stats struct {
	FramesSent     uint64
	FramesReceived uint64
	ChecksumErrors uint64
	LengthErrors   uint64
	BytesDropped   uint64
}

// Link sends and receives frames over a borrowed ReadWriter.
type Link struct {
	ReadWriter  io.ReadWriter
	Handler     FrameHandler
	Errors      ErrorHandler
	ReadTimeout bool // set to true if ReadWriter already supports timeout with Read

	sendLock sync.Mutex
	parser   proto.Parser
	stats    Stats
}

// NewLink creates a Link.
func NewLink(rw io.ReadWriter) *Link {
	return &Link{ReadWriter: rw}
}

// Stats returns a snapshot of the counters.
func (l *Link) Stats() Stats {
	return Stats{
		FramesSent:     atomic.LoadUint64(&l.stats.FramesSent),
		FramesReceived: atomic.LoadUint64(&l.stats.FramesReceived),
		ChecksumErrors: atomic.LoadUint64(&l.stats.ChecksumErrors),
		LengthErrors:   atomic.LoadUint64(&l.stats.LengthErrors),
		BytesDropped:   atomic.LoadUint64(&l.stats.BytesDropped),
	}
}

// Send encodes and writes a frame. Concurrent callers never interleave.
func (l *Link) Send(frame *proto.Frame) error {
	data, err := frame.Bytes()
	if err != nil {
		return err
	}
	l.sendLock.Lock()
	defer l.sendLock.Unlock()
	if _, err = l.ReadWriter.Write(data); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	atomic.AddUint64(&l.stats.FramesSent, 1)
	if glog.V(3) {
		glog.Infof("SEND %s % x", frame.Function, data)
	}
	return nil
}

// Run receives frames until ctx is done or the transport fails.
func (l *Link) Run(ctx context.Context) error {
	l.parser.Reset()

	if l.ReadTimeout {
		buf := make([]byte, 1)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			n, err := l.ReadWriter.Read(buf)
			if err != nil {
				if os.IsTimeout(err) {
					continue
				}
				return readError(err)
			}
			if n == 0 {
				continue
			}
			l.feed(ctx, buf[0])
		}
	}

	byteCh, errCh := make(chan byte), make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go l.readLoop(subCtx, byteCh, errCh)
	for {
		select {
		case b := <-byteCh:
			l.feed(ctx, b)
		case err := <-errCh:
			return readError(err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *Link) readLoop(ctx context.Context, byteCh chan byte, errCh chan error) {
	buf := make([]byte, 1)
	for {
		n, err := l.ReadWriter.Read(buf)
		if err != nil {
			errCh <- err
			return
		}
		if n == 0 {
			continue
		}
		select {
		case byteCh <- buf[0]:
		case <-ctx.Done():
			return
		}
	}
}

func (l *Link) feed(ctx context.Context, b byte) {
	before := l.parser.State()
	pr := l.parser.Parse(b)
	switch {
	case pr.Frame != nil:
		atomic.AddUint64(&l.stats.FramesReceived, 1)
		if glog.V(3) {
			glog.Infof("RECV %s % x", pr.Frame.Function, pr.Frame.Payload)
		}
		if h := l.Handler; h != nil {
			h.HandleFrame(ctx, pr.Frame)
		}
	case pr.Err != nil:
		if errors.Is(pr.Err, proto.ErrChecksumMismatch) {
			atomic.AddUint64(&l.stats.ChecksumErrors, 1)
		} else {
			atomic.AddUint64(&l.stats.LengthErrors, 1)
		}
		glog.Warningf("receive: %v", pr.Err)
		if h := l.Errors; h != nil {
			h.HandleError(ctx, pr.Err)
		}
	case l.parser.State() == proto.AwaitStart1:
		dropped := uint64(1)
		if before == proto.AwaitStart2 {
			dropped++
		}
		atomic.AddUint64(&l.stats.BytesDropped, dropped)
	case before == proto.AwaitStart2 && l.parser.State() == proto.AwaitStart2:
		// the previous 0xAA was not a start byte after all.
		atomic.AddUint64(&l.stats.BytesDropped, 1)
	}
}

func readError(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrTransportClosed
	}
	return &TransportError{Op: "read", Err: err}
}
