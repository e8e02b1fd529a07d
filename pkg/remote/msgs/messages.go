package msgs

import (
	"time"

	"github.com/golang/protobuf/proto"

	bp "github.com/robotalks/rrc.go/pkg/board/proto"
)

// CommandOK is the generic reply indicating success for commands.
type CommandOK struct {
}

// NewMessage implements Message.
func (m *CommandOK) NewMessage() Message { return &CommandOK{} }

// TypeID implements Message.
func (m *CommandOK) TypeID() uint32 { return CommandOKTypeID }

// ProtoMessage implements proto.Message.
func (m *CommandOK) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CommandOK) Reset() { *m = CommandOK{} }

// String implements proto.Message.
func (m *CommandOK) String() string { return proto.CompactTextString(m) }

// CommandErr is the generic message representing command error.
type CommandErr struct {
	Message string `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
}

// NewCommandErr creates a CommandErr from an error.
func NewCommandErr(err error) *CommandErr {
	return &CommandErr{Message: err.Error()}
}

// NewMessage implements Message.
func (m *CommandErr) NewMessage() Message { return &CommandErr{} }

// TypeID implements Message.
func (m *CommandErr) TypeID() uint32 { return CommandErrTypeID }

// ProtoMessage implements proto.Message.
func (m *CommandErr) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CommandErr) Reset() { *m = CommandErr{} }

// String implements proto.Message.
func (m *CommandErr) String() string { return proto.CompactTextString(m) }

// Error implements error.
func (m *CommandErr) Error() string { return m.Message }

// Pixel is the color of a single RGB LED.
type Pixel struct {
	Id uint32 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	R  uint32 `protobuf:"varint,2,opt,name=r,proto3" json:"r,omitempty"`
	G  uint32 `protobuf:"varint,3,opt,name=g,proto3" json:"g,omitempty"`
	B  uint32 `protobuf:"varint,4,opt,name=b,proto3" json:"b,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Pixel) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Pixel) Reset() { *m = Pixel{} }

// String implements proto.Message.
func (m *Pixel) String() string { return proto.CompactTextString(m) }

// RGBSet sets colors of RGB LEDs.
type RGBSet struct {
	Pixels []*Pixel `protobuf:"bytes,1,rep,name=pixels,proto3" json:"pixels,omitempty"`
}

// NewRGBSet creates RGBSet from pixels.
func NewRGBSet(pixels ...bp.Pixel) *RGBSet {
	m := &RGBSet{Pixels: make([]*Pixel, len(pixels))}
	for n, p := range pixels {
		m.Pixels[n] = &Pixel{Id: uint32(p.ID), R: uint32(p.R), G: uint32(p.G), B: uint32(p.B)}
	}
	return m
}

// BoardPixels converts to board pixels. Values are truncated to 8 bits.
func (m *RGBSet) BoardPixels() []bp.Pixel {
	pixels := make([]bp.Pixel, 0, len(m.Pixels))
	for _, p := range m.Pixels {
		if p == nil {
			continue
		}
		pixels = append(pixels, bp.Pixel{ID: uint8(p.Id), R: uint8(p.R), G: uint8(p.G), B: uint8(p.B)})
	}
	return pixels
}

// NewMessage implements Message.
func (m *RGBSet) NewMessage() Message { return &RGBSet{} }

// TypeID implements Message.
func (m *RGBSet) TypeID() uint32 { return RGBSetTypeID }

// ProtoMessage implements proto.Message.
func (m *RGBSet) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RGBSet) Reset() { *m = RGBSet{} }

// String implements proto.Message.
func (m *RGBSet) String() string { return proto.CompactTextString(m) }

// LEDSet makes an LED blink.
type LEDSet struct {
	Id     uint32 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	OnMs   uint32 `protobuf:"varint,2,opt,name=on_ms,json=onMs,proto3" json:"on_ms,omitempty"`
	OffMs  uint32 `protobuf:"varint,3,opt,name=off_ms,json=offMs,proto3" json:"off_ms,omitempty"`
	Repeat uint32 `protobuf:"varint,4,opt,name=repeat,proto3" json:"repeat,omitempty"`
}

// NewLEDSet creates LEDSet from a board command.
func NewLEDSet(blink bp.LEDBlink) *LEDSet {
	return &LEDSet{
		Id:     uint32(blink.ID),
		OnMs:   millis(blink.On),
		OffMs:  millis(blink.Off),
		Repeat: uint32(blink.Repeat),
	}
}

// Blink converts to the board command.
func (m *LEDSet) Blink() bp.LEDBlink {
	return bp.LEDBlink{
		ID:     uint8(m.Id),
		On:     time.Duration(m.OnMs) * time.Millisecond,
		Off:    time.Duration(m.OffMs) * time.Millisecond,
		Repeat: uint16(m.Repeat),
	}
}

// NewMessage implements Message.
func (m *LEDSet) NewMessage() Message { return &LEDSet{} }

// TypeID implements Message.
func (m *LEDSet) TypeID() uint32 { return LEDSetTypeID }

// ProtoMessage implements proto.Message.
func (m *LEDSet) ProtoMessage() {}

// Reset implements proto.Message.
func (m *LEDSet) Reset() { *m = LEDSet{} }

// String implements proto.Message.
func (m *LEDSet) String() string { return proto.CompactTextString(m) }

// BuzzerSet drives the buzzer.
type BuzzerSet struct {
	Freq   uint32 `protobuf:"varint,1,opt,name=freq,proto3" json:"freq,omitempty"`
	OnMs   uint32 `protobuf:"varint,2,opt,name=on_ms,json=onMs,proto3" json:"on_ms,omitempty"`
	OffMs  uint32 `protobuf:"varint,3,opt,name=off_ms,json=offMs,proto3" json:"off_ms,omitempty"`
	Repeat uint32 `protobuf:"varint,4,opt,name=repeat,proto3" json:"repeat,omitempty"`
}

// NewBuzzerSet creates BuzzerSet from a board command.
func NewBuzzerSet(buzzer bp.Buzzer) *BuzzerSet {
	return &BuzzerSet{
		Freq:   uint32(buzzer.Freq),
		OnMs:   millis(buzzer.On),
		OffMs:  millis(buzzer.Off),
		Repeat: uint32(buzzer.Repeat),
	}
}

// Buzzer converts to the board command.
func (m *BuzzerSet) Buzzer() bp.Buzzer {
	return bp.Buzzer{
		Freq:   uint16(m.Freq),
		On:     time.Duration(m.OnMs) * time.Millisecond,
		Off:    time.Duration(m.OffMs) * time.Millisecond,
		Repeat: uint16(m.Repeat),
	}
}

// NewMessage implements Message.
func (m *BuzzerSet) NewMessage() Message { return &BuzzerSet{} }

// TypeID implements Message.
func (m *BuzzerSet) TypeID() uint32 { return BuzzerSetTypeID }

// ProtoMessage implements proto.Message.
func (m *BuzzerSet) ProtoMessage() {}

// Reset implements proto.Message.
func (m *BuzzerSet) Reset() { *m = BuzzerSet{} }

// String implements proto.Message.
func (m *BuzzerSet) String() string { return proto.CompactTextString(m) }

// StatsQuery queries link counters.
type StatsQuery struct {
}

// NewMessage implements Message.
func (m *StatsQuery) NewMessage() Message { return &StatsQuery{} }

// TypeID implements Message.
func (m *StatsQuery) TypeID() uint32 { return StatsQueryTypeID }

// ProtoMessage implements proto.Message.
func (m *StatsQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *StatsQuery) Reset() { *m = StatsQuery{} }

// String implements proto.Message.
func (m *StatsQuery) String() string { return proto.CompactTextString(m) }

// Stats is the reply of StatsQuery.
type Stats struct {
	FramesSent     uint64 `protobuf:"varint,1,opt,name=frames_sent,json=framesSent,proto3" json:"frames_sent,omitempty"`
	FramesReceived uint64 `protobuf:"varint,2,opt,name=frames_received,json=framesReceived,proto3" json:"frames_received,omitempty"`
	ChecksumErrors uint64 `protobuf:"varint,3,opt,name=checksum_errors,json=checksumErrors,proto3" json:"checksum_errors,omitempty"`
	LengthErrors   uint64 `protobuf:"varint,4,opt,name=length_errors,json=lengthErrors,proto3" json:"length_errors,omitempty"`
	BytesDropped   uint64 `protobuf:"varint,5,opt,name=bytes_dropped,json=bytesDropped,proto3" json:"bytes_dropped,omitempty"`
}

// NewMessage implements Message.
func (m *Stats) NewMessage() Message { return &Stats{} }

// TypeID implements Message.
func (m *Stats) TypeID() uint32 { return StatsTypeID }

// ProtoMessage implements proto.Message.
func (m *Stats) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Stats) Reset() { *m = Stats{} }

// String implements proto.Message.
func (m *Stats) String() string { return proto.CompactTextString(m) }

// KeyEvent is an event reporting a key on the board.
type KeyEvent struct {
	Id    uint32 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Event uint32 `protobuf:"varint,2,opt,name=event,proto3" json:"event,omitempty"`
}

// NewKeyEvent creates KeyEvent from a board report.
func NewKeyEvent(report bp.KeyReport) *KeyEvent {
	return &KeyEvent{Id: uint32(report.ID), Event: uint32(report.Event)}
}

// Report converts to the board report.
func (m *KeyEvent) Report() bp.KeyReport {
	return bp.KeyReport{ID: uint8(m.Id), Event: bp.KeyEvent(m.Event)}
}

// NewMessage implements Message.
func (m *KeyEvent) NewMessage() Message { return &KeyEvent{} }

// TypeID implements Message.
func (m *KeyEvent) TypeID() uint32 { return KeyEventTypeID }

// ProtoMessage implements proto.Message.
func (m *KeyEvent) ProtoMessage() {}

// Reset implements proto.Message.
func (m *KeyEvent) Reset() { *m = KeyEvent{} }

// String implements proto.Message.
func (m *KeyEvent) String() string { return proto.CompactTextString(m) }

func millis(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	return uint32(d / time.Millisecond)
}

// TypeID Groups
const (
	GroupCommand uint32 = 0x00000000
	GroupBoard   uint32 = 0x00010000
)

// TypeIDs
const (
	CommandOKTypeID  uint32 = GroupCommand | TypeIDMaskReply | 0x0000
	CommandErrTypeID uint32 = GroupCommand | TypeIDMaskReply | 0x0001
	RGBSetTypeID     uint32 = GroupBoard | 0x0001
	LEDSetTypeID     uint32 = GroupBoard | 0x0002
	BuzzerSetTypeID  uint32 = GroupBoard | 0x0003
	StatsQueryTypeID uint32 = GroupBoard | 0x0004
	StatsTypeID      uint32 = StatsQueryTypeID | TypeIDMaskReply
	KeyEventTypeID   uint32 = GroupBoard | TypeIDKindEvent | 0x0001
)

// MessageTypes are predefined mapping of type ID to messages.
var MessageTypes = map[uint32]Message{
	CommandOKTypeID:  (*CommandOK)(nil),
	CommandErrTypeID: (*CommandErr)(nil),
	RGBSetTypeID:     (*RGBSet)(nil),
	LEDSetTypeID:     (*LEDSet)(nil),
	BuzzerSetTypeID:  (*BuzzerSet)(nil),
	StatsQueryTypeID: (*StatsQuery)(nil),
	StatsTypeID:      (*Stats)(nil),
	KeyEventTypeID:   (*KeyEvent)(nil),
}
