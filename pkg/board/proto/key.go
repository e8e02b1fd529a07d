package proto

import "strings"

// KeyEvent is the set of events the board reports for a key.
type KeyEvent byte

// Key events.
const (
	KeyPressed               KeyEvent = 0x01
	KeyLongPress             KeyEvent = 0x02
	KeyLongPressRepeat       KeyEvent = 0x04
	KeyReleaseFromLongPress  KeyEvent = 0x08
	KeyReleaseFromShortPress KeyEvent = 0x10
	KeyClick                 KeyEvent = 0x20
	KeyDoubleClick           KeyEvent = 0x40
	KeyTripleClick           KeyEvent = 0x80
)

var keyEventNames = []struct {
	ev   KeyEvent
	name string
}{
	{KeyPressed, "pressed"},
	{KeyLongPress, "long-press"},
	{KeyLongPressRepeat, "long-press-repeat"},
	{KeyReleaseFromLongPress, "release-from-long-press"},
	{KeyReleaseFromShortPress, "release-from-short-press"},
	{KeyClick, "click"},
	{KeyDoubleClick, "double-click"},
	{KeyTripleClick, "triple-click"},
}

// Has checks if ev contains all bits of e.
func (e KeyEvent) Has(ev KeyEvent) bool {
	return e&ev == ev
}

// String implements fmt.Stringer.
func (e KeyEvent) String() string {
	var names []string
	for _, n := range keyEventNames {
		if e.Has(n.ev) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// KeyReport is reported by the board when a key changes.
type KeyReport struct {
	ID    uint8
	Event KeyEvent
}

// DecodeKeyReport decodes the payload of a FuncKey frame.
func DecodeKeyReport(payload []byte) (KeyReport, error) {
	if len(payload) != 2 {
		return KeyReport{}, malformedPayload(FuncKey, "expect 2 bytes, got %d", len(payload))
	}
	return KeyReport{ID: payload[0], Event: KeyEvent(payload[1])}, nil
}

// Payload encodes the report as the board sends it.
func (r KeyReport) Payload() []byte {
	return []byte{r.ID, byte(r.Event)}
}
