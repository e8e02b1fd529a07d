package proto

// Parser reassembles frames from bytes received one at a time.
// The zero value is ready to use. It's not safe for concurrent use.
type Parser struct {
	state     ParseState
	function  byte
	crc       byte
	frame     *Frame
	remaining int
}

// ParseState is the position of the Parser inside a frame.
type ParseState int

// Parser states, in the order bytes appear on the wire.
const (
	AwaitStart1   ParseState = iota // scanning for 0xAA
	AwaitStart2                     // 0xAA seen, waiting for 0x55
	AwaitFunction                   // waiting for function code
	AwaitLength                     // waiting for payload length
	AwaitData                       // receiving payload bytes
	AwaitChecksum                   // waiting for CRC8
)

var parseStateNames = [...]string{
	AwaitStart1:   "AwaitStart1",
	AwaitStart2:   "AwaitStart2",
	AwaitFunction: "AwaitFunction",
	AwaitLength:   "AwaitLength",
	AwaitData:     "AwaitData",
	AwaitChecksum: "AwaitChecksum",
}

// String implements fmt.Stringer.
func (s ParseState) String() string {
	if s >= 0 && int(s) < len(parseStateNames) {
		return parseStateNames[s]
	}
	return "Unknown"
}

// ParseResult is the outcome of feeding one byte.
// Both fields are nil while a frame is still incomplete.
type ParseResult struct {
	Frame *Frame
	Err   error
}

// State gets the current state.
func (p *Parser) State() ParseState {
	return p.state
}

// Remaining returns the number of payload bytes still expected in AwaitData.
func (p *Parser) Remaining() int {
	if p.state != AwaitData {
		return 0
	}
	return p.remaining
}

// Reset abandons any partially received frame.
func (p *Parser) Reset() {
	p.state, p.frame, p.remaining = AwaitStart1, nil, 0
}

// Parse consumes one byte.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	switch p.state {
	case AwaitStart1:
		if b == StartByte1 {
			p.state = AwaitStart2
		}
	case AwaitStart2:
		switch b {
		case StartByte2:
			p.state = AwaitFunction
		case StartByte1:
			// a repeated 0xAA may itself be the real start.
		default:
			p.state = AwaitStart1
		}
	case AwaitFunction:
		p.function, p.crc = b, updateChecksum(0, b)
		p.state = AwaitLength
	case AwaitLength:
		if int(b) > MaxPayloadSize {
			p.Reset()
			pr.Err = ErrInvalidLength
			return
		}
		p.crc = updateChecksum(p.crc, b)
		p.frame = &Frame{Function: FunctionFromByte(p.function)}
		if b == 0 {
			p.state = AwaitChecksum
			return
		}
		p.frame.Payload, p.remaining = make([]byte, 0, b), int(b)
		p.state = AwaitData
	case AwaitData:
		p.frame.Payload = append(p.frame.Payload, b)
		p.crc = updateChecksum(p.crc, b)
		if p.remaining--; p.remaining == 0 {
			p.state = AwaitChecksum
		}
	case AwaitChecksum:
		if b != p.crc {
			pr.Err = &ChecksumError{Function: p.frame.Function, Expected: p.crc, Received: b}
		} else {
			pr.Frame = p.frame
		}
		p.Reset()
	}
	return
}

// ParseBytes feeds all bytes and collects results which carry a frame or error.
func (p *Parser) ParseBytes(data []byte) (results []ParseResult) {
	for _, b := range data {
		if pr := p.Parse(b); pr.Frame != nil || pr.Err != nil {
			results = append(results, pr)
		}
	}
	return
}
