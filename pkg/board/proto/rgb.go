package proto

const (
	rgbSubCommand byte = 0x01
	// MaxPixels is the most pixels one RGB frame can carry.
	MaxPixels = (MaxPayloadSize - 2) / 4
)

// Pixel is the color of one RGB LED. ID is one-based as printed on the board.
type Pixel struct {
	ID      uint8
	R, G, B uint8
}

// Off returns the pixel with the same ID switched off.
func (p Pixel) Off() Pixel {
	return Pixel{ID: p.ID}
}

// EncodeRGB encodes pixels into an FuncRGB payload.
func EncodeRGB(pixels []Pixel) ([]byte, error) {
	if len(pixels) > MaxPixels {
		return nil, invalidArgument("%d pixels exceeds %d", len(pixels), MaxPixels)
	}
	payload := make([]byte, 2, 2+len(pixels)*4)
	payload[0], payload[1] = rgbSubCommand, byte(len(pixels))
	for _, px := range pixels {
		if px.ID == 0 {
			return nil, invalidArgument("pixel id must start from 1")
		}
		payload = append(payload, px.ID-1, px.R, px.G, px.B)
	}
	return payload, nil
}

// DecodeRGB decodes an FuncRGB payload.
func DecodeRGB(payload []byte) ([]Pixel, error) {
	if len(payload) < 2 || payload[0] != rgbSubCommand {
		return nil, malformedPayload(FuncRGB, "bad header")
	}
	count := int(payload[1])
	if len(payload) != 2+count*4 {
		return nil, malformedPayload(FuncRGB, "%d pixels in %d bytes", count, len(payload))
	}
	pixels := make([]Pixel, count)
	for n := range pixels {
		b := payload[2+n*4:]
		if b[0] == 0xff {
			return nil, malformedPayload(FuncRGB, "pixel index %d out of range", b[0])
		}
		pixels[n] = Pixel{ID: b[0] + 1, R: b[1], G: b[2], B: b[3]}
	}
	return pixels, nil
}

// NewRGBFrame creates the frame setting pixel colors.
func NewRGBFrame(pixels ...Pixel) (*Frame, error) {
	payload, err := EncodeRGB(pixels)
	if err != nil {
		return nil, err
	}
	return &Frame{Function: FuncRGB, Payload: payload}, nil
}
