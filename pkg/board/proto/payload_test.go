package proto

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRGB(t *testing.T) {
	pixels := []Pixel{{ID: 1, R: 255}, {ID: 2, B: 255}}
	payload, err := EncodeRGB(pixels)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x00, 0xff, 0x00, 0x00, 0x01, 0x00, 0x00, 0xff}, payload)

	decoded, err := DecodeRGB(payload)
	require.NoError(t, err)
	require.Equal(t, pixels, decoded)

	f, err := NewRGBFrame(pixels...)
	require.NoError(t, err)
	b, err := f.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0xaa, 0x55, 0x0b, 0x0a, 0x01, 0x02, 0x00, 0xff, 0x00, 0x00, 0x01, 0x00, 0x00, 0xff, 0xbd}, b)
}

func TestRGBLimits(t *testing.T) {
	pixels := make([]Pixel, MaxPixels+1)
	for n := range pixels {
		pixels[n] = Pixel{ID: uint8(n + 1), G: 1}
	}
	payload, err := EncodeRGB(pixels[:MaxPixels])
	require.NoError(t, err)
	require.Len(t, payload, 2+4*MaxPixels)
	_, err = Encode(FuncRGB, payload)
	require.NoError(t, err)

	_, err = EncodeRGB(pixels)
	require.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = NewRGBFrame(pixels...)
	require.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = EncodeRGB([]Pixel{{ID: 0}})
	require.True(t, errors.Is(err, ErrInvalidArgument))

	payload, err = EncodeRGB(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x00}, payload)
}

func TestDecodeRGBMalformed(t *testing.T) {
	for _, payload := range [][]byte{
		nil,
		{0x01},
		{0x02, 0x00},
		{0x01, 0x01, 0x00, 0x00},
		{0x01, 0x00, 0x00},
		{0x01, 0x01, 0xff, 0x01, 0x02, 0x03},
	} {
		_, err := DecodeRGB(payload)
		require.Truef(t, errors.Is(err, ErrMalformedPayload), "payload %x", payload)
	}
}

func TestPixelOff(t *testing.T) {
	require.Equal(t, Pixel{ID: 3}, Pixel{ID: 3, R: 1, G: 2, B: 3}.Off())
}

func TestLEDBlink(t *testing.T) {
	f, err := LEDBlink{ID: 1, On: 100 * time.Millisecond, Off: 900 * time.Millisecond, Repeat: 3}.Frame()
	require.NoError(t, err)
	require.Equal(t, FuncLED, f.Function)
	require.Equal(t, []byte{0x01, 0x64, 0x00, 0x84, 0x03, 0x03, 0x00}, f.Payload)

	_, err = LEDBlink{ID: 1, On: 2 * time.Minute}.Frame()
	require.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = LEDBlink{ID: 1, Off: -time.Second}.Frame()
	require.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestBuzzer(t *testing.T) {
	f, err := Buzzer{Freq: 1900, On: 100 * time.Millisecond, Off: 900 * time.Millisecond, Repeat: 1}.Frame()
	require.NoError(t, err)
	require.Equal(t, FuncBuzzer, f.Function)
	require.Equal(t, []byte{0x6c, 0x07, 0x64, 0x00, 0x84, 0x03, 0x01, 0x00}, f.Payload)

	f, err = BuzzerOff.Frame()
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0x01, 0x00}, f.Payload)

	_, err = Buzzer{Freq: 1000, On: 70 * time.Second}.Frame()
	require.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestKeyReport(t *testing.T) {
	r, err := DecodeKeyReport([]byte{0x01, 0x21})
	require.NoError(t, err)
	require.Equal(t, KeyReport{ID: 1, Event: KeyPressed | KeyClick}, r)
	require.True(t, r.Event.Has(KeyClick))
	require.False(t, r.Event.Has(KeyDoubleClick))
	require.Equal(t, "pressed|click", r.Event.String())
	require.Equal(t, []byte{0x01, 0x21}, r.Payload())
	require.Equal(t, "none", KeyEvent(0).String())

	_, err = DecodeKeyReport([]byte{0x01})
	require.True(t, errors.Is(err, ErrMalformedPayload))
}
