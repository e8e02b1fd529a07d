package board

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	bp "github.com/robotalks/rrc.go/pkg/board/proto"
)

func parseUint(name, str string, bits int) (uint64, error) {
	val, err := strconv.ParseUint(str, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %v", name, str, err)
	}
	return val, nil
}

func parseMillis(name, str string) (time.Duration, error) {
	val, err := parseUint(name, str, 16)
	if err != nil {
		return 0, err
	}
	return time.Duration(val) * time.Millisecond, nil
}

// ParsePixels parses "ID R G B" groups or "ID #rrggbb" pairs.
func ParsePixels(args []string) ([]bp.Pixel, error) {
	var pixels []bp.Pixel
	for len(args) > 0 {
		id, err := parseUint("ID", args[0], 8)
		if err != nil {
			return nil, err
		}
		if len(args) >= 2 && len(args[1]) > 0 && args[1][0] == '#' {
			color, err := colorful.Hex(args[1])
			if err != nil {
				return nil, fmt.Errorf("invalid color %q: %v", args[1], err)
			}
			r, g, b := color.RGB255()
			pixels = append(pixels, bp.Pixel{ID: uint8(id), R: r, G: g, B: b})
			args = args[2:]
			continue
		}
		if len(args) < 4 {
			return nil, fmt.Errorf("expect ID R G B")
		}
		var rgb [3]uint8
		for n, name := range []string{"R", "G", "B"} {
			val, err := parseUint(name, args[n+1], 8)
			if err != nil {
				return nil, err
			}
			rgb[n] = uint8(val)
		}
		pixels = append(pixels, bp.Pixel{ID: uint8(id), R: rgb[0], G: rgb[1], B: rgb[2]})
		args = args[4:]
	}
	if len(pixels) == 0 {
		return nil, fmt.Errorf("expect ID R G B")
	}
	return pixels, nil
}

// ParseLED parses "ID ON_MS OFF_MS REPEAT".
func ParseLED(args []string) (blink bp.LEDBlink, err error) {
	if len(args) != 4 {
		return blink, fmt.Errorf("expect ID ON_MS OFF_MS REPEAT")
	}
	id, err := parseUint("ID", args[0], 8)
	if err != nil {
		return
	}
	blink.ID = uint8(id)
	if blink.On, err = parseMillis("ON_MS", args[1]); err != nil {
		return
	}
	if blink.Off, err = parseMillis("OFF_MS", args[2]); err != nil {
		return
	}
	repeat, err := parseUint("REPEAT", args[3], 16)
	blink.Repeat = uint16(repeat)
	return
}

// ParseBuzzer parses "FREQ ON_MS OFF_MS REPEAT".
func ParseBuzzer(args []string) (buzzer bp.Buzzer, err error) {
	if len(args) != 4 {
		return buzzer, fmt.Errorf("expect FREQ ON_MS OFF_MS REPEAT")
	}
	freq, err := parseUint("FREQ", args[0], 16)
	if err != nil {
		return
	}
	buzzer.Freq = uint16(freq)
	if buzzer.On, err = parseMillis("ON_MS", args[1]); err != nil {
		return
	}
	if buzzer.Off, err = parseMillis("OFF_MS", args[2]); err != nil {
		return
	}
	repeat, err := parseUint("REPEAT", args[3], 16)
	buzzer.Repeat = uint16(repeat)
	return
}

// ParseBaud parses a positive baud rate.
func ParseBaud(str string) (int, error) {
	val, err := parseUint("RATE", str, 32)
	if err != nil {
		return 0, err
	}
	if val == 0 {
		return 0, fmt.Errorf("invalid RATE %q", str)
	}
	return int(val), nil
}
