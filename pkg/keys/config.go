package keys

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// Config provides options to open the keys.
type Config struct {
	Chip  string
	Lines []uint32
}

var defaultConfig = Config{
	Chip:  DefaultChip,
	Lines: []uint32{DefaultKey1Line, DefaultKey2Line},
}

func init() {
	if val := os.Getenv("RRC_KEYS_CHIP"); val != "" {
		defaultConfig.Chip = val
	}
	if val := os.Getenv("RRC_KEYS_LINES"); val != "" {
		if lines, err := ParseLines(val); err == nil {
			defaultConfig.Lines = lines
		}
	}
}

type linesValue struct {
	lines *[]uint32
}

func (v linesValue) String() string {
	if v.lines == nil {
		return ""
	}
	strs := make([]string, len(*v.lines))
	for n, line := range *v.lines {
		strs[n] = strconv.FormatUint(uint64(line), 10)
	}
	return strings.Join(strs, ",")
}

func (v linesValue) Set(s string) error {
	lines, err := ParseLines(s)
	if err != nil {
		return err
	}
	*v.lines = lines
	return nil
}

// ParseLines parses comma separated line offsets.
func ParseLines(s string) ([]uint32, error) {
	var lines []uint32
	for _, str := range strings.Split(s, ",") {
		if str = strings.TrimSpace(str); str == "" {
			continue
		}
		val, err := strconv.ParseUint(str, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid line %q: %w", str, err)
		}
		lines = append(lines, uint32(val))
	}
	return lines, nil
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Chip, "keys-chip", defaultConfig.Chip, "GPIO chip of the keys.")
	flag.Var(linesValue{&defaultConfig.Lines}, "keys-lines", "Comma separated GPIO lines of the keys.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	conf.Lines = append([]uint32(nil), defaultConfig.Lines...)
	return &conf
}

// Open opens the configured keys.
func (c *Config) Open() (*GPIO, error) {
	return OpenGPIO(c.Chip, c.Lines...)
}

// MustOpen opens the keys and fails on error.
func (c *Config) MustOpen() *GPIO {
	g, err := c.Open()
	if err != nil {
		log.Fatalln(err)
	}
	return g
}
