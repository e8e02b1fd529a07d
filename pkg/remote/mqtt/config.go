package mqtt

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	"github.com/robotalks/rrc.go/pkg/board"
)

// Config provides options to connect to the broker.
type Config struct {
	// BrokerURL specifies the broker and topic prefix.
	// e.g. mqtt://host:port/topic-prefix/
	BrokerURL string
	// ID identifies the board bridge. Bridges default to the machine ID.
	ID string
}

var defaultConfig = Config{
	BrokerURL: "mqtt://localhost:1883/rrc/",
}

func init() {
	if val := os.Getenv("RRC_BROKER_URL"); val != "" {
		defaultConfig.BrokerURL = val
	}
	if val := os.Getenv("RRC_ID"); val != "" {
		defaultConfig.ID = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.BrokerURL, "broker", defaultConfig.BrokerURL, "MQTT broker URL.")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Board bridge ID.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// MachineID retrieves the unique ID identifying the machine.
var MachineID = func() (string, error) {
	return machineid.ProtectedID("rrc")
}

// ControllerID returns the configured ID or the machine ID.
func (c *Config) ControllerID() (string, error) {
	if c.ID != "" {
		return c.ID, nil
	}
	id, err := MachineID()
	if err != nil {
		return "", fmt.Errorf("machine id: %w", err)
	}
	return id, nil
}

// NewBridge connects to the broker and creates a Bridge for b.
// The retained meta is cleared by the broker if the bridge disappears.
func (c *Config) NewBridge(b *board.Board, meta Meta) (*Bridge, *Queue, error) {
	id, err := c.ControllerID()
	if err != nil {
		return nil, nil, err
	}
	meta.ID = id
	opts, topicPrefix, err := ClientOptionsFromURL(c.BrokerURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid broker URL: %w", err)
	}
	topics := TopicsFor(id)
	opts.SetBinaryWill(topicPrefix+topics.Meta, nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("rrc:" + id)
	}
	q := NewQueue(opts, topicPrefix)
	bridge := NewBoardBridge(q, b, meta)
	q.OnConnect = func(*Queue) {
		if err := bridge.PublishMeta(); err != nil {
			glog.Warningf("publish meta: %v", err)
		}
	}
	if err = q.Connect(); err != nil {
		return nil, nil, err
	}
	return bridge, q, nil
}

// Connect connects to the broker and creates a started Client.
func (c *Config) Connect() (*Client, *Queue, error) {
	if c.ID == "" {
		return nil, nil, ErrNoController
	}
	q, err := c.NewQueue()
	if err != nil {
		return nil, nil, err
	}
	client := NewClient(q, c.ID)
	if err = client.Start(); err != nil {
		q.Close()
		return nil, nil, err
	}
	return client, q, nil
}

// NewQueue connects a Queue to the broker.
func (c *Config) NewQueue() (*Queue, error) {
	q, err := NewQueueFromURL(c.BrokerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid broker URL: %w", err)
	}
	if err = q.Connect(); err != nil {
		return nil, err
	}
	return q, nil
}

// MustConnect connects Client and fails on error.
func (c *Config) MustConnect() (*Client, *Queue) {
	client, q, err := c.Connect()
	if err != nil {
		log.Fatalln(err)
	}
	return client, q
}
