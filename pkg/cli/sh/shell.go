package sh

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/rrc.go/pkg/board"
	"github.com/robotalks/rrc.go/pkg/remote/mqtt"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	// Remote connects through the MQTT bridge instead of the serial device.
	Remote bool

	Shell        *ishell.Shell
	BoardConfig  *board.Config
	RemoteConfig *mqtt.Config
	Target       *Target
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
	remote     bool

	// commands
	commands = []*ishell.Cmd{
		&DiscoverCmd,
		&ConnectCmd,
		&OpenCmd,
		&DisconnectCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.BoolVar(&remote, "remote", remote, "Connect through MQTT bridge.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(boardConf *board.Config, remoteConf *mqtt.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		Remote:      remote,

		Shell:        ishell.New(),
		BoardConfig:  boardConf,
		RemoteConfig: remoteConf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a target.
func MustBeConnected(fn func(c *ishell.Context, t *Target)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		t := ShellFrom(c).Target
		if t == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c, t)
	}
}

// PrintResult prints the result of a command.
func PrintResult(c *ishell.Context, result interface{}, err error) error {
	if err != nil {
		c.Err(err)
		return err
	}
	s := ShellFrom(c)
	if result == nil {
		if s.OutputJSON {
			c.Println(`{"ok":true}`)
		} else {
			c.Println("OK")
		}
		return nil
	}
	if s.OutputJSON {
		out, err := json.Marshal(result)
		if err != nil {
			c.Err(err)
			return err
		}
		c.Println(string(out))
		return nil
	}
	c.Printf("%+v\n", result)
	return nil
}

// Discover lists the bridges announced on the broker.
func (s *Shell) Discover() ([]mqtt.Meta, error) {
	q, err := s.RemoteConfig.NewQueue()
	if err != nil {
		return nil, err
	}
	defer q.Close()
	return mqtt.Discover(context.TODO(), q, mqtt.DefaultDiscoverTimeout)
}

// SelectBridge discovers bridges and asks for a choice.
func (s *Shell) SelectBridge() (*mqtt.Meta, error) {
	found, err := s.Discover()
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	var index int
	if len(found) > 1 {
		if !s.Interactive {
			return nil, fmt.Errorf("more than 1 bridges discovered in non-interactive mode")
		}
		items := make([]string, len(found))
		for n, meta := range found {
			items[n] = FormatMeta(meta)
		}
		index = s.Shell.MultiChoice(items, "Which one to connect?")
	}
	return &found[index], nil
}

// FormatMeta prints Meta into friendly string for display.
func FormatMeta(meta mqtt.Meta) string {
	str := meta.ID
	if meta.Device != "" {
		str += fmt.Sprintf(": %s@%d", meta.Device, meta.Baud)
	}
	return str
}

// Use replaces the current target.
func (s *Shell) Use(t *Target) {
	s.Disconnect()
	s.Target = t
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", t.Name))
}

// Connect connects the bridge with id.
func (s *Shell) Connect(id string) error {
	conf := *s.RemoteConfig
	conf.ID = id
	t, err := ConnectRemote(&conf)
	if err != nil {
		return err
	}
	s.Use(t)
	return nil
}

// Open opens the serial device.
func (s *Shell) Open(device string) error {
	conf := *s.BoardConfig
	if device != "" {
		conf.Device = device
	}
	t, err := OpenSerial(&conf)
	if err != nil {
		return err
	}
	s.Use(t)
	return nil
}

// Disconnect closes current target.
func (s *Shell) Disconnect() {
	if s.Target != nil {
		s.Target.Close()
		s.Target = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	var err error
	if s.Remote {
		if s.RemoteConfig.ID != "" {
			err = s.Connect(s.RemoteConfig.ID)
		}
	} else {
		err = s.Open("")
	}
	if err != nil {
		log.Fatalln(err)
	}
	defer s.Disconnect()

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// DiscoverCmd discovers bridges.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"list", "l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			found, err := s.Discover()
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				if found == nil {
					found = []mqtt.Meta{}
				}
				PrintResult(c, found, nil)
				return
			}
			if len(found) == 0 {
				c.Println("No bridges found")
				return
			}
			for _, meta := range found {
				c.Println(FormatMeta(meta))
			}
		},
	}

	// ConnectCmd connects a bridge.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[ID]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			var id string
			if len(c.Args) > 0 {
				id = c.Args[0]
			} else {
				meta, err := s.SelectBridge()
				if err != nil {
					c.Err(err)
					return
				}
				if meta == nil {
					c.Err(fmt.Errorf("no bridge discovered"))
					return
				}
				id = meta.ID
			}
			if err := s.Connect(id); err != nil {
				c.Err(err)
			}
		},
	}

	// OpenCmd opens a serial device.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "[DEVICE]",
		Func: func(c *ishell.Context) {
			var device string
			if len(c.Args) > 0 {
				device = c.Args[0]
			}
			if err := ShellFrom(c).Open(device); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd closes current target.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	board.SetupFlags()
	mqtt.SetupFlags()
	flag.Parse()
	New(board.NewConfig(), mqtt.NewConfig()).Run(flag.Args()...)
}
