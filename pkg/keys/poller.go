package keys

import (
	"github.com/golang/glog"

	"github.com/robotalks/rrc.go/pkg/framework"
)

// ChangeHandler is invoked when the state of a key changes.
// index is the position of the key in Poller.Keys.
type ChangeHandler func(ctx framework.ControlContext, index int, pressed bool)

// Poller samples keys on every loop iteration and reports edges.
type Poller struct {
	Keys     []Reader
	OnChange ChangeHandler

	states []bool
}

// NewPoller creates a Poller.
func NewPoller(onChange ChangeHandler, keys ...Reader) *Poller {
	return &Poller{Keys: keys, OnChange: onChange}
}

// Pressed returns the last sampled state of key index.
func (p *Poller) Pressed(index int) bool {
	return index < len(p.states) && p.states[index]
}

// Control implements framework.Controller.
func (p *Poller) Control(ctx framework.ControlContext) error {
	if len(p.states) != len(p.Keys) {
		p.states = make([]bool, len(p.Keys))
	}
	for n, key := range p.Keys {
		pressed, err := key.Pressed()
		if err != nil {
			glog.Warningf("key %d: %v", n, err)
			continue
		}
		if pressed == p.states[n] {
			continue
		}
		p.states[n] = pressed
		glog.V(2).Infof("key %d pressed=%v", n, pressed)
		if p.OnChange != nil {
			p.OnChange(ctx, n, pressed)
		}
	}
	return nil
}
