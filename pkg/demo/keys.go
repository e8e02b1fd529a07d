package demo

import (
	"context"

	"github.com/golang/glog"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/robotalks/rrc.go/pkg/board"
	"github.com/robotalks/rrc.go/pkg/board/proto"
	"github.com/robotalks/rrc.go/pkg/framework"
)

// KeyColors shows a color per key while the key is pressed.
// Keys come from host GPIO through KeyChanged, or from the board
// key reports when Reports is set.
type KeyColors struct {
	Board  board.Commander
	IDs    []uint8
	Colors []colorful.Color
	// Reports are key reports from the board, key ID n maps to Colors[n-1].
	Reports <-chan proto.KeyReport
}

// NewKeyColors creates KeyColors with key1 red and key2 blue.
func NewKeyColors(b board.Commander) *KeyColors {
	return &KeyColors{Board: b, IDs: DefaultIDs, Colors: []colorful.Color{Red, Blue}}
}

// Press shows the color of key index.
func (k *KeyColors) Press(index int) error {
	if index < 0 || index >= len(k.Colors) {
		return nil
	}
	return k.Board.SetRGB(Fill(k.Colors[index], k.IDs...)...)
}

// KeyChanged is a keys.ChangeHandler.
func (k *KeyColors) KeyChanged(ctx framework.ControlContext, index int, pressed bool) {
	if !pressed {
		return
	}
	if err := k.Press(index); err != nil {
		glog.Errorf("key %d: %v", index, err)
	}
}

// Control implements framework.Controller. Presses are pushed, nothing to poll.
func (k *KeyColors) Control(framework.ControlContext) error {
	return nil
}

// Run implements framework.Runnable, consuming board key reports.
func (k *KeyColors) Run(ctx context.Context) error {
	if k.Reports == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case report := <-k.Reports:
			if !report.Event.Has(proto.KeyPressed) && !report.Event.Has(proto.KeyClick) {
				continue
			}
			if err := k.Press(int(report.ID) - 1); err != nil {
				glog.Errorf("key report %d: %v", report.ID, err)
			}
		}
	}
}
