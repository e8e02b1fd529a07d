package keys

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/rrc.go/pkg/framework"
)

type fakeKey struct {
	pressed bool
	err     error
}

func (k *fakeKey) Pressed() (bool, error) {
	return k.pressed, k.err
}

type testControlContext struct{}

func (testControlContext) Context() context.Context { return context.Background() }
func (testControlContext) Time() time.Time          { return time.Time{} }
func (testControlContext) Iteration() uint64        { return 1 }
func (testControlContext) PriorityLevel() int       { return framework.PrLvSense }
func (testControlContext) TriggerNext()             {}

type change struct {
	index   int
	pressed bool
}

func TestPoller(t *testing.T) {
	key1, key2 := &fakeKey{}, &fakeKey{}
	var changes []change
	p := NewPoller(func(ctx framework.ControlContext, index int, pressed bool) {
		changes = append(changes, change{index, pressed})
	}, key1, key2)
	var cc testControlContext

	require.NoError(t, p.Control(cc))
	require.Empty(t, changes)

	key1.pressed = true
	require.NoError(t, p.Control(cc))
	require.NoError(t, p.Control(cc))
	require.True(t, p.Pressed(0))
	require.False(t, p.Pressed(1))
	require.False(t, p.Pressed(5))

	key2.pressed = true
	key1.pressed = false
	require.NoError(t, p.Control(cc))

	key2.err = errors.New("gpio gone")
	key2.pressed = false
	require.NoError(t, p.Control(cc))
	require.True(t, p.Pressed(1))

	require.Equal(t, []change{{0, true}, {0, false}, {1, true}}, changes)
}

func TestReaderFunc(t *testing.T) {
	var r Reader = ReaderFunc(func() (bool, error) { return true, nil })
	pressed, err := r.Pressed()
	require.NoError(t, err)
	require.True(t, pressed)
}

func TestParseLines(t *testing.T) {
	lines, err := ParseLines("13, 23,,4")
	require.NoError(t, err)
	require.Equal(t, []uint32{13, 23, 4}, lines)
	_, err = ParseLines("13,x")
	require.Error(t, err)

	conf := NewConfig()
	require.Equal(t, []uint32{DefaultKey1Line, DefaultKey2Line}, conf.Lines)
	v := linesValue{&conf.Lines}
	require.NoError(t, v.Set("5,6"))
	require.Equal(t, "5,6", v.String())
	require.Equal(t, []uint32{DefaultKey1Line, DefaultKey2Line}, Default().Lines)
}
