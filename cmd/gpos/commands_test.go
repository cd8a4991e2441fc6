package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mastercactapus/gpos/coord"
	"github.com/mastercactapus/gpos/dispatch"
	"github.com/mastercactapus/gpos/machine"
	"github.com/mastercactapus/gpos/position"
)

type fakeController struct {
	pos coord.Point
	ran []string
	err error
}

func (c *fakeController) Run(script string) error {
	if c.err != nil {
		return c.err
	}
	c.ran = append(c.ran, script)
	return nil
}
func (c *fakeController) Position() coord.Point     { return c.pos }
func (c *fakeController) State() chan machine.State { return nil }

func newTestDispatcher(t *testing.T, m Controller) (*dispatch.Dispatcher, *position.Store) {
	t.Helper()
	store := position.NewStore()
	d := dispatch.New()
	assert.NoError(t, registerCommands(d, store, m))
	return d, store
}

func TestCommands_SaveRestore(t *testing.T) {
	m := &fakeController{}
	d, _ := newTestDispatcher(t, m)

	assert.NoError(t, d.Run("SAVE_POSITION X=10 Z=-3"))
	assert.NoError(t, d.Run("SAVE_POSITION X_ADJUST=0.5"))
	assert.NoError(t, d.Run("RESTORE_POSITION AXIS=ZX SPEED=3000"))

	assert.Equal(t, []string{"G0 Z-3.000 X10.500 F3000"}, m.ran)
}

func TestCommands_SaveAdjustUnset(t *testing.T) {
	m := &fakeController{}
	d, store := newTestDispatcher(t, m)

	err := d.Run("SAVE_POSITION Y_ADJUST=1")
	assert.Error(t, err)

	_, ok := store.Status().Get(position.AxisY)
	assert.False(t, ok)
}

func TestCommands_SaveCurrentPosition(t *testing.T) {
	m := &fakeController{pos: coord.Point{X: 1.5, Y: 2.5, Z: 3.5}}
	d, store := newTestDispatcher(t, m)

	assert.NoError(t, d.Run("SAVE_CURRENT_POSITION AXIS=xz"))

	snap := store.Status()
	v, ok := snap.Get(position.AxisX)
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)
	_, ok = snap.Get(position.AxisY)
	assert.False(t, ok)
	v, ok = snap.Get(position.AxisZ)
	assert.True(t, ok)
	assert.Equal(t, 3.5, v)
}

func TestCommands_RestoreNothingSaved(t *testing.T) {
	m := &fakeController{}
	d, _ := newTestDispatcher(t, m)

	assert.NoError(t, d.Run("RESTORE_POSITION"))
	assert.Empty(t, m.ran)
}

func TestCommands_BadParam(t *testing.T) {
	m := &fakeController{}
	d, _ := newTestDispatcher(t, m)

	assert.Error(t, d.Run("SAVE_POSITION X=abc"))
	assert.Error(t, d.Run("RESTORE_POSITION SPEED=fast"))
}
