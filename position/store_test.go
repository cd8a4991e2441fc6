package position

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

type execFunc func(cmd string) error

func (fn execFunc) Run(cmd string) error { return fn(cmd) }

func TestStore_Save(t *testing.T) {
	s := NewStore()

	snap, err := s.Save(Update{Pos: [NumAxes]*float64{f(10), nil, f(-3)}})
	assert.NoError(t, err)

	v, ok := snap.Get(AxisX)
	assert.True(t, ok)
	assert.Equal(t, 10.0, v)
	_, ok = snap.Get(AxisY)
	assert.False(t, ok)
	v, ok = snap.Get(AxisZ)
	assert.True(t, ok)
	assert.Equal(t, -3.0, v)

	// unmentioned axes keep their value
	snap, err = s.Save(Update{Pos: [NumAxes]*float64{nil, f(2), nil}})
	assert.NoError(t, err)
	v, ok = snap.Get(AxisX)
	assert.True(t, ok)
	assert.Equal(t, 10.0, v)
	v, ok = snap.Get(AxisY)
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestStore_Save_Adjust(t *testing.T) {
	s := NewStore()

	_, err := s.Save(Update{Pos: [NumAxes]*float64{f(5), nil, nil}})
	assert.NoError(t, err)

	snap, err := s.Save(Update{Adjust: [NumAxes]*float64{f(2.5), nil, nil}})
	assert.NoError(t, err)
	v, ok := snap.Get(AxisX)
	assert.True(t, ok)
	assert.Equal(t, 7.5, v)
}

func TestStore_Save_AdjustUnset(t *testing.T) {
	s := NewStore()

	_, err := s.Save(Update{Adjust: [NumAxes]*float64{nil, f(1), nil}})
	assert.Error(t, err)
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, AxisY, cfgErr.Axis)

	// nothing was stored
	status := s.Status()
	for _, a := range AllAxes() {
		_, ok := status.Get(a)
		assert.False(t, ok)
	}
}

func TestStore_Save_AdjustUnset_AllOrNothing(t *testing.T) {
	s := NewStore()

	// X would apply cleanly, but the Y adjust is invalid; the whole
	// update must be rejected.
	_, err := s.Save(Update{
		Pos:    [NumAxes]*float64{f(1), nil, nil},
		Adjust: [NumAxes]*float64{nil, f(1), nil},
	})
	assert.Error(t, err)
	_, ok := s.Status().Get(AxisX)
	assert.False(t, ok)
}

func TestStore_Save_AbsoluteWins(t *testing.T) {
	s := NewStore()
	s.Save(Update{Pos: [NumAxes]*float64{f(5), nil, nil}})

	snap, err := s.Save(Update{
		Pos:    [NumAxes]*float64{f(100), nil, nil},
		Adjust: [NumAxes]*float64{f(1), nil, nil},
	})
	assert.NoError(t, err)
	v, _ := snap.Get(AxisX)
	assert.Equal(t, 100.0, v)
}

func TestStore_Capture(t *testing.T) {
	s := NewStore()
	s.Save(Update{Pos: [NumAxes]*float64{f(1), f(2), f(3)}})

	queries := make(map[Axis]int)
	s.Capture([]Axis{AxisX, AxisZ, AxisX}, func(a Axis) float64 {
		queries[a]++
		switch a {
		case AxisX:
			return 10.123
		case AxisZ:
			return -3.0
		}
		t.Fatalf("unexpected query for axis %s", a)
		return 0
	})

	snap := s.Status()
	v, ok := snap.Get(AxisX)
	assert.True(t, ok)
	assert.Equal(t, 10.123, v)
	_, ok = snap.Get(AxisY) // unset even though it held a value
	assert.False(t, ok)
	v, ok = snap.Get(AxisZ)
	assert.True(t, ok)
	assert.Equal(t, -3.0, v)

	// one query per distinct axis, none for Y
	assert.Equal(t, map[Axis]int{AxisX: 1, AxisZ: 1}, queries)
}

func TestStore_Capture_Empty(t *testing.T) {
	s := NewStore()
	s.Save(Update{Pos: [NumAxes]*float64{f(1), nil, nil}})

	s.Capture(nil, func(a Axis) float64 {
		t.Fatal("provider must not be queried")
		return 0
	})
	for _, a := range AllAxes() {
		_, ok := s.Status().Get(a)
		assert.False(t, ok)
	}
}

func TestStore_Restore(t *testing.T) {
	s := NewStore()
	s.Save(Update{Pos: [NumAxes]*float64{f(1), nil, f(2)}})

	var got []string
	exec := execFunc(func(cmd string) error {
		got = append(got, cmd)
		return nil
	})

	err := s.Restore([]Axis{AxisZ, AxisX}, 3000, exec)
	assert.NoError(t, err)
	// requested order preserved, 3 decimals, integer feed
	assert.Equal(t, []string{"G0 Z2.000 X1.000 F3000"}, got)
}

func TestStore_Restore_NoFeed(t *testing.T) {
	s := NewStore()
	s.Save(Update{Pos: [NumAxes]*float64{f(1.5), nil, nil}})

	var got []string
	exec := execFunc(func(cmd string) error {
		got = append(got, cmd)
		return nil
	})

	err := s.Restore(AllAxes(), 0, exec)
	assert.NoError(t, err)
	assert.Equal(t, []string{"G0 X1.500"}, got)
}

func TestStore_Restore_NothingToRestore(t *testing.T) {
	s := NewStore()
	s.Save(Update{Pos: [NumAxes]*float64{f(1), nil, nil}})

	exec := execFunc(func(cmd string) error {
		t.Fatalf("unexpected command: %s", cmd)
		return nil
	})

	// no axes requested
	assert.NoError(t, s.Restore(nil, 3000, exec))
	// requested axis has no stored value
	assert.NoError(t, s.Restore([]Axis{AxisY}, 0, exec))
}

func TestStore_Restore_ExecutorError(t *testing.T) {
	s := NewStore()
	s.Save(Update{Pos: [NumAxes]*float64{f(1), nil, nil}})

	cause := errors.New("alarm lock")
	err := s.Restore(AllAxes(), 0, execFunc(func(string) error { return cause }))
	assert.Error(t, err)

	var restoreErr *RestoreError
	assert.True(t, errors.As(err, &restoreErr))
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Equal(t, "G0 X1.000", restoreErr.Cmd)

	// snapshot unchanged by the failure
	v, ok := s.Status().Get(AxisX)
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestStore_RoundTrip(t *testing.T) {
	s := NewStore()

	live := map[Axis]float64{AxisX: 12.5, AxisY: -0.001, AxisZ: 40}
	s.Capture(AllAxes(), func(a Axis) float64 { return live[a] })

	var got []string
	err := s.Restore(AllAxes(), 0, execFunc(func(cmd string) error {
		got = append(got, cmd)
		return nil
	}))
	assert.NoError(t, err)
	assert.Equal(t, []string{"G0 X12.500 Y-0.001 Z40.000"}, got)
}
