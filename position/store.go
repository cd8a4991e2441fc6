package position

import (
	"strconv"
	"sync"
)

// PositionFunc reports the machine's current commanded coordinate for
// an axis.
type PositionFunc func(Axis) float64

// An Executor runs a single motion command against the machine.
type Executor interface {
	Run(cmd string) error
}

// Update describes a change to the saved position. For each axis either
// an absolute position or a relative adjustment may be given; when both
// are present the absolute position wins.
type Update struct {
	Pos    [NumAxes]*float64
	Adjust [NumAxes]*float64
}

// Store owns the saved position snapshot. All operations hold the
// store's lock, so the snapshot is never observed mid-update.
type Store struct {
	mx   sync.Mutex
	snap Snapshot
}

func NewStore() *Store { return &Store{} }

// Save applies u to the snapshot. Axes not mentioned in u keep their
// stored value. An adjustment against an axis with no stored value is
// rejected and the snapshot is left untouched.
func (s *Store) Save(u Update) (Snapshot, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	next := s.snap
	for _, a := range AllAxes() {
		switch {
		case u.Pos[a] != nil:
			next.Set(a, *u.Pos[a])
		case u.Adjust[a] != nil:
			cur, ok := next.Get(a)
			if !ok {
				return Snapshot{}, &ConfigurationError{Axis: a, Reason: "adjust requires a previously saved value"}
			}
			next.Set(a, cur+*u.Adjust[a])
		}
	}
	s.snap = next
	return next, nil
}

// Capture replaces the snapshot with the machine's current position for
// the requested axes. Axes not requested end up with no stored value.
// Duplicate axes are queried once.
func (s *Store) Capture(axes []Axis, pos PositionFunc) {
	s.mx.Lock()
	defer s.mx.Unlock()

	var next Snapshot
	for _, a := range axes {
		if !a.IsValid() {
			continue
		}
		if _, ok := next.Get(a); ok {
			continue
		}
		next.Set(a, pos(a))
	}
	s.snap = next
}

// Restore sends a rapid move to the saved values of the requested axes,
// in the order requested. Axes with no stored value are skipped; if no
// axis has one, no command is sent at all. A feed rate > 0 is appended
// as an F term.
func (s *Store) Restore(axes []Axis, feed int, exec Executor) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	cmd := "G0"
	var seen [NumAxes]bool
	for _, a := range axes {
		if !a.IsValid() || seen[a] {
			continue
		}
		seen[a] = true
		val, ok := s.snap.Get(a)
		if !ok {
			continue
		}
		cmd += " " + a.String() + strconv.FormatFloat(val, 'f', 3, 64)
	}
	if cmd == "G0" {
		return nil
	}
	if feed > 0 {
		cmd += " F" + strconv.Itoa(feed)
	}
	if err := exec.Run(cmd); err != nil {
		return &RestoreError{Cmd: cmd, Err: err}
	}
	return nil
}

// Status returns a copy of the current snapshot.
func (s *Store) Status() Snapshot {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.snap
}
