package position

import "encoding/json"

// Snapshot holds a saved target value for each axis. An axis either has
// a stored value or it doesn't; axes without one are never commanded on
// restore.
type Snapshot struct {
	vals [NumAxes]float64
	set  [NumAxes]bool
}

func (s Snapshot) Get(a Axis) (float64, bool) {
	return s.vals[a], s.set[a]
}

func (s *Snapshot) Set(a Axis, val float64) {
	s.vals[a] = val
	s.set[a] = true
}

// MarshalJSON renders the snapshot as a 3-element array, null for axes
// holding no value.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	vals := make([]*float64, NumAxes)
	for i := range vals {
		if s.set[i] {
			v := s.vals[i]
			vals[i] = &v
		}
	}
	return json.Marshal(vals)
}
