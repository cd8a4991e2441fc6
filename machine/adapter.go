package machine

import (
	"io"

	"github.com/mastercactapus/gpos/coord"
)

// State is the controller-reported machine state.
type State struct {
	Status string
	MPos   coord.Point
	WCO    coord.Point
}

// An Adapter represents the minimal machine-controller interface.
type Adapter interface {
	State() chan State
	CurrentState() State

	WriteByte(byte) error
	Write([]byte) (int, error)
	ReadFrom(io.Reader) (int64, error)
}
