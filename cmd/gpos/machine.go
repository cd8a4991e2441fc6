package main

import (
	"github.com/mastercactapus/gpos/coord"
	"github.com/mastercactapus/gpos/machine"
)

// Controller is what the command handlers and API need from the
// machine.
type Controller interface {
	Run(script string) error
	Position() coord.Point
	State() chan machine.State
}
