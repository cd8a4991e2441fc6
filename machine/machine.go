package machine

import (
	"sync"

	"github.com/mastercactapus/gpos/coord"
	"github.com/mastercactapus/gpos/gcode"
)

// Machine couples a controller adapter with a VM that tracks the
// commanded position of everything sent through it.
type Machine struct {
	Adapter

	mx sync.Mutex
	vm *gcode.VM
}

func NewMachine(a Adapter) *Machine {
	return &Machine{
		Adapter: a,
		vm:      gcode.NewVM(),
	}
}

// Sync seeds the commanded position from the controller's last reported
// state.
func (m *Machine) Sync() {
	stat := m.CurrentState()
	m.mx.Lock()
	m.vm.SetMPos(stat.MPos)
	m.vm.SetWCO(stat.WCO)
	m.mx.Unlock()
}

// Position returns the current commanded position in work coordinates.
func (m *Machine) Position() coord.Point {
	m.mx.Lock()
	defer m.mx.Unlock()
	return m.vm.WPos()
}

// Run parses, validates, and executes a G-code script.
func (m *Machine) Run(script string) error {
	blocks, err := gcode.Parse(script)
	if err != nil {
		return err
	}
	return m.RunBlocks(blocks)
}

// RunBlocks executes blocks against the controller. The commanded
// position only advances once every block has been accepted.
func (m *Machine) RunBlocks(blocks []gcode.Block) error {
	m.mx.Lock()
	defer m.mx.Unlock()

	next := *m.vm
	for _, b := range blocks {
		if err := next.Run(b); err != nil {
			return err
		}
	}

	_, err := m.ReadFrom(gcode.NewBuffer(&gcode.BlocksReader{Blocks: blocks}))
	if err != nil {
		return err
	}
	*m.vm = next
	return nil
}
