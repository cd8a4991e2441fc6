// Package dispatch routes named command lines to statically registered
// handlers.
package dispatch

import (
	"fmt"
	"strings"
	"sync"
)

type HandlerFunc func(*Command) error

type entry struct {
	name string
	help string
	fn   HandlerFunc
}

// Dispatcher holds the command table. Commands are registered once at
// startup and dispatched for the life of the process.
type Dispatcher struct {
	mx   sync.RWMutex
	cmds map[string]entry
}

func New() *Dispatcher {
	return &Dispatcher{cmds: make(map[string]entry)}
}

// Register adds a named command with its help text. Registering a name
// twice is an error.
func (d *Dispatcher) Register(name, help string, fn HandlerFunc) error {
	name = strings.ToUpper(name)
	d.mx.Lock()
	defer d.mx.Unlock()
	if _, ok := d.cmds[name]; ok {
		return fmt.Errorf("command %s already registered", name)
	}
	d.cmds[name] = entry{name: name, help: help, fn: fn}
	return nil
}

// Run parses and dispatches a single command line.
func (d *Dispatcher) Run(line string) error {
	cmd, err := ParseCommand(line)
	if err != nil {
		return err
	}
	d.mx.RLock()
	e, ok := d.cmds[cmd.Name()]
	d.mx.RUnlock()
	if !ok {
		return fmt.Errorf("unknown command: %s", cmd.Name())
	}
	return e.fn(cmd)
}

// Help returns the registered command names mapped to their help text.
func (d *Dispatcher) Help() map[string]string {
	d.mx.RLock()
	defer d.mx.RUnlock()
	res := make(map[string]string, len(d.cmds))
	for name, e := range d.cmds {
		res[name] = e.help
	}
	return res
}
