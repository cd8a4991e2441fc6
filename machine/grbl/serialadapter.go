package grbl

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/mastercactapus/gpos/machine"
)

// SerialAdapter drives a grbl controller over a direct serial
// connection, polling for status reports twice a second.
type SerialAdapter struct {
	*Conn

	mx    sync.Mutex
	last  machine.State
	state chan machine.State
}

var _ machine.Adapter = &SerialAdapter{}

func NewSerialAdapter(rw io.ReadWriter) *SerialAdapter {
	adapter := &SerialAdapter{
		Conn:  NewConn(rw),
		state: make(chan machine.State),
	}
	go adapter.poll()
	go adapter.loop()

	return adapter
}

func (adapter *SerialAdapter) poll() {
	for range time.NewTicker(500 * time.Millisecond).C {
		err := adapter.Conn.WriteByte('?')
		if err == io.ErrClosedPipe {
			return
		}
		if err != nil {
			log.Println("ERROR: poll status:", err)
		}
	}
}

func (adapter *SerialAdapter) State() chan machine.State { return adapter.state }
func (adapter *SerialAdapter) CurrentState() machine.State {
	adapter.mx.Lock()
	state := adapter.last
	adapter.mx.Unlock()
	return state
}

func (adapter *SerialAdapter) loop() {
	for data := range adapter.Conn.Push() {
		if data[0] != '<' {
			// feedback and alarm messages are surfaced in the log only
			log.Println("grbl:", data)
			continue
		}
		stat, err := parseStatus(adapter.CurrentState(), data)
		if err != nil {
			log.Println("ERROR: parse status:", err)
			continue
		}
		adapter.mx.Lock()
		adapter.last = *stat
		adapter.mx.Unlock()
		select {
		case adapter.state <- *stat:
		default:
		}
	}
}
