package grbl

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mastercactapus/gpos/machine"
	"github.com/mastercactapus/gpos/spjs"
)

var lastID int64

func nextID() string {
	id := atomic.AddInt64(&lastID, 1)
	return "cmd_" + strconv.FormatInt(id, 36)
}

// SPJSAdapter drives a grbl controller attached to a Serial Port JSON
// Server instance.
type SPJSAdapter struct {
	cl   *spjs.Client
	port string

	cmds    chan adapterMessage
	waiting map[string]chan error

	mx    sync.Mutex
	last  machine.State
	state chan machine.State
}

var _ machine.Adapter = &SPJSAdapter{}

type adapterMessage struct {
	spjs.JSON
	wait chan error
}

func NewSPJSAdapter(cl *spjs.Client, port string) *SPJSAdapter {
	adapter := &SPJSAdapter{
		cl:      cl,
		port:    port,
		waiting: make(map[string]chan error, 100),
		cmds:    make(chan adapterMessage, 1000),
		state:   make(chan machine.State),
	}
	go adapter.loop()

	return adapter
}

func (adapter *SPJSAdapter) CurrentState() machine.State {
	adapter.mx.Lock()
	defer adapter.mx.Unlock()
	return adapter.last
}

func (adapter *SPJSAdapter) setMachineState(state machine.State) {
	adapter.mx.Lock()
	defer adapter.mx.Unlock()
	adapter.last = state
	select {
	case adapter.state <- state:
	default:
	}
}

func (adapter *SPJSAdapter) State() chan machine.State {
	return adapter.state
}

func (adapter *SPJSAdapter) loop() {
	for {
		select {
		case resp := <-adapter.cl.Messages():
			switch msg := resp.(type) {
			case *spjs.DataFrame:
				if msg.Data == "" || msg.Data[0] != '<' {
					continue
				}
				stat, err := parseStatus(adapter.CurrentState(), msg.Data)
				if err != nil {
					log.Println("ERROR: parse status:", err)
					continue
				}
				adapter.setMachineState(*stat)
			case *spjs.CmdStatus:
				switch msg.Cmd {
				case "WipedQueue":
					for key, ch := range adapter.waiting {
						ch <- errors.New("wiped queue")
						delete(adapter.waiting, key)
					}
				case "Complete":
					if adapter.waiting[msg.ID] != nil {
						adapter.waiting[msg.ID] <- nil
						delete(adapter.waiting, msg.ID)
					}
				}
			case *spjs.SerialPortList:
				for _, port := range msg.SerialPorts {
					if port.Name != adapter.port {
						continue
					}
					if !port.IsOpen {
						adapter.cl.WriteString("open " + adapter.port + " grbl 115200")
					}
				}
			case *spjs.ErrorMessage:
				log.Println("ERROR: spjs:", msg.Error)
			}
		case msg := <-adapter.cmds:
			adapter.cl.SendJSON(msg.JSON)
			if msg.wait != nil {
				adapter.waiting[msg.Data[len(msg.Data)-1].ID] = msg.wait
			}
		}
	}
}

// ReadFrom sends each line to the port, in batches of 100, and waits
// for the last one to complete.
func (adapter *SPJSAdapter) ReadFrom(r io.Reader) (n int64, err error) {
	scan := bufio.NewScanner(r)
	var wait chan error
	for {
		var j spjs.JSON
		j.Port = adapter.port
		for scan.Scan() {
			n += int64(len(scan.Bytes()))
			j.Data = append(j.Data, spjs.Data{
				Data: strings.TrimSpace(scan.Text()) + "\n",
				ID:   nextID(),
			})
			if len(j.Data) == 100 {
				break
			}
		}
		if len(j.Data) == 0 {
			break
		}
		wait = make(chan error, 1)
		adapter.cmds <- adapterMessage{JSON: j, wait: wait}
	}

	if wait == nil {
		return 0, nil
	}

	// wait for last channel
	return n, <-wait
}

func (adapter *SPJSAdapter) WriteByte(b byte) error {
	_, err := adapter.Write([]byte(string(b) + "\n"))
	return err
}

func (adapter *SPJSAdapter) Write(p []byte) (int, error) {
	n, err := adapter.ReadFrom(bytes.NewBuffer(p))
	return int(n), err
}
