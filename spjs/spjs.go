// Package spjs is a client for Serial Port JSON Server, used to reach a
// controller attached to another host.
package spjs

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// Client maintains a websocket connection to an SPJS instance,
// reconnecting as needed. Outgoing messages are serialized through the
// write loop; incoming messages are parsed and delivered on Messages.
type Client struct {
	url string

	outgoing  chan message
	incomming chan interface{}
}

type message struct {
	done    chan struct{}
	payload []byte
}

// DataFrame is raw data received from a port.
type DataFrame struct {
	Port string `json:"P"`
	Data string `json:"D"`
}

// CmdStatus reports queueing progress for a previously sent command.
type CmdStatus struct {
	Cmd        string
	QueueCount int      `json:"QCnt"`
	Data       []string `json:"D"`
	ID         string   `json:"Id"`
}

type ErrorMessage struct {
	Error string
}

type SerialPortList struct {
	SerialPorts []SerialPort
}

type SerialPort struct {
	Name     string
	Friendly string
	IsOpen   bool
	Baud     int
}

func NewClient(url string) *Client {
	cl := &Client{
		url:       url,
		outgoing:  make(chan message, 1000),
		incomming: make(chan interface{}, 1000),
	}

	go cl.loop()

	return cl
}

func (cl *Client) Messages() chan interface{} {
	return cl.incomming
}

func parseMessage(data []byte, msg map[string]json.RawMessage) (val interface{}, err error) {
	check := func(fieldName string, v interface{}) bool {
		if msg[fieldName] == nil {
			return false
		}
		val = v
		err = json.Unmarshal(data, val)
		return true
	}
	if check("Error", &ErrorMessage{}) {
		return
	}
	if check("SerialPorts", &SerialPortList{}) {
		return
	}
	if check("Cmd", &CmdStatus{}) {
		return
	}
	if check("D", &DataFrame{}) {
		return
	}

	return nil, errors.New("unknown message: " + string(data))
}

func (cl *Client) readLoop(ws *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			log.Println("ERROR: read:", err)
			return
		}
		if !bytes.HasPrefix(data, []byte("{")) {
			// ignore echo messages
			continue
		}
		var msg map[string]json.RawMessage
		err = json.Unmarshal(data, &msg)
		if err != nil {
			log.Println("ERROR: read:", err)
			continue
		}
		val, err := parseMessage(data, msg)
		if err != nil {
			log.Println("ERROR: parse:", err)
			continue
		}
		cl.incomming <- val
	}
}

func (cl *Client) loop() {
	var nextUp message

reconnect:
	for {
		log.Println("Connecting to", cl.url)
		ws, _, err := websocket.DefaultDialer.Dial(cl.url, nil)
		if err != nil {
			log.Println("ERROR: connect:", err)
			time.Sleep(3 * time.Second)
			continue
		}
		log.Println("Connected.")
		ch := make(chan struct{})
		go cl.readLoop(ws, ch)
		go cl.WriteString("list") // refresh list on reconnect

		for {
			if nextUp.done != nil {
				err = ws.WriteMessage(websocket.TextMessage, nextUp.payload)
				if err != nil {
					log.Println("ERROR: send:", err)
					continue reconnect
				}
				close(nextUp.done)
				nextUp.done = nil
			}

			select {
			case <-ch:
				continue reconnect
			case nextUp = <-cl.outgoing:
			}
		}
	}
}

// JSON is a batched send request for a single port.
type JSON struct {
	Port string `json:"P"`
	Data []Data
}

// Data is one command line with its tracking ID.
type Data struct {
	Data string `json:"D"`
	ID   string `json:"Id"`
}

// SendJSON queues a sendjson frame and blocks until it has been handed
// to the websocket.
func (cl *Client) SendJSON(v JSON) {
	data, err := json.Marshal(v)
	if err != nil {
		// shouldn't happen since we control everything that's sent out
		log.Panicln("ERROR: sendjson (marshal):", err)
		return
	}

	ch := make(chan struct{})
	cl.outgoing <- message{done: ch, payload: append([]byte("sendjson "), data...)}
	<-ch
}

// WriteString queues a raw SPJS command and blocks until it has been
// handed to the websocket.
func (cl *Client) WriteString(data string) {
	ch := make(chan struct{})
	cl.outgoing <- message{done: ch, payload: []byte(data)}
	<-ch
}
