package main

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"log"
	"net/http"
	"strings"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"

	"github.com/mastercactapus/gpos/dispatch"
	"github.com/mastercactapus/gpos/machine"
	"github.com/mastercactapus/gpos/position"
)

type api struct {
	http.Handler
	m     Controller
	store *position.Store
	disp  *dispatch.Dispatcher
	sse   *sse.Server
}

func newAPI(m Controller, store *position.Store, disp *dispatch.Dispatcher) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		m:       m,
		store:   store,
		disp:    disp,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(ioutil.Discard, "", 0),
		}),
	}

	r.HandleFunc("/api/command", a.command).Methods("POST")
	r.HandleFunc("/api/commands", a.listCommands).Methods("GET")
	r.HandleFunc("/api/position", a.position).Methods("GET")
	r.HandleFunc("/api/run", a.run).Methods("POST")
	r.PathPrefix("/events/").Handler(a.sse)

	go a.stateLoop()

	return a
}

type stateEvent struct {
	machine.State
	SavedPosition position.Snapshot `json:"saved_position"`
}

func (a *api) stateLoop() {
	for state := range a.m.State() {
		data, err := json.Marshal(stateEvent{State: state, SavedPosition: a.store.Status()})
		if err != nil {
			log.Printf("ERROR: marshal json: %+v", err)
			continue
		}
		a.sse.SendMessage("/events/state", sse.SimpleMessage(string(data)))
	}
}

// command dispatches one command per non-empty line of the body,
// stopping at the first failure.
func (a *api) command(w http.ResponseWriter, req *http.Request) {
	data, err := ioutil.ReadAll(req.Body)
	if err != nil {
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		err = a.disp.Run(line)
		if err != nil {
			log.Printf("ERROR: command '%s': %+v", line, err)
			var cfgErr *position.ConfigurationError
			if errors.As(err, &cfgErr) {
				http.Error(w, err.Error(), http.StatusBadRequest)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
	}
}

func (a *api) listCommands(w http.ResponseWriter, req *http.Request) {
	err := json.NewEncoder(w).Encode(a.disp.Help())
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

func (a *api) position(w http.ResponseWriter, req *http.Request) {
	err := json.NewEncoder(w).Encode(struct {
		SavedPosition position.Snapshot `json:"saved_position"`
	}{SavedPosition: a.store.Status()})
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

func (a *api) run(w http.ResponseWriter, req *http.Request) {
	data, err := ioutil.ReadAll(req.Body)
	if err != nil {
		return
	}

	err = a.m.Run(string(data))
	if err != nil {
		log.Printf("ERROR: run: %+v", err)
		http.Error(w, err.Error(), 500)
		return
	}
}
