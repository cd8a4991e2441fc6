package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/tarm/serial"

	"github.com/mastercactapus/gpos/dispatch"
	"github.com/mastercactapus/gpos/machine"
	"github.com/mastercactapus/gpos/machine/grbl"
	"github.com/mastercactapus/gpos/position"
	"github.com/mastercactapus/gpos/spjs"
)

func main() {
	log.SetFlags(log.Lshortfile)

	port := flag.String("port", "/dev/ttyUSB0", "Serial port path (or name if using SPJS).")
	baud := flag.Int("baud", 115200, "Baud rate for direct serial connections.")
	spjsURL := flag.String("spjs", "", "Websocket URL of an SPJS server to use; empty for direct serial.")
	controller := flag.String("controller", "grbl", "Name of the controller to use.")
	addr := flag.String("addr", ":9091", "Address to bind the gpos server to.")
	flag.Parse()

	if *controller != "grbl" {
		log.Fatal("only 'grbl' controller supported")
	}

	var adapter machine.Adapter
	if *spjsURL != "" {
		adapter = grbl.NewSPJSAdapter(spjs.NewClient(*spjsURL), *port)
	} else {
		p, err := serial.OpenPort(&serial.Config{Name: *port, Baud: *baud})
		if err != nil {
			log.Fatal(err)
		}
		adapter = grbl.NewSerialAdapter(p)
	}

	m := machine.NewMachine(adapter)
	m.Sync()

	store := position.NewStore()
	disp := dispatch.New()
	err := registerCommands(disp, store, m)
	if err != nil {
		log.Fatal(err)
	}

	api := newAPI(m, store, disp)

	err = http.ListenAndServe(*addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
		api.ServeHTTP(w, req)
	}))
	if err != nil {
		log.Fatal(err)
	}
}
