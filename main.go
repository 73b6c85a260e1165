package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quadbank/internal/config"
	"quadbank/internal/encoder"
	"quadbank/internal/hardware"
	"quadbank/internal/midi"
	"quadbank/internal/render"
	"quadbank/internal/storage"
	"quadbank/internal/tui"
)

func main() {
	var (
		inPort       = flag.String("in", "", "MIDI input port for feedback")
		outPort      = flag.String("out", "", "MIDI output port for surface messages")
		mirrorPort   = flag.String("mirror", "", "MIDI output port to mirror the display onto")
		storePath    = flag.String("store", "", "settings file path (default: user config dir)")
		tick         = flag.Duration("tick", 2*time.Millisecond, "main loop tick interval")
		listPorts    = flag.Bool("list", false, "list MIDI ports and exit")
		factoryReset = flag.Bool("factory-reset", false, "rewrite settings to factory defaults")
		monitor      = flag.Bool("monitor", true, "run the terminal monitor")
	)
	flag.Parse()

	manager := midi.NewManager()
	defer manager.Close()

	if *listPorts {
		fmt.Println("Input ports:")
		for _, name := range manager.ListInPorts() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println("Output ports:")
		for _, name := range manager.ListOutPorts() {
			fmt.Printf("  %s\n", name)
		}
		return
	}

	path := *storePath
	if path == "" {
		var err error
		path, err = storage.DefaultPath()
		if err != nil {
			log.Fatalf("Failed to resolve settings path: %v", err)
		}
	}

	pager, created, err := storage.OpenFile(path, config.NumPages)
	if err != nil {
		log.Fatalf("Failed to open settings store: %v", err)
	}
	defer pager.Close()

	store := config.NewStore(pager)
	if created || *factoryReset {
		if err := store.FactoryReset(); err != nil {
			log.Fatalf("Factory reset failed: %v", err)
		}
	}
	if err := store.Init(); err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	var out encoder.Sender = midi.Discard{}
	if *outPort != "" {
		sender, err := manager.OpenSender(*outPort)
		if err != nil {
			log.Fatalf("Failed to open output: %v", err)
		}
		out = sender
	}

	var disp encoder.Renderer = render.Null{}
	if *mirrorPort != "" {
		send, err := manager.OpenSend(*mirrorPort)
		if err != nil {
			log.Fatalf("Failed to open mirror output: %v", err)
		}
		disp = render.NewMirror(send)
	}

	input := hardware.NewSim()
	engine := encoder.New(store, input, out, disp)

	feedback := make(chan encoder.Message, 64)
	if *inPort != "" {
		stop, err := manager.StartListening(*inPort, func(m encoder.Message) {
			select {
			case feedback <- m:
			default: // drop rather than stall the MIDI callback
			}
		})
		if err != nil {
			log.Fatalf("Failed to listen: %v", err)
		}
		defer stop()
	}

	bankReq := make(chan int, 1)
	snaps := make(chan encoder.Snapshot, 1)
	go runLoop(engine, *tick, feedback, bankReq, snaps)

	if *monitor {
		p := tea.NewProgram(tui.NewModel(snaps, bankReq, input), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatalf("Monitor failed: %v", err)
		}
		return
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}

// runLoop is the engine's owning goroutine: the only caller of its mutating
// operations. Inbound feedback and bank requests are drained at the top of
// each tick, then input processing and one display step run.
func runLoop(engine *encoder.Engine, tick time.Duration, feedback <-chan encoder.Message, bankReq <-chan int, snaps chan<- encoder.Snapshot) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	const snapshotEvery = 16

	n := 0
	for range ticker.C {
	drain:
		for {
			select {
			case m := <-feedback:
				engine.HandleFeedback(m)
			case b := <-bankReq:
				engine.ChangeBank(b)
			default:
				break drain
			}
		}

		engine.Tick()

		n++
		if n%snapshotEvery == 0 {
			select {
			case snaps <- engine.Snapshot():
			default:
			}
		}
	}
}
