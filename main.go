// Firmware entry: wires the board's buttons and segment digits through the
// HAL and runs the counter loop until power-off.
package main

import (
	"context"
	"os"
	"runtime"
	"time"

	"segcounter-go/bus"
	"segcounter-go/counter"
	"segcounter-go/display"
	"segcounter-go/services/config"
	"segcounter-go/services/controller"
	"segcounter-go/services/hal"
	"segcounter-go/types"
	"segcounter-go/x/logx"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	ctx := context.Background()
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		fatal("config", err)
	}
	log := logx.New(os.Stdout, false, logx.ParseLevel(cfg.LogLevel))

	b := bus.NewBus(4)
	halConn := b.NewConnection("hal")
	ctlConn := b.NewConnection("controller")
	uiConn := b.NewConnection("ui")

	mon := uiConn.Subscribe(controller.TopicValue())
	go func() {
		for m := range mon.Channel() {
			if v, ok := m.Payload.(types.CounterValue); ok {
				println("[monitor] counter", v.Text)
			}
		}
	}()

	println("[main] applying hal config …")
	h := hal.New(hal.DefaultPinFactory(), halConn, log)
	if err := h.Apply(ctx, cfg.HALConfig()); err != nil {
		fatal("hal", err)
	}

	maps := make([]*display.SegmentMap, cfg.Digits)
	for i := range maps {
		m, err := h.Digit(config.DigitID(i))
		if err != nil {
			fatal("digit", err)
		}
		maps[i] = m
	}
	inc, err := h.Button(config.IDIncrement)
	if err != nil {
		fatal("button", err)
	}
	dec, err := h.Button(config.IDDecrement)
	if err != nil {
		fatal("button", err)
	}
	rst, err := h.Button(config.IDReset)
	if err != nil {
		fatal("button", err)
	}

	var opts []counter.Option
	if cfg.LampTest {
		opts = append(opts, counter.WithLampTest())
	}
	cnt, err := counter.New(cfg.Digits, opts...)
	if err != nil {
		fatal("counter", err)
	}

	ctl, err := controller.New(cnt, display.New(maps...), controller.Bindings(inc, dec, rst), controller.Options{
		Interval: cfg.PollInterval,
		Conn:     ctlConn,
		Log:      log,
	})
	if err != nil {
		fatal("controller", err)
	}
	config.Publish(uiConn, cfg)

	go func() {
		tick := time.NewTicker(30 * time.Second)
		defer tick.Stop()
		for range tick.C {
			printMem()
		}
	}()

	println("[main] running")
	if err := ctl.Run(ctx); err != nil {
		fatal("run", err)
	}
}

func fatal(stage string, err error) {
	println("[main]", stage, "error:", err.Error())
	for {
		time.Sleep(time.Second)
	}
}

// printMem prints a compact snapshot of TinyGo runtime memory stats.
// Uses builtin println to avoid fmt overhead/allocations.
func printMem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	println(
		"[mem]",
		"alloc:", uint32(ms.Alloc),
		"heapInuse:", uint32(ms.HeapInuse),
		"heapSys:", uint32(ms.HeapSys),
		"mallocs:", uint32(ms.Mallocs),
		"frees:", uint32(ms.Frees),
	)
}
