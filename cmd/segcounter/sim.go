package main

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/rs/zerolog"

	"segcounter-go/bus"
	"segcounter-go/button"
	"segcounter-go/counter"
	"segcounter-go/display"
	"segcounter-go/errcode"
	"segcounter-go/services/config"
	"segcounter-go/services/controller"
	"segcounter-go/services/hal"
	"segcounter-go/types"
)

// sim is the board with every pin virtual.
type sim struct {
	cfg  config.Config
	pins *hal.HostPinFactory
	hal  *hal.HAL
	bus  *bus.Bus
	conn *bus.Connection
	cnt  *counter.Counter
	disp *display.Display
	ctl  *controller.Controller
	log  zerolog.Logger
}

func newSim(ctx context.Context, cfg config.Config, frames io.Writer, log zerolog.Logger) (*sim, error) {
	s := &sim{cfg: cfg, pins: hal.NewHostPinFactory(), bus: bus.NewBus(16), log: log}
	s.conn = s.bus.NewConnection("sim")
	s.hal = hal.New(s.pins, s.bus.NewConnection("hal"), log)
	if err := s.hal.Apply(ctx, cfg.HALConfig()); err != nil {
		s.hal.Close()
		return nil, err
	}

	maps := make([]*display.SegmentMap, cfg.Digits)
	for i := range maps {
		m, err := s.hal.Digit(config.DigitID(i))
		if err != nil {
			return nil, err
		}
		maps[i] = m
	}
	s.disp = display.New(maps...)

	var srcs [3]button.Source
	for i, id := range []string{config.IDIncrement, config.IDDecrement, config.IDReset} {
		src, err := s.hal.Button(id)
		if err != nil {
			return nil, err
		}
		srcs[i] = src
	}

	var opts []counter.Option
	if cfg.LampTest {
		opts = append(opts, counter.WithLampTest())
	}
	cnt, err := counter.New(cfg.Digits, opts...)
	if err != nil {
		return nil, err
	}
	s.cnt = cnt

	copts := controller.Options{
		Interval: cfg.PollInterval,
		Conn:     s.bus.NewConnection("controller"),
		Log:      log,
		Render:   cfg.Render,
	}
	// Both sinks are always attached so a reload can switch between them.
	if frames != nil {
		copts.ASCII = frames
		copts.Pixels = newTextPixels(cfg.Digits, frames)
	}
	s.ctl, err = controller.New(cnt, s.disp, controller.Bindings(srcs[0], srcs[1], srcs[2]), copts)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// newTextPixels draws digits onto a text framebuffer sized for n digits.
func newTextPixels(n int, out io.Writer) *display.PixelRenderer {
	pc := display.DefaultPixelConfig()
	pc.Length, pc.Thickness, pc.Gap = 4, 1, 2
	w, h := display.NewPixelRenderer(nil, pc).Bounds(n)
	return display.NewPixelRenderer(display.NewTextPanel(w, h, out), pc)
}

func (s *sim) Close() error {
	s.ctl.Close()
	return s.hal.Close()
}

// current asks the controller for the counter over the bus. The controller
// answers at the end of the tick this runs.
func (s *sim) current() (types.CounterValue, error) {
	sub := s.conn.Request(s.conn.NewMessage(controller.TopicGet(), nil, false))
	defer s.conn.Unsubscribe(sub)
	if _, err := s.ctl.Tick(); err != nil {
		return types.CounterValue{}, err
	}
	select {
	case m := <-sub.Channel():
		v, ok := m.Payload.(types.CounterValue)
		if !ok {
			return types.CounterValue{}, &errcode.E{C: errcode.InvalidPayload, Op: "sim.current", Msg: "unexpected reply payload"}
		}
		return v, nil
	default:
		return types.CounterValue{}, &errcode.E{C: errcode.Error, Op: "sim.current", Msg: "no reply"}
	}
}

// query asks a running controller for the counter, waiting up to a second.
func (s *sim) query(ctx context.Context) (types.CounterValue, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	m, err := s.conn.RequestWait(ctx, s.conn.NewMessage(controller.TopicGet(), nil, false))
	if err != nil {
		return types.CounterValue{}, errcode.Wrap(errcode.Error, "sim.query", err)
	}
	v, ok := m.Payload.(types.CounterValue)
	if !ok {
		return types.CounterValue{}, &errcode.E{C: errcode.InvalidPayload, Op: "sim.query", Msg: "unexpected reply payload"}
	}
	return v, nil
}

// buttonPin returns the fake pin behind an action and the electrical level
// that reads as pressed.
func (s *sim) buttonPin(action string) (*hal.FakePin, bool) {
	var b config.ButtonPin
	switch action {
	case controller.ActionIncrement:
		b = s.cfg.Buttons.Increment
	case controller.ActionDecrement:
		b = s.cfg.Buttons.Decrement
	default:
		b = s.cfg.Buttons.Reset
	}
	return s.pins.Pin(b.Pin), !b.Invert
}

func (s *sim) press(action string) {
	p, level := s.buttonPin(action)
	p.Drive(level)
}

func (s *sim) release(action string) {
	p, _ := s.buttonPin(action)
	p.Release()
}

// step is one line of a press script: the actions held down together for
// one tick, or none for an idle tick.
type step []string

var scriptWords = map[string]string{
	"+": controller.ActionIncrement, "inc": controller.ActionIncrement, "increment": controller.ActionIncrement,
	"-": controller.ActionDecrement, "dec": controller.ActionDecrement, "decrement": controller.ActionDecrement,
	"0": controller.ActionReset, "r": controller.ActionReset, "reset": controller.ActionReset,
}

// parseScript splits src shell-style. Each word is one press; a word
// joining actions with commas ("inc,dec") presses them together, and
// "tick" waits one idle tick. # starts a comment.
func parseScript(src string) ([]step, error) {
	words, err := shlex.Split(src)
	if err != nil {
		return nil, errcode.Wrap(errcode.InvalidPayload, "script", err)
	}
	steps := make([]step, 0, len(words))
	for _, w := range words {
		if strings.EqualFold(w, "tick") {
			steps = append(steps, nil)
			continue
		}
		var st step
		for _, part := range strings.Split(w, ",") {
			a, ok := scriptWords[strings.ToLower(part)]
			if !ok {
				return nil, &errcode.E{C: errcode.InvalidPayload, Op: "script", Msg: "unknown word " + part}
			}
			st = append(st, a)
		}
		steps = append(steps, st)
	}
	return steps, nil
}

// play runs the script tick by tick. A step's buttons are held for one
// tick per button, so lower-priority presses get their turn, then released
// for one tick. A leading tick records the baseline.
func (s *sim) play(steps []step) error {
	if _, err := s.ctl.Tick(); err != nil {
		return err
	}
	for _, st := range steps {
		for _, a := range st {
			s.press(a)
		}
		for n := max(len(st), 1); n > 0; n-- {
			if _, err := s.ctl.Tick(); err != nil {
				return err
			}
		}
		for _, a := range st {
			s.release(a)
		}
		if _, err := s.ctl.Tick(); err != nil {
			return err
		}
	}
	return nil
}
