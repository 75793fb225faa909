// Package controller runs the polling loop that turns button edges into
// counter changes and pushes the result to the display.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"segcounter-go/bus"
	"segcounter-go/button"
	"segcounter-go/counter"
	"segcounter-go/display"
	"segcounter-go/errcode"
	"segcounter-go/types"
	"segcounter-go/x/timex"
)

// Actions a button can be bound to.
const (
	ActionIncrement = "increment"
	ActionDecrement = "decrement"
	ActionReset     = "reset"
)

var actions = map[string]func(*counter.Counter){
	ActionIncrement: func(c *counter.Counter) { c.Increment(1) },
	ActionDecrement: (*counter.Counter).Decrement,
	ActionReset:     (*counter.Counter).Reset,
}

var topicConfig = bus.Topic{"config", "controller"}

func TopicValue() bus.Topic              { return bus.T("counter", "value") }
func TopicGet() bus.Topic                { return bus.T("counter", "get") }
func TopicPress(action string) bus.Topic { return bus.T("button", action, "press") }

// Binding attaches a level source to an action. Bindings earlier in the
// slice passed to New take priority.
type Binding struct {
	Button string // device id, for logs and payloads
	Action string
	Source button.Source
}

// Bindings returns the standard increment > decrement > reset order.
func Bindings(inc, dec, reset button.Source) []Binding {
	return []Binding{
		{Button: "btn_" + ActionIncrement, Action: ActionIncrement, Source: inc},
		{Button: "btn_" + ActionDecrement, Action: ActionDecrement, Source: dec},
		{Button: "btn_" + ActionReset, Action: ActionReset, Source: reset},
	}
}

// Frame sinks selectable by Options.Render and config/controller.
const (
	RenderASCII  = "ascii"
	RenderPixels = "pixels"
	RenderNone   = "none"
)

type Options struct {
	Interval time.Duration
	Conn     *bus.Connection // optional
	Log      zerolog.Logger
	ASCII    io.Writer              // optional frame sink
	Pixels   *display.PixelRenderer // optional
	Render   string                 // active sink; "" draws to every sink set
}

type watched struct {
	Binding
	det *button.Detector
	act func(*counter.Counter)
}

// loopState is everything the loop mutates between ticks.
type loopState struct {
	dirty   bool
	counter *counter.Counter
}

type Controller struct {
	buttons []watched
	disp    *display.Display
	st      loopState

	conn   *bus.Connection
	getSub *bus.Subscription
	log    zerolog.Logger
	ascii  io.Writer
	pixels *display.PixelRenderer
	mode   string

	interval atomic.Int64 // time.Duration
	pending  atomic.Int64 // requested by SetInterval
	ivCh     chan struct{}
	renders  atomic.Int64
}

// New wires a controller. The first Tick renders the starting value.
func New(c *counter.Counter, d *display.Display, bindings []Binding, opts Options) (*Controller, error) {
	const op = "controller.New"
	if c == nil || d == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: op, Msg: "counter and display are required"}
	}
	if opts.Interval <= 0 {
		return nil, &errcode.E{C: errcode.InvalidConfig, Op: op, Msg: fmt.Sprintf("interval must be positive, got %v", opts.Interval)}
	}
	ctl := &Controller{
		disp:   d,
		st:     loopState{dirty: true, counter: c},
		conn:   opts.Conn,
		log:    opts.Log.With().Str("svc", "controller").Logger(),
		ascii:  opts.ASCII,
		pixels: opts.Pixels,
		ivCh:   make(chan struct{}, 1),
	}
	if err := ctl.setRender(opts.Render); err != nil {
		return nil, err
	}
	if ctl.conn != nil {
		ctl.getSub = ctl.conn.Subscribe(TopicGet())
	}
	ctl.interval.Store(int64(opts.Interval))
	for _, b := range bindings {
		act, ok := actions[b.Action]
		if !ok {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: op, Msg: "unknown action " + b.Action}
		}
		if b.Source == nil {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: op, Msg: "nil source for " + b.Button}
		}
		ctl.buttons = append(ctl.buttons, watched{Binding: b, det: button.NewDetector(b.Source), act: act})
	}
	if d.Len() != c.Len() {
		ctl.log.Warn().Int("digits", c.Len()).Int("displays", d.Len()).Msg("digit and display counts differ")
	}
	return ctl, nil
}

// Tick polls the buttons in priority order, applies at most one press and
// renders if anything changed. Buttons after the one that fired are not
// sampled, so a simultaneous lower-priority press is seen next tick.
func (c *Controller) Tick() (rendered bool, err error) {
	for i := range c.buttons {
		b := &c.buttons[i]
		e, err := b.det.Poll()
		if err != nil {
			return false, &errcode.E{C: errcode.ReadFailed, Op: "controller.tick", Msg: b.Button, Err: err}
		}
		if e != button.EdgeRising {
			continue
		}
		b.act(c.st.counter)
		c.st.dirty = true
		c.log.Debug().Str("button", b.Button).Str("action", b.Action).Str("value", c.st.counter.String()).Msg("press")
		c.publish(TopicPress(b.Action), types.ButtonPress{Button: b.Button, Action: b.Action, TSms: timex.NowMs()}, false)
		break
	}
	if !c.st.dirty {
		c.answerPending()
		return false, nil
	}
	c.st.dirty = false
	err = c.render()
	c.answerPending()
	return true, err
}

// answerPending replies to every queued counter/get request.
func (c *Controller) answerPending() {
	if c.getSub == nil {
		return
	}
	for {
		select {
		case m, ok := <-c.getSub.Channel():
			if !ok {
				c.getSub = nil
				return
			}
			c.answer(m)
		default:
			return
		}
	}
}

func (c *Controller) answer(m *bus.Message) {
	if !m.CanReply() {
		return
	}
	c.conn.Reply(m, c.value(), false)
}

func (c *Controller) value() types.CounterValue {
	cnt := c.st.counter
	pats := cnt.Render()
	raw := make([]uint8, len(pats))
	for i, p := range pats {
		raw[i] = uint8(p)
	}
	return types.CounterValue{
		Value:    cnt.Value(),
		Text:     cnt.String(),
		Digits:   cnt.Digits(),
		Patterns: raw,
		TSms:     timex.NowMs(),
	}
}

// Close drops the counter/get subscription.
func (c *Controller) Close() {
	if c.getSub != nil {
		c.conn.Unsubscribe(c.getSub)
		c.getSub = nil
	}
}

func (c *Controller) render() error {
	cnt := c.st.counter
	c.disp.Show(cnt.Render())
	c.renders.Add(1)

	c.publish(TopicValue(), c.value(), true)
	c.log.Info().Str("value", cnt.String()).Msg("render")

	var errs []error
	if c.ascii != nil && (c.mode == "" || c.mode == RenderASCII) {
		if _, err := io.WriteString(c.ascii, display.ASCII(c.disp.Segments())); err != nil {
			errs = append(errs, err)
		}
	}
	if c.pixels != nil && (c.mode == "" || c.mode == RenderPixels) {
		if err := c.pixels.Render(c.disp.Segments()); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errcode.Wrap(errcode.Error, "controller.render", errors.Join(errs...))
	}
	return nil
}

func (c *Controller) publish(t bus.Topic, payload any, retained bool) {
	if c.conn == nil {
		return
	}
	c.conn.Publish(c.conn.NewMessage(t, payload, retained))
}

// Renders reports how many frames have been drawn.
func (c *Controller) Renders() int { return int(c.renders.Load()) }

// Counter returns the counter being driven.
func (c *Controller) Counter() *counter.Counter { return c.st.counter }

// Interval returns the configured polling period.
func (c *Controller) Interval() time.Duration { return time.Duration(c.interval.Load()) }

// SetInterval changes the polling period of a running loop. Non-positive
// values are ignored. Safe to call from any goroutine; the latest value wins.
func (c *Controller) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	c.pending.Store(int64(d))
	select {
	case c.ivCh <- struct{}{}:
	default:
	}
}

// Run ticks until ctx is cancelled (returning nil) or a button read fails.
// Render failures are logged and do not stop the loop. When a bus
// connection is set, retained config/controller updates retune the loop.
func (c *Controller) Run(ctx context.Context) error {
	var cfgCh <-chan *bus.Message
	if c.conn != nil {
		sub := c.conn.Subscribe(topicConfig)
		defer c.conn.Unsubscribe(sub)
		cfgCh = sub.Channel()
	}
	var getCh <-chan *bus.Message
	if c.getSub != nil {
		getCh = c.getSub.Channel()
	}

	tick := time.NewTicker(c.Interval())
	defer tick.Stop()

	c.log.Info().Dur("interval", c.Interval()).Int("buttons", len(c.buttons)).Msg("controller starting")
	if err := c.step(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			c.log.Info().Msg("controller stopping")
			return nil
		case <-tick.C:
			if err := c.step(); err != nil {
				return err
			}
		case <-c.ivCh:
			c.retune(tick, time.Duration(c.pending.Load()))
		case msg, ok := <-cfgCh:
			if !ok {
				cfgCh = nil
				continue
			}
			c.applyConfig(tick, msg.Payload)
		case msg, ok := <-getCh:
			if !ok {
				getCh = nil
				continue
			}
			c.answer(msg)
		}
	}
}

func (c *Controller) step() error {
	_, err := c.Tick()
	if err == nil {
		return nil
	}
	if errors.Is(err, errcode.ReadFailed) {
		c.log.Error().Err(err).Msg("button read failed")
		return err
	}
	c.log.Warn().Err(err).Msg("render failed")
	return nil
}

func (c *Controller) applyConfig(tick *time.Ticker, payload any) {
	cc, ok := payload.(types.ControllerConfig)
	if !ok {
		c.log.Warn().Type("payload", payload).Msg("ignoring config payload")
		return
	}
	if cc.PollIntervalMs > 0 {
		c.retune(tick, time.Duration(cc.PollIntervalMs)*time.Millisecond)
	}
	if cc.Render != "" && cc.Render != c.mode {
		if err := c.setRender(cc.Render); err != nil {
			c.log.Warn().Err(err).Msg("ignoring render mode")
			return
		}
		c.log.Info().Str("render", cc.Render).Msg("render mode changed")
	}
}

func (c *Controller) retune(tick *time.Ticker, d time.Duration) {
	if d == c.Interval() {
		return
	}
	c.interval.Store(int64(d))
	tick.Reset(d)
	c.log.Info().Dur("interval", d).Msg("interval changed")
}

func (c *Controller) setRender(mode string) error {
	switch mode {
	case "", RenderASCII, RenderPixels, RenderNone:
		c.mode = mode
		return nil
	}
	return &errcode.E{C: errcode.InvalidConfig, Op: "controller.render", Msg: "unknown render mode " + mode}
}
