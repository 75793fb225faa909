// Package hal builds GPIO-backed devices from a HALConfig and hands them to
// the controller as button sources and segment maps.
package hal

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"segcounter-go/bus"
	"segcounter-go/button"
	"segcounter-go/display"
	"segcounter-go/errcode"
	"segcounter-go/services/hal/internal/core"
	"segcounter-go/types"
	"segcounter-go/x/timex"

	// Register device builders.
	_ "segcounter-go/services/hal/devices/gpio_button"
	_ "segcounter-go/services/hal/devices/seven_segment"
)

// Topics published by the HAL (all retained).
func TopicState() bus.Topic            { return bus.T("hal", "state") }
func TopicInfo(devID string) bus.Topic { return bus.T("hal", "dev", devID, "info") }

type HAL struct {
	pins *core.PinTable
	conn *bus.Connection // optional
	log  zerolog.Logger

	dev map[string]core.Device
}

// New returns a HAL over pf. conn may be nil.
func New(pf PinFactory, conn *bus.Connection, log zerolog.Logger) *HAL {
	return &HAL{
		pins: core.NewPinTable(pf),
		conn: conn,
		log:  log.With().Str("svc", "hal").Logger(),
		dev:  map[string]core.Device{},
	}
}

// Apply builds and initialises every device in cfg. Devices whose ID
// already exists are left alone, so Apply is additive. A failing device is
// skipped and its error is included in the joined result.
func (h *HAL) Apply(ctx context.Context, cfg types.HALConfig) error {
	var errs []error
	for _, dc := range cfg.Devices {
		if _, exists := h.dev[dc.ID]; exists {
			continue
		}
		if err := h.addDevice(ctx, dc); err != nil {
			h.log.Error().Str("id", dc.ID).Str("type", dc.Type).Err(err).Msg("device setup failed")
			errs = append(errs, err)
		}
	}
	level, status := "ready", ""
	if len(errs) > 0 {
		level, status = "degraded", string(errcode.Of(errs[0]))
	}
	h.publish(TopicState(), types.HALState{Level: level, Status: status, TSms: timex.NowMs()})
	return errors.Join(errs...)
}

func (h *HAL) addDevice(ctx context.Context, dc types.HALDevice) error {
	b, ok := core.LookupBuilder(dc.Type)
	if !ok {
		return &errcode.E{C: errcode.Unsupported, Op: "build", Msg: "no builder for type " + dc.Type + " (id " + dc.ID + ")"}
	}
	dev, err := b.Build(ctx, core.BuilderInput{
		ID:     dc.ID,
		Type:   dc.Type,
		Params: dc.Params,
		Res:    core.Resources{Pins: h.pins},
	})
	if err != nil {
		return &errcode.E{C: errcode.Of(err), Op: "build " + dc.ID, Err: err}
	}
	if err := dev.Init(ctx); err != nil {
		_ = dev.Close()
		return &errcode.E{C: errcode.Of(err), Op: "init " + dc.ID, Err: err}
	}
	h.dev[dev.ID()] = dev
	h.publish(TopicInfo(dev.ID()), dev.Info())
	h.log.Debug().Str("id", dev.ID()).Str("type", dc.Type).Msg("device ready")
	return nil
}

// Button returns the press source for a gpio_button device.
func (h *HAL) Button(id string) (button.Source, error) {
	d, ok := h.dev[id]
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownDevice, Op: "button", Msg: id}
	}
	src, ok := d.(button.Source)
	if !ok {
		return nil, &errcode.E{C: errcode.Unsupported, Op: "button", Msg: id + " is not a button"}
	}
	return src, nil
}

// Digit returns the segment map for a seven_segment device.
func (h *HAL) Digit(id string) (*display.SegmentMap, error) {
	d, ok := h.dev[id]
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownDevice, Op: "digit", Msg: id}
	}
	sd, ok := d.(interface{ SegmentMap() *display.SegmentMap })
	if !ok || sd.SegmentMap() == nil {
		return nil, &errcode.E{C: errcode.Unsupported, Op: "digit", Msg: id + " is not a seven_segment digit"}
	}
	return sd.SegmentMap(), nil
}

// Devices lists configured device IDs in sorted order.
func (h *HAL) Devices() []string {
	out := make([]string, 0, len(h.dev))
	for id := range h.dev {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Close releases every device and publishes the stopped state.
func (h *HAL) Close() error {
	var errs []error
	for id, d := range h.dev {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(h.dev, id)
	}
	h.publish(TopicState(), types.HALState{Level: "stopped", TSms: timex.NowMs()})
	return errors.Join(errs...)
}

func (h *HAL) publish(t bus.Topic, payload any) {
	if h.conn == nil {
		return
	}
	h.conn.Publish(h.conn.NewMessage(t, payload, true))
}

// BuilderTypes lists the device types Apply understands.
func BuilderTypes() []string { return core.BuilderTypes() }
