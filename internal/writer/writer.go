// Package writer replays a mixer's values onto the hardware in a fixed order.
package writer

import (
	"context"
	"log/slog"
	"strconv"

	"git.home.luguber.info/inful/scarlettcfg/internal/logfields"
	"git.home.luguber.info/inful/scarlettcfg/internal/mixer"
)

// ControlWriter sets a hardware control to the textual value amixer accepts.
type ControlWriter interface {
	Write(ctx context.Context, handle int, value string) error
}

// Instruction is a single control write.
type Instruction struct {
	Slot   string
	Handle int
	Value  string
}

// Stereo switch encodings. A muted pair is switched off.
const (
	switchOn  = "on,on"
	switchOff = "off,off"
)

// Plan lists the writes Save would perform, in order. Leaves that discovery
// never bound are left out.
func Plan(m *mixer.Mixer) []Instruction {
	var p planner

	p.enum("usb-sync-status", &m.USBSync)
	p.enum("sample-clock-source", &m.SampleClockSource)
	p.add("master-gain.volume", &m.Master.Volume, strconv.Itoa(m.Master.Volume.Get()))
	p.add("master-gain.muted", &m.Master.Muted, muteValue(m.Master.Muted.Get()))

	for row, entry := range m.MatrixEntries() {
		p.enum("matrix."+row+".source", &entry.Source)
		for label, volume := range entry.Mixes() {
			p.add("matrix."+row+".mixes."+label, volume, strconv.Itoa(volume.Get()))
		}
	}

	for channel, capture := range m.InputCaptures() {
		p.enum("input-captures."+channel+".source", &capture.Source)
	}

	for channel, gain := range m.OutputGains() {
		prefix := "output-gains." + channel
		p.add(prefix+".muted", &gain.Muted, muteValue(gain.Muted.Get()))
		v := strconv.Itoa(gain.Volume.Get())
		p.add(prefix+".volume", &gain.Volume, v+","+v)
		p.enum(prefix+".left-source", &gain.LeftSource)
		p.enum(prefix+".right-source", &gain.RightSource)
	}

	return p.out
}

// Save writes every bound value of m through w in the order given by Plan. The
// first failed write aborts the sequence; earlier writes are not undone.
func Save(ctx context.Context, m *mixer.Mixer, w ControlWriter) error {
	plan := Plan(m)
	for i, in := range plan {
		if err := w.Write(ctx, in.Handle, in.Value); err != nil {
			slog.Error("Control write failed",
				logfields.Slot(in.Slot),
				logfields.Handle(in.Handle),
				slog.Int("completed", i),
				logfields.Error(err))
			return err
		}
		slog.Debug("Wrote control", logfields.Slot(in.Slot), logfields.Handle(in.Handle), logfields.Value(in.Value))
	}
	slog.Info("Mixer state written", logfields.Count(len(plan)))
	return nil
}

type bindable interface {
	Handle() int
	Bound() bool
}

type planner struct {
	out []Instruction
}

func (p *planner) add(slot string, v bindable, value string) {
	if !v.Bound() {
		slog.Debug("Skipping undiscovered control", logfields.Slot(slot))
		return
	}
	p.out = append(p.out, Instruction{Slot: slot, Handle: v.Handle(), Value: value})
}

func (p *planner) enum(slot string, v *mixer.EnumeratedValue) {
	p.add(slot, v, v.Get())
}

func muteValue(muted bool) string {
	if muted {
		return switchOff
	}
	return switchOn
}
