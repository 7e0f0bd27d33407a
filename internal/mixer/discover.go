package mixer

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
	"git.home.luguber.info/inful/scarlettcfg/internal/logfields"
)

// Control name fragments used by the Scarlett driver.
const (
	prefixMasterPlayback = "Master Playback"
	prefixMaster         = "Master"
	prefixMatrix         = "Matrix"
	prefixInputSource    = "Input Source"

	suffixSwitch      = "Switch"
	suffixVolume      = "Volume"
	suffixRoute       = "Input Playback Route"
	suffixMixVolume   = "Playback Volume"
	suffixSourceEnum  = "Source Playback Enum"
	inputSourceTokens = 5

	nameInternalValidity = "Internal Validity"
	nameSPDIFValidity    = "S/PDIF Validity"
	nameADATValidity     = "ADAT Validity"
	nameClockSource      = "Sample Clock Source"
	nameClockSync        = "Sample Clock Sync Status"
)

// Discover reads the control inventory from r and populates m. Controls are
// classified in ascending name order; the first unrecognised name or failed read
// aborts discovery.
func Discover(ctx context.Context, m *Mixer, r ControlReader) error {
	controls, err := r.ListControls(ctx)
	if err != nil {
		return err
	}
	controls = slices.Clone(controls)
	slices.SortStableFunc(controls, func(a, b Control) int { return cmp.Compare(a.Name, b.Name) })

	d := &discoverer{ctx: ctx, mixer: m, reader: r}
	for _, c := range controls {
		slot, err := d.classify(c)
		if err != nil {
			return err
		}
		slog.Debug("Classified control", logfields.Control(c.Name), logfields.Handle(c.Handle), logfields.Slot(slot))
	}

	rows, captures, outputs := m.Counts()
	slog.Info("Discovery completed",
		logfields.Count(len(controls)),
		slog.Int("matrix_rows", rows),
		slog.Int("input_captures", captures),
		slog.Int("output_gains", outputs))
	return nil
}

type discoverer struct {
	ctx    context.Context
	mixer  *Mixer
	reader ControlReader
}

// classify assigns c to its slot and returns a short description of the slot.
func (d *discoverer) classify(c Control) (string, error) {
	name := c.Name
	switch {
	case strings.HasPrefix(name, prefixMasterPlayback):
		return d.masterPlayback(c)
	case strings.HasPrefix(name, prefixMaster):
		return d.outputGain(c)
	case strings.HasPrefix(name, prefixMatrix):
		return d.matrix(c)
	case strings.HasPrefix(name, prefixInputSource):
		return d.inputSource(c)
	}

	m := d.mixer
	switch name {
	case nameInternalValidity:
		return "internal-validity", d.boolean(&m.InternalValidity, c, false)
	case nameSPDIFValidity:
		return "spdif-validity", d.boolean(&m.SPDIFValidity, c, false)
	case nameADATValidity:
		return "adat-validity", d.boolean(&m.ADATValidity, c, false)
	case m.usbSyncControl:
		return "usb-sync-status", d.enumerated(&m.USBSync, c)
	case nameClockSource:
		return "sample-clock-source", d.enumerated(&m.SampleClockSource, c)
	case nameClockSync:
		return "sample-sync-status", d.enumerated(&m.SampleClockSync, c)
	}
	return "", unknown(c)
}

func (d *discoverer) masterPlayback(c Control) (string, error) {
	switch {
	case strings.HasSuffix(c.Name, suffixSwitch):
		return "master.muted", d.boolean(&d.mixer.Master.Muted, c, true)
	case strings.HasSuffix(c.Name, suffixVolume):
		return "master.volume", d.integer(&d.mixer.Master.Volume, c)
	}
	return "", unknown(c)
}

// outputGain handles "Master <n>[L|R] <rest>".
func (d *discoverer) outputGain(c Control) (string, error) {
	fields := strings.SplitN(c.Name, " ", 3)
	if len(fields) != 3 {
		return "", unknown(c)
	}
	channel, rest := fields[1], fields[2]

	var side byte
	if n := len(channel); n > 0 && (channel[n-1] == 'L' || channel[n-1] == 'R') {
		channel, side = channel[:n-1], channel[n-1]
	}
	key, err := CanonicalKey(channel)
	if err != nil {
		return "", unknownWithCause(c, err)
	}

	if side != 0 {
		if !strings.HasSuffix(rest, suffixSourceEnum) {
			return "", unknown(c)
		}
		gain := d.mixer.outputGain(key)
		if side == 'L' {
			return "output-gains." + key + ".left-source", d.enumerated(&gain.LeftSource, c)
		}
		return "output-gains." + key + ".right-source", d.enumerated(&gain.RightSource, c)
	}

	switch {
	case strings.HasSuffix(rest, suffixSwitch):
		return "output-gains." + key + ".muted", d.boolean(&d.mixer.outputGain(key).Muted, c, true)
	case strings.HasSuffix(rest, suffixVolume):
		return "output-gains." + key + ".volume", d.integer(&d.mixer.outputGain(key).Volume, c)
	}
	return "", unknown(c)
}

// matrix handles "Matrix <row> <rest>".
func (d *discoverer) matrix(c Control) (string, error) {
	fields := strings.SplitN(c.Name, " ", 3)
	if len(fields) != 3 {
		return "", unknown(c)
	}
	key, err := CanonicalKey(fields[1])
	if err != nil {
		return "", unknownWithCause(c, err)
	}
	rest := fields[2]

	switch {
	case strings.HasSuffix(rest, suffixRoute):
		return "matrix." + key + ".source", d.enumerated(&d.mixer.matrixEntry(key).Source, c)
	case strings.HasSuffix(rest, suffixMixVolume):
		// "Mix <label> Playback Volume"
		parts := strings.SplitN(rest, " ", 3)
		if len(parts) != 3 || parts[1] == "" {
			return "", unknown(c)
		}
		label := parts[1]
		return "matrix." + key + ".mixes." + label, d.integer(d.mixer.matrixEntry(key).mix(label), c)
	}
	return "", unknown(c)
}

// inputSource handles "Input Source <n> Capture Route".
func (d *discoverer) inputSource(c Control) (string, error) {
	fields := strings.Split(c.Name, " ")
	if len(fields) != inputSourceTokens {
		return "", unknown(c)
	}
	key, err := CanonicalKey(fields[2])
	if err != nil {
		return "", unknownWithCause(c, err)
	}
	return "input-captures." + key + ".source", d.enumerated(&d.mixer.inputCapture(key).Source, c)
}

// boolean reads a switch. ALSA switches are "on" when audio passes, so mute
// slots store the inverse.
func (d *discoverer) boolean(v *ScalarValue[bool], c Control, mute bool) error {
	on, err := d.reader.ReadBoolean(d.ctx, c.Handle)
	if err != nil {
		return err
	}
	if mute {
		on = !on
	}
	return v.bind(c.Handle, on)
}

func (d *discoverer) integer(v *ScalarValue[int], c Control) error {
	n, err := d.reader.ReadInteger(d.ctx, c.Handle)
	if err != nil {
		return err
	}
	return v.bind(c.Handle, n)
}

func (d *discoverer) enumerated(v *EnumeratedValue, c Control) error {
	index, items, err := d.reader.ReadEnumerated(d.ctx, c.Handle)
	if err != nil {
		return err
	}
	return v.bind(c.Handle, index, items)
}

func unknown(c Control) error {
	return errors.UnknownControl(c.Name).WithContext("handle", c.Handle).Build()
}

func unknownWithCause(c Control, cause error) error {
	return errors.UnknownControl(c.Name).WithContext("handle", c.Handle).WithCause(cause).Build()
}
