package mixer

import "iter"

const (
	// MasterChannel keys the master OutputGain.
	MasterChannel = "Master"

	// DefaultUSBSyncControl is the USB sync status control of the Scarlett 18i20.
	DefaultUSBSyncControl = "Scarlett 18i20 USB-Sync"
)

// Option configures a Mixer.
type Option func(*Mixer)

// WithUSBSyncControl sets the product-specific name of the USB sync status control.
func WithUSBSyncControl(name string) Option {
	return func(m *Mixer) {
		if name != "" {
			m.usbSyncControl = name
		}
	}
}

// Mixer is the aggregate root of the mixer configuration tree.
type Mixer struct {
	InternalValidity ScalarValue[bool]
	SPDIFValidity    ScalarValue[bool]
	ADATValidity     ScalarValue[bool]

	USBSync           EnumeratedValue
	SampleClockSource EnumeratedValue
	// SampleClockSync is read-only on the hardware.
	SampleClockSync EnumeratedValue

	Master *OutputGain

	usbSyncControl string
	matrix         map[string]*MatrixEntry
	captures       map[string]*InputCapture
	outputs        map[string]*OutputGain
}

// New returns an empty, undiscovered Mixer.
func New(opts ...Option) *Mixer {
	m := &Mixer{
		Master:         &OutputGain{key: MasterChannel},
		usbSyncControl: DefaultUSBSyncControl,
		matrix:         make(map[string]*MatrixEntry),
		captures:       make(map[string]*InputCapture),
		outputs:        make(map[string]*OutputGain),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// USBSyncControl returns the control name classified as USB sync status.
func (m *Mixer) USBSyncControl() string { return m.usbSyncControl }

// MatrixEntries yields matrix rows in ascending row order.
func (m *Mixer) MatrixEntries() iter.Seq2[string, *MatrixEntry] { return sortedSeq(m.matrix) }

// InputCaptures yields input captures in ascending channel order.
func (m *Mixer) InputCaptures() iter.Seq2[string, *InputCapture] { return sortedSeq(m.captures) }

// OutputGains yields output channels in ascending channel order. The master
// output is not included.
func (m *Mixer) OutputGains() iter.Seq2[string, *OutputGain] { return sortedSeq(m.outputs) }

// MatrixEntry looks up a discovered row by any key form CanonicalKey accepts.
func (m *Mixer) MatrixEntry(key any) (*MatrixEntry, bool) {
	k, err := CanonicalKey(key)
	if err != nil {
		return nil, false
	}
	e, ok := m.matrix[k]
	return e, ok
}

// InputCapture looks up a discovered input capture channel.
func (m *Mixer) InputCapture(key any) (*InputCapture, bool) {
	k, err := CanonicalKey(key)
	if err != nil {
		return nil, false
	}
	c, ok := m.captures[k]
	return c, ok
}

// OutputGain looks up a discovered output channel.
func (m *Mixer) OutputGain(key any) (*OutputGain, bool) {
	k, err := CanonicalKey(key)
	if err != nil {
		return nil, false
	}
	g, ok := m.outputs[k]
	return g, ok
}

// Counts reports the number of discovered rows, captures and outputs.
func (m *Mixer) Counts() (rows, captures, outputs int) {
	return len(m.matrix), len(m.captures), len(m.outputs)
}

func (m *Mixer) matrixEntry(key string) *MatrixEntry {
	e, ok := m.matrix[key]
	if !ok {
		e = newMatrixEntry(key)
		m.matrix[key] = e
	}
	return e
}

func (m *Mixer) inputCapture(key string) *InputCapture {
	c, ok := m.captures[key]
	if !ok {
		c = &InputCapture{key: key}
		m.captures[key] = c
	}
	return c
}

func (m *Mixer) outputGain(key string) *OutputGain {
	g, ok := m.outputs[key]
	if !ok {
		g = &OutputGain{key: key}
		m.outputs[key] = g
	}
	return g
}
