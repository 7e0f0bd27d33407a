// Package mixertest provides an in-memory control surface for tests that need a
// mixer without hardware.
package mixertest

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"sync"

	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
	"git.home.luguber.info/inful/scarlettcfg/internal/mixer"
)

// Kind is the hardware type of a fake control.
type Kind string

const (
	Boolean    Kind = "BOOLEAN"
	Integer    Kind = "INTEGER"
	Enumerated Kind = "ENUMERATED"
)

// Control is one fake hardware control.
type Control struct {
	Name   string
	Handle int
	Kind   Kind
	On     bool
	Value  int
	Index  int
	Items  []mixer.Item
}

// Write is one recorded control write.
type Write struct {
	Handle int
	Value  string
}

// Surface is a fake control surface. It satisfies mixer.ControlReader and the
// writer's ControlWriter and records every write in call order.
type Surface struct {
	mu       sync.Mutex
	controls map[int]*Control
	next     int
	writes   []Write
	reads    int

	// ListErr is returned from ListControls when set.
	ListErr error
	// ReadErr maps a handle to the error its read returns.
	ReadErr map[int]error
	// WriteErr maps a handle to the error its write returns.
	WriteErr map[int]error
}

// NewSurface returns an empty surface. Handles are assigned from 1 upward.
func NewSurface() *Surface {
	return &Surface{
		controls: make(map[int]*Control),
		next:     1,
		ReadErr:  make(map[int]error),
		WriteErr: make(map[int]error),
	}
}

// AddBoolean adds a switch control and returns its handle.
func (s *Surface) AddBoolean(name string, on bool) int {
	return s.add(&Control{Name: name, Kind: Boolean, On: on})
}

// AddInteger adds an integer control and returns its handle.
func (s *Surface) AddInteger(name string, value int) int {
	return s.add(&Control{Name: name, Kind: Integer, Value: value})
}

// AddEnumerated adds an enumerated control with items numbered from 0 and
// returns its handle.
func (s *Surface) AddEnumerated(name string, index int, labels ...string) int {
	items := make([]mixer.Item, len(labels))
	for i, label := range labels {
		items[i] = mixer.Item{Index: i, Label: label}
	}
	return s.add(&Control{Name: name, Kind: Enumerated, Index: index, Items: items})
}

func (s *Surface) add(c *Control) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Handle = s.next
	s.next++
	s.controls[c.Handle] = c
	return c.Handle
}

// Handle returns the handle of the named control.
func (s *Surface) Handle(name string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for h, c := range s.controls {
		if c.Name == name {
			return h, true
		}
	}
	return 0, false
}

// Writes returns the recorded writes in call order.
func (s *Surface) Writes() []Write {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.writes)
}

// Reads returns the number of successful value reads.
func (s *Surface) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// ListControls returns the controls in handle order.
func (s *Surface) ListControls(context.Context) ([]mixer.Control, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]mixer.Control, 0, len(s.controls))
	for _, h := range slices.Sorted(maps.Keys(s.controls)) {
		out = append(out, mixer.Control{Name: s.controls[h].Name, Handle: h})
	}
	return out, nil
}

// ReadBoolean returns the switch state of handle.
func (s *Surface) ReadBoolean(_ context.Context, handle int) (bool, error) {
	c, err := s.lookup(handle, Boolean)
	if err != nil {
		return false, err
	}
	return c.On, nil
}

// ReadInteger returns the value of handle.
func (s *Surface) ReadInteger(_ context.Context, handle int) (int, error) {
	c, err := s.lookup(handle, Integer)
	if err != nil {
		return 0, err
	}
	return c.Value, nil
}

// ReadEnumerated returns the selected index and item list of handle.
func (s *Surface) ReadEnumerated(_ context.Context, handle int) (int, []mixer.Item, error) {
	c, err := s.lookup(handle, Enumerated)
	if err != nil {
		return 0, nil, err
	}
	return c.Index, slices.Clone(c.Items), nil
}

// Write records a write. The stored control state is not changed.
func (s *Surface) Write(_ context.Context, handle int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.WriteErr[handle]; err != nil {
		return err
	}
	if _, ok := s.controls[handle]; !ok {
		return errors.TransportError("no such control").WithContext("handle", handle).Build()
	}
	s.writes = append(s.writes, Write{Handle: handle, Value: value})
	return nil
}

func (s *Surface) lookup(handle int, want Kind) (*Control, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ReadErr[handle]; err != nil {
		return nil, err
	}
	c, ok := s.controls[handle]
	if !ok {
		return nil, errors.TransportError("no such control").WithContext("handle", handle).Build()
	}
	if c.Kind != want {
		return nil, errors.TypeMismatch(handle, string(want), string(c.Kind)).Build()
	}
	s.reads++
	return c, nil
}

// Sources is the routing source list of a small Scarlett interface.
var Sources = []string{"Off", "PCM 1", "PCM 2", "PCM 3", "PCM 4", "Analog 1", "Analog 2", "Mix A", "Mix B"}

// Scarlett returns a surface populated with a representative subset of the
// Scarlett 18i20 control set: master output, two output pairs, two matrix rows with
// two mixes each, two capture routes and the clock and validity controls.
func Scarlett() *Surface {
	s := NewSurface()

	s.AddBoolean("Master Playback Switch", true)
	s.AddInteger("Master Playback Volume", 100)

	for i := 1; i <= 2; i++ {
		n := strconv.Itoa(i)
		s.AddBoolean("Master "+n+" (Monitor) Playback Switch", i == 1)
		s.AddInteger("Master "+n+" (Monitor) Playback Volume", 80+i)
		s.AddEnumerated("Master "+n+"L (Monitor) Source Playback Enum", 2*i-1, Sources...)
		s.AddEnumerated("Master "+n+"R (Monitor) Source Playback Enum", 2*i, Sources...)
	}

	for i := 1; i <= 2; i++ {
		row := "0" + strconv.Itoa(i)
		s.AddEnumerated("Matrix "+row+" Input Playback Route", 4+i, Sources...)
		s.AddInteger("Matrix "+row+" Mix A Playback Volume", 50+i)
		s.AddInteger("Matrix "+row+" Mix B Playback Volume", 60+i)
	}

	s.AddEnumerated("Input Source 01 Capture Route", 5, Sources...)
	s.AddEnumerated("Input Source 02 Capture Route", 6, Sources...)

	s.AddBoolean("Internal Validity", true)
	s.AddBoolean("S/PDIF Validity", false)
	s.AddBoolean("ADAT Validity", false)
	s.AddEnumerated(mixer.DefaultUSBSyncControl, 1, "No Lock", "Locked")
	s.AddEnumerated("Sample Clock Source", 0, "Internal", "SPDIF", "ADAT")
	s.AddEnumerated("Sample Clock Sync Status", 1, "No Lock", "Locked")

	return s
}
