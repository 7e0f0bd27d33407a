package mixer

import (
	"iter"
	"maps"
	"slices"
)

// MatrixEntry is one row of the internal routing matrix: an input source plus a
// volume per mix bus.
type MatrixEntry struct {
	key    string
	Source EnumeratedValue
	mixes  map[string]*ScalarValue[int]
}

func newMatrixEntry(key string) *MatrixEntry {
	return &MatrixEntry{key: key, mixes: make(map[string]*ScalarValue[int])}
}

// Key returns the canonical row key.
func (e *MatrixEntry) Key() string { return e.key }

// Mixes yields (label, volume) pairs ordered by label. The sequence can be ranged
// over any number of times.
func (e *MatrixEntry) Mixes() iter.Seq2[string, *ScalarValue[int]] {
	return sortedSeq(e.mixes)
}

// Mix returns the volume for a mix bus label.
func (e *MatrixEntry) Mix(label string) (*ScalarValue[int], bool) {
	v, ok := e.mixes[label]
	return v, ok
}

func (e *MatrixEntry) mix(label string) *ScalarValue[int] {
	v, ok := e.mixes[label]
	if !ok {
		v = &ScalarValue[int]{}
		e.mixes[label] = v
	}
	return v
}

// OutputGain is the configuration of one output channel (or the master output).
type OutputGain struct {
	key         string
	Muted       ScalarValue[bool]
	Volume      ScalarValue[int]
	LeftSource  EnumeratedValue
	RightSource EnumeratedValue
}

// Key returns the canonical channel key, or MasterChannel.
func (g *OutputGain) Key() string { return g.key }

// InputCapture selects the source feeding one USB capture channel.
type InputCapture struct {
	key    string
	Source EnumeratedValue
}

// Key returns the canonical channel key.
func (c *InputCapture) Key() string { return c.key }

func sortedSeq[V any](m map[string]V) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}
