package mixer

import (
	"slices"

	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
)

// NotAvailable is what EnumeratedValue.Get reports before discovery.
const NotAvailable = "n/a"

// Scalar constrains the raw types a ScalarValue may hold.
type Scalar interface {
	~bool | ~int
}

// ScalarValue holds a single boolean or integer control value together with the
// handle used to read and write it.
type ScalarValue[T Scalar] struct {
	value  T
	handle int
	bound  bool
}

// Get returns the stored value.
func (v *ScalarValue[T]) Get() T { return v.value }

// Set replaces the stored value.
func (v *ScalarValue[T]) Set(value T) { v.value = value }

// Handle returns the control handle, or 0 when the value was never discovered.
func (v *ScalarValue[T]) Handle() int { return v.handle }

// Bound reports whether discovery assigned a handle.
func (v *ScalarValue[T]) Bound() bool { return v.bound }

func (v *ScalarValue[T]) bind(handle int, value T) error {
	if v.bound {
		return errors.InternalError("control handle already assigned").
			WithContext("handle", v.handle).
			WithContext("new_handle", handle).
			Build()
	}
	v.handle = handle
	v.value = value
	v.bound = true
	return nil
}

// Item is one option of an enumerated control as reported by the hardware.
type Item struct {
	Index int
	Label string
}

// EnumeratedValue holds the selected option of an enumerated control. The option list
// is fixed at discovery; Set only moves the selection.
type EnumeratedValue struct {
	index  int
	items  []Item
	handle int
	bound  bool
}

// Get returns the label of the selected option, or NotAvailable before discovery.
func (v *EnumeratedValue) Get() string {
	for _, item := range v.items {
		if item.Index == v.index {
			return item.Label
		}
	}
	return NotAvailable
}

// Set selects the option labelled label.
func (v *EnumeratedValue) Set(label string) error {
	if len(v.items) == 0 {
		return errors.NotPopulated().WithContext("handle", v.handle).Build()
	}
	for _, item := range v.items {
		if item.Label == label {
			v.index = item.Index
			return nil
		}
	}
	return errors.InvalidEnumValue(label).WithContext("handle", v.handle).Build()
}

// Index returns the selected item index.
func (v *EnumeratedValue) Index() int { return v.index }

// Items returns a copy of the discovered option list.
func (v *EnumeratedValue) Items() []Item { return slices.Clone(v.items) }

// Labels returns the option labels in hardware order.
func (v *EnumeratedValue) Labels() []string {
	labels := make([]string, len(v.items))
	for i, item := range v.items {
		labels[i] = item.Label
	}
	return labels
}

// Handle returns the control handle, or 0 when the value was never discovered.
func (v *EnumeratedValue) Handle() int { return v.handle }

// Bound reports whether discovery assigned a handle.
func (v *EnumeratedValue) Bound() bool { return v.bound }

func (v *EnumeratedValue) bind(handle, index int, items []Item) error {
	if v.bound {
		return errors.InternalError("control handle already assigned").
			WithContext("handle", v.handle).
			WithContext("new_handle", handle).
			Build()
	}
	v.handle = handle
	v.index = index
	v.items = slices.Clone(items)
	v.bound = true
	return nil
}
