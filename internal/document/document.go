// Package document converts a discovered mixer to and from its YAML document form.
//
// Every field of Document is a pointer or slice so that an absent key can be told
// apart from a zero value when a document is applied.
package document

import (
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
)

// Document is the editable representation of the mixer state.
type Document struct {
	InternalValidity  *bool        `yaml:"internal-validity"`
	SPDIFValidity     *bool        `yaml:"spdif-validity"`
	ADATValidity      *bool        `yaml:"adat-validity"`
	USBSyncStatus     *string      `yaml:"usb-sync-status"`
	SampleClockSource *string      `yaml:"sample-clock-source"`
	SampleSyncStatus  *string      `yaml:"sample-sync-status"`
	MasterGain        *MasterGain  `yaml:"master-gain"`
	Matrix            []MatrixRow  `yaml:"matrix"`
	InputCaptures     []Capture    `yaml:"input-captures"`
	OutputGains       []OutputGain `yaml:"output-gains"`
}

// MasterGain is the master output level.
type MasterGain struct {
	Volume *int  `yaml:"volume"`
	Muted  *bool `yaml:"muted"`
}

// MatrixRow is one routing matrix row.
type MatrixRow struct {
	Number *Key    `yaml:"number"`
	Source *string `yaml:"source"`
	Mixes  []Mix   `yaml:"mixes"`
}

// Mix is the volume of a matrix row on one mix bus.
type Mix struct {
	Name   *string `yaml:"name"`
	Volume *int    `yaml:"volume"`
}

// Capture selects the source of one USB capture channel.
type Capture struct {
	Channel *Key    `yaml:"channel"`
	Source  *string `yaml:"source"`
}

// OutputGain is the configuration of one output channel pair. A null or absent
// source selects "Off".
type OutputGain struct {
	Channel     *Key    `yaml:"channel"`
	Volume      *int    `yaml:"volume"`
	Muted       *bool   `yaml:"muted"`
	LeftSource  *string `yaml:"left-source"`
	RightSource *string `yaml:"right-source"`
}

// Key is a row or channel identifier. Documents may spell it as an integer or a
// string; both are canonicalized when the document is applied.
type Key string

// UnmarshalYAML accepts any scalar node.
func (k *Key) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.NewError(errors.CategoryMissingKey, "row or channel key must be a scalar").
			WithContext("line", node.Line).
			Build()
	}
	*k = Key(node.Value)
	return nil
}

func ptr[T any](v T) *T { return &v }
