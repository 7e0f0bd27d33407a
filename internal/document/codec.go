package document

import (
	"bytes"
	stderrors "errors"
	"io"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
	"git.home.luguber.info/inful/scarlettcfg/internal/mixer"
)

// FromMixer captures the current state of m. The mixer is not modified.
func FromMixer(m *mixer.Mixer) *Document {
	doc := &Document{
		InternalValidity:  ptr(m.InternalValidity.Get()),
		SPDIFValidity:     ptr(m.SPDIFValidity.Get()),
		ADATValidity:      ptr(m.ADATValidity.Get()),
		USBSyncStatus:     ptr(m.USBSync.Get()),
		SampleClockSource: ptr(m.SampleClockSource.Get()),
		SampleSyncStatus:  ptr(m.SampleClockSync.Get()),
		MasterGain: &MasterGain{
			Volume: ptr(m.Master.Volume.Get()),
			Muted:  ptr(m.Master.Muted.Get()),
		},
		Matrix:        []MatrixRow{},
		InputCaptures: []Capture{},
		OutputGains:   []OutputGain{},
	}

	for key, entry := range m.MatrixEntries() {
		row := MatrixRow{
			Number: ptr(Key(key)),
			Source: ptr(entry.Source.Get()),
			Mixes:  []Mix{},
		}
		for label, volume := range entry.Mixes() {
			row.Mixes = append(row.Mixes, Mix{Name: ptr(label), Volume: ptr(volume.Get())})
		}
		doc.Matrix = append(doc.Matrix, row)
	}

	for key, capture := range m.InputCaptures() {
		doc.InputCaptures = append(doc.InputCaptures, Capture{
			Channel: ptr(Key(key)),
			Source:  ptr(capture.Source.Get()),
		})
	}

	for key, gain := range m.OutputGains() {
		doc.OutputGains = append(doc.OutputGains, OutputGain{
			Channel:     ptr(Key(key)),
			Volume:      ptr(gain.Volume.Get()),
			Muted:       ptr(gain.Muted.Get()),
			LeftSource:  ptr(gain.LeftSource.Get()),
			RightSource: ptr(gain.RightSource.Get()),
		})
	}

	return doc
}

// Encode writes doc as YAML with two-space indentation.
func Encode(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		_ = enc.Close()
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode document").Build()
	}
	return enc.Close()
}

// Marshal returns doc as YAML bytes.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a single YAML document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewError(errors.CategoryMissingKey, "document is empty").Build()
		}
		if errors.IsClassified(err) {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryMissingKey, "malformed document").Build()
	}
	return &doc, nil
}

// Unmarshal parses YAML bytes into a Document.
func Unmarshal(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}
