package document

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
	"git.home.luguber.info/inful/scarlettcfg/internal/logfields"
	"git.home.luguber.info/inful/scarlettcfg/internal/mixer"
)

// DefaultSource is selected for an output side whose source is absent or null.
const DefaultSource = "Off"

// Apply copies the leaf values of doc onto the already discovered mixer m.
// Handles and item lists are never touched. Rows, channels and mixes must have
// been discovered; sample-sync-status is read-only and ignored.
//
// Apply stops at the first error, leaving earlier values applied.
func Apply(m *mixer.Mixer, doc *Document) error {
	if doc == nil {
		return errors.MissingKey("document").Build()
	}

	if err := setBool(&m.InternalValidity, doc.InternalValidity, "internal-validity"); err != nil {
		return err
	}
	if err := setBool(&m.SPDIFValidity, doc.SPDIFValidity, "spdif-validity"); err != nil {
		return err
	}
	if err := setBool(&m.ADATValidity, doc.ADATValidity, "adat-validity"); err != nil {
		return err
	}
	if err := setEnum(&m.USBSync, doc.USBSyncStatus, "usb-sync-status"); err != nil {
		return err
	}
	if err := setEnum(&m.SampleClockSource, doc.SampleClockSource, "sample-clock-source"); err != nil {
		return err
	}

	if doc.MasterGain == nil {
		return errors.MissingKey("master-gain").Build()
	}
	if err := setInt(&m.Master.Volume, doc.MasterGain.Volume, "master-gain.volume"); err != nil {
		return err
	}
	if err := setBool(&m.Master.Muted, doc.MasterGain.Muted, "master-gain.muted"); err != nil {
		return err
	}

	if err := applyMatrix(m, doc.Matrix); err != nil {
		return err
	}
	if err := applyCaptures(m, doc.InputCaptures); err != nil {
		return err
	}
	if err := applyOutputs(m, doc.OutputGains); err != nil {
		return err
	}

	slog.Debug("Document applied",
		slog.Int("matrix_rows", len(doc.Matrix)),
		slog.Int("input_captures", len(doc.InputCaptures)),
		slog.Int("output_gains", len(doc.OutputGains)))
	return nil
}

func applyMatrix(m *mixer.Mixer, rows []MatrixRow) error {
	if rows == nil {
		return errors.MissingKey("matrix").Build()
	}
	for i, doc := range rows {
		path := fmt.Sprintf("matrix[%d]", i)
		key, err := canonical(doc.Number, path+".number", "row")
		if err != nil {
			return err
		}
		entry, ok := m.MatrixEntry(key)
		if !ok {
			return errors.UnknownKey("row", key).WithContext("key", path).Build()
		}
		if err := setEnum(&entry.Source, doc.Source, path+".source"); err != nil {
			return err
		}
		if doc.Mixes == nil {
			return errors.MissingKey(path + ".mixes").Build()
		}
		for j, mix := range doc.Mixes {
			mixPath := fmt.Sprintf("%s.mixes[%d]", path, j)
			if mix.Name == nil {
				return errors.MissingKey(mixPath + ".name").Build()
			}
			volume, ok := entry.Mix(*mix.Name)
			if !ok {
				return errors.UnknownKey("mix", *mix.Name).WithContext("row", key).Build()
			}
			if err := setInt(volume, mix.Volume, mixPath+".volume"); err != nil {
				return err
			}
		}
		slog.Debug("Applied matrix row", logfields.Row(key), logfields.Count(len(doc.Mixes)))
	}
	return nil
}

func applyCaptures(m *mixer.Mixer, captures []Capture) error {
	if captures == nil {
		return errors.MissingKey("input-captures").Build()
	}
	for i, doc := range captures {
		path := fmt.Sprintf("input-captures[%d]", i)
		key, err := canonical(doc.Channel, path+".channel", "channel")
		if err != nil {
			return err
		}
		capture, ok := m.InputCapture(key)
		if !ok {
			return errors.UnknownKey("channel", key).WithContext("key", path).Build()
		}
		if err := setEnum(&capture.Source, doc.Source, path+".source"); err != nil {
			return err
		}
	}
	return nil
}

func applyOutputs(m *mixer.Mixer, outputs []OutputGain) error {
	if outputs == nil {
		return errors.MissingKey("output-gains").Build()
	}
	for i, doc := range outputs {
		path := fmt.Sprintf("output-gains[%d]", i)
		key, err := canonical(doc.Channel, path+".channel", "channel")
		if err != nil {
			return err
		}
		gain, ok := m.OutputGain(key)
		if !ok {
			return errors.UnknownKey("channel", key).WithContext("key", path).Build()
		}
		if err := setInt(&gain.Volume, doc.Volume, path+".volume"); err != nil {
			return err
		}
		if err := setBool(&gain.Muted, doc.Muted, path+".muted"); err != nil {
			return err
		}
		if err := setEnum(&gain.LeftSource, sourceOrOff(doc.LeftSource), path+".left-source"); err != nil {
			return err
		}
		if err := setEnum(&gain.RightSource, sourceOrOff(doc.RightSource), path+".right-source"); err != nil {
			return err
		}
		slog.Debug("Applied output gain", logfields.Channel(key))
	}
	return nil
}

func canonical(k *Key, path, kind string) (string, error) {
	if k == nil {
		return "", errors.MissingKey(path).Build()
	}
	key, err := mixer.CanonicalKey(string(*k))
	if err != nil {
		return "", errors.UnknownKey(kind, string(*k)).WithContext("key", path).WithCause(err).Build()
	}
	return key, nil
}

func sourceOrOff(s *string) *string {
	if s == nil || *s == "" {
		return ptr(DefaultSource)
	}
	return s
}

func setBool(v *mixer.ScalarValue[bool], b *bool, path string) error {
	if b == nil {
		return errors.MissingKey(path).Build()
	}
	v.Set(*b)
	return nil
}

func setInt(v *mixer.ScalarValue[int], n *int, path string) error {
	if n == nil {
		return errors.MissingKey(path).Build()
	}
	v.Set(*n)
	return nil
}

func setEnum(v *mixer.EnumeratedValue, label *string, path string) error {
	if label == nil {
		return errors.MissingKey(path).Build()
	}
	if err := v.Set(*label); err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return ce.WithContext("key", path)
		}
		return err
	}
	return nil
}
