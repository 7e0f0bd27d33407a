package document

import (
	"os"

	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
)

// LoadFile reads and decodes the document at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "cannot open document").
			WithContext("path", path).
			Build()
	}
	defer func() { _ = f.Close() }()

	doc, err := Decode(f)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	return doc, nil
}

// WriteFile encodes doc and writes it to path, replacing any existing file.
func WriteFile(path string, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "cannot write document").
			WithContext("path", path).
			Build()
	}
	return nil
}
