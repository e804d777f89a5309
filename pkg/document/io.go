package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/modelgraph/pkg/errors"
)

// ReadJSON decodes a document from r.
//
// ReadJSON only checks what the engine cannot work without: a flavor and
// non-empty element ids. Dangling references, duplicate shapes and
// topologically invalid connections are accepted; documents produced by
// external tools must still render.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks what every reader of a document relies on: a well-formed
// flavor name and non-empty element ids.
func (d *Document) Validate() error {
	if err := errors.ValidateFlavorName(d.Flavor); err != nil {
		return err
	}
	var invalid error
	Walk(d.Elements, func(e *Element) bool {
		if invalid != nil {
			return false
		}
		if err := errors.ValidateElementID(e.ID); err != nil {
			invalid = errors.Wrap(errors.ErrCodeInvalidDocument, err, "element of kind %q", e.Kind)
		}
		return invalid == nil
	})
	return invalid
}

// ImportJSON reads the document file at path.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes doc as indented JSON to w.
func WriteJSON(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to the file at path, replacing it.
func ExportJSON(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
