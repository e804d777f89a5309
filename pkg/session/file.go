package session

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/flavor"
)

// Open reads a document from path and opens it with the flavor it declares.
func Open(path string, opts Options) (*Session, error) {
	doc, err := document.ImportJSON(path)
	if err != nil {
		return nil, err
	}
	f, err := flavor.Lookup(doc.Flavor)
	if err != nil {
		return nil, err
	}
	return New(f, doc, opts)
}

// Save writes the current document to path. The file is replaced atomically
// so readers never see a partial document.
func (s *Session) Save(path string) error {
	doc := s.Document()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".modelgraph-*.json")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save document")
	}
	defer os.Remove(tmp.Name())

	if err := document.WriteJSON(doc, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save document")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save document to %s", path)
	}
	s.logger.Debug("document saved", "path", path)
	return nil
}
