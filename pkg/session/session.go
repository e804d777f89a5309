// Package session serializes the edits of one open document.
//
// A Session owns the current document, the interaction status and the
// memoizing compiler. Every edit clones the document, applies the change to
// the clone and swaps the pointer in, so render graphs handed out earlier stay
// valid and the compiler sees a new identity:
//
//	s, err := session.New(dmn.Flavor, doc, session.Options{})
//	if err != nil {
//	    return err
//	}
//	data := s.Data()
//	err = s.Resize(mutation.ResizeChange{ElementID: "ds", Dimension: dim})
//
// A failed edit leaves the session on the previous document.
package session

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/mutation"
	"github.com/matzehuels/modelgraph/pkg/snapgrid"
	"github.com/matzehuels/modelgraph/pkg/status"
)

// Options configure a session.
type Options struct {
	Grid snapgrid.Grid
	// Page is the diagram page edits and render graphs refer to.
	Page int
	// MemoSize bounds the compiler cache; see diagram.NewCompiler.
	MemoSize int
	Logger   *log.Logger
}

// Session is one open document. It is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	flavor   *diagram.Flavor
	doc      *document.Document
	grid     *snapgrid.Grid
	page     int
	store    *status.Store
	compiler *diagram.Compiler
	mutator  *mutation.Mutator
	logger   *log.Logger
}

// New opens doc with flavor f. A document declaring another flavor is
// rejected. A zero Options.Grid disables snapping.
func New(f *diagram.Flavor, doc *document.Document, opts Options) (*Session, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document is nil")
	}
	if doc.Flavor != "" && doc.Flavor != f.Name {
		return nil, errors.New(errors.ErrCodeInvalidFlavor, "document is %s, session is %s", doc.Flavor, f.Name)
	}
	if err := opts.Grid.Validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidatePage(opts.Page, max(len(doc.Diagrams), 1)); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	grid := opts.Grid
	return &Session{
		flavor:   f,
		doc:      doc,
		grid:     &grid,
		page:     opts.Page,
		store:    status.NewStore(),
		compiler: diagram.NewCompiler(f, logger, opts.MemoSize),
		mutator:  mutation.New(f, grid, logger),
		logger:   logger,
	}, nil
}

// Flavor returns the session's flavor.
func (s *Session) Flavor() *diagram.Flavor { return s.flavor }

// Document returns the current document. It must not be modified.
func (s *Session) Document() *document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Page returns the current page index.
func (s *Session) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// SetPage switches the page render graphs and edits refer to.
func (s *Session) SetPage(page int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := errors.ValidatePage(page, len(s.doc.Diagrams)); err != nil {
		return err
	}
	s.page = page
	return nil
}

// Grid returns the snap grid.
func (s *Session) Grid() snapgrid.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.grid
}

// Status returns the status store. Status changes take effect on the next
// call to Data.
func (s *Session) Status() *status.Store { return s.store }

// Data returns the render graph of the current page. Calls between edits
// return the same *Data.
func (s *Session) Data() *diagram.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data()
}

func (s *Session) data() *diagram.Data {
	return s.compiler.Compile(s.doc, s.store.Current(), s.grid, s.page)
}

// Edit applies fn to a copy of the document and makes the copy current when
// fn succeeds.
func (s *Session) Edit(fn func(doc *document.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edit(fn)
}

func (s *Session) edit(fn func(doc *document.Document) error) error {
	next := s.doc.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

// Resize applies resize changes as one edit. Changes addressing another page
// than the current one are rejected.
func (s *Session) Resize(changes ...mutation.ResizeChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range changes {
		if changes[i].Page != s.page {
			return errors.New(errors.ErrCodeInvalidInput, "resize of %s addresses page %d, session is on page %d",
				changes[i].ElementID, changes[i].Page, s.page)
		}
	}
	return s.edit(func(doc *document.Document) error {
		return s.mutator.ResizeNodes(doc, changes...)
	})
}

// ResizeChangeFor builds the resize of node id to dim on the current page,
// collecting the page indexes of the edges attached to it.
func (s *Session) ResizeChangeFor(id string, dim document.Dimension) (mutation.ResizeChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.data()
	n, ok := data.NodesByID[id]
	if !ok {
		return mutation.ResizeChange{}, errors.New(errors.ErrCodeNotFound, "node %q is not drawn on page %d", id, s.page)
	}
	c := mutation.ResizeChange{
		Page:       s.page,
		NodeType:   n.Type,
		ElementID:  id,
		ShapeIndex: n.ShapeIndex,
		Dimension:  dim,
		External:   n.External,
	}
	for _, e := range data.Edges {
		if e.Source == id {
			c.SourceEdgeIndexes = append(c.SourceEdgeIndexes, e.EdgeIndex)
		}
		if e.Target == id {
			c.TargetEdgeIndexes = append(c.TargetEdgeIndexes, e.EdgeIndex)
		}
	}
	return c, nil
}

// MoveDividerLine moves the divider line of a container on the current page.
func (s *Session) MoveDividerLine(c mutation.DividerChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Page = s.page
	return s.edit(func(doc *document.Document) error {
		return s.mutator.UpdateDividerLine(doc, c)
	})
}

// SetNodeStatus updates the status of a node.
func (s *Session) SetNodeStatus(id string, opts ...status.NodeOption) *status.Status {
	return s.store.SetNodeStatus(id, opts...)
}

// SetEdgeStatus updates the status of an edge.
func (s *Session) SetEdgeStatus(id string, opts ...status.EdgeOption) *status.Status {
	return s.store.SetEdgeStatus(id, opts...)
}

// NewID returns an id for a new element or diagram element.
func NewID() string {
	return "_" + uuid.NewString()
}
