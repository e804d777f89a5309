package document

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownDiagramElement is returned when decoding a diagram element
	// whose "type" is neither "shape" nor "edge".
	ErrUnknownDiagramElement = errors.New("unknown diagram element type")

	// ErrUnknownPage is returned when a diagram page index does not exist.
	ErrUnknownPage = errors.New("unknown diagram page")

	// ErrUnknownShape is returned when an index does not address a shape.
	ErrUnknownShape = errors.New("unknown shape")

	// ErrUnknownEdge is returned when an index does not address an edge.
	ErrUnknownEdge = errors.New("unknown edge")
)

// IndexedShape is a shape together with its position in the page.
type IndexedShape struct {
	*Shape
	Index int
}

// Index provides id lookups over a document for a single page. It is built
// once per operation and must be rebuilt after the document changes.
type Index struct {
	// ElementsByID maps local element ids, and "<include>:<id>" for included
	// elements, to the element.
	ElementsByID map[string]*Element
	// ShapesByRef maps element refs to the last shape drawing them on the page.
	ShapesByRef map[string]IndexedShape
}

// NewIndex indexes doc for the given page. A page that does not exist yields
// an index without shapes.
func NewIndex(doc *Document, page int) *Index {
	idx := &Index{
		ElementsByID: make(map[string]*Element),
		ShapesByRef:  make(map[string]IndexedShape),
	}
	Walk(doc.Elements, func(e *Element) bool {
		idx.ElementsByID[e.ID] = e
		return true
	})
	for i := range doc.Includes {
		inc := &doc.Includes[i]
		Walk(inc.Elements, func(e *Element) bool {
			idx.ElementsByID[QualifiedID(inc.Name, e.ID)] = e
			return true
		})
	}
	if page < 0 || page >= len(doc.Diagrams) {
		return idx
	}
	for i, el := range doc.Diagrams[page].Elements {
		if s, ok := el.(*Shape); ok {
			idx.ShapesByRef[s.ElementRef] = IndexedShape{Shape: s, Index: i}
		}
	}
	return idx
}

// Page returns the diagram page at index page.
func (d *Document) Page(page int) (*Diagram, error) {
	if page < 0 || page >= len(d.Diagrams) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPage, page)
	}
	return &d.Diagrams[page], nil
}

// ShapeAt returns the shape at index i of the page.
func (dg *Diagram) ShapeAt(i int) (*Shape, error) {
	if i < 0 || i >= len(dg.Elements) {
		return nil, fmt.Errorf("%w: index %d out of range", ErrUnknownShape, i)
	}
	s, ok := dg.Elements[i].(*Shape)
	if !ok {
		return nil, fmt.Errorf("%w: index %d is not a shape", ErrUnknownShape, i)
	}
	return s, nil
}

// EdgeAt returns the edge at index i of the page.
func (dg *Diagram) EdgeAt(i int) (*Edge, error) {
	if i < 0 || i >= len(dg.Elements) {
		return nil, fmt.Errorf("%w: index %d out of range", ErrUnknownEdge, i)
	}
	e, ok := dg.Elements[i].(*Edge)
	if !ok {
		return nil, fmt.Errorf("%w: index %d is not an edge", ErrUnknownEdge, i)
	}
	return e, nil
}

// FindElement returns the element with the given id anywhere in the local tree.
func (d *Document) FindElement(id string) (*Element, bool) {
	var found *Element
	Walk(d.Elements, func(e *Element) bool {
		if found != nil {
			return false
		}
		if e.ID == id {
			found = e
			return false
		}
		return true
	})
	return found, found != nil
}
