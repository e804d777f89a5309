// Package mutation edits the shape layer of a document in response to user
// gestures: resizing nodes and moving decision-service divider lines.
//
// Mutations edit the document they are given in place. Documents that have
// been compiled must not be passed here directly; edit a [document.Document.Clone]
// and swap it in afterwards, which is what session.Session does.
//
// A mutation that references a shape or edge the document does not have
// returns an error coded [errors.ErrCodeCorruptDocument]: the caller's render
// graph and the document have drifted apart, and the document may have been
// partially edited.
package mutation

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/snapgrid"
)

// Mutator applies gestures for one flavor and grid.
type Mutator struct {
	flavor *diagram.Flavor
	grid   snapgrid.Grid
	logger *log.Logger
}

// New returns a mutator. A nil logger uses the default logger.
func New(f *diagram.Flavor, grid snapgrid.Grid, logger *log.Logger) *Mutator {
	if logger == nil {
		logger = log.Default()
	}
	return &Mutator{flavor: f, grid: grid, logger: logger}
}

// snappedBounds returns the bounds the compiler would draw the shape of id
// with. ok is false when id has no shape on the page.
func (m *Mutator) snappedBounds(idx *document.Index, id string) (document.Bounds, bool) {
	s, ok := idx.ShapesByRef[id]
	if !ok {
		return document.Bounds{}, false
	}
	return m.shapeBounds(idx, s.Shape), true
}

// shapeBounds returns the snapped bounds of s, sized for the node type of
// the element it draws.
func (m *Mutator) shapeBounds(idx *document.Index, s *document.Shape) document.Bounds {
	var raw document.Bounds
	if s.Bounds != nil {
		raw = *s.Bounds
	}
	pos := snapgrid.SnapPosition(m.grid, raw)

	var dim document.Dimension
	if el, ok := idx.ElementsByID[s.ElementRef]; ok {
		if nt, ok := m.flavor.NodeTypeOf(el.Kind); ok {
			dim = m.flavor.ShapeSize(nt, s, m.grid)
		}
	}
	if dim == (document.Dimension{}) {
		dim = snapgrid.SnapDimensions(m.grid, raw, document.Dimension{})
	}
	return document.Bounds{X: pos.X, Y: pos.Y, Width: dim.Width, Height: dim.Height}
}
