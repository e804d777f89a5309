package mutation

import (
	"math"

	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/observability"
)

// ResizeChange is the result of a resize gesture on one node.
type ResizeChange struct {
	Page int `json:"page"`
	// NodeType may be left empty to derive it from the element.
	NodeType   diagram.NodeType   `json:"nodeType,omitempty"`
	ElementID  string             `json:"elementId"`
	ShapeIndex int                `json:"shapeIndex"`
	Dimension  document.Dimension `json:"dimension"`
	// SourceEdgeIndexes and TargetEdgeIndexes are the page indexes of the
	// edges leaving and entering the node.
	SourceEdgeIndexes []int `json:"sourceEdgeIndexes,omitempty"`
	TargetEdgeIndexes []int `json:"targetEdgeIndexes,omitempty"`
	// External is set for nodes of included models, whose children cannot
	// be edited locally.
	External bool `json:"external,omitempty"`
}

// ResizeNode resizes one node. See [Mutator.ResizeNodes].
func (m *Mutator) ResizeNode(doc *document.Document, change ResizeChange) error {
	return m.ResizeNodes(doc, change)
}

// ResizeNodes resizes nodes and moves the endpoints of their edges so that
// each edge stays attached to the same handle.
//
// A locally owned container never shrinks below the box enclosing its
// children plus [diagram.ContainerPadding]. An edge listed by several changes
// of the batch is moved once, by the first change listing it.
func (m *Mutator) ResizeNodes(doc *document.Document, changes ...ResizeChange) error {
	visited := make(map[int]struct{})
	for _, c := range changes {
		if err := m.resize(doc, c, visited); err != nil {
			return err
		}
	}
	return nil
}

type waypointMove struct {
	p      *document.Point
	offset document.Point
}

func (m *Mutator) resize(doc *document.Document, c ResizeChange, visited map[int]struct{}) error {
	page, err := doc.Page(c.Page)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCorruptDocument, err, "resize %s", c.ElementID)
	}
	shape, err := page.ShapeAt(c.ShapeIndex)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCorruptDocument, err, "resize %s", c.ElementID)
	}
	if shape.ElementRef != c.ElementID {
		return errors.New(errors.ErrCodeCorruptDocument, "shape %d draws %q, not %q", c.ShapeIndex, shape.ElementRef, c.ElementID)
	}
	if shape.Bounds == nil {
		return errors.New(errors.ErrCodeCorruptDocument, "cannot resize shape %d without bounds", c.ShapeIndex)
	}

	idx := document.NewIndex(doc, c.Page)
	el, ok := idx.ElementsByID[c.ElementID]
	if !ok {
		return errors.New(errors.ErrCodeCorruptDocument, "shape %d draws unknown element %q", c.ShapeIndex, c.ElementID)
	}
	nt := c.NodeType
	if nt == "" {
		if nt, ok = m.flavor.NodeTypeOf(el.Kind); !ok {
			return errors.New(errors.ErrCodeInvalidInput, "element %q of kind %q is not a node", c.ElementID, el.Kind)
		}
	}

	before := *shape.Bounds
	pos := m.shapeBounds(idx, shape).Position()
	current := m.flavor.ShapeSize(nt, shape, m.grid)
	minDim := m.flavor.MinSize(nt, m.grid)
	next := document.Dimension{
		Width:  math.Max(c.Dimension.Width, minDim.Width),
		Height: math.Max(c.Dimension.Height, minDim.Height),
	}

	external := c.External || doc.IncludeOf(c.ElementID) != ""
	if !external && m.flavor.Containment.IsContainer(nt) {
		if limit, ok := m.childrenLimit(idx, el); ok {
			next.Width = math.Max(next.Width, limit.X-pos.X)
			next.Height = math.Max(next.Height, limit.Y-pos.Y)
		}
	}

	delta := document.Dimension{Width: next.Width - current.Width, Height: next.Height - current.Height}

	var moves []waypointMove
	collect := func(indexes []int, last bool) error {
		for _, i := range indexes {
			if _, done := visited[i]; done {
				continue
			}
			visited[i] = struct{}{}
			e, err := page.EdgeAt(i)
			if err != nil {
				return errors.Wrap(errors.ErrCodeCorruptDocument, err, "resize %s", c.ElementID)
			}
			if len(e.Waypoints) == 0 {
				return errors.New(errors.ErrCodeCorruptDocument, "edge %d (%s) has no waypoints", i, e.ElementRef)
			}
			wp := &e.Waypoints[0]
			if last {
				wp = &e.Waypoints[len(e.Waypoints)-1]
			}
			h, ok := diagram.HandleAt(before, *wp)
			if !ok {
				m.logger.Debug("waypoint is not on a handle, anchoring to center", "edge", e.ElementRef, "x", wp.X, "y", wp.Y)
			}
			moves = append(moves, waypointMove{p: wp, offset: h.Offset(delta)})
		}
		return nil
	}
	if err := collect(c.SourceEdgeIndexes, false); err != nil {
		return err
	}
	if err := collect(c.TargetEdgeIndexes, true); err != nil {
		return err
	}

	for _, mv := range moves {
		mv.p.X += mv.offset.X
		mv.p.Y += mv.offset.Y
	}
	shape.Bounds.Width = next.Width
	shape.Bounds.Height = next.Height

	observability.Engine().OnResize(m.flavor.Name, c.ElementID, len(moves))
	return nil
}

// childrenLimit returns the bottom-right corner a container must reach to
// enclose the shapes of its children with padding. ok is false when no child
// is drawn on the page.
func (m *Mutator) childrenLimit(idx *document.Index, container *document.Element) (limit document.Point, ok bool) {
	for _, id := range container.ContainedIDs() {
		b, found := m.snappedBounds(idx, id)
		if !found {
			m.logger.Debug("child has no shape on this page", "container", container.ID, "child", id)
			continue
		}
		limit.X = math.Max(limit.X, b.X+b.Width+diagram.ContainerPadding)
		limit.Y = math.Max(limit.Y, b.Y+b.Height+diagram.ContainerPadding)
		ok = true
	}
	return limit, ok
}
