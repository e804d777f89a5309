package mutation

import (
	"math"

	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/observability"
)

// DividerChange is the result of dragging the divider line of a container.
type DividerChange struct {
	Page       int    `json:"page"`
	ShapeIndex int    `json:"shapeIndex"`
	ElementID  string `json:"elementId"`
	// LocalY is the requested position relative to the container's top.
	LocalY float64 `json:"localY"`
}

// Limits is the range a divider line may occupy, in diagram coordinates.
// Upper may exceed Lower when the children leave no room; [Limits.Clamp]
// resolves that in favor of Upper.
type Limits struct {
	Upper float64 `json:"upper"`
	Lower float64 `json:"lower"`
}

// Clamp returns y moved into the limits.
func (l Limits) Clamp(y float64) float64 {
	return math.Max(l.Upper, math.Min(y, l.Lower))
}

// DividerLimits computes the limits of a divider line inside container.
// The line stays padding below the container top and the bottom of every
// output child, and padding above the container bottom and the top of every
// encapsulated child. All bounds are expected snapped.
func DividerLimits(container document.Bounds, outputs, encapsulated []document.Bounds, padding float64) Limits {
	l := Limits{
		Upper: container.Y + padding,
		Lower: container.Y + container.Height - padding,
	}
	for _, b := range outputs {
		l.Upper = math.Max(l.Upper, b.Y+b.Height+padding)
	}
	for _, b := range encapsulated {
		l.Lower = math.Min(l.Lower, b.Y-padding)
	}
	return l
}

// SolveDividerLine returns the absolute y of a divider line requested at
// localY below the top of container.
func SolveDividerLine(container document.Bounds, outputs, encapsulated []document.Bounds, localY float64) float64 {
	l := DividerLimits(container, outputs, encapsulated, diagram.DividerPadding)
	return l.Clamp(container.Y + localY)
}

// CentralizedDividerLine returns a line across b at its vertical center.
func CentralizedDividerLine(b document.Bounds) *document.DividerLine {
	y := b.Y + b.Height/2
	return &document.DividerLine{Waypoints: []document.Point{
		{X: b.X, Y: y},
		{X: b.X + b.Width, Y: y},
	}}
}

// UpdateDividerLine moves the divider line of a container to the clamped
// requested position. A container without a line gets a centralized one
// first; only the y of its waypoints changes.
func (m *Mutator) UpdateDividerLine(doc *document.Document, c DividerChange) error {
	if m.flavor.DividerType == "" {
		return errors.New(errors.ErrCodeInvalidInput, "flavor %s has no divider lines", m.flavor.Name)
	}
	page, err := doc.Page(c.Page)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCorruptDocument, err, "move divider of %s", c.ElementID)
	}
	shape, err := page.ShapeAt(c.ShapeIndex)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCorruptDocument, err, "move divider of %s", c.ElementID)
	}
	if shape.ElementRef != c.ElementID {
		return errors.New(errors.ErrCodeCorruptDocument, "shape %d draws %q, not %q", c.ShapeIndex, shape.ElementRef, c.ElementID)
	}
	if shape.Bounds == nil {
		return errors.New(errors.ErrCodeCorruptDocument, "cannot move divider of shape %d without bounds", c.ShapeIndex)
	}

	idx := document.NewIndex(doc, c.Page)
	el, ok := idx.ElementsByID[c.ElementID]
	if !ok {
		return errors.New(errors.ErrCodeCorruptDocument, "shape %d draws unknown element %q", c.ShapeIndex, c.ElementID)
	}
	if nt, _ := m.flavor.NodeTypeOf(el.Kind); nt != m.flavor.DividerType {
		return errors.New(errors.ErrCodeInvalidInput, "element %q of kind %q has no divider line", c.ElementID, el.Kind)
	}

	include := doc.IncludeOf(c.ElementID)
	container := m.shapeBounds(idx, shape)
	outputs := m.childBounds(doc, idx, c.ElementID, include, el.OutputDecisions)
	encapsulated := m.childBounds(doc, idx, c.ElementID, include, el.EncapsulatedDecisions)
	y := SolveDividerLine(container, outputs, encapsulated, c.LocalY)

	if shape.DividerLine == nil || len(shape.DividerLine.Waypoints) < 2 {
		shape.DividerLine = CentralizedDividerLine(*shape.Bounds)
	}
	for i := range shape.DividerLine.Waypoints {
		shape.DividerLine.Waypoints[i].Y = y
	}

	observability.Engine().OnDividerMove(c.ElementID, y)
	return nil
}

// childBounds returns the snapped bounds of the children refs point at. Refs
// of a container from include resolve inside that include.
func (m *Mutator) childBounds(doc *document.Document, idx *document.Index, container, include string, refs []document.Href) []document.Bounds {
	var out []document.Bounds
	for _, h := range refs {
		ref := doc.ResolveHref(h, include)
		b, ok := m.snappedBounds(idx, ref)
		if !ok {
			m.logger.Debug("divider child has no shape on this page", "container", container, "child", ref)
			continue
		}
		out = append(out, b)
	}
	return out
}
