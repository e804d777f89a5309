package document

import (
	"encoding/json"
	"fmt"
)

// Point is a position in diagram coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dimension is a width/height pair.
type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds is an axis-aligned rectangle with its origin at the top-left corner.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Position returns the top-left corner.
func (b Bounds) Position() Point { return Point{X: b.X, Y: b.Y} }

// Dimension returns the width and height.
func (b Bounds) Dimension() Dimension { return Dimension{Width: b.Width, Height: b.Height} }

// Diagram is one page of shapes (a DRD in decision models, a plane in process
// models). Elements keeps document order; indexes into it are stable for the
// lifetime of a page and are what mutations address.
type Diagram struct {
	ID       string           `json:"id,omitempty"`
	Name     string           `json:"name,omitempty"`
	Elements []DiagramElement `json:"-"`
}

// DiagramElement is either a *Shape or an *Edge.
type DiagramElement interface {
	// Ref returns the id of the semantic element this record draws.
	Ref() string
	diagramElement()
}

// Shape is the visual record of a node-like element.
type Shape struct {
	ID          string       `json:"id,omitempty"`
	ElementRef  string       `json:"elementRef"`
	Bounds      *Bounds      `json:"bounds,omitempty"`
	DividerLine *DividerLine `json:"dividerLine,omitempty"`
	IsCollapsed bool         `json:"isCollapsed,omitempty"`
}

// Edge is the visual record of an edge-like element.
type Edge struct {
	ID         string  `json:"id,omitempty"`
	ElementRef string  `json:"elementRef"`
	Waypoints  []Point `json:"waypoints,omitempty"`
}

// DividerLine is the horizontal split of a decision service shape.
type DividerLine struct {
	Waypoints []Point `json:"waypoints"`
}

func (s *Shape) Ref() string   { return s.ElementRef }
func (*Shape) diagramElement() {}
func (e *Edge) Ref() string    { return e.ElementRef }
func (*Edge) diagramElement()  {}

const (
	kindShape = "shape"
	kindEdge  = "edge"
)

type diagramJSON struct {
	ID       string            `json:"id,omitempty"`
	Name     string            `json:"name,omitempty"`
	Elements []json.RawMessage `json:"elements"`
}

type elementHeader struct {
	Type string `json:"type"`
}

// MarshalJSON encodes the page with a "type" discriminant on every element.
func (d Diagram) MarshalJSON() ([]byte, error) {
	out := diagramJSON{ID: d.ID, Name: d.Name, Elements: make([]json.RawMessage, 0, len(d.Elements))}
	for i, el := range d.Elements {
		var (
			data []byte
			err  error
		)
		switch v := el.(type) {
		case *Shape:
			data, err = json.Marshal(struct {
				Type string `json:"type"`
				*Shape
			}{kindShape, v})
		case *Edge:
			data, err = json.Marshal(struct {
				Type string `json:"type"`
				*Edge
			}{kindEdge, v})
		default:
			return nil, fmt.Errorf("diagram element %d: unsupported type %T", i, el)
		}
		if err != nil {
			return nil, fmt.Errorf("diagram element %d: %w", i, err)
		}
		out.Elements = append(out.Elements, data)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a page, dispatching on each element's "type".
func (d *Diagram) UnmarshalJSON(data []byte) error {
	var in diagramJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	d.ID, d.Name = in.ID, in.Name
	d.Elements = make([]DiagramElement, 0, len(in.Elements))
	for i, raw := range in.Elements {
		var h elementHeader
		if err := json.Unmarshal(raw, &h); err != nil {
			return fmt.Errorf("diagram element %d: %w", i, err)
		}
		switch h.Type {
		case kindShape:
			s := &Shape{}
			if err := json.Unmarshal(raw, s); err != nil {
				return fmt.Errorf("diagram element %d: %w", i, err)
			}
			d.Elements = append(d.Elements, s)
		case kindEdge:
			e := &Edge{}
			if err := json.Unmarshal(raw, e); err != nil {
				return fmt.Errorf("diagram element %d: %w", i, err)
			}
			d.Elements = append(d.Elements, e)
		default:
			return fmt.Errorf("diagram element %d: %w: %q", i, ErrUnknownDiagramElement, h.Type)
		}
	}
	return nil
}
