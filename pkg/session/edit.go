package session

import (
	"slices"

	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/mutation"
	"github.com/matzehuels/modelgraph/pkg/snapgrid"
)

// NewNode describes a node to add to the current page.
type NewNode struct {
	Type     diagram.NodeType `json:"type"`
	Name     string           `json:"name,omitempty"`
	Position document.Point   `json:"position"`
}

// AddNode adds an element of n.Type and a shape of the type's default size
// at n.Position, snapped. Containers with a divider line get a centralized
// one. It returns the new element id.
func (s *Session) AddNode(n NewNode) (string, error) {
	if !s.flavor.HasNodeType(n.Type) {
		return "", errors.New(errors.ErrCodeInvalidInput, "%s has no node type %q", s.flavor.Name, n.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := NewID()
	pos := snapgrid.SnapPoint(*s.grid, n.Position, snapgrid.Floor)
	dim := s.flavor.DefaultSize(n.Type, *s.grid)
	shape := &document.Shape{
		ID:         NewID(),
		ElementRef: id,
		Bounds:     &document.Bounds{X: pos.X, Y: pos.Y, Width: dim.Width, Height: dim.Height},
	}
	if n.Type == s.flavor.DividerType {
		shape.DividerLine = mutation.CentralizedDividerLine(*shape.Bounds)
	}

	err := s.edit(func(doc *document.Document) error {
		page, err := s.pageOf(doc)
		if err != nil {
			return err
		}
		el := document.Element{ID: id, Kind: s.flavor.NodeKind(n.Type), Name: n.Name}
		if err := s.appendElement(doc, el); err != nil {
			return err
		}
		page.Elements = append(page.Elements, shape)
		return nil
	})
	if err != nil {
		return "", err
	}
	s.logger.Debug("node added", "id", id, "type", n.Type)
	return id, nil
}

// Connect adds an edge of c.Type from c.Source to c.Target when the flavor
// allows it. An empty c.Type takes the default edge type between the two
// node types. A rejected connection is not an error: ok is false and the
// document is unchanged.
func (s *Session) Connect(c diagram.Connection) (id string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.data()
	if c.Type == "" {
		src, srcOK := data.NodesByID[c.Source]
		tgt, tgtOK := data.NodesByID[c.Target]
		if srcOK && tgtOK {
			c.Type, _ = s.flavor.DefaultEdgeTypeBetween(src.Type, tgt.Type)
		}
	}
	if !data.CheckConnection(c) {
		s.logger.Debug("connection rejected", "source", c.Source, "edge", c.Type, "target", c.Target)
		return "", false, nil
	}
	src, tgt := data.NodesByID[c.Source], data.NodesByID[c.Target]
	if src.External || tgt.External {
		s.logger.Debug("connection touches an included model", "source", c.Source, "target", c.Target)
		return "", false, nil
	}

	id = NewID()
	edge := &document.Edge{
		ID:         NewID(),
		ElementRef: id,
		Waypoints: []document.Point{
			diagram.HandleCenter.Position(src.Bounds()),
			diagram.HandleCenter.Position(tgt.Bounds()),
		},
	}

	err = s.edit(func(doc *document.Document) error {
		page, err := s.pageOf(doc)
		if err != nil {
			return err
		}
		if s.flavor.IsOwnedEdgeType(c.Type) {
			owner, ok := doc.FindElement(c.Target)
			if !ok {
				return errors.New(errors.ErrCodeCorruptDocument, "connection target %q is not in the document", c.Target)
			}
			owner.Requirements = append(owner.Requirements, document.Requirement{
				ID: id, Kind: string(c.Type), Href: document.LocalHref(c.Source),
			})
		} else {
			el := document.Element{
				ID:        id,
				Kind:      string(c.Type),
				SourceRef: string(document.LocalHref(c.Source)),
				TargetRef: string(document.LocalHref(c.Target)),
			}
			if err := s.appendElement(doc, el); err != nil {
				return err
			}
		}
		page.Elements = append(page.Elements, edge)
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// pageOf returns the current page of doc, adding an empty first page to a
// document that has none.
func (s *Session) pageOf(doc *document.Document) (*document.Diagram, error) {
	if len(doc.Diagrams) == 0 && s.page == 0 {
		doc.Diagrams = append(doc.Diagrams, document.Diagram{ID: NewID()})
	}
	page, err := doc.Page(s.page)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "page %d", s.page)
	}
	return page, nil
}

// appendElement adds el to the first root element of the flavor, or to the
// top level when the flavor draws top-level elements.
func (s *Session) appendElement(doc *document.Document, el document.Element) error {
	if len(s.flavor.RootKinds) == 0 {
		doc.Elements = append(doc.Elements, el)
		return nil
	}
	i := slices.IndexFunc(doc.Elements, func(e document.Element) bool {
		return slices.Contains(s.flavor.RootKinds, e.Kind)
	})
	if i < 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "document has no %v element to add to", s.flavor.RootKinds)
	}
	doc.Elements[i].Children = append(doc.Elements[i].Children, el)
	return nil
}
