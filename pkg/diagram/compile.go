package diagram

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/log"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/snapgrid"
	"github.com/matzehuels/modelgraph/pkg/status"
)

type semanticNode struct {
	el       *document.Element
	typ      NodeType
	external bool
	hostID   string
}

type semanticEdge struct {
	el       *document.Element
	typ      EdgeType
	source   string
	target   string
	external bool
}

// semantics is the drawable part of a document's element tree, keyed by the
// ids shapes use to refer to it.
type semantics struct {
	nodes map[string]semanticNode
	edges map[string]semanticEdge
}

func collectSemantics(f *Flavor, doc *document.Document, logger *log.Logger) *semantics {
	s := &semantics{
		nodes: make(map[string]semanticNode),
		edges: make(map[string]semanticEdge),
	}

	resolve := func(ref, include string) string {
		return doc.ResolveHref(document.Href(ref), include)
	}

	visitor := func(include string) func(e *document.Element) bool {
		external := include != ""
		return func(e *document.Element) bool {
			id := document.QualifiedID(include, e.ID)
			if nt, ok := f.NodeTypeOf(e.Kind); ok {
				if _, dup := s.nodes[id]; dup {
					logger.Warn("duplicate element id, last one wins", "id", id)
				}
				s.nodes[id] = semanticNode{el: e, typ: nt, external: external, hostID: resolve(e.AttachedToRef, include)}
			} else if et, ok := f.EdgeTypeOf(e.Kind); ok {
				if _, dup := s.edges[id]; dup {
					logger.Warn("duplicate element id, last one wins", "id", id)
				}
				s.edges[id] = semanticEdge{
					el: e, typ: et, external: external,
					source: resolve(e.SourceRef, include),
					target: resolve(e.TargetRef, include),
				}
			}
			for _, r := range e.Requirements {
				et, ok := f.EdgeTypeOf(r.Kind)
				if !ok {
					continue
				}
				rid := document.QualifiedID(include, r.ID)
				if _, dup := s.edges[rid]; dup {
					logger.Warn("duplicate element id, last one wins", "id", rid)
				}
				s.edges[rid] = semanticEdge{
					el: e, typ: et, external: external,
					source: resolve(string(r.Href), include),
					target: id,
				}
			}
			return true
		}
	}

	walkRoots := func(elements []document.Element, include string) {
		visit := visitor(include)
		if len(f.RootKinds) == 0 {
			document.Walk(elements, visit)
			return
		}
		for i := range elements {
			root := &elements[i]
			if !slices.Contains(f.RootKinds, root.Kind) {
				continue
			}
			document.Walk(root.Lanes, visit)
			document.Walk(root.Children, visit)
		}
	}

	walkRoots(doc.Elements, "")
	for i := range doc.Includes {
		walkRoots(doc.Includes[i].Elements, doc.Includes[i].Name)
	}
	return s
}

type indexedEdge struct {
	*document.Edge
	index int
}

// Compile derives the render graph of one page.
//
// Compile never fails: a missing page yields an empty graph, and shapes or
// edges that cannot be resolved are logged and left out. It panics only when
// a diagram element or node type falls outside the closed sets the engine
// knows, which means the engine itself is out of date.
//
// A nil status is treated as idle; a nil logger uses the default logger.
func Compile(f *Flavor, doc *document.Document, st *status.Status, grid snapgrid.Grid, page int, logger *log.Logger) *Data {
	if logger == nil {
		logger = log.Default()
	}
	data := newData(f, page)
	if doc == nil || page < 0 || page >= len(doc.Diagrams) {
		logger.Warn("diagram page not found", "page", page)
		return data
	}
	sem := collectSemantics(f, doc, logger)

	var edgeShapes []indexedEdge
	for i, el := range doc.Diagrams[page].Elements {
		switch v := el.(type) {
		case *document.Shape:
			sn, ok := sem.nodes[v.ElementRef]
			if !ok {
				logger.Warn("skipping shape of unknown element", "ref", v.ElementRef, "index", i)
				continue
			}
			n := buildNode(f, sn, v, i, st, grid)
			if prev, dup := data.NodesByID[n.ID]; dup {
				logger.Warn("duplicate shape on page, last one wins", "ref", n.ID, "first", prev.ShapeIndex, "last", i)
				data.Nodes[slices.Index(data.Nodes, prev)] = n
			} else {
				data.Nodes = append(data.Nodes, n)
			}
			data.NodesByID[n.ID] = n
		case *document.Edge:
			edgeShapes = append(edgeShapes, indexedEdge{Edge: v, index: i})
		default:
			errors.Unreachable("unknown diagram element %T", el)
		}
	}

	for _, es := range edgeShapes {
		se, ok := sem.edges[es.ElementRef]
		if !ok {
			logger.Warn("skipping edge of unknown element", "ref", es.ElementRef, "index", es.index)
			continue
		}
		if _, ok := data.NodesByID[se.source]; !ok {
			logger.Debug("dropping edge with unresolved source", "ref", es.ElementRef, "source", se.source)
			continue
		}
		if _, ok := data.NodesByID[se.target]; !ok {
			logger.Debug("dropping edge with unresolved target", "ref", es.ElementRef, "target", se.target)
			continue
		}
		e := &RenderEdge{
			ID:               es.ElementRef,
			Type:             se.typ,
			Source:           se.source,
			Target:           se.target,
			EdgeIndex:        es.index,
			Waypoints:        slices.Clone(es.Waypoints),
			External:         se.external,
			Selected:         st.IsEdgeSelected(es.ElementRef),
			DraggingWaypoint: st.IsDraggingWaypoint(es.ElementRef),
			Edge:             es.Edge,
		}
		if prev, dup := data.EdgesByID[e.ID]; dup {
			logger.Warn("duplicate edge on page, last one wins", "ref", e.ID, "first", prev.EdgeIndex, "last", es.index)
			data.Edges[slices.Index(data.Edges, prev)] = e
		} else {
			data.Edges = append(data.Edges, e)
		}
		data.EdgesByID[e.ID] = e
	}

	for _, e := range data.Edges {
		deps, ok := data.Adjacency[e.Target]
		if !ok {
			deps = Dependencies{Sources: sets.New[string]()}
			data.Adjacency[e.Target] = deps
		}
		deps.Sources.Insert(e.Source)
		if e.Selected {
			data.SelectedEdgesByID.Insert(e.ID)
		}
	}

	slices.SortStableFunc(data.Nodes, func(a, b *RenderNode) int {
		return cmp.Compare(f.paintRank(a.Type), f.paintRank(b.Type))
	})
	for _, n := range data.Nodes {
		if n.Selected {
			data.SelectedNodesByID.Insert(n.ID)
			data.SelectedNodeTypes.Insert(n.Type)
		}
	}
	return data
}

func buildNode(f *Flavor, sn semanticNode, s *document.Shape, index int, st *status.Status, grid snapgrid.Grid) *RenderNode {
	var b document.Bounds
	if s.Bounds != nil {
		b = *s.Bounds
	}
	layer := f.LayerOf(sn.typ)
	if sn.hostID != "" {
		layer = LayerAttached
	}
	return &RenderNode{
		ID:          s.ElementRef,
		Type:        sn.typ,
		Kind:        sn.el.Kind,
		Name:        sn.el.Name,
		ShapeIndex:  index,
		Position:    snapgrid.SnapPosition(grid, b),
		Dimension:   f.ShapeSize(sn.typ, s, grid),
		Layer:       layer,
		External:    sn.external,
		HostID:      sn.hostID,
		IsCollapsed: s.IsCollapsed,
		Selected:    st.IsNodeSelected(s.ElementRef),
		Dragging:    st.IsNodeDragging(s.ElementRef),
		Resizing:    st.IsNodeResizing(s.ElementRef),
		Element:     sn.el,
		Shape:       s,
	}
}
