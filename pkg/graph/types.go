package graph

import (
	"cmp"
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/document"
)

// Graph is the serialized render graph of one page.
type Graph struct {
	Flavor    string       `json:"flavor"`
	Page      int          `json:"page"`
	Nodes     []Node       `json:"nodes"`
	Edges     []Edge       `json:"edges"`
	Adjacency []Dependency `json:"adjacency,omitempty"`
	Selection Selection    `json:"selection,omitzero"`
}

// Node is a render node.
type Node struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	Kind        string             `json:"kind"`
	Name        string             `json:"name,omitempty"`
	ShapeIndex  int                `json:"shapeIndex"`
	Position    document.Point     `json:"position"`
	Dimension   document.Dimension `json:"dimension"`
	Layer       string             `json:"layer"`
	External    bool               `json:"external,omitempty"`
	HostID      string             `json:"hostId,omitempty"`
	IsCollapsed bool               `json:"isCollapsed,omitempty"`
	Selected    bool               `json:"selected,omitempty"`
	Dragging    bool               `json:"dragging,omitempty"`
	Resizing    bool               `json:"resizing,omitempty"`
	// DividerY is the y of the node's divider line, when it has one.
	DividerY *float64 `json:"dividerY,omitempty"`
}

// Edge is a render edge.
type Edge struct {
	ID               string           `json:"id"`
	Type             string           `json:"type"`
	Source           string           `json:"source"`
	Target           string           `json:"target"`
	EdgeIndex        int              `json:"edgeIndex"`
	Waypoints        []document.Point `json:"waypoints,omitempty"`
	External         bool             `json:"external,omitempty"`
	Selected         bool             `json:"selected,omitempty"`
	DraggingWaypoint bool             `json:"draggingWaypoint,omitempty"`
}

// Dependency lists the nodes with edges into Target.
type Dependency struct {
	Target  string   `json:"target"`
	Sources []string `json:"sources"`
}

// Selection lists the selected node and edge ids and the selected node types.
type Selection struct {
	Nodes     []string `json:"nodes,omitempty"`
	Edges     []string `json:"edges,omitempty"`
	NodeTypes []string `json:"nodeTypes,omitempty"`
}

// FromData snapshots d.
func FromData(d *diagram.Data) Graph {
	g := Graph{
		Flavor: d.Flavor.Name,
		Page:   d.Page,
		Nodes:  make([]Node, 0, len(d.Nodes)),
		Edges:  make([]Edge, 0, len(d.Edges)),
	}
	for _, n := range d.Nodes {
		g.Nodes = append(g.Nodes, fromNode(n))
	}
	for _, e := range d.Edges {
		g.Edges = append(g.Edges, Edge{
			ID:               e.ID,
			Type:             string(e.Type),
			Source:           e.Source,
			Target:           e.Target,
			EdgeIndex:        e.EdgeIndex,
			Waypoints:        slices.Clone(e.Waypoints),
			External:         e.External,
			Selected:         e.Selected,
			DraggingWaypoint: e.DraggingWaypoint,
		})
	}
	for target, deps := range d.Adjacency {
		if deps.Sources.Len() == 0 {
			continue
		}
		g.Adjacency = append(g.Adjacency, Dependency{Target: target, Sources: sets.List(deps.Sources)})
	}
	slices.SortFunc(g.Adjacency, func(a, b Dependency) int { return cmp.Compare(a.Target, b.Target) })

	g.Selection = Selection{
		Nodes: sets.List(d.SelectedNodesByID),
		Edges: sets.List(d.SelectedEdgesByID),
	}
	for _, t := range sets.List(d.SelectedNodeTypes) {
		g.Selection.NodeTypes = append(g.Selection.NodeTypes, string(t))
	}
	return g
}

func fromNode(n *diagram.RenderNode) Node {
	out := Node{
		ID:          n.ID,
		Type:        string(n.Type),
		Kind:        n.Kind,
		Name:        n.Name,
		ShapeIndex:  n.ShapeIndex,
		Position:    n.Position,
		Dimension:   n.Dimension,
		Layer:       n.Layer.String(),
		External:    n.External,
		HostID:      n.HostID,
		IsCollapsed: n.IsCollapsed,
		Selected:    n.Selected,
		Dragging:    n.Dragging,
		Resizing:    n.Resizing,
	}
	if n.Shape != nil && n.Shape.DividerLine != nil && len(n.Shape.DividerLine.Waypoints) > 0 {
		y := n.Shape.DividerLine.Waypoints[0].Y
		out.DividerY = &y
	}
	return out
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	i := slices.IndexFunc(g.Nodes, func(n Node) bool { return n.ID == id })
	if i < 0 {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// Edge returns the edge with the given id.
func (g *Graph) Edge(id string) (Edge, bool) {
	i := slices.IndexFunc(g.Edges, func(e Edge) bool { return e.ID == id })
	if i < 0 {
		return Edge{}, false
	}
	return g.Edges[i], true
}
