package diagram

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/matzehuels/modelgraph/pkg/document"
)

// RenderNode is a node of the render graph. Render nodes are derived, never
// persisted.
type RenderNode struct {
	// ID is the element id the shape draws, "<include>:<id>" for elements of
	// included models.
	ID          string             `json:"id"`
	Type        NodeType           `json:"type"`
	Kind        string             `json:"kind"`
	Name        string             `json:"name,omitempty"`
	ShapeIndex  int                `json:"shapeIndex"`
	Position    document.Point     `json:"position"`
	Dimension   document.Dimension `json:"dimension"`
	Layer       Layer              `json:"layer"`
	External    bool               `json:"external,omitempty"`
	HostID      string             `json:"hostId,omitempty"`
	IsCollapsed bool               `json:"isCollapsed,omitempty"`

	Selected bool `json:"selected,omitempty"`
	Dragging bool `json:"dragging,omitempty"`
	Resizing bool `json:"resizing,omitempty"`

	Element *document.Element `json:"-"`
	Shape   *document.Shape   `json:"-"`
}

// Bounds returns the snapped bounds the node is drawn with.
func (n *RenderNode) Bounds() document.Bounds {
	return document.Bounds{X: n.Position.X, Y: n.Position.Y, Width: n.Dimension.Width, Height: n.Dimension.Height}
}

// RenderEdge is an edge of the render graph.
type RenderEdge struct {
	ID        string           `json:"id"`
	Type      EdgeType         `json:"type"`
	Source    string           `json:"source"`
	Target    string           `json:"target"`
	EdgeIndex int              `json:"edgeIndex"`
	Waypoints []document.Point `json:"waypoints,omitempty"`
	External  bool             `json:"external,omitempty"`

	Selected         bool `json:"selected,omitempty"`
	DraggingWaypoint bool `json:"draggingWaypoint,omitempty"`

	Edge *document.Edge `json:"-"`
}

// Dependencies lists the direct upstream nodes of a node.
type Dependencies struct {
	Sources sets.Set[string]
}

// Data is the render graph of one page. It is read-only: the same *Data is
// handed to every caller that asks with the same inputs.
type Data struct {
	Flavor *Flavor
	Page   int

	// Nodes are in paint order; Edges in page order.
	Nodes     []*RenderNode
	Edges     []*RenderEdge
	NodesByID map[string]*RenderNode
	EdgesByID map[string]*RenderEdge

	// Adjacency maps a target node id to the nodes with edges into it.
	Adjacency map[string]Dependencies

	SelectedNodesByID sets.Set[string]
	SelectedEdgesByID sets.Set[string]
	SelectedNodeTypes sets.Set[NodeType]
}

func newData(f *Flavor, page int) *Data {
	return &Data{
		Flavor:            f,
		Page:              page,
		NodesByID:         make(map[string]*RenderNode),
		EdgesByID:         make(map[string]*RenderEdge),
		Adjacency:         make(map[string]Dependencies),
		SelectedNodesByID: sets.New[string](),
		SelectedEdgesByID: sets.New[string](),
		SelectedNodeTypes: sets.New[NodeType](),
	}
}

// Dependencies returns every node id upstream of id, following the adjacency
// list transitively, sorted. id itself is only included when it sits on a
// cycle.
func (d *Data) Dependencies(id string) []string {
	seen := sets.New[string]()
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for src := range d.Adjacency[cur].Sources {
			if seen.Has(src) {
				continue
			}
			seen.Insert(src)
			queue = append(queue, src)
		}
	}
	return sets.List(seen)
}

// IncidentEdges returns the edges leaving and entering node id, in page
// order.
func (d *Data) IncidentEdges(id string) (outgoing, incoming []*RenderEdge) {
	for _, e := range d.Edges {
		if e.Source == id {
			outgoing = append(outgoing, e)
		}
		if e.Target == id {
			incoming = append(incoming, e)
		}
	}
	return outgoing, incoming
}
