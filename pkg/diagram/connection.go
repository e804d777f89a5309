package diagram

import "github.com/charmbracelet/log"

// IsValidConnection reports whether an edge of type edge may go from a node
// of type src to a node of type tgt. The table is directional: a valid A to B
// connection says nothing about B to A.
func (f *Flavor) IsValidConnection(src NodeType, edge EdgeType, tgt NodeType) bool {
	return f.Structure.IsValid(src, edge, tgt)
}

// DefaultEdgeTypeBetween returns the edge type a connection from src to tgt
// gets when the user did not pick one. When several edge types qualify, the
// first one declared in the structure table wins.
func (f *Flavor) DefaultEdgeTypeBetween(src, tgt NodeType) (EdgeType, bool) {
	e, ok, ambiguous := f.Structure.DefaultEdgeTypeBetween(src, tgt)
	if ambiguous {
		log.Debug("several edge types connect these nodes, using the first declared",
			"flavor", f.Name, "source", src, "target", tgt, "edge", e)
	}
	return e, ok
}

// MayContain reports whether a node of type container may hold a node of
// type child.
func (f *Flavor) MayContain(container, child NodeType) bool {
	return f.Containment.MayContain(container, child)
}

// Connection is a connection gesture between two render nodes.
type Connection struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
}

// CheckConnection reports whether c may be committed: both endpoints must be
// drawn on the page and the flavor must allow the edge type between their
// types.
func (d *Data) CheckConnection(c Connection) bool {
	if c.Type == "" {
		return false
	}
	src, ok := d.NodesByID[c.Source]
	if !ok {
		return false
	}
	tgt, ok := d.NodesByID[c.Target]
	if !ok {
		return false
	}
	return d.Flavor.IsValidConnection(src.Type, c.Type, tgt.Type)
}

// IsDropTargetValidForSelection reports whether every selected node may be
// dropped into node targetID. A selection containing the target itself, or
// an empty selection, is never valid.
func (d *Data) IsDropTargetValidForSelection(targetID string) bool {
	target, ok := d.NodesByID[targetID]
	if !ok || d.SelectedNodeTypes.Len() == 0 || d.SelectedNodesByID.Has(targetID) {
		return false
	}
	for t := range d.SelectedNodeTypes {
		if !d.Flavor.MayContain(target.Type, t) {
			return false
		}
	}
	return true
}
