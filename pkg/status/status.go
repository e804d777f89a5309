// Package status holds the ephemeral interaction state of an editor:
// selection, drags, resizes, the connection being drawn and the current drop
// target.
//
// A [Status] is an immutable value. Every With* method returns a new pointer
// and leaves the receiver untouched, which is what lets render-graph caches
// keyed on status identity notice a change. [Store] holds the current
// pointer and swaps it on every update.
package status

import (
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Connection is a connection being drawn from a source node.
type Connection struct {
	SourceID string `json:"sourceId"`
	// Handle is the edge type picked on the source node.
	Handle string `json:"handle,omitempty"`
}

// DropTarget is the node currently under a dragged selection.
type DropTarget struct {
	ID      string `json:"id"`
	IsValid bool   `json:"isValid"`
}

// Status is a snapshot of the interaction state. The zero value is an idle
// editor.
type Status struct {
	SelectedNodes      []string    `json:"selectedNodes,omitempty"`
	DraggingNodes      []string    `json:"draggingNodes,omitempty"`
	ResizingNodes      []string    `json:"resizingNodes,omitempty"`
	SelectedEdges      []string    `json:"selectedEdges,omitempty"`
	DraggingWaypoints  []string    `json:"draggingWaypoints,omitempty"`
	MovingDividerLines []string    `json:"movingDividerLines,omitempty"`
	OngoingConnection  *Connection `json:"ongoingConnection,omitempty"`
	DropTarget         *DropTarget `json:"dropTarget,omitempty"`
	EdgeBeingUpdated   string      `json:"edgeBeingUpdated,omitempty"`
}

// Idle returns a new idle status.
func Idle() *Status { return &Status{} }

// NodeOption changes one aspect of a node's status.
type NodeOption func(*Status, string)

// Selected sets whether a node is selected.
func Selected(v bool) NodeOption {
	return func(s *Status, id string) { s.SelectedNodes = toggle(s.SelectedNodes, id, v) }
}

// Dragging sets whether a node is being dragged.
func Dragging(v bool) NodeOption {
	return func(s *Status, id string) { s.DraggingNodes = toggle(s.DraggingNodes, id, v) }
}

// Resizing sets whether a node is being resized.
func Resizing(v bool) NodeOption {
	return func(s *Status, id string) { s.ResizingNodes = toggle(s.ResizingNodes, id, v) }
}

// EdgeOption changes one aspect of an edge's status.
type EdgeOption func(*Status, string)

// EdgeSelected sets whether an edge is selected.
func EdgeSelected(v bool) EdgeOption {
	return func(s *Status, id string) { s.SelectedEdges = toggle(s.SelectedEdges, id, v) }
}

// DraggingWaypoint sets whether one of an edge's waypoints is being dragged.
func DraggingWaypoint(v bool) EdgeOption {
	return func(s *Status, id string) { s.DraggingWaypoints = toggle(s.DraggingWaypoints, id, v) }
}

func toggle(ids []string, id string, on bool) []string {
	i := slices.Index(ids, id)
	switch {
	case on && i < 0:
		return append(slices.Clip(ids), id)
	case !on && i >= 0:
		return slices.Delete(slices.Clone(ids), i, i+1)
	default:
		return ids
	}
}

func (s *Status) clone() *Status {
	if s == nil {
		return &Status{}
	}
	out := *s
	if s.OngoingConnection != nil {
		c := *s.OngoingConnection
		out.OngoingConnection = &c
	}
	if s.DropTarget != nil {
		d := *s.DropTarget
		out.DropTarget = &d
	}
	return &out
}

// WithNodeStatus returns a copy of s with opts applied to node id. Options
// left out keep their current value.
func (s *Status) WithNodeStatus(id string, opts ...NodeOption) *Status {
	out := s.clone()
	for _, opt := range opts {
		opt(out, id)
	}
	return out
}

// WithEdgeStatus returns a copy of s with opts applied to edge id.
func (s *Status) WithEdgeStatus(id string, opts ...EdgeOption) *Status {
	out := s.clone()
	for _, opt := range opts {
		opt(out, id)
	}
	return out
}

// WithDividerLineStatus returns a copy of s where the divider line of
// container id is or is not being moved.
func (s *Status) WithDividerLineStatus(id string, moving bool) *Status {
	out := s.clone()
	out.MovingDividerLines = toggle(out.MovingDividerLines, id, moving)
	return out
}

// WithOngoingConnection returns a copy of s with c as the connection being
// drawn. A nil c ends the connection.
func (s *Status) WithOngoingConnection(c *Connection) *Status {
	out := s.clone()
	out.OngoingConnection = nil
	if c != nil {
		cc := *c
		out.OngoingConnection = &cc
	}
	return out
}

// WithDropTarget returns a copy of s with d as the drop target. A nil d
// clears it.
func (s *Status) WithDropTarget(d *DropTarget) *Status {
	out := s.clone()
	out.DropTarget = nil
	if d != nil {
		dd := *d
		out.DropTarget = &dd
	}
	return out
}

// WithEdgeBeingUpdated returns a copy of s where edge id is being reconnected.
func (s *Status) WithEdgeBeingUpdated(id string) *Status {
	out := s.clone()
	out.EdgeBeingUpdated = id
	return out
}

// WithSelection returns a copy of s selecting exactly nodes and edges.
func (s *Status) WithSelection(nodes, edges []string) *Status {
	out := s.clone()
	out.SelectedNodes = unique(nodes)
	out.SelectedEdges = unique(edges)
	return out
}

// unique returns ids without repeats, in order of first occurrence.
func unique(ids []string) []string {
	if ids == nil {
		return nil
	}
	seen := sets.New[string]()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen.Has(id) {
			seen.Insert(id)
			out = append(out, id)
		}
	}
	return out
}

// IsNodeSelected reports whether node id is selected.
func (s *Status) IsNodeSelected(id string) bool { return s != nil && slices.Contains(s.SelectedNodes, id) }

// IsNodeDragging reports whether node id is being dragged.
func (s *Status) IsNodeDragging(id string) bool { return s != nil && slices.Contains(s.DraggingNodes, id) }

// IsNodeResizing reports whether node id is being resized.
func (s *Status) IsNodeResizing(id string) bool { return s != nil && slices.Contains(s.ResizingNodes, id) }

// IsEdgeSelected reports whether edge id is selected.
func (s *Status) IsEdgeSelected(id string) bool { return s != nil && slices.Contains(s.SelectedEdges, id) }

// IsDraggingWaypoint reports whether a waypoint of edge id is being dragged.
func (s *Status) IsDraggingWaypoint(id string) bool {
	return s != nil && slices.Contains(s.DraggingWaypoints, id)
}

// IsMovingDividerLine reports whether the divider line of container id is
// being moved.
func (s *Status) IsMovingDividerLine(id string) bool {
	return s != nil && slices.Contains(s.MovingDividerLines, id)
}

// IsEditingInProgress reports whether any gesture that edits the document is
// underway: a drag, a resize, a waypoint drag, a divider move or a connection
// being drawn. Plain selection does not count.
func (s *Status) IsEditingInProgress() bool {
	if s == nil {
		return false
	}
	return len(s.DraggingNodes) > 0 ||
		len(s.ResizingNodes) > 0 ||
		len(s.DraggingWaypoints) > 0 ||
		len(s.MovingDividerLines) > 0 ||
		s.OngoingConnection != nil ||
		s.EdgeBeingUpdated != ""
}
