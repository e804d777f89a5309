package diagram

import (
	"maps"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/snapgrid"
	"github.com/matzehuels/modelgraph/pkg/structure"
)

// Flavor describes one editor kind. Flavors are package-level values built
// at initialization; use [Flavor.WithMinSizes] to derive a configured copy
// instead of editing one.
type Flavor struct {
	Name string

	// NodeTypes and EdgeTypes list the closed type sets in display order.
	NodeTypes []NodeType
	EdgeTypes []EdgeType

	Structure   *structure.Structure[NodeType, EdgeType]
	Containment *structure.Containment[NodeType]

	// NodeTags and EdgeTags map element kinds to types. A kind found in
	// neither map is ignored by the compiler.
	NodeTags map[string]NodeType
	EdgeTags map[string]EdgeType

	// NewNodeKinds names the element kind new nodes of a type are created
	// with. Types missing from the map use the type name.
	NewNodeKinds map[NodeType]string

	// OwnedEdgeTypes are stored as requirements of their target element
	// rather than as elements of their own.
	OwnedEdgeTypes []EdgeType

	// RootKinds are the element kinds whose descendants are drawable. Empty
	// means every top-level element is drawable.
	RootKinds []string

	// MinSizes and DefaultSizes hold unsnapped sizes. Types missing from
	// MinSizes fall back to NodeMinWidth x NodeMinHeight.
	MinSizes     map[NodeType]document.Dimension
	DefaultSizes map[NodeType]document.Dimension
	// CollapsedSizes fixes the size of collapsed shapes of a type.
	CollapsedSizes map[NodeType]document.Dimension

	// DividerType is the container type that carries a divider line, or
	// empty when the flavor has none.
	DividerType NodeType

	// LayerOf returns the paint layer of a node type. It must handle every
	// type in NodeTypes.
	LayerOf func(NodeType) Layer

	// PaintOrder ranks node types for the paint-order sort, lowest first.
	// Types missing from the map sort last.
	PaintOrder map[NodeType]int
}

// NodeTypeOf returns the node type of an element kind.
func (f *Flavor) NodeTypeOf(kind string) (NodeType, bool) {
	t, ok := f.NodeTags[kind]
	return t, ok
}

// EdgeTypeOf returns the edge type of an element kind.
func (f *Flavor) EdgeTypeOf(kind string) (EdgeType, bool) {
	t, ok := f.EdgeTags[kind]
	return t, ok
}

// HasNodeType reports whether t belongs to the flavor.
func (f *Flavor) HasNodeType(t NodeType) bool {
	for _, n := range f.NodeTypes {
		if n == t {
			return true
		}
	}
	return false
}

// HasEdgeType reports whether t belongs to the flavor.
func (f *Flavor) HasEdgeType(t EdgeType) bool {
	for _, e := range f.EdgeTypes {
		if e == t {
			return true
		}
	}
	return false
}

// NodeKind returns the element kind new nodes of type t are created with.
func (f *Flavor) NodeKind(t NodeType) string {
	if k, ok := f.NewNodeKinds[t]; ok {
		return k
	}
	return string(t)
}

// IsOwnedEdgeType reports whether edges of type t are requirements of their
// target.
func (f *Flavor) IsOwnedEdgeType(t EdgeType) bool {
	return slices.Contains(f.OwnedEdgeTypes, t)
}

// MinSize returns the minimum size of t ceiled to grid.
func (f *Flavor) MinSize(t NodeType, grid snapgrid.Grid) document.Dimension {
	d, ok := f.MinSizes[t]
	if !ok {
		d = document.Dimension{Width: NodeMinWidth, Height: NodeMinHeight}
	}
	return snapgrid.MinSize(grid, d.Width, d.Height)
}

// DefaultSize returns the size new shapes of t are created with, never
// smaller than [Flavor.MinSize].
func (f *Flavor) DefaultSize(t NodeType, grid snapgrid.Grid) document.Dimension {
	min := f.MinSize(t, grid)
	d, ok := f.DefaultSizes[t]
	if !ok {
		return min
	}
	d = snapgrid.MinSize(grid, d.Width, d.Height)
	return document.Dimension{Width: math.Max(d.Width, min.Width), Height: math.Max(d.Height, min.Height)}
}

// ShapeSize returns the size a shape of type t is drawn with.
func (f *Flavor) ShapeSize(t NodeType, s *document.Shape, grid snapgrid.Grid) document.Dimension {
	if s.IsCollapsed {
		if d, ok := f.CollapsedSizes[t]; ok {
			return d
		}
	}
	var b document.Bounds
	if s.Bounds != nil {
		b = *s.Bounds
	}
	return snapgrid.SnapDimensions(grid, b, f.MinSize(t, grid))
}

func (f *Flavor) paintRank(t NodeType) int {
	if r, ok := f.PaintOrder[t]; ok {
		return r
	}
	return math.MaxInt
}

// WithMinSizes returns a copy of f whose minimum sizes are overridden by
// sizes. Entries for types outside the flavor are logged and ignored.
func (f *Flavor) WithMinSizes(sizes map[NodeType]document.Dimension) *Flavor {
	out := *f
	out.MinSizes = maps.Clone(f.MinSizes)
	if out.MinSizes == nil {
		out.MinSizes = make(map[NodeType]document.Dimension)
	}
	for t, d := range sizes {
		if !f.HasNodeType(t) {
			log.Warn("ignoring minimum size for unknown node type", "flavor", f.Name, "type", t)
			continue
		}
		out.MinSizes[t] = d
	}
	return &out
}
