package diagram

import (
	"math"

	"github.com/matzehuels/modelgraph/pkg/document"
)

// NodeType is the closed set of node kinds of a flavor.
type NodeType string

// EdgeType is the closed set of edge kinds of a flavor.
type EdgeType string

// Layer is the z-order band a render node paints in.
type Layer int

const (
	// LayerGroups holds groups and lanes, beneath everything else.
	LayerGroups Layer = 0
	// LayerContainers holds sub-processes and decision services.
	LayerContainers Layer = 1000
	// LayerNodes holds regular nodes.
	LayerNodes Layer = 2000
	// LayerAttached holds nodes attached to a host, such as boundary events.
	LayerAttached Layer = 3000
)

func (l Layer) String() string {
	switch l {
	case LayerGroups:
		return "groups"
	case LayerContainers:
		return "containers"
	case LayerNodes:
		return "nodes"
	case LayerAttached:
		return "attached"
	default:
		return "unknown"
	}
}

// Size policy shared by all flavors.
const (
	NodeMinWidth  = 160
	NodeMinHeight = 80

	// ContainerPadding is the interior margin containers keep around their
	// children.
	ContainerPadding = 60

	// DividerPadding is the distance a divider line keeps from the children
	// on either side of it.
	DividerPadding = 100
)

// Handle is the point of a shape an edge endpoint is attached to.
type Handle string

const (
	HandleCenter Handle = "center"
	HandleTop    Handle = "top"
	HandleRight  Handle = "right"
	HandleBottom Handle = "bottom"
	HandleLeft   Handle = "left"
)

// handleTolerance is how far a waypoint may be from a handle and still count
// as attached to it.
const handleTolerance = 1

// Position returns where h sits on b.
func (h Handle) Position(b document.Bounds) document.Point {
	switch h {
	case HandleTop:
		return document.Point{X: b.X + b.Width/2, Y: b.Y}
	case HandleRight:
		return document.Point{X: b.X + b.Width, Y: b.Y + b.Height/2}
	case HandleBottom:
		return document.Point{X: b.X + b.Width/2, Y: b.Y + b.Height}
	case HandleLeft:
		return document.Point{X: b.X, Y: b.Y + b.Height/2}
	default:
		return document.Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
	}
}

// Offset returns how far a waypoint attached to h moves when its shape grows
// by delta while keeping its top-left corner.
func (h Handle) Offset(delta document.Dimension) document.Point {
	switch h {
	case HandleTop:
		return document.Point{X: delta.Width / 2, Y: 0}
	case HandleRight:
		return document.Point{X: delta.Width, Y: delta.Height / 2}
	case HandleBottom:
		return document.Point{X: delta.Width / 2, Y: delta.Height}
	case HandleLeft:
		return document.Point{X: 0, Y: delta.Height / 2}
	default:
		return document.Point{X: delta.Width / 2, Y: delta.Height / 2}
	}
}

var handleOrder = []Handle{HandleCenter, HandleTop, HandleRight, HandleBottom, HandleLeft}

// HandleAt classifies a waypoint against the handles of b. ok is false when
// the waypoint is near no handle; the center is reported in that case.
func HandleAt(b document.Bounds, p document.Point) (h Handle, ok bool) {
	for _, h := range handleOrder {
		hp := h.Position(b)
		if math.Hypot(hp.X-p.X, hp.Y-p.Y) <= handleTolerance {
			return h, true
		}
	}
	return HandleCenter, false
}
