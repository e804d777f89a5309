// Package snapgrid implements the grid that shape positions and dimensions
// are aligned to.
//
// Snapping is a pure function of the grid and the input: a disabled grid, or
// a grid with a zero step on an axis, leaves that axis untouched. Positions
// and sizes read from a document are floored, minimum sizes are ceiled so
// that the snapped minimum never drops below the real one.
package snapgrid

import (
	"math"

	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
)

// Grid is the snapping configuration of an editor.
type Grid struct {
	Enabled bool    `json:"isEnabled" toml:"enabled"`
	X       float64 `json:"x" toml:"x"`
	Y       float64 `json:"y" toml:"y"`
}

// Default is the grid editors start with.
var Default = Grid{Enabled: true, X: 20, Y: 20}

// Disabled is a grid that snaps nothing.
var Disabled = Grid{}

// Validate reports whether the grid steps are usable.
func (g Grid) Validate() error {
	return errors.ValidateSnapGrid(g.Enabled, g.X, g.Y)
}

// Mode selects the rounding applied when snapping.
type Mode int

const (
	// Floor rounds down to the grid. Used when reading a document.
	Floor Mode = iota
	// Ceil rounds up to the grid. Used for minimum sizes.
	Ceil
	// Round rounds to the nearest grid line.
	Round
)

func (m Mode) String() string {
	switch m {
	case Floor:
		return "floor"
	case Ceil:
		return "ceil"
	case Round:
		return "round"
	default:
		return "unknown"
	}
}

func (m Mode) apply(v, step float64) float64 {
	switch m {
	case Ceil:
		return math.Ceil(v/step) * step
	case Round:
		return math.Round(v/step) * step
	default:
		return math.Floor(v/step) * step
	}
}

func snap(enabled bool, v, step float64, m Mode) float64 {
	if !enabled || step <= 0 {
		return v
	}
	return m.apply(v, step)
}

// SnapPoint aligns p to the grid.
func SnapPoint(g Grid, p document.Point, m Mode) document.Point {
	return document.Point{
		X: snap(g.Enabled, p.X, g.X, m),
		Y: snap(g.Enabled, p.Y, g.Y, m),
	}
}

// SnapPosition returns the floored top-left corner of b.
func SnapPosition(g Grid, b document.Bounds) document.Point {
	return SnapPoint(g, b.Position(), Floor)
}

// SnapDimensions returns the floored size of b, raised to at least min on
// each axis.
func SnapDimensions(g Grid, b document.Bounds, min document.Dimension) document.Dimension {
	return document.Dimension{
		Width:  math.Max(snap(g.Enabled, b.Width, g.X, Floor), min.Width),
		Height: math.Max(snap(g.Enabled, b.Height, g.Y, Floor), min.Height),
	}
}

// MinSize returns the minimum size w x h ceiled to the grid.
func MinSize(g Grid, w, h float64) document.Dimension {
	return document.Dimension{
		Width:  snap(g.Enabled, w, g.X, Ceil),
		Height: snap(g.Enabled, h, g.Y, Ceil),
	}
}
