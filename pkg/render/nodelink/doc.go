// Package nodelink draws render graphs with Graphviz.
//
// [ToDOT] turns a diagram.Data into DOT source with every node pinned at its
// snapped bounds; [RenderSVG] lays it out with the neato engine so the pinned
// positions hold and only edges are routed:
//
//	dot := nodelink.ToDOT(data, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// Node shapes follow the node type (octagons for knowledge models, diamonds
// for gateways, dashed boxes for groups); selected nodes and edges are drawn
// with a heavier pen.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
