// Package render converts diagram drawings between output formats.
//
// The [nodelink] subpackage draws render graphs as SVG with Graphviz. [ToPDF]
// and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
package render
