package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/render"
)

// pointsPerInch converts diagram coordinates to Graphviz inches.
const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Detailed adds the node type and snapped bounds to labels.
	// When false, only the name (or id) is shown.
	Detailed bool
	// HideExternal leaves out nodes and edges of included models.
	HideExternal bool
}

// ToDOT converts a render graph to Graphviz DOT source.
//
// Nodes are pinned at their snapped positions and sizes, so the picture
// matches what an editor draws. Graphviz y grows upwards; positions are
// mirrored to keep the diagram's top at the top. Render with the neato
// engine, which [RenderSVG] does.
func ToDOT(data *diagram.Data, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  outputorder=nodesfirst;\n")
	buf.WriteString("  node [shape=box, style=\"filled\", fillcolor=white, fontsize=12, fixedsize=true];\n")
	buf.WriteString("\n")

	for _, n := range data.Nodes {
		if opts.HideExternal && n.External {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range data.Edges {
		if opts.HideExternal && e.External {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *diagram.RenderNode, detailed bool) []string {
	b := n.Bounds()
	attrs := []string{
		fmt.Sprintf("label=%q", label(n, detailed)),
		fmt.Sprintf("pos=\"%s,%s!\"", inches(b.X+b.Width/2), inches(-(b.Y + b.Height/2))),
		fmt.Sprintf("width=%s", inches(b.Width)),
		fmt.Sprintf("height=%s", inches(b.Height)),
	}
	attrs = append(attrs, styleOf(n)...)
	if n.Selected {
		attrs = append(attrs, "penwidth=3", "color=\"#1f6feb\"")
	}
	return attrs
}

func label(n *diagram.RenderNode, detailed bool) string {
	name := n.Name
	if name == "" {
		name = n.ID
	}
	if !detailed {
		return name
	}
	b := n.Bounds()
	return fmt.Sprintf("%s\n%s\n%gx%g at %g,%g", name, n.Type, b.Width, b.Height, b.X, b.Y)
}

// styleOf maps node types of both flavors to DOT shapes. Unknown types
// stay plain boxes.
func styleOf(n *diagram.RenderNode) []string {
	var attrs []string
	switch n.Type {
	case "inputData", "task", "subProcess":
		attrs = []string{"style=\"rounded,filled\""}
	case "bkm":
		attrs = []string{"shape=octagon"}
	case "knowledgeSource", "dataObject":
		attrs = []string{"shape=note"}
	case "textAnnotation":
		attrs = []string{"shape=underline", "style=solid"}
	case "decisionService":
		attrs = []string{"style=\"rounded\"", "fillcolor=none"}
	case "group":
		attrs = []string{"style=dashed", "fillcolor=none"}
	case "lane":
		attrs = []string{"style=solid", "fillcolor=none"}
	case "startEvent":
		attrs = []string{"shape=circle"}
	case "intermediateCatchEvent", "intermediateThrowEvent":
		attrs = []string{"shape=doublecircle"}
	case "endEvent":
		attrs = []string{"shape=circle", "penwidth=3"}
	case "gateway":
		attrs = []string{"shape=diamond"}
	}
	if n.External {
		attrs = append(attrs, "fontcolor=grey40")
	}
	if n.Layer == diagram.LayerContainers || n.Layer == diagram.LayerGroups {
		attrs = append(attrs, "labelloc=t")
	}
	return attrs
}

func edgeAttrs(e *diagram.RenderEdge) []string {
	var attrs []string
	switch e.Type {
	case "knowledgeRequirement":
		attrs = []string{"style=dashed"}
	case "authorityRequirement":
		attrs = []string{"style=dashed", "arrowhead=dot"}
	case "association":
		attrs = []string{"style=dotted", "arrowhead=none"}
	default:
		attrs = []string{"style=solid"}
	}
	if e.Selected {
		attrs = append(attrs, "penwidth=3", "color=\"#1f6feb\"")
	}
	return attrs
}

func inches(v float64) string {
	return strconv.FormatFloat(v/pointsPerInch, 'f', 4, 64)
}

// RenderSVG renders DOT source produced by [ToDOT] to SVG with the neato
// engine, honoring pinned positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's fixed pt sizes with a viewBox so the
// SVG scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders DOT source to PDF through [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source to PNG at the given scale through [RenderSVG]
// and [render.ToPNG].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
