package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/pkg/render/nodelink"
)

const defaultScale = 2.0

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output       string   // output file (single format) or base path (several)
	formats      []string // output formats: "dot", "svg", "pdf", "png"
	page         int      // diagram page to draw
	selected     []string // ids drawn as selected
	detailed     bool     // add node types and bounds to labels
	hideExternal bool     // leave out nodes of included models
	scale        float64  // PNG scale factor
	noCache      bool     // skip the artifact cache
}

// renderCommand creates the render command, which draws a diagram page with
// Graphviz. Rendered SVG, PDF and PNG artifacts are cached by the hash of
// their DOT source, so re-rendering an unchanged page skips Graphviz.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: defaultScale}

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Draw a diagram page as DOT, SVG, PDF or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (several)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 0, "diagram page")
	cmd.Flags().StringSliceVar(&opts.selected, "select", nil, "node or edge ids to draw selected (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with their type and bounds")
	cmd.Flags().BoolVar(&opts.hideExternal, "hide-external", false, "leave out nodes of included models")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render without the artifact cache")

	return cmd
}

// parseFormats parses the --format flag. If empty, it defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{nodelink.FormatSVG}
	}
	return strings.Split(s, ",")
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !nodelink.ValidFormat(f) {
			return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', 'pdf', or 'png')", f)
		}
	}
	return nil
}

// basePath derives the base output path. An empty output strips the
// extension from input; an output with a format extension loses it.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if nodelink.ValidFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where format is written. A single format honors
// --output as given.
func outputPath(opts *renderOpts, input, format string) string {
	if len(opts.formats) == 1 && opts.output != "" {
		return opts.output
	}
	return basePath(opts.output, input) + "." + format
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	s, err := c.openSession(input, opts.page)
	if err != nil {
		return err
	}
	if unknown := selectIDs(s, opts.selected); len(unknown) > 0 {
		logger.Warn("ids not drawn on the page", "page", opts.page, "ids", strings.Join(unknown, ","))
	}
	data := s.Data()
	dot := nodelink.ToDOT(data, nodelink.Options{Detailed: opts.detailed, HideExternal: opts.hideExternal})
	logger.Debugf("Generated DOT: %d bytes", len(dot))

	store, err := c.newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()
	renderer := &nodelink.Renderer{Cache: store, Logger: logger}

	anyCached := false
	for _, format := range opts.formats {
		out, cached, err := renderFormat(ctx, renderer, dot, format, opts.scale)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		anyCached = anyCached || cached

		path := outputPath(opts, input, format)
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return err
		}
		logger.Infof("Generated %s", path)
		printFile(path)
	}
	printStats(len(data.Nodes), len(data.Edges), anyCached)
	return nil
}

// renderFormat renders one format under a spinner.
func renderFormat(ctx context.Context, r *nodelink.Renderer, dot, format string, scale float64) ([]byte, bool, error) {
	if format == nodelink.FormatDOT {
		return r.Render(ctx, dot, format, scale)
	}
	spinner := newSpinnerWithContext(ctx, "Rendering "+format+"...")
	spinner.Start()
	defer spinner.Stop()
	return r.Render(ctx, dot, format, scale)
}
