package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/pkg/graph"
	"github.com/matzehuels/modelgraph/pkg/session"
	"github.com/matzehuels/modelgraph/pkg/status"
)

// compileOpts holds the flags of the compile command.
type compileOpts struct {
	output   string   // render graph file; stdout when empty
	page     int      // diagram page to compile
	selected []string // node or edge ids to mark selected
}

// compileCommand creates the compile command, which writes the render graph
// of one page as JSON.
func (c *CLI) compileCommand() *cobra.Command {
	var opts compileOpts

	cmd := &cobra.Command{
		Use:   "compile <document>",
		Short: "Compile a diagram page into its render graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(args[0], opts.page)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			if unknown := selectIDs(s, opts.selected); len(unknown) > 0 {
				logger.Warn("ids not drawn on the page", "page", opts.page, "ids", strings.Join(unknown, ","))
			}

			if opts.output == "" {
				return graph.Write(s.Data(), cmd.OutOrStdout())
			}

			prog := newProgress(logger)
			data := s.Data()
			if err := graph.WriteFile(data, opts.output); err != nil {
				return err
			}
			prog.done("Compiled " + args[0])

			printSuccess("Compiled %s page %d", s.Flavor().Name, s.Page())
			printStats(len(data.Nodes), len(data.Edges), false)
			printFile(opts.output)
			printNextStep("Draw it", "modelgraph render "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 0, "diagram page")
	cmd.Flags().StringSliceVar(&opts.selected, "select", nil, "node or edge ids to select (comma-separated)")

	return cmd
}

// selectIDs marks ids selected. Ids drawn as edges select the edge. Ids not
// drawn on the page are returned.
func selectIDs(s *session.Session, ids []string) (unknown []string) {
	if len(ids) == 0 {
		return nil
	}
	data := s.Data()
	for _, id := range ids {
		switch {
		case data.NodesByID[id] != nil:
			s.SetNodeStatus(id, status.Selected(true))
		case data.EdgesByID[id] != nil:
			s.SetEdgeStatus(id, status.EdgeSelected(true))
		default:
			unknown = append(unknown, id)
		}
	}
	return unknown
}
