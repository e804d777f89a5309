package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/document"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/mutation"
	"github.com/matzehuels/modelgraph/pkg/session"
)

// editOpts holds the flags every editing command shares.
type editOpts struct {
	output string // edited document; the input is replaced when empty
	page   int    // diagram page to edit
}

func (o *editOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the edited document here instead of replacing the input")
	cmd.Flags().IntVarP(&o.page, "page", "p", 0, "diagram page")
}

// edit opens input, applies fn and saves the result.
func (c *CLI) edit(input string, opts editOpts, fn func(s *session.Session) error) error {
	s, err := c.openSession(input, opts.page)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	out := opts.output
	if out == "" {
		out = input
	}
	if err := s.Save(out); err != nil {
		return err
	}
	printFile(out)
	return nil
}

// resizeCommand creates the resize command. The node keeps its minimum
// size, a container keeps enclosing its children and attached edges follow
// the handles they end on.
func (c *CLI) resizeCommand() *cobra.Command {
	var (
		opts          editOpts
		id            string
		width, height float64
	)

	cmd := &cobra.Command{
		Use:   "resize <document>",
		Short: "Resize a node and re-anchor its edges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(args[0], opts, func(s *session.Session) error {
				change, err := s.ResizeChangeFor(id, document.Dimension{Width: width, Height: height})
				if err != nil {
					return err
				}
				if err := s.Resize(change); err != nil {
					return err
				}
				got := s.Data().NodesByID[id].Dimension
				printSuccess("Resized %s to %s", id, size(got.Width, got.Height))
				if got.Width != width || got.Height != height {
					printDetail("requested %s; kept the minimum size and children", size(width, height))
				}
				return nil
			})
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "element id of the node")
	cmd.Flags().Float64Var(&width, "width", 0, "new width")
	cmd.Flags().Float64Var(&height, "height", 0, "new height")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

// dividerCommand creates the divider command, which moves the divider line
// of a container to a y relative to its top, clamped so it keeps output and
// encapsulated children on their sides.
func (c *CLI) dividerCommand() *cobra.Command {
	var (
		opts   editOpts
		id     string
		localY float64
	)

	cmd := &cobra.Command{
		Use:   "divider <document>",
		Short: "Move the divider line of a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(args[0], opts, func(s *session.Session) error {
				n, ok := s.Data().NodesByID[id]
				if !ok {
					return errors.New(errors.ErrCodeNotFound, "node %q is not drawn on page %d", id, opts.page)
				}
				err := s.MoveDividerLine(mutation.DividerChange{ElementID: id, ShapeIndex: n.ShapeIndex, LocalY: localY})
				if err != nil {
					return err
				}
				moved := s.Data().NodesByID[id]
				y := moved.Shape.DividerLine.Waypoints[0].Y
				printSuccess("Divider of %s at y %g", id, y)
				if y != moved.Position.Y+localY {
					printDetail("requested %g; clamped to keep children on their sides", moved.Position.Y+localY)
				}
				return nil
			})
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "element id of the container")
	cmd.Flags().Float64Var(&localY, "y", 0, "divider position relative to the container's top")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

// connectCommand creates the connect command. Without --type the connection
// gets the default edge type between the two nodes.
func (c *CLI) connectCommand() *cobra.Command {
	var (
		opts editOpts
		conn diagram.Connection
		typ  string
	)

	cmd := &cobra.Command{
		Use:   "connect <document>",
		Short: "Connect two nodes with an edge the flavor allows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn.Type = diagram.EdgeType(typ)
			return c.edit(args[0], opts, func(s *session.Session) error {
				id, ok, err := s.Connect(conn)
				if err != nil {
					return err
				}
				if !ok {
					printError("%s cannot connect %s to %s", s.Flavor().Name, conn.Source, conn.Target)
					return errors.New(errors.ErrCodeInvalidInput, "connection rejected")
				}
				e := s.Data().EdgesByID[id]
				printSuccess("Connected %s -%s-> %s", e.Source, e.Type, e.Target)
				printDetail("id %s", id)
				return nil
			})
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&conn.Source, "source", "", "source element id")
	cmd.Flags().StringVar(&conn.Target, "target", "", "target element id")
	cmd.Flags().StringVar(&typ, "type", "", "edge type (default: the flavor's default between the nodes)")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

// addNodeCommand creates the add-node command.
func (c *CLI) addNodeCommand() *cobra.Command {
	var (
		opts editOpts
		node session.NewNode
		typ  string
	)

	cmd := &cobra.Command{
		Use:   "add-node <document>",
		Short: "Add a node of the type's default size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node.Type = diagram.NodeType(typ)
			return c.edit(args[0], opts, func(s *session.Session) error {
				id, err := s.AddNode(node)
				if err != nil {
					return err
				}
				b := s.Data().NodesByID[id].Bounds()
				printSuccess("Added %s %s", node.Type, id)
				printDetail("at %g,%g size %s", b.X, b.Y, size(b.Width, b.Height))
				return nil
			})
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&typ, "type", "", "node type")
	cmd.Flags().StringVar(&node.Name, "name", "", "element name")
	cmd.Flags().Float64Var(&node.Position.X, "x", 0, "x position, snapped down to the grid")
	cmd.Flags().Float64Var(&node.Position.Y, "y", 0, "y position, snapped down to the grid")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}
