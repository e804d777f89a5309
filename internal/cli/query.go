package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/flavor"
)

// structureCommand creates the structure command, which prints a flavor's
// node types, connection table and containment rules.
func (c *CLI) structureCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:       "structure [flavor]",
		Short:     "Show the node types and connection rules of a flavor",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: flavor.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := c.Config.Flavor
			if len(args) == 1 {
				name = args[0]
			}
			f, err := c.flavor(name)
			if err != nil {
				return err
			}
			desc := f.Describe()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(desc)
			}
			printStructure(desc)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the structure as JSON")
	return cmd
}

func printStructure(desc diagram.Description) {
	fmt.Println(StyleTitle.Render(strings.ToUpper(desc.Name)))
	fmt.Println()

	nodes := newTable("Node type", "Layer", "Min size", "Default size")
	for _, nt := range desc.NodeTypes {
		nodes.Row(string(nt.Type), nt.Layer, size(nt.MinSize.Width, nt.MinSize.Height),
			size(nt.DefaultSize.Width, nt.DefaultSize.Height))
	}
	fmt.Println(nodes.Render())

	rules := newTable("Source", "Edge", "Targets")
	for _, r := range desc.Connections {
		targets := make([]string, len(r.Targets))
		for i, t := range r.Targets {
			targets[i] = string(t)
		}
		rules.Row(string(r.Source), string(r.Edge), strings.Join(targets, ", "))
	}
	fmt.Println(rules.Render())

	containers := make([]string, 0, len(desc.Containment))
	for container := range desc.Containment {
		containers = append(containers, string(container))
	}
	slices.Sort(containers)
	for _, container := range containers {
		children := desc.Containment[diagram.NodeType(container)]
		names := make([]string, len(children))
		for i, child := range children {
			names[i] = string(child)
		}
		printKeyValue(container, "contains "+strings.Join(names, ", "))
	}
	if desc.DividerType != "" {
		printKeyValue(string(desc.DividerType), "has a divider line")
	}
}

func size(w, h float64) string {
	return fmt.Sprintf("%gx%g", w, h)
}

// validateCommand creates the validate command, which checks one
// connection against a flavor's table. A disallowed connection exits
// non-zero.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <flavor> <source-type> <edge-type> <target-type>",
		Short: "Check whether an edge type may connect two node types",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := c.flavor(args[0])
			if err != nil {
				return err
			}
			src, tgt, err := nodeTypes(f, args[1], args[3])
			if err != nil {
				return err
			}
			edge := diagram.EdgeType(args[2])
			if !f.HasEdgeType(edge) {
				return errors.New(errors.ErrCodeInvalidInput, "%s has no edge type %q", f.Name, edge)
			}

			arrow := fmt.Sprintf("%s -%s-> %s", src, edge, tgt)
			if !f.IsValidConnection(src, edge, tgt) {
				printError("%s is not allowed", arrow)
				if types := f.Structure.EdgeTypesBetween(src, tgt); len(types) > 0 {
					printDetail("allowed: %v", types)
				}
				return errors.New(errors.ErrCodeInvalidInput, "connection %s rejected", arrow)
			}
			printSuccess("%s is allowed", arrow)
			return nil
		},
	}
}

// edgesCommand creates the edges command, which lists the edge types
// between two node types and the one a connection gets by default.
func (c *CLI) edgesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edges <flavor> <source-type> <target-type>",
		Short: "List the edge types that may connect two node types",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := c.flavor(args[0])
			if err != nil {
				return err
			}
			src, tgt, err := nodeTypes(f, args[1], args[2])
			if err != nil {
				return err
			}

			types := f.Structure.EdgeTypesBetween(src, tgt)
			if len(types) == 0 {
				printInfo("No edge type connects %s to %s", src, tgt)
				return nil
			}
			def, _ := f.DefaultEdgeTypeBetween(src, tgt)
			for _, e := range types {
				if e == def {
					printSuccess("%s %s", StyleHighlight.Render(string(e)), StyleDim.Render("(default)"))
					continue
				}
				printInfo("%s", e)
			}
			if len(types) > 1 {
				printWarning("%d edge types qualify; connections default to the first declared", len(types))
			}
			return nil
		},
	}
}

// flavor returns the flavor called name, with the configured minimum sizes
// when it is the configured flavor.
func (c *CLI) flavor(name string) (*diagram.Flavor, error) {
	f, err := flavor.Lookup(name)
	if err != nil {
		return nil, err
	}
	if f.Name == c.Config.Flavor {
		f = c.Config.ApplyTo(f)
	}
	return f, nil
}

func nodeTypes(f *diagram.Flavor, src, tgt string) (diagram.NodeType, diagram.NodeType, error) {
	out := [2]diagram.NodeType{diagram.NodeType(src), diagram.NodeType(tgt)}
	for _, t := range out {
		if !f.HasNodeType(t) {
			return "", "", errors.New(errors.ErrCodeInvalidInput, "%s has no node type %q", f.Name, t)
		}
	}
	return out[0], out[1], nil
}
