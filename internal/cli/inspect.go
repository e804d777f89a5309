package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// inspectCommand creates the inspect command, an interactive browser over
// the render graph of one page.
func (c *CLI) inspectCommand() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "inspect <document>",
		Short: "Browse a diagram page and try selections interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(args[0], page)
			if err != nil {
				return err
			}
			if len(s.Data().Nodes) == 0 {
				printInfo("Page %d of %s has no nodes", page, args[0])
				return nil
			}
			p := tea.NewProgram(NewInspectModel(s), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 0, "diagram page")
	return cmd
}
