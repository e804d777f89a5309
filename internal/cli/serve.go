package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/internal/server"
)

// serveCommand creates the serve command, which exposes compile, structure
// and edit operations over HTTP until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config
			if addr != "" {
				cfg.Server.Addr = addr
			}
			srv, err := server.New(cfg, c.Logger)
			if err != nil {
				return err
			}
			defer srv.Close()
			printInfo("Serving %s on %s", cfg.Flavor, StyleValue.Render(cfg.Server.Addr))
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
