package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/memestyle/internal/server"
	"github.com/matzehuels/memestyle/pkg/storage"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored styles over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			store, err := c.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			logger := loggerFromContext(ctx)
			logger.Info("serving styles", "backend", storage.Backend(cfg.Storage.Backend), "addr", addr)
			return server.New(store, server.WithLogger(logger)).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, localhost:8080)")
	return cmd
}
