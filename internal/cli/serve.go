package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inspectreport/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report API over HTTP",
		Long: `Serve the report API over HTTP until interrupted.

Routes:
  GET    /healthz
  POST   /v1/reports?format=pdf|png|svg|json&archive=true
  POST   /v1/reports/validate
  POST   /v1/score
  GET    /v1/archive
  GET    /v1/archive/{id}
  DELETE /v1/archive/{id}

Request bodies are inspection records with inline data-URL photos. The cache
and archive backends come from the [cache] and [archive] config sections.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	store, err := c.newArchive(ctx)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	if store != nil {
		defer store.Close()
	}

	cfg := c.cfg.Server
	if addr != "" {
		cfg.Addr = addr
	}
	srv := server.New(server.Options{
		Runner:  runner,
		Archive: store,
		Theme:   c.cfg.Theme(),
		Config:  cfg,
		Logger:  loggerFromContext(ctx),
	})
	return srv.ListenAndServe(ctx)
}
