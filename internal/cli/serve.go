package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pcbdrill/internal/server"
)

// shutdownTimeout bounds how long serve waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

POST a circuit JSON board to /v1/drill to receive its drill file, or to
/v1/tools for the tool table. Conversion defaults come from the [drill]
section of the config file and can be overridden per request with the
plated and flip_y query parameters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(addr, runner, server.Defaults{
				IncludePlated: cfg.Drill.IncludePlated,
				FlipY:         cfg.Drill.FlipY,
				Generator:     cfg.Drill.Generator,
			}, c.Logger)
			return serve(ctx, srv)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// serve runs srv until it fails or ctx is cancelled, then shuts it down.
func serve(ctx context.Context, srv *server.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
