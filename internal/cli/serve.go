package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archexport/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr   string
	source sourceFlags // backs /v1/diagrams; "none" disables the route
}

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the export API over HTTP",
		Long: `Serve the export API over HTTP.

POST /v1/export/{format} exports the diagram in the request body.
GET /v1/diagrams/{id}/export/{format} exports a stored snapshot when a
snapshot source is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	opts.source.addFlags(cmd, sourceNone, sourceNone, sourceLocal, sourceMongo)

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if opts.addr != "" {
		addr = opts.addr
	}

	provider, closeFn, err := opts.source.open(ctx, c, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if provider != nil {
		printInfo("Serving snapshots from %s", StyleHighlight.Render(provider.Name()))
	}
	printNextStep("Try", "curl --data @diagram.json "+baseURL(addr)+"/v1/export/markdown")

	srv := server.New(server.Config{
		Addr:            addr,
		Logger:          c.Logger,
		Defaults:        cfg.ExportOptions(),
		Provider:        provider,
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
	})
	return srv.Serve(ctx)
}

// baseURL turns a listen address into a URL a local client can use.
func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
