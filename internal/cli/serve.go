package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/keymapfmt/internal/server"
	"github.com/matzehuels/keymapfmt/pkg/pipeline"
)

type serveOpts struct {
	addr     string
	redisURL string
	noCache  bool
	flags    pipeline.Options
}

// serveCommand creates the serve command, which runs the HTTP API until the
// process is interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{flags: pipeline.DefaultOptions()}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the format and render API over HTTP",
		Long: `Serve exposes format, render and generate endpoints. Flags given here become
the defaults that query parameters override per request.

Artifacts are cached in Redis when --redis-url (or cache.redis_url in the
config file) is set, and in the local cache directory otherwise.`,
		Example: `  keymapfmt serve --addr :9000
  keymapfmt serve --redis-url redis://localhost:6379/0 --split-space 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config()
			if cmd.Flags().Changed("redis-url") {
				cfg.Cache.RedisURL = opts.redisURL
			}

			store, err := c.newServerCache(ctx, opts.noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, nil, c.Logger)
			defer runner.Close()

			scfg := cfg.Server
			if cmd.Flags().Changed("addr") {
				scfg.Addr = opts.addr
			}
			scfg.Defaults = c.options(cmd, &opts.flags)
			if err := scfg.Defaults.Validate(); err != nil {
				return err
			}

			return server.New(runner, c.Logger, scfg).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis URL for the shared artifact cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.flags.Humanize, "humanize", opts.flags.Humanize, "default to readable labels")
	cmd.Flags().Float64Var(&opts.flags.Scale, "scale", opts.flags.Scale, "default pixel scale for png output")
	addGridFlags(cmd, &opts.flags)
	addFormatFlags(cmd, &opts.flags)

	return cmd
}
