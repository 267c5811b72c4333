package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridfit/internal/server"
	"github.com/matzehuels/gridfit/pkg/cache"
	"github.com/matzehuels/gridfit/pkg/pipeline"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr          string
	noCache       bool
	redisAddr     string
	redisPassword string
	redisDB       int
	namespace     string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layout resolution over HTTP",
		Long: `Start an HTTP API that resolves profiles from JSON requests.

Profiles are cached in the local cache directory, or in Redis when --redis
is given so that several instances share one cache.`,
		Example: `  gridfit serve --addr :8080
  gridfit serve --redis localhost:6379 --namespace staging:`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var (
				store cache.Cache
				keyer cache.Keyer
				err   error
			)
			switch {
			case opts.noCache:
				store = cache.NewNullCache()
			case opts.redisAddr != "":
				store, err = cache.NewRedisCache(ctx, cache.RedisConfig{
					Addr:      opts.redisAddr,
					Password:  opts.redisPassword,
					DB:        opts.redisDB,
					Namespace: opts.namespace,
				})
				if err != nil {
					return err
				}
				logger.Info("Using redis cache", "addr", opts.redisAddr, "namespace", opts.namespace)
			default:
				if store, err = newCache(false); err != nil {
					return err
				}
				if opts.namespace != "" {
					keyer = cache.NewScopedKeyer(nil, opts.namespace)
				}
			}

			runner := pipeline.NewRunner(store, keyer, logger)
			defer runner.Close()

			return server.New(runner, logger).ListenAndServe(ctx, opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the profile cache")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for a shared cache")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "cache key prefix (Redis namespace with --redis)")

	return cmd
}
