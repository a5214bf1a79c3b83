package cli

import (
	"github.com/spf13/cobra"

	"github.com/waveforge/waveforge/internal/server"
	"github.com/waveforge/waveforge/pkg/cache"
)

// newServeCmd creates the HTTP API server command.
func newServeCmd() *cobra.Command {
	var (
		techFile string
		addr     string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server exposing layers, the layer stack,
cross-sections, cell building, and route computation as JSON endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var store cache.Cache
			if !noCache {
				c, err := openCache()
				if err != nil {
					logger.Warn("cache unavailable, serving without it", "err", err)
				} else {
					store = c
					defer c.Close()
				}
			}

			p, err := loadPDK(techFile, store)
			if err != nil {
				return err
			}

			srv, err := server.New(server.Config{
				Tech:   p.Tech,
				XS:     p.XS,
				Cells:  p.Cells,
				Logger: logger,
				Addr:   addr,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&techFile, "tech", "t", "", "tech TOML file (default: built-in generic)")
	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "serve without the component cache")
	return cmd
}
