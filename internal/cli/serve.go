package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipreq/internal/api"
	"github.com/matzehuels/pipreq/pkg/catalog"
	"github.com/matzehuels/pipreq/pkg/store"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		withCatalog bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Long: `Serve the requirements parser and version normalizer as a JSON API.

Saved results go to MongoDB when mongo.uri is configured and are kept in
memory otherwise. With --catalog, /v1/packages answers from the catalog
snapshot in the configured cache backend.

Examples:
  pipreq serve --addr :9000
  PIPREQ_MONGO_URI=mongodb://localhost:27017 pipreq serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.settings()
			if addr == "" {
				addr = cfg.API.Addr
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			var cat *catalog.Catalog
			if withCatalog {
				var closeCache func() error
				cat, closeCache, err = c.openCatalog(ctx)
				if err != nil {
					return err
				}
				defer closeCache()
			}

			srv := api.New(api.Options{
				Store:        st,
				Catalog:      cat,
				Logger:       loggerFromContext(ctx),
				ReadTimeout:  cfg.API.ReadTimeout,
				WriteTimeout: cfg.API.WriteTimeout,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: api.addr from config)")
	cmd.Flags().BoolVar(&withCatalog, "catalog", true, "serve /v1/packages from the catalog")
	return cmd
}

func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg := c.settings()
	if cfg.Mongo.URI == "" {
		c.Logger.Info("results are kept in memory (mongo.uri not set)")
		return store.NewMemoryStore(), nil
	}
	ms, err := store.NewMongoStore(ctx, store.MongoConfig{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	c.Logger.Info("results are stored in mongo", "database", cfg.Mongo.Database)
	return ms, nil
}

func (c *CLI) openCatalog(ctx context.Context) (*catalog.Catalog, func() error, error) {
	cat, backend, err := c.newCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Info("catalog loaded", "packages", cat.Len(), "index", cat.Index())
	return cat, backend.Close, nil
}
