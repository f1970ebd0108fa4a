// Package cli implements the pipreq command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pipreq/internal/config"
	"github.com/matzehuels/pipreq/pkg/buildinfo"
	"github.com/matzehuels/pipreq/pkg/cache"
	"github.com/matzehuels/pipreq/pkg/catalog"
	"github.com/matzehuels/pipreq/pkg/integrations/pypi"
	"github.com/matzehuels/pipreq/pkg/observability"
	"github.com/matzehuels/pipreq/pkg/requirement"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile string
	verbose    bool
	noCache    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "pipreq reads pip requirements files and PEP 440 versions",
		Long: `pipreq parses pip requirements files, pyproject.toml and poetry.lock into
structured requirements, normalizes PEP 440 version strings and keeps a local
catalog of published releases.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/pipreq/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the response cache")

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.lineCommand())
	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.resultsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup runs before every command: it applies --verbose, loads the config
// and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		observability.NewLogHooks(c.Logger).Register()
	}

	cfg, path, err := config.Load(config.LoadOptions{File: c.configFile})
	if err != nil {
		return err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "file", path)
	}
	c.cfg = cfg

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// settings returns the loaded config, or the defaults when setup has not
// run.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		cfg := config.Default()
		c.cfg = &cfg
	}
	return c.cfg
}

// =============================================================================
// Factories
// =============================================================================

// newCache opens the configured cache backend. A file cache that cannot be
// placed degrades to no caching rather than failing the command.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.settings()
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		return rc, nil
	}

	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// newCatalog opens the cache and loads the persisted catalog snapshot. The
// caller closes the returned cache.
func (c *CLI) newCatalog(ctx context.Context) (*catalog.Catalog, cache.Cache, error) {
	backend, err := c.newCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	cfg := c.settings()
	client := pypi.NewClient(backend, cfg.Cache.TTL, pypi.WithBaseURL(cfg.PyPI.URL))
	cat := catalog.New(backend, client, catalog.Options{
		Index:  client.BaseURL(),
		Logger: c.Logger,
	})
	if err := cat.Load(ctx); err != nil {
		_ = backend.Close()
		return nil, nil, err
	}
	return cat, backend, nil
}

// parserOptions routes skipped includes to the logger.
func (c *CLI) parserOptions(extra ...requirement.Option) []requirement.Option {
	return append([]requirement.Option{
		requirement.WithLogger(func(format string, args ...any) {
			c.Logger.Warnf(format, args...)
		}),
	}, extra...)
}
