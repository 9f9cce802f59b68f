// Package cli implements the chileviz command-line interface.
//
// # Commands
//
//   - render: draw one chart from a dataset file or database
//   - inspect: print the computed layout of a chart as a table
//   - batch: render every chart of a TOML config concurrently
//   - watch: re-render a chart whenever its dataset changes
//   - pick: choose a chart of a config interactively and render it
//   - cache: clear or locate the artifact cache
//
// All commands log through charmbracelet/log; -v switches to debug level.
// The logger travels in the command context (see loggerFromContext).
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chileviz/pkg/buildinfo"
	"github.com/matzehuels/chileviz/pkg/cache"
	"github.com/matzehuels/chileviz/pkg/config"
	"github.com/matzehuels/chileviz/pkg/pipeline"
)

const appName = "chileviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w at level.
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
		Short: "chileviz draws charts of Chilean regional statistics",
		Long: `chileviz turns per-region datasets into charts: a petal chart of population
density, a Sankey diagram of internal migration, horizon bands of births and a
choropleth map. Datasets are read from JSON, YAML, TOML, CSV, XLSX files or SQL
databases.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner over the cache cfg selects. Cache keys
// are scoped to the build so that a new release never serves old drawings.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	ch, err := openCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	r := pipeline.NewRunner(ch, keyer, loggerFromContext(ctx))
	if cfg != nil {
		if r.TTL, err = cfg.CacheTTL(); err != nil {
			ch.Close()
			return nil, err
		}
	}
	return r, nil
}

// openCache opens the configured backend. Without a config file the
// environment alone decides.
func openCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	cfg.ApplyEnv(os.Getenv)
	cc := cfg.CacheConfig()
	if cc.Dir == "" && (cc.Backend == "" || cc.Backend == cache.BackendFile) {
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		cc.Dir = dir
	}
	return cache.Open(ctx, cc)
}

// cacheDir returns the default cache directory, following XDG_CACHE_HOME
// when set (~/.cache/chileviz otherwise).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
