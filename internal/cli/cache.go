package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chileviz/pkg/cache"
	"github.com/matzehuels/chileviz/pkg/config"
	"github.com/matzehuels/chileviz/pkg/errors"
)

func (c *CLI) cacheCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered-artifact cache",
		Long: `Manage the cache of rendered charts. The backend is the file cache under
~/.cache/chileviz unless CHILEVIZ_CACHE_BACKEND, CHILEVIZ_CACHE_DIR or the
[cache] table of --config select another.`,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file whose [cache] table to use")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every cached artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheClear(cmd.Context(), configPath)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCachePath(cmd.Context(), configPath)
		},
	})
	return cmd
}

func loadOptionalConfig(path string) (*config.Config, error) {
	if path == "" {
		return nil, nil
	}
	return config.Load(path)
}

func runCacheClear(ctx context.Context, configPath string) error {
	cfg, err := loadOptionalConfig(configPath)
	if err != nil {
		return err
	}
	if fc, ok := fileCacheDir(cfg); ok {
		if _, err := os.Stat(fc); os.IsNotExist(err) {
			printInfo("Cache is empty")
			return nil
		}
	}

	ch, err := openCache(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer ch.Close()

	clearer, ok := ch.(cache.Clearer)
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "the %T backend cannot be cleared", ch)
	}
	n, err := clearer.Clear(ctx)
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	printSuccess("Cleared %d cached artifacts", n)
	if fc, ok := ch.(*cache.FileCache); ok {
		printDetail("Directory: %s", fc.Dir())
	}
	return nil
}

func runCachePath(ctx context.Context, configPath string) error {
	cfg, err := loadOptionalConfig(configPath)
	if err != nil {
		return err
	}
	if dir, ok := fileCacheDir(cfg); ok {
		fmt.Println(dir)
		return nil
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	printKeyValue("backend", cfg.Cache.Backend)
	if cfg.Cache.RedisAddr != "" {
		printKeyValue("address", cfg.Cache.RedisAddr)
	}
	return nil
}

// fileCacheDir resolves the file cache directory, reporting false when
// another backend is configured.
func fileCacheDir(cfg *config.Config) (string, bool) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	cfg.ApplyEnv(os.Getenv)
	cc := cfg.CacheConfig()
	if cc.Backend != "" && cc.Backend != cache.BackendFile {
		return "", false
	}
	if cc.Dir != "" {
		return cc.Dir, true
	}
	dir, err := cacheDir()
	if err != nil {
		return "", false
	}
	return dir, true
}
