// Package config reads the chileviz TOML configuration used by the batch
// and pick commands, plus environment overrides for the cache.
//
// A config file looks like:
//
//	[defaults]
//	formats = ["svg", "png"]
//	out_dir = "out"
//
//	[cache]
//	backend = "file"
//	ttl = "168h"
//
//	[[chart]]
//	name = "densidad"
//	kind = "petal"
//	data = "data/densidad.json"
//
// Relative paths are resolved against the directory of the config file.
// Environment variables override the [cache] table; command-line flags
// override both.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/chileviz/pkg/cache"
	"github.com/matzehuels/chileviz/pkg/chart"
	"github.com/matzehuels/chileviz/pkg/errors"
)

// Environment variables read by [Config.ApplyEnv].
const (
	EnvCacheDir      = "CHILEVIZ_CACHE_DIR"
	EnvCacheBackend  = "CHILEVIZ_CACHE_BACKEND"
	EnvRedisAddr     = "CHILEVIZ_REDIS_ADDR"
	EnvRedisPassword = "CHILEVIZ_REDIS_PASSWORD"
)

// Defaults apply to every chart that does not set its own value.
type Defaults struct {
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	Formats  []string `toml:"formats"`
	OutDir   string   `toml:"out_dir"`
	ColorMap string   `toml:"colormap"`
}

// Cache configures the artifact cache.
type Cache struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	TTL           string `toml:"ttl"`
}

// Chart is one [[chart]] entry.
type Chart struct {
	Name     string   `toml:"name"`
	Kind     string   `toml:"kind"`
	Data     string   `toml:"data"`
	Geo      string   `toml:"geo"`
	Title    string   `toml:"title"`
	Formats  []string `toml:"formats"`
	Group    []string `toml:"group"`
	NoGroup  bool     `toml:"no_group"`
	Ordering string   `toml:"ordering"`
	ColorMap string   `toml:"colormap"`
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	Floor    *float64 `toml:"floor"` // petal radius floor, unset means the chart default
}

// Config is a parsed configuration file.
type Config struct {
	Path     string   `toml:"-"`
	Defaults Defaults `toml:"defaults"`
	Cache    Cache    `toml:"cache"`
	Charts   []Chart  `toml:"chart"`
}

// Load parses and validates the file at path. Unknown keys are rejected so
// typos do not go unnoticed.
func Load(path string) (*Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		if errors.IsNotExist(err) {
			return nil, errors.MissingFile(path, err)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	c.Path = path
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks chart names are unique and every chart names a known
// kind and a dataset.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Charts))
	for i, ch := range c.Charts {
		if ch.Name == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "chart %d has no name", i+1)
		}
		if seen[ch.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate chart name %q", ch.Name)
		}
		seen[ch.Name] = true
		if _, err := chart.ParseKind(ch.Kind); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "chart %q", ch.Name)
		}
		if ch.Data == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "chart %q has no data", ch.Name)
		}
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	return nil
}

// Chart returns the chart entry called name.
func (c *Config) Chart(name string) (Chart, error) {
	for _, ch := range c.Charts {
		if ch.Name == name {
			return ch, nil
		}
	}
	return Chart{}, errors.MissingKey("chart", name)
}

// Resolve makes a relative path relative to the config file's directory.
// DSNs and absolute paths are returned unchanged.
func (c *Config) Resolve(path string) string {
	if path == "" || c.Path == "" || filepath.IsAbs(path) || strings.Contains(path, "://") {
		return path
	}
	return filepath.Join(filepath.Dir(c.Path), path)
}

// CacheTTL parses Cache.TTL; empty means cache.TTLArtifact.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return cache.TTLArtifact, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid cache ttl %q", c.Cache.TTL)
	}
	return d, nil
}

// CacheConfig converts the [cache] table for cache.Open.
func (c *Config) CacheConfig() cache.Config {
	return cache.Config{
		Backend:       c.Cache.Backend,
		Dir:           c.Resolve(c.Cache.Dir),
		RedisAddr:     c.Cache.RedisAddr,
		RedisPassword: c.Cache.RedisPassword,
	}
}

// ApplyEnv overrides the cache settings from environment variables.
// getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Cache.Dir, EnvCacheDir)
	set(&c.Cache.Backend, EnvCacheBackend)
	set(&c.Cache.RedisAddr, EnvRedisAddr)
	set(&c.Cache.RedisPassword, EnvRedisPassword)
}

// LoadDotEnv loads the given .env files into the process environment
// without overriding variables that are already set. Missing files are
// skipped.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", f)
		}
	}
	return nil
}

// Merged returns ch with empty fields filled from the defaults.
func (c *Config) Merged(ch Chart) Chart {
	if len(ch.Formats) == 0 {
		ch.Formats = c.Defaults.Formats
	}
	if ch.ColorMap == "" {
		ch.ColorMap = c.Defaults.ColorMap
	}
	if ch.Width == 0 {
		ch.Width = c.Defaults.Width
	}
	if ch.Height == 0 {
		ch.Height = c.Defaults.Height
	}
	ch.Data = c.Resolve(ch.Data)
	ch.Geo = c.Resolve(ch.Geo)
	return ch
}

// OutDir returns the resolved output directory, "." when unset.
func (c *Config) OutDir() string {
	if c.Defaults.OutDir == "" {
		return "."
	}
	return c.Resolve(c.Defaults.OutDir)
}
