package cache

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend       string // file (default), redis or none
	Dir           string // file backend root, DefaultDir when empty
	RedisAddr     string
	RedisPassword string
}

// Open returns the backend cfg names.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = DefaultDir(); err != nil {
				return nil, err
			}
		}
		return NewFileCache(dir)
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis cache needs an address")
		}
		return NewRedisCache(ctx, RedisOptions{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	case BackendNone, "off":
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("%w: %q (want file, redis or none)", ErrUnknownBackend, cfg.Backend)
}
