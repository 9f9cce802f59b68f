// Package cache stores rendered artifacts between runs.
//
// A [Cache] maps string keys to byte slices with an optional time to live.
// Three backends are provided:
//
//   - [FileCache] keeps entries under the user cache directory
//     (~/.cache/chileviz on Linux) and is the CLI default.
//   - [RedisCache] shares entries between machines through Redis.
//   - [NullCache] stores nothing and turns caching off.
//
// Keys are built by a [Keyer] from content hashes, so a changed dataset or
// option can never hit a stale entry.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store keyed by string.
//
// Get reports a miss with ok == false and a nil error. A ttl of zero in Set
// means the entry never expires. Implementations are safe for concurrent
// use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) (removed int, err error)
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies a computed chart layout.
	LayoutKey(dataHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a layout.
type LayoutKeyOpts struct {
	Kind     string   `json:"kind"`
	Title    string   `json:"title,omitempty"`
	ColorMap string   `json:"colormap,omitempty"`
	Ordering string   `json:"ordering,omitempty"`
	Group    []string `json:"group,omitempty"`
	NoGroup  bool     `json:"no_group,omitempty"`
	Floor    float64  `json:"floor,omitempty"`
	GeoHash  string   `json:"geo,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered output.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(dataHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", dataHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
