package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/chileviz/pkg/chart"
	"github.com/matzehuels/chileviz/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestFileCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	t.Setenv(config.EnvCacheBackend, "")
	t.Setenv(config.EnvCacheDir, "")

	if dir, ok := fileCacheDir(nil); !ok || dir != "/tmp/xdg/chileviz" {
		t.Errorf("default = %q, %v", dir, ok)
	}

	t.Setenv(config.EnvCacheDir, "/srv/cache")
	if dir, ok := fileCacheDir(nil); !ok || dir != "/srv/cache" {
		t.Errorf("env dir = %q, %v", dir, ok)
	}

	t.Setenv(config.EnvCacheBackend, "redis")
	if _, ok := fileCacheDir(nil); ok {
		t.Error("redis backend has no directory")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, data string
		dir, base    string
	}{
		{"", "examples/data/densidad.json", ".", "densidad"},
		{"", "sqlite://datos.db", ".", "sankey"},
		{"out/mapa.svg", "x.json", "out", "mapa"},
		{"out/mapa.PNG", "x.json", "out", "mapa"},
		{"out/mapa.v2", "x.json", "out", "mapa.v2"},
		{"grafico", "x.json", ".", "grafico"},
	}
	for _, tt := range tests {
		dir, base := outputPath(tt.output, tt.data, chart.KindSankey)
		if dir != tt.dir || base != tt.base {
			t.Errorf("outputPath(%q, %q) = %q, %q; want %q, %q", tt.output, tt.data, dir, base, tt.dir, tt.base)
		}
	}
}
