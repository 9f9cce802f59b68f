package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version: dev\n") {
		t.Errorf("Template() = %q", Template())
	}
}

func TestCacheScope(t *testing.T) {
	if got := CacheScope(); got != "dev" {
		t.Errorf("dev scope = %q", got)
	}
	Version, Commit = "v1.0.0", "abc123"
	defer func() { Version, Commit = "dev", "none" }()
	if got := CacheScope(); got != "v1.0.0-abc123" {
		t.Errorf("release scope = %q", got)
	}
}
