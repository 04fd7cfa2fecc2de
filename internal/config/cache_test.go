package config

import (
	"testing"
	"time"
)

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Fatal("cache should default to enabled")
	}
	if !cfg.Methods["GET"] || len(cfg.Methods) != 1 {
		t.Fatalf("Methods = %v, want GET only", cfg.Methods)
	}
	if cfg.TTL != 30*time.Second {
		t.Fatalf("TTL = %v, want 30s", cfg.TTL)
	}
	if cfg.Prefix != "cache" {
		t.Fatalf("Prefix = %q", cfg.Prefix)
	}
}

func TestLoadCacheConfigOverrides(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "2m")

	cfg := LoadCacheConfig()
	if cfg.Enabled {
		t.Fatal("CACHE_ENABLED=false ignored")
	}
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] {
		t.Fatalf("Methods = %v, want GET and HEAD", cfg.Methods)
	}
	if cfg.TTL != 2*time.Minute {
		t.Fatalf("TTL = %v, want 2m", cfg.TTL)
	}
}

func TestParseDurFallsBack(t *testing.T) {
	if d := parseDur("not-a-duration"); d != time.Second {
		t.Fatalf("parseDur fallback = %v, want 1s", d)
	}
}
