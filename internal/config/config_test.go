package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{"PIPREQ_CACHE_BACKEND", "PIPREQ_CACHE_TTL", "PIPREQ_API_ADDR", "PIPREQ_MONGO_URI", "PIPREQ_PYPI_URL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, path, err := Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want none", path)
	}
	if want := Default(); !reflect.DeepEqual(*cfg, want) {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	cfgDir := filepath.Join(dir, AppName)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `
[cache]
backend = "redis"
ttl = "2h"

[redis]
addr = "cache.internal:6379"
db = 2

[api]
addr = ":9000"
`
	if err := os.WriteFile(filepath.Join(cfgDir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PIPREQ_API_ADDR", ":9100")

	cfg, path, err := Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != filepath.Join(cfgDir, FileName) {
		t.Errorf("path = %q", path)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL != 2*time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Redis.Addr != "cache.internal:6379" || cfg.Redis.DB != 2 {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.API.Addr != ":9100" {
		t.Errorf("env should override file: api.addr = %q", cfg.API.Addr)
	}
	if cfg.PyPI.URL != Default().PyPI.URL {
		t.Errorf("unset keys keep defaults: pypi.url = %q", cfg.PyPI.URL)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)

	if _, _, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "nope.toml")}); err == nil {
		t.Error("missing explicit file should fail")
	}

	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, used, err := Load(LoadOptions{File: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if used != path || cfg.Cache.Backend != BackendNone {
		t.Errorf("Load(%s) = %+v, %q", path, cfg.Cache, used)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }},
		{"redis without addr", func(c *Config) { c.Cache.Backend = BackendRedis; c.Redis.Addr = "" }},
		{"bad index url", func(c *Config) { c.PyPI.URL = "ftp://mirror" }},
		{"empty index url", func(c *Config) { c.PyPI.URL = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if dir, _ := Dir(); dir != filepath.Join("/xdg", AppName) {
		t.Errorf("Dir() = %q", dir)
	}
}
