package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setupRoot(t *testing.T) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "stackscan-config-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	return tmpDir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != configVersion {
		t.Errorf("version = %d, want %d", cfg.Version, configVersion)
	}
	if cfg.Cache.TTLDays != 30 {
		t.Errorf("ttlDays = %d, want 30", cfg.Cache.TTLDays)
	}
	if cfg.Cache.TTL() != 30*24*time.Hour {
		t.Errorf("TTL() = %v, want 720h", cfg.Cache.TTL())
	}
	if cfg.Analysis.MaxDepth != 8 {
		t.Errorf("maxDepth = %d, want 8", cfg.Analysis.MaxDepth)
	}
	if len(cfg.Analysis.IgnoreDirs) == 0 {
		t.Error("ignoreDirs should carry the default skip list")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	root := setupRoot(t)

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Cache.TTLDays != 30 {
		t.Errorf("ttlDays = %d, want the default 30", cfg.Cache.TTLDays)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	root := setupRoot(t)

	cfg := DefaultConfig()
	cfg.Cache.TTLDays = 7
	cfg.Cache.Compress = true
	cfg.Logging.Format = "json"
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, ".stackscan", "config.json")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Cache.TTLDays != 7 {
		t.Errorf("ttlDays = %d, want 7", loaded.Cache.TTLDays)
	}
	if !loaded.Cache.Compress {
		t.Error("compress flag lost in round trip")
	}
	if loaded.Logging.Format != "json" {
		t.Errorf("logging format = %q, want json", loaded.Logging.Format)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	root := setupRoot(t)
	if err := os.MkdirAll(filepath.Join(root, ".stackscan"), 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	partial := `{"version": 2, "cache": {"ttlDays": 3}}`
	if err := os.WriteFile(filepath.Join(root, ".stackscan", "config.json"), []byte(partial), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Cache.TTLDays != 3 {
		t.Errorf("ttlDays = %d, want 3", cfg.Cache.TTLDays)
	}
	// Unset fields fall back to defaults
	if cfg.Analysis.MaxDepth != 8 {
		t.Errorf("maxDepth = %d, want the default 8", cfg.Analysis.MaxDepth)
	}
	if cfg.Cache.Root != "~/.stackscan/cache" {
		t.Errorf("cache root = %q, want the default", cfg.Cache.Root)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"json format", func(c *Config) { c.Logging.Format = "json" }, false},
		{"bad version", func(c *Config) { c.Version = 1 }, true},
		{"negative ttl", func(c *Config) { c.Cache.TTLDays = -1 }, true},
		{"negative depth", func(c *Config) { c.Analysis.MaxDepth = -1 }, true},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Field: "cache.ttlDays", Message: "must not be negative"}
	want := "config error in field 'cache.ttlDays': must not be negative"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
