package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != "badger" || cfg.Quiz.ID != "aptitude" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("storage:\n  driver: redis\nredis:\n  addr: localhost:6379\nquiz:\n  advanceDelay: 10ms\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != "redis" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("expected redis storage, got %+v", cfg.Storage)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port kept, got %q", cfg.Server.Port)
	}
	if d := Duration(cfg.Quiz.AdvanceDelay, time.Second); d != 10*time.Millisecond {
		t.Fatalf("expected 10ms, got %v", d)
	}
}

func TestDurationFallback(t *testing.T) {
	if d := Duration("", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback for empty, got %v", d)
	}
	if d := Duration("soon", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback for invalid, got %v", d)
	}
}
