package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, resolved, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}

	// The written file must round-trip to the same values.
	again, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again != cfg {
		t.Fatalf("reload mismatch: %+v vs %+v", again, cfg)
	}
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "addr: \":9000\"\nshutdown_timeout: 2s\nsend_buffer: 16\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ROOMRELAY_ADDR", ":9100")

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9100" {
		t.Fatalf("env should win over file, got addr %q", cfg.Addr)
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Fatalf("shutdown timeout = %v", cfg.ShutdownTimeout)
	}
	if cfg.SendBuffer != 16 {
		t.Fatalf("send buffer = %d", cfg.SendBuffer)
	}
	if cfg.ReadLimit != Default().ReadLimit {
		t.Fatalf("read limit should keep default, got %d", cfg.ReadLimit)
	}
}

func TestUpdateFromSkipsZeroValues(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":1234", LogLevel: "debug"})

	if cfg.Addr != ":1234" || cfg.LogLevel != "debug" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.ShutdownTimeout != Default().ShutdownTimeout || cfg.SendBuffer != Default().SendBuffer {
		t.Fatalf("zero overrides must not clobber: %+v", cfg)
	}
}

func TestResolveConfigPathOrder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "relay")
	t.Setenv(envConfigDefaultPath, dir)

	if got := resolveConfigPath("/etc/roomrelay.yaml"); got != "/etc/roomrelay.yaml" {
		t.Fatalf("explicit path should win, got %q", got)
	}

	want := filepath.Join(dir, defaultConfigName)
	if got := resolveConfigPath(""); got != want {
		t.Fatalf("env directory path = %q, want %q", got, want)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("env directory should be created: %v", err)
	}
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: [unterminated\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := Load(nil, path); err == nil {
		t.Fatal("expected an error for invalid YAML")
	}
}
