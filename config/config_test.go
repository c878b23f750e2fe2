package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTemp(t, "client.yml", `
config:
  rpc:
    endpoint: "http://localhost:8899"
    commitment: "finalized"
  program:
    id: "BxCbQks4iaRvfCnUzf3utYYG9V53TDwVLxA6GGBnhci4"
  submit:
    skip_preflight: true
    confirm_timeout: 30s
    poll_interval: 500ms
  cache:
    ttl: 10s
    max_entries: 64
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.RPC.Endpoint != "http://localhost:8899" {
		t.Errorf("endpoint: got %q", cfg.RPC.Endpoint)
	}
	if cfg.RPC.Commitment != "finalized" {
		t.Errorf("commitment: got %q", cfg.RPC.Commitment)
	}
	if cfg.Submit.ConfirmTimeout != 30*time.Second {
		t.Errorf("confirm timeout: got %s", cfg.Submit.ConfirmTimeout)
	}
	if cfg.Submit.PollInterval != 500*time.Millisecond {
		t.Errorf("poll interval: got %s", cfg.Submit.PollInterval)
	}
	if cfg.Cache.TTL != 10*time.Second {
		t.Errorf("cache ttl: got %s", cfg.Cache.TTL)
	}
	if cfg.Cache.MaxEntries != 64 {
		t.Errorf("cache max entries: got %d", cfg.Cache.MaxEntries)
	}
}

func TestLoadConfig_FillsDefaults(t *testing.T) {
	path := writeTemp(t, "client.yml", `
config:
  rpc:
    endpoint: "http://localhost:8899"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.RPC.Commitment != DefaultCommitment {
		t.Errorf("commitment default: got %q", cfg.RPC.Commitment)
	}
	if cfg.Program.ID != DefaultProgramID {
		t.Errorf("program id default: got %q", cfg.Program.ID)
	}
	if cfg.Submit.ConfirmTimeout != DefaultConfirmTimeout {
		t.Errorf("confirm timeout default: got %s", cfg.Submit.ConfirmTimeout)
	}
	if cfg.Cache.MaxEntries != DefaultCacheMaxEntries {
		t.Errorf("cache max entries default: got %d", cfg.Cache.MaxEntries)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadSubmitTuning(t *testing.T) {
	path := writeTemp(t, "tuning.ini", `
[submit]
skip_preflight = false
confirm_timeout_ms = 45000
poll_interval_ms = 250
`)

	tuning, err := LoadSubmitTuning(path)
	if err != nil {
		t.Fatalf("LoadSubmitTuning: %v", err)
	}
	if tuning.SkipPreflight {
		t.Error("expected skip_preflight to be overridden to false")
	}
	if tuning.ConfirmTimeoutMs != 45000 {
		t.Errorf("confirm_timeout_ms: got %d", tuning.ConfirmTimeoutMs)
	}
	if tuning.PollIntervalMs != 250 {
		t.Errorf("poll_interval_ms: got %d", tuning.PollIntervalMs)
	}
}

func TestSubmitTuning_AppliesOverrides(t *testing.T) {
	path := writeTemp(t, "tuning.ini", `
[submit]
skip_preflight = false
confirm_timeout_ms = 45000
`)

	tuning, err := LoadSubmitTuning(path)
	if err != nil {
		t.Fatalf("LoadSubmitTuning: %v", err)
	}

	cfg := Default()
	tuning.Apply(&cfg.Submit)

	if cfg.Submit.SkipPreflight {
		t.Error("expected skip_preflight to be overridden to false")
	}
	if cfg.Submit.ConfirmTimeout != 45*time.Second {
		t.Errorf("confirm timeout: got %s", cfg.Submit.ConfirmTimeout)
	}
	if cfg.Submit.PollInterval != DefaultPollInterval {
		t.Errorf("unset poll interval must keep its value, got %s", cfg.Submit.PollInterval)
	}
}
