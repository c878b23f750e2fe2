package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Default returns a config pointed at devnet with the stock tuning.
func Default() *Config {
	return &Config{
		RPC: RPCConfig{
			Endpoint:   DefaultRPCEndpoint,
			Commitment: DefaultCommitment,
		},
		Program: ProgramConfig{ID: DefaultProgramID},
		Submit: SubmitConfig{
			SkipPreflight:  true,
			ConfirmTimeout: DefaultConfirmTimeout,
			PollInterval:   DefaultPollInterval,
		},
		Cache: CacheConfig{
			TTL:        DefaultCacheTTL,
			MaxEntries: DefaultCacheMaxEntries,
		},
	}
}

// LoadConfig reads and parses the client YAML config, filling unset fields
// from Default.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	var cfgFile ConfigFile
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfgFile); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg := cfgFile.Config
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.RPC.Endpoint == "" {
		cfg.RPC.Endpoint = def.RPC.Endpoint
	}
	if cfg.RPC.Commitment == "" {
		cfg.RPC.Commitment = def.RPC.Commitment
	}
	if cfg.Program.ID == "" {
		cfg.Program.ID = def.Program.ID
	}
	if cfg.Submit.ConfirmTimeout == 0 {
		cfg.Submit.ConfirmTimeout = def.Submit.ConfirmTimeout
	}
	if cfg.Submit.PollInterval == 0 {
		cfg.Submit.PollInterval = def.Submit.PollInterval
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = def.Cache.TTL
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = def.Cache.MaxEntries
	}
}

// SubmitTuning mirrors the [submit] section of an optional INI overrides
// file deployed next to the YAML config.
type SubmitTuning struct {
	SkipPreflight    bool `ini:"skip_preflight"`
	ConfirmTimeoutMs int  `ini:"confirm_timeout_ms"`
	PollIntervalMs   int  `ini:"poll_interval_ms"`
}

// LoadSubmitTuning reads submit tuning from an .ini file
func LoadSubmitTuning(path string) (*SubmitTuning, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	submitSection := cfg.Section("submit")
	tuning := &SubmitTuning{SkipPreflight: true}
	if err := submitSection.MapTo(tuning); err != nil {
		return nil, err
	}
	return tuning, nil
}

// Apply lays the tuning overrides over cfg. The tuning file is authoritative
// for its section; millisecond fields left unset keep the existing values.
func (t *SubmitTuning) Apply(cfg *SubmitConfig) {
	cfg.SkipPreflight = t.SkipPreflight
	if t.ConfirmTimeoutMs > 0 {
		cfg.ConfirmTimeout = time.Duration(t.ConfirmTimeoutMs) * time.Millisecond
	}
	if t.PollIntervalMs > 0 {
		cfg.PollInterval = time.Duration(t.PollIntervalMs) * time.Millisecond
	}
}
