package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the top-level YAML document.
type ConfigFile struct {
	Config Config `yaml:"config"`
}

// Config carries everything the client needs to reach its collaborators.
type Config struct {
	RPC      RPCConfig      `yaml:"rpc"`
	Program  ProgramConfig  `yaml:"program"`
	Submit   SubmitConfig   `yaml:"submit"`
	Cache    CacheConfig    `yaml:"cache"`
	Resolver ResolverConfig `yaml:"resolver"`
}

type RPCConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Commitment string `yaml:"commitment"`
}

type ProgramConfig struct {
	ID string `yaml:"id"`
}

// SubmitConfig tunes the confirmation wait. SkipPreflight defaults to true:
// a malformed transaction surfaces as a confirmation failure instead of a
// pre-broadcast rejection.
type SubmitConfig struct {
	SkipPreflight  bool          `yaml:"skip_preflight"`
	ConfirmTimeout time.Duration `yaml:"confirm_timeout"`
	PollInterval   time.Duration `yaml:"poll_interval"`
}

type CacheConfig struct {
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
}

// UnmarshalYAML parses durations from strings like "30s" or "500ms".
func (c *SubmitConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		SkipPreflight  bool   `yaml:"skip_preflight"`
		ConfirmTimeout string `yaml:"confirm_timeout"`
		PollInterval   string `yaml:"poll_interval"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.SkipPreflight = raw.SkipPreflight
	var err error
	if c.ConfirmTimeout, err = parseDuration(raw.ConfirmTimeout); err != nil {
		return fmt.Errorf("submit.confirm_timeout: %w", err)
	}
	if c.PollInterval, err = parseDuration(raw.PollInterval); err != nil {
		return fmt.Errorf("submit.poll_interval: %w", err)
	}
	return nil
}

func (c *CacheConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		TTL        string `yaml:"ttl"`
		MaxEntries int    `yaml:"max_entries"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.MaxEntries = raw.MaxEntries
	var err error
	if c.TTL, err = parseDuration(raw.TTL); err != nil {
		return fmt.Errorf("cache.ttl: %w", err)
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// ResolverConfig points name resolution at a registry tree. Empty values
// fall back to the public .sol TLD on the deployed name program.
type ResolverConfig struct {
	NameProgramID string `yaml:"name_program_id"`
	RootDomain    string `yaml:"root_domain"`
}
