// Package config loads the smartsched YAML configuration file and applies
// SMARTSCHED_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/extract"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/llm"
)

const appName = "smartsched"

// DBConfig selects the schedule store.
type DBConfig struct {
	// Driver is "sqlite" (default) or "postgres". The Postgres DSN is read
	// from the keyring, never from this file.
	Driver string `yaml:"driver"`
	// Path is the SQLite database file.
	Path string `yaml:"path"`
}

// LLMConfig is the file form of llm.LLMConfig.
type LLMConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Provider   string `yaml:"provider"`
	Endpoint   string `yaml:"endpoint,omitempty"`
	Model      string `yaml:"model,omitempty"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	MaxRetries int    `yaml:"max_retries"`
	LogCalls   bool   `yaml:"log_calls"`
}

// NotifyConfig controls the reminder watcher.
type NotifyConfig struct {
	Enabled bool `yaml:"enabled"`
	// Cron is a robfig/cron spec for the watcher tick, e.g. "@every 1m".
	Cron string `yaml:"cron"`
	// LeadMinutes lists how long before start each notice fires.
	LeadMinutes []int `yaml:"lead_minutes"`
}

// LexiconConfig adds words to the shipped vocabulary.
type LexiconConfig struct {
	Today         []string `yaml:"today,omitempty"`
	Tomorrow      []string `yaml:"tomorrow,omitempty"`
	Morning       []string `yaml:"morning,omitempty"`
	Noon          []string `yaml:"noon,omitempty"`
	Evening       []string `yaml:"evening,omitempty"`
	Conjunctions  []string `yaml:"conjunctions,omitempty"`
	TimeLeads     []string `yaml:"time_leads,omitempty"`
	ActivityLeads []string `yaml:"activity_leads,omitempty"`
	Markers       []string `yaml:"markers,omitempty"`
}

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the IANA zone used to anchor "today" and to display entries.
	Timezone string        `yaml:"timezone"`
	DB       DBConfig      `yaml:"db"`
	LLM      LLMConfig     `yaml:"llm"`
	Notify   NotifyConfig  `yaml:"notify"`
	Lexicon  LexiconConfig `yaml:"lexicon"`
	Debug    bool          `yaml:"debug"`

	dir string
}

// DefaultConfig returns an in-memory default configuration rooted at dir.
func DefaultConfig(dir string) *Config {
	return &Config{
		Timezone: "Local",
		DB: DBConfig{
			Driver: "sqlite",
			Path:   filepath.Join(dir, "smartsched.db"),
		},
		LLM: LLMConfig{
			Enabled:    true,
			Provider:   string(llm.ProviderOllama),
			TimeoutMs:  30000,
			MaxRetries: 1,
		},
		Notify: NotifyConfig{
			Enabled:     true,
			Cron:        "@every 1m",
			LeadMinutes: []int{15, 5, 0},
		},
		dir: dir,
	}
}

// Normalize fills in missing/zero values so partially-filled files still
// behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig(c.dir)
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		c.DB.Driver = def.DB.Driver
	}
	if c.DB.Path == "" {
		c.DB.Path = def.DB.Path
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = def.LLM.Provider
	}
	if c.LLM.TimeoutMs <= 0 {
		c.LLM.TimeoutMs = def.LLM.TimeoutMs
	}
	if c.LLM.MaxRetries < 0 {
		c.LLM.MaxRetries = 0
	}
	if c.Notify.Cron == "" {
		c.Notify.Cron = def.Notify.Cron
	}
	if c.Notify.LeadMinutes == nil {
		c.Notify.LeadMinutes = def.Notify.LeadMinutes
	}
}

// Dir returns the directory holding the config file, logs and database.
func (c *Config) Dir() string { return c.dir }

// Location resolves Timezone. "Local" or an unknown zone yields time.Local.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Leads converts LeadMinutes to durations.
func (c *Config) Leads() []time.Duration {
	out := make([]time.Duration, 0, len(c.Notify.LeadMinutes))
	for _, m := range c.Notify.LeadMinutes {
		if m >= 0 {
			out = append(out, time.Duration(m)*time.Minute)
		}
	}
	return out
}

// LLMClientConfig builds the generator client configuration. Environment
// overrides are applied last; apiKey is passed through as is.
func (c *Config) LLMClientConfig(apiKey string) llm.LLMConfig {
	cfg := llm.DefaultConfig()
	cfg.Enabled = c.LLM.Enabled
	cfg.LogCalls = c.LLM.LogCalls
	cfg.Provider = llm.Provider(c.LLM.Provider)
	cfg.Endpoint = c.LLM.Endpoint
	cfg.Model = c.LLM.Model
	cfg.TimeoutMs = c.LLM.TimeoutMs
	cfg.MaxRetries = c.LLM.MaxRetries
	cfg.APIKey = apiKey
	return llm.ApplyEnv(cfg).Normalize()
}

// Words returns the shipped vocabulary extended by the lexicon section.
func (c *Config) Words() extract.Words {
	return extract.DefaultWords().Merge(extract.Words{
		Today:         c.Lexicon.Today,
		Tomorrow:      c.Lexicon.Tomorrow,
		Morning:       c.Lexicon.Morning,
		Noon:          c.Lexicon.Noon,
		Evening:       c.Lexicon.Evening,
		Conjunctions:  c.Lexicon.Conjunctions,
		TimeLeads:     c.Lexicon.TimeLeads,
		ActivityLeads: c.Lexicon.ActivityLeads,
		Markers:       c.Lexicon.Markers,
	})
}

// DefaultDir returns the per-user config directory for smartsched.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// DefaultPath returns $SMARTSCHED_CONFIG or <DefaultDir>/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv("SMARTSCHED_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads configuration from the given YAML path and applies environment
// overrides. On first run the default config is written with 0600 perms.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	dir := filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg := DefaultConfig(dir)
		if err := Save(path, cfg); err != nil {
			return cfg, err
		}
		cfg.applyEnv()
		return cfg, nil
	}

	cfg := &Config{dir: dir}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Normalize()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SMARTSCHED_DB"); v != "" {
		c.DB.Path = v
	}
	if v := os.Getenv("SMARTSCHED_DEBUG"); v != "" {
		c.Debug, _ = strconv.ParseBool(v)
	}
}

// Save writes cfg to path atomically via a temp file + rename, with 0600 perms.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".smartsched-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
