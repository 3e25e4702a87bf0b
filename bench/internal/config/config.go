// CLAUDE:SUMMARY Defines routebench config structs and parses YAML configuration files with defaults.
// Package config handles routebench configuration from YAML files.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level routebench configuration.
type Config struct {
	Apps       []AppTarget   `yaml:"apps"`
	Iterations int           `yaml:"iterations"`
	Probe      ProbeConfig   `yaml:"probe"`
	Timeouts   TimeoutConfig `yaml:"timeouts"`
	Browser    BrowserConfig `yaml:"browser"`
	Output     OutputConfig  `yaml:"output"`
}

// AppTarget identifies one application under test. Immutable once loaded.
type AppTarget struct {
	Name                 string `yaml:"name"`
	BaseURL              string `yaml:"base_url"`
	PageURL              string `yaml:"page_url"`
	NavLinkSelector      string `yaml:"nav_link_selector"`
	ContentReadySelector string `yaml:"content_ready_selector"`
}

// ProbeConfig controls the server readiness probe.
type ProbeConfig struct {
	Attempts int           `yaml:"attempts"`
	Delay    time.Duration `yaml:"delay"`
	Timeout  time.Duration `yaml:"timeout"`
}

// TimeoutConfig bounds every browser-side wait.
type TimeoutConfig struct {
	Navigation  time.Duration `yaml:"navigation"`
	Selector    time.Duration `yaml:"selector"`
	Paint       time.Duration `yaml:"paint"`
	RequestIdle time.Duration `yaml:"request_idle"`
	GraceDelay  time.Duration `yaml:"grace_delay"`
}

// BrowserConfig controls Chrome lifecycle.
type BrowserConfig struct {
	Remote  string `yaml:"remote"`  // WebSocket URL of an external Chrome; empty = launch local
	Stealth bool   `yaml:"stealth"` // open pages through the stealth helper
}

// OutputConfig controls where reports land.
type OutputConfig struct {
	Dir        string `yaml:"dir"`         // latest.json + history/ live here
	HistoryDir string `yaml:"history_dir"` // default: <dir>/history
	IndexPath  string `yaml:"index_path"`  // SQLite run index; default: <dir>/runs.db
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills zero values with working defaults.
func (c *Config) ApplyDefaults() {
	if c.Iterations <= 0 {
		c.Iterations = 3
	}
	if c.Probe.Attempts <= 0 {
		c.Probe.Attempts = 30
	}
	if c.Probe.Delay <= 0 {
		c.Probe.Delay = time.Second
	}
	if c.Probe.Timeout <= 0 {
		c.Probe.Timeout = 5 * time.Second
	}
	if c.Timeouts.Navigation <= 0 {
		c.Timeouts.Navigation = 30 * time.Second
	}
	if c.Timeouts.Selector <= 0 {
		c.Timeouts.Selector = 10 * time.Second
	}
	if c.Timeouts.Paint <= 0 {
		c.Timeouts.Paint = 15 * time.Second
	}
	if c.Timeouts.RequestIdle <= 0 {
		c.Timeouts.RequestIdle = 500 * time.Millisecond
	}
	if c.Timeouts.GraceDelay <= 0 {
		c.Timeouts.GraceDelay = 2 * time.Second
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "results"
	}
	if c.Output.HistoryDir == "" {
		c.Output.HistoryDir = c.Output.Dir + "/history"
	}
	if c.Output.IndexPath == "" {
		c.Output.IndexPath = c.Output.Dir + "/runs.db"
	}
	for i := range c.Apps {
		if c.Apps[i].PageURL == "" {
			c.Apps[i].PageURL = c.Apps[i].BaseURL
		}
	}
}

// Validate rejects configs that cannot produce a meaningful run.
func (c *Config) Validate() error {
	if len(c.Apps) == 0 {
		return fmt.Errorf("config: no apps defined")
	}
	seen := make(map[string]bool, len(c.Apps))
	for _, app := range c.Apps {
		if app.Name == "" {
			return fmt.Errorf("config: app with empty name")
		}
		if seen[app.Name] {
			return fmt.Errorf("config: duplicate app name %q", app.Name)
		}
		seen[app.Name] = true
		if _, err := url.ParseRequestURI(app.BaseURL); err != nil {
			return fmt.Errorf("config: app %s: invalid base_url %q: %w", app.Name, app.BaseURL, err)
		}
	}
	return nil
}
