package bench

import (
	"github.com/hazyhaar/routebench/bench/internal/config"
)

// Config is the top-level routebench configuration. Re-exported from internal.
type Config = config.Config

// AppTarget identifies one application under test.
type AppTarget = config.AppTarget

// ProbeConfig controls the server readiness probe.
type ProbeConfig = config.ProbeConfig

// TimeoutConfig bounds every browser-side wait.
type TimeoutConfig = config.TimeoutConfig

// BrowserConfig controls Chrome lifecycle.
type BrowserConfig = config.BrowserConfig

// OutputConfig controls where reports land.
type OutputConfig = config.OutputConfig

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	return config.LoadFile(path)
}
