package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pevans/nordfeed"
	"gopkg.in/yaml.v3"
)

// DefaultsConfig holds the default listing options. Unset fields keep the
// built-in defaults.
type DefaultsConfig struct {
	Region        string `yaml:"region"`
	PoliceReports *bool  `yaml:"police_reports"`
	HideNNPlus    *bool  `yaml:"hide_nn_plus"`
	HideDPA       *bool  `yaml:"hide_dpa"`
}

// StorageConfig represents storage configuration from config file.
type StorageConfig struct {
	FeedDir     string `yaml:"feed_dir"`
	SettingsDSN string `yaml:"settings_dsn"`
}

// HTTPConfig configures page fetching.
type HTTPConfig struct {
	Timeout   string   `yaml:"timeout"`
	UserAgent string   `yaml:"user_agent"`
	Rate      *float64 `yaml:"rate"`
}

// FileConfig represents the structure of ~/.nordfeed/config.yaml.
type FileConfig struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Storage  StorageConfig  `yaml:"storage"`
	HTTP     HTTPConfig     `yaml:"http"`
}

// ConfigPath returns the path of the config file in the user's home.
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".nordfeed", "config.yaml"), nil
}

// LoadConfigFile loads configuration from ~/.nordfeed/config.yaml. Returns nil
// if the file doesn't exist (not an error). Returns error if the file exists
// but cannot be parsed.
func LoadConfigFile() (*FileConfig, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFileFrom(configPath)
}

// LoadConfigFileFrom loads configuration from configPath with the same rules
// as LoadConfigFile.
func LoadConfigFileFrom(configPath string) (*FileConfig, error) {
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil, nil // File doesn't exist -- not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Defaults.Region != "" {
		if _, err := nordfeed.ParseRegion(cfg.Defaults.Region); err != nil {
			return nil, fmt.Errorf("invalid defaults.region: %w", err)
		}
	}
	if cfg.HTTP.Timeout != "" {
		if _, err := time.ParseDuration(cfg.HTTP.Timeout); err != nil {
			return nil, fmt.Errorf("invalid http.timeout: %w", err)
		}
	}

	return &cfg, nil
}

// Apply overlays the file's defaults onto opts. A nil config changes nothing.
func (c *FileConfig) Apply(opts nordfeed.Options) nordfeed.Options {
	if c == nil {
		return opts
	}
	if c.Defaults.Region != "" {
		// Validated on load
		opts.Region, _ = nordfeed.ParseRegion(c.Defaults.Region)
	}
	if c.Defaults.PoliceReports != nil {
		opts.IncludePoliceReports = *c.Defaults.PoliceReports
	}
	if c.Defaults.HideNNPlus != nil {
		opts.HideNNPlus = *c.Defaults.HideNNPlus
	}
	if c.Defaults.HideDPA != nil {
		opts.HideDPA = *c.Defaults.HideDPA
	}
	return opts
}

// FetchTimeout returns the configured timeout or fallback.
func (c *FileConfig) FetchTimeout(fallback time.Duration) time.Duration {
	if c == nil || c.HTTP.Timeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil {
		return fallback
	}
	return d
}
