package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all CLI configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Run     RunConfig     `toml:"run"`
	Log     LogConfig     `toml:"log"`
}

// GeneralConfig holds general settings
type GeneralConfig struct {
	// Storage is the default storage locator used when a run spec
	// does not name one.
	Storage string `toml:"storage"`
}

// RunConfig holds run-loop defaults
type RunConfig struct {
	Trials      int  `toml:"trials"`
	Parallelism int  `toml:"parallelism"`
	Progress    bool `toml:"progress"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
}

// Default returns a Config with sensible defaults
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		General: GeneralConfig{
			Storage: "sqlite:///" + filepath.Join(home, ".medlar", "medlar.db"),
		},
		Run: RunConfig{
			Trials:      100,
			Parallelism: 1,
			Progress:    true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from a TOML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.General.Storage = expandLocator(cfg.General.Storage)

	return cfg, nil
}

// expandLocator expands ~ inside a storage locator's path component.
func expandLocator(locator string) string {
	if i := strings.Index(locator, "~/"); i >= 0 {
		home, _ := os.UserHomeDir()
		return locator[:i] + filepath.Join(home, locator[i+2:])
	}
	return locator
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "medlar", "config.toml")
}
