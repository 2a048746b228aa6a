package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads a scenario configuration from multiple sources, in
// priority order:
//  1. Defaults (a runnable single-elder, two-node scenario)
//  2. The TOML file at path, if it exists
//  3. Environment variables, prefixed STABLESET_ (e.g.
//     STABLESET_SECTION_ELDER_COUNT)
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("STABLESET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.configPath = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LoadDefaultConfig returns the built-in default scenario, with no file or
// environment overrides applied beyond what the caller's environment
// already sets.
func LoadDefaultConfig() (*Config, error) {
	return LoadConfig("")
}

// ReloadConfig re-reads the same path an existing Config was loaded from.
func ReloadConfig(existing *Config) (*Config, error) {
	return LoadConfig(existing.GetConfigPath())
}
