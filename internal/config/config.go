// Package config holds the tool configuration, loaded from
// .wpparser/config.yml with environment variable overrides.
package config

import "fmt"

// Config represents the complete wp-parser configuration.
type Config struct {
	Paths PathsConfig `yaml:"paths" mapstructure:"paths"`
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`
}

// PathsConfig defines which files to parse and which to ignore.
type PathsConfig struct {
	Source []string `yaml:"source" mapstructure:"source"` // glob patterns for PHP sources
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to skip
}

// CacheConfig defines parse cache behavior.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Location string `yaml:"location" mapstructure:"location"` // Override default .wpparser/cache.db
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Source: []string{
				"**/*.php",
			},
			Ignore: []string{
				"vendor/**",
				"node_modules/**",
				".git/**",
			},
		},
		Cache: CacheConfig{
			Enabled:  true,
			Location: "", // Empty means .wpparser/cache.db under the project root
		},
	}
}

// Validate checks the configuration for values the pipeline cannot work
// with.
func Validate(cfg *Config) error {
	if len(cfg.Paths.Source) == 0 {
		return fmt.Errorf("paths.source must list at least one pattern")
	}
	for _, p := range cfg.Paths.Source {
		if p == "" {
			return fmt.Errorf("paths.source contains an empty pattern")
		}
	}
	for _, p := range cfg.Paths.Ignore {
		if p == "" {
			return fmt.Errorf("paths.ignore contains an empty pattern")
		}
	}
	return nil
}
