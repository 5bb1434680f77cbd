package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Etherpad EtherpadConfig `mapstructure:"etherpad"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// EtherpadConfig holds Etherpad API connection details
type EtherpadConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
	TLS     TLSConfig     `mapstructure:"tls"`
}

// TLSConfig contains trust-anchor settings for secure endpoints
type TLSConfig struct {
	// CAPath overrides trust-anchor discovery when set.
	CAPath string `mapstructure:"ca_path"`
	// SearchPaths replaces the default discovery candidates when non-empty.
	SearchPaths []string `mapstructure:"search_paths"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
