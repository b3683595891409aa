package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TestIT      TestITConfig  `mapstructure:"testit"`
	Filter      FilterConfig  `mapstructure:"filter"`
	Logging     LoggingConfig `mapstructure:"logging"`
	Concurrency int           `mapstructure:"concurrency"`
}

// TestITConfig holds TestIT API connection details
type TestITConfig struct {
	URL          string        `mapstructure:"url"`
	Token        string        `mapstructure:"token"`
	Timeout      time.Duration `mapstructure:"timeout"`
	StrictParams bool          `mapstructure:"strict_params"`
	UserAgent    string        `mapstructure:"user_agent"`
}

// FilterConfig contains the expression cache size and named filter presets.
// Preset names are lower-cased by viper.
type FilterConfig struct {
	CacheSize int               `mapstructure:"cache_size"`
	Presets   map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
