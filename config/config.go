package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DotEnvFile is read, when present, before the configuration is resolved
const DotEnvFile = ".env"

// envBindings maps configuration keys to environment variables
var envBindings = map[string]string{
	"testit.url":     "TESTIT_URL",
	"testit.token":   "TESTIT_TOKEN",
	"testit.timeout": "TESTIT_TIMEOUT",
	"logging.level":  "TESTIT_LOG_LEVEL",
}

// Load loads the configuration from file and environment. An explicit
// configPath must exist; otherwise the standard locations are searched and
// a missing file leaves defaults and environment variables in effect.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	v := viper.New()

	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".testit"))
		}
		v.AddConfigPath("/etc/testit/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configPath == "" && errors.As(err, &notFound):
			// environment-only setup
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("config file not found: %w", err)
		default:
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv exports the variables of path without overriding the
// environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("testit.timeout", "30s")
	v.SetDefault("testit.strict_params", false)
	v.SetDefault("testit.user_agent", "testit-go")

	v.SetDefault("filter.cache_size", 100)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("concurrency", 4)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TestIT.URL == "" {
		return fmt.Errorf("testit.url is required")
	}

	if cfg.TestIT.Token == "" || cfg.TestIT.Token == "your-api-token-here" {
		return fmt.Errorf("testit.token must be set to a valid API token")
	}

	if cfg.TestIT.Timeout <= 0 {
		return fmt.Errorf("testit.timeout must be positive, got %s", cfg.TestIT.Timeout)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.Filter.CacheSize < 0 {
		return fmt.Errorf("filter.cache_size cannot be negative: %d", cfg.Filter.CacheSize)
	}

	if cfg.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", cfg.Concurrency)
	}

	return nil
}
