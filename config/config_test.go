package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with an empty home and no
// TestIT variables set
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	for _, env := range envBindings {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "testit.yaml")
	writeFile(t, path, `
testit:
  url: https://testit.example.com
  token: secret
  timeout: 45s
  strict_params: true
  user_agent: ci-bot
logging:
  level: debug
  format: json
  color: false
filter:
  cache_size: 10
  presets:
    Flaky: isFlaky
    smoke: hasLabel("smoke")
concurrency: 8
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://testit.example.com", cfg.TestIT.URL)
	assert.Equal(t, "secret", cfg.TestIT.Token)
	assert.Equal(t, 45*time.Second, cfg.TestIT.Timeout)
	assert.True(t, cfg.TestIT.StrictParams)
	assert.Equal(t, "ci-bot", cfg.TestIT.UserAgent)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Logging.Color)
	assert.Equal(t, 10, cfg.Filter.CacheSize)
	assert.Equal(t, map[string]string{"flaky": "isFlaky", "smoke": `hasLabel("smoke")`}, cfg.Filter.Presets)
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.yaml"), `
testit:
  url: https://testit.example.com
  token: secret
`)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.TestIT.Timeout)
	assert.False(t, cfg.TestIT.StrictParams)
	assert.Equal(t, "testit-go", cfg.TestIT.UserAgent)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
	assert.Equal(t, 100, cfg.Filter.CacheSize)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestLoadHomeDirectory(t *testing.T) {
	isolate(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".testit", "config.yaml"), `
testit:
  url: https://home.example.com
  token: secret
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://home.example.com", cfg.TestIT.URL)
}

func TestLoadEnvironment(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "testit.yaml")
	writeFile(t, path, `
testit:
  url: https://file.example.com
  token: from-file
`)
	t.Setenv("TESTIT_TOKEN", "from-env")
	t.Setenv("TESTIT_TIMEOUT", "5s")
	t.Setenv("TESTIT_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com", cfg.TestIT.URL)
	assert.Equal(t, "from-env", cfg.TestIT.Token)
	assert.Equal(t, 5*time.Second, cfg.TestIT.Timeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadWithoutFile(t *testing.T) {
	isolate(t)
	t.Setenv("TESTIT_URL", "https://env.example.com")
	t.Setenv("TESTIT_TOKEN", "secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.TestIT.URL)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, DotEnvFile), "TESTIT_URL=https://dotenv.example.com\nTESTIT_TOKEN=dotenv-secret\n")
	t.Cleanup(func() {
		os.Unsetenv("TESTIT_URL")
		os.Unsetenv("TESTIT_TOKEN")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://dotenv.example.com", cfg.TestIT.URL)
	assert.Equal(t, "dotenv-secret", cfg.TestIT.Token)
}

func TestLoadErrors(t *testing.T) {
	t.Run("explicit file missing", func(t *testing.T) {
		dir := isolate(t)
		_, err := Load(filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config file not found")
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "bad.yaml")
		writeFile(t, path, "testit: [\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config")
	})

	t.Run("nothing configured", func(t *testing.T) {
		isolate(t)
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "testit.url is required")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			TestIT: TestITConfig{
				URL:     "https://testit.example.com",
				Token:   "secret",
				Timeout: 30 * time.Second,
			},
			Logging:     LoggingConfig{Level: "info", Format: "console"},
			Filter:      FilterConfig{CacheSize: 100},
			Concurrency: 4,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing url", mutate: func(c *Config) { c.TestIT.URL = "" }, wantErr: "testit.url is required"},
		{name: "missing token", mutate: func(c *Config) { c.TestIT.Token = "" }, wantErr: "testit.token"},
		{name: "placeholder token", mutate: func(c *Config) { c.TestIT.Token = "your-api-token-here" }, wantErr: "testit.token"},
		{name: "zero timeout", mutate: func(c *Config) { c.TestIT.Timeout = 0 }, wantErr: "testit.timeout"},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "invalid logging level: loud"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "invalid logging format: xml"},
		{name: "negative cache", mutate: func(c *Config) { c.Filter.CacheSize = -1 }, wantErr: "filter.cache_size"},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: "concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
