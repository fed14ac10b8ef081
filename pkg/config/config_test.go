package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotelab/gainermcp/pkg/browser"
	"github.com/quotelab/gainermcp/pkg/finance"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gainermcp", cfg.Server.Name)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, finance.DefaultGainersURL, cfg.Gainers.URL)
	assert.Equal(t, browser.DefaultPageTimeout, cfg.Browser.PageTimeoutMs)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  name: custom-server
browser:
  headless: false
  nav_timeout_ms: 5000
gainers:
  url: https://example.com/gainers
logging:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "custom-server", cfg.Server.Name)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 5000.0, cfg.Browser.NavTimeoutMs)
	assert.Equal(t, "https://example.com/gainers", cfg.Gainers.URL)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched sections keep their defaults
	assert.Equal(t, browser.DefaultPageTimeout, cfg.Browser.PageTimeoutMs)
}

func TestLoad_APIKeyFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.LLM.APIKey)
}

func TestLoad_ConfigKeyWinsOverEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  api_key: sk-from-file\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-file", cfg.LLM.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "empty gainers url", yaml: "gainers:\n  url: \"\"\n"},
		{name: "negative timeout", yaml: "browser:\n  nav_timeout_ms: -1\n"},
		{name: "malformed yaml", yaml: "browser: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestSessionOptions(t *testing.T) {
	cfg := Default()
	opts := cfg.Browser.SessionOptions()

	assert.True(t, opts.Headless)
	require.NotNil(t, opts.Viewport)
	assert.Equal(t, browser.DefaultViewportWidth, opts.Viewport.Width)
	assert.Equal(t, browser.DefaultPageTimeout, opts.Timeout)
}
