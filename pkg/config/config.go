// Package config loads the application configuration from a YAML file with
// environment overrides for secrets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quotelab/gainermcp/pkg/browser"
	"github.com/quotelab/gainermcp/pkg/finance"
)

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Browser BrowserConfig `yaml:"browser"`
	Gainers GainersConfig `yaml:"gainers"`
	LLM     LLMConfig     `yaml:"llm"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig names the MCP server as reported to clients.
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// BrowserConfig controls the single browser session.
type BrowserConfig struct {
	Headless       bool `yaml:"headless"`
	ViewportWidth  int  `yaml:"viewport_width"`
	ViewportHeight int  `yaml:"viewport_height"`

	// PageTimeoutMs is the default timeout applied to all page operations.
	PageTimeoutMs float64 `yaml:"page_timeout_ms"`

	// NavTimeoutMs bounds open_url navigation.
	NavTimeoutMs float64 `yaml:"nav_timeout_ms"`
}

// GainersConfig points the navigator at a gainers listing.
type GainersConfig struct {
	URL string `yaml:"url"`

	// TableTimeoutMs bounds the wait for the first ranked row.
	TableTimeoutMs float64 `yaml:"table_timeout_ms"`
}

// LLMConfig configures the optional plan generator. The API key may also come
// from OPENAI_API_KEY; the config value wins when both are set.
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:    "gainermcp",
			Version: "1.0",
		},
		Browser: BrowserConfig{
			Headless:       true,
			ViewportWidth:  browser.DefaultViewportWidth,
			ViewportHeight: browser.DefaultViewportHeight,
			PageTimeoutMs:  browser.DefaultPageTimeout,
			NavTimeoutMs:   browser.DefaultTimeout,
		},
		Gainers: GainersConfig{
			URL:            finance.DefaultGainersURL,
			TableTimeoutMs: browser.DefaultTimeout,
		},
		LLM: LLMConfig{
			Model: "gpt-4o",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path, applies it on top of the defaults, and
// fills secrets from the environment. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = os.Getenv("OPENAI_BASE_URL")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Gainers.URL == "" {
		return fmt.Errorf("gainers.url must not be empty")
	}
	if c.Browser.PageTimeoutMs < 0 || c.Browser.NavTimeoutMs < 0 || c.Gainers.TableTimeoutMs < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// SessionOptions converts the browser section into session options.
func (c *BrowserConfig) SessionOptions() browser.SessionOptions {
	return browser.SessionOptions{
		Headless: c.Headless,
		Viewport: &browser.Viewport{
			Width:  c.ViewportWidth,
			Height: c.ViewportHeight,
		},
		Timeout: c.PageTimeoutMs,
	}
}
