package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quotelab/gainermcp/pkg/config"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name          string
		opts          runOptions
		wantURL       string
		wantHeadless  bool
		wantTimeoutMs float64
	}{
		{
			name:          "no flags set keeps config values",
			opts:          runOptions{headless: true, timeoutMs: 30000},
			wantURL:       "https://example.com/gainers",
			wantHeadless:  false,
			wantTimeoutMs: 5000,
		},
		{
			name:          "url flag replaces config url",
			opts:          runOptions{url: "https://other.example/list", headless: true, timeoutMs: 30000},
			wantURL:       "https://other.example/list",
			wantHeadless:  false,
			wantTimeoutMs: 5000,
		},
		{
			name:          "explicit headless flag wins over config",
			opts:          runOptions{headless: true, headlessSet: true, timeoutMs: 30000},
			wantURL:       "https://example.com/gainers",
			wantHeadless:  true,
			wantTimeoutMs: 5000,
		},
		{
			name:          "explicit timeout flag wins over config",
			opts:          runOptions{headless: true, timeoutMs: 15000, timeoutSet: true},
			wantURL:       "https://example.com/gainers",
			wantHeadless:  false,
			wantTimeoutMs: 15000,
		},
		{
			name: "all overrides at once",
			opts: runOptions{
				url:         "https://other.example/list",
				headless:    true,
				headlessSet: true,
				timeoutMs:   15000,
				timeoutSet:  true,
			},
			wantURL:       "https://other.example/list",
			wantHeadless:  true,
			wantTimeoutMs: 15000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Gainers.URL = "https://example.com/gainers"
			cfg.Browser.Headless = false
			cfg.Gainers.TableTimeoutMs = 5000

			applyOverrides(cfg, tt.opts)

			assert.Equal(t, tt.wantURL, cfg.Gainers.URL)
			assert.Equal(t, tt.wantHeadless, cfg.Browser.Headless)
			assert.Equal(t, tt.wantTimeoutMs, cfg.Gainers.TableTimeoutMs)
		})
	}
}
