// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
cursor_secret = "from-file"

[recipe]
source = "mock"
page_size = 20
timeout = "3s"

[state]
source = "file"
dir = "/tmp/recipes"

[events]
source = "none"
`)
	t.Setenv("RECIPE_PAGE_SIZE", "25")
	t.Setenv("NATS_URL", "nats://events:4222")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mock", cfg.Recipe.Source)
	assert.Equal(t, 25, cfg.Recipe.PageSize)
	assert.Equal(t, "3s", cfg.Recipe.Timeout)
	assert.Equal(t, "500ms", cfg.Recipe.RetryDelay)
	assert.Equal(t, "/tmp/recipes", cfg.State.Dir)
	assert.Equal(t, "nats://events:4222", cfg.Events.NATSURL)
	assert.Equal(t, "from-file", cfg.CursorSecret)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadConfigMissingDefaultFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Recipe, cfg.Recipe)
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := writeConfig(t, "[recipe\nsource=")

	_, err := LoadConfig(path)

	var validation errors.Validation
	assert.True(t, stderrors.As(err, &validation))
}

func TestApplyEnvInvalidNumbers(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "page size", env: map[string]string{"RECIPE_PAGE_SIZE": "ten"}},
		{name: "max retries", env: map[string]string{"RECIPE_API_MAX_RETRIES": "x"}},
		{name: "rate limit", env: map[string]string{"RECIPE_API_RATE_LIMIT": "fast"}},
		{name: "nats reconnect", env: map[string]string{"NATS_MAX_RECONNECT": "many"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			lookup := func(name string) (string, bool) {
				v, ok := tc.env[name]
				return v, ok
			}
			assert.Error(t, applyEnv(&cfg, lookup))
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{name: "defaults", modify: func(*Config) {}, valid: true},
		{name: "opensearch source", modify: func(c *Config) { c.Recipe.Source = "opensearch" }, valid: true},
		{name: "unknown recipe source", modify: func(c *Config) { c.Recipe.Source = "graphql" }},
		{name: "unknown state source", modify: func(c *Config) { c.State.Source = "sqlite" }},
		{name: "unknown events source", modify: func(c *Config) { c.Events.Source = "kafka" }},
		{name: "zero page size", modify: func(c *Config) { c.Recipe.PageSize = 0 }},
		{name: "page size too large", modify: func(c *Config) { c.Recipe.PageSize = constants.MaxPageSize + 1 }},
		{name: "bad duration", modify: func(c *Config) { c.Events.ReconnectWait = "soon" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)

			err := cfg.Validate()
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			var validation errors.Validation
			assert.True(t, stderrors.As(err, &validation))
		})
	}
}
