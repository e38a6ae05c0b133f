// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/state"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/pelletier/go-toml/v2"
)

const configFileName = "config.toml"

// Config is the client configuration: defaults, then the TOML file, then
// environment variables.
type Config struct {
	Recipe       RecipeConfig     `toml:"recipe"`
	OpenSearch   OpenSearchConfig `toml:"opensearch"`
	State        StateConfig      `toml:"state"`
	Events       EventsConfig     `toml:"events"`
	Log          LogConfig        `toml:"log"`
	CursorSecret string           `toml:"cursor_secret"`
}

// RecipeConfig selects and tunes the recipe source
type RecipeConfig struct {
	// Source is api, opensearch or mock
	Source     string  `toml:"source"`
	APIURL     string  `toml:"api_url"`
	Timeout    string  `toml:"timeout"`
	MaxRetries int     `toml:"max_retries"`
	RetryDelay string  `toml:"retry_delay"`
	RateLimit  float64 `toml:"rate_limit"`
	PageSize   int     `toml:"page_size"`
}

// OpenSearchConfig is used when the recipe source is opensearch
type OpenSearchConfig struct {
	URL            string `toml:"url"`
	Index          string `toml:"index"`
	InventoryIndex string `toml:"inventory_index"`
}

// StateConfig selects where the session and last search are kept
type StateConfig struct {
	// Source is file or redis
	Source      string `toml:"source"`
	Dir         string `toml:"dir"`
	RedisURL    string `toml:"redis_url"`
	RedisPrefix string `toml:"redis_prefix"`
}

// EventsConfig selects the outbound event channel
type EventsConfig struct {
	// Source is nats or none
	Source        string `toml:"source"`
	NATSURL       string `toml:"nats_url"`
	Timeout       string `toml:"timeout"`
	MaxReconnect  int    `toml:"max_reconnect"`
	ReconnectWait string `toml:"reconnect_wait"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	return Config{
		Recipe: RecipeConfig{
			Source:     "api",
			APIURL:     "http://localhost:3000/api",
			Timeout:    "10s",
			MaxRetries: 2,
			RetryDelay: "500ms",
			RateLimit:  5,
			PageSize:   constants.DefaultPageSize,
		},
		OpenSearch: OpenSearchConfig{
			URL:   "http://localhost:9200",
			Index: "recipes",
		},
		State: StateConfig{
			Source:      "file",
			RedisURL:    "redis://localhost:6379/0",
			RedisPrefix: state.DefaultKeyPrefix,
		},
		Events: EventsConfig{
			Source:        "none",
			NATSURL:       "nats://localhost:4222",
			Timeout:       "10s",
			MaxReconnect:  3,
			ReconnectWait: "2s",
		},
	}
}

// DefaultConfigPath returns ~/.recipe-search/config.toml
func DefaultConfigPath() (string, error) {
	dir, err := state.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadConfig builds the configuration. An empty path reads the default
// config file when it exists; an explicit path must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultConfigPath()
		if err == nil {
			path = defaultPath
		}
	}

	if path != "" {
		if err := readConfigFile(path, &cfg); err != nil {
			if explicit || !stderrors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return errors.NewValidation(fmt.Sprintf("invalid config file %s", path), err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, target *string) {
		if v, ok := lookup(name); ok && v != "" {
			*target = v
		}
	}
	integer := func(name string, target *int) error {
		v, ok := lookup(name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewValidation(fmt.Sprintf("invalid %s value %q", name, v), err)
		}
		*target = n
		return nil
	}

	str("RECIPE_SOURCE", &cfg.Recipe.Source)
	str("RECIPE_API_URL", &cfg.Recipe.APIURL)
	str("RECIPE_API_TIMEOUT", &cfg.Recipe.Timeout)
	str("RECIPE_API_RETRY_DELAY", &cfg.Recipe.RetryDelay)
	if err := integer("RECIPE_API_MAX_RETRIES", &cfg.Recipe.MaxRetries); err != nil {
		return err
	}
	if err := integer("RECIPE_PAGE_SIZE", &cfg.Recipe.PageSize); err != nil {
		return err
	}
	if v, ok := lookup("RECIPE_API_RATE_LIMIT"); ok && v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.NewValidation(fmt.Sprintf("invalid RECIPE_API_RATE_LIMIT value %q", v), err)
		}
		cfg.Recipe.RateLimit = rate
	}

	str("OPENSEARCH_URL", &cfg.OpenSearch.URL)
	str("OPENSEARCH_INDEX", &cfg.OpenSearch.Index)
	str("OPENSEARCH_INVENTORY_INDEX", &cfg.OpenSearch.InventoryIndex)

	str("STATE_SOURCE", &cfg.State.Source)
	str("STATE_DIR", &cfg.State.Dir)
	str("REDIS_URL", &cfg.State.RedisURL)
	str("REDIS_KEY_PREFIX", &cfg.State.RedisPrefix)

	str("EVENTS_SOURCE", &cfg.Events.Source)
	str("NATS_URL", &cfg.Events.NATSURL)
	str("NATS_TIMEOUT", &cfg.Events.Timeout)
	str("NATS_RECONNECT_WAIT", &cfg.Events.ReconnectWait)
	if err := integer("NATS_MAX_RECONNECT", &cfg.Events.MaxReconnect); err != nil {
		return err
	}

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FILE", &cfg.Log.File)
	str("RECIPE_CURSOR_SECRET", &cfg.CursorSecret)
	return nil
}

// Validate rejects unknown sources, malformed durations and page sizes out
// of range
func (c Config) Validate() error {
	switch c.Recipe.Source {
	case "api", "opensearch", "mock":
	default:
		return errors.NewValidation(fmt.Sprintf("unsupported recipe source: %s", c.Recipe.Source))
	}
	switch c.State.Source {
	case "file", "redis":
	default:
		return errors.NewValidation(fmt.Sprintf("unsupported state source: %s", c.State.Source))
	}
	switch c.Events.Source {
	case "nats", "none":
	default:
		return errors.NewValidation(fmt.Sprintf("unsupported events source: %s", c.Events.Source))
	}

	if c.Recipe.PageSize < 1 || c.Recipe.PageSize > constants.MaxPageSize {
		return errors.NewValidation(fmt.Sprintf("page size must be between 1 and %d", constants.MaxPageSize))
	}

	durations := map[string]string{
		"recipe timeout":      c.Recipe.Timeout,
		"recipe retry delay":  c.Recipe.RetryDelay,
		"nats timeout":        c.Events.Timeout,
		"nats reconnect wait": c.Events.ReconnectWait,
	}
	for name, value := range durations {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return errors.NewValidation(fmt.Sprintf("invalid %s duration %q", name, value), err)
		}
	}
	return nil
}
