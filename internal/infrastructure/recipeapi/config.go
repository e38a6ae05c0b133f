// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package recipeapi

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

var defaultBaseURL = "http://localhost:3000/api"

// Config holds the configuration for the recipe API client
type Config struct {
	// BaseURL is the API root, e.g. https://recipes.example.com/api
	BaseURL string

	// Timeout is the HTTP client timeout for API requests
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration

	// RateLimit is the number of requests per second sent to the API
	RateLimit float64
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:    defaultBaseURL,
		Timeout:    10 * time.Second,
		MaxRetries: 2,
		RetryDelay: 500 * time.Millisecond,
		RateLimit:  5,
	}
}

// NewConfig creates a new recipe API configuration with the provided parameters
func NewConfig(baseURL, timeout string, maxRetries int, retryDelay string, rateLimit float64) (Config, error) {
	cfg := DefaultConfig()

	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Config{}, fmt.Errorf("invalid recipe API URL %q", baseURL)
		}
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}

	if timeout != "" {
		timeoutDuration, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid timeout duration: %w", err)
		}
		cfg.Timeout = timeoutDuration
	}

	if maxRetries >= 0 {
		cfg.MaxRetries = maxRetries
	}

	if retryDelay != "" {
		retryDelayDuration, err := time.ParseDuration(retryDelay)
		if err != nil {
			return Config{}, fmt.Errorf("invalid retry delay duration: %w", err)
		}
		cfg.RetryDelay = retryDelayDuration
	}

	if rateLimit > 0 {
		cfg.RateLimit = rateLimit
	}

	return cfg, nil
}
