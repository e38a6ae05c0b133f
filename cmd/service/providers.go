// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/nats"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/opensearch"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/recipeapi"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/state"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
)

// mockToken is issued by the mock authenticator
const mockToken = "mock-session-token"

// Runtime holds the port implementations selected by the configuration
type Runtime struct {
	Config        Config
	Fetcher       port.RecipeFetcher
	Store         port.StateStore
	Events        port.EventPublisher
	Authenticator port.Authenticator
	Meals         port.MealTracker
}

// Close releases the state store and the event connection
func (r *Runtime) Close(ctx context.Context) {
	if r.Events != nil {
		if err := r.Events.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close event publisher", "error", err)
		}
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close state store", "error", err)
		}
	}
}

// NewRuntime builds every port implementation for cfg
func NewRuntime(ctx context.Context, cfg Config) (*Runtime, error) {
	fetcher, err := RecipeFetcherImpl(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := StateStoreImpl(ctx, cfg)
	if err != nil {
		return nil, err
	}

	events, err := EventPublisherImpl(ctx, cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Runtime{
		Config:        cfg,
		Fetcher:       fetcher,
		Store:         store,
		Events:        events,
		Authenticator: AuthenticatorImpl(ctx, cfg, fetcher),
		Meals:         MealTrackerImpl(ctx, cfg, fetcher),
	}, nil
}

func recipeAPIConfig(cfg Config) (recipeapi.Config, error) {
	apiConfig, err := recipeapi.NewConfig(cfg.Recipe.APIURL,
		cfg.Recipe.Timeout,
		cfg.Recipe.MaxRetries,
		cfg.Recipe.RetryDelay,
		cfg.Recipe.RateLimit,
	)
	if err != nil {
		return recipeapi.Config{}, errors.NewValidation("failed to create recipe API configuration", err)
	}
	return apiConfig, nil
}

// RecipeFetcherImpl injects the recipe fetcher implementation
func RecipeFetcherImpl(ctx context.Context, cfg Config) (port.RecipeFetcher, error) {

	switch cfg.Recipe.Source {
	case "mock":
		slog.InfoContext(ctx, "initializing mock recipe fetcher")
		return mock.NewMockRecipeFetcher(), nil

	case "api":
		apiConfig, err := recipeAPIConfig(cfg)
		if err != nil {
			return nil, err
		}

		slog.InfoContext(ctx, "initializing recipe API fetcher",
			"base_url", apiConfig.BaseURL,
			"timeout", apiConfig.Timeout,
			"max_retries", apiConfig.MaxRetries,
		)
		return recipeapi.NewRecipeFetcher(ctx, apiConfig), nil

	case "opensearch":
		slog.InfoContext(ctx, "initializing opensearch recipe fetcher",
			"url", cfg.OpenSearch.URL,
			"index", cfg.OpenSearch.Index,
		)
		fetcher, err := opensearch.NewFetcher(ctx, opensearch.Config{
			URL:            cfg.OpenSearch.URL,
			Index:          cfg.OpenSearch.Index,
			InventoryIndex: cfg.OpenSearch.InventoryIndex,
		})
		if err != nil {
			return nil, errors.NewValidation("failed to initialize OpenSearch fetcher", err)
		}
		return fetcher, nil

	default:
		return nil, errors.NewValidation(fmt.Sprintf("unsupported recipe source: %s", cfg.Recipe.Source))
	}
}

// StateStoreImpl injects the state store implementation
func StateStoreImpl(ctx context.Context, cfg Config) (port.StateStore, error) {

	switch cfg.State.Source {
	case "file":
		slog.InfoContext(ctx, "initializing file state store", "dir", cfg.State.Dir)
		store, err := state.NewFileStore(cfg.State.Dir)
		if err != nil {
			return nil, errors.NewUnexpected("failed to initialize file state store", err)
		}
		return store, nil

	case "redis":
		slog.InfoContext(ctx, "initializing redis state store", "prefix", cfg.State.RedisPrefix)
		store, err := state.NewRedisStore(ctx, cfg.State.RedisURL, cfg.State.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, errors.NewValidation(fmt.Sprintf("unsupported state source: %s", cfg.State.Source))
	}
}

// EventPublisherImpl injects the event publisher implementation; it returns
// nil when events are disabled
func EventPublisherImpl(ctx context.Context, cfg Config) (port.EventPublisher, error) {

	switch cfg.Events.Source {
	case "none":
		slog.DebugContext(ctx, "outbound events disabled")
		return nil, nil

	case "nats":
		timeout, err := time.ParseDuration(cfg.Events.Timeout)
		if err != nil {
			return nil, errors.NewValidation("invalid NATS timeout duration", err)
		}
		reconnectWait, err := time.ParseDuration(cfg.Events.ReconnectWait)
		if err != nil {
			return nil, errors.NewValidation("invalid NATS reconnect wait duration", err)
		}

		slog.InfoContext(ctx, "initializing NATS event publisher", "url", cfg.Events.NATSURL)
		publisher, err := nats.NewEventPublisher(ctx, nats.Config{
			URL:           cfg.Events.NATSURL,
			Timeout:       timeout,
			MaxReconnect:  cfg.Events.MaxReconnect,
			ReconnectWait: reconnectWait,
		})
		if err != nil {
			return nil, errors.NewServiceUnavailable("failed to connect to NATS", err)
		}
		return publisher, nil

	default:
		return nil, errors.NewValidation(fmt.Sprintf("unsupported events source: %s", cfg.Events.Source))
	}
}

// AuthenticatorImpl injects the login implementation. The recipe API handles
// sign in for both remote sources.
func AuthenticatorImpl(ctx context.Context, cfg Config, fetcher port.RecipeFetcher) port.Authenticator {

	if cfg.Recipe.Source == "mock" {
		slog.InfoContext(ctx, "initializing mock authenticator")
		return mock.NewMockAuthenticator(mockToken)
	}

	if authenticator, ok := fetcher.(port.Authenticator); ok {
		return authenticator
	}

	apiConfig, err := recipeAPIConfig(cfg)
	if err != nil {
		slog.WarnContext(ctx, "recipe API configuration is invalid, using defaults for sign in", "error", err)
		apiConfig = recipeapi.DefaultConfig()
	}
	return recipeapi.NewRecipeFetcher(ctx, apiConfig)
}

// MealTrackerImpl injects the meal tracker implementation. OpenSearch holds
// only the recipe catalog, so food logs always go through the recipe API
// unless the mock source is configured.
func MealTrackerImpl(ctx context.Context, cfg Config, fetcher port.RecipeFetcher) port.MealTracker {

	if tracker, ok := fetcher.(port.MealTracker); ok {
		return tracker
	}

	apiConfig, err := recipeAPIConfig(cfg)
	if err != nil {
		slog.WarnContext(ctx, "recipe API configuration is invalid, using defaults for the meal tracker", "error", err)
		apiConfig = recipeapi.DefaultConfig()
	}
	slog.InfoContext(ctx, "initializing recipe API meal tracker", "base_url", apiConfig.BaseURL)
	return recipeapi.NewRecipeFetcher(ctx, apiConfig)
}
