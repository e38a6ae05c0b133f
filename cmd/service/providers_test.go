// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/opensearch"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/recipeapi"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/state"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeFetcherImpl(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		source string
		check  func(t *testing.T, fetcher any)
	}{
		{
			name:   "mock",
			source: "mock",
			check: func(t *testing.T, fetcher any) {
				assert.IsType(t, &mock.MockRecipeFetcher{}, fetcher)
			},
		},
		{
			name:   "api",
			source: "api",
			check: func(t *testing.T, fetcher any) {
				assert.IsType(t, &recipeapi.RecipeFetcher{}, fetcher)
			},
		},
		{
			name:   "opensearch",
			source: "opensearch",
			check: func(t *testing.T, fetcher any) {
				assert.IsType(t, &opensearch.OpenSearchFetcher{}, fetcher)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Recipe.Source = tc.source

			fetcher, err := RecipeFetcherImpl(ctx, cfg)
			require.NoError(t, err)
			tc.check(t, fetcher)
		})
	}

	cfg := DefaultConfig()
	cfg.Recipe.Source = "graphql"
	_, err := RecipeFetcherImpl(ctx, cfg)
	assert.Error(t, err)
}

func TestStateStoreImpl(t *testing.T) {
	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.State.Dir = t.TempDir()
	store, err := StateStoreImpl(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &state.FileStore{}, store)
	assert.NoError(t, store.Close())

	mr := miniredis.RunT(t)
	cfg.State.Source = "redis"
	cfg.State.RedisURL = "redis://" + mr.Addr()
	store, err = StateStoreImpl(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &state.RedisStore{}, store)
	assert.NoError(t, store.IsReady(ctx))
	assert.NoError(t, store.Close())
}

func TestEventPublisherImplDisabled(t *testing.T) {
	publisher, err := EventPublisherImpl(context.Background(), DefaultConfig())

	require.NoError(t, err)
	assert.Nil(t, publisher)
}

func TestAuthenticatorImpl(t *testing.T) {
	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.Recipe.Source = "mock"
	authenticator := AuthenticatorImpl(ctx, cfg, mock.NewMockRecipeFetcher())
	token, err := authenticator.Login(ctx, "cook@example.com", "recipes")
	require.NoError(t, err)
	assert.Equal(t, mockToken, token)

	cfg.Recipe.Source = "api"
	fetcher, err := RecipeFetcherImpl(ctx, cfg)
	require.NoError(t, err)
	assert.Same(t, fetcher, AuthenticatorImpl(ctx, cfg, fetcher))

	cfg.Recipe.Source = "opensearch"
	assert.IsType(t, &recipeapi.RecipeFetcher{}, AuthenticatorImpl(ctx, cfg, mock.NewMockRecipeFetcher()))
}

func TestNewRuntimeWithMocks(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Recipe.Source = "mock"
	cfg.State.Dir = t.TempDir()

	rt, err := NewRuntime(ctx, cfg)
	require.NoError(t, err)
	defer rt.Close(ctx)

	assert.NotNil(t, rt.Fetcher)
	assert.NotNil(t, rt.Store)
	assert.Nil(t, rt.Events)
	assert.NotNil(t, rt.Authenticator)
	assert.NotNil(t, rt.Meals)
}

func TestMealTrackerImpl(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()

	fetcher := mock.NewMockRecipeFetcher()
	assert.Same(t, fetcher, MealTrackerImpl(ctx, cfg, fetcher))

	apiFetcher, err := RecipeFetcherImpl(ctx, cfg)
	require.NoError(t, err)
	assert.Same(t, apiFetcher, MealTrackerImpl(ctx, cfg, apiFetcher))

	cfg.Recipe.Source = "opensearch"
	assert.IsType(t, &recipeapi.RecipeFetcher{}, MealTrackerImpl(ctx, cfg, &opensearch.OpenSearchFetcher{}))
}
