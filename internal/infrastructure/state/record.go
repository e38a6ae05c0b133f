// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package state persists the client session between invocations, either in a
// TOML file under the user's home or in Redis.
package state

import (
	"context"
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
)

// recipeRecord is the persisted form of a recipe
type recipeRecord struct {
	ID               string  `toml:"id" json:"_id"`
	Title            string  `toml:"title" json:"title"`
	Image            string  `toml:"img,omitempty" json:"img,omitempty"`
	CaloriesPerServe float64 `toml:"calories_per_serve" json:"caloriesPerServe"`
	TimesFavorite    int     `toml:"times_favorite" json:"timesFavorite"`
	Rating           float64 `toml:"rating" json:"calification"`
	TotalVotes       int     `toml:"total_votes" json:"totalVotes"`
}

func toRecords(recipes []model.Recipe) []recipeRecord {
	records := make([]recipeRecord, len(recipes))
	for i, r := range recipes {
		records[i] = recipeRecord(r)
	}
	return records
}

func fromRecords(records []recipeRecord) []model.Recipe {
	recipes := make([]model.Recipe, len(records))
	for i, r := range records {
		recipes[i] = model.Recipe(r)
	}
	return recipes
}

// checkToken turns a stored token into the Token result. Expired JWTs are
// reported like a missing token.
func checkToken(ctx context.Context, token string, now time.Time) (string, error) {
	if token == "" {
		return "", errors.NewUnauthenticated("no session token stored")
	}
	if auth.Expired(token, now) {
		slog.DebugContext(ctx, "stored session token has expired")
		return "", errors.NewUnauthenticated("session token expired")
	}
	return token, nil
}
