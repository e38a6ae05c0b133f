// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
)

// MealTracker reads and extends the daily food log of the token's owner
type MealTracker interface {
	// FoodLogByDay returns the servings logged on day; a day without records
	// is an empty log, not an error
	FoodLogByDay(ctx context.Context, day time.Time, token string) (*model.FoodLog, error)

	// AddServing logs one serving of recipeID on day
	AddServing(ctx context.Context, recipeID string, day time.Time, token string) error
}
