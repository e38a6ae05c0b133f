// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/log"
)

// MealService reads the daily food log, logs servings and selects logged
// recipes for the detail view
type MealService struct {
	tracker   port.MealTracker
	session   port.SessionReader
	publisher *ResultPublisher
	now       func() time.Time
}

// Today returns the current calendar day
func (s *MealService) Today() time.Time {
	return model.Day(s.now())
}

// FoodLog returns the servings logged on day. A day without records is an
// empty log.
func (s *MealService) FoodLog(ctx context.Context, day time.Time) (*model.FoodLog, error) {
	token, err := sessionToken(ctx, s.session)
	if err != nil {
		return nil, err
	}

	day = model.Day(day)
	ctx = log.AppendCtx(ctx, slog.String("date", day.Format(model.DayLayout)))

	foodLog, err := s.tracker.FoodLogByDay(ctx, day, token)
	if err != nil {
		return nil, trackerError(ctx, "failed to read food log", err)
	}
	if foodLog == nil {
		foodLog = &model.FoodLog{Day: day}
	}
	if foodLog.Recipes == nil {
		foodLog.Recipes = []model.Recipe{}
	}

	slog.DebugContext(ctx, "food log loaded", "servings", len(foodLog.Recipes))
	return foodLog, nil
}

// AddServing logs one serving of recipeID on day and returns the refreshed
// log of that day
func (s *MealService) AddServing(ctx context.Context, recipeID string, day time.Time) (*model.FoodLog, error) {
	recipeID = strings.TrimSpace(recipeID)
	if recipeID == "" {
		return nil, errors.NewValidation("recipe id is required")
	}

	token, err := sessionToken(ctx, s.session)
	if err != nil {
		return nil, err
	}

	day = model.Day(day)
	ctx = log.AppendCtx(ctx, slog.String("date", day.Format(model.DayLayout)))
	ctx = log.AppendCtx(ctx, slog.String("recipe_id", recipeID))

	if err := s.tracker.AddServing(ctx, recipeID, day, token); err != nil {
		return nil, trackerError(ctx, "failed to add serving", err)
	}
	slog.InfoContext(ctx, "serving added to food log")

	return s.FoodLog(ctx, day)
}

// Select records a recipe logged on day as the recipe to show in the detail
// view
func (s *MealService) Select(ctx context.Context, recipeID string, day time.Time) (model.Recipe, error) {
	foodLog, err := s.FoodLog(ctx, day)
	if err != nil {
		return model.Recipe{}, err
	}

	recipe, ok := foodLog.Contains(strings.TrimSpace(recipeID))
	if !ok {
		return model.Recipe{}, errors.NewNotFound(fmt.Sprintf("Recipe %s is not in the food log of %s",
			recipeID, foodLog.Day.Format(model.DayLayout)))
	}

	if err := s.publisher.Select(ctx, recipe.ID); err != nil {
		return model.Recipe{}, err
	}
	return recipe, nil
}

// trackerError keeps typed errors and reports anything else as the meal
// tracker being unavailable
func trackerError(ctx context.Context, message string, err error) error {
	var (
		unauthenticated errors.Unauthenticated
		notFound        errors.NotFound
		validation      errors.Validation
		unavailable     errors.ServiceUnavailable
	)
	switch {
	case stderrors.As(err, &unauthenticated):
		slog.WarnContext(ctx, "meal tracker rejected the session token", "error", err)
		return err
	case stderrors.As(err, &notFound), stderrors.As(err, &validation):
		slog.DebugContext(ctx, message, "error", err)
		return err
	case stderrors.As(err, &unavailable):
		slog.ErrorContext(ctx, message, "error", err)
		return err
	default:
		slog.ErrorContext(ctx, message, "error", err)
		return errors.NewServiceUnavailable("meal tracker unavailable", err)
	}
}

// NewMealService creates a MealService; publisher records recipe selection
func NewMealService(tracker port.MealTracker, session port.SessionReader, publisher *ResultPublisher) *MealService {
	return &MealService{
		tracker:   tracker,
		session:   session,
		publisher: publisher,
		now:       time.Now,
	}
}
