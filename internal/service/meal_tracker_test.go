// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/memory"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mealFixture struct {
	meals   *MealService
	tracker *mock.MockRecipeFetcher
	session *mock.MockSessionReader
	store   *memory.Store
	events  *mock.MockEventPublisher
}

func newMealFixture() *mealFixture {
	f := &mealFixture{
		tracker: mock.NewMockRecipeFetcher(),
		session: mock.NewMockSessionReader(testToken),
		store:   memory.NewStore(),
		events:  mock.NewMockEventPublisher(),
	}
	f.meals = NewMealService(f.tracker, f.session, NewResultPublisher(f.store, f.events))
	f.meals.now = func() time.Time { return time.Date(2024, 5, 1, 21, 45, 0, 0, time.UTC) }
	return f
}

func TestMealServiceEmptyDay(t *testing.T) {
	f := newMealFixture()

	foodLog, err := f.meals.FoodLog(context.Background(), f.meals.Today())
	require.NoError(t, err)
	assert.True(t, foodLog.Empty())
	assert.NotNil(t, foodLog.Recipes)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), foodLog.Day)
}

func TestMealServiceAddServing(t *testing.T) {
	ctx := context.Background()
	f := newMealFixture()
	day := f.meals.Today()

	foodLog, err := f.meals.AddServing(ctx, "r-001", day)
	require.NoError(t, err)
	require.Len(t, foodLog.Recipes, 1)

	foodLog, err = f.meals.AddServing(ctx, " r-003 ", day.Add(20*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, []string{"r-001", "r-003"}, []string{foodLog.Recipes[0].ID, foodLog.Recipes[1].ID})
	assert.Equal(t, 600.0, foodLog.Calories())
	assert.Equal(t, model.Nutrients{Fat: 25, SaturatedFat: 5, Sodium: 1160, Carbs: 30, Fiber: 6, Sugar: 14, Proteins: 57}, foodLog.TotalNutrients)

	other, err := f.meals.FoodLog(ctx, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, other.Empty())
}

func TestMealServiceAddServingErrors(t *testing.T) {
	tests := []struct {
		name     string
		recipeID string
		setup    func(f *mealFixture)
		check    func(t *testing.T, err error)
	}{
		{
			name:     "blank recipe id",
			recipeID: "  ",
			check: func(t *testing.T, err error) {
				var target errors.Validation
				assert.True(t, stderrors.As(err, &target))
			},
		},
		{
			name:     "unknown recipe",
			recipeID: "r-404",
			check: func(t *testing.T, err error) {
				var target errors.NotFound
				assert.True(t, stderrors.As(err, &target))
			},
		},
		{
			name:     "signed out",
			recipeID: "r-001",
			setup:    func(f *mealFixture) { f.session.SetToken("") },
			check: func(t *testing.T, err error) {
				var target errors.Unauthenticated
				assert.True(t, stderrors.As(err, &target))
			},
		},
		{
			name:     "tracker down",
			recipeID: "r-001",
			setup:    func(f *mealFixture) { f.tracker.SetError(stderrors.New("connection refused")) },
			check: func(t *testing.T, err error) {
				var target errors.ServiceUnavailable
				assert.True(t, stderrors.As(err, &target))
			},
		},
		{
			name:     "session store down",
			recipeID: "r-001",
			setup:    func(f *mealFixture) { f.session.SetError(errors.NewServiceUnavailable("redis is not reachable")) },
			check: func(t *testing.T, err error) {
				var target errors.ServiceUnavailable
				assert.True(t, stderrors.As(err, &target))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newMealFixture()
			if tc.setup != nil {
				tc.setup(f)
			}

			foodLog, err := f.meals.AddServing(context.Background(), tc.recipeID, f.meals.Today())
			require.Error(t, err)
			assert.Nil(t, foodLog)
			tc.check(t, err)
		})
	}
}

func TestMealServiceSelect(t *testing.T) {
	ctx := context.Background()
	f := newMealFixture()
	day := f.meals.Today()

	_, err := f.meals.AddServing(ctx, "r-008", day)
	require.NoError(t, err)

	recipe, err := f.meals.Select(ctx, "r-008", day)
	require.NoError(t, err)
	assert.Equal(t, "Banana Pancakes", recipe.Title)
	assert.Equal(t, "r-008", f.store.SelectedRecipe())

	events := f.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventRecipeSelected, events[0].Type)

	_, err = f.meals.Select(ctx, "r-001", day)
	var notFound errors.NotFound
	require.True(t, stderrors.As(err, &notFound))
	assert.Equal(t, "r-008", f.store.SelectedRecipe())
}
