// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package recipeapi

import (
	"context"
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/port"
)

var (
	_ port.RecipeFetcher = (*RecipeFetcher)(nil)
	_ port.Authenticator = (*RecipeFetcher)(nil)
	_ port.MealTracker   = (*RecipeFetcher)(nil)
)

// RecipeFetcher implements the port.RecipeFetcher interface using the recipe API
type RecipeFetcher struct {
	client *Client
}

// FetchAll lists recipes without filtering
func (f *RecipeFetcher) FetchAll(ctx context.Context, page, limit int, token string) (*model.RecipePage, error) {
	slog.DebugContext(ctx, "listing recipes via recipe API")

	resp, err := f.client.ListRecipes(ctx, page, limit, token)
	if err != nil {
		return nil, err
	}
	return f.convertToDomainModel(resp), nil
}

// FetchByKeyword searches recipes by keyword
func (f *RecipeFetcher) FetchByKeyword(ctx context.Context, keyword string, page, limit int, token string) (*model.RecipePage, error) {
	slog.DebugContext(ctx, "searching recipes via recipe API", "keyword", keyword)

	resp, err := f.client.SearchRecipes(ctx, keyword, page, limit, token)
	if err != nil {
		return nil, err
	}
	return f.convertToDomainModel(resp), nil
}

// FetchByInventory lists recipes makeable with the caller's inventory
func (f *RecipeFetcher) FetchByInventory(ctx context.Context, page, limit int, token string) (*model.RecipePage, error) {
	slog.DebugContext(ctx, "listing inventory recipes via recipe API")

	resp, err := f.client.InventoryRecipes(ctx, page, limit, token)
	if err != nil {
		return nil, err
	}
	return f.convertToDomainModel(resp), nil
}

// IsReady checks if the recipe API is ready to serve requests
func (f *RecipeFetcher) IsReady(ctx context.Context) error {
	return f.client.IsReady(ctx)
}

// Login exchanges credentials for a session token
func (f *RecipeFetcher) Login(ctx context.Context, email, password string) (string, error) {
	return f.client.Login(ctx, email, password)
}

// FoodLogByDay reads the meal tracker log of day
func (f *RecipeFetcher) FoodLogByDay(ctx context.Context, day time.Time, token string) (*model.FoodLog, error) {
	date := day.Format(model.DayLayout)
	slog.DebugContext(ctx, "reading food log via recipe API", "date", date)

	resp, err := f.client.FoodLogByDay(ctx, date, token)
	if err != nil {
		return nil, err
	}

	foodLog := &model.FoodLog{Day: model.Day(day), Recipes: []model.Recipe{}}
	if resp == nil {
		return foodLog, nil
	}
	foodLog.Recipes = toRecipes(resp.Recipes)
	foodLog.TotalNutrients = model.Nutrients{
		Fat:          resp.TotalNutrients.TotalFat,
		SaturatedFat: resp.TotalNutrients.TotalSaturatedFat,
		Sodium:       resp.TotalNutrients.TotalSodium,
		Carbs:        resp.TotalNutrients.TotalCarbs,
		Fiber:        resp.TotalNutrients.TotalFiber,
		Sugar:        resp.TotalNutrients.TotalSugar,
		Proteins:     resp.TotalNutrients.TotalProteins,
	}
	return foodLog, nil
}

// AddServing logs one serving of recipeID on day
func (f *RecipeFetcher) AddServing(ctx context.Context, recipeID string, day time.Time, token string) error {
	date := day.Format(model.DayLayout)
	slog.DebugContext(ctx, "adding serving via recipe API", "recipe_id", recipeID, "date", date)
	return f.client.AddServing(ctx, recipeID, date, token)
}

func toRecipes(documents []RecipeDocument) []model.Recipe {
	recipes := make([]model.Recipe, len(documents))
	for i, doc := range documents {
		recipes[i] = model.Recipe{
			ID:               doc.ID,
			Title:            doc.Title,
			Image:            doc.Img,
			CaloriesPerServe: doc.CaloriesPerServe,
			TimesFavorite:    doc.TimesFavorite,
			Rating:           doc.Calification,
			TotalVotes:       doc.TotalVotes,
		}
	}
	return recipes
}

// convertToDomainModel converts an API page to the domain model; null docs
// become an empty page
func (f *RecipeFetcher) convertToDomainModel(resp *PaginatedResponse) *model.RecipePage {
	docs := toRecipes(resp.Docs)

	return &model.RecipePage{
		Docs:        docs,
		TotalPages:  resp.TotalPages,
		Page:        resp.Page,
		HasPrevPage: resp.HasPrevPage,
		HasNextPage: resp.HasNextPage,
	}
}

// NewRecipeFetcher creates a new recipe API backed fetcher
func NewRecipeFetcher(ctx context.Context, config Config) *RecipeFetcher {
	slog.InfoContext(ctx, "recipe API fetcher initialized", "base_url", config.BaseURL)

	return &RecipeFetcher{
		client: NewClient(config),
	}
}
