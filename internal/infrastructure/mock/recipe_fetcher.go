// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
)

// FetchCall records one remote operation issued against the mock
type FetchCall struct {
	Mode    model.QueryMode
	Keyword string
	Page    int
	Limit   int
	Token   string
}

type scriptedResponse struct {
	page *model.RecipePage
	err  error
}

type mockRecipe struct {
	recipe      model.Recipe
	ingredients []string
	nutrients   model.Nutrients
}

// MockRecipeFetcher is a mock implementation of RecipeFetcher for testing
// and local development. Responses come from a queue of scripted replies
// when one is set, otherwise they are paginated out of an in-memory catalog.
// It also keeps an in-memory food log for the meal tracker.
type MockRecipeFetcher struct {
	mu           sync.Mutex
	recipes      []mockRecipe
	inventory    map[string]struct{}
	servings     map[string][]string
	calls        []FetchCall
	script       []scriptedResponse
	err          error
	isReadyError error
	hook         func(FetchCall)
}

// FetchAll implements the RecipeFetcher interface with mock data
func (m *MockRecipeFetcher) FetchAll(ctx context.Context, page, limit int, token string) (*model.RecipePage, error) {
	return m.fetch(ctx, FetchCall{Mode: model.ModeAll, Page: page, Limit: limit, Token: token})
}

// FetchByKeyword implements the RecipeFetcher interface with mock data
func (m *MockRecipeFetcher) FetchByKeyword(ctx context.Context, keyword string, page, limit int, token string) (*model.RecipePage, error) {
	return m.fetch(ctx, FetchCall{Mode: model.ModeKeyword, Keyword: keyword, Page: page, Limit: limit, Token: token})
}

// FetchByInventory implements the RecipeFetcher interface with mock data
func (m *MockRecipeFetcher) FetchByInventory(ctx context.Context, page, limit int, token string) (*model.RecipePage, error) {
	return m.fetch(ctx, FetchCall{Mode: model.ModeInventory, Page: page, Limit: limit, Token: token})
}

// IsReady implements the RecipeFetcher interface
func (m *MockRecipeFetcher) IsReady(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isReadyError
}

// FoodLogByDay implements the MealTracker interface with the in-memory log
func (m *MockRecipeFetcher) FoodLogByDay(ctx context.Context, day time.Time, token string) (*model.FoodLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	foodLog := &model.FoodLog{Day: model.Day(day), Recipes: []model.Recipe{}}
	for _, id := range m.servings[day.Format(model.DayLayout)] {
		r, ok := m.lookup(id)
		if !ok {
			continue
		}
		foodLog.Recipes = append(foodLog.Recipes, r.recipe)
		foodLog.TotalNutrients = foodLog.TotalNutrients.Add(r.nutrients)
	}
	return foodLog, nil
}

// AddServing implements the MealTracker interface with the in-memory log
func (m *MockRecipeFetcher) AddServing(ctx context.Context, recipeID string, day time.Time, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	if _, ok := m.lookup(recipeID); !ok {
		return errors.NewNotFound(fmt.Sprintf("recipe %s does not exist", recipeID))
	}

	date := day.Format(model.DayLayout)
	m.servings[date] = append(m.servings[date], recipeID)
	slog.DebugContext(ctx, "mock serving added", "recipe_id", recipeID, "date", date)
	return nil
}

func (m *MockRecipeFetcher) lookup(id string) (mockRecipe, bool) {
	for _, r := range m.recipes {
		if r.recipe.ID == id {
			return r, true
		}
	}
	return mockRecipe{}, false
}

func (m *MockRecipeFetcher) fetch(ctx context.Context, call FetchCall) (*model.RecipePage, error) {
	slog.DebugContext(ctx, "executing mock recipe fetch",
		"mode", call.Mode.String(),
		"keyword", call.Keyword,
		"page", call.Page,
	)

	m.mu.Lock()
	m.calls = append(m.calls, call)
	hook := m.hook
	var scripted *scriptedResponse
	if len(m.script) > 0 {
		scripted = &m.script[0]
		m.script = m.script[1:]
	}
	err := m.err
	m.mu.Unlock()

	// the hook runs unlocked so tests can block a request mid-flight
	if hook != nil {
		hook(call)
	}

	if scripted != nil {
		return scripted.page, scripted.err
	}
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paginate(m.filter(call), call.Page, call.Limit), nil
}

func (m *MockRecipeFetcher) filter(call FetchCall) []model.Recipe {
	var out []model.Recipe
	keyword := strings.ToLower(call.Keyword)
	for _, r := range m.recipes {
		switch call.Mode {
		case model.ModeKeyword:
			if !strings.Contains(strings.ToLower(r.recipe.Title), keyword) {
				continue
			}
		case model.ModeInventory:
			if !m.makeable(r) {
				continue
			}
		}
		out = append(out, r.recipe)
	}
	return out
}

func (m *MockRecipeFetcher) makeable(r mockRecipe) bool {
	if len(r.ingredients) == 0 {
		return false
	}
	for _, ingredient := range r.ingredients {
		if _, ok := m.inventory[ingredient]; !ok {
			return false
		}
	}
	return true
}

func (m *MockRecipeFetcher) paginate(recipes []model.Recipe, page, limit int) *model.RecipePage {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	totalPages := (len(recipes) + limit - 1) / limit
	start := (page - 1) * limit
	end := start + limit
	if start > len(recipes) {
		start = len(recipes)
	}
	if end > len(recipes) {
		end = len(recipes)
	}

	docs := make([]model.Recipe, end-start)
	copy(docs, recipes[start:end])

	return &model.RecipePage{
		Docs:        docs,
		TotalPages:  totalPages,
		Page:        page,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
	}
}

// AddRecipe adds a recipe to the mock catalog
func (m *MockRecipeFetcher) AddRecipe(recipe model.Recipe, ingredients ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipes = append(m.recipes, mockRecipe{recipe: recipe, ingredients: ingredients})
}

// SetNutrients sets the nutrients of one serving of recipe id
func (m *MockRecipeFetcher) SetNutrients(id string, nutrients model.Nutrients) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.recipes {
		if m.recipes[i].recipe.ID == id {
			m.recipes[i].nutrients = nutrients
		}
	}
}

// ClearRecipes removes every recipe from the mock catalog
func (m *MockRecipeFetcher) ClearRecipes() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipes = nil
}

// SetInventory replaces the ingredients considered on hand
func (m *MockRecipeFetcher) SetInventory(items ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inventory = make(map[string]struct{}, len(items))
	for _, item := range items {
		m.inventory[item] = struct{}{}
	}
}

// QueueResponse scripts the reply of the next unscripted fetch
func (m *MockRecipeFetcher) QueueResponse(page *model.RecipePage, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scriptedResponse{page: page, err: err})
}

// SetError makes every unscripted fetch fail with err; nil clears it
func (m *MockRecipeFetcher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetIsReadyError sets the error returned by IsReady
func (m *MockRecipeFetcher) SetIsReadyError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isReadyError = err
}

// SetHook installs a function called with every fetch before it replies
func (m *MockRecipeFetcher) SetHook(hook func(FetchCall)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hook = hook
}

// Calls returns the recorded fetches in order
func (m *MockRecipeFetcher) Calls() []FetchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]FetchCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// NewEmptyMockRecipeFetcher creates a mock fetcher without any recipes
func NewEmptyMockRecipeFetcher() *MockRecipeFetcher {
	return &MockRecipeFetcher{
		inventory: map[string]struct{}{},
		servings:  map[string][]string{},
	}
}

// NewMockRecipeFetcher creates a new mock fetcher with some sample data
func NewMockRecipeFetcher() *MockRecipeFetcher {
	m := NewEmptyMockRecipeFetcher()

	m.AddRecipe(model.Recipe{ID: "r-001", Title: "Lemon Garlic Chicken", CaloriesPerServe: 420, TimesFavorite: 31, Rating: 4.6, TotalVotes: 58}, "chicken", "lemon", "garlic")
	m.AddRecipe(model.Recipe{ID: "r-002", Title: "Chicken Fried Rice", CaloriesPerServe: 510, TimesFavorite: 22, Rating: 4.2, TotalVotes: 40}, "chicken", "rice", "egg", "soy sauce")
	m.AddRecipe(model.Recipe{ID: "r-003", Title: "Tomato Basil Soup", CaloriesPerServe: 180, TimesFavorite: 17, Rating: 4.4, TotalVotes: 25}, "tomato", "basil", "onion")
	m.AddRecipe(model.Recipe{ID: "r-004", Title: "Spinach Omelette", CaloriesPerServe: 250, TimesFavorite: 9, Rating: 4.0, TotalVotes: 12}, "egg", "spinach")
	m.AddRecipe(model.Recipe{ID: "r-005", Title: "Beef Stir Fry", CaloriesPerServe: 560, TimesFavorite: 14, Rating: 4.1, TotalVotes: 19}, "beef", "broccoli", "soy sauce")
	m.AddRecipe(model.Recipe{ID: "r-006", Title: "Chickpea Curry", CaloriesPerServe: 390, TimesFavorite: 27, Rating: 4.7, TotalVotes: 44}, "chickpeas", "tomato", "onion", "curry powder")
	m.AddRecipe(model.Recipe{ID: "r-007", Title: "Greek Salad", CaloriesPerServe: 210, TimesFavorite: 12, Rating: 4.3, TotalVotes: 21}, "tomato", "cucumber", "feta", "olive")
	m.AddRecipe(model.Recipe{ID: "r-008", Title: "Banana Pancakes", CaloriesPerServe: 330, TimesFavorite: 35, Rating: 4.8, TotalVotes: 63}, "banana", "egg", "flour")
	m.AddRecipe(model.Recipe{ID: "r-009", Title: "Chicken Noodle Soup", CaloriesPerServe: 300, TimesFavorite: 19, Rating: 4.5, TotalVotes: 33}, "chicken", "noodles", "carrot", "onion")
	m.AddRecipe(model.Recipe{ID: "r-010", Title: "Mushroom Risotto", CaloriesPerServe: 470, TimesFavorite: 16, Rating: 4.2, TotalVotes: 20}, "rice", "mushroom", "parmesan")
	m.AddRecipe(model.Recipe{ID: "r-011", Title: "Egg Fried Rice", CaloriesPerServe: 400, TimesFavorite: 11, Rating: 3.9, TotalVotes: 15}, "rice", "egg", "soy sauce")
	m.AddRecipe(model.Recipe{ID: "r-012", Title: "Garlic Butter Shrimp", CaloriesPerServe: 350, TimesFavorite: 24, Rating: 4.6, TotalVotes: 37}, "shrimp", "garlic", "butter")

	m.SetNutrients("r-001", model.Nutrients{Fat: 18, SaturatedFat: 4, Sodium: 620, Carbs: 6, Fiber: 1, Sugar: 2, Proteins: 52})
	m.SetNutrients("r-003", model.Nutrients{Fat: 7, SaturatedFat: 1, Sodium: 540, Carbs: 24, Fiber: 5, Sugar: 12, Proteins: 5})
	m.SetNutrients("r-008", model.Nutrients{Fat: 9, SaturatedFat: 3, Sodium: 310, Carbs: 52, Fiber: 4, Sugar: 18, Proteins: 10})

	m.SetInventory("egg", "rice", "soy sauce", "spinach", "chicken", "lemon", "garlic")
	return m
}
