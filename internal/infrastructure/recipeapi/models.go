// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package recipeapi

// RecipeDocument is a recipe as returned by the recipe API
type RecipeDocument struct {
	ID               string  `json:"_id"`
	Title            string  `json:"title"`
	Img              string  `json:"img"`
	CaloriesPerServe float64 `json:"caloriesPerServe"`
	TimesFavorite    int     `json:"timesFavorite"`
	Calification     float64 `json:"calification"`
	TotalVotes       int     `json:"totalVotes"`
}

// PaginatedResponse is the envelope shared by every recipe listing endpoint
type PaginatedResponse struct {
	Docs        []RecipeDocument `json:"docs"`
	TotalDocs   int              `json:"totalDocs"`
	Limit       int              `json:"limit"`
	TotalPages  int              `json:"totalPages"`
	Page        int              `json:"page"`
	HasPrevPage bool             `json:"hasPrevPage"`
	HasNextPage bool             `json:"hasNextPage"`
}

// LoginRequest is the body of the login endpoint
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token issued on login
type LoginResponse struct {
	Token string `json:"token"`
}

// NutrientTotals are the nutrient sums of a food log
type NutrientTotals struct {
	TotalFat          float64 `json:"totalFat"`
	TotalSaturatedFat float64 `json:"totalSaturatedFat"`
	TotalSodium       float64 `json:"totalSodium"`
	TotalCarbs        float64 `json:"totalCarbs"`
	TotalFiber        float64 `json:"totalFiber"`
	TotalSugar        float64 `json:"totalSugar"`
	TotalProteins     float64 `json:"totalProteins"`
}

// FoodLogResponse is the food log of one day; the API answers null for a
// day without records
type FoodLogResponse struct {
	Date           string           `json:"date"`
	Recipes        []RecipeDocument `json:"recipes"`
	TotalNutrients NutrientTotals   `json:"totalNutrients"`
}

// AddServingRequest is the body of the add serving endpoint
type AddServingRequest struct {
	RecipeID string `json:"recipeId"`
	Date     string `json:"date"`
}

// ErrorResponse is the error body returned by the recipe API
type ErrorResponse struct {
	Message string `json:"message"`
}
