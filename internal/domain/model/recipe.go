// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// Recipe is the summary of a recipe shown in a results listing
type Recipe struct {
	// Recipe identifier assigned by the recipe service
	ID string `json:"_id"`
	// Recipe title
	Title string `json:"title"`
	// Image reference (URL or path)
	Image string `json:"img,omitempty"`
	// Calories per serving
	CaloriesPerServe float64 `json:"caloriesPerServe"`
	// Number of users who marked the recipe as favorite
	TimesFavorite int `json:"timesFavorite"`
	// Average rating
	Rating float64 `json:"calification"`
	// Number of votes behind Rating
	TotalVotes int `json:"totalVotes"`
}

// RecipePage is one page of recipes plus the pagination metadata returned by
// every recipe query operation
type RecipePage struct {
	Docs        []Recipe `json:"docs"`
	TotalPages  int      `json:"totalPages"`
	Page        int      `json:"page"`
	HasPrevPage bool     `json:"hasPrevPage"`
	HasNextPage bool     `json:"hasNextPage"`
}
