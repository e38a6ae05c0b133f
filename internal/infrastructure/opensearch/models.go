// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import "encoding/json"

// Config represents OpenSearch configuration
type Config struct {
	URL   string `json:"url"`
	Index string `json:"index"`
	// InventoryIndex holds one document per user, keyed by the token subject
	InventoryIndex string `json:"inventory_index"`
}

// SearchResponse represents the OpenSearch search response
type SearchResponse struct {
	Hits `json:"hits"`
}

// Hits represents the hits in the search response
type Hits struct {
	Total `json:"total"`
	Hits  []Hit `json:"hits"`
}

// Total represents the total number of hits
type Total struct {
	Value int `json:"value"`
}

// Hit represents a single search result hit
type Hit struct {
	ID     string          `json:"_id"`
	Score  float64         `json:"_score"`
	Source json.RawMessage `json:"_source"`
}

// recipeSource is the indexed form of a recipe
type recipeSource struct {
	Title            string   `json:"title"`
	Img              string   `json:"img"`
	CaloriesPerServe float64  `json:"caloriesPerServe"`
	TimesFavorite    int      `json:"timesFavorite"`
	Calification     float64  `json:"calification"`
	TotalVotes       int      `json:"totalVotes"`
	Ingredients      []string `json:"ingredients"`
}

// inventorySource is the indexed form of a user's inventory
type inventorySource struct {
	Ingredients []string `json:"ingredients"`
}
