// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "time"

// EventType names an outbound event emitted by the search coordinator
type EventType string

const (
	// EventResultsPublished is emitted after a result set replaced the shared results
	EventResultsPublished EventType = "results_published"
	// EventRecipeSelected is emitted when the user picks a recipe for detail viewing
	EventRecipeSelected EventType = "recipe_selected"
)

// Event is an outbound notification for other views or processes
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	RecipeID   string    `json:"recipe_id,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	Page       int       `json:"page,omitempty"`
	Count      int       `json:"count"`
}
