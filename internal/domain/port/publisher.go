// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
)

// ResultStore is the shared application state written by the coordinator
// and read by results and detail views
type ResultStore interface {
	// ReplaceResults swaps the whole result collection
	ReplaceResults(ctx context.Context, results []model.Recipe) error

	// SetSelectedRecipe records the recipe chosen for detail viewing
	SetSelectedRecipe(ctx context.Context, recipeID string) error
}

// EventPublisher delivers outbound events
type EventPublisher interface {
	// Publish sends the event; delivery is best effort
	Publish(ctx context.Context, event model.Event) error

	// Close releases the underlying connection
	Close() error
}

// Viewport is the scrollable area displaying results
type Viewport interface {
	// ScrollToTop moves the results view back to its first line
	ScrollToTop(ctx context.Context)
}
