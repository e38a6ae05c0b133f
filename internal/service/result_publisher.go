// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/google/uuid"
)

// ResultPublisher pushes fetched result sets into shared state and emits the
// matching outbound events
type ResultPublisher struct {
	store  port.ResultStore
	events port.EventPublisher
	now    func() time.Time
}

// Publish replaces the shared result collection with results. The returned
// event announces the replacement and is delivered by Emit, so callers can
// send it after releasing their own locks.
func (p *ResultPublisher) Publish(ctx context.Context, mode model.QueryMode, page int, results []model.Recipe) (model.Event, error) {

	replacement := make([]model.Recipe, len(results))
	copy(replacement, results)

	if err := p.store.ReplaceResults(ctx, replacement); err != nil {
		slog.ErrorContext(ctx, "failed to replace search results", "error", err)
		return model.Event{}, errors.NewUnexpected("failed to publish search results", err)
	}

	slog.DebugContext(ctx, "search results published",
		"count", len(replacement),
	)

	return p.newEvent(model.Event{
		Type:  model.EventResultsPublished,
		Mode:  mode.String(),
		Page:  page,
		Count: len(replacement),
	}), nil
}

// Select records recipeID as the recipe to show in the detail view.
// Event delivery is best effort.
func (p *ResultPublisher) Select(ctx context.Context, recipeID string) error {
	recipeID = strings.TrimSpace(recipeID)
	if recipeID == "" {
		return errors.NewValidation("recipe id is required")
	}

	if err := p.store.SetSelectedRecipe(ctx, recipeID); err != nil {
		slog.ErrorContext(ctx, "failed to record selected recipe",
			"recipe_id", recipeID,
			"error", err,
		)
		return errors.NewUnexpected("failed to record selected recipe", err)
	}

	p.Emit(ctx, p.newEvent(model.Event{
		Type:     model.EventRecipeSelected,
		RecipeID: recipeID,
		Count:    1,
	}))
	return nil
}

func (p *ResultPublisher) newEvent(event model.Event) model.Event {
	event.ID = uuid.NewString()
	event.OccurredAt = p.now().UTC()
	return event
}

// Emit delivers event on the outbound channel. Failures are logged and
// never returned.
func (p *ResultPublisher) Emit(ctx context.Context, event model.Event) {
	if p.events == nil || event.Type == "" {
		return
	}

	if err := p.events.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event",
			"event_type", event.Type,
			"event_id", event.ID,
			"error", err,
		)
	}
}

// NewResultPublisher creates a ResultPublisher; events may be nil when no
// outbound channel is configured
func NewResultPublisher(store port.ResultStore, events port.EventPublisher) *ResultPublisher {
	return &ResultPublisher{
		store:  store,
		events: events,
		now:    time.Now,
	}
}
