// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/constants"
)

var _ port.EventPublisher = (*NATSEventPublisher)(nil)

// NATSEventPublisher implements the EventPublisher interface for NATS
type NATSEventPublisher struct {
	client NATSClientInterface
}

// Publish implements the EventPublisher interface
func (n *NATSEventPublisher) Publish(ctx context.Context, event model.Event) error {
	subject := Subject(event.Type)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	slog.DebugContext(ctx, "publishing event via NATS",
		"subject", subject,
		"event_id", event.ID,
	)

	if err := n.client.Publish(ctx, &PublishNATSRequest{
		Subject: subject,
		Message: data,
		MsgID:   event.ID,
	}); err != nil {
		return fmt.Errorf("NATS event publish failed: %w", err)
	}
	return nil
}

// IsReady reports whether the NATS connection is up
func (n *NATSEventPublisher) IsReady(ctx context.Context) error {
	return n.client.IsReady(ctx)
}

// Close gracefully closes the NATS connection
func (n *NATSEventPublisher) Close() error {
	return n.client.Close()
}

// Subject returns the subject events of the given type are published on
func Subject(eventType model.EventType) string {
	return constants.EventSubjectPrefix + string(eventType)
}

// NewEventPublisher creates a new NATS event publisher
func NewEventPublisher(ctx context.Context, config Config) (*NATSEventPublisher, error) {
	slog.InfoContext(ctx, "creating NATS event publisher",
		"url", config.URL,
	)

	client, err := NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS client: %w", err)
	}

	return &NATSEventPublisher{
		client: client,
	}, nil
}
