// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSClient wraps the NATS connection and provides publish operations
type NATSClient struct {
	conn    *nats.Conn
	config  Config
	timeout time.Duration
}

// NATSClientInterface defines the interface for NATS operations
// This allows for easy mocking and testing
type NATSClientInterface interface {
	Publish(ctx context.Context, request *PublishNATSRequest) error
	IsReady(ctx context.Context) error
	Close() error
}

// Publish sends a message and waits until the server has received it
func (c *NATSClient) Publish(ctx context.Context, request *PublishNATSRequest) error {

	if request == nil {
		slog.ErrorContext(ctx, "invalid NATS publish request: request cannot be nil")
		return fmt.Errorf("invalid NATS publish request: request cannot be nil")
	}

	if request.Subject == "" || len(request.Message) == 0 {
		slog.ErrorContext(ctx, "invalid NATS publish request",
			"subject", request.Subject,
		)
		return fmt.Errorf("invalid NATS publish request: subject and message must be set")
	}

	msg := nats.NewMsg(request.Subject)
	msg.Data = request.Message
	if request.MsgID != "" {
		msg.Header.Set(nats.MsgIdHdr, request.MsgID)
	}

	if errPublish := c.conn.PublishMsg(msg); errPublish != nil {
		slog.ErrorContext(ctx, "NATS publish failed", "error", errPublish)
		return fmt.Errorf("NATS publish failed: %w", errPublish)
	}

	// the process may exit right after a CLI command, so wait for the server
	if errFlush := c.conn.FlushTimeout(c.timeout); errFlush != nil {
		slog.ErrorContext(ctx, "NATS flush failed", "error", errFlush)
		return fmt.Errorf("NATS flush failed: %w", errFlush)
	}

	slog.DebugContext(ctx, "published NATS message",
		"subject", request.Subject,
		"msg_id", request.MsgID,
	)
	return nil
}

// IsReady reports whether the connection is up
func (c *NATSClient) IsReady(ctx context.Context) error {
	if c.conn == nil || !c.conn.IsConnected() {
		return errors.New("NATS connection is not established")
	}
	return nil
}

// Close drains pending messages and closes the NATS connection
func (c *NATSClient) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}

// NewClient creates a new NATS client with the given configuration
func NewClient(ctx context.Context, config Config) (*NATSClient, error) {
	slog.InfoContext(ctx, "creating NATS client",
		"url", config.URL,
		"timeout", config.Timeout,
	)

	// Configure NATS connection options
	opts := []nats.Option{
		nats.Name("lfx-v2-recipe-search"),
		nats.Timeout(config.Timeout),
		nats.MaxReconnects(config.MaxReconnect),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.WarnContext(ctx, "NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection closed")
		}),
	}

	// Establish connection
	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to NATS", "error", err)
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	client := &NATSClient{
		conn:    conn,
		config:  config,
		timeout: config.Timeout,
	}

	slog.InfoContext(ctx, "NATS client created successfully",
		"connected_url", conn.ConnectedUrl(),
		"status", conn.Status(),
	)

	return client, nil
}
