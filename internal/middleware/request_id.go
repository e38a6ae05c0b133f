// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/log"

	"github.com/google/uuid"
)

// WithRequestID returns a context carrying a request ID, generating one when
// the context has none yet. The ID is also attached to the log context.
func WithRequestID(ctx context.Context) (context.Context, string) {
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		return ctx, requestID
	}

	requestID := generateRequestID()
	ctx = context.WithValue(ctx, constants.RequestIDHeader, requestID)

	// every log line emitted for this call carries the request id
	ctx = log.AppendCtx(ctx, slog.String(string(constants.RequestIDHeader), requestID))
	return ctx, requestID
}

// RequestIDFromContext returns the request ID stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(constants.RequestIDHeader).(string)
	return requestID
}

type requestIDTransport struct {
	next http.RoundTripper
}

// RequestIDTransport wraps next so every outgoing request carries an
// X-REQUEST-ID header. A nil next uses http.DefaultTransport.
func RequestIDTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &requestIDTransport{next: next}
}

// RoundTrip implements http.RoundTripper
func (t *requestIDTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Header.Get(string(constants.RequestIDHeader)) != "" {
		return t.next.RoundTrip(r)
	}

	ctx, requestID := WithRequestID(r.Context())

	// RoundTrip must not modify the caller's request
	out := r.Clone(ctx)
	out.Header.Set(string(constants.RequestIDHeader), requestID)

	slog.DebugContext(ctx, "sending request",
		"method", out.Method,
		"url", out.URL.Redacted(),
	)
	return t.next.RoundTrip(out)
}

// generateRequestID generates a new unique request ID
func generateRequestID() string {
	return uuid.New().String()
}
