// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/constants"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDTransport(t *testing.T) {
	tests := []struct {
		name              string
		existingRequestID string
		contextRequestID  string
		expectGenerated   bool
	}{
		{
			name:            "generates new request ID when none provided",
			expectGenerated: true,
		},
		{
			name:              "keeps request ID already set on the request",
			existingRequestID: "existing-id-123",
		},
		{
			name:             "uses request ID from the context",
			contextRequestID: "550e8400-e29b-41d4-a716-446655440000",
		},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var received string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				received = r.Header.Get(string(constants.RequestIDHeader))
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			ctx := context.Background()
			if tc.contextRequestID != "" {
				ctx = context.WithValue(ctx, constants.RequestIDHeader, tc.contextRequestID)
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
			require.NoError(t, err)
			if tc.existingRequestID != "" {
				req.Header.Set(string(constants.RequestIDHeader), tc.existingRequestID)
			}

			client := &http.Client{Transport: RequestIDTransport(nil)}
			resp, err := client.Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			switch {
			case tc.expectGenerated:
				_, err := uuid.Parse(received)
				assertion.NoError(err, "generated request ID should be a valid UUID")
				assertion.Empty(req.Header.Get(string(constants.RequestIDHeader)), "caller request must not be modified")
			case tc.existingRequestID != "":
				assertion.Equal(tc.existingRequestID, received)
			default:
				assertion.Equal(tc.contextRequestID, received)
			}
		})
	}
}

func TestWithRequestID(t *testing.T) {
	ctx, first := WithRequestID(context.Background())
	require.NotEmpty(t, first)
	assert.Equal(t, first, RequestIDFromContext(ctx))

	// an existing id is reused
	_, second := WithRequestID(ctx)
	assert.Equal(t, first, second)

	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestGenerateRequestIDUnique(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateRequestID()
		assert.False(t, ids[id], "request ID should be unique")
		ids[id] = true
	}
}
