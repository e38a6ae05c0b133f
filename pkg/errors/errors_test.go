// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"validation without cause", NewValidation("recipe id is required"), "recipe id is required"},
		{"validation with cause", NewValidation("invalid cursor", cause), "invalid cursor: dial tcp: connection refused"},
		{"not found", NewNotFound("no cursor saved"), "no cursor saved"},
		{"unauthenticated", NewUnauthenticated("session token missing"), "session token missing"},
		{"service unavailable", NewServiceUnavailable("recipe service unavailable", cause), "recipe service unavailable: dial tcp: connection refused"},
		{"unexpected", NewUnexpected("failed to marshal cursor"), "failed to marshal cursor"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestErrorsUnwrapCause(t *testing.T) {
	sentinel := errors.New("boom")

	wrapped := fmt.Errorf("fetch page: %w", NewServiceUnavailable("recipe service unavailable", sentinel))

	var su ServiceUnavailable
	assert.True(t, errors.As(wrapped, &su))
	assert.True(t, errors.Is(wrapped, sentinel))

	var unauth Unauthenticated
	assert.False(t, errors.As(wrapped, &unauth))
}

func TestErrorsMessageOmitsCause(t *testing.T) {
	err := NewValidation("Please verify that the email and password are correct", errors.New("unexpected status 404"))

	assert.Equal(t, "Please verify that the email and password are correct", err.Message())
	assert.Contains(t, err.Error(), "404")
}
