// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package auth

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestParseClaims(t *testing.T) {
	expiresAt := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name            string
		token           func(t *testing.T) string
		expectedSubject string
		expectedEmail   string
		expectExpiry    bool
		expectError     bool
	}{
		{
			name: "registered subject and expiry",
			token: func(t *testing.T) string {
				return signedToken(t, sessionClaims{
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   "user-1",
						ExpiresAt: jwt.NewNumericDate(expiresAt),
					},
					Email: "cook@example.com",
				})
			},
			expectedSubject: "user-1",
			expectedEmail:   "cook@example.com",
			expectExpiry:    true,
		},
		{
			name: "document id claim",
			token: func(t *testing.T) string {
				return signedToken(t, jwt.MapClaims{"_id": "5f1c0ffee"})
			},
			expectedSubject: "5f1c0ffee",
		},
		{
			name: "bearer prefix is accepted",
			token: func(t *testing.T) string {
				return "Bearer " + signedToken(t, jwt.MapClaims{"sub": "user-2"})
			},
			expectedSubject: "user-2",
		},
		{
			name:        "opaque token",
			token:       func(t *testing.T) string { return "not-a-jwt" },
			expectError: true,
		},
		{
			name:        "empty token",
			token:       func(t *testing.T) string { return "  " },
			expectError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := ParseClaims(tc.token(t))
			if tc.expectError {
				var validation errors.Validation
				assert.True(t, stderrors.As(err, &validation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedSubject, claims.Subject)
			assert.Equal(t, tc.expectedEmail, claims.Email)
			if tc.expectExpiry {
				require.NotNil(t, claims.ExpiresAt)
				assert.True(t, expiresAt.Equal(*claims.ExpiresAt))
			} else {
				assert.Nil(t, claims.ExpiresAt)
			}
		})
	}
}

func TestExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		token    string
		expected bool
	}{
		{
			name:     "expired",
			token:    signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))}),
			expected: true,
		},
		{
			name:     "expires exactly now",
			token:    signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now)}),
			expected: true,
		},
		{
			name:     "still valid",
			token:    signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}),
			expected: false,
		},
		{
			name:     "no expiry",
			token:    signedToken(t, jwt.RegisteredClaims{Subject: "user"}),
			expected: false,
		},
		{
			name:     "opaque",
			token:    "opaque-session-token",
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Expired(tc.token, now))
		})
	}
}
