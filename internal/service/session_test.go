// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/state"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAuthenticator struct {
	mu     sync.Mutex
	emails []string
}

func (r *recordingAuthenticator) Login(ctx context.Context, email, password string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails = append(r.emails, email)
	return "issued-token", nil
}

func TestSessionServiceLogin(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		password    string
		expectError bool
	}{
		{name: "valid credentials", email: " cook@example.com ", password: "recipes"},
		{name: "wrong password", email: "cook@example.com", password: "nope", expectError: true},
		{name: "missing password", email: "cook@example.com", expectError: true},
		{name: "malformed email", email: "cook", password: "recipes", expectError: true},
		{name: "display name form", email: "Cook <cook@example.com>", password: "recipes", expectError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			store, err := state.NewFileStore(t.TempDir())
			require.NoError(t, err)

			sessions := NewSessionService(mock.NewMockAuthenticator("issued-token"), store)
			err = sessions.Login(ctx, tc.email, tc.password)

			if tc.expectError {
				var validation errors.Validation
				assert.True(t, stderrors.As(err, &validation))
				_, err := store.Token(ctx)
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			token, err := store.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, "issued-token", token)

			require.NoError(t, sessions.Logout(ctx))
			_, err = store.Token(ctx)
			var unauthenticated errors.Unauthenticated
			assert.True(t, stderrors.As(err, &unauthenticated))
		})
	}
}

func TestSessionServiceLoginValidation(t *testing.T) {
	tests := []struct {
		name            string
		email           string
		password        string
		expectedMessage string
	}{
		{name: "missing email", email: "  ", password: "recipes", expectedMessage: "email is required"},
		{name: "missing password", email: "cook@example.com", expectedMessage: "password is required"},
		{name: "no domain", email: "cook@", password: "recipes", expectedMessage: "email must be a valid email address"},
		{name: "display name form", email: "Cook <cook@example.com>", password: "recipes", expectedMessage: "email must be a valid email address"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			store, err := state.NewFileStore(t.TempDir())
			require.NoError(t, err)
			authenticator := &recordingAuthenticator{}

			err = NewSessionService(authenticator, store).Login(ctx, tc.email, tc.password)

			var validation errors.Validation
			require.True(t, stderrors.As(err, &validation))
			assert.Equal(t, tc.expectedMessage, validation.Message())
			assert.Empty(t, authenticator.emails)
		})
	}
}

func TestSessionServiceLoginSendsTrimmedEmail(t *testing.T) {
	ctx := context.Background()
	store, err := state.NewFileStore(t.TempDir())
	require.NoError(t, err)
	authenticator := &recordingAuthenticator{}

	require.NoError(t, NewSessionService(authenticator, store).Login(ctx, " cook@example.com\t", "recipes"))
	assert.Equal(t, []string{"cook@example.com"}, authenticator.emails)
}
