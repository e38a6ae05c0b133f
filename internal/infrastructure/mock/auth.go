// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"
	"sync"

	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
)

// MockAuthenticator provides a mock implementation of the Authenticator port
type MockAuthenticator struct {
	mu       sync.Mutex
	accounts map[string]string
	token    string
}

// Login returns the configured token when the credentials match an account
func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slog.DebugContext(ctx, "mock login", "email", email)

	expected, ok := m.accounts[email]
	if !ok || expected != password {
		return "", errors.NewValidation(constants.MessageBadCredentials)
	}
	return m.token, nil
}

// AddAccount registers an account accepted by Login
func (m *MockAuthenticator) AddAccount(email, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[email] = password
}

// NewMockAuthenticator creates a mock authenticator issuing token. It
// accepts cook@example.com / recipes.
func NewMockAuthenticator(token string) *MockAuthenticator {
	return &MockAuthenticator{
		accounts: map[string]string{"cook@example.com": "recipes"},
		token:    token,
	}
}
