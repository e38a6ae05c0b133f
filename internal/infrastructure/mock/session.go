// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"sync"

	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
)

// MockSessionReader provides a mock implementation of the session component
type MockSessionReader struct {
	mu    sync.Mutex
	token string
	err   error
}

// Token returns the configured token, or Unauthenticated when it is empty
func (m *MockSessionReader) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return "", m.err
	}
	if m.token == "" {
		return "", errors.NewUnauthenticated("mock session has no token")
	}
	return m.token, nil
}

// SetToken replaces the session token; empty signs the session out
func (m *MockSessionReader) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

// SetError makes Token fail with err
func (m *MockSessionReader) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// NewMockSessionReader creates a mock session holding token
func NewMockSessionReader(token string) *MockSessionReader {
	return &MockSessionReader{token: token}
}
