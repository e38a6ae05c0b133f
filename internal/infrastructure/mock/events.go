// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
)

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []model.Event
	err    error
	closed bool
}

// Publish records the event, or fails with the configured error
func (m *MockEventPublisher) Publish(ctx context.Context, event model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

// Close marks the publisher closed
func (m *MockEventPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Events returns the recorded events in order
func (m *MockEventPublisher) Events() []model.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Event, len(m.events))
	copy(out, m.events)
	return out
}

// SetError makes Publish fail with err
func (m *MockEventPublisher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Closed reports whether Close was called
func (m *MockEventPublisher) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// NewMockEventPublisher creates an empty recorder
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// MockViewport counts scroll requests
type MockViewport struct {
	scrolls atomic.Int32
}

// ScrollToTop records a scroll
func (m *MockViewport) ScrollToTop(ctx context.Context) {
	m.scrolls.Add(1)
}

// Scrolls returns how many times ScrollToTop was called
func (m *MockViewport) Scrolls() int {
	return int(m.scrolls.Load())
}
