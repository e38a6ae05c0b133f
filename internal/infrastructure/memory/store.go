// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package memory holds in-process shared state for front ends that keep the
// whole search session in one process.
package memory

import (
	"context"
	"sync"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
)

// Store is the shared search state: a single writer (the coordinator)
// replaces it, any number of views read it.
type Store struct {
	mu          sync.RWMutex
	results     []model.Recipe
	selected    string
	version     uint64
	subscribers map[int]chan struct{}
	nextID      int
}

// ReplaceResults swaps the result collection for a copy of results.
func (s *Store) ReplaceResults(ctx context.Context, results []model.Recipe) error {
	replacement := make([]model.Recipe, len(results))
	copy(replacement, results)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = replacement
	s.version++
	s.notifyLocked()
	return nil
}

// Results returns a copy of the current result collection.
func (s *Store) Results() []model.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Recipe, len(s.results))
	copy(out, s.results)
	return out
}

// Version increases on every ReplaceResults.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// SetSelectedRecipe records the selected recipe, last write wins.
func (s *Store) SetSelectedRecipe(ctx context.Context, recipeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = recipeID
	s.notifyLocked()
	return nil
}

// SelectedRecipe returns the last selected recipe id.
func (s *Store) SelectedRecipe() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Subscribe returns a channel signalled after every change. Signals
// coalesce: a slow reader sees one pending signal, then reads the latest
// state. cancel releases the subscription.
func (s *Store) Subscribe() (changes <-chan struct{}, cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan struct{}, 1)
	s.subscribers[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		results:     []model.Recipe{},
		subscribers: make(map[int]chan struct{}),
	}
}
