// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultDirName = ".recipe-search"
	stateFileName  = "state.toml"
)

var _ port.StateStore = (*FileStore)(nil)

// fileState is the layout of the state file
type fileState struct {
	Token          string         `toml:"token,omitempty"`
	Cursor         string         `toml:"cursor,omitempty"`
	SelectedRecipe string         `toml:"selected_recipe,omitempty"`
	Results        []recipeRecord `toml:"results,omitempty"`
}

// FileStore keeps client state in a TOML file readable only by the user.
type FileStore struct {
	mu       sync.Mutex
	filePath string
	now      func() time.Time
}

// Token implements port.SessionReader
func (s *FileStore) Token(ctx context.Context) (string, error) {
	st, err := s.read()
	if err != nil {
		return "", err
	}
	return checkToken(ctx, st.Token, s.now())
}

// SaveToken stores the session token issued on login
func (s *FileStore) SaveToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.NewValidation("token is required")
	}
	return s.update(func(st *fileState) {
		st.Token = token
	})
}

// ClearToken signs the session out and forgets the last search
func (s *FileStore) ClearToken(ctx context.Context) error {
	return s.update(func(st *fileState) {
		*st = fileState{}
	})
}

// LoadCursor returns the sealed cursor of the last loaded page
func (s *FileStore) LoadCursor(ctx context.Context) (string, error) {
	st, err := s.read()
	if err != nil {
		return "", err
	}
	if st.Cursor == "" {
		return "", errors.NewNotFound("no search cursor stored")
	}
	return st.Cursor, nil
}

// SaveCursor stores the sealed cursor of the last loaded page
func (s *FileStore) SaveCursor(ctx context.Context, cursor string) error {
	return s.update(func(st *fileState) {
		st.Cursor = cursor
	})
}

// ReplaceResults implements port.ResultStore
func (s *FileStore) ReplaceResults(ctx context.Context, results []model.Recipe) error {
	return s.update(func(st *fileState) {
		st.Results = toRecords(results)
	})
}

// Results returns the last published results
func (s *FileStore) Results(ctx context.Context) ([]model.Recipe, error) {
	st, err := s.read()
	if err != nil {
		return nil, err
	}
	return fromRecords(st.Results), nil
}

// SetSelectedRecipe implements port.ResultStore
func (s *FileStore) SetSelectedRecipe(ctx context.Context, recipeID string) error {
	return s.update(func(st *fileState) {
		st.SelectedRecipe = recipeID
	})
}

// SelectedRecipe returns the last selected recipe id
func (s *FileStore) SelectedRecipe(ctx context.Context) (string, error) {
	st, err := s.read()
	if err != nil {
		return "", err
	}
	return st.SelectedRecipe, nil
}

// IsReady checks that the state directory is writable
func (s *FileStore) IsReady(ctx context.Context) error {
	probe, err := os.CreateTemp(filepath.Dir(s.filePath), ".ready-*")
	if err != nil {
		return errors.NewServiceUnavailable("state directory is not writable", err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return nil
}

// Close implements port.StateStore
func (s *FileStore) Close() error {
	return nil
}

// Path returns the state file location
func (s *FileStore) Path() string {
	return s.filePath
}

func (s *FileStore) read() (*fileState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) update(fn func(*fileState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		return err
	}
	fn(st)
	return s.save(st)
}

// load reads the state file (caller must hold lock); a missing file is an
// empty state
func (s *FileStore) load() (*fileState, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileState{}, nil
		}
		return nil, errors.NewUnexpected("failed to read state file", err)
	}

	var st fileState
	if err := toml.Unmarshal(data, &st); err != nil {
		return nil, errors.NewUnexpected("state file is corrupt: "+s.filePath, err)
	}
	return &st, nil
}

// save replaces the state file atomically (caller must hold lock)
func (s *FileStore) save(st *fileState) error {
	data, err := toml.Marshal(st)
	if err != nil {
		return errors.NewUnexpected("failed to encode state", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), stateFileName+".*")
	if err != nil {
		return errors.NewUnexpected("failed to write state file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.NewUnexpected("failed to write state file", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return errors.NewUnexpected("failed to write state file", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewUnexpected("failed to write state file", err)
	}
	if err := os.Rename(tmp.Name(), s.filePath); err != nil {
		return errors.NewUnexpected("failed to replace state file", err)
	}
	return nil
}

// DefaultDir returns ~/.recipe-search
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultDirName), nil
}

// NewFileStore creates a file backed store in dir, which defaults to
// ~/.recipe-search.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return &FileStore{
		filePath: filepath.Join(dir, stateFileName),
		now:      time.Now,
	}, nil
}
