// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
)

// SessionReader exposes the session token owned by the session component
type SessionReader interface {
	// Token returns the current session token, or an errors.Unauthenticated
	// when there is none
	Token(ctx context.Context) (string, error)
}

// StateStore persists client state between invocations: the session token,
// the last search cursor and the shared results
type StateStore interface {
	SessionReader
	ResultStore

	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error

	// LoadCursor returns the sealed cursor of the last loaded page, or an
	// errors.NotFound when no search ran yet
	LoadCursor(ctx context.Context) (string, error)
	SaveCursor(ctx context.Context, cursor string) error

	Results(ctx context.Context) ([]model.Recipe, error)
	SelectedRecipe(ctx context.Context) (string, error)

	IsReady(ctx context.Context) error
	Close() error
}

// Authenticator exchanges user credentials for a session token
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}
