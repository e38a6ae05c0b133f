// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package global

import (
	"context"
	"crypto/sha256"
	"log/slog"
	"os"
	"sync"
)

const cursorSecretName = "RECIPE_CURSOR_SECRET"

var (
	cursorSecret       [32]byte
	doOnceCursorSecret sync.Once
)

// CursorSecret retrieves the key used for sealing and opening cursor tokens.
// The RECIPE_CURSOR_SECRET environment variable wins over the configured
// fallback; with neither set the key is derived from the user's home
// directory, which keeps cursors valid across runs on the same machine.
// Secrets of any length are stretched to the key size with SHA-256.
func CursorSecret(ctx context.Context, fallback string) *[32]byte {

	doOnceCursorSecret.Do(func() {

		value := os.Getenv(cursorSecretName)
		if value == "" {
			value = fallback
		}
		if value != "" {
			cursorSecret = sha256.Sum256([]byte(value))
			return
		}

		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		slog.WarnContext(ctx, "cursor secret not configured, deriving one from the home directory",
			"env", cursorSecretName,
		)
		cursorSecret = sha256.Sum256([]byte("recipe-search:" + home))
	})

	return &cursorSecret
}
