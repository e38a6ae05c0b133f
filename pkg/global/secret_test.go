// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package global

import (
	"context"
	"crypto/sha256"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetCursorSecret() {
	doOnceCursorSecret = sync.Once{}
	cursorSecret = [32]byte{}
}

func TestCursorSecret(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		fallback string
		validate func(*testing.T, *[32]byte)
	}{
		{
			name: "environment value is hashed",
			env:  "this-is-a-test-secret-32-bytes!!",
			validate: func(t *testing.T, secret *[32]byte) {
				expected := sha256.Sum256([]byte("this-is-a-test-secret-32-bytes!!"))
				assert.Equal(t, expected[:], secret[:])
			},
		},
		{
			name:     "environment wins over fallback",
			env:      "from-env",
			fallback: "from-config",
			validate: func(t *testing.T, secret *[32]byte) {
				expected := sha256.Sum256([]byte("from-env"))
				assert.Equal(t, expected[:], secret[:])
			},
		},
		{
			name:     "short fallback fills the whole key",
			fallback: "short",
			validate: func(t *testing.T, secret *[32]byte) {
				expected := sha256.Sum256([]byte("short"))
				assert.Equal(t, expected[:], secret[:])
				assert.NotEqual(t, make([]byte, 27), secret[5:])
			},
		},
		{
			name:     "long secrets differing past 32 bytes give different keys",
			fallback: "0123456789abcdef0123456789abcdef-first",
			validate: func(t *testing.T, secret *[32]byte) {
				other := sha256.Sum256([]byte("0123456789abcdef0123456789abcdef-second"))
				assert.NotEqual(t, other[:], secret[:])
				expected := sha256.Sum256([]byte("0123456789abcdef0123456789abcdef-first"))
				assert.Equal(t, expected[:], secret[:])
			},
		},
		{
			name: "derived from home directory when nothing is configured",
			validate: func(t *testing.T, secret *[32]byte) {
				home, err := os.UserHomeDir()
				if err != nil {
					home = os.TempDir()
				}
				expected := sha256.Sum256([]byte("recipe-search:" + home))
				assert.Equal(t, expected[:], secret[:])
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resetCursorSecret()
			t.Cleanup(resetCursorSecret)
			t.Setenv(cursorSecretName, tc.env)

			secret := CursorSecret(context.Background(), tc.fallback)
			tc.validate(t, secret)
		})
	}
}

func TestCursorSecretIsResolvedOnce(t *testing.T) {
	resetCursorSecret()
	t.Cleanup(resetCursorSecret)
	t.Setenv(cursorSecretName, "first")

	first := CursorSecret(context.Background(), "")
	t.Setenv(cursorSecretName, "second")
	second := CursorSecret(context.Background(), "")

	assert.Same(t, first, second)
	expected := sha256.Sum256([]byte("first"))
	assert.Equal(t, expected[:], second[:])
}
