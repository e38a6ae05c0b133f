// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package paging

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"golang.org/x/crypto/nacl/secretbox"
)

// nonceSize is the secretbox nonce length prefixed to every token.
const nonceSize = 24

// DecodeToken takes a base64-encoded, secretbox-encrypted token and unmarshals
// the sealed JSON document into out.
// Returns a Validation error if decoding, decryption, or unmarshaling fails.
func DecodeToken(ctx context.Context, encoded string, secretKey *[32]byte, out any) error {

	slog.DebugContext(ctx, "decoding page token",
		"encoded_token", encoded,
	)

	encrypted, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return errors.NewValidation("invalid encoded page token", err)
	}

	if len(encrypted) < nonceSize+secretbox.Overhead {
		return errors.NewValidation(
			"invalid page token length",
			fmt.Errorf("expected at least %d bytes, got %d", nonceSize+secretbox.Overhead, len(encrypted)),
		)
	}

	var decryptNonce [nonceSize]byte
	copy(decryptNonce[:], encrypted[:nonceSize])
	decrypted, ok := secretbox.Open(nil, encrypted[nonceSize:], &decryptNonce, secretKey)
	if !ok {
		return errors.NewValidation("failed to decrypt page token")
	}

	if err := json.Unmarshal(decrypted, out); err != nil {
		return errors.NewValidation("failed to unmarshal page token", err)
	}

	slog.DebugContext(ctx, "decoded page token successfully")

	return nil
}

// EncodeToken takes a JSON-serializable value, encrypts it with secretbox,
// and returns a URL safe base64 token.
func EncodeToken(value any, secretKey *[32]byte) (string, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", errors.NewUnexpected("failed to marshal page token", err)
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", errors.NewUnexpected("failed to generate nonce for page token", err)
	}

	encrypted := secretbox.Seal(nonce[:], encoded, &nonce, secretKey)

	return base64.RawURLEncoding.EncodeToString(encrypted), nil
}
