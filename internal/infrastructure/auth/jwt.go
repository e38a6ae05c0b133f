// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package auth inspects session tokens issued by the recipe service.
//
// The client never holds the signing key, so signatures are not verified
// here; the recipe service remains the authority and rejects bad tokens with
// 401. Claims are only read to drop tokens that are known to be expired and to
// find the caller's subject.
package auth

import (
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the session token claims the client cares about.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt *time.Time
}

// sessionClaims contains extra custom claims we want to parse from the JWT
// token.
type sessionClaims struct {
	jwt.RegisteredClaims
	ID    string `json:"_id,omitempty"`
	Email string `json:"email,omitempty"`
}

// ParseClaims reads the claims of a JWT without verifying its signature.
func ParseClaims(token string) (*Claims, error) {
	token = strings.TrimPrefix(strings.TrimSpace(token), "Bearer ")
	if token == "" {
		return nil, errors.NewValidation("token is empty")
	}

	var claims sessionClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, errors.NewValidation("token is not a JWT", err)
	}

	subject := claims.Subject
	if subject == "" {
		subject = claims.ID
	}

	out := &Claims{
		Subject: subject,
		Email:   claims.Email,
	}
	if claims.ExpiresAt != nil {
		expiresAt := claims.ExpiresAt.Time
		out.ExpiresAt = &expiresAt
	}
	return out, nil
}

// Expired reports whether token is a JWT whose exp lies at or before now.
// Opaque tokens never expire from the client's point of view.
func Expired(token string, now time.Time) bool {
	claims, err := ParseClaims(token)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(*claims.ExpiresAt)
}
