// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

type requestIDHeaderType string

// RequestIDHeader is the header name for the request ID
const RequestIDHeader requestIDHeaderType = "X-REQUEST-ID"

const (
	// AuthorizationHeader carries the session token on remote calls
	AuthorizationHeader = "Authorization"
	// BearerPrefix precedes the session token in the Authorization header
	BearerPrefix = "Bearer "
)
