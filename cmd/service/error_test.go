// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/constants"
	pkgerrors "github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name         string
		inputError   error
		expectedCode int
	}{
		{name: "no error", inputError: nil, expectedCode: ExitOK},
		{name: "validation error", inputError: pkgerrors.NewValidation("invalid input"), expectedCode: ExitInvalidInput},
		{name: "not found error", inputError: pkgerrors.NewNotFound("no search cursor stored"), expectedCode: ExitNotFound},
		{name: "unauthenticated error", inputError: pkgerrors.NewUnauthenticated("token expired"), expectedCode: ExitUnauthenticated},
		{
			name:         "wrapped service unavailable error",
			inputError:   fmt.Errorf("search: %w", pkgerrors.NewServiceUnavailable("service down", errors.New("connection refused"))),
			expectedCode: ExitUnavailable,
		},
		{name: "unexpected error", inputError: pkgerrors.NewUnexpected("disk full"), expectedCode: ExitFailure},
		{name: "generic error", inputError: errors.New("boom"), expectedCode: ExitFailure},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedCode, ExitCode(tc.inputError))
		})
	}
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer

	code := ReportError(context.Background(), &buf, pkgerrors.NewServiceUnavailable("status 503"))

	assert.Equal(t, ExitUnavailable, code)
	assert.Equal(t, "Error: "+constants.MessageServiceUnavailable+"\n", buf.String())

	buf.Reset()
	assert.Equal(t, ExitOK, ReportError(context.Background(), &buf, nil))
	assert.Empty(t, buf.String())
}
