// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"

	usecase "github.com/linuxfoundation/lfx-v2-recipe-search/internal/service"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
)

// Process exit codes
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitInvalidInput    = 2
	ExitUnauthenticated = 3
	ExitUnavailable     = 4
	ExitNotFound        = 5
)

// ExitCode maps an error to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		validation      errors.Validation
		notFound        errors.NotFound
		unauthenticated errors.Unauthenticated
		unavailable     errors.ServiceUnavailable
	)
	switch {
	case stderrors.As(err, &validation):
		return ExitInvalidInput
	case stderrors.As(err, &notFound):
		return ExitNotFound
	case stderrors.As(err, &unauthenticated):
		return ExitUnauthenticated
	case stderrors.As(err, &unavailable):
		return ExitUnavailable
	default:
		return ExitFailure
	}
}

// ReportError logs err, writes its user-facing message to w and returns the
// exit code
func ReportError(ctx context.Context, w io.Writer, err error) int {
	if err == nil {
		return ExitOK
	}

	slog.ErrorContext(ctx, "command failed",
		"error", err,
	)
	fmt.Fprintln(w, "Error:", usecase.UserMessage(err))
	return ExitCode(err)
}
