// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	stderrors "errors"

	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
)

// UserMessage maps an error to the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		unauthenticated errors.Unauthenticated
		unavailable     errors.ServiceUnavailable
		validation      errors.Validation
		notFound        errors.NotFound
	)
	switch {
	case stderrors.As(err, &unauthenticated):
		return constants.MessageSignInRequired
	case stderrors.As(err, &unavailable):
		return constants.MessageServiceUnavailable
	case stderrors.As(err, &validation):
		return validation.Message()
	case stderrors.As(err, &notFound):
		return notFound.Message()
	default:
		return "Something went wrong: " + err.Error()
	}
}
