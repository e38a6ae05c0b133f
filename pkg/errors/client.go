// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// Validation represents a validation error in the application.
type Validation struct {
	base
}

// Error returns the error message for Validation.
func (v Validation) Error() string {
	return v.error()
}

// Unwrap returns the wrapped cause.
func (v Validation) Unwrap() error {
	return v.unwrap()
}

// NewValidation creates a new Validation error with the provided message.
func NewValidation(message string, err ...error) Validation {
	return Validation{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NotFound represents a lookup that found nothing.
type NotFound struct {
	base
}

// Error returns the error message for NotFound.
func (n NotFound) Error() string {
	return n.error()
}

// Unwrap returns the wrapped cause.
func (n NotFound) Unwrap() error {
	return n.unwrap()
}

// NewNotFound creates a new NotFound error with the provided message.
func NewNotFound(message string, err ...error) NotFound {
	return NotFound{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Unauthenticated is returned when no usable session token is available.
type Unauthenticated struct {
	base
}

// Error returns the error message for Unauthenticated.
func (u Unauthenticated) Error() string {
	return u.error()
}

// Unwrap returns the wrapped cause.
func (u Unauthenticated) Unwrap() error {
	return u.unwrap()
}

// NewUnauthenticated creates a new Unauthenticated error with the provided message.
func NewUnauthenticated(message string, err ...error) Unauthenticated {
	return Unauthenticated{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
