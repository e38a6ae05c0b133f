// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package errors defines the typed errors shared by every layer of the
// recipe search client.
package errors

import "fmt"

// base is a struct that holds the common fields for error types
type base struct {
	message string
	err     error
}

// error is a method that returns the error message for the base struct
// any changes to the error message here will be reflected in all error types that embed base
func (b base) error() string {
	if b.err == nil {
		return b.message
	}
	return fmt.Sprintf("%s: %v", b.message, b.err)
}

// unwrap exposes the wrapped cause so errors.Is and errors.As keep working
// through the typed errors.
func (b base) unwrap() error {
	return b.err
}

// Message returns the message without the wrapped cause, suitable for
// showing to a user.
func (b base) Message() string {
	return b.message
}
