// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// credentials is the sign in form
type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var credentialsValidator = newCredentialsValidator()

func newCredentialsValidator() *validator.Validate {
	validate := validator.New()

	// report fields by their JSON names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// validate checks the form and turns the first failing rule into a
// Validation error
func (c credentials) validate() error {
	err := credentialsValidator.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return errors.NewValidation("invalid credentials", err)
	}

	field := fieldErrors[0]
	switch field.Tag() {
	case "required":
		return errors.NewValidation(fmt.Sprintf("%s is required", field.Field()))
	case "email":
		return errors.NewValidation(fmt.Sprintf("%s must be a valid email address", field.Field()))
	default:
		return errors.NewValidation(fmt.Sprintf("%s is invalid", field.Field()))
	}
}

// SessionService signs users in and out of the recipe service
type SessionService struct {
	authenticator port.Authenticator
	store         port.StateStore
}

// Login validates the credentials, exchanges them for a token and stores it
func (s *SessionService) Login(ctx context.Context, email, password string) error {
	form := credentials{
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := form.validate(); err != nil {
		return err
	}

	token, err := s.authenticator.Login(ctx, form.Email, form.Password)
	if err != nil {
		slog.WarnContext(ctx, "login failed", "error", err)
		return err
	}

	if err := s.store.SaveToken(ctx, token); err != nil {
		slog.ErrorContext(ctx, "failed to store session token", "error", err)
		return err
	}

	slog.InfoContext(ctx, "signed in")
	return nil
}

// Logout forgets the session token and the last search
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.ClearToken(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to clear session", "error", err)
		return err
	}
	slog.InfoContext(ctx, "signed out")
	return nil
}

// NewSessionService creates a SessionService
func NewSessionService(authenticator port.Authenticator, store port.StateStore) *SessionService {
	return &SessionService{
		authenticator: authenticator,
		store:         store,
	}
}
