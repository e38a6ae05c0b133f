// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	usecase "github.com/linuxfoundation/lfx-v2-recipe-search/internal/service"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/spf13/cobra"
)

func (a *app) loginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the recipe service",
		Long: `Sign in with your email and password. The session token is stored so
later commands run as you. Without --password the password is read from
standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				read, err := readPassword(cmd.InOrStdin())
				fmt.Fprintln(cmd.ErrOrStderr())
				if err != nil {
					return errors.NewValidation("failed to read password", err)
				}
				password = read
			}

			session := usecase.NewSessionService(a.runtime.Authenticator, a.runtime.Store)
			if err := session.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session and last search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := usecase.NewSessionService(a.runtime.Authenticator, a.runtime.Store)
			if err := session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}
