package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quicksplit/quicksplit/internal/auth"
)

// NewRegisterCommand creates the register command.
func NewRegisterCommand(app *App) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Auth.Register(cmd.Context(), username, email, password)
			if err != nil {
				if errors.Is(err, auth.ErrUserExists) || errors.Is(err, auth.ErrWeakPassword) {
					return err
				}
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s. Log in with: quicksplit login -u %s\n",
				user.Username, user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username (required)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// NewLoginCommand creates the login command.
func NewLoginCommand(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Auth.Authenticate(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			if err := app.Sessions.Login(user); err != nil {
				return fmt.Errorf("failed to start session: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s!\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
