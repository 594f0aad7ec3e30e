package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/imjang/internal/identity"
)

func newTokenCommand() *cobra.Command {
	var (
		userID string
		email  string
	)

	command := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			issuer, err := identity.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
			if err != nil {
				return fmt.Errorf("identity.NewIssuer() > %w", err)
			}
			token, err := issuer.Sign(userID, email)
			if err != nil {
				return fmt.Errorf("Sign() > %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	command.Flags().StringVar(&userID, "user", "", "User ID to put in the token")
	command.Flags().StringVar(&email, "email", "", "Email to put in the token")
	return command
}
