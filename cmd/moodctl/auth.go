package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) signupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := a.valueOrPrompt(cmd, "name", "Name")
			if err != nil {
				return err
			}
			email, err := a.valueOrPrompt(cmd, "email", "Email")
			if err != nil {
				return err
			}
			pw, err := a.promptPassword(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			tok, err := a.client.Signup(cmd.Context(), name, email, pw)
			if err != nil {
				return err
			}
			return a.saveToken(cmd, tok)
		},
	}
	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("email", "", "account email")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := a.valueOrPrompt(cmd, "email", "Email")
			if err != nil {
				return err
			}
			pw, err := a.promptPassword(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			tok, err := a.client.Login(cmd.Context(), email, pw)
			if err != nil {
				return err
			}
			return a.saveToken(cmd, tok)
		},
	}
	cmd.Flags().String("email", "", "account email")
	return cmd
}

func (a *app) googleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "google",
		Short: "Log in with a Google ID token",
		Long: `Exchange a Google ID token (the "credential" returned by Google Identity
Services) for a mood-journal session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cred, _ := cmd.Flags().GetString("credential")
			tok, err := a.client.GoogleLogin(cmd.Context(), cred)
			if err != nil {
				return err
			}
			return a.saveToken(cmd, tok)
		},
	}
	cmd.Flags().String("credential", "", "Google ID token")
	_ = cmd.MarkFlagRequired("credential")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.tokens.Remove(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
