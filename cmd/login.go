// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"organizer/cli/internal/backend"
	"organizer/cli/internal/terminal"

	"github.com/spf13/cobra"
)

const sessionPrompt = "Paste the " + backend.SessionCookieName + " cookie from your browser: "

var sessionFlag string

// loginCmd signs in through the platform's Google OAuth2 flow. The browser
// ends up holding the platform session; the user hands its cookie to the CLI,
// which checks it against the backend before keeping it.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Sign in with Google and link this session",
	Long: `The login command opens the platform's Google sign-in page. After signing in,
copy the session cookie (JSESSIONID) from the browser and paste it when asked,
or pass it with --session. The cookie is verified with the platform and kept
in the OS keychain.

If the stored session is still valid, nothing is done.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()
		out := cmd.OutOrStdout()

		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		// this command opens the sign-in page itself
		a.redirectOnExpiry = false

		if sessionFlag == "" && a.hasSession() {
			if snap := a.refresh(ctx, out); snap.IsAuthenticated {
				fmt.Fprintf(out, "Already logged in as %s\n", snap.Account())
				return nil
			}
		}

		cookie := sessionFlag
		if cookie == "" {
			fmt.Fprintln(out, "Sign in with Google in your browser:")
			if err := a.service.LoginWithGoogle(ctx); err != nil {
				a.logger.Warn("cannot open browser", a.logger.Args("error", err.Error()))
			}
			fmt.Fprintln(out)
			cookie, err = terminal.ReadSecret(out, sessionPrompt)
			if err != nil {
				if errors.Is(err, terminal.ErrEmptyInput) {
					return fmt.Errorf("login cancelled: %w", err)
				}
				return err
			}
			if terminal.IsInteractive() {
				terminal.ClearPreviousLines(out, len(sessionPrompt))
			}
		}

		snap, err := a.verifySession(ctx, out, cookie)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "✅ Logged in as %s\n", snap.Account())
		if !snap.User.Authorized {
			fmt.Fprintln(out, "⏳ Your account is waiting for approval; protected pages stay locked until an admin approves it.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&sessionFlag, "session", "", "Session cookie value (skips the browser and prompt)")
}
