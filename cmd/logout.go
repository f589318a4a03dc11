// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"organizer/cli/internal/httperrors"

	"github.com/spf13/cobra"
)

// logoutCmd ends the platform session and removes it from this machine.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the platform session and forget it locally",
	Long: `The logout command asks the platform to end the current session, opens the
platform home page and removes the session cookie and cached account from the
OS keychain. Local credentials are removed even when the platform cannot be
reached.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}

		if a.hasSession() {
			if err := a.service.Logout(cmd.Context()); err != nil {
				_ = httperrors.FormatNetworkError(err, httperrors.Host(a.client.BaseURL()), "ending the session")
			}
		}

		if err := a.storage.ClearSession(); err != nil {
			return fmt.Errorf("clear stored session: %w", err)
		}

		fmt.Fprintln(out, "✅ Session removed from this machine")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
