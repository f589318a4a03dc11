// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"

	"organizer/cli/internal/auth"
	"organizer/cli/internal/backend"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// whoamiCmd shows the account behind the stored session.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"me"},
	Short:   "Show the account behind the current session",
	Long: `The whoami command asks the platform who the stored session belongs to and
prints the account, its role and whether it has been approved. When the
platform cannot confirm the session, the last known account is shown.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		if !a.hasSession() {
			notLoggedIn(out)
			return nil
		}

		snap := a.refresh(cmd.Context(), out)
		if snap.IsAuthenticated {
			return printAccount(out, *snap.User)
		}

		st, err := a.storage.Load()
		if err == nil && st.LoggedIn {
			fmt.Fprintf(out, "⚠️  Could not confirm the session. Last known account: %s\n", st.Account)
			return nil
		}
		notLoggedIn(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func printAccount(out io.Writer, u backend.AppUserDetails) error {
	approval := "approved"
	if !u.Authorized {
		approval = "waiting for approval"
	}
	role := string(u.Role)
	if u.Role.IsAdmin() {
		role += " (can approve accounts)"
	}
	data := pterm.TableData{
		{"Account", accountName(u)},
		{"Role", role},
		{"Status", approval},
	}
	return pterm.DefaultTable.WithData(data).WithWriter(out).Render()
}

func accountName(u backend.AppUserDetails) string {
	return auth.Snapshot{User: &u, IsAuthenticated: true}.Account()
}
