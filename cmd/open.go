// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"

	apperrors "organizer/cli/internal/errors"
	"organizer/cli/internal/router"

	"github.com/spf13/cobra"
)

// openCmd opens a platform page. Protected pages are checked against the
// backend first and lead to the login page for sessions that are missing,
// expired or not yet approved.
var openCmd = &cobra.Command{
	Use:   "open PATH",
	Short: "Open a platform page, signing in first if it is protected",
	Long: `The open command opens a page of the platform in the browser. Pages such as
/dashboard and /messages require an approved account; without one you are sent
to /login instead. Run 'organizer routes' to list the pages.`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}

		res, err := a.router.Navigate(cmd.Context(), args[0])
		if errors.Is(err, router.ErrNotFound) {
			return apperrors.Wrap(apperrors.NotFound, "no such page", err)
		}
		if err != nil {
			return err
		}
		a.keepRotatedCookie()

		if res.Redirected {
			fmt.Fprintf(out, "🔒 %s needs an approved account; opened %s instead.\n", res.Requested, res.Final.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
