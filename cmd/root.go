// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Organizer platform.
// It signs the user in with their platform session, reports who they are and
// opens platform pages, refusing protected ones until the account is approved.
package cmd

import (
	"fmt"
	"os"

	"organizer/cli/internal/config"
	apperrors "organizer/cli/internal/errors"
	"organizer/cli/internal/keychain"
	"organizer/cli/internal/logging"
	"organizer/cli/internal/navigate"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
	baseURLFlag string
	verbose     bool
	noBrowser   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "organizer",
	Short: "Organizer platform client",
	Long: `organizer signs in to the Organizer platform with your Google account,
shows the account behind the current session and opens platform pages.
Protected pages such as the dashboard open only for approved accounts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "organizer %s\nplatform %s\n", Version, cfg.BaseURL)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, logging.PresentError("organizer", err))
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
}

// errorHint suggests a next step for known error kinds.
func errorHint(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.ConfigInvalid:
		return "Check 'organizer config' and the " + config.EnvBaseURL + " variable."
	case apperrors.NotFound:
		return "Run 'organizer routes' to list the pages."
	case apperrors.SessionExpired:
		return "Run 'organizer login' to sign in again."
	default:
		return ""
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and platform address")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Platform base URL (overrides config and ORGANIZER_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noBrowser, "no-browser", false, "Print links instead of opening the browser")
}

// loadConfig reads configuration and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if noBrowser {
		open := false
		cfg.OpenBrowser = &open
	}
	return cfg, cfg.Validate()
}

// loadApp builds the application for a command.
func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.LogLevel, cmd.ErrOrStderr())

	km, err := keychain.GetManager()
	if err != nil {
		return nil, fmt.Errorf("open keychain: %w", err)
	}
	nav, err := navigate.NewBrowser(cfg.BaseURL, cmd.OutOrStdout(), cfg.ShouldOpenBrowser())
	if err != nil {
		return nil, err
	}
	return newApp(cfg, logger, km, nav)
}
