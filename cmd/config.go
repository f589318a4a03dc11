package cmd

import (
	"fmt"
	"strconv"

	"organizer/cli/internal/config"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data := pterm.TableData{
			{"base_url", cfg.BaseURL},
			{"log_level", cfg.LogLevel},
			{"timeout_seconds", strconv.Itoa(int(cfg.Timeout().Seconds()))},
			{"open_browser", strconv.FormatBool(cfg.ShouldOpenBrowser())},
		}
		return pterm.DefaultTable.WithData(data).WithWriter(cmd.OutOrStdout()).Render()
	},
}

var configSetCmd = &cobra.Command{
	Use:       "set KEY VALUE",
	Short:     "Change a setting in the config file",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.Set(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s set to %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
