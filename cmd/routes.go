package cmd

import (
	"organizer/cli/internal/router"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the platform pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderRoutes(cmd, router.Routes())
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

func renderRoutes(cmd *cobra.Command, routes []router.Route) error {
	data := pterm.TableData{{"Name", "Path", "Access"}}
	for _, r := range routes {
		access := "public"
		if r.RequiresAuth {
			access = "approved account"
		}
		data = append(data, []string{r.Name, r.Path, access})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render()
}
