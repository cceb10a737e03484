// ABOUTME: Dashboard command launching the interactive terminal UI
// ABOUTME: Logs go to a file so they do not draw over the screen

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/markalston/portfolio-admin/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui"},
	Short:   "Open the interactive dashboard",
	Long: `Open a full-screen dashboard with content statistics and browsable
tables of projects, posts, skills, languages and users.

Logs are written to debug.log in the config directory.`,
	Args: cobra.NoArgs,
	Run:  cobraRunWith(runDashboard, appOptions{dashboard: true}),
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(ctx context.Context, a *app, _ []string) error {
	if !a.interactive() {
		return usageError("the dashboard needs a terminal")
	}
	a.logger.Info("starting dashboard", "api_url", a.cfg.APIURL)
	return tui.Run(ctx, a.auth, a.svc, a.bridge, a.logger)
}
