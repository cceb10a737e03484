// ABOUTME: Stats command for the portfolio CLI
// ABOUTME: Shows the admin counters for projects, posts, skills and languages

package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/markalston/portfolio-admin/internal/portfolio"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show content statistics",
	Long:  `Display the number of projects, featured projects, published posts, blog views, skills and languages.`,
	Args:  cobra.NoArgs,
	Run:   cobraRun(runStats),
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// runStats fetches and prints the counters
func runStats(ctx context.Context, a *app, _ []string) error {
	st, err := a.svc.Stats.Summary(ctx)
	if err != nil {
		return err
	}
	if IsJSONOutput() {
		return a.printer.JSON(st)
	}
	a.printer.Print("%s", formatStatsHuman(st))
	return nil
}

// formatStatsHuman formats the counters for human readability
func formatStatsHuman(st portfolio.Stats) string {
	return fmt.Sprintf(`Projects:         %s (%s featured)
Published posts:  %s
Blog views:       %s
Skills:           %s
Languages:        %s`,
		humanize.Comma(st.Projects), humanize.Comma(st.FeaturedProjects),
		humanize.Comma(st.PublishedBlogs),
		humanize.Comma(st.BlogViews),
		humanize.Comma(st.Skills),
		humanize.Comma(st.Languages),
	)
}
