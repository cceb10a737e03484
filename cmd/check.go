// ABOUTME: Check command for the portfolio CLI
// ABOUTME: Validates minimum content counts for CI/CD pipelines

package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markalston/portfolio-admin/internal/output"
	"github.com/markalston/portfolio-admin/internal/portfolio"
)

var (
	minProjects  int
	minFeatured  int
	minPublished int
	minSkills    int
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check minimum content counts",
	Long: `Check that the site has enough content and exit non-zero if not.
Useful as a deployment gate, e.g. "the home page needs 3 featured projects".

Exit codes:
  0 - All checks passed
  1 - One or more counts are below the minimum
  2 - Invalid input
  3 - Not logged in`,
	Args: cobra.NoArgs,
	Run:  cobraRun(runCheck),
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().IntVar(&minProjects, "min-projects", 1, "Minimum number of projects")
	checkCmd.Flags().IntVar(&minFeatured, "min-featured", 1, "Minimum number of featured projects")
	checkCmd.Flags().IntVar(&minPublished, "min-published", 0, "Minimum number of published posts")
	checkCmd.Flags().IntVar(&minSkills, "min-skills", 0, "Minimum number of skills")
}

// checkResult represents the result of a single minimum check
type checkResult struct {
	name    string
	value   int64
	minimum int64
	passed  bool
}

// runCheck executes the content checks
func runCheck(ctx context.Context, a *app, _ []string) error {
	if err := validateMinimums(minProjects, minFeatured, minPublished, minSkills); err != nil {
		return usageError("%v", err)
	}

	st, err := a.svc.Stats.Summary(ctx)
	if err != nil {
		return err
	}

	results := performChecks(st)
	if IsJSONOutput() {
		if err := a.printer.JSON(checkReport(results)); err != nil {
			return err
		}
	} else {
		a.printer.Print("%s", formatCheckHuman(results))
	}

	if _, failed := countResults(results); failed > 0 {
		return &output.CLIError{
			Summary:  fmt.Sprintf("%d check(s) below minimum", failed),
			ExitCode: output.ExitGeneral,
			Reported: true,
		}
	}
	return nil
}

// validateMinimums ensures the minimums are not negative
func validateMinimums(values ...int) error {
	for _, v := range values {
		if v < 0 {
			return fmt.Errorf("minimums must not be negative, got %d", v)
		}
	}
	return nil
}

// performChecks compares the counters with the configured minimums
func performChecks(st portfolio.Stats) []checkResult {
	check := func(name string, value int64, minimum int) checkResult {
		return checkResult{name: name, value: value, minimum: int64(minimum), passed: value >= int64(minimum)}
	}
	return []checkResult{
		check("Projects", st.Projects, minProjects),
		check("Featured projects", st.FeaturedProjects, minFeatured),
		check("Published posts", st.PublishedBlogs, minPublished),
		check("Skills", st.Skills, minSkills),
	}
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var out string
	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		out += fmt.Sprintf("%s %s: %d (minimum: %d)\n", symbol, r.name, r.value, r.minimum)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		out += fmt.Sprintf("\nFAILED: %d check(s) below minimum", failed)
	} else {
		out += fmt.Sprintf("\nPASSED: All %d check(s) met", passed)
	}
	return out
}

// checkReport is the JSON shape of the check command
type checkReport []checkResult

// MarshalJSON implements json.Marshaler
func (r checkReport) MarshalJSON() ([]byte, error) {
	_, failed := countResults(r)
	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	checks := make([]map[string]interface{}, len(r))
	for i, c := range r {
		checks[i] = map[string]interface{}{
			"name":    c.name,
			"value":   c.value,
			"minimum": c.minimum,
			"passed":  c.passed,
		}
	}
	return json.Marshal(map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
