// ABOUTME: Root command for the portfolio CLI
// ABOUTME: Handles global flags and maps command failures onto exit codes

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/markalston/portfolio-admin/internal/auth"
	"github.com/markalston/portfolio-admin/internal/client"
	"github.com/markalston/portfolio-admin/internal/output"
	"github.com/markalston/portfolio-admin/internal/tui/forms"
)

var (
	apiURL     string
	cfgFile    string
	jsonOutput bool
	timeout    time.Duration
	verbose    bool
	quiet      bool
	colorMode  string
	ephemeral  bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Administer a portfolio site from the terminal",
	Long: `portfolio is a command-line client for the portfolio backend.

It signs in, keeps the session fresh, and manages projects, blog posts,
skills, languages, users and uploaded images.

Exit codes:
  0 - Success
  1 - The backend or the network failed
  2 - Invalid input or configuration
  3 - Not signed in, or the session expired

Environment Variables:
  PORTFOLIO_API_URL      Backend API URL (default: http://localhost:8080/api)
  PORTFOLIO_TIMEOUT      Per-request timeout (default: 30s)
  PORTFOLIO_CONFIG_DIR   Session and config directory
  PORTFOLIO_LOG_LEVEL    debug, info, warn or error`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&apiURL, "api-url", "", "Backend API URL (overrides PORTFOLIO_API_URL)")
	flags.StringVar(&cfgFile, "config", "", "Config file (default: <config dir>/config.yaml)")
	flags.BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	flags.DurationVar(&timeout, "timeout", 0, "Per-request timeout (overrides PORTFOLIO_TIMEOUT)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log requests and session changes to stderr")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Only print errors and results")
	flags.StringVar(&colorMode, "color", "", "Colorize output: auto, always or never")
	flags.BoolVar(&ephemeral, "ephemeral", false, "Keep the session in memory only")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// flagOverrides returns a viper instance carrying the global flags that were set
func flagOverrides() *viper.Viper {
	v := viper.New()
	if apiURL != "" {
		v.Set("api_url", apiURL)
	}
	if timeout > 0 {
		v.Set("timeout", timeout)
	}
	if verbose {
		v.Set("log.level", "debug")
	}
	if colorMode != "" {
		v.Set("output.color", colorMode)
	}
	if ephemeral {
		v.Set("ephemeral", true)
	}
	return v
}

// exit is swapped out by tests
var exit = os.Exit

// runFunc is the body of a command, run against a wired app
type runFunc func(ctx context.Context, a *app, args []string) error

// cobraRun adapts fn to a cobra Run function
func cobraRun(fn runFunc) func(*cobra.Command, []string) {
	return cobraRunWith(fn, appOptions{})
}

func cobraRunWith(fn runFunc, opts appOptions) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		opts.out, opts.errOut, opts.in = cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin()
		exitCode := runCommand(ctx, opts, fn, args)
		if exitCode != 0 {
			cancel()
			exit(exitCode)
		}
	}
}

// runCommand wires an app, runs fn and returns the exit code
func runCommand(ctx context.Context, opts appOptions, fn runFunc, args []string) int {
	a, err := newApp(opts)
	if err != nil {
		p := output.NewPrinter(output.PrinterOptions{ColorMode: output.ColorNever, Out: opts.out, Err: opts.errOut})
		p.FormatError(err)
		return output.ExitCode(err)
	}
	defer a.Close()

	if err := fn(ctx, a, args); err != nil {
		showFieldErrors(a.printer, err)
		err = classify(err)
		a.printer.FormatError(err)
		return output.ExitCode(err)
	}
	return output.ExitSuccess
}

// classify maps a failure onto a CLI error. Messages the API client has
// already shown are marked reported so they print once. A 401 on a public
// path, such as a rejected login, is an ordinary failure.
func classify(err error) error {
	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	var expired *client.SessionExpiredError
	switch {
	case errors.As(err, &expired) && expired.Redirected, errors.Is(err, auth.ErrNotAuthenticated):
		return &output.CLIError{
			Summary:    client.UserMessage(err),
			Suggestion: "Run 'portfolio login' to sign in",
			ExitCode:   output.ExitSessionExpired,
			Err:        err,
			Reported:   client.Notified(err),
		}
	case errors.Is(err, forms.ErrAborted):
		return &output.CLIError{Summary: "Cancelled", ExitCode: output.ExitGeneral, Err: err}
	case client.Notified(err):
		return &output.CLIError{Summary: client.UserMessage(err), ExitCode: output.ExitGeneral, Err: err, Reported: true}
	}
	return &output.CLIError{Summary: err.Error(), ExitCode: output.ExitGeneral, Err: err}
}

// showFieldErrors prints the per-field messages of a backend validation
// failure under the general message the client already showed. A CLIError
// means the command rendered its own field errors.
func showFieldErrors(p *output.Printer, err error) {
	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		return
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.IsValidation() {
		p.FieldErrors(apiErr.FieldErrors())
	}
}

// usageError reports invalid input with exit code 2
func usageError(format string, args ...interface{}) error {
	return &output.CLIError{Summary: fmt.Sprintf(format, args...), ExitCode: output.ExitUsageError}
}

// parseID parses a positive numeric identifier argument
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError("invalid ID %q: must be a positive number", s)
	}
	return id, nil
}

// streams bundles the terminal a command talks to
type streams struct {
	out    io.Writer
	errOut io.Writer
	in     io.Reader
}
