// ABOUTME: Sign-in commands: login, register, logout and whoami
// ABOUTME: Credentials come from a huh form, or from flags plus stdin in scripts

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markalston/portfolio-admin/internal/auth"
	"github.com/markalston/portfolio-admin/internal/client"
	"github.com/markalston/portfolio-admin/internal/models"
	"github.com/markalston/portfolio-admin/internal/output"
	"github.com/markalston/portfolio-admin/internal/tui/forms"
)

var (
	loginUsername      string
	loginPasswordStdin bool

	registerReq           models.RegisterRequest
	registerPasswordStdin bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	Long: `Sign in to the portfolio backend. The session is stored in the config
directory and refreshed automatically until it is revoked.

Without --password-stdin a form asks for the credentials.`,
	Example: `  portfolio login
  echo "$PASSWORD" | portfolio login --username admin --password-stdin`,
	Args: cobra.NoArgs,
	Run:  cobraRun(runLogin),
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	Run:   cobraRun(runRegister),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Args:  cobra.NoArgs,
	Run:   cobraRun(runLogout),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Validate the stored session and show the signed-in user",
	Args:  cobra.NoArgs,
	Run:   cobraRun(runWhoami),
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username or email")
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "Read the password from stdin")

	registerCmd.Flags().StringVar(&registerReq.Username, "username", "", "Username")
	registerCmd.Flags().StringVar(&registerReq.Email, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registerReq.FirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerReq.LastName, "last-name", "", "Last name")
	registerCmd.Flags().BoolVar(&registerPasswordStdin, "password-stdin", false, "Read the password from stdin and skip the form")
}

// runLogin signs in with the collected credentials
func runLogin(ctx context.Context, a *app, _ []string) error {
	creds := forms.Credentials{UsernameOrEmail: loginUsername}
	if loginPasswordStdin {
		pw, err := readSecret(a.in)
		if err != nil {
			return err
		}
		creds.Password = pw
	} else {
		if !a.interactive() {
			return usageError("stdin is not a terminal: use --username with --password-stdin")
		}
		if err := forms.Run(forms.Login(&creds)); err != nil {
			return err
		}
	}

	if errs := auth.ValidateLogin(creds.UsernameOrEmail, creds.Password); len(errs) > 0 {
		a.printer.FieldErrors(errs)
		return usageError("invalid credentials")
	}

	user, err := a.auth.Login(ctx, creds.UsernameOrEmail, creds.Password)
	if err != nil {
		return err
	}
	if IsJSONOutput() {
		return a.printer.JSON(user)
	}
	a.printer.Success("Logged in as %s", user.DisplayName())
	return nil
}

// runRegister creates an account, then signs in with it
func runRegister(ctx context.Context, a *app, _ []string) error {
	req := registerReq
	if registerPasswordStdin {
		pw, err := readSecret(a.in)
		if err != nil {
			return err
		}
		req.Password = pw
	} else {
		if !a.interactive() {
			return usageError("stdin is not a terminal: pass every field as a flag with --password-stdin")
		}
		if err := forms.Run(forms.Register(&req)); err != nil {
			return err
		}
	}

	if errs := auth.ValidateRegister(req); len(errs) > 0 {
		a.printer.FieldErrors(errs)
		return usageError("invalid registration")
	}

	user, err := a.auth.Register(ctx, req)
	if err != nil {
		var verr *auth.ValidationError
		if errors.As(err, &verr) {
			a.printer.FieldErrors(verr.Fields)
			return &output.CLIError{
				Summary:  verr.Error(),
				ExitCode: output.ExitGeneral,
				Err:      err,
				Reported: client.Notified(verr.Err),
			}
		}
		return err
	}
	if IsJSONOutput() {
		return a.printer.JSON(user)
	}
	a.printer.Success("Registered and logged in as %s", user.DisplayName())
	return nil
}

// runLogout is a no-op when nobody is signed in
func runLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.printer.Success("Logged out")
	return nil
}

// runWhoami validates the stored session against the backend
func runWhoami(ctx context.Context, a *app, _ []string) error {
	user, err := a.auth.Restore(ctx)
	if errors.Is(err, client.ErrSessionExpired) {
		// /auth/me never redirects, but a dead session is still expired here
		return &output.CLIError{
			Summary:    client.UserMessage(err),
			Suggestion: "Run 'portfolio login' to sign in",
			ExitCode:   output.ExitSessionExpired,
			Err:        err,
			Reported:   true,
		}
	}
	if err != nil {
		return err
	}
	if IsJSONOutput() {
		return a.printer.JSON(user)
	}
	printUser(a.printer, user)
	return nil
}

func printUser(p *output.Printer, u *models.User) {
	p.KeyValue("ID", fmt.Sprint(u.ID))
	p.KeyValue("Username", u.Username)
	p.KeyValue("Email", u.Email)
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		p.KeyValue("Name", name)
	}
	p.KeyValue("Roles", strings.Join(u.Roles, ", "))
}

// readSecret reads the first line of r without its line ending
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password from stdin: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", usageError("no password on stdin")
	}
	return line, nil
}
