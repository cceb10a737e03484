// ABOUTME: Session command for the portfolio CLI
// ABOUTME: Shows the stored session without contacting the backend

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/markalston/portfolio-admin/internal/output"
	"github.com/markalston/portfolio-admin/internal/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the stored session",
	Long: `Display where the session is stored, who it belongs to and when the
access token expires. Nothing is sent to the backend; use whoami to
validate the session.

Exit codes:
  0 - A session is stored
  3 - Not logged in`,
	Args: cobra.NoArgs,
	Run:  cobraRun(runSession),
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

// sessionStatus is the JSON shape of the session command
type sessionStatus struct {
	LoggedIn        bool       `json:"loggedIn"`
	Store           string     `json:"store"`
	Username        string     `json:"username,omitempty"`
	Roles           []string   `json:"roles,omitempty"`
	TokenExpiresAt  *time.Time `json:"tokenExpiresAt,omitempty"`
	TokenExpired    bool       `json:"tokenExpired"`
	HasRefreshToken bool       `json:"hasRefreshToken"`
}

// runSession reports the stored session
func runSession(_ context.Context, a *app, _ []string) error {
	s, err := a.store.Load()
	if err != nil {
		return err
	}
	st := describeSession(s, storeLocation(a.store), time.Now())

	if IsJSONOutput() {
		if err := a.printer.JSON(st); err != nil {
			return err
		}
	} else {
		a.printer.Print("%s", formatSessionHuman(st))
	}

	if !st.LoggedIn {
		return &output.CLIError{Summary: "Not logged in", ExitCode: output.ExitSessionExpired, Reported: true}
	}
	return nil
}

func storeLocation(s session.Store) string {
	if f, ok := s.(*session.FileStore); ok {
		return f.Path()
	}
	return "memory"
}

func describeSession(s session.Session, store string, now time.Time) sessionStatus {
	st := sessionStatus{
		LoggedIn:        s.AccessToken != "",
		Store:           store,
		HasRefreshToken: s.RefreshToken != "",
	}
	if s.User != nil {
		st.Username = s.User.Username
		st.Roles = s.User.Roles
	}
	if exp, err := session.TokenExpiry(s.AccessToken); err == nil {
		st.TokenExpiresAt = &exp
		st.TokenExpired = !exp.After(now)
	}
	return st
}

// formatSessionHuman formats the session for human readability
func formatSessionHuman(st sessionStatus) string {
	if !st.LoggedIn {
		return fmt.Sprintf("Not logged in.\nStore:        %s\nRun 'portfolio login' to sign in.", st.Store)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Store:        %s\n", st.Store)
	user := st.Username
	if user == "" {
		user = "(unknown)"
	}
	fmt.Fprintf(&b, "User:         %s\n", user)
	if len(st.Roles) > 0 {
		fmt.Fprintf(&b, "Roles:        %s\n", strings.Join(st.Roles, ", "))
	}
	switch {
	case st.TokenExpiresAt == nil:
		b.WriteString("Token:        no readable expiry\n")
	case st.TokenExpired:
		fmt.Fprintf(&b, "Token:        expired %s (refreshed on next request)\n", st.TokenExpiresAt.Local().Format(time.RFC1123))
	default:
		fmt.Fprintf(&b, "Token:        expires %s\n", st.TokenExpiresAt.Local().Format(time.RFC1123))
	}
	refresh := "no"
	if st.HasRefreshToken {
		refresh = "yes"
	}
	fmt.Fprintf(&b, "Refreshable:  %s", refresh)
	return b.String()
}
