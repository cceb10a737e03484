// ABOUTME: huh forms for signing in, registering and confirming deletes
// ABOUTME: Field validators reuse the auth package rules so messages match

package forms

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/portfolio-admin/internal/auth"
	"github.com/markalston/portfolio-admin/internal/models"
	"github.com/markalston/portfolio-admin/internal/tui/styles"
)

// ErrAborted is returned when the user cancels a form
var ErrAborted = errors.New("cancelled")

// Theme returns the huh theme used by every form
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(styles.Muted).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(styles.Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(styles.Primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(styles.Text)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(styles.Muted).
		Background(styles.Surface).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(styles.Muted)

	return t
}

// Credentials are the values collected by the sign-in form
type Credentials struct {
	UsernameOrEmail string
	Password        string
}

// Login builds the sign-in form writing into c
func Login(c *Credentials) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username or email").
				Value(&c.UsernameOrEmail).
				Validate(func(s string) error {
					return fieldError(auth.ValidateLogin(s, "-"), "usernameOrEmail")
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Validate(func(s string) error {
					return fieldError(auth.ValidateLogin("-", s), "password")
				}),
		).Title("Sign in").
			Description("Sign in to manage the portfolio"),
	).WithTheme(Theme())
}

// Register builds the registration form writing into req
func Register(req *models.RegisterRequest) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(&req.Username).
				Validate(registerRule("username", func(r *models.RegisterRequest, s string) { r.Username = s })),
			huh.NewInput().Title("Email").Value(&req.Email).
				Validate(registerRule("email", func(r *models.RegisterRequest, s string) { r.Email = s })),
			huh.NewInput().Title("First name").Value(&req.FirstName).
				Validate(registerRule("firstName", func(r *models.RegisterRequest, s string) { r.FirstName = s })),
			huh.NewInput().Title("Last name").Value(&req.LastName).
				Validate(registerRule("lastName", func(r *models.RegisterRequest, s string) { r.LastName = s })),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&req.Password).
				Description("8+ characters with upper, lower, digit and one of @$!%*?&").
				Validate(registerRule("password", func(r *models.RegisterRequest, s string) { r.Password = s })),
		).Title("Create account"),
	).WithTheme(Theme())
}

// Confirm asks a yes/no question, defaulting to no
func Confirm(title string) (bool, error) {
	var ok bool
	err := Run(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(Theme()))
	return ok, err
}

// Run runs a form in the terminal, mapping a user abort to ErrAborted
func Run(f *huh.Form) error {
	if err := f.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// registerRule validates one registration field in isolation; each rule
// looks only at its own field
func registerRule(field string, set func(*models.RegisterRequest, string)) func(string) error {
	return func(s string) error {
		var req models.RegisterRequest
		set(&req, s)
		return fieldError(auth.ValidateRegister(req), field)
	}
}

func fieldError(errs map[string]string, field string) error {
	if msg, ok := errs[field]; ok {
		return errors.New(msg)
	}
	return nil
}
