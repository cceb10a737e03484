// ABOUTME: Sign-in form as a bubbletea model for the dashboard
// ABOUTME: Emits SubmittedMsg on completion and CancelledMsg on Esc

package forms

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/markalston/portfolio-admin/internal/tui/icons"
	"github.com/markalston/portfolio-admin/internal/tui/styles"
)

// SubmittedMsg is sent when the sign-in form completes
type SubmittedMsg struct {
	Credentials Credentials
}

// CancelledMsg is sent when the user leaves the sign-in form
type CancelledMsg struct{}

// LoginScreen wraps the sign-in form
type LoginScreen struct {
	creds  *Credentials
	form   *huh.Form
	notice string
	width  int
}

// NewLoginScreen creates the screen. username pre-fills the first field and
// notice is shown above the form, e.g. why the user was sent here.
func NewLoginScreen(username, notice string) *LoginScreen {
	creds := &Credentials{UsernameOrEmail: username}
	return &LoginScreen{
		creds:  creds,
		form:   Login(creds),
		notice: notice,
	}
}

// Init implements tea.Model
func (l *LoginScreen) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *LoginScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return l, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		creds := *l.creds
		return l, func() tea.Msg { return SubmittedMsg{Credentials: creds} }
	}
	return l, cmd
}

// Notice returns the message shown above the form
func (l *LoginScreen) Notice() string {
	return l.notice
}

// View implements tea.Model
func (l *LoginScreen) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Login.String() + " Portfolio admin"))
	sb.WriteString("\n")
	if l.notice != "" {
		sb.WriteString(styles.StatusWarning.Render(l.notice))
		sb.WriteString("\n\n")
	}
	sb.WriteString(l.form.View())
	return sb.String()
}
