// ABOUTME: Root bubbletea model for the admin dashboard
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/portfolio-admin/internal/auth"
	"github.com/markalston/portfolio-admin/internal/client"
	"github.com/markalston/portfolio-admin/internal/models"
	"github.com/markalston/portfolio-admin/internal/portfolio"
	"github.com/markalston/portfolio-admin/internal/tui/browser"
	"github.com/markalston/portfolio-admin/internal/tui/dashboard"
	"github.com/markalston/portfolio-admin/internal/tui/forms"
	"github.com/markalston/portfolio-admin/internal/tui/icons"
	"github.com/markalston/portfolio-admin/internal/tui/menu"
	"github.com/markalston/portfolio-admin/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenMenu
	ScreenOverview
	ScreenBrowser
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// SessionExpiredNotice is shown on the sign-in screen after a forced logout
const SessionExpiredNotice = "Your session has expired. Please sign in again."

type restoredMsg struct {
	user *models.User
	err  error
}

type loggedInMsg struct {
	username string
	user     *models.User
	err      error
}

type loggedOutMsg struct{}

type userChangedMsg struct {
	user *models.User
}

// Loads carry the generation they were started in; results from an older
// generation belong to a screen the user already left
type statsLoadedMsg struct {
	gen   int
	stats portfolio.Stats
	err   error
}

type rowsLoadedMsg struct {
	gen     int
	section menu.Section
	rows    []table.Row
	err     error
}

// App is the root model for the TUI
type App struct {
	ctx    context.Context
	auth   *auth.Service
	svc    *portfolio.Services
	logger *slog.Logger

	screen     Screen
	width      int
	height     int
	user       *models.User
	section    menu.Section
	gen        int
	restoring  bool
	status     string
	err        error
	lastUpdate time.Time

	// Child models
	login     *forms.LoginScreen
	menu      *menu.Menu
	dashboard *dashboard.Dashboard
	browser   *browser.Browser
}

// New creates the dashboard application
func New(ctx context.Context, authSvc *auth.Service, svc *portfolio.Services, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		ctx:       ctx,
		auth:      authSvc,
		svc:       svc,
		logger:    logger,
		screen:    ScreenLogin,
		restoring: true,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.restore()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dashboard != nil {
			a.dashboard.SetSize(a.innerWidth(), a.contentHeight())
		}
		if a.browser != nil {
			a.browser.SetSize(a.innerWidth(), a.contentHeight())
		}
		if a.login != nil {
			a.login.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenMenu:
			return a.updateMenu(msg)
		case ScreenOverview:
			return a.updateOverview(msg)
		case ScreenBrowser:
			return a.updateBrowser(msg)
		}

	case restoredMsg:
		a.restoring = false
		if msg.err != nil {
			notice := ""
			if !errors.Is(msg.err, auth.ErrNotAuthenticated) {
				notice = SessionExpiredNotice
			}
			a.status = ""
			return a, a.showLogin("", notice)
		}
		return a, a.signedIn(msg.user)

	case forms.SubmittedMsg:
		return a, a.doLogin(msg.Credentials)

	case forms.CancelledMsg:
		return a, tea.Quit

	case loggedInMsg:
		if msg.err != nil {
			// The client already notified; the form shows the reason instead
			a.status = ""
			return a, a.showLogin(msg.username, loginFailure(msg.err))
		}
		return a, a.signedIn(msg.user)

	case loggedOutMsg:
		a.svc.Invalidate()
		return a, a.showLogin("", "")

	case userChangedMsg:
		a.user = msg.user
		if a.dashboard != nil {
			a.dashboard.SetUser(msg.user)
		}
		return a, nil

	case NotifyMsg:
		a.status = msg.Text
		return a, nil

	case NavigateMsg:
		if msg.Intent.Target != client.LoginRoute {
			return a, nil
		}
		a.logger.Info("session expired, returning to sign-in", "from", msg.Intent.From, "reason", msg.Intent.Reason)
		a.gen++
		a.user = nil
		a.status = ""
		return a, a.showLogin("", SessionExpiredNotice)

	case menu.SelectedMsg:
		return a, a.openSection(msg.Section)

	case menu.CancelledMsg:
		return a, tea.Quit

	case menu.LogoutMsg:
		return a, a.doLogout()

	case statsLoadedMsg:
		if msg.gen != a.gen || a.dashboard == nil {
			a.logger.Debug("dropping stale statistics", "gen", msg.gen, "current", a.gen)
			return a, nil
		}
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		st := msg.stats
		a.dashboard.Update(&st)
		a.lastUpdate = time.Now()
		return a, nil

	case rowsLoadedMsg:
		if msg.gen != a.gen || a.browser == nil || msg.section != a.section {
			a.logger.Debug("dropping stale rows", "section", msg.section, "gen", msg.gen, "current", a.gen)
			return a, nil
		}
		if msg.err != nil {
			a.browser.SetError(errors.New(client.UserMessage(msg.err)))
			return a, nil
		}
		a.browser.SetRows(msg.rows)
		a.lastUpdate = time.Now()
		return a, nil

	case spinner.TickMsg:
		if a.browser != nil {
			return a, a.browser.Update(msg)
		}
		return a, nil

	default:
		// huh needs its internal messages while the sign-in form is active
		if a.screen == ScreenLogin && a.login != nil {
			_, cmd := a.login.Update(msg)
			return a, cmd
		}
	}

	return a, nil
}

func (a *App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.login == nil {
		if msg.String() == "q" || msg.String() == "esc" {
			return a, tea.Quit
		}
		return a, nil
	}
	_, cmd := a.login.Update(msg)
	return a, cmd
}

func (a *App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.menu == nil {
		return a, nil
	}
	_, cmd := a.menu.Update(msg)
	return a, cmd
}

func (a *App) updateOverview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		return a, a.refresh()
	case "b", "esc":
		return a, a.back()
	}
	return a, nil
}

func (a *App) updateBrowser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		return a, a.refresh()
	case "b", "esc":
		return a, a.back()
	}
	if a.browser == nil {
		return a, nil
	}
	return a, a.browser.Update(msg)
}

// showLogin switches to a fresh sign-in form
func (a *App) showLogin(username, notice string) tea.Cmd {
	a.screen = ScreenLogin
	a.menu = nil
	a.dashboard = nil
	a.browser = nil
	a.err = nil
	a.login = forms.NewLoginScreen(username, notice)
	return a.login.Init()
}

// signedIn moves to the section menu for u
func (a *App) signedIn(u *models.User) tea.Cmd {
	a.user = u
	a.login = nil
	a.menu = menu.New(isAdmin(u))
	a.screen = ScreenMenu
	return nil
}

func (a *App) back() tea.Cmd {
	a.gen++
	a.dashboard = nil
	a.browser = nil
	a.err = nil
	a.screen = ScreenMenu
	return nil
}

func (a *App) openSection(s menu.Section) tea.Cmd {
	a.section = s
	a.err = nil
	if s == menu.SectionOverview {
		a.browser = nil
		a.dashboard = dashboard.New(nil, a.user, a.innerWidth(), a.contentHeight())
		a.screen = ScreenOverview
		return a.loadStats()
	}
	a.dashboard = nil
	a.browser = browser.New(s.String(), columnsFor(s), a.innerWidth(), a.contentHeight())
	a.screen = ScreenBrowser
	return tea.Batch(a.browser.StartLoading(), a.loadRows(s))
}

// refresh drops cached queries and reloads the current section
func (a *App) refresh() tea.Cmd {
	a.svc.Invalidate()
	a.status = ""
	return a.openSection(a.section)
}

// restore validates a persisted session
func (a *App) restore() tea.Cmd {
	return func() tea.Msg {
		user, err := a.auth.Restore(a.ctx)
		return restoredMsg{user: user, err: err}
	}
}

func (a *App) doLogin(c forms.Credentials) tea.Cmd {
	return func() tea.Msg {
		user, err := a.auth.Login(a.ctx, c.UsernameOrEmail, c.Password)
		return loggedInMsg{username: c.UsernameOrEmail, user: user, err: err}
	}
}

func (a *App) doLogout() tea.Cmd {
	a.gen++
	return func() tea.Msg {
		if err := a.auth.Logout(a.ctx); err != nil {
			a.logger.Error("logout failed", "error", err)
		}
		return loggedOutMsg{}
	}
}

func (a *App) loadStats() tea.Cmd {
	a.gen++
	gen := a.gen
	return func() tea.Msg {
		st, err := a.svc.Stats.Summary(a.ctx)
		return statsLoadedMsg{gen: gen, stats: st, err: err}
	}
}

func (a *App) loadRows(s menu.Section) tea.Cmd {
	a.gen++
	gen := a.gen
	return func() tea.Msg {
		rows, err := loadRows(a.ctx, a.svc, s)
		return rowsLoadedMsg{gen: gen, section: s, rows: rows, err: err}
	}
}

func isAdmin(u *models.User) bool {
	return u.HasRole("ADMIN") || u.HasRole("ROLE_ADMIN")
}

func loginFailure(err error) string {
	var verr *auth.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return client.UserMessage(err)
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		content = a.viewLogin()
	case ScreenMenu:
		content = a.viewMenu()
	case ScreenOverview, ScreenBrowser:
		content = a.viewSection()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewLogin() string {
	if a.restoring {
		return styles.Panel.Render("Checking session...")
	}
	if a.login != nil {
		return a.login.View()
	}
	return ""
}

func (a *App) viewMenu() string {
	if a.menu != nil {
		return a.menu.View()
	}
	return ""
}

// viewSection renders the active section with the actions pane
func (a *App) viewSection() string {
	var main string
	switch {
	case a.err != nil:
		main = styles.StatusCritical.Render("Error: " + client.UserMessage(a.err))
	case a.dashboard != nil:
		main = a.dashboard.View()
	case a.browser != nil:
		main = a.browser.View()
	default:
		main = "Loading..."
	}
	leftPane := styles.ActivePanel.Width(a.mainWidth()).Render(main)

	rightContent := styles.Title.Render("Actions") + "\n\n"
	rightContent += icons.Refresh.String() + " Refresh\n"
	rightContent += icons.Back.String() + " Back to menu\n"
	rightContent += icons.Quit.String() + " Quit\n"
	rightPane := styles.Panel.Width(a.actionsWidth()).Render(rightContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// mainWidth calculates the width for the main pane
func (a *App) mainWidth() int {
	if a.width < minTerminalWidth {
		return max(a.width-panelPadding, 0)
	}
	return (a.width - panelPadding) * 3 / 4
}

// innerWidth is the main pane minus its horizontal padding
func (a *App) innerWidth() int {
	return max(a.mainWidth()-panelPadding, 0)
}

// actionsWidth calculates the width for the actions pane
func (a *App) actionsWidth() int {
	return max(a.width-a.mainWidth()-4, 0)
}

// contentHeight calculates the height available inside the main pane:
// header, footer, the two newlines around content and the panel's
// border and padding take eight lines
func (a *App) contentHeight() int {
	return max(a.height-8, 0)
}

// frameWidth is one less than the terminal so the frame never wraps
func (a *App) frameWidth() int {
	return max(a.width-1, minTerminalWidth)
}

// renderHeader creates the header bar with app branding and the signed-in user
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	left := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("Portfolio Admin"))

	right := ""
	if a.user != nil && a.screen != ScreenLogin {
		right = " " + contextStyle.Render(icons.User.String()+" "+a.user.DisplayName()) + " "
	}

	fill := max(width-4-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return borderStyle.Render("╭─") + left + borderStyle.Render(strings.Repeat("─", fill)) + right + borderStyle.Render("─╮")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"Tab Next", "Enter Submit", "Esc Quit"}
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "L Logout", "q Quit"}
	case ScreenOverview:
		shortcuts = []string{"r Refresh", "b Back", "q Quit"}
	case ScreenBrowser:
		shortcuts = []string{"↑↓ Scroll", "r Refresh", "b Back", "q Quit"}
	}

	var styled []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
	}
	left := " " + strings.Join(styled, "  ") + " "
	leftWidth := lipgloss.Width(left)

	// A pending notification wins over the update time
	rightText := ""
	rightStyle := lipgloss.NewStyle().Foreground(styles.Secondary)
	if a.status != "" {
		rightText = a.status
		rightStyle = lipgloss.NewStyle().Foreground(styles.Danger)
	} else if !a.lastUpdate.IsZero() && (a.screen == ScreenOverview || a.screen == ScreenBrowser) {
		rightText = "Updated " + formatTimeSince(time.Since(a.lastUpdate))
	}
	right := ""
	if avail := width - 4 - leftWidth - 2; rightText != "" && avail > 3 {
		right = " " + rightStyle.Render(clip(rightText, avail)) + " "
	}

	fill := max(width-4-leftWidth-lipgloss.Width(right), 0)
	return borderStyle.Render("╰─") + left + borderStyle.Render(strings.Repeat("─", fill)) + right + borderStyle.Render("─╯")
}

// clip shortens s to at most n cells
func clip(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// formatTimeSince formats an elapsed duration in human-readable form
func formatTimeSince(d time.Duration) string {
	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh ago", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the dashboard. bridge must be the Notifier and Navigator the
// API client was built with.
func Run(ctx context.Context, authSvc *auth.Service, svc *portfolio.Services, bridge *Bridge, logger *slog.Logger) error {
	app := New(ctx, authSvc, svc, logger)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	bridge.Attach(p.Send)
	defer bridge.Attach(nil)

	unsubscribe := authSvc.Subscribe(func(u *models.User) {
		p.Send(userChangedMsg{user: u})
	})
	defer unsubscribe()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
