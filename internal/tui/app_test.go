// ABOUTME: Integration tests for the dashboard app
// ABOUTME: Tests component wiring, state transitions and stale-load handling

package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/portfolio-admin/internal/auth"
	"github.com/markalston/portfolio-admin/internal/cache"
	"github.com/markalston/portfolio-admin/internal/client"
	"github.com/markalston/portfolio-admin/internal/models"
	"github.com/markalston/portfolio-admin/internal/portfolio"
	"github.com/markalston/portfolio-admin/internal/session"
	"github.com/markalston/portfolio-admin/internal/tui/menu"
)

var admin = &models.User{ID: 1, Username: "alice", FirstName: "Alice", LastName: "Liddell", Roles: models.Roles{"ADMIN"}}

func newTestApp(t *testing.T, handler http.Handler) (*App, *session.MemoryStore) {
	t.Helper()
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	c := client.New(srv.URL, store)
	qc := cache.New(time.Minute)
	t.Cleanup(qc.Close)

	app := New(context.Background(), auth.New(c, store), portfolio.New(c, qc), nil)
	app.width = 120
	app.height = 40
	return app, store
}

func update(app *App, msg tea.Msg) (*App, tea.Cmd) {
	model, cmd := app.Update(msg)
	return model.(*App), cmd
}

func signIn(app *App) *App {
	app, _ = update(app, restoredMsg{user: admin})
	return app
}

func TestAppInitialState(t *testing.T) {
	app, _ := newTestApp(t, nil)

	if app.screen != ScreenLogin {
		t.Errorf("expected initial screen to be ScreenLogin, got %d", app.screen)
	}
	if !strings.Contains(app.View(), "Checking session") {
		t.Error("expected session check message before restore completes")
	}
}

func TestAppRestoreWithoutSession(t *testing.T) {
	app, _ := newTestApp(t, nil)

	msg := app.Init()()
	app, _ = update(app, msg)

	if app.screen != ScreenLogin || app.login == nil {
		t.Fatalf("expected sign-in form, got screen %d", app.screen)
	}
	if app.login.Notice() != "" {
		t.Errorf("expected no notice for a first sign-in, got %q", app.login.Notice())
	}
}

func TestAppRestoreSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(admin)
	})
	app, store := newTestApp(t, mux)
	store.Save(session.Session{AccessToken: "t1", RefreshToken: "r1"})

	app, _ = update(app, app.Init()())

	if app.screen != ScreenMenu {
		t.Fatalf("expected menu after restore, got %d", app.screen)
	}
	if app.user == nil || app.user.Username != "alice" {
		t.Errorf("expected restored user, got %+v", app.user)
	}
	if !strings.Contains(app.View(), "Alice Liddell") {
		t.Error("expected user in header")
	}
}

func TestAppLoginFailureKeepsUsername(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app, _ = update(app, restoredMsg{err: auth.ErrNotAuthenticated})
	app, _ = update(app, NotifyMsg{Text: "Invalid credentials"})

	app, _ = update(app, loggedInMsg{username: "alice", err: &client.APIError{StatusCode: 401, Message: "Invalid credentials"}})

	if app.screen != ScreenLogin {
		t.Fatalf("expected to stay on sign-in, got %d", app.screen)
	}
	if app.login.Notice() != "Invalid credentials" {
		t.Errorf("unexpected notice %q", app.login.Notice())
	}
	if app.status != "" {
		t.Errorf("expected footer status cleared, got %q", app.status)
	}
}

func TestAppLoginSuccessShowsMenu(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app, _ = update(app, loggedInMsg{username: "alice", user: admin})

	if app.screen != ScreenMenu || app.menu == nil {
		t.Fatalf("expected menu, got %d", app.screen)
	}
}

func TestAppNavigateToLogin(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app = signIn(app)
	app, _ = update(app, menu.SelectedMsg{Section: menu.SectionProjects})
	gen := app.gen

	app, _ = update(app, NavigateMsg{Intent: client.Intent{Target: client.LoginRoute, From: "/users"}})

	if app.screen != ScreenLogin {
		t.Fatalf("expected sign-in after session expiry, got %d", app.screen)
	}
	if app.login.Notice() != SessionExpiredNotice {
		t.Errorf("unexpected notice %q", app.login.Notice())
	}
	if app.user != nil {
		t.Error("expected user cleared")
	}

	// A load that finishes afterwards must not resurrect the browser
	app, _ = update(app, rowsLoadedMsg{gen: gen, section: menu.SectionProjects, rows: []table.Row{{"1"}}})
	if app.screen != ScreenLogin || app.browser != nil {
		t.Error("expected stale rows to be dropped")
	}
}

func TestAppIgnoresOtherNavigation(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app = signIn(app)

	app, _ = update(app, NavigateMsg{Intent: client.Intent{Target: "/elsewhere"}})
	if app.screen != ScreenMenu {
		t.Errorf("expected to stay on menu, got %d", app.screen)
	}
}

func TestAppDropsStaleRows(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app = signIn(app)
	app, _ = update(app, menu.SelectedMsg{Section: menu.SectionProjects})

	if app.screen != ScreenBrowser || !app.browser.Loading() {
		t.Fatalf("expected loading browser, got screen %d", app.screen)
	}

	app, _ = update(app, rowsLoadedMsg{gen: app.gen - 1, section: menu.SectionProjects, rows: []table.Row{{"9", "old", "no", "no", "-"}}})
	if !app.browser.Loading() {
		t.Error("expected stale rows to be ignored")
	}

	rows := []table.Row{{"1", "Site", "yes", "yes", "-"}, {"2", "CLI", "no", "yes", "-"}}
	app, _ = update(app, rowsLoadedMsg{gen: app.gen, section: menu.SectionProjects, rows: rows})
	if app.browser.Len() != 2 {
		t.Errorf("expected 2 rows, got %d", app.browser.Len())
	}
	if app.lastUpdate.IsZero() {
		t.Error("expected last update time to be set")
	}
}

func TestAppRowsError(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app = signIn(app)
	app, _ = update(app, menu.SelectedMsg{Section: menu.SectionBlogs})

	app, _ = update(app, rowsLoadedMsg{gen: app.gen, section: menu.SectionBlogs, err: &client.APIError{StatusCode: 500, Message: "request failed with status code 500"}})
	if !strings.Contains(app.View(), "status code 500") {
		t.Error("expected error in view")
	}
}

func TestAppStatsLoaded(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app = signIn(app)
	app, _ = update(app, menu.SelectedMsg{Section: menu.SectionOverview})

	if app.screen != ScreenOverview {
		t.Fatalf("expected overview, got %d", app.screen)
	}
	app, _ = update(app, statsLoadedMsg{gen: app.gen, stats: portfolio.Stats{Projects: 4, FeaturedProjects: 1, BlogViews: 99}})

	view := app.View()
	for _, want := range []string{"Overview", "1/4", "99"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestAppBackToMenu(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app = signIn(app)
	app, _ = update(app, menu.SelectedMsg{Section: menu.SectionSkills})
	gen := app.gen

	app, _ = update(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if app.screen != ScreenMenu {
		t.Fatalf("expected menu after back, got %d", app.screen)
	}

	app, _ = update(app, rowsLoadedMsg{gen: gen, section: menu.SectionSkills, rows: []table.Row{{"1"}}})
	if app.browser != nil {
		t.Error("expected late rows to be dropped after leaving the section")
	}
}

func TestAppLoadsRowsFromBackend(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/languages", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Language{{ID: 1, Name: "English", Code: "en", IsDefault: true}})
	})
	app, _ := newTestApp(t, mux)
	app = signIn(app)

	cmd := app.loadRows(menu.SectionLanguages)
	msg, ok := cmd().(rowsLoadedMsg)
	if !ok {
		t.Fatalf("expected rowsLoadedMsg")
	}
	if msg.err != nil {
		t.Fatalf("unexpected error: %v", msg.err)
	}
	if len(msg.rows) != 1 || msg.rows[0][1] != "en" || msg.rows[0][4] != "yes" {
		t.Errorf("unexpected rows %v", msg.rows)
	}
}

func TestAppNotifyShowsInFooter(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app = signIn(app)

	app, _ = update(app, NotifyMsg{Text: "request failed with status code 503"})
	if !strings.Contains(app.renderFooter(), "status code 503") {
		t.Errorf("expected notification in footer: %q", app.renderFooter())
	}
}

func TestAppLogout(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app = signIn(app)

	app, cmd := update(app, menu.LogoutMsg{})
	if cmd == nil {
		t.Fatal("expected logout command")
	}
	app, _ = update(app, cmd())
	if app.screen != ScreenLogin {
		t.Errorf("expected sign-in after logout, got %d", app.screen)
	}
}

func TestFormatTimeSince(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{2 * time.Second, "just now"},
		{30 * time.Second, "30s ago"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
	}
	for _, tt := range tests {
		if got := formatTimeSince(tt.d); got != tt.want {
			t.Errorf("formatTimeSince(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestBridge(t *testing.T) {
	b := NewBridge()
	b.Error("dropped %d", 1) // not attached yet

	var got []tea.Msg
	b.Attach(func(m tea.Msg) { got = append(got, m) })
	b.Error("failed: %s", "boom")
	b.Navigate(client.Intent{Target: client.LoginRoute})

	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if n, ok := got[0].(NotifyMsg); !ok || n.Text != "failed: boom" {
		t.Errorf("unexpected first message %#v", got[0])
	}
	if n, ok := got[1].(NavigateMsg); !ok || n.Intent.Target != client.LoginRoute {
		t.Errorf("unexpected second message %#v", got[1])
	}
}
