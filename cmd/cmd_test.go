// ABOUTME: Test harness for the portfolio commands
// ABOUTME: Runs commands against an httptest backend with a temporary config dir

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"

	"github.com/markalston/portfolio-admin/internal/models"
	"github.com/markalston/portfolio-admin/internal/session"
)

type harness struct {
	t      *testing.T
	dir    string
	out    bytes.Buffer
	errOut bytes.Buffer

	mu    sync.Mutex
	calls []string
}

// newHarness points the CLI at a test server running handler
func newHarness(t *testing.T, handler http.HandlerFunc) *harness {
	t.Helper()
	h := &harness{t: t, dir: t.TempDir()}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		h.calls = append(h.calls, r.Method+" "+r.URL.Path)
		h.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("PORTFOLIO_CONFIG_DIR", h.dir)
	t.Setenv("NO_COLOR", "1")
	resetFlags()
	apiURL = srv.URL
	t.Cleanup(resetFlags)
	return h
}

func resetFlags() {
	apiURL, cfgFile, colorMode = "", "", ""
	jsonOutput, verbose, quiet, ephemeral = false, false, false, false
	timeout = 0

	loginUsername, loginPasswordStdin = "", false
	registerReq, registerPasswordStdin = models.RegisterRequest{}, false

	userData, userFile, userYes = "", "", false
	uploadName, fileYes = "", false
	promptFile = ""
	minProjects, minFeatured, minPublished, minSkills = 1, 1, 0, 0
}

// run calls fn the way its cobra command would
func (h *harness) run(fn runFunc, stdin string, args ...string) int {
	opts := appOptions{streams: streams{out: &h.out, errOut: &h.errOut, in: strings.NewReader(stdin)}}
	return runCommand(context.Background(), opts, fn, args)
}

// exec runs a freshly built command tree and returns its exit code
func (h *harness) exec(cmd *cobra.Command, args ...string) int {
	h.t.Helper()
	code := 0
	exit = func(c int) { code = c }
	defer func() { exit = os.Exit }()

	cmd.SetArgs(args)
	cmd.SetOut(&h.out)
	cmd.SetErr(&h.errOut)
	cmd.SetIn(strings.NewReader(""))
	if err := cmd.Execute(); err != nil {
		h.t.Fatalf("command failed to run: %v", err)
	}
	return code
}

// login seeds a stored session
func (h *harness) login(s session.Session) {
	h.t.Helper()
	if err := session.NewFileStore(h.dir).Save(s); err != nil {
		h.t.Fatalf("seeding session: %v", err)
	}
}

func (h *harness) stored() session.Session {
	h.t.Helper()
	s, err := session.NewFileStore(h.dir).Load()
	if err != nil {
		h.t.Fatalf("loading session: %v", err)
	}
	return s
}

func (h *harness) requests() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func adminUser() *models.User {
	return &models.User{ID: 1, Username: "admin", Email: "admin@example.com", FirstName: "Ada", LastName: "Admin", Roles: models.Roles{"ROLE_ADMIN"}}
}
