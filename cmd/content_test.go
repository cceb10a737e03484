// ABOUTME: Tests for the content, user, file and AI commands
// ABOUTME: Executes fresh command trees against a mock backend

package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/markalston/portfolio-admin/internal/client"
	"github.com/markalston/portfolio-admin/internal/models"
	"github.com/markalston/portfolio-admin/internal/output"
	"github.com/markalston/portfolio-admin/internal/portfolio"
	"github.com/markalston/portfolio-admin/internal/session"
	"github.com/markalston/portfolio-admin/internal/tui/filepicker"
)

func projectsHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /projects":
			writeJSON(w, http.StatusOK, []models.Project{
				{ID: 1, Title: "Alpha", IsFeatured: true, IsActive: true},
				{ID: 2, Title: "Beta"},
			})
		case "GET /projects/search":
			if kw := r.URL.Query().Get("keyword"); kw != "go cli" {
				t.Errorf("unexpected keyword %q", kw)
			}
			writeJSON(w, http.StatusOK, models.Page[models.Project]{
				Content:       []models.Project{{ID: 1, Title: "Alpha"}},
				TotalElements: 12,
			})
		case "POST /projects":
			var in map[string]interface{}
			json.NewDecoder(r.Body).Decode(&in)
			writeJSON(w, http.StatusCreated, models.Project{ID: 9, Title: in["title"].(string)})
		case "DELETE /projects/3":
			w.WriteHeader(http.StatusNoContent)
		case "GET /projects/404":
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Project not found"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	}
}

func TestProjectsList_Table(t *testing.T) {
	h := newHarness(t, projectsHandler(t))

	if code := h.exec(newProjectsCmd(), "list"); code != output.ExitSuccess {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, h.errOut.String())
	}
	for _, want := range []string{"TITLE", "Alpha", "Beta", "yes"} {
		if !strings.Contains(h.out.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, h.out.String())
		}
	}
}

func TestProjectsList_JSON(t *testing.T) {
	h := newHarness(t, projectsHandler(t))
	jsonOutput = true

	if code := h.exec(newProjectsCmd(), "list"); code != output.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var got []models.Project
	if err := json.Unmarshal(h.out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, h.out.String())
	}
	if len(got) != 2 || got[0].Title != "Alpha" {
		t.Errorf("unexpected projects %+v", got)
	}
}

func TestProjectsSearch_ShowsTotal(t *testing.T) {
	h := newHarness(t, projectsHandler(t))

	if code := h.exec(newProjectsCmd(), "search", "go", "cli"); code != output.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(h.out.String(), "Showing 1 of 12 projects") {
		t.Errorf("expected a total line, got:\n%s", h.out.String())
	}
}

func TestProjectsGet_NotFound(t *testing.T) {
	h := newHarness(t, projectsHandler(t))

	code := h.exec(newProjectsCmd(), "get", "404")

	if code != output.ExitGeneral {
		t.Errorf("expected exit 1, got %d", code)
	}
	if n := strings.Count(h.errOut.String(), "Project not found"); n != 1 {
		t.Errorf("expected the message once, got %d in %q", n, h.errOut.String())
	}
}

func TestProjectsGet_InvalidID(t *testing.T) {
	h := newHarness(t, projectsHandler(t))

	if code := h.exec(newProjectsCmd(), "get", "abc"); code != output.ExitUsageError {
		t.Errorf("expected exit 2, got %d", code)
	}
	if len(h.requests()) != 0 {
		t.Errorf("expected no requests, got %v", h.requests())
	}
}

func TestProjectsCreate_FromData(t *testing.T) {
	h := newHarness(t, projectsHandler(t))

	code := h.exec(newProjectsCmd(), "create", "--data", `{"title":"Gamma","isFeatured":true}`)

	if code != output.ExitSuccess {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, h.errOut.String())
	}
	if !strings.Contains(h.out.String(), "Created project") || !strings.Contains(h.out.String(), "Gamma") {
		t.Errorf("unexpected output %q", h.out.String())
	}
}

func TestProjectsCreate_RejectsUnknownFields(t *testing.T) {
	h := newHarness(t, projectsHandler(t))

	code := h.exec(newProjectsCmd(), "create", "--data", `{"titel":"typo"}`)

	if code != output.ExitUsageError {
		t.Errorf("expected exit 2, got %d", code)
	}
	if len(h.requests()) != 0 {
		t.Errorf("expected no requests, got %v", h.requests())
	}
}

func TestProjectsCreate_ShowsFieldErrors(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Validation failed",
			"details": []string{"title: Title is required"},
		})
	})

	code := h.exec(newProjectsCmd(), "create", "--data", `{"title":""}`)

	if code != output.ExitGeneral {
		t.Errorf("expected exit 1, got %d", code)
	}
	stderr := h.errOut.String()
	if n := strings.Count(stderr, "Validation failed"); n != 1 {
		t.Errorf("expected the general message once, got %d in %q", n, stderr)
	}
	if !strings.Contains(stderr, "title: Title is required") {
		t.Errorf("expected the field message, got %q", stderr)
	}
}

func TestProjectsCreate_FromFile(t *testing.T) {
	h := newHarness(t, projectsHandler(t))
	path := filepath.Join(t.TempDir(), "project.json")
	if err := os.WriteFile(path, []byte(`{"title":"Delta"}`), 0600); err != nil {
		t.Fatal(err)
	}

	if code := h.exec(newProjectsCmd(), "create", "--file", path); code != output.ExitSuccess {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, h.errOut.String())
	}
	if !strings.Contains(h.out.String(), "Delta") {
		t.Errorf("unexpected output %q", h.out.String())
	}
}

func TestProjectsDelete_RequiresConfirmation(t *testing.T) {
	h := newHarness(t, projectsHandler(t))

	if code := h.exec(newProjectsCmd(), "delete", "3"); code != output.ExitUsageError {
		t.Errorf("expected exit 2 without --yes, got %d", code)
	}
	if len(h.requests()) != 0 {
		t.Errorf("expected no requests, got %v", h.requests())
	}

	if code := h.exec(newProjectsCmd(), "delete", "3", "--yes"); code != output.ExitSuccess {
		t.Errorf("expected exit 0 with --yes, got %d", code)
	}
	if reqs := h.requests(); len(reqs) != 1 || reqs[0] != "DELETE /projects/3" {
		t.Errorf("unexpected requests %v", reqs)
	}
}

func TestSkillsLevel_Validated(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s", r.URL.Path)
	})

	for _, level := range []string{"0", "101", "high"} {
		if code := h.exec(newSkillsCmd(), "level", level); code != output.ExitUsageError {
			t.Errorf("level %s: expected exit 2, got %d", level, code)
		}
	}
	if code := h.exec(newSkillsCmd(), "create", "--data", `{"name":"Go","level":150}`); code != output.ExitUsageError {
		t.Errorf("expected exit 2 for an out-of-range level, got %d", code)
	}
}

func TestLanguagesDefault(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/languages/default" {
			t.Errorf("unexpected request %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, models.Language{ID: 1, Code: "en", Name: "English", IsDefault: true})
	})

	if code := h.exec(newLanguagesCmd(), "default"); code != output.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(h.out.String(), "English") {
		t.Errorf("unexpected output %q", h.out.String())
	}
}

func TestUsersList_SessionExpired(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users":
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		case client.RefreshPath:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Refresh token revoked"})
		}
	})
	h.login(session.Session{AccessToken: "old", RefreshToken: "revoked", User: adminUser()})

	code := h.run(runUsersList, "")

	if code != output.ExitSessionExpired {
		t.Errorf("expected exit 3, got %d", code)
	}
	stderr := h.errOut.String()
	if n := strings.Count(stderr, "[ERROR] Unauthorized"); n != 1 {
		t.Errorf("expected one notification, got %d in %q", n, stderr)
	}
	if !strings.Contains(stderr, "Run 'portfolio login'") {
		t.Errorf("expected a login hint, got %q", stderr)
	}
	if !h.stored().IsZero() {
		t.Error("expected the session to be cleared")
	}
}

func TestUsersSetRoles(t *testing.T) {
	var got models.RolesUpdate
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/users/7/roles" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, []models.Role{{ID: 1, Name: "ROLE_USER"}, {ID: 2, Name: "ROLE_ADMIN"}})
	})
	h.login(session.Session{AccessToken: "access", RefreshToken: "refresh"})

	if code := h.run(runUsersSetRoles, "", "7", "ROLE_USER", "ROLE_ADMIN"); code != output.ExitSuccess {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, h.errOut.String())
	}
	if len(got.Roles) != 2 || got.Roles[1] != "ROLE_ADMIN" {
		t.Errorf("unexpected roles sent %v", got.Roles)
	}
	if !strings.Contains(h.out.String(), "ROLE_ADMIN") {
		t.Errorf("unexpected output %q", h.out.String())
	}
}

func TestUsersUpdate_FromStdin(t *testing.T) {
	var got models.UserUpdate
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, models.User{ID: 7, Username: "ada", Email: "new@example.com"})
	})
	userFile = "-"

	if code := h.run(runUsersUpdate, `{"email":"new@example.com"}`, "7"); code != output.ExitSuccess {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, h.errOut.String())
	}
	if got.Email == nil || *got.Email != "new@example.com" || got.Username != nil {
		t.Errorf("expected a partial update, got %+v", got)
	}
}

func TestFilesUpload(t *testing.T) {
	var gotName, gotBody string
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("no file part: %v", err)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		gotName, gotBody = hdr.Filename, string(b)
		writeJSON(w, http.StatusOK, models.FileUpload{FileName: "logo.png", FileURL: "http://cdn.example.com/logo.png"})
	})
	path := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(path, []byte("fake-image"), 0600); err != nil {
		t.Fatal(err)
	}

	if code := h.run(runUpload, "", path); code != output.ExitSuccess {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, h.errOut.String())
	}
	if gotName != "logo.png" || gotBody != "fake-image" {
		t.Errorf("unexpected upload %q %q", gotName, gotBody)
	}
	if !strings.Contains(h.out.String(), "http://cdn.example.com/logo.png") {
		t.Errorf("expected the URL, got %q", h.out.String())
	}
}

func TestFilesUpload_TooLarge(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s", r.URL.Path)
	})
	path := filepath.Join(t.TempDir(), "huge.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Truncate(portfolio.MaxUploadSize + 1); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if code := h.run(runUpload, "", path); code != output.ExitUsageError {
		t.Errorf("expected exit 2, got %d", code)
	}
	if !strings.Contains(h.errOut.String(), "the limit is 5.0 MiB") {
		t.Errorf("expected the size limit, got %q", h.errOut.String())
	}
}

func TestFilesUpload_RecordsRecent(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.FileUpload{FileName: "a.png", FileURL: "http://cdn.example.com/a.png"})
	})
	path := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(path, []byte("img"), 0600); err != nil {
		t.Fatal(err)
	}

	if code := h.run(runUpload, "", path); code != output.ExitSuccess {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, h.errOut.String())
	}

	recent, err := filepicker.NewRecent(h.dir).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0] != path {
		t.Errorf("expected %s recorded, got %v", path, recent)
	}
}

func TestFilesUpload_PathRequiredWithoutTerminal(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s", r.URL.Path)
	})

	if code := h.run(runUpload, ""); code != output.ExitUsageError {
		t.Errorf("expected exit 2, got %d", code)
	}
	if !strings.Contains(h.errOut.String(), "PATH is required") {
		t.Errorf("unexpected stderr %q", h.errOut.String())
	}
}

func TestFilesURL_PlainOutput(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/logo.png/url" {
			t.Errorf("unexpected request %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("http://cdn.example.com/logo.png"))
	})

	if code := h.run(runFileURL, "", "logo.png"); code != output.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if got := h.out.String(); got != "http://cdn.example.com/logo.png\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestAIGenerate(t *testing.T) {
	var got models.GenerateRequest
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, models.GenerateResponse{Result: "A tidy summary."})
	})

	if code := h.run(runGenerate, "", "Summarize", "my", "projects"); code != output.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if got.Prompt != "Summarize my projects" {
		t.Errorf("unexpected prompt %q", got.Prompt)
	}
	if h.out.String() != "A tidy summary.\n" {
		t.Errorf("unexpected output %q", h.out.String())
	}
}

func TestAIGenerate_EmptyPrompt(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s", r.URL.Path)
	})

	if code := h.run(runGenerate, "", "   "); code != output.ExitUsageError {
		t.Errorf("expected exit 2, got %d", code)
	}
}

func TestUsersUpdate_ShowsFieldErrors(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Validation failed",
			"details": []string{"email: must be a well-formed email address"},
		})
	})
	userFile = "-"

	if code := h.run(runUsersUpdate, `{"email":"nope"}`, "7"); code != output.ExitGeneral {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(h.errOut.String(), "email: must be a well-formed email address") {
		t.Errorf("expected the field message, got %q", h.errOut.String())
	}
}
