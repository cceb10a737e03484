// ABOUTME: File picker TUI component for choosing an image to upload
// ABOUTME: Shows recent uploads, images in the working directory and a path input

package filepicker

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/markalston/portfolio-admin/internal/portfolio"
	"github.com/markalston/portfolio-admin/internal/tui/forms"
	"github.com/markalston/portfolio-admin/internal/tui/styles"
)

type state int

const (
	stateList state = iota
	stateInput
	stateFolder
)

// FileSelectedMsg is sent when an uploadable file is chosen
type FileSelectedMsg struct {
	Path string
	Size int64
}

// CancelledMsg is sent when the user cancels
type CancelledMsg struct{}

// FilePicker is the image selection component
type FilePicker struct {
	recent    []string
	images    []Image
	cursor    int
	state     state
	textInput textinput.Model
	err       string
	width     int
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(styles.Primary)
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Accent)
	normalStyle   = lipgloss.NewStyle().Foreground(styles.Text)
	errorStyle    = lipgloss.NewStyle().Foreground(styles.Danger)
	mutedStyle    = lipgloss.NewStyle().Foreground(styles.Muted)
)

// New creates a picker offering the recent uploads and the discovered images
func New(recent []string, images []Image) *FilePicker {
	ti := textinput.New()
	ti.Placeholder = "~/Pictures/screenshot.png"
	ti.CharLimit = 512
	ti.Width = 60

	return &FilePicker{
		recent:    recent,
		images:    images,
		textInput: ti,
	}
}

// Init implements tea.Model
func (fp *FilePicker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (fp *FilePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		fp.width = msg.Width
		return fp, nil

	case tea.KeyMsg:
		fp.err = ""
		switch fp.state {
		case stateList:
			return fp.updateList(msg)
		case stateInput:
			return fp.updateInput(msg)
		case stateFolder:
			return fp.updateFolder(msg)
		}
	}
	return fp, nil
}

func (fp *FilePicker) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if fp.cursor > 0 {
			fp.cursor--
		}
	case "down", "j":
		if fp.cursor < fp.listItemCount()-1 {
			fp.cursor++
		}
	case "enter":
		return fp.selectListItem()
	case "esc", "q":
		return fp, func() tea.Msg { return CancelledMsg{} }
	}
	return fp, nil
}

func (fp *FilePicker) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fp.state = stateList
		fp.textInput.SetValue("")
		return fp, nil
	case "enter":
		path := strings.TrimSpace(fp.textInput.Value())
		if path == "" {
			fp.err = "Please enter a file path"
			return fp, nil
		}
		return fp.choose(path)
	}

	var cmd tea.Cmd
	fp.textInput, cmd = fp.textInput.Update(msg)
	return fp, cmd
}

func (fp *FilePicker) updateFolder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	back := len(fp.images)
	switch msg.String() {
	case "up", "k":
		if fp.cursor > 0 {
			fp.cursor--
		}
	case "down", "j":
		if fp.cursor < back {
			fp.cursor++
		}
	case "enter":
		if fp.cursor == back {
			fp.state = stateList
			fp.cursor = 0
			return fp, nil
		}
		return fp.choose(fp.images[fp.cursor].Path)
	case "esc", "b":
		fp.state = stateList
		fp.cursor = 0
	}
	return fp, nil
}

// listItemCount is recent uploads, "Enter path..." and, when images were
// found, "Browse this folder..."
func (fp *FilePicker) listItemCount() int {
	n := len(fp.recent) + 1
	if len(fp.images) > 0 {
		n++
	}
	return n
}

func (fp *FilePicker) selectListItem() (tea.Model, tea.Cmd) {
	n := len(fp.recent)
	switch {
	case fp.cursor < n:
		return fp.choose(fp.recent[fp.cursor])
	case fp.cursor == n:
		fp.state = stateInput
		fp.textInput.Focus()
		return fp, textinput.Blink
	case len(fp.images) > 0 && fp.cursor == n+1:
		fp.state = stateFolder
		fp.cursor = 0
	}
	return fp, nil
}

// choose checks that path is an uploadable image before selecting it
func (fp *FilePicker) choose(path string) (tea.Model, tea.Cmd) {
	expanded := expandPath(path)

	st, err := os.Stat(expanded)
	switch {
	case os.IsNotExist(err):
		fp.err = "File not found: " + path
		return fp, nil
	case os.IsPermission(err):
		fp.err = "Cannot read file: permission denied"
		return fp, nil
	case err != nil:
		fp.err = "Error reading file: " + err.Error()
		return fp, nil
	case st.IsDir():
		fp.err = path + " is a directory"
		return fp, nil
	case !IsImage(expanded):
		fp.err = "Not an image: " + filepath.Base(path)
		return fp, nil
	case st.Size() > portfolio.MaxUploadSize:
		fp.err = "Too large: " + humanize.IBytes(uint64(st.Size())) + " (limit " + humanize.IBytes(portfolio.MaxUploadSize) + ")"
		return fp, nil
	}

	size := st.Size()
	return fp, func() tea.Msg {
		return FileSelectedMsg{Path: expanded, Size: size}
	}
}

// expandPath expands a leading ~ to the home directory
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}
	return path
}

// Error returns the message currently shown, if any
func (fp *FilePicker) Error() string {
	return fp.err
}

// View implements tea.Model
func (fp *FilePicker) View() string {
	var b strings.Builder
	switch fp.state {
	case stateInput:
		b.WriteString(titleStyle.Render("Enter image path"))
		b.WriteString("\n\n")
		b.WriteString(fp.textInput.View())
		b.WriteString("\n")
	case stateFolder:
		b.WriteString(titleStyle.Render("Images in this folder"))
		b.WriteString("\n\n")
		for i, img := range fp.images {
			fp.item(&b, i, img.Name+mutedStyle.Render("  "+humanize.IBytes(uint64(img.Size))))
		}
		fp.item(&b, len(fp.images), "[back]")
	default:
		fp.viewList(&b)
	}

	if fp.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + fp.err))
		b.WriteString("\n")
	}
	return b.String()
}

func (fp *FilePicker) viewList(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Select an image to upload"))
	b.WriteString("\n\n")

	if len(fp.recent) > 0 {
		b.WriteString(mutedStyle.Render("Recent uploads:"))
		b.WriteString("\n")
		for i, path := range fp.recent {
			fp.item(b, i, fp.shorten(path))
		}
		b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(40, fp.width-4), 10))))
		b.WriteString("\n")
	}

	idx := len(fp.recent)
	fp.item(b, idx, "Enter path...")
	if len(fp.images) > 0 {
		fp.item(b, idx+1, "Browse this folder...")
	}
}

func (fp *FilePicker) item(b *strings.Builder, idx int, label string) {
	if idx == fp.cursor {
		b.WriteString("> " + selectedStyle.Render(label) + "\n")
		return
	}
	b.WriteString("  " + normalStyle.Render(label) + "\n")
}

// shorten keeps the tail of long paths
func (fp *FilePicker) shorten(path string) string {
	limit := fp.width - 10
	if fp.width <= 20 || len(path) <= limit {
		return path
	}
	return "..." + path[len(path)-(limit-3):]
}

// runner hosts the picker as a standalone program
type runner struct {
	fp        *FilePicker
	path      string
	cancelled bool
}

func (r *runner) Init() tea.Cmd {
	return r.fp.Init()
}

func (r *runner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FileSelectedMsg:
		r.path = msg.Path
		return r, tea.Quit
	case CancelledMsg:
		r.cancelled = true
		return r, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			r.cancelled = true
			return r, tea.Quit
		}
	}
	_, cmd := r.fp.Update(msg)
	return r, cmd
}

func (r *runner) View() string {
	if r.path != "" || r.cancelled {
		return ""
	}
	return r.fp.View() + "\n" + mutedStyle.Render("↑/↓ move • enter select • esc back") + "\n"
}

// Pick runs fp inline in the terminal and returns the chosen path.
// Cancelling returns forms.ErrAborted.
func Pick(ctx context.Context, fp *FilePicker) (string, error) {
	r := &runner{fp: fp}
	if _, err := tea.NewProgram(r, tea.WithContext(ctx)).Run(); err != nil {
		return "", err
	}
	if r.cancelled {
		return "", forms.ErrAborted
	}
	return r.path, nil
}
