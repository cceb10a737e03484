// ABOUTME: Scrollable table for one content section
// ABOUTME: Shows a spinner while loading and the failure text when a load fails

package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/portfolio-admin/internal/tui/styles"
)

// chrome is the number of lines used by the title, count and help
const chrome = 4

// Browser lists the rows of one section
type Browser struct {
	title   string
	table   table.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

// New creates a browser with the given columns
func New(title string, columns []table.Column, width, height int) *Browser {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)
	t.SetStyles(styles.Table())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.KeyStyle

	b := &Browser{title: title, table: t, spinner: s}
	b.SetSize(width, height)
	return b
}

// SetSize updates the browser dimensions
func (b *Browser) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.table.SetWidth(max(width, 0))
	b.table.SetHeight(max(height-chrome, 1))
}

// StartLoading shows the spinner and returns the command that animates it
func (b *Browser) StartLoading() tea.Cmd {
	b.loading = true
	b.err = nil
	return b.spinner.Tick
}

// SetRows replaces the rows and stops loading
func (b *Browser) SetRows(rows []table.Row) {
	b.loading = false
	b.err = nil
	b.table.SetRows(rows)
	b.table.GotoTop()
}

// SetError stops loading and shows err instead of the table
func (b *Browser) SetError(err error) {
	b.loading = false
	b.err = err
}

// Loading reports whether a load is in flight
func (b *Browser) Loading() bool {
	return b.loading
}

// Len returns the number of rows
func (b *Browser) Len() int {
	return len(b.table.Rows())
}

// Selected returns the highlighted row, or nil
func (b *Browser) Selected() table.Row {
	return b.table.SelectedRow()
}

// Update handles navigation keys and spinner ticks
func (b *Browser) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !b.loading {
			return nil
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		var cmd tea.Cmd
		b.table, cmd = b.table.Update(msg)
		return cmd
	}
	return nil
}

// View renders the browser
func (b *Browser) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(b.title))
	sb.WriteString("\n")

	switch {
	case b.loading:
		sb.WriteString(b.spinner.View() + " Loading " + strings.ToLower(b.title) + "...")
	case b.err != nil:
		sb.WriteString(styles.StatusCritical.Render("Error: " + b.err.Error()))
	case b.Len() == 0:
		sb.WriteString(styles.Subtitle.Render("Nothing here yet."))
	default:
		sb.WriteString(b.table.View())
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render(fmt.Sprintf("%d item(s)", b.Len())))
	}
	return sb.String()
}
