// ABOUTME: Section menu shown after sign-in
// ABOUTME: Lets the user pick the overview or one of the content sections

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/portfolio-admin/internal/tui/icons"
	"github.com/markalston/portfolio-admin/internal/tui/styles"
)

// Section is a dashboard area
type Section int

const (
	SectionOverview Section = iota
	SectionProjects
	SectionBlogs
	SectionSkills
	SectionLanguages
	SectionUsers
)

// SelectedMsg is sent when a section is chosen
type SelectedMsg struct {
	Section Section
}

// CancelledMsg is sent when the user leaves the menu
type CancelledMsg struct{}

// LogoutMsg is sent when the user asks to sign out
type LogoutMsg struct{}

type option struct {
	section Section
	enabled bool
}

// Menu is the section picker
type Menu struct {
	options []option
	cursor  int
}

// New creates the menu. User management is only offered to administrators.
func New(isAdmin bool) *Menu {
	return &Menu{
		options: []option{
			{section: SectionOverview, enabled: true},
			{section: SectionProjects, enabled: true},
			{section: SectionBlogs, enabled: true},
			{section: SectionSkills, enabled: true},
			{section: SectionLanguages, enabled: true},
			{section: SectionUsers, enabled: isAdmin},
		},
	}
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		opt := m.options[m.cursor]
		if !opt.enabled {
			return m, nil
		}
		return m, func() tea.Msg { return SelectedMsg{Section: opt.section} }
	case "L":
		return m, func() tea.Msg { return LogoutMsg{} }
	case "q", "esc":
		return m, func() tea.Msg { return CancelledMsg{} }
	}
	return m, nil
}

// Current returns the highlighted section
func (m *Menu) Current() Section {
	return m.options[m.cursor].section
}

// View implements tea.Model
func (m *Menu) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Select a section"))
	sb.WriteString("\n")

	for i, opt := range m.options {
		label := opt.section.Icon().String() + " " + opt.section.String()
		style := lipgloss.NewStyle().Foreground(styles.Text)
		if !opt.enabled {
			label += " (admin only)"
			style = lipgloss.NewStyle().Foreground(styles.Muted)
		}
		cursor := "  "
		if i == m.cursor {
			cursor = styles.KeyStyle.Render("> ")
			if opt.enabled {
				style = style.Foreground(styles.Primary).Bold(true)
			}
		}
		sb.WriteString(cursor + style.Render(label) + "\n")
	}
	return sb.String()
}

// String returns the display name of the section
func (s Section) String() string {
	switch s {
	case SectionOverview:
		return "Overview"
	case SectionProjects:
		return "Projects"
	case SectionBlogs:
		return "Blogs"
	case SectionSkills:
		return "Skills"
	case SectionLanguages:
		return "Languages"
	case SectionUsers:
		return "Users"
	default:
		return "unknown"
	}
}

// Icon returns the section glyph
func (s Section) Icon() icons.Icon {
	switch s {
	case SectionProjects:
		return icons.Project
	case SectionBlogs:
		return icons.Blog
	case SectionSkills:
		return icons.Skill
	case SectionLanguages:
		return icons.Language
	case SectionUsers:
		return icons.User
	default:
		return icons.Stats
	}
}
