// ABOUTME: Overview component showing portfolio statistics
// ABOUTME: Renders count blocks for each section and the signed-in user

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/portfolio-admin/internal/models"
	"github.com/markalston/portfolio-admin/internal/portfolio"
	"github.com/markalston/portfolio-admin/internal/tui/icons"
	"github.com/markalston/portfolio-admin/internal/tui/styles"
	"github.com/markalston/portfolio-admin/internal/tui/widgets"
)

const ratioWidth = 20

// Dashboard displays portfolio statistics
type Dashboard struct {
	stats  *portfolio.Stats
	user   *models.User
	width  int
	height int
}

// New creates a dashboard; stats may be nil while loading
func New(stats *portfolio.Stats, user *models.User, width, height int) *Dashboard {
	return &Dashboard{
		stats:  stats,
		user:   user,
		width:  width,
		height: height,
	}
}

// Update replaces the statistics
func (d *Dashboard) Update(stats *portfolio.Stats) {
	d.stats = stats
}

// SetUser replaces the signed-in user
func (d *Dashboard) SetUser(u *models.User) {
	d.user = u
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.stats == nil {
		return styles.Panel.Width(d.width).Render("Loading statistics...")
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Stats.String() + " Overview"))
	sb.WriteString("\n")
	if d.user != nil {
		line := "Signed in as " + d.user.DisplayName()
		for _, r := range d.user.Roles {
			line += " " + widgets.RoleBadge(r)
		}
		sb.WriteString(styles.Subtitle.Render(line))
		sb.WriteString("\n")
	}

	s := d.stats
	cfg := widgets.DefaultMetricBlockConfig()
	blocks := []string{
		widgets.CountBlock(icons.Project, "Projects", s.Projects, fmt.Sprintf("%d featured", s.FeaturedProjects), cfg),
		widgets.CountBlock(icons.Blog, "Blogs", s.PublishedBlogs, "published", cfg),
		widgets.CountBlock(icons.Skill, "Skills", s.Skills, "listed", cfg),
		widgets.CountBlock(icons.Language, "Languages", s.Languages, "available", cfg),
	}
	perRow := d.width / (cfg.Width + 1)
	if perRow < 1 {
		perRow = 1
	}
	for i := 0; i < len(blocks); i += perRow {
		end := min(i+perRow, len(blocks))
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, spaced(blocks[i:end])...))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("Featured projects\n")
	sb.WriteString(styles.Ratio(s.FeaturedProjects, s.Projects, ratioWidth))
	sb.WriteString(fmt.Sprintf(" %d/%d\n\n", s.FeaturedProjects, s.Projects))

	sb.WriteString(fmt.Sprintf("%s Blog views: %s\n", icons.Views.String(), styles.ValueStyle.Render(fmt.Sprintf("%d", s.BlogViews))))

	return lipgloss.NewStyle().
		Width(d.width).
		Height(d.height).
		Render(sb.String())
}

func spaced(blocks []string) []string {
	out := make([]string, 0, len(blocks)*2)
	for i, b := range blocks {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, b)
	}
	return out
}
