// ABOUTME: Table layouts and loaders for each content section
// ABOUTME: Converts portfolio models into bubbles table rows

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/markalston/portfolio-admin/internal/models"
	"github.com/markalston/portfolio-admin/internal/portfolio"
	"github.com/markalston/portfolio-admin/internal/tui/menu"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

// columnsFor returns the table layout of a section
func columnsFor(s menu.Section) []table.Column {
	switch s {
	case menu.SectionProjects:
		return []table.Column{
			{Title: "ID", Width: 5}, {Title: "Title", Width: 30}, {Title: "Featured", Width: 9},
			{Title: "Active", Width: 7}, {Title: "Updated", Width: 11},
		}
	case menu.SectionBlogs:
		return []table.Column{
			{Title: "ID", Width: 5}, {Title: "Title", Width: 34}, {Title: "Published", Width: 10},
			{Title: "Views", Width: 7}, {Title: "Updated", Width: 11},
		}
	case menu.SectionSkills:
		return []table.Column{
			{Title: "ID", Width: 5}, {Title: "Name", Width: 24}, {Title: "Level", Width: 6},
			{Title: "Category", Width: 16},
		}
	case menu.SectionLanguages:
		return []table.Column{
			{Title: "ID", Width: 5}, {Title: "Code", Width: 6}, {Title: "Name", Width: 18},
			{Title: "Native", Width: 18}, {Title: "Default", Width: 8},
		}
	case menu.SectionUsers:
		return []table.Column{
			{Title: "ID", Width: 5}, {Title: "Username", Width: 18}, {Title: "Email", Width: 28},
			{Title: "Roles", Width: 18},
		}
	}
	return nil
}

func projectRows(items []models.Project) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, p := range items {
		rows = append(rows, table.Row{id(p.ID), p.Title, yesNo(p.IsFeatured), yesNo(p.IsActive), p.UpdatedAt.String()})
	}
	return rows
}

func blogRows(items []models.Blog) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, b := range items {
		rows = append(rows, table.Row{id(b.ID), b.Title, yesNo(b.IsPublished), id(b.ViewCount), b.UpdatedAt.String()})
	}
	return rows
}

func skillRows(items []models.Skill) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, s := range items {
		rows = append(rows, table.Row{id(s.ID), s.Name, strconv.Itoa(s.Level), s.Category})
	}
	return rows
}

func languageRows(items []models.Language) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, l := range items {
		rows = append(rows, table.Row{id(l.ID), l.Code, l.Name, l.NativeName, yesNo(l.IsDefault)})
	}
	return rows
}

func userRows(items []models.User) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, u := range items {
		rows = append(rows, table.Row{id(u.ID), u.Username, u.Email, strings.Join(u.Roles, ",")})
	}
	return rows
}

// loadRows fetches the rows of a section
func loadRows(ctx context.Context, svc *portfolio.Services, s menu.Section) ([]table.Row, error) {
	switch s {
	case menu.SectionProjects:
		items, err := svc.Projects.List(ctx)
		return projectRows(items), err
	case menu.SectionBlogs:
		items, err := svc.Blogs.List(ctx)
		return blogRows(items), err
	case menu.SectionSkills:
		items, err := svc.Skills.List(ctx)
		return skillRows(items), err
	case menu.SectionLanguages:
		items, err := svc.Languages.List(ctx)
		return languageRows(items), err
	case menu.SectionUsers:
		items, err := svc.Users.List(ctx)
		return userRows(items), err
	}
	return nil, fmt.Errorf("section %s has no table", s)
}
