// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Used for publication state, roles and session state

package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/portfolio-admin/internal/tui/icons"
	"github.com/markalston/portfolio-admin/internal/tui/styles"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

func colors(level StatusLevel) (bg, fg lipgloss.Color) {
	switch level {
	case StatusOK:
		return styles.Secondary, "#FFFFFF"
	case StatusWarning:
		return styles.Warning, "#000000"
	case StatusCritical:
		return styles.Danger, "#FFFFFF"
	case StatusInfo:
		return styles.Info, "#FFFFFF"
	default:
		return styles.Muted, "#FFFFFF"
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	bg, fg := colors(level)
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// RoleBadge highlights administrators
func RoleBadge(role string) string {
	if role == "ADMIN" || role == "ROLE_ADMIN" {
		return Badge(role, StatusCritical)
	}
	return Badge(role, StatusInfo)
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	color, _ := colors(level)
	var icon string
	switch level {
	case StatusOK:
		icon = icons.CheckOK.String()
	case StatusWarning:
		icon = icons.Warning.String()
	case StatusCritical:
		icon = icons.Critical.String()
	default:
		icon = "•"
	}
	style := lipgloss.NewStyle().Foreground(color)
	return style.Render(icon) + " " + style.Render(text)
}
