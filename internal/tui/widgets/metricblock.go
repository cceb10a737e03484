// ABOUTME: Compact metric block widget for the stats overview
// ABOUTME: Renders a titled box holding one count and a caption

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/portfolio-admin/internal/tui/icons"
	"github.com/markalston/portfolio-admin/internal/tui/styles"
)

// DefaultBlockWidth fits four blocks side by side in an 80 column terminal
const DefaultBlockWidth = 20

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns the dashboard defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       DefaultBlockWidth,
		BorderColor: styles.Muted,
		TitleColor:  styles.Primary,
		ValueColor:  styles.Text,
	}
}

// MetricBlock renders value under a title drawn into the top border
func MetricBlock(icon icons.Icon, title, value, caption string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = DefaultBlockWidth
	}
	inner := config.Width - 4

	titleStr := truncate(fmt.Sprintf("%s %s", icon.String(), title), inner-1)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)
	top := "┌─ " + titleStyle.Render(titleStr) + " " +
		strings.Repeat("─", max(0, config.Width-5-lipgloss.Width(titleStr))) + "┐"

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	captionStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	border := lipgloss.NewStyle().Foreground(config.BorderColor)
	return strings.Join([]string{
		border.Render(top),
		border.Render("│ ") + pad(valueStyle.Render(truncate(value, inner)), inner) + border.Render(" │"),
		border.Render("│ ") + pad(captionStyle.Render(truncate(caption, inner)), inner) + border.Render(" │"),
		border.Render("└" + strings.Repeat("─", config.Width-2) + "┘"),
	}, "\n")
}

// CountBlock renders a single count
func CountBlock(icon icons.Icon, title string, count int64, caption string, config MetricBlockConfig) string {
	return MetricBlock(icon, title, fmt.Sprintf("%d", count), caption, config)
}

// pad right-pads a possibly styled string to width visible cells
func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
