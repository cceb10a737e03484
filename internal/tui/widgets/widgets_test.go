// ABOUTME: Tests for metric blocks and badges
// ABOUTME: Checks content and that every block line has the configured width

package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/portfolio-admin/internal/tui/icons"
)

func TestCountBlock(t *testing.T) {
	block := CountBlock(icons.Project, "Projects", 12, "3 featured", DefaultMetricBlockConfig())

	for _, want := range []string{"Projects", "12", "3 featured"} {
		if !strings.Contains(block, want) {
			t.Errorf("expected block to contain %q\n%s", want, block)
		}
	}

	lines := strings.Split(block, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != DefaultBlockWidth {
			t.Errorf("line %d: expected width %d, got %d: %q", i, DefaultBlockWidth, w, line)
		}
	}
}

func TestMetricBlock_TruncatesLongCaption(t *testing.T) {
	cfg := DefaultMetricBlockConfig()
	block := MetricBlock(icons.Blog, "Blogs", "7", strings.Repeat("x", 50), cfg)
	if !strings.Contains(block, "...") {
		t.Errorf("expected truncated caption, got\n%s", block)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much longer text", 10, "much lo..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestBadges(t *testing.T) {
	if !strings.Contains(Badge("PUBLISHED", StatusOK), "PUBLISHED") {
		t.Error("expected badge text")
	}
	if !strings.Contains(RoleBadge("ADMIN"), "ADMIN") {
		t.Error("expected role badge text")
	}
	if !strings.Contains(StatusText("draft", StatusWarning), "draft") {
		t.Error("expected status text")
	}
}
